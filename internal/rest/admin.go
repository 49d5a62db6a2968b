package rest

import (
	"context"
	"net/http"
	"time"

	"roktoSheba/domain"
	"roktoSheba/pkg/logger"

	"github.com/labstack/echo/v4"
)

type AdminService interface {
	Stats(ctx context.Context) (domain.Stats, error)
	RecentActivities(ctx context.Context) ([]domain.Activity, error)
}

type AdminHandler struct {
	adminService AdminService
	timeout      time.Duration
}

func NewAdminHandler(adminService AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		timeout:      10 * time.Second,
	}
}

func (h *AdminHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stats, err := h.adminService.Stats(ctx)
	if err != nil {
		logger.Error("Failed to get admin stats", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to get stats"})
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) RecentActivities(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	activities, err := h.adminService.RecentActivities(ctx)
	if err != nil {
		logger.Error("Failed to get recent activities", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to get recent activities"})
	}

	return c.JSON(http.StatusOK, activities)
}
