package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"roktoSheba/business/user"
	"roktoSheba/domain"
	"roktoSheba/internal/middleware"
	"roktoSheba/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	Register(ctx context.Context, user domain.User) (domain.InsertResult, error)
	GetAllUsers(ctx context.Context) (domain.Page[domain.User], error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateStatus(ctx context.Context, email, status string) (domain.UpdateResult, error)
	UpdateProfile(ctx context.Context, email string, profile domain.UserProfile) (domain.UpdateResult, error)
}

type UserHandler struct {
	userService UserService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type UserRegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"omitempty,max=100"`
	Avatar   string `json:"avatar" validate:"omitempty,url"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	District string `json:"district"`
	Upazila  string `json:"upazila"`
	Blood    string `json:"blood" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
}

type UserProfileRequest struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	District string `json:"district"`
	Upazila  string `json:"upazila"`
	Blood    string `json:"blood" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
}

type UserStatusRequest struct {
	Email  string `query:"email" validate:"required,email"`
	Status string `query:"status" validate:"required,oneof=Active Blocked"`
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var reqUser UserRegisterRequest

	if err := c.Bind(&reqUser); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&reqUser); err != nil {
		logger.Error("Failed to validation user register", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.userService.Register(ctx, domain.User{
		Email:    reqUser.Email,
		Name:     reqUser.Name,
		Avatar:   reqUser.Avatar,
		Phone:    reqUser.Phone,
		District: reqUser.District,
		Upazila:  reqUser.Upazila,
		Blood:    reqUser.Blood,
	})
	if err != nil {
		if errors.Is(err, user.ErrInvalidEmail) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to register user", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to register user"})
	}

	return c.JSON(http.StatusOK, res)
}

// GetAllUsers handles getting all users
func (h *UserHandler) GetAllUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	users, err := h.userService.GetAllUsers(ctx)
	if err != nil {
		logger.Error("Failed to get all users", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to get users"})
	}

	return c.JSON(http.StatusOK, users)
}

// GetUserRole is the public lookup used by the dashboard to pick a layout.
// It answers null for unknown emails.
func (h *UserHandler) GetUserRole(c echo.Context) error {
	return h.findByEmail(c, middleware.PathParam(c, "email"))
}

// GetUserByEmail serves the owner's own profile.
func (h *UserHandler) GetUserByEmail(c echo.Context) error {
	return h.findByEmail(c, middleware.PathParam(c, "email"))
}

func (h *UserHandler) findByEmail(c echo.Context, email string) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	u, err := h.userService.GetUserByEmail(ctx, email)
	if err != nil {
		logger.Error("Failed to get user by email", "email", email, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to get user"})
	}

	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) UpdateStatus(c echo.Context) error {
	var req UserStatusRequest

	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		logger.Error("Invalid query params", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate status update", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.userService.UpdateStatus(ctx, req.Email, req.Status)
	if err != nil {
		if errors.Is(err, user.ErrInvalidStatus) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to update user status", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to update status"})
	}

	return c.JSON(http.StatusOK, res)
}

// UpdateProfile overwrites the owner's editable profile fields.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req UserProfileRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate profile update", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	email, _ := c.Get(middleware.ContextEmail).(string)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.userService.UpdateProfile(ctx, email, domain.UserProfile{
		Name:     req.Name,
		Phone:    req.Phone,
		District: req.District,
		Upazila:  req.Upazila,
		Blood:    req.Blood,
	})
	if err != nil {
		logger.Error("Failed to update user profile", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to update profile"})
	}

	return c.JSON(http.StatusOK, res)
}
