package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"roktoSheba/business/payments"
	"roktoSheba/domain"
	"roktoSheba/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	PaymentsHandler struct {
		validate        *validator.Validate
		paymentsService PaymentsService
		timeout         time.Duration
	}

	PaymentsService interface {
		CreateCheckout(ctx context.Context, amount float64, donorEmail, donorName string) (string, error)
		FinalizePayment(ctx context.Context, sessionID string) (domain.FinalizeResult, error)
	}

	CheckoutInput struct {
		Amount     float64 `json:"amount" validate:"required,gt=0"`
		DonorEmail string  `json:"donorEmail" validate:"omitempty,email"`
		DonorName  string  `json:"donorName" validate:"omitempty,max=100"`
	}

	CheckoutResponse struct {
		URL string `json:"url"`
	}
)

func NewPaymentsHandler(paymentsService PaymentsService) *PaymentsHandler {
	return &PaymentsHandler{
		validate:        validator.New(),
		paymentsService: paymentsService,
		timeout:         10 * time.Second,
	}
}

func (h *PaymentsHandler) CreateCheckout(c echo.Context) error {
	var request CheckoutInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate checkout request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	url, err := h.paymentsService.CreateCheckout(ctx, request.Amount, request.DonorEmail, request.DonorName)
	if err != nil {
		if errors.Is(err, payments.ErrInvalidAmount) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to create checkout session", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to create checkout session"})
	}

	return c.JSON(http.StatusCreated, CheckoutResponse{URL: url})
}

// SuccessPayment records the payment for the session the checkout page
// redirected back with.
func (h *PaymentsHandler) SuccessPayment(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest(payments.ErrMissingSessionID.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.paymentsService.FinalizePayment(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotCompleted) {
			return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest("Payment not completed"))
		}
		logger.Error("Failed to finalize payment", "session", sessionID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to process payment"})
	}

	if res.AlreadyExists {
		return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]any{
			"message":       "Payment already exists",
			"transactionId": res.TransactionID,
		}))
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(res.Payment))
}
