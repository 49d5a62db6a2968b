package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"roktoSheba/domain"
	"roktoSheba/internal/middleware"
	"roktoSheba/pkg/logger"
	"roktoSheba/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const (
	myRequestsDefaultLimit  = 5
	allRequestsDefaultLimit = 10
)

type RequestService interface {
	CreateRequest(ctx context.Context, requesterEmail string, req domain.BloodRequest) (domain.InsertResult, error)
	GetRequest(ctx context.Context, id string) (*domain.BloodRequest, error)
	UpdateRequest(ctx context.Context, id string, patch domain.RequestPatch) (domain.UpdateResult, error)
	DeleteRequest(ctx context.Context, id string) (domain.DeleteResult, error)
	MyRequests(ctx context.Context, email string, page, limit int) (domain.Page[domain.BloodRequest], error)
	AllRequests(ctx context.Context, q domain.RequestQuery) (domain.Page[domain.BloodRequest], error)
	SearchRequests(ctx context.Context, q domain.SearchQuery) (domain.Page[domain.BloodRequest], error)
}

type RequestHandler struct {
	requestService RequestService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewRequestHandler(requestService RequestService) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type CreateRequestInput struct {
	RequesterName  string `json:"requesterName" validate:"omitempty,max=100"`
	RecipientName  string `json:"recipientName" validate:"omitempty,max=100"`
	District       string `json:"district"`
	Upazila        string `json:"upazila"`
	HospitalName   string `json:"hospitalName"`
	FullAddress    string `json:"fullAddress"`
	BloodGroup     string `json:"bloodGroup" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	DonationDate   string `json:"donationDate"`
	DonationTime   string `json:"donationTime"`
	RequestMessage string `json:"requestMessage" validate:"omitempty,max=2000"`
	Status         string `json:"status" validate:"omitempty,max=30"`
}

// UpdateRequestInput only touches the fields present in the body.
type UpdateRequestInput struct {
	RequesterName  *string `json:"requesterName" validate:"omitempty,max=100"`
	RecipientName  *string `json:"recipientName" validate:"omitempty,max=100"`
	District       *string `json:"district"`
	Upazila        *string `json:"upazila"`
	HospitalName   *string `json:"hospitalName"`
	FullAddress    *string `json:"fullAddress"`
	BloodGroup     *string `json:"bloodGroup" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	DonationDate   *string `json:"donationDate"`
	DonationTime   *string `json:"donationTime"`
	RequestMessage *string `json:"requestMessage" validate:"omitempty,max=2000"`
	Status         *string `json:"status" validate:"omitempty,max=30"`
	DonorName      *string `json:"donorName"`
	DonorEmail     *string `json:"donorEmail" validate:"omitempty,email"`
}

func (h *RequestHandler) CreateRequest(c echo.Context) error {
	var input CreateRequestInput

	if err := c.Bind(&input); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&input); err != nil {
		logger.Error("Failed to validate blood request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	email, _ := c.Get(middleware.ContextEmail).(string)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.requestService.CreateRequest(ctx, email, domain.BloodRequest{
		RequesterName:  input.RequesterName,
		RecipientName:  input.RecipientName,
		District:       input.District,
		Upazila:        input.Upazila,
		HospitalName:   input.HospitalName,
		FullAddress:    input.FullAddress,
		BloodGroup:     input.BloodGroup,
		DonationDate:   input.DonationDate,
		DonationTime:   input.DonationTime,
		RequestMessage: input.RequestMessage,
		Status:         input.Status,
	})
	if err != nil {
		logger.Error("Failed to create blood request", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to create request"})
	}

	return c.JSON(http.StatusOK, res)
}

func (h *RequestHandler) MyRequests(c echo.Context) error {
	page, limit := utils.ParsePagination(c.QueryParam("page"), c.QueryParam("limit"), myRequestsDefaultLimit)
	email, _ := c.Get(middleware.ContextEmail).(string)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.requestService.MyRequests(ctx, email, page, limit)
	if err != nil {
		logger.Error("Failed to get own requests", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to get requests"})
	}

	return c.JSON(http.StatusOK, res)
}

func (h *RequestHandler) AllRequests(c echo.Context) error {
	page, limit := utils.ParsePagination(c.QueryParam("page"), c.QueryParam("limit"), allRequestsDefaultLimit)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.requestService.AllRequests(ctx, domain.RequestQuery{
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		logger.Error("Failed to get all requests", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to get requests"})
	}

	return c.JSON(http.StatusOK, res)
}

// GetRequest answers null when the id does not exist.
func (h *RequestHandler) GetRequest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	req, err := h.requestService.GetRequest(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request id"})
		}
		logger.Error("Failed to get blood request", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to get request"})
	}

	return c.JSON(http.StatusOK, req)
}

func (h *RequestHandler) UpdateRequest(c echo.Context) error {
	var input UpdateRequestInput

	if err := c.Bind(&input); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&input); err != nil {
		logger.Error("Failed to validate request update", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.requestService.UpdateRequest(ctx, c.Param("id"), domain.RequestPatch{
		RequesterName:  input.RequesterName,
		RecipientName:  input.RecipientName,
		District:       input.District,
		Upazila:        input.Upazila,
		HospitalName:   input.HospitalName,
		FullAddress:    input.FullAddress,
		BloodGroup:     input.BloodGroup,
		DonationDate:   input.DonationDate,
		DonationTime:   input.DonationTime,
		RequestMessage: input.RequestMessage,
		Status:         input.Status,
		DonorName:      input.DonorName,
		DonorEmail:     input.DonorEmail,
	})
	if err != nil {
		logger.Error("Failed to update blood request", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Update failed"})
	}

	return c.JSON(http.StatusOK, map[string]int64{
		"matchedCount":  res.MatchedCount,
		"modifiedCount": res.ModifiedCount,
	})
}

func (h *RequestHandler) DeleteRequest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.requestService.DeleteRequest(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request id"})
		}
		logger.Error("Failed to delete blood request", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to delete request"})
	}

	return c.JSON(http.StatusOK, res)
}

// SearchRequests is the public donor search. Results are paginated only
// when a limit is supplied.
func (h *RequestHandler) SearchRequests(c echo.Context) error {
	q := domain.SearchQuery{
		BloodGroup: bloodGroupParam(c),
		District:   c.QueryParam("district"),
		Upazila:    c.QueryParam("upazila"),
		Page:       1,
	}
	if c.QueryParam("limit") != "" {
		q.Page, q.Limit = utils.ParsePagination(c.QueryParam("page"), c.QueryParam("limit"), allRequestsDefaultLimit)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.requestService.SearchRequests(ctx, q)
	if err != nil {
		logger.Error("Failed to search blood requests", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to search requests"})
	}

	return c.JSON(http.StatusOK, res)
}

// bloodGroupParam reads the blood group filter from blood, or bloodGroup as
// an alias. An unencoded "+" arrives as a space, so "A " is read as "A+".
func bloodGroupParam(c echo.Context) string {
	raw := c.QueryParam("blood")
	if raw == "" {
		raw = c.QueryParam("bloodGroup")
	}

	group := strings.TrimSpace(raw)
	if group == "" || strings.HasSuffix(group, "+") || strings.HasSuffix(group, "-") {
		return group
	}
	if strings.HasSuffix(raw, " ") {
		return group + "+"
	}
	return group
}
