package request

import (
	"context"
	"errors"
	"time"

	"roktoSheba/domain"
	"roktoSheba/pkg/logger"
	"roktoSheba/pkg/metrics"
	"roktoSheba/pkg/mq"
)

// RequestRepository contract interface
type RequestRepository interface {
	Create(ctx context.Context, req *domain.BloodRequest) (domain.InsertResult, error)
	FindByID(ctx context.Context, id string) (domain.BloodRequest, error)
	Update(ctx context.Context, id string, patch domain.RequestPatch, now time.Time) (domain.UpdateResult, error)
	Delete(ctx context.Context, id string) (domain.DeleteResult, error)
	FindByRequester(ctx context.Context, email string, page, limit int) ([]domain.BloodRequest, int64, error)
	FindAll(ctx context.Context, q domain.RequestQuery) ([]domain.BloodRequest, int64, error)
	Search(ctx context.Context, q domain.SearchQuery) ([]domain.BloodRequest, int64, error)
}

// EventPublisher contract interface
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type requestService struct {
	requestRepo RequestRepository
	events      EventPublisher
	now         func() time.Time
}

func NewRequestService(requestRepo RequestRepository, events EventPublisher) *requestService {
	return &requestService{
		requestRepo: requestRepo,
		events:      events,
		now:         time.Now,
	}
}

type RequestCreatedEvent struct {
	ID             string    `json:"id"`
	RequesterEmail string    `json:"requesterEmail"`
	BloodGroup     string    `json:"bloodGroup"`
	District       string    `json:"district"`
	Upazila        string    `json:"upazila"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CreateRequest stores a request owned by the verified requester.
func (s *requestService) CreateRequest(ctx context.Context, requesterEmail string, req domain.BloodRequest) (domain.InsertResult, error) {
	req.RequesterEmail = requesterEmail
	req.CreatedAt = s.now()
	req.UpdatedAt = nil
	if req.Status == "" {
		req.Status = domain.RequestStatusPending
	}

	res, err := s.requestRepo.Create(ctx, &req)
	if err != nil {
		logger.Error("Failed to create blood request", "requester", requesterEmail, "error", err)
		return domain.InsertResult{}, err
	}
	metrics.BloodRequestsCreated.Inc()

	event := RequestCreatedEvent{
		ID:             res.InsertedID,
		RequesterEmail: req.RequesterEmail,
		BloodGroup:     req.BloodGroup,
		District:       req.District,
		Upazila:        req.Upazila,
		CreatedAt:      req.CreatedAt,
	}
	if err := s.events.PublishJSON(ctx, mq.KeyRequestCreated, event); err != nil {
		logger.Warn("Failed to publish request created event", "id", res.InsertedID, "error", err)
	}

	return res, nil
}

// GetRequest returns nil, nil when the id does not exist.
func (s *requestService) GetRequest(ctx context.Context, id string) (*domain.BloodRequest, error) {
	req, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (s *requestService) UpdateRequest(ctx context.Context, id string, patch domain.RequestPatch) (domain.UpdateResult, error) {
	res, err := s.requestRepo.Update(ctx, id, patch, s.now())
	if err != nil {
		logger.Error("Failed to update blood request", "id", id, "error", err)
		return domain.UpdateResult{}, err
	}
	return res, nil
}

func (s *requestService) DeleteRequest(ctx context.Context, id string) (domain.DeleteResult, error) {
	res, err := s.requestRepo.Delete(ctx, id)
	if err != nil {
		logger.Error("Failed to delete blood request", "id", id, "error", err)
		return domain.DeleteResult{}, err
	}
	return res, nil
}

func (s *requestService) MyRequests(ctx context.Context, email string, page, limit int) (domain.Page[domain.BloodRequest], error) {
	items, total, err := s.requestRepo.FindByRequester(ctx, email, page, limit)
	if err != nil {
		logger.Error("Failed to list own requests", "email", email, "error", err)
		return domain.Page[domain.BloodRequest]{}, err
	}
	return domain.NewPage(items, total, page, limit), nil
}

func (s *requestService) AllRequests(ctx context.Context, q domain.RequestQuery) (domain.Page[domain.BloodRequest], error) {
	items, total, err := s.requestRepo.FindAll(ctx, q)
	if err != nil {
		logger.Error("Failed to list requests", "error", err)
		return domain.Page[domain.BloodRequest]{}, err
	}
	return domain.NewPage(items, total, q.Page, q.Limit), nil
}

func (s *requestService) SearchRequests(ctx context.Context, q domain.SearchQuery) (domain.Page[domain.BloodRequest], error) {
	items, total, err := s.requestRepo.Search(ctx, q)
	if err != nil {
		logger.Error("Failed to search requests", "error", err)
		return domain.Page[domain.BloodRequest]{}, err
	}
	return domain.NewPage(items, total, q.Page, q.Limit), nil
}
