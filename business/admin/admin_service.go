package admin

import (
	"context"
	"time"

	"roktoSheba/domain"
	"roktoSheba/pkg/logger"
)

const (
	recentActivityLimit = 5
	activityAction      = "Submitted a blood request"
	unknownUserName     = "Unknown"

	// Mirrors the en-US toLocaleString layout the dashboard expects.
	activityDateLayout = "1/2/2006, 3:04:05 PM"
)

type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

type RequestReader interface {
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, n int) ([]domain.BloodRequest, error)
}

type FundingSource interface {
	TotalAmount(ctx context.Context) (float64, error)
}

type adminService struct {
	users    UserCounter
	requests RequestReader
	funding  FundingSource
	location *time.Location
}

func NewAdminService(users UserCounter, requests RequestReader, funding FundingSource) *adminService {
	return &adminService{
		users:    users,
		requests: requests,
		funding:  funding,
		location: time.Local,
	}
}

func (s *adminService) Stats(ctx context.Context) (domain.Stats, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		logger.Error("Failed to count users", "error", err)
		return domain.Stats{}, err
	}

	totalRequests, err := s.requests.Count(ctx)
	if err != nil {
		logger.Error("Failed to count requests", "error", err)
		return domain.Stats{}, err
	}

	totalFunding, err := s.funding.TotalAmount(ctx)
	if err != nil {
		logger.Error("Failed to sum funding", "error", err)
		return domain.Stats{}, err
	}

	return domain.Stats{
		TotalUsers:    totalUsers,
		TotalFunding:  totalFunding,
		TotalRequests: totalRequests,
	}, nil
}

func (s *adminService) RecentActivities(ctx context.Context) ([]domain.Activity, error) {
	reqs, err := s.requests.Recent(ctx, recentActivityLimit)
	if err != nil {
		logger.Error("Failed to get recent requests", "error", err)
		return nil, err
	}

	activities := make([]domain.Activity, 0, len(reqs))
	for _, r := range reqs {
		activities = append(activities, s.toActivity(r))
	}
	return activities, nil
}

func (s *adminService) toActivity(r domain.BloodRequest) domain.Activity {
	name := r.RequesterName
	if name == "" {
		name = unknownUserName
	}
	status := r.Status
	if status == "" {
		status = domain.RequestStatusPending
	}
	return domain.Activity{
		ID:       r.ID,
		UserName: name,
		Action:   activityAction,
		Date:     r.CreatedAt.In(s.location).Format(activityDateLayout),
		Status:   status,
	}
}
