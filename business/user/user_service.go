package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"roktoSheba/domain"
	"roktoSheba/pkg/logger"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (domain.InsertResult, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateStatus(ctx context.Context, email, status string) (domain.UpdateResult, error)
	UpdateRole(ctx context.Context, email, role string) (domain.UpdateResult, error)
	UpdateProfile(ctx context.Context, email string, profile domain.UserProfile, now time.Time) (domain.UpdateResult, error)
	Count(ctx context.Context) (int64, error)
}

type userService struct {
	userRepo UserRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewUserService(userRepo UserRepository, validate *validator.Validate) *userService {
	return &userService{
		userRepo: userRepo,
		validate: validate,
		now:      time.Now,
	}
}

var (
	ErrInvalidEmail  = errors.New("invalid email format")
	ErrInvalidStatus = errors.New("status must be Active or Blocked")
	ErrInvalidRole   = errors.New("role must be Donor or Admin")
)

var validStatuses = map[string]bool{
	domain.StatusActive:  true,
	domain.StatusBlocked: true,
}

var validRoles = map[string]bool{
	domain.RoleDonor: true,
	domain.RoleAdmin: true,
}

// Register stores a new donor account. Role, status and creation time are
// always set by the server. Repeated emails are accepted.
func (s *userService) Register(ctx context.Context, user domain.User) (domain.InsertResult, error) {
	user.Email = strings.TrimSpace(user.Email)
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", "email", user.Email)
		return domain.InsertResult{}, ErrInvalidEmail
	}

	user.ID = primitive.NilObjectID
	user.Role = domain.RoleDonor
	user.Status = domain.StatusActive
	user.CreatedAt = s.now()
	user.UpdatedAt = nil

	res, err := s.userRepo.Create(ctx, &user)
	if err != nil {
		logger.Error("Failed to create new user", "email", user.Email, "error", err)
		return domain.InsertResult{}, err
	}

	logger.Info("User registered", "email", user.Email, "id", res.InsertedID)
	return res, nil
}

// GetAllUsers returns every account in one unpaginated page.
func (s *userService) GetAllUsers(ctx context.Context) (domain.Page[domain.User], error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to get all users", "error", err)
		return domain.Page[domain.User]{}, err
	}

	return domain.NewPage(users, int64(len(users)), 1, 0), nil
}

// GetUserByEmail returns nil, nil when no account has the email.
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		logger.Error("Failed to get user by email", "email", email, "error", err)
		return nil, err
	}

	return &user, nil
}

func (s *userService) UpdateStatus(ctx context.Context, email, status string) (domain.UpdateResult, error) {
	if !validStatuses[status] {
		return domain.UpdateResult{}, ErrInvalidStatus
	}

	res, err := s.userRepo.UpdateStatus(ctx, email, status)
	if err != nil {
		logger.Error("Failed to update user status", "email", email, "error", err)
		return domain.UpdateResult{}, err
	}

	return res, nil
}

func (s *userService) UpdateRole(ctx context.Context, email, role string) (domain.UpdateResult, error) {
	if !validRoles[role] {
		return domain.UpdateResult{}, ErrInvalidRole
	}

	res, err := s.userRepo.UpdateRole(ctx, email, role)
	if err != nil {
		logger.Error("Failed to update user role", "email", email, "error", err)
		return domain.UpdateResult{}, err
	}
	if res.MatchedCount == 0 {
		return res, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}

	return res, nil
}

func (s *userService) UpdateProfile(ctx context.Context, email string, profile domain.UserProfile) (domain.UpdateResult, error) {
	res, err := s.userRepo.UpdateProfile(ctx, email, profile, s.now())
	if err != nil {
		logger.Error("Failed to update user profile", "email", email, "error", err)
		return domain.UpdateResult{}, err
	}

	return res, nil
}

// IsAdmin reports whether the stored account for email has the Admin role.
func (s *userService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return user != nil && user.Role == domain.RoleAdmin, nil
}
