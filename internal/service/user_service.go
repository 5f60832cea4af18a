package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/s-ao213/next-task-app/internal/models"
	appErrors "github.com/s-ao213/next-task-app/pkg/errors"
)

type userRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByStudentID(ctx context.Context, studentID string) (*models.User, error)
	StudentIDTaken(ctx context.Context, studentID, excludeUserID string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
}

// UpdateStudentIDRequest payload for changing the attendance number.
type UpdateStudentIDRequest struct {
	StudentID string `json:"student_id" validate:"required"`
}

// UpdateNotificationDaysRequest payload for the reminder window preference.
type UpdateNotificationDaysRequest struct {
	NotificationDays int `json:"notification_days" validate:"required,min=1,max=30"`
}

// UserService handles profile workflows: the attendance number is the one
// piece of identity users manage themselves, and every change goes through
// the same uniqueness check as enrollment.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user, nil
}

// GetByStudentID resolves a user by attendance number, used by assignment
// pickers when targeting tasks and events at specific classmates.
func (s *UserService) GetByStudentID(ctx context.Context, studentID string) (*models.User, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, appErrors.ErrMissingStudentID
	}
	user, err := s.repo.FindByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no user with that student id")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user, nil
}

// UpdateStudentID changes the caller's attendance number after checking that
// no other user holds it. The caller's own row is excluded so saving an
// unchanged id is not a conflict.
func (s *UserService) UpdateStudentID(ctx context.Context, userID string, req UpdateStudentIDRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	studentID := strings.TrimSpace(req.StudentID)
	if studentID == "" {
		return nil, appErrors.ErrMissingStudentID
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.StudentIDTaken(ctx, studentID, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check student id")
	}
	if taken {
		return nil, appErrors.ErrDuplicateStudentID
	}

	user.StudentID = studentID
	if err := s.repo.Update(ctx, user); err != nil {
		if isUniqueViolation(err, "student_id") {
			return nil, appErrors.ErrDuplicateStudentID
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user")
	}
	return user, nil
}

// UpdateNotificationDays stores the reminder window preference (1..30 days).
func (s *UserService) UpdateNotificationDays(ctx context.Context, userID string, req UpdateNotificationDaysRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "notification days must be between 1 and 30")
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.NotificationDays = req.NotificationDays
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user")
	}
	return user, nil
}

// List returns paginated users for assignment pickers.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]models.User, *models.Pagination, error) {
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	pagination := &models.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
	}

	return users, pagination, nil
}
