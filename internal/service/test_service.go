package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/s-ao213/next-task-app/internal/models"
	appErrors "github.com/s-ao213/next-task-app/pkg/errors"
)

type testRepository interface {
	List(ctx context.Context) ([]models.Test, error)
	GetByID(ctx context.Context, id string) (*models.Test, error)
	Create(ctx context.Context, test *models.Test) error
	Update(ctx context.Context, test *models.Test) error
	Delete(ctx context.Context, id string) error
	UpsertNotification(ctx context.Context, n models.TestNotification) error
	NotificationsForUser(ctx context.Context, userID string) ([]models.TestNotification, error)
}

type relatedTaskLookup interface {
	GetByID(ctx context.Context, id string) (*models.Task, error)
}

// CreateTestRequest describes the create payload.
type CreateTestRequest struct {
	Subject       string    `json:"subject" validate:"required"`
	TestDate      time.Time `json:"test_date" validate:"required"`
	Scope         string    `json:"scope" validate:"required"`
	RelatedTaskID *string   `json:"related_task_id"`
	Teacher       *string   `json:"teacher"`
	IsImportant   bool      `json:"is_important"`
}

// UpdateTestRequest describes the update payload.
type UpdateTestRequest struct {
	Subject       string    `json:"subject" validate:"required"`
	TestDate      time.Time `json:"test_date" validate:"required"`
	Scope         string    `json:"scope" validate:"required"`
	RelatedTaskID *string   `json:"related_task_id"`
	Teacher       *string   `json:"teacher"`
	IsImportant   bool      `json:"is_important"`
}

// ToggleNotificationRequest flips the viewer's reminder opt-in for a test.
type ToggleNotificationRequest struct {
	IsNotificationEnabled bool `json:"is_notification_enabled"`
}

// TestService manages tests. Tests carry no audience; every user sees every
// test.
type TestService struct {
	repo      testRepository
	tasks     relatedTaskLookup
	notifier  changeAnnouncer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTestService constructs the service.
func NewTestService(repo testRepository, tasks relatedTaskLookup, notifier changeAnnouncer, validate *validator.Validate, logger *zap.Logger) *TestService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TestService{repo: repo, tasks: tasks, notifier: notifier, validator: validate, logger: logger}
}

// List returns all tests in date order.
func (s *TestService) List(ctx context.Context) ([]models.Test, error) {
	tests, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tests")
	}
	return tests, nil
}

// Get returns a test by id.
func (s *TestService) Get(ctx context.Context, id string) (*models.Test, error) {
	test, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "test not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load test")
	}
	return test, nil
}

// Create registers a new test. The related task reference is lookup-only; it
// must exist at creation time but the test does not own it.
func (s *TestService) Create(ctx context.Context, req CreateTestRequest, creatorID string) (*models.Test, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid test payload")
	}

	if err := s.checkRelatedTask(ctx, req.RelatedTaskID); err != nil {
		return nil, err
	}

	test := &models.Test{
		Subject:       req.Subject,
		TestDate:      req.TestDate,
		Scope:         req.Scope,
		RelatedTaskID: req.RelatedTaskID,
		Teacher:       req.Teacher,
		IsImportant:   req.IsImportant,
		CreatedBy:     creatorID,
	}
	if err := s.repo.Create(ctx, test); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create test")
	}
	s.announce(ctx, models.ChangeOpInsert, test.ID)
	return test, nil
}

// Update modifies a test; only the creator may do so.
func (s *TestService) Update(ctx context.Context, id string, req UpdateTestRequest, actorID string) (*models.Test, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid test payload")
	}

	test, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if test.CreatedBy != actorID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the creator can modify a test")
	}

	if err := s.checkRelatedTask(ctx, req.RelatedTaskID); err != nil {
		return nil, err
	}

	test.Subject = req.Subject
	test.TestDate = req.TestDate
	test.Scope = req.Scope
	test.RelatedTaskID = req.RelatedTaskID
	test.Teacher = req.Teacher
	test.IsImportant = req.IsImportant

	if err := s.repo.Update(ctx, test); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update test")
	}
	s.announce(ctx, models.ChangeOpUpdate, test.ID)
	return test, nil
}

// Delete removes a test; only the creator may do so.
func (s *TestService) Delete(ctx context.Context, id, actorID string) error {
	test, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if test.CreatedBy != actorID {
		return appErrors.Clone(appErrors.ErrForbidden, "only the creator can delete a test")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete test")
	}
	s.announce(ctx, models.ChangeOpDelete, id)
	return nil
}

// ToggleNotification upserts the viewer's reminder opt-in for a test.
func (s *TestService) ToggleNotification(ctx context.Context, testID, viewerID string, req ToggleNotificationRequest) (*models.TestNotification, error) {
	if _, err := s.Get(ctx, testID); err != nil {
		return nil, err
	}

	n := models.TestNotification{UserID: viewerID, TestID: testID, IsNotificationEnabled: req.IsNotificationEnabled}
	if err := s.repo.UpsertNotification(ctx, n); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update test notification")
	}
	return &n, nil
}

// NotificationsForUser returns the viewer's opt-ins keyed by test id.
func (s *TestService) NotificationsForUser(ctx context.Context, viewerID string) (map[string]bool, error) {
	rows, err := s.repo.NotificationsForUser(ctx, viewerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load test notifications")
	}
	result := make(map[string]bool, len(rows))
	for _, n := range rows {
		result[n.TestID] = n.IsNotificationEnabled
	}
	return result, nil
}

func (s *TestService) checkRelatedTask(ctx context.Context, taskID *string) error {
	if taskID == nil || *taskID == "" || s.tasks == nil {
		return nil
	}
	if _, err := s.tasks.GetByID(ctx, *taskID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrValidation, "related task does not exist")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check related task")
	}
	return nil
}

func (s *TestService) announce(ctx context.Context, op models.ChangeOp, id string) {
	if s.notifier != nil {
		s.notifier.Announce(ctx, "tests", op, id)
	}
}
