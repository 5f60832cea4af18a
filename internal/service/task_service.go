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

type taskRepository interface {
	List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
	UpsertStatus(ctx context.Context, status models.UserTaskStatus) error
	StatusesForUser(ctx context.Context, userID string) ([]models.UserTaskStatus, error)
}

type changeAnnouncer interface {
	Announce(ctx context.Context, collection string, op models.ChangeOp, id string)
}

// CreateTaskRequest describes the create payload.
type CreateTaskRequest struct {
	Subject          string     `json:"subject" validate:"required"`
	Title            string     `json:"title" validate:"required"`
	Description      *string    `json:"description"`
	Deadline         *time.Time `json:"deadline"`
	SubmissionMethod string     `json:"submission_method" validate:"required,oneof=GOOGLE_CLASSROOM TEAMS MOODLE PAPER OTHER"`
	IsImportant      bool       `json:"is_important"`
	IsForAll         bool       `json:"is_for_all"`
	AssignedTo       []string   `json:"assigned_to"`
}

// UpdateTaskRequest describes the update payload.
type UpdateTaskRequest struct {
	Subject          string     `json:"subject" validate:"required"`
	Title            string     `json:"title" validate:"required"`
	Description      *string    `json:"description"`
	Deadline         *time.Time `json:"deadline"`
	SubmissionMethod string     `json:"submission_method" validate:"required,oneof=GOOGLE_CLASSROOM TEAMS MOODLE PAPER OTHER"`
	IsImportant      bool       `json:"is_important"`
	IsForAll         bool       `json:"is_for_all"`
	AssignedTo       []string   `json:"assigned_to"`
}

// ToggleStatusRequest flips the viewer's completion flag for a task.
type ToggleStatusRequest struct {
	IsCompleted bool `json:"is_completed"`
}

// TaskServiceConfig tunes deadline-derived aggregates.
type TaskServiceConfig struct {
	UrgentWindowDays int
}

// TaskService manages tasks, per-viewer visibility and completion status.
type TaskService struct {
	repo      taskRepository
	notifier  changeAnnouncer
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
	cfg       TaskServiceConfig
}

// NewTaskService constructs the service.
func NewTaskService(repo taskRepository, notifier changeAnnouncer, validate *validator.Validate, logger *zap.Logger, cfg TaskServiceConfig) *TaskService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.UrgentWindowDays <= 0 {
		cfg.UrgentWindowDays = 2
	}
	return &TaskService{repo: repo, notifier: notifier, validator: validate, logger: logger, now: time.Now, cfg: cfg}
}

// ListForViewer returns the tasks visible to the viewer annotated with their
// completion flag and deadline status. Ordering follows the repository
// (deadline ascending).
func (s *TaskService) ListForViewer(ctx context.Context, viewerID string, filter models.TaskFilter) ([]models.TaskWithStatus, error) {
	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tasks")
	}

	statuses, err := s.repo.StatusesForUser(ctx, viewerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task statuses")
	}
	completed := make(map[string]bool, len(statuses))
	for _, st := range statuses {
		completed[st.TaskID] = st.IsCompleted
	}

	now := s.now()
	visible := models.FilterVisibleTasks(tasks, viewerID)
	result := make([]models.TaskWithStatus, 0, len(visible))
	for _, task := range visible {
		done := completed[task.ID]
		item := models.TaskWithStatus{
			Task:           task,
			IsCompleted:    done,
			DeadlineStatus: models.ClassifyDeadline(task.Deadline, done, now),
		}
		if filter.IsCompleted != nil && item.IsCompleted != *filter.IsCompleted {
			continue
		}
		if filter.Status != "" && item.DeadlineStatus != filter.Status {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

// Get returns a single task if the viewer may see it.
func (s *TaskService) Get(ctx context.Context, id, viewerID string) (*models.TaskWithStatus, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "task not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task")
	}
	if !task.Audience().IsVisibleTo(viewerID) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "task not found")
	}

	statuses, err := s.repo.StatusesForUser(ctx, viewerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task statuses")
	}
	done := false
	for _, st := range statuses {
		if st.TaskID == id {
			done = st.IsCompleted
			break
		}
	}

	return &models.TaskWithStatus{
		Task:           *task,
		IsCompleted:    done,
		DeadlineStatus: models.ClassifyDeadline(task.Deadline, done, s.now()),
	}, nil
}

// Create registers a new task owned by the creator.
func (s *TaskService) Create(ctx context.Context, req CreateTaskRequest, creatorID string) (*models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid task payload")
	}

	task := &models.Task{
		Subject:          req.Subject,
		Title:            req.Title,
		Description:      req.Description,
		Deadline:         req.Deadline,
		SubmissionMethod: models.SubmissionMethod(req.SubmissionMethod),
		IsImportant:      req.IsImportant,
		IsForAll:         req.IsForAll,
		AssignedTo:       req.AssignedTo,
		CreatedBy:        creatorID,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create task")
	}
	s.announce(ctx, models.ChangeOpInsert, task.ID)
	return task, nil
}

// Update modifies a task; only the creator may do so.
func (s *TaskService) Update(ctx context.Context, id string, req UpdateTaskRequest, actorID string) (*models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid task payload")
	}

	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "task not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task")
	}
	if task.CreatedBy != actorID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the creator can modify a task")
	}

	task.Subject = req.Subject
	task.Title = req.Title
	task.Description = req.Description
	task.Deadline = req.Deadline
	task.SubmissionMethod = models.SubmissionMethod(req.SubmissionMethod)
	task.IsImportant = req.IsImportant
	task.IsForAll = req.IsForAll
	task.AssignedTo = req.AssignedTo
	// The canonical array replaces any legacy single-assignee value.
	task.AssignedUserID = nil

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update task")
	}
	s.announce(ctx, models.ChangeOpUpdate, task.ID)
	return task, nil
}

// Delete removes a task; only the creator may do so.
func (s *TaskService) Delete(ctx context.Context, id, actorID string) error {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "task not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task")
	}
	if task.CreatedBy != actorID {
		return appErrors.Clone(appErrors.ErrForbidden, "only the creator can delete a task")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete task")
	}
	s.announce(ctx, models.ChangeOpDelete, id)
	return nil
}

// ToggleStatus upserts the viewer's completion flag for a visible task.
// Repeated calls with the same value are idempotent.
func (s *TaskService) ToggleStatus(ctx context.Context, taskID, viewerID string, req ToggleStatusRequest) (*models.UserTaskStatus, error) {
	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "task not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task")
	}
	if !task.Audience().IsVisibleTo(viewerID) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "task not found")
	}

	status := models.UserTaskStatus{UserID: viewerID, TaskID: taskID, IsCompleted: req.IsCompleted}
	if err := s.repo.UpsertStatus(ctx, status); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update task status")
	}
	s.announce(ctx, models.ChangeOpUpdate, taskID)
	return &status, nil
}

// UrgentCount returns the number of visible, uncompleted tasks that are
// expired or due within a day, restricted to deadlines inside the
// forward-looking urgent window. Sentinel deadlines never count.
func (s *TaskService) UrgentCount(ctx context.Context, viewerID string) (int, error) {
	withStatus, err := s.ListForViewer(ctx, viewerID, models.TaskFilter{})
	if err != nil {
		return 0, err
	}

	now := s.now()
	windowEnd := now.Add(time.Duration(s.cfg.UrgentWindowDays) * 24 * time.Hour)
	count := 0
	for _, task := range withStatus {
		if task.IsCompleted || !task.DeadlineStatus.IsUrgent() {
			continue
		}
		if task.Deadline != nil && task.Deadline.After(windowEnd) {
			continue
		}
		count++
	}
	return count, nil
}

func (s *TaskService) announce(ctx context.Context, op models.ChangeOp, id string) {
	if s.notifier != nil {
		s.notifier.Announce(ctx, "tasks", op, id)
	}
}
