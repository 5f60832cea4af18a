package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/s-ao213/next-task-app/internal/models"
)

const taskColumns = `id, subject, title, description, deadline, submission_method, is_important, is_for_all, assigned_to, assigned_user_id, created_by, created_at, updated_at`

// TaskRepository provides database access for tasks and per-user completion
// status. Audience columns are returned in their stored shape; normalisation
// happens on the model.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new instance of TaskRepository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns tasks matching the filter ordered by deadline. Sentinel
// "no deadline" rows sort last by virtue of the 2099 year.
func (r *TaskRepository) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE 1=1`, taskColumns)
	var conditions []string
	var args []interface{}

	if filter.Subject != "" {
		conditions = append(conditions, fmt.Sprintf("subject = $%d", len(args)+1))
		args = append(args, filter.Subject)
	}
	if filter.IsImportant != nil {
		conditions = append(conditions, fmt.Sprintf("is_important = $%d", len(args)+1))
		args = append(args, *filter.IsImportant)
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY deadline ASC NULLS LAST, created_at ASC"

	var tasks []models.Task
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// GetByID returns a task by identifier.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id = $1 LIMIT 1`, taskColumns)
	var task models.Task
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find task by id: %w", err)
	}
	return &task, nil
}

// Create inserts a new task.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	const query = `INSERT INTO tasks (id, subject, title, description, deadline, submission_method, is_important, is_for_all, assigned_to, assigned_user_id, created_by, created_at, updated_at) VALUES (:id, :subject, :title, :description, :deadline, :submission_method, :is_important, :is_for_all, :assigned_to, :assigned_user_id, :created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// Update updates mutable fields of a task.
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = time.Now().UTC()
	const query = `UPDATE tasks SET subject = :subject, title = :title, description = :description, deadline = :deadline, submission_method = :submission_method, is_important = :is_important, is_for_all = :is_for_all, assigned_to = :assigned_to, assigned_user_id = :assigned_user_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Delete removes a task and its per-user status rows.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_task_status WHERE task_id = $1`, id); err != nil {
		return fmt.Errorf("delete task statuses: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// UpsertStatus inserts or updates the (user, task) completion row. The
// composite primary key plus ON CONFLICT keeps the invariant of at most one
// row per pair without in-process locking.
func (r *TaskRepository) UpsertStatus(ctx context.Context, status models.UserTaskStatus) error {
	const query = `INSERT INTO user_task_status (user_id, task_id, is_completed) VALUES ($1, $2, $3) ON CONFLICT (user_id, task_id) DO UPDATE SET is_completed = EXCLUDED.is_completed`
	if _, err := r.db.ExecContext(ctx, query, status.UserID, status.TaskID, status.IsCompleted); err != nil {
		return fmt.Errorf("upsert task status: %w", err)
	}
	return nil
}

// StatusesForUser returns all completion rows belonging to the user.
func (r *TaskRepository) StatusesForUser(ctx context.Context, userID string) ([]models.UserTaskStatus, error) {
	const query = `SELECT user_id, task_id, is_completed FROM user_task_status WHERE user_id = $1`
	var statuses []models.UserTaskStatus
	if err := r.db.SelectContext(ctx, &statuses, query, userID); err != nil {
		return nil, fmt.Errorf("list task statuses: %w", err)
	}
	return statuses, nil
}
