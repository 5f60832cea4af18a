package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/s-ao213/next-task-app/internal/models"
)

const testColumns = `id, subject, test_date, scope, related_task_id, teacher, is_important, created_by, created_at, updated_at`

// TestRepository provides database access for tests and per-user
// notification opt-ins.
type TestRepository struct {
	db *sqlx.DB
}

// NewTestRepository creates a new instance of TestRepository.
func NewTestRepository(db *sqlx.DB) *TestRepository {
	return &TestRepository{db: db}
}

// List returns all tests ordered by test date.
func (r *TestRepository) List(ctx context.Context) ([]models.Test, error) {
	query := fmt.Sprintf(`SELECT %s FROM tests ORDER BY test_date ASC`, testColumns)
	var tests []models.Test
	if err := r.db.SelectContext(ctx, &tests, query); err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	return tests, nil
}

// GetByID returns a test by identifier.
func (r *TestRepository) GetByID(ctx context.Context, id string) (*models.Test, error) {
	query := fmt.Sprintf(`SELECT %s FROM tests WHERE id = $1 LIMIT 1`, testColumns)
	var test models.Test
	if err := r.db.GetContext(ctx, &test, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find test by id: %w", err)
	}
	return &test, nil
}

// Create inserts a new test.
func (r *TestRepository) Create(ctx context.Context, test *models.Test) error {
	if test.ID == "" {
		test.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if test.CreatedAt.IsZero() {
		test.CreatedAt = now
	}
	test.UpdatedAt = now

	const query = `INSERT INTO tests (id, subject, test_date, scope, related_task_id, teacher, is_important, created_by, created_at, updated_at) VALUES (:id, :subject, :test_date, :scope, :related_task_id, :teacher, :is_important, :created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, test); err != nil {
		return fmt.Errorf("create test: %w", err)
	}
	return nil
}

// Update updates mutable fields of a test.
func (r *TestRepository) Update(ctx context.Context, test *models.Test) error {
	test.UpdatedAt = time.Now().UTC()
	const query = `UPDATE tests SET subject = :subject, test_date = :test_date, scope = :scope, related_task_id = :related_task_id, teacher = :teacher, is_important = :is_important, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, test); err != nil {
		return fmt.Errorf("update test: %w", err)
	}
	return nil
}

// Delete removes a test and its notification rows.
func (r *TestRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM test_notifications WHERE test_id = $1`, id); err != nil {
		return fmt.Errorf("delete test notifications: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tests WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete test: %w", err)
	}
	return nil
}

// UpsertNotification inserts or updates the (user, test) opt-in row.
func (r *TestRepository) UpsertNotification(ctx context.Context, n models.TestNotification) error {
	const query = `INSERT INTO test_notifications (user_id, test_id, is_notification_enabled) VALUES ($1, $2, $3) ON CONFLICT (user_id, test_id) DO UPDATE SET is_notification_enabled = EXCLUDED.is_notification_enabled`
	if _, err := r.db.ExecContext(ctx, query, n.UserID, n.TestID, n.IsNotificationEnabled); err != nil {
		return fmt.Errorf("upsert test notification: %w", err)
	}
	return nil
}

// NotificationsForUser returns the user's notification opt-ins.
func (r *TestRepository) NotificationsForUser(ctx context.Context, userID string) ([]models.TestNotification, error) {
	const query = `SELECT user_id, test_id, is_notification_enabled FROM test_notifications WHERE user_id = $1`
	var notifications []models.TestNotification
	if err := r.db.SelectContext(ctx, &notifications, query, userID); err != nil {
		return nil, fmt.Errorf("list test notifications: %w", err)
	}
	return notifications, nil
}
