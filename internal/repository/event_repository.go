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

const eventColumns = `id, title, venue, duration, date_time, description, items, is_important, is_for_all, assigned_to, assigned_user_id, created_by, created_at, updated_at`

// EventRepository provides database access for events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates a new instance of EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns all events ordered by occurrence time.
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events ORDER BY date_time ASC`, eventColumns)
	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// GetByID returns an event by identifier.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1 LIMIT 1`, eventColumns)
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find event by id: %w", err)
	}
	return &event, nil
}

// Create inserts a new event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	if event.Venue == "" {
		event.Venue = models.DefaultVenue
	}

	const query = `INSERT INTO events (id, title, venue, duration, date_time, description, items, is_important, is_for_all, assigned_to, assigned_user_id, created_by, created_at, updated_at) VALUES (:id, :title, :venue, :duration, :date_time, :description, :items, :is_important, :is_for_all, :assigned_to, :assigned_user_id, :created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Update updates mutable fields of an event.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now().UTC()
	if event.Venue == "" {
		event.Venue = models.DefaultVenue
	}
	const query = `UPDATE events SET title = :title, venue = :venue, duration = :duration, date_time = :date_time, description = :description, items = :items, is_important = :is_important, is_for_all = :is_for_all, assigned_to = :assigned_to, assigned_user_id = :assigned_user_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// Delete removes an event.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
