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

type eventRepository interface {
	List(ctx context.Context) ([]models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
}

// CreateEventRequest describes the create payload. Venue is optional; the
// stored default is applied at the repository boundary.
type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Venue       string    `json:"venue"`
	Duration    *string   `json:"duration"`
	DateTime    time.Time `json:"date_time" validate:"required"`
	Description *string   `json:"description"`
	Items       *string   `json:"items"`
	IsImportant bool      `json:"is_important"`
	IsForAll    bool      `json:"is_for_all"`
	AssignedTo  []string  `json:"assigned_to"`
}

// UpdateEventRequest describes the update payload.
type UpdateEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Venue       string    `json:"venue"`
	Duration    *string   `json:"duration"`
	DateTime    time.Time `json:"date_time" validate:"required"`
	Description *string   `json:"description"`
	Items       *string   `json:"items"`
	IsImportant bool      `json:"is_important"`
	IsForAll    bool      `json:"is_for_all"`
	AssignedTo  []string  `json:"assigned_to"`
}

// EventService manages events and their per-viewer visibility.
type EventService struct {
	repo      eventRepository
	notifier  changeAnnouncer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService constructs the service.
func NewEventService(repo eventRepository, notifier changeAnnouncer, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, notifier: notifier, validator: validate, logger: logger}
}

// ListForViewer returns the events visible to the viewer in occurrence order.
func (s *EventService) ListForViewer(ctx context.Context, viewerID string) ([]models.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	return models.FilterVisibleEvents(events, viewerID), nil
}

// Get returns a single event if the viewer may see it.
func (s *EventService) Get(ctx context.Context, id, viewerID string) (*models.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	if !event.Audience().IsVisibleTo(viewerID) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	return event, nil
}

// Create registers a new event owned by the creator.
func (s *EventService) Create(ctx context.Context, req CreateEventRequest, creatorID string) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}

	event := &models.Event{
		Title:       req.Title,
		Venue:       req.Venue,
		Duration:    req.Duration,
		DateTime:    req.DateTime,
		Description: req.Description,
		Items:       req.Items,
		IsImportant: req.IsImportant,
		IsForAll:    req.IsForAll,
		AssignedTo:  req.AssignedTo,
		CreatedBy:   creatorID,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}
	s.announce(ctx, models.ChangeOpInsert, event.ID)
	return event, nil
}

// Update modifies an event; only the creator may do so.
func (s *EventService) Update(ctx context.Context, id string, req UpdateEventRequest, actorID string) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	if event.CreatedBy != actorID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the creator can modify an event")
	}

	event.Title = req.Title
	event.Venue = req.Venue
	event.Duration = req.Duration
	event.DateTime = req.DateTime
	event.Description = req.Description
	event.Items = req.Items
	event.IsImportant = req.IsImportant
	event.IsForAll = req.IsForAll
	event.AssignedTo = req.AssignedTo
	event.AssignedUserID = nil

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update event")
	}
	s.announce(ctx, models.ChangeOpUpdate, event.ID)
	return event, nil
}

// Delete removes an event; only the creator may do so.
func (s *EventService) Delete(ctx context.Context, id, actorID string) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	if event.CreatedBy != actorID {
		return appErrors.Clone(appErrors.ErrForbidden, "only the creator can delete an event")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete event")
	}
	s.announce(ctx, models.ChangeOpDelete, id)
	return nil
}

func (s *EventService) announce(ctx context.Context, op models.ChangeOp, id string) {
	if s.notifier != nil {
		s.notifier.Announce(ctx, "events", op, id)
	}
}
