package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s-ao213/next-task-app/internal/models"
	appErrors "github.com/s-ao213/next-task-app/pkg/errors"
)

type mockEventRepo struct {
	events  map[string]*models.Event
	nextID  int
	deleted []string
}

func newMockEventRepo(events ...*models.Event) *mockEventRepo {
	m := &mockEventRepo{events: make(map[string]*models.Event)}
	for _, e := range events {
		m.events[e.ID] = e
	}
	return m
}

func (m *mockEventRepo) List(ctx context.Context) ([]models.Event, error) {
	out := make([]models.Event, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, *e)
	}
	return out, nil
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	if e, ok := m.events[id]; ok {
		clone := *e
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	m.nextID++
	event.ID = fmt.Sprintf("e%d", m.nextID)
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepo) Update(ctx context.Context, event *models.Event) error {
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, id string) error {
	delete(m.events, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func TestEventServiceVisibility(t *testing.T) {
	repo := newMockEventRepo(
		&models.Event{ID: "e1", Title: "Sports day", IsForAll: true, CreatedBy: "u1"},
		&models.Event{ID: "e2", Title: "Committee", AssignedTo: []string{"u2"}, CreatedBy: "u1"},
	)
	svc := NewEventService(repo, nil, nil, nil)

	forCreator, err := svc.ListForViewer(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, forCreator, 1)
	assert.Equal(t, "e1", forCreator[0].ID)

	forAssignee, err := svc.ListForViewer(context.Background(), "u2")
	require.NoError(t, err)
	assert.Len(t, forAssignee, 2)

	_, err = svc.Get(context.Background(), "e2", "u1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEventServiceCreateAnnouncesChange(t *testing.T) {
	repo := newMockEventRepo()
	notifier := &mockAnnouncer{}
	svc := NewEventService(repo, notifier, nil, nil)

	event, err := svc.Create(context.Background(), CreateEventRequest{
		Title:    "Open day",
		DateTime: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		IsForAll: true,
	}, "u1")
	require.NoError(t, err)
	assert.Equal(t, "e1", event.ID)

	require.Len(t, notifier.changes, 1)
	assert.Equal(t, "events", notifier.changes[0].Collection)
	assert.Equal(t, models.ChangeOpInsert, notifier.changes[0].Op)
}

func TestEventServiceCreateRequiresDate(t *testing.T) {
	svc := NewEventService(newMockEventRepo(), nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateEventRequest{Title: "No date"}, "u1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEventServiceUpdateOnlyByCreator(t *testing.T) {
	repo := newMockEventRepo(&models.Event{
		ID:        "e1",
		Title:     "Rehearsal",
		DateTime:  time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		IsForAll:  true,
		CreatedBy: "u1",
	})
	svc := NewEventService(repo, nil, nil, nil)

	req := UpdateEventRequest{
		Title:    "Rehearsal (moved)",
		DateTime: time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC),
		IsForAll: true,
	}

	_, err := svc.Update(context.Background(), "e1", req, "u2")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	updated, err := svc.Update(context.Background(), "e1", req, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Rehearsal (moved)", updated.Title)
	assert.Nil(t, updated.AssignedUserID)
}

func TestEventServiceDeleteOnlyByCreator(t *testing.T) {
	repo := newMockEventRepo(&models.Event{ID: "e1", Title: "Cleanup", IsForAll: true, CreatedBy: "u1"})
	svc := NewEventService(repo, nil, nil, nil)

	err := svc.Delete(context.Background(), "e1", "u2")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.Delete(context.Background(), "e1", "u1"))
	assert.Equal(t, []string{"e1"}, repo.deleted)

	err = svc.Delete(context.Background(), "e1", "u1")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
