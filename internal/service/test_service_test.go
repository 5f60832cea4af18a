package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/s-ao213/next-task-app/internal/models"
	appErrors "github.com/s-ao213/next-task-app/pkg/errors"
)

type mockTestRepo struct {
	tests         map[string]*models.Test
	notifications map[string]models.TestNotification
	nextID        int
	deleted       []string
}

func newMockTestRepo(tests ...*models.Test) *mockTestRepo {
	m := &mockTestRepo{
		tests:         make(map[string]*models.Test),
		notifications: make(map[string]models.TestNotification),
	}
	for _, tt := range tests {
		m.tests[tt.ID] = tt
	}
	return m
}

func (m *mockTestRepo) List(ctx context.Context) ([]models.Test, error) {
	out := make([]models.Test, 0, len(m.tests))
	for _, tt := range m.tests {
		out = append(out, *tt)
	}
	return out, nil
}

func (m *mockTestRepo) GetByID(ctx context.Context, id string) (*models.Test, error) {
	if tt, ok := m.tests[id]; ok {
		clone := *tt
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTestRepo) Create(ctx context.Context, test *models.Test) error {
	m.nextID++
	test.ID = fmt.Sprintf("x%d", m.nextID)
	m.tests[test.ID] = test
	return nil
}

func (m *mockTestRepo) Update(ctx context.Context, test *models.Test) error {
	m.tests[test.ID] = test
	return nil
}

func (m *mockTestRepo) Delete(ctx context.Context, id string) error {
	delete(m.tests, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockTestRepo) UpsertNotification(ctx context.Context, n models.TestNotification) error {
	m.notifications[n.UserID+"/"+n.TestID] = n
	return nil
}

func (m *mockTestRepo) NotificationsForUser(ctx context.Context, userID string) ([]models.TestNotification, error) {
	out := make([]models.TestNotification, 0)
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

type mockTaskLookup struct {
	tasks map[string]*models.Task
}

func (m *mockTaskLookup) GetByID(ctx context.Context, id string) (*models.Task, error) {
	if t, ok := m.tasks[id]; ok {
		return t, nil
	}
	return nil, sql.ErrNoRows
}

func TestTestServiceCreateChecksRelatedTask(t *testing.T) {
	repo := newMockTestRepo()
	lookup := &mockTaskLookup{tasks: map[string]*models.Task{"t1": {ID: "t1"}}}
	svc := NewTestService(repo, lookup, nil, validator.New(), zap.NewNop())

	related := "t1"
	created, err := svc.Create(context.Background(), CreateTestRequest{
		Subject:       "Math",
		TestDate:      time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC),
		Scope:         "Chapters 1-3",
		RelatedTaskID: &related,
	}, "u1")
	require.NoError(t, err)
	assert.Equal(t, "t1", *created.RelatedTaskID)

	missing := "t9"
	_, err = svc.Create(context.Background(), CreateTestRequest{
		Subject:       "Math",
		TestDate:      time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC),
		Scope:         "Chapters 1-3",
		RelatedTaskID: &missing,
	}, "u1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTestServiceToggleNotificationIdempotent(t *testing.T) {
	repo := newMockTestRepo(&models.Test{ID: "x1", Subject: "Math", CreatedBy: "u1"})
	svc := NewTestService(repo, &mockTaskLookup{}, nil, validator.New(), zap.NewNop())

	first, err := svc.ToggleNotification(context.Background(), "x1", "u2", ToggleNotificationRequest{IsNotificationEnabled: true})
	require.NoError(t, err)
	second, err := svc.ToggleNotification(context.Background(), "x1", "u2", ToggleNotificationRequest{IsNotificationEnabled: true})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, repo.notifications, 1)

	toggles, err := svc.NotificationsForUser(context.Background(), "u2")
	require.NoError(t, err)
	assert.True(t, toggles["x1"])
}

func TestTestServiceDeleteOnlyByCreator(t *testing.T) {
	repo := newMockTestRepo(&models.Test{ID: "x1", Subject: "Math", CreatedBy: "u1"})
	svc := NewTestService(repo, &mockTaskLookup{}, nil, validator.New(), zap.NewNop())

	err := svc.Delete(context.Background(), "x1", "u2")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.Delete(context.Background(), "x1", "u1"))
	assert.Equal(t, []string{"x1"}, repo.deleted)
}
