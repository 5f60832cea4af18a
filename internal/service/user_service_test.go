package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/s-ao213/next-task-app/internal/models"
	appErrors "github.com/s-ao213/next-task-app/pkg/errors"
)

type mockUserRepo struct {
	users   map[string]*models.User
	updated []*models.User
}

func newMockUserRepo(users ...*models.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByStudentID(ctx context.Context, studentID string) (*models.User, error) {
	for _, u := range m.users {
		if u.StudentID == studentID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) StudentIDTaken(ctx context.Context, studentID, excludeUserID string) (bool, error) {
	for _, u := range m.users {
		if u.StudentID == studentID && u.ID != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	m.updated = append(m.updated, user)
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func TestUserServiceGetByStudentID(t *testing.T) {
	repo := newMockUserRepo(&models.User{ID: "u1", StudentID: "2110001", Name: "Student One"})
	svc := NewUserService(repo, validator.New(), zap.NewNop())

	user, err := svc.GetByStudentID(context.Background(), " 2110001 ")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	_, err = svc.GetByStudentID(context.Background(), "9999999")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.GetByStudentID(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMissingStudentID.Code, appErrors.FromError(err).Code)
}

func TestUserServiceUpdateStudentID(t *testing.T) {
	repo := newMockUserRepo(
		&models.User{ID: "u1", StudentID: "2110001"},
		&models.User{ID: "u2", StudentID: "2110002"},
	)
	svc := NewUserService(repo, validator.New(), zap.NewNop())

	user, err := svc.UpdateStudentID(context.Background(), "u1", UpdateStudentIDRequest{StudentID: " 2110009 "})
	require.NoError(t, err)
	assert.Equal(t, "2110009", user.StudentID)
	require.Len(t, repo.updated, 1)
}

func TestUserServiceUpdateStudentIDKeepsOwn(t *testing.T) {
	repo := newMockUserRepo(&models.User{ID: "u1", StudentID: "2110001"})
	svc := NewUserService(repo, validator.New(), zap.NewNop())

	// Saving the id you already hold is not a conflict.
	user, err := svc.UpdateStudentID(context.Background(), "u1", UpdateStudentIDRequest{StudentID: "2110001"})
	require.NoError(t, err)
	assert.Equal(t, "2110001", user.StudentID)
}

func TestUserServiceUpdateStudentIDConflict(t *testing.T) {
	repo := newMockUserRepo(
		&models.User{ID: "u1", StudentID: "2110001"},
		&models.User{ID: "u2", StudentID: "2110002"},
	)
	svc := NewUserService(repo, validator.New(), zap.NewNop())

	_, err := svc.UpdateStudentID(context.Background(), "u1", UpdateStudentIDRequest{StudentID: "2110002"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicateStudentID.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.updated)
}

func TestUserServiceUpdateNotificationDays(t *testing.T) {
	repo := newMockUserRepo(&models.User{ID: "u1", NotificationDays: 1})
	svc := NewUserService(repo, validator.New(), zap.NewNop())

	user, err := svc.UpdateNotificationDays(context.Background(), "u1", UpdateNotificationDaysRequest{NotificationDays: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, user.NotificationDays)

	_, err = svc.UpdateNotificationDays(context.Background(), "u1", UpdateNotificationDaysRequest{NotificationDays: 31})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
