package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/s-ao213/next-task-app/internal/models"
	appErrors "github.com/s-ao213/next-task-app/pkg/errors"
)

type mockAuthRepo struct {
	usersByEmail  map[string]*models.User
	usersByID     map[string]*models.User
	takenIDs      map[string]string
	refreshTokens map[string]*models.RefreshToken
	created       []*models.User
	createErr     error
	revokedUsers  []string
}

func newMockAuthRepo() *mockAuthRepo {
	return &mockAuthRepo{
		usersByEmail:  make(map[string]*models.User),
		usersByID:     make(map[string]*models.User),
		takenIDs:      make(map[string]string),
		refreshTokens: make(map[string]*models.RefreshToken),
	}
}

func (m *mockAuthRepo) add(user *models.User) {
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
	if user.StudentID != "" {
		m.takenIDs[user.StudentID] = user.ID
	}
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := m.usersByEmail[email]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.usersByID[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) StudentIDTaken(ctx context.Context, studentID, excludeUserID string) (bool, error) {
	owner, ok := m.takenIDs[studentID]
	return ok && owner != excludeUserID, nil
}

func (m *mockAuthRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, user)
	m.add(user)
	return nil
}

func (m *mockAuthRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	m.refreshTokens[token.Token] = token
	return nil
}

func (m *mockAuthRepo) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	if rt, ok := m.refreshTokens[token]; ok {
		return rt, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	for _, rt := range m.refreshTokens {
		if rt.ID == id {
			rt.Revoked = true
			rt.RevokedAt = &revokedAt
		}
	}
	return nil
}

func (m *mockAuthRepo) RevokeUserRefreshTokens(ctx context.Context, userID string) error {
	m.revokedUsers = append(m.revokedUsers, userID)
	return nil
}

func testAuthConfig() AuthConfig {
	return AuthConfig{
		AccessTokenSecret:  "secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "next-task-app",
	}
}

func TestAuthServiceSignupSuccess(t *testing.T) {
	repo := newMockAuthRepo()
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	res, err := svc.Signup(context.Background(), models.SignupRequest{
		Email:     "Student@Example.com",
		Password:  "password123",
		Name:      "Student One",
		StudentID: "  2110001  ",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "2110001", repo.created[0].StudentID)
	assert.Equal(t, "student@example.com", repo.created[0].Email)
	assert.Equal(t, models.DefaultNotificationDays, repo.created[0].NotificationDays)
}

func TestAuthServiceSignupMissingStudentID(t *testing.T) {
	repo := newMockAuthRepo()
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Email:     "student@example.com",
		Password:  "password123",
		Name:      "Student One",
		StudentID: "   ",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMissingStudentID.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)
}

func TestAuthServiceSignupDuplicateStudentID(t *testing.T) {
	repo := newMockAuthRepo()
	repo.add(&models.User{ID: "u1", Email: "first@example.com", StudentID: "2110001"})
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Email:     "second@example.com",
		Password:  "password123",
		Name:      "Student Two",
		StudentID: "2110001",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicateStudentID.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := newMockAuthRepo()
	repo.add(&models.User{ID: "u1", Email: "user@example.com", PasswordHash: string(password), StudentID: "2110001"})
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "user@example.com", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, "2110001", res.User.StudentID)
	assert.NotEmpty(t, repo.refreshTokens)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := newMockAuthRepo()
	repo.add(&models.User{ID: "u1", Email: "user@example.com", PasswordHash: string(password)})
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "user@example.com", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRefreshRotatesToken(t *testing.T) {
	repo := newMockAuthRepo()
	user := &models.User{ID: "u1", Email: "user@example.com", StudentID: "2110001"}
	repo.add(user)
	repo.refreshTokens["old-token"] = &models.RefreshToken{
		ID:        "rt1",
		UserID:    user.ID,
		Token:     "old-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	res, err := svc.Refresh(context.Background(), models.RefreshTokenRequest{RefreshToken: "old-token"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEqual(t, "old-token", res.RefreshToken)
	assert.True(t, repo.refreshTokens["old-token"].Revoked)
}

func TestAuthServiceRefreshExpiredToken(t *testing.T) {
	repo := newMockAuthRepo()
	repo.add(&models.User{ID: "u1", Email: "user@example.com"})
	repo.refreshTokens["stale"] = &models.RefreshToken{
		ID:        "rt1",
		UserID:    "u1",
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	_, err := svc.Refresh(context.Background(), models.RefreshTokenRequest{RefreshToken: "stale"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLogoutRevokesSessions(t *testing.T) {
	repo := newMockAuthRepo()
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	require.NoError(t, svc.Logout(context.Background(), "u1"))
	assert.Equal(t, []string{"u1"}, repo.revokedUsers)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	repo := newMockAuthRepo()
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())
	user := &models.User{ID: "u1", Email: "user@example.com", StudentID: "2110001"}

	login, err := svc.issueTokens(context.Background(), user, "", "")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "2110001", claims.StudentID)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(newMockAuthRepo(), validator.New(), zap.NewNop(), testAuthConfig())

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
