package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s-ao213/next-task-app/internal/models"
	appErrors "github.com/s-ao213/next-task-app/pkg/errors"
)

type stubCacheRepo struct {
	patterns []string
}

func (s *stubCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	return appErrors.ErrCacheMiss
}

func (s *stubCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	s.patterns = append(s.patterns, pattern)
	return nil
}

func TestNotifierAnnounceInvalidatesDashboardCache(t *testing.T) {
	repo := &stubCacheRepo{}
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	notifier := NewNotifierService(nil, cache, nil, nil, NotifierServiceConfig{})

	notifier.Announce(context.Background(), "tasks", models.ChangeOpUpdate, "t1")

	assert.Equal(t, []string{"dash:*"}, repo.patterns)
}

func TestNotifierDisabledWithoutClient(t *testing.T) {
	notifier := NewNotifierService(nil, nil, nil, nil, NotifierServiceConfig{Enabled: true})

	assert.False(t, notifier.Enabled())
	// Must be a no-op rather than a nil dereference.
	notifier.Announce(context.Background(), "tasks", models.ChangeOpInsert, "t1")
}

func TestNotifierSubscribeDisabledReturnsClosedChannel(t *testing.T) {
	notifier := NewNotifierService(nil, nil, nil, nil, NotifierServiceConfig{})

	out, cancel := notifier.Subscribe(context.Background())
	defer cancel()

	select {
	case _, ok := <-out:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("expected a closed channel")
	}
}
