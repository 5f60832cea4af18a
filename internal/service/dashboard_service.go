package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/s-ao213/next-task-app/internal/models"
)

type urgentCounter interface {
	ListForViewer(ctx context.Context, viewerID string, filter models.TaskFilter) ([]models.TaskWithStatus, error)
	UrgentCount(ctx context.Context, viewerID string) (int, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL        time.Duration
	TaskWindowDays  int
	EventWindowDays int
	TestWindowDays  int
	TaskLimit       int
	EventLimit      int
	TestLimit       int
}

// DashboardService composes the per-viewer summary payload.
type DashboardService struct {
	tasks  urgentCounter
	events eventLister
	tests  testLister
	cache  *CacheService
	logger *zap.Logger
	now    func() time.Time
	cfg    DashboardServiceConfig
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Tasks  urgentCounter
	Events eventLister
	Tests  testLister
	Cache  *CacheService
	Logger *zap.Logger
	Config DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.TaskWindowDays <= 0 {
		cfg.TaskWindowDays = 7
	}
	if cfg.EventWindowDays <= 0 {
		cfg.EventWindowDays = 7
	}
	if cfg.TestWindowDays <= 0 {
		cfg.TestWindowDays = 14
	}
	if cfg.TaskLimit <= 0 {
		cfg.TaskLimit = 5
	}
	if cfg.EventLimit <= 0 {
		cfg.EventLimit = 3
	}
	if cfg.TestLimit <= 0 {
		cfg.TestLimit = 3
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		tasks:  params.Tasks,
		events: params.Events,
		tests:  params.Tests,
		cache:  params.Cache,
		logger: logger,
		now:    time.Now,
		cfg:    cfg,
	}
}

// Summary returns the viewer's dashboard and indicates cache utilisation.
func (s *DashboardService) Summary(ctx context.Context, viewerID string) (*models.DashboardSummary, bool, error) {
	now := s.now()
	cacheKey := fmt.Sprintf("dash:%s:%s", viewerID, now.Format("2006-01-02"))
	if s.cache.Enabled() {
		var cached models.DashboardSummary
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	summary, err := s.compose(ctx, viewerID, now)
	if err != nil {
		return nil, false, err
	}
	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, cacheKey, summary, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("dashboard cache persist failed", zap.String("viewer_id", viewerID), zap.Error(err))
		}
	}
	return summary, false, nil
}

func (s *DashboardService) compose(ctx context.Context, viewerID string, now time.Time) (*models.DashboardSummary, error) {
	tasks, err := s.tasks.ListForViewer(ctx, viewerID, models.TaskFilter{})
	if err != nil {
		return nil, err
	}
	events, err := s.events.ListForViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	tests, err := s.tests.List(ctx)
	if err != nil {
		return nil, err
	}
	urgent, err := s.tasks.UrgentCount(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	completed := 0
	for _, t := range tasks {
		if t.IsCompleted {
			completed++
		}
	}

	summary := &models.DashboardSummary{
		UpcomingTasks:   upcomingTasks(tasks, now, s.cfg.TaskWindowDays, s.cfg.TaskLimit),
		UpcomingEvents:  upcomingEvents(events, now, s.cfg.EventWindowDays, s.cfg.EventLimit),
		UpcomingTests:   upcomingTests(tests, now, s.cfg.TestWindowDays, s.cfg.TestLimit),
		UrgentTaskCount: urgent,
		CompletedTasks:  completed,
		TotalTasks:      len(tasks),
		GeneratedAt:     now.UTC(),
	}
	return summary, nil
}

// upcomingTasks keeps incomplete tasks with a real deadline inside the window,
// soonest first.
func upcomingTasks(tasks []models.TaskWithStatus, now time.Time, windowDays, limit int) []models.TaskWithStatus {
	horizon := now.AddDate(0, 0, windowDays)
	out := make([]models.TaskWithStatus, 0, limit)
	for _, t := range tasks {
		if t.IsCompleted || models.HasNoDeadline(t.Deadline) {
			continue
		}
		if t.Deadline.Before(now) || t.Deadline.After(horizon) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Deadline.Before(*out[j].Deadline)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func upcomingEvents(events []models.Event, now time.Time, windowDays, limit int) []models.Event {
	horizon := now.AddDate(0, 0, windowDays)
	out := make([]models.Event, 0, limit)
	for _, e := range events {
		if e.DateTime.Before(now) || e.DateTime.After(horizon) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateTime.Before(out[j].DateTime)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func upcomingTests(tests []models.Test, now time.Time, windowDays, limit int) []models.Test {
	horizon := now.AddDate(0, 0, windowDays)
	out := make([]models.Test, 0, limit)
	for _, t := range tests {
		if t.TestDate.Before(now) || t.TestDate.After(horizon) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TestDate.Before(out[j].TestDate)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
