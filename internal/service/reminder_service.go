package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/s-ao213/next-task-app/internal/models"
	"github.com/s-ao213/next-task-app/pkg/jobs"
)

type reminderUserLister interface {
	List(ctx context.Context, filter models.UserFilter) ([]models.User, *models.Pagination, error)
}

type reminderTestSource interface {
	List(ctx context.Context) ([]models.Test, error)
	NotificationsForUser(ctx context.Context, viewerID string) (map[string]bool, error)
}

type reminderPublisher interface {
	Announce(ctx context.Context, collection string, op models.ChangeOp, id string)
}

// ReminderServiceConfig drives the periodic deadline sweep.
type ReminderServiceConfig struct {
	Enabled     bool
	Interval    time.Duration
	Concurrency int
	MaxRetries  int
}

// ReminderService sweeps upcoming deadlines and fans out per-user reminder
// envelopes on the reminders channel. Each user's notification_days setting
// decides how far ahead of a deadline they are reminded.
type ReminderService struct {
	users     reminderUserLister
	tasks     taskLister
	tests     reminderTestSource
	publisher reminderPublisher
	queue     *jobs.Queue
	logger    *zap.Logger
	now       func() time.Time
	cfg       ReminderServiceConfig
}

// NewReminderService constructs the reminder worker.
func NewReminderService(users reminderUserLister, tasks taskLister, tests reminderTestSource, publisher reminderPublisher, logger *zap.Logger, cfg ReminderServiceConfig) *ReminderService {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 2
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ReminderService{
		users:     users,
		tasks:     tasks,
		tests:     tests,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
		cfg:       cfg,
	}
	s.queue = jobs.NewQueue("reminders", s.handleJob, jobs.QueueConfig{
		Workers:    cfg.Concurrency,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the sweep loop. It returns immediately; the loop stops when
// ctx is cancelled.
func (s *ReminderService) Start(ctx context.Context) {
	if !s.cfg.Enabled {
		return
	}
	s.queue.Start(ctx)
	go s.loop(ctx)
	s.logger.Info("reminder sweep started", zap.Duration("interval", s.cfg.Interval))
}

// Stop drains the worker queue.
func (s *ReminderService) Stop() {
	if !s.cfg.Enabled {
		return
	}
	s.queue.Stop()
}

func (s *ReminderService) loop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.Warn("reminder sweep failed", zap.Error(err))
			}
		}
	}
}

// Sweep enqueues one reminder job per user. Exported so an operator endpoint
// or test can trigger a pass directly.
func (s *ReminderService) Sweep(ctx context.Context) error {
	users, _, err := s.users.List(ctx, models.UserFilter{})
	if err != nil {
		return err
	}
	for _, u := range users {
		job := jobs.Job{
			ID:      fmt.Sprintf("remind-%s-%d", u.ID, s.now().Unix()),
			Type:    "user_reminders",
			UserID:  u.ID,
			Payload: u,
		}
		if err := s.queue.Enqueue(job); err != nil {
			s.logger.Warn("reminder enqueue failed", zap.String("user_id", u.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *ReminderService) handleJob(ctx context.Context, job jobs.Job) error {
	user, ok := job.Payload.(models.User)
	if !ok {
		s.logger.Error("reminder job carried unexpected payload", zap.String("job_id", job.ID))
		return nil
	}
	return s.remindUser(ctx, user)
}

func (s *ReminderService) remindUser(ctx context.Context, user models.User) error {
	now := s.now()
	days := user.NotificationDays
	if days < 1 {
		days = models.DefaultNotificationDays
	}
	horizon := now.AddDate(0, 0, days)

	tasks, err := s.tasks.ListForViewer(ctx, user.ID, models.TaskFilter{})
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if t.IsCompleted || models.HasNoDeadline(t.Deadline) {
			continue
		}
		if t.Deadline.Before(now) || t.Deadline.After(horizon) {
			continue
		}
		s.publisher.Announce(ctx, "reminders", models.ChangeOpInsert, t.ID)
	}

	tests, err := s.tests.List(ctx)
	if err != nil {
		return err
	}
	toggles, err := s.tests.NotificationsForUser(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, t := range tests {
		if !toggles[t.ID] {
			continue
		}
		if t.TestDate.Before(now) || t.TestDate.After(horizon) {
			continue
		}
		s.publisher.Announce(ctx, "reminders", models.ChangeOpInsert, t.ID)
	}
	return nil
}
