package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s-ao213/next-task-app/internal/models"
	"github.com/s-ao213/next-task-app/pkg/jobs"
)

type stubReminderUsers struct {
	users []models.User
}

func (s *stubReminderUsers) List(ctx context.Context, filter models.UserFilter) ([]models.User, *models.Pagination, error) {
	return s.users, nil, nil
}

type stubReminderTests struct {
	tests   []models.Test
	toggles map[string]bool
}

func (s *stubReminderTests) List(ctx context.Context) ([]models.Test, error) {
	return s.tests, nil
}

func (s *stubReminderTests) NotificationsForUser(ctx context.Context, viewerID string) (map[string]bool, error) {
	return s.toggles, nil
}

func announcedIDs(changes []models.Change) []string {
	ids := make([]string, 0, len(changes))
	for _, ch := range changes {
		ids = append(ids, ch.ID)
	}
	return ids
}

func TestRemindUserHonorsNotificationWindow(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	inWindow := now.AddDate(0, 0, 2)
	atHorizon := now.AddDate(0, 0, 3)
	beyond := now.AddDate(0, 0, 4)
	past := now.Add(-time.Hour)

	tasks := &stubTaskLister{tasks: []models.TaskWithStatus{
		taskDue("t-in", inWindow, false),
		taskDue("t-edge", atHorizon, false),
		taskDue("t-beyond", beyond, false),
		taskDue("t-done", inWindow, true),
		taskDue("t-past", past, false),
		{Task: models.Task{ID: "t-open", Subject: "A", Title: "t-open", IsForAll: true}},
	}}
	publisher := &mockAnnouncer{}
	svc := NewReminderService(&stubReminderUsers{}, tasks, &stubReminderTests{}, publisher, nil, ReminderServiceConfig{Enabled: true})
	svc.now = func() time.Time { return now }

	err := svc.remindUser(context.Background(), models.User{ID: "u1", NotificationDays: 3})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"t-in", "t-edge"}, announcedIDs(publisher.changes))
	for _, ch := range publisher.changes {
		assert.Equal(t, "reminders", ch.Collection)
		assert.Equal(t, models.ChangeOpInsert, ch.Op)
	}
}

func TestRemindUserDefaultsWindowWhenUnset(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	tomorrow := now.Add(20 * time.Hour)
	later := now.AddDate(0, 0, 2)

	tasks := &stubTaskLister{tasks: []models.TaskWithStatus{
		taskDue("t-soon", tomorrow, false),
		taskDue("t-later", later, false),
	}}
	publisher := &mockAnnouncer{}
	svc := NewReminderService(&stubReminderUsers{}, tasks, &stubReminderTests{}, publisher, nil, ReminderServiceConfig{Enabled: true})
	svc.now = func() time.Time { return now }

	err := svc.remindUser(context.Background(), models.User{ID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"t-soon"}, announcedIDs(publisher.changes))
}

func TestRemindUserTestToggleGate(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	soon := now.AddDate(0, 0, 2)
	far := now.AddDate(0, 0, 10)

	tests := &stubReminderTests{
		tests: []models.Test{
			{ID: "x-on", Subject: "Math", TestDate: soon},
			{ID: "x-off", Subject: "Science", TestDate: soon},
			{ID: "x-far", Subject: "English", TestDate: far},
		},
		toggles: map[string]bool{"x-on": true, "x-far": true},
	}
	publisher := &mockAnnouncer{}
	svc := NewReminderService(&stubReminderUsers{}, &stubTaskLister{}, tests, publisher, nil, ReminderServiceConfig{Enabled: true})
	svc.now = func() time.Time { return now }

	err := svc.remindUser(context.Background(), models.User{ID: "u1", NotificationDays: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"x-on"}, announcedIDs(publisher.changes))
}

func TestReminderServiceDisabledDoesNotStart(t *testing.T) {
	svc := NewReminderService(&stubReminderUsers{}, &stubTaskLister{}, &stubReminderTests{}, &mockAnnouncer{}, nil, ReminderServiceConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	err := svc.queue.Enqueue(jobs.Job{ID: "j1", Type: "user_reminders"})
	require.Error(t, err)
}
