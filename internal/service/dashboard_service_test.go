package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/s-ao213/next-task-app/internal/models"
)

type stubDashboardTasks struct {
	tasks  []models.TaskWithStatus
	urgent int
}

func (s *stubDashboardTasks) ListForViewer(ctx context.Context, viewerID string, filter models.TaskFilter) ([]models.TaskWithStatus, error) {
	return s.tasks, nil
}

func (s *stubDashboardTasks) UrgentCount(ctx context.Context, viewerID string) (int, error) {
	return s.urgent, nil
}

func taskDue(id string, deadline time.Time, completed bool) models.TaskWithStatus {
	return models.TaskWithStatus{
		Task:        models.Task{ID: id, Subject: "A", Title: id, Deadline: &deadline, IsForAll: true},
		IsCompleted: completed,
	}
}

func TestDashboardSummaryWindowsAndLimits(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	sentinel := time.Date(models.NoDeadlineYear, 12, 31, 0, 0, 0, 0, time.UTC)

	tasks := &stubDashboardTasks{urgent: 1}
	// Eight tasks inside the window; only the five soonest survive.
	for i := 1; i <= 8; i++ {
		tasks.tasks = append(tasks.tasks, taskDue("in-window", now.Add(time.Duration(i)*12*time.Hour), false))
	}
	tasks.tasks = append(tasks.tasks,
		taskDue("past", now.Add(-24*time.Hour), false),
		taskDue("beyond", now.Add(10*24*time.Hour), false),
		taskDue("done", now.Add(24*time.Hour), true),
		taskDue("sentinel", sentinel, false),
	)

	events := &stubEventLister{events: []models.Event{
		{ID: "e1", Title: "soon", DateTime: now.Add(24 * time.Hour)},
		{ID: "e2", Title: "sooner", DateTime: now.Add(12 * time.Hour)},
		{ID: "e3", Title: "later", DateTime: now.Add(3 * 24 * time.Hour)},
		{ID: "e4", Title: "latest", DateTime: now.Add(5 * 24 * time.Hour)},
		{ID: "e5", Title: "out of window", DateTime: now.Add(9 * 24 * time.Hour)},
	}}
	tests := &stubTestLister{tests: []models.Test{
		{ID: "x1", Subject: "Math", TestDate: now.Add(10 * 24 * time.Hour)},
		{ID: "x2", Subject: "Science", TestDate: now.Add(20 * 24 * time.Hour)},
	}}

	svc := NewDashboardService(DashboardServiceParams{
		Tasks:  tasks,
		Events: events,
		Tests:  tests,
		Logger: zap.NewNop(),
	})
	svc.now = func() time.Time { return now }

	summary, cached, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, cached)

	assert.Len(t, summary.UpcomingTasks, 5)
	for i := 1; i < len(summary.UpcomingTasks); i++ {
		assert.False(t, summary.UpcomingTasks[i].Deadline.Before(*summary.UpcomingTasks[i-1].Deadline))
	}

	require.Len(t, summary.UpcomingEvents, 3)
	assert.Equal(t, "e2", summary.UpcomingEvents[0].ID)
	assert.Equal(t, "e1", summary.UpcomingEvents[1].ID)
	assert.Equal(t, "e3", summary.UpcomingEvents[2].ID)

	require.Len(t, summary.UpcomingTests, 1)
	assert.Equal(t, "x1", summary.UpcomingTests[0].ID)

	assert.Equal(t, 1, summary.UrgentTaskCount)
	assert.Equal(t, 1, summary.CompletedTasks)
	assert.Equal(t, 12, summary.TotalTasks)
}

func TestDashboardSummaryEmpty(t *testing.T) {
	svc := NewDashboardService(DashboardServiceParams{
		Tasks:  &stubDashboardTasks{},
		Events: &stubEventLister{},
		Tests:  &stubTestLister{},
		Logger: zap.NewNop(),
	})

	summary, cached, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Empty(t, summary.UpcomingTasks)
	assert.Empty(t, summary.UpcomingEvents)
	assert.Empty(t, summary.UpcomingTests)
	assert.Zero(t, summary.TotalTasks)
}
