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

type stubTaskLister struct {
	tasks []models.TaskWithStatus
}

func (s *stubTaskLister) ListForViewer(ctx context.Context, viewerID string, filter models.TaskFilter) ([]models.TaskWithStatus, error) {
	return s.tasks, nil
}

type stubEventLister struct {
	events []models.Event
}

func (s *stubEventLister) ListForViewer(ctx context.Context, viewerID string) ([]models.Event, error) {
	return s.events, nil
}

type stubTestLister struct {
	tests []models.Test
}

func (s *stubTestLister) List(ctx context.Context) ([]models.Test, error) {
	return s.tests, nil
}

func TestBuildMonthGridAlwaysFortyTwoCells(t *testing.T) {
	months := []struct {
		year  int
		month time.Month
	}{
		{2024, time.February}, // leap year
		{2023, time.February},
		{2024, time.March},   // 1st is a Friday
		{2024, time.September}, // 1st is a Sunday
		{2024, time.December},
		{2025, time.June},
	}
	for _, m := range months {
		grid := BuildMonthGrid(m.year, m.month, time.UTC, nil, nil, nil)
		assert.Len(t, grid, models.MonthGridCells, "%d-%s", m.year, m.month)
	}
}

func TestBuildMonthGridCoversWholeMonthInOrder(t *testing.T) {
	grid := BuildMonthGrid(2024, time.March, time.UTC, nil, nil, nil)
	require.Len(t, grid, models.MonthGridCells)

	// March 2024 starts on a Friday, so five cells of February lead the grid.
	leading := 0
	for _, cell := range grid {
		if cell.IsCurrentMonth {
			break
		}
		leading++
	}
	assert.Equal(t, 5, leading)

	day := 1
	for _, cell := range grid {
		if !cell.IsCurrentMonth {
			continue
		}
		assert.Equal(t, time.March, cell.Date.Month())
		assert.Equal(t, day, cell.Date.Day())
		day++
	}
	assert.Equal(t, 32, day)

	// Trailing cells continue into April without gaps.
	assert.Equal(t, time.April, grid[len(grid)-1].Date.Month())
}

func TestBuildMonthGridBucketsByLocalDay(t *testing.T) {
	// 23:30 UTC on the 15th is already the 16th in Tokyo.
	deadline := time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC)
	task := models.Task{ID: "t1", Subject: "Math", Title: "Worksheet", Deadline: &deadline, IsForAll: true}
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	utcGrid := BuildMonthGrid(2024, time.March, time.UTC, []models.Task{task}, nil, nil)
	tokyoGrid := BuildMonthGrid(2024, time.March, tokyo, []models.Task{task}, nil, nil)

	assert.Equal(t, 15, dayHolding(t, utcGrid, "t1"))
	assert.Equal(t, 16, dayHolding(t, tokyoGrid, "t1"))
}

func dayHolding(t *testing.T, grid []models.CalendarDay, taskID string) int {
	t.Helper()
	for _, cell := range grid {
		for _, task := range cell.Tasks {
			if task.ID == taskID {
				return cell.Date.Day()
			}
		}
	}
	t.Fatalf("task %s not found in grid", taskID)
	return 0
}

func TestBuildMonthGridPlacesEventsAndTests(t *testing.T) {
	event := models.Event{ID: "e1", Title: "Sports day", DateTime: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC), IsForAll: true}
	exam := models.Test{ID: "x1", Subject: "Science", TestDate: time.Date(2024, 3, 22, 10, 0, 0, 0, time.UTC)}

	grid := BuildMonthGrid(2024, time.March, time.UTC, nil, []models.Event{event}, []models.Test{exam})

	var eventDay, testDay int
	for _, cell := range grid {
		if len(cell.Events) > 0 {
			eventDay = cell.Date.Day()
		}
		if len(cell.Tests) > 0 {
			testDay = cell.Date.Day()
		}
	}
	assert.Equal(t, 10, eventDay)
	assert.Equal(t, 22, testDay)
}

func TestCalendarServiceMonthGrid(t *testing.T) {
	deadline := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	tasks := &stubTaskLister{tasks: []models.TaskWithStatus{{
		Task: models.Task{ID: "t1", Subject: "Math", Title: "Worksheet", Deadline: &deadline, IsForAll: true},
	}}}
	svc := NewCalendarService(tasks, &stubEventLister{}, &stubTestLister{}, zap.NewNop())

	grid, err := svc.MonthGrid(context.Background(), "u1", 2024, time.March, time.UTC)
	require.NoError(t, err)
	require.Len(t, grid, models.MonthGridCells)
	assert.Equal(t, 5, dayHolding(t, grid, "t1"))

	_, err = svc.MonthGrid(context.Background(), "u1", 2024, time.Month(13), time.UTC)
	require.Error(t, err)
}
