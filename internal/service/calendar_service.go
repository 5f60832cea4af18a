package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/s-ao213/next-task-app/internal/models"
	appErrors "github.com/s-ao213/next-task-app/pkg/errors"
)

type taskLister interface {
	ListForViewer(ctx context.Context, viewerID string, filter models.TaskFilter) ([]models.TaskWithStatus, error)
}

type eventLister interface {
	ListForViewer(ctx context.Context, viewerID string) ([]models.Event, error)
}

type testLister interface {
	List(ctx context.Context) ([]models.Test, error)
}

// CalendarService builds month grids from the viewer's visible items.
type CalendarService struct {
	tasks  taskLister
	events eventLister
	tests  testLister
	logger *zap.Logger
}

// NewCalendarService constructs the service.
func NewCalendarService(tasks taskLister, events eventLister, tests testLister, logger *zap.Logger) *CalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{tasks: tasks, events: events, tests: tests, logger: logger}
}

// MonthGrid fetches the viewer's visible items and buckets them into the
// 42-cell grid for the given year and month. loc controls which wall-clock
// day an instant belongs to.
func (s *CalendarService) MonthGrid(ctx context.Context, viewerID string, year int, month time.Month, loc *time.Location) ([]models.CalendarDay, error) {
	if month < time.January || month > time.December {
		return nil, appErrors.Clone(appErrors.ErrValidation, "month must be between 1 and 12")
	}
	if loc == nil {
		loc = time.UTC
	}

	withStatus, err := s.tasks.ListForViewer(ctx, viewerID, models.TaskFilter{})
	if err != nil {
		return nil, err
	}
	tasks := make([]models.Task, 0, len(withStatus))
	for _, t := range withStatus {
		tasks = append(tasks, t.Task)
	}

	events, err := s.events.ListForViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	tests, err := s.tests.List(ctx)
	if err != nil {
		return nil, err
	}

	return BuildMonthGrid(year, month, loc, tasks, events, tests), nil
}

// BuildMonthGrid produces exactly 42 cells: the weekday of the first of the
// month (Sunday=0) determines how many trailing days of the previous month
// lead the grid, then one cell per day of the month, then days of the next
// month pad the tail. Items land on the cell whose local calendar day equals
// theirs; time of day is ignored. Pure function of its inputs.
func BuildMonthGrid(year int, month time.Month, loc *time.Location, tasks []models.Task, events []models.Event, tests []models.Test) []models.CalendarDay {
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	leading := int(firstOfMonth.Weekday())

	days := make([]models.CalendarDay, 0, models.MonthGridCells)

	// time.Date normalises out-of-range days, so day 0 is the last day of
	// the previous month and days beyond the month's end roll forward.
	for i := leading; i > 0; i-- {
		date := time.Date(year, month, 1-i, 0, 0, 0, 0, loc)
		days = append(days, buildDay(date, false, loc, tasks, events, tests))
	}

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, loc)
		days = append(days, buildDay(date, true, loc, tasks, events, tests))
	}

	for d := 1; len(days) < models.MonthGridCells; d++ {
		date := time.Date(year, month+1, d, 0, 0, 0, 0, loc)
		days = append(days, buildDay(date, false, loc, tasks, events, tests))
	}

	return days
}

func buildDay(date time.Time, isCurrentMonth bool, loc *time.Location, tasks []models.Task, events []models.Event, tests []models.Test) models.CalendarDay {
	day := models.CalendarDay{
		Date:           date,
		IsCurrentMonth: isCurrentMonth,
		Tasks:          []models.Task{},
		Events:         []models.Event{},
		Tests:          []models.Test{},
	}
	for _, t := range tasks {
		if t.Deadline != nil && models.SameCalendarDay(*t.Deadline, date, loc) {
			day.Tasks = append(day.Tasks, t)
		}
	}
	for _, e := range events {
		if models.SameCalendarDay(e.DateTime, date, loc) {
			day.Events = append(day.Events, e)
		}
	}
	for _, t := range tests {
		if models.SameCalendarDay(t.TestDate, date, loc) {
			day.Tests = append(day.Tests, t)
		}
	}
	return day
}
