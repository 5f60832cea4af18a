package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var classifyNow = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

func deadlinePtr(t time.Time) *time.Time { return &t }

func TestClassifyDeadlineSentinelYear(t *testing.T) {
	sentinel := time.Date(2099, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, DeadlineNoDeadline, ClassifyDeadline(&sentinel, false, classifyNow))
	// Completion does not override the sentinel.
	assert.Equal(t, DeadlineNoDeadline, ClassifyDeadline(&sentinel, true, classifyNow))
	assert.Equal(t, DeadlineNoDeadline, ClassifyDeadline(nil, false, classifyNow))
}

func TestClassifyDeadlineCompletedWins(t *testing.T) {
	overdue := classifyNow.Add(-48 * time.Hour)
	assert.Equal(t, DeadlineCompleted, ClassifyDeadline(&overdue, true, classifyNow))
}

func TestClassifyDeadlineBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		deadline time.Time
		want     DeadlineStatus
	}{
		{"one hour past", classifyNow.Add(-time.Hour), DeadlineExpired},
		{"23 hours ahead", classifyNow.Add(23 * time.Hour), DeadlineUrgentDueToday},
		{"exactly now", classifyNow, DeadlineUrgentDueToday},
		{"exactly one day", classifyNow.Add(24 * time.Hour), DeadlineUrgentDueToday},
		{"three days ahead", classifyNow.Add(72 * time.Hour), DeadlineDueSoon},
		{"just over three days", classifyNow.Add(73 * time.Hour), DeadlineNormal},
		{"next week", classifyNow.Add(7 * 24 * time.Hour), DeadlineNormal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyDeadline(deadlinePtr(tc.deadline), false, classifyNow))
		})
	}
}

func TestDaysUntilRoundsPartialDaysUp(t *testing.T) {
	assert.Equal(t, 1, DaysUntil(classifyNow.Add(time.Hour), classifyNow))
	assert.Equal(t, 1, DaysUntil(classifyNow.Add(24*time.Hour), classifyNow))
	assert.Equal(t, 2, DaysUntil(classifyNow.Add(25*time.Hour), classifyNow))
	assert.Equal(t, 0, DaysUntil(classifyNow, classifyNow))
}

func TestIsUrgent(t *testing.T) {
	assert.True(t, DeadlineExpired.IsUrgent())
	assert.True(t, DeadlineUrgentDueToday.IsUrgent())
	assert.False(t, DeadlineDueSoon.IsUrgent())
	assert.False(t, DeadlineCompleted.IsUrgent())
	assert.False(t, DeadlineNoDeadline.IsUrgent())
}
