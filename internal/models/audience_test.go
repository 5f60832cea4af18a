package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAudienceForAllWins(t *testing.T) {
	// Legacy rows can carry both the flag and a populated id list; the flag
	// wins and the list is dropped.
	a := NormalizeAudience(true, []string{"u1", "u2"}, nil)
	assert.True(t, a.ForAll)
	assert.Empty(t, a.ExplicitIDs)
	assert.True(t, a.IsVisibleTo("someone-else"))
}

func TestNormalizeAudienceLegacySingleAssignee(t *testing.T) {
	legacy := "u9"
	a := NormalizeAudience(false, nil, &legacy)
	assert.False(t, a.ForAll)
	assert.Equal(t, []string{"u9"}, a.ExplicitIDs)
	assert.True(t, a.IsVisibleTo("u9"))
	assert.False(t, a.IsVisibleTo("u1"))
}

func TestNormalizeAudienceArrayShadowsLegacyColumn(t *testing.T) {
	legacy := "u9"
	a := NormalizeAudience(false, []string{"u1"}, &legacy)
	assert.Equal(t, []string{"u1"}, a.ExplicitIDs)
	assert.False(t, a.IsVisibleTo("u9"))
}

func TestAudienceExclusion(t *testing.T) {
	a := Audience{ExplicitIDs: []string{"u1", "u2"}}
	assert.False(t, a.IsVisibleTo("u3"))
	assert.True(t, a.IsVisibleTo("u2"))
}

func TestAudienceEmptyExplicitSetHidesEverything(t *testing.T) {
	a := NormalizeAudience(false, nil, nil)
	assert.False(t, a.IsVisibleTo("u1"))
}

func TestFilterVisibleTasksPreservesOrder(t *testing.T) {
	tasks := []Task{
		{ID: "t1", IsForAll: true},
		{ID: "t2", AssignedTo: []string{"b"}},
		{ID: "t3", AssignedTo: []string{"a", "b"}},
	}

	visible := FilterVisibleTasks(tasks, "b")
	ids := make([]string, 0, len(visible))
	for _, task := range visible {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []string{"t1", "t2", "t3"}, ids)

	// Creator gets no implicit visibility; a creator outside the audience
	// sees nothing.
	task := Task{ID: "t4", CreatedBy: "a", AssignedTo: []string{"b"}}
	assert.Empty(t, FilterVisibleTasks([]Task{task}, "a"))
	assert.Len(t, FilterVisibleTasks([]Task{task}, "b"), 1)
}

func TestFilterVisibleEvents(t *testing.T) {
	events := []Event{
		{ID: "e1", IsForAll: true},
		{ID: "e2", AssignedTo: []string{"x"}},
	}
	assert.Len(t, FilterVisibleEvents(events, "y"), 1)
	assert.Len(t, FilterVisibleEvents(events, "x"), 2)
}
