package models

// Audience is the canonical visibility rule attached to tasks and events.
// Exactly one mode applies: either the item is for everyone, or it is for the
// users listed in ExplicitIDs. Rows written by older clients may carry both a
// populated id list and the for-all flag; the flag wins in that case.
type Audience struct {
	ForAll      bool     `json:"for_all"`
	ExplicitIDs []string `json:"explicit_ids,omitempty"`
}

// NormalizeAudience reconciles the audience column shapes that accumulated
// across schema revisions into the canonical form: a modern is_for_all flag
// plus assigned_to id array, and a legacy single-assignee column which maps to
// a one-element explicit set. The legacy column is only consulted when the
// array is empty.
func NormalizeAudience(forAll bool, assignedTo []string, legacyAssignee *string) Audience {
	if forAll {
		return Audience{ForAll: true}
	}
	ids := make([]string, 0, len(assignedTo))
	for _, id := range assignedTo {
		if id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 && legacyAssignee != nil && *legacyAssignee != "" {
		ids = append(ids, *legacyAssignee)
	}
	return Audience{ExplicitIDs: ids}
}

// IsVisibleTo reports whether a viewer may see an item carrying this
// audience. ForAll takes precedence over any explicit id list. Creators get
// no implicit visibility here; an item whose creator is absent from a
// non-for-all audience is hidden from them as well.
func (a Audience) IsVisibleTo(viewerID string) bool {
	if a.ForAll {
		return true
	}
	for _, id := range a.ExplicitIDs {
		if id == viewerID {
			return true
		}
	}
	return false
}

// FilterVisibleTasks returns the tasks visible to the viewer, preserving
// input order.
func FilterVisibleTasks(tasks []Task, viewerID string) []Task {
	visible := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Audience().IsVisibleTo(viewerID) {
			visible = append(visible, t)
		}
	}
	return visible
}

// FilterVisibleEvents returns the events visible to the viewer, preserving
// input order.
func FilterVisibleEvents(events []Event, viewerID string) []Event {
	visible := make([]Event, 0, len(events))
	for _, e := range events {
		if e.Audience().IsVisibleTo(viewerID) {
			visible = append(visible, e)
		}
	}
	return visible
}
