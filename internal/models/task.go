package models

import (
	"time"

	"github.com/lib/pq"
)

// SubmissionMethod enumerates how a task is handed in.
type SubmissionMethod string

const (
	SubmissionGoogleClassroom SubmissionMethod = "GOOGLE_CLASSROOM"
	SubmissionTeams           SubmissionMethod = "TEAMS"
	SubmissionMoodle          SubmissionMethod = "MOODLE"
	SubmissionPaper           SubmissionMethod = "PAPER"
	SubmissionOther           SubmissionMethod = "OTHER"
)

// NoDeadlineYear is the in-band marker for "no real deadline". Some schema
// revisions stored it instead of a NULL column, so both shapes must classify
// the same way.
const NoDeadlineYear = 2099

// Task represents an assignment stored in the tasks table. The audience
// columns are kept in their stored shape; Audience() normalises them.
type Task struct {
	ID               string           `db:"id" json:"id"`
	Subject          string           `db:"subject" json:"subject"`
	Title            string           `db:"title" json:"title"`
	Description      *string          `db:"description" json:"description,omitempty"`
	Deadline         *time.Time       `db:"deadline" json:"deadline,omitempty"`
	SubmissionMethod SubmissionMethod `db:"submission_method" json:"submission_method"`
	IsImportant      bool             `db:"is_important" json:"is_important"`
	IsForAll         bool             `db:"is_for_all" json:"is_for_all"`
	AssignedTo       pq.StringArray   `db:"assigned_to" json:"assigned_to"`
	AssignedUserID   *string          `db:"assigned_user_id" json:"-"`
	CreatedBy        string           `db:"created_by" json:"created_by"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// Audience returns the canonical audience for the task.
func (t Task) Audience() Audience {
	return NormalizeAudience(t.IsForAll, t.AssignedTo, t.AssignedUserID)
}

// TaskWithStatus pairs a task with the viewer's completion flag and derived
// deadline status for list rendering.
type TaskWithStatus struct {
	Task
	IsCompleted    bool           `json:"is_completed"`
	DeadlineStatus DeadlineStatus `json:"deadline_status"`
}

// UserTaskStatus is the per-user completion row, one per (user, task) pair.
type UserTaskStatus struct {
	UserID      string `db:"user_id" json:"user_id"`
	TaskID      string `db:"task_id" json:"task_id"`
	IsCompleted bool   `db:"is_completed" json:"is_completed"`
}

// TaskFilter narrows down task listings. Subject and importance are pushed
// into the query; completion and status bucket are per-viewer and applied
// after annotation.
type TaskFilter struct {
	Subject     string
	IsImportant *bool
	IsCompleted *bool
	Status      DeadlineStatus
}

// DeadlineStatus is the urgency bucket derived from a deadline and the
// viewer's completion flag.
type DeadlineStatus string

const (
	DeadlineNoDeadline     DeadlineStatus = "NO_DEADLINE"
	DeadlineCompleted      DeadlineStatus = "COMPLETED"
	DeadlineExpired        DeadlineStatus = "EXPIRED"
	DeadlineUrgentDueToday DeadlineStatus = "URGENT_DUE_TODAY"
	DeadlineDueSoon        DeadlineStatus = "DUE_SOON"
	DeadlineNormal         DeadlineStatus = "NORMAL"
)

// DaysUntil returns ceil((deadline-now)/24h): the number of days remaining,
// counting a partial day as a full one. A deadline one hour from now counts
// as 1 day remaining.
func DaysUntil(deadline, now time.Time) int {
	diff := deadline.Sub(now)
	days := diff / (24 * time.Hour)
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return int(days)
}

// HasNoDeadline reports whether the deadline is absent or carries the
// sentinel year.
func HasNoDeadline(deadline *time.Time) bool {
	return deadline == nil || deadline.UTC().Year() == NoDeadlineYear
}

// ClassifyDeadline derives the urgency bucket. Rules apply in order: sentinel
// or missing deadlines are never urgent, completion wins over date-derived
// urgency, then the remaining-days thresholds apply.
func ClassifyDeadline(deadline *time.Time, isCompleted bool, now time.Time) DeadlineStatus {
	if HasNoDeadline(deadline) {
		return DeadlineNoDeadline
	}
	if isCompleted {
		return DeadlineCompleted
	}
	if deadline.Before(now) {
		return DeadlineExpired
	}
	days := DaysUntil(*deadline, now)
	switch {
	case days <= 1:
		return DeadlineUrgentDueToday
	case days <= 3:
		return DeadlineDueSoon
	default:
		return DeadlineNormal
	}
}

// Valid reports whether s names a known bucket.
func (s DeadlineStatus) Valid() bool {
	switch s {
	case DeadlineNoDeadline, DeadlineCompleted, DeadlineExpired,
		DeadlineUrgentDueToday, DeadlineDueSoon, DeadlineNormal:
		return true
	}
	return false
}

// IsUrgent reports whether a status counts toward the dashboard urgent
// aggregate. Completed tasks never count even though completion is hidden
// behind the status for display.
func (s DeadlineStatus) IsUrgent() bool {
	return s == DeadlineExpired || s == DeadlineUrgentDueToday
}
