package models

import (
	"time"

	"github.com/lib/pq"
)

// DefaultVenue is applied once at the boundary when no venue was given.
// Older schema revisions required the column, newer ones default it.
const DefaultVenue = "unset"

// Event represents a dated school event stored in the events table.
type Event struct {
	ID             string         `db:"id" json:"id"`
	Title          string         `db:"title" json:"title"`
	Venue          string         `db:"venue" json:"venue"`
	Duration       *string        `db:"duration" json:"duration,omitempty"`
	DateTime       time.Time      `db:"date_time" json:"date_time"`
	Description    *string        `db:"description" json:"description,omitempty"`
	Items          *string        `db:"items" json:"items,omitempty"`
	IsImportant    bool           `db:"is_important" json:"is_important"`
	IsForAll       bool           `db:"is_for_all" json:"is_for_all"`
	AssignedTo     pq.StringArray `db:"assigned_to" json:"assigned_to"`
	AssignedUserID *string        `db:"assigned_user_id" json:"-"`
	CreatedBy      string         `db:"created_by" json:"created_by"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// Audience returns the canonical audience for the event.
func (e Event) Audience() Audience {
	return NormalizeAudience(e.IsForAll, e.AssignedTo, e.AssignedUserID)
}
