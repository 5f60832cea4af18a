package models

import "time"

// MonthGridCells is the fixed size of a month grid: six rows of seven days,
// padded with leading and trailing days from the adjacent months.
const MonthGridCells = 42

// CalendarDay is one cell of the month grid with the items whose date falls
// on that local calendar day.
type CalendarDay struct {
	Date           time.Time `json:"date"`
	IsCurrentMonth bool      `json:"is_current_month"`
	Tasks          []Task    `json:"tasks"`
	Events         []Event   `json:"events"`
	Tests          []Test    `json:"tests"`
}

// SameCalendarDay reports whether two instants fall on the same calendar day
// in the given location. Time of day is ignored.
func SameCalendarDay(a, b time.Time, loc *time.Location) bool {
	a, b = a.In(loc), b.In(loc)
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
