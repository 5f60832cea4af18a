package models

import "time"

// DashboardSummary is the per-viewer home screen payload.
type DashboardSummary struct {
	UpcomingTasks   []TaskWithStatus `json:"upcoming_tasks"`
	UpcomingEvents  []Event          `json:"upcoming_events"`
	UpcomingTests   []Test           `json:"upcoming_tests"`
	UrgentTaskCount int              `json:"urgent_task_count"`
	CompletedTasks  int              `json:"completed_tasks"`
	TotalTasks      int              `json:"total_tasks"`
	GeneratedAt     time.Time        `json:"generated_at"`
}
