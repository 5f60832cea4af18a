package models

import "time"

// Test represents a scheduled exam stored in the tests table. Tests have no
// per-user targeting; every user sees every test.
type Test struct {
	ID            string    `db:"id" json:"id"`
	Subject       string    `db:"subject" json:"subject"`
	TestDate      time.Time `db:"test_date" json:"test_date"`
	Scope         string    `db:"scope" json:"scope"`
	RelatedTaskID *string   `db:"related_task_id" json:"related_task_id,omitempty"`
	Teacher       *string   `db:"teacher" json:"teacher,omitempty"`
	IsImportant   bool      `db:"is_important" json:"is_important"`
	CreatedBy     string    `db:"created_by" json:"created_by"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// TestNotification is the per-user reminder opt-in row, one per (user, test)
// pair.
type TestNotification struct {
	UserID                string `db:"user_id" json:"user_id"`
	TestID                string `db:"test_id" json:"test_id"`
	IsNotificationEnabled bool   `db:"is_notification_enabled" json:"is_notification_enabled"`
}
