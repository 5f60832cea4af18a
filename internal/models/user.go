package models

import "time"

// DefaultNotificationDays is applied when a user has not chosen a
// reminder window yet.
const DefaultNotificationDays = 1

// User represents an application user stored in the users table. StudentID is
// the class attendance number; it is globally unique and only ever changed
// through the uniqueness-checked update path.
type User struct {
	ID               string    `db:"id" json:"id"`
	Email            string    `db:"email" json:"email"`
	PasswordHash     string    `db:"password_hash" json:"-"`
	Name             string    `db:"name" json:"name"`
	StudentID        string    `db:"student_id" json:"student_id"`
	NotificationDays int       `db:"notification_days" json:"notification_days"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
