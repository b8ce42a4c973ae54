package models

import "time"

// TaskStats represents aggregate task counters for one user
type TaskStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

// UpcomingTask is a task due inside the upcoming horizon
type UpcomingTask struct {
	Task     *Task `json:"task"`
	DaysLeft int   `json:"days_left"`
}

// Dashboard is the per-request dashboard view model
type Dashboard struct {
	Stats    TaskStats      `json:"stats"`
	Recent   []*Task        `json:"recent"`
	Upcoming []UpcomingTask `json:"upcoming"`
}

// Profile is the profile page view model. PhotoURL is nil when no photo is
// set or the stored file is missing on disk.
type Profile struct {
	User     *User   `json:"user"`
	PhotoURL *string `json:"photo_url"`
}

// OverdueItem is one overdue task row joined with its owner, consumed by
// the reminder digest job.
type OverdueItem struct {
	UserID  int64
	Name    string
	Email   string
	Title   string
	DueDate time.Time
}
