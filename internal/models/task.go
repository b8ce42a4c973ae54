package models

import "time"

// TaskStatus is the completion state of a task.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
)

// StatusFromCompleted converts the stored completion flag to a TaskStatus.
func StatusFromCompleted(completed bool) TaskStatus {
	if completed {
		return StatusCompleted
	}
	return StatusPending
}

// Completed reports whether the status is the completed state.
func (s TaskStatus) Completed() bool { return s == StatusCompleted }

// Task represents a user-owned unit of work
type Task struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}
