package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Dan9191/task-manager/internal/models"
)

// CreateTask inserts a new task owned by task.UserID
func (r *Repository) CreateTask(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (user_id, title, description, due_date, is_completed, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		RETURNING id`
	task.CreatedAt = time.Now().UTC()
	task.Status = models.StatusPending
	err := r.db.QueryRowContext(ctx, query,
		task.UserID, task.Title, task.Description, nullTime(task.DueDate), task.CreatedAt).
		Scan(&task.ID)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// UpdateTask rewrites title, description and due date of a task. Returns
// ErrNotFound when the task does not exist or belongs to another user.
func (r *Repository) UpdateTask(ctx context.Context, userID, taskID int64, title, description string, dueDate *time.Time) error {
	query := `
		UPDATE tasks SET title = $1, description = $2, due_date = $3
		WHERE id = $4 AND user_id = $5`
	res, err := r.db.ExecContext(ctx, query, title, description, nullTime(dueDate), taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return oneRow(res)
}

// DeleteTask removes a task owned by userID
func (r *Repository) DeleteTask(ctx context.Context, userID, taskID int64) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return oneRow(res)
}

// ToggleTask flips the completion flag in a single statement so concurrent
// toggles cannot race through a stale read.
func (r *Repository) ToggleTask(ctx context.Context, userID, taskID int64) error {
	query := `UPDATE tasks SET is_completed = NOT is_completed WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to toggle task: %w", err)
	}
	return oneRow(res)
}

// ListTasks returns all tasks of a user, most recently created first.
// completed narrows the list when non-nil.
func (r *Repository) ListTasks(ctx context.Context, userID int64, completed *bool) ([]*models.Task, error) {
	query := `
		SELECT id, user_id, title, description, due_date, is_completed, created_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if completed != nil {
		query = `
		SELECT id, user_id, title, description, due_date, is_completed, created_at
		FROM tasks
		WHERE user_id = $1 AND is_completed = $2
		ORDER BY created_at DESC, id DESC`
		args = append(args, *completed)
	}
	return r.queryTasks(ctx, query, args...)
}

// GetTask retrieves a single task owned by userID
func (r *Repository) GetTask(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	query := `
		SELECT id, user_id, title, description, due_date, is_completed, created_at
		FROM tasks
		WHERE id = $1 AND user_id = $2`
	row := r.db.QueryRowContext(ctx, query, taskID, userID)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// TaskStats aggregates task counters from current data. Overdue counts
// incomplete tasks strictly due before today. Placeholders are numbered in
// textual order so the statement binds identically under Postgres and the
// sqlite test driver, which indexes named parameters by first occurrence.
func (r *Repository) TaskStats(ctx context.Context, userID int64, today time.Time) (*models.TaskStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN is_completed THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN NOT is_completed THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN due_date IS NOT NULL AND due_date < $1 AND NOT is_completed THEN 1 ELSE 0 END), 0)
		FROM tasks
		WHERE user_id = $2`
	stats := &models.TaskStats{}
	err := r.db.QueryRowContext(ctx, query, today, userID).
		Scan(&stats.Total, &stats.Completed, &stats.Pending, &stats.Overdue)
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return stats, nil
}

// RecentTasks returns the latest created tasks of a user
func (r *Repository) RecentTasks(ctx context.Context, userID int64, limit int) ([]*models.Task, error) {
	query := `
		SELECT id, user_id, title, description, due_date, is_completed, created_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
	return r.queryTasks(ctx, query, userID, limit)
}

// UpcomingTasks returns incomplete tasks with a due date inside [from, to]
// inclusive, ordered by ascending due date.
func (r *Repository) UpcomingTasks(ctx context.Context, userID int64, from, to time.Time) ([]*models.Task, error) {
	query := `
		SELECT id, user_id, title, description, due_date, is_completed, created_at
		FROM tasks
		WHERE user_id = $1 AND NOT is_completed
		  AND due_date IS NOT NULL AND due_date BETWEEN $2 AND $3
		ORDER BY due_date ASC, id ASC`
	return r.queryTasks(ctx, query, userID, from, to)
}

// OverdueByUser returns every incomplete task due before today across all
// users, joined with owner contact fields and grouped by owner.
func (r *Repository) OverdueByUser(ctx context.Context, today time.Time) ([]*models.OverdueItem, error) {
	query := `
		SELECT u.id, u.name, u.email, t.title, t.due_date
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		WHERE NOT t.is_completed AND t.due_date IS NOT NULL AND t.due_date < $1
		ORDER BY u.id ASC, t.due_date ASC`
	rows, err := r.db.QueryContext(ctx, query, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue tasks: %w", err)
	}
	defer rows.Close()

	var items []*models.OverdueItem
	for rows.Next() {
		item := &models.OverdueItem{}
		if err := rows.Scan(&item.UserID, &item.Name, &item.Email, &item.Title, &item.DueDate); err != nil {
			return nil, fmt.Errorf("failed to scan overdue task: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list overdue tasks: %w", err)
	}
	return items, nil
}

func (r *Repository) queryTasks(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*models.Task, error) {
	task := &models.Task{}
	var (
		description sql.NullString
		dueDate     sql.NullTime
		completed   bool
	)
	err := row.Scan(&task.ID, &task.UserID, &task.Title, &description, &dueDate, &completed, &task.CreatedAt)
	if err != nil {
		return nil, err
	}
	task.Description = description.String
	if dueDate.Valid {
		due := dueDate.Time
		task.DueDate = &due
	}
	task.Status = models.StatusFromCompleted(completed)
	return task, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
