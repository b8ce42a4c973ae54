package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/Dan9191/task-manager/internal/models"
)

const (
	recentTaskLimit     = 5
	upcomingHorizonDays = 7
	dueDateLayout       = "2006-01-02"
)

// CreateTask validates input and inserts a new pending task. An empty due
// date string is stored as absent.
func (s *Service) CreateTask(ctx context.Context, userID int64, title, description, dueDate string) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, invalidField("title", "Task title is required.")
	}
	due, err := parseDueDate(dueDate)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(description),
		DueDate:     due,
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	s.log.Infof("Task %d created for user %d", task.ID, userID)
	return task, nil
}

// UpdateTask rewrites an existing task owned by userID
func (s *Service) UpdateTask(ctx context.Context, userID, taskID int64, title, description, dueDate string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return invalidField("title", "Task title is required.")
	}
	due, err := parseDueDate(dueDate)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateTask(ctx, userID, taskID, title, strings.TrimSpace(description), due); err != nil {
		return err
	}
	s.log.Infof("Task %d updated for user %d", taskID, userID)
	return nil
}

// DeleteTask removes a task owned by userID
func (s *Service) DeleteTask(ctx context.Context, userID, taskID int64) error {
	if err := s.repo.DeleteTask(ctx, userID, taskID); err != nil {
		return err
	}
	s.log.Infof("Task %d deleted for user %d", taskID, userID)
	return nil
}

// ToggleTask flips the completion state of a task owned by userID
func (s *Service) ToggleTask(ctx context.Context, userID, taskID int64) error {
	return s.repo.ToggleTask(ctx, userID, taskID)
}

// ListTasks returns the user's tasks, newest first. filter narrows to
// "pending" or "completed"; empty returns all.
func (s *Service) ListTasks(ctx context.Context, userID int64, filter string) ([]*models.Task, error) {
	var completed *bool
	switch filter {
	case "":
	case "pending":
		f := false
		completed = &f
	case "completed":
		t := true
		completed = &t
	default:
		return nil, invalidField("filter", "Filter must be 'pending' or 'completed'.")
	}
	return s.repo.ListTasks(ctx, userID, completed)
}

// GetTask retrieves one task for edit-form population
func (s *Service) GetTask(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	return s.repo.GetTask(ctx, userID, taskID)
}

// Statistics recomputes the user's task counters from current data
func (s *Service) Statistics(ctx context.Context, userID int64) (*models.TaskStats, error) {
	return s.repo.TaskStats(ctx, userID, today())
}

// Upcoming returns incomplete tasks due within horizonDays of today,
// inclusive, with days-left annotations.
func (s *Service) Upcoming(ctx context.Context, userID int64, horizonDays int) ([]models.UpcomingTask, error) {
	if horizonDays <= 0 {
		horizonDays = upcomingHorizonDays
	}
	from := today()
	to := from.AddDate(0, 0, horizonDays)
	tasks, err := s.repo.UpcomingTasks(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	upcoming := make([]models.UpcomingTask, 0, len(tasks))
	for _, t := range tasks {
		upcoming = append(upcoming, models.UpcomingTask{
			Task:     t,
			DaysLeft: daysLeft(*t.DueDate, now),
		})
	}
	return upcoming, nil
}

// Dashboard assembles the per-request dashboard view model: statistics,
// the five most recent tasks and the seven-day upcoming window.
func (s *Service) Dashboard(ctx context.Context, userID int64) (*models.Dashboard, error) {
	stats, err := s.Statistics(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.RecentTasks(ctx, userID, recentTaskLimit)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.Upcoming(ctx, userID, upcomingHorizonDays)
	if err != nil {
		return nil, err
	}
	return &models.Dashboard{Stats: *stats, Recent: recent, Upcoming: upcoming}, nil
}

// SendOverdueReminders emails each user holding at least one overdue task a
// plain-text digest. Invoked from the daily cron job.
func (s *Service) SendOverdueReminders(ctx context.Context) error {
	if s.mailer == nil {
		s.log.Debug("Reminder mailer not configured, skipping digest")
		return nil
	}
	items, err := s.repo.OverdueByUser(ctx, today())
	if err != nil {
		return err
	}

	// Rows arrive ordered by user id; group into one digest per user.
	var (
		batch []*models.OverdueItem
		sent  int
	)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		first := batch[0]
		if err := s.mailer.SendOverdueDigest(first.Email, first.Name, batch); err != nil {
			s.log.Errorf("Failed to send overdue digest to %s: %v", first.Email, err)
		} else {
			sent++
		}
		batch = nil
	}
	for _, item := range items {
		if len(batch) > 0 && batch[0].UserID != item.UserID {
			flush()
		}
		batch = append(batch, item)
	}
	flush()

	s.log.Infof("Overdue digests sent: %d", sent)
	return nil
}

func parseDueDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	due, err := time.ParseInLocation(dueDateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return nil, invalidField("due_date", "Due date must use the YYYY-MM-DD format.")
	}
	return &due, nil
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func daysLeft(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}
