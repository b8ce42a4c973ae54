package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Dan9191/task-manager/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// newTestRepo opens an in-memory sqlite database running the same
// parameterized statements the Postgres deployment uses.
func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	schema := []string{
		`CREATE TABLE users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			profile_photo TEXT,
			created_at    DATETIME NOT NULL
		)`,
		`CREATE TABLE tasks (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id      INTEGER NOT NULL REFERENCES users (id),
			title        TEXT NOT NULL,
			description  TEXT,
			due_date     DATE,
			is_completed BOOLEAN NOT NULL DEFAULT 0,
			created_at   DATETIME NOT NULL
		)`,
		`CREATE TABLE sessions (
			id         TEXT PRIMARY KEY,
			user_id    INTEGER NOT NULL REFERENCES users (id),
			name       TEXT NOT NULL,
			email      TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			expires_at DATETIME NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("schema: %v", err)
		}
	}

	return NewRepository(db)
}

func mustCreateUser(t *testing.T, r *Repository, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, PasswordHash: "x"}
	if err := r.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCreateTask(t *testing.T, r *Repository, userID int64, title string, due *time.Time) *models.Task {
	t.Helper()
	task := &models.Task{UserID: userID, Title: title, DueDate: due}
	if err := r.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

// date returns UTC midnight offset by days from today.
func date(days int) *time.Time {
	now := time.Now().UTC()
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	return &d
}
