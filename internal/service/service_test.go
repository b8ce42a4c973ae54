package service_test

import (
	"context"
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/Dan9191/task-manager/internal/config"
	"github.com/Dan9191/task-manager/internal/models"
	"github.com/Dan9191/task-manager/internal/repository"
	"github.com/Dan9191/task-manager/internal/service"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// recordingMailer captures digests instead of talking to SMTP.
type recordingMailer struct {
	digests map[string][]*models.OverdueItem
}

func (m *recordingMailer) SendOverdueDigest(to, name string, tasks []*models.OverdueItem) error {
	if m.digests == nil {
		m.digests = make(map[string][]*models.OverdueItem)
	}
	m.digests[to] = tasks
	return nil
}

func newTestService(t *testing.T) (*service.Service, *recordingMailer) {
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

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		UploadDir:     t.TempDir(),
	}
	mailer := &recordingMailer{}
	return service.NewService(repository.NewRepository(db), logger, cfg, mailer), mailer
}

func registerUser(t *testing.T, svc *service.Service, name, email string) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), name, email, "hunter22")
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}

// dueIn formats a date offset by days from today as the form would post it.
func dueIn(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}
