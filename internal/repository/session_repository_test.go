package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dan9191/task-manager/internal/models"
	"github.com/google/uuid"
)

func mustCreateSession(t *testing.T, r *Repository, user *models.User, ttl time.Duration) *models.Session {
	t.Helper()
	s := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	if err := r.CreateSession(context.Background(), s); err != nil {
		t.Fatalf("create session: %v", err)
	}
	return s
}

func TestSessionLifecycle(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	alice := mustCreateUser(t, r, "Alice", "alice@example.com")
	session := mustCreateSession(t, r, alice, time.Hour)

	found, err := r.FindSession(ctx, session.ID, time.Now().UTC())
	if err != nil {
		t.Fatalf("find session: %v", err)
	}
	if found.UserID != alice.ID || found.Name != "Alice" || found.Email != "alice@example.com" {
		t.Fatalf("unexpected session: %+v", found)
	}

	if err := r.DeleteSession(ctx, session.ID); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, err := r.FindSession(ctx, session.ID, time.Now().UTC()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestFindSession_Expired(t *testing.T) {
	r := newTestRepo(t)
	alice := mustCreateUser(t, r, "Alice", "alice@example.com")
	session := mustCreateSession(t, r, alice, -time.Minute)

	_, err := r.FindSession(context.Background(), session.ID, time.Now().UTC())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired session, got %v", err)
	}
}

func TestRefreshSessionProfile(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	alice := mustCreateUser(t, r, "Alice", "alice@example.com")
	first := mustCreateSession(t, r, alice, time.Hour)
	second := mustCreateSession(t, r, alice, time.Hour)

	if err := r.RefreshSessionProfile(ctx, alice.ID, "Alicia", "alicia@example.com"); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	for _, id := range []string{first.ID, second.ID} {
		found, err := r.FindSession(ctx, id, time.Now().UTC())
		if err != nil {
			t.Fatalf("find session: %v", err)
		}
		if found.Name != "Alicia" || found.Email != "alicia@example.com" {
			t.Fatalf("cached fields not refreshed: %+v", found)
		}
	}
}

func TestPurgeExpiredSessions(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	alice := mustCreateUser(t, r, "Alice", "alice@example.com")

	live := mustCreateSession(t, r, alice, time.Hour)
	mustCreateSession(t, r, alice, -time.Minute)
	mustCreateSession(t, r, alice, -time.Hour)

	n, err := r.PurgeExpiredSessions(ctx, time.Now().UTC())
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 purged sessions, got %d", n)
	}
	if _, err := r.FindSession(ctx, live.ID, time.Now().UTC()); err != nil {
		t.Fatalf("live session must survive purge: %v", err)
	}
}
