package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Dan9191/task-manager/internal/models"
)

// CreateSession persists a new login session
func (r *Repository) CreateSession(ctx context.Context, s *models.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, name, email, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	s.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query, s.ID, s.UserID, s.Name, s.Email, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindSession retrieves a live session by id. Expired sessions resolve to
// ErrNotFound.
func (r *Repository) FindSession(ctx context.Context, id string, now time.Time) (*models.Session, error) {
	query := `
		SELECT id, user_id, name, email, created_at, expires_at
		FROM sessions
		WHERE id = $1 AND expires_at > $2`
	s := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, id, now).
		Scan(&s.ID, &s.UserID, &s.Name, &s.Email, &s.CreatedAt, &s.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return s, nil
}

// DeleteSession destroys a session at logout
func (r *Repository) DeleteSession(ctx context.Context, id string) error {
	query := `DELETE FROM sessions WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return oneRow(res)
}

// RefreshSessionProfile rewrites the cached display fields on every live
// session of a user after a profile update.
func (r *Repository) RefreshSessionProfile(ctx context.Context, userID int64, name, email string) error {
	query := `UPDATE sessions SET name = $1, email = $2 WHERE user_id = $3`
	if _, err := r.db.ExecContext(ctx, query, name, email, userID); err != nil {
		return fmt.Errorf("failed to refresh session profile: %w", err)
	}
	return nil
}

// PurgeExpiredSessions removes sessions past their expiry
func (r *Repository) PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at <= $1`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n, nil
}
