package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/task-manager/internal/models"
)

// ErrNotFound is returned when a row does not exist or is owned by another
// user. The two cases are never distinguished.
var ErrNotFound = errors.New("not found")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	user.CreatedAt = time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, user.Name, user.Email, user.PasswordHash, user.CreatedAt).
		Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, profile_photo, created_at
		FROM users
		WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// FindUserByID retrieves a user by primary key
func (r *Repository) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, profile_photo, created_at
		FROM users
		WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// EmailTaken reports whether email belongs to a user other than excludeID.
func (r *Repository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := `SELECT id FROM users WHERE email = $1 AND id <> $2`
	var id int64
	err := r.db.QueryRowContext(ctx, query, email, excludeID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return true, nil
}

// UpdateUserProfile updates name and email of a user
func (r *Repository) UpdateUserProfile(ctx context.Context, id int64, name, email string) error {
	query := `UPDATE users SET name = $1, email = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, name, email, id)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return oneRow(res)
}

// UpdateUserPhoto updates the stored photo path of a user
func (r *Repository) UpdateUserPhoto(ctx context.Context, id int64, path string) error {
	query := `UPDATE users SET profile_photo = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, path, id)
	if err != nil {
		return fmt.Errorf("failed to update photo: %w", err)
	}
	return oneRow(res)
}

func (r *Repository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var photo sql.NullString
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &photo, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user.ProfilePhoto = photo.String
	return user, nil
}

// oneRow turns a zero-row mutation into ErrNotFound.
func oneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
