package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dan9191/task-manager/internal/models"
	"github.com/Dan9191/task-manager/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, invalidField("name", "Name is required.")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < 6 {
		return nil, invalidField("password", "Password must be at least 6 characters long.")
	}

	taken, err := s.repo.EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user, creates a server-side session and returns a
// signed cookie token wrapping the session id.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.Session, error) {
	user, err := s.repo.FindUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		ExpiresAt: time.Now().UTC().Add(s.config.SessionTTL),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return "", nil, err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   session.ID,
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	})
	tokenString, err := token.SignedString([]byte(s.config.SessionSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, session, nil
}

// Authenticate resolves a cookie token to a live session. The token
// signature protects the session id from tampering; the session row stays
// the source of truth so logout actually ends the session.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*models.Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.config.SessionSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, repository.ErrNotFound
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, repository.ErrNotFound
	}
	return s.repo.FindSession(ctx, claims.Subject, time.Now().UTC())
}

// Logout destroys the session
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.repo.DeleteSession(ctx, sessionID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	s.log.Infof("Session destroyed: %s", sessionID)
	return nil
}

// PurgeSessions removes expired sessions, returning the number removed.
func (s *Service) PurgeSessions(ctx context.Context) (int64, error) {
	n, err := s.repo.PurgeExpiredSessions(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Infof("Purged %d expired sessions", n)
	}
	return n, nil
}
