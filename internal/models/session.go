package models

import "time"

// Session binds a browser to an authenticated user. Name and Email are
// cached display fields refreshed on profile updates.
type Session struct {
	ID        string    `json:"-"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
