package models

import "time"

// User represents a registered user
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Not serialized
	ProfilePhoto string    `json:"profile_photo,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
