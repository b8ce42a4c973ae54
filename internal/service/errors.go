package service

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login failures never reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateEmail is returned when an email already belongs to a
	// different user.
	ErrDuplicateEmail = errors.New("email already taken by another user")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidField(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
