package services

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed input; the concrete error is a *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks a write refused because of a uniqueness rule.
	ErrConflict       = errors.New("conflict")
	ErrDuplicateEmail = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrDuplicateTitle = fmt.Errorf("%w: a post with this title already exists", ErrConflict)

	// ErrInvalidCredentials is the common parent of the two login failures so
	// callers can report them with one message.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownEmail       = fmt.Errorf("%w: unknown email", ErrInvalidCredentials)
	ErrBadPassword        = fmt.Errorf("%w: wrong password", ErrInvalidCredentials)

	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrDeliveryFailed  = errors.New("message delivery failed")
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
