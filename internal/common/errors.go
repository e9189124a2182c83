// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Tenant errors.
	ErrUnauthorized = errors.New("tenant identity missing or malformed")

	// Catalog errors.
	ErrNotFound        = errors.New("not found")
	ErrUnknownCategory = errors.New("unknown category")

	// Categorization errors. ErrNoResult is a legitimate outcome meaning
	// "still uncategorized", not a failure of the surrounding operation.
	ErrNoResult = errors.New("no categorization result")

	// ErrBackendUnavailable marks classification backend failures. It is
	// absorbed at the strategy boundary and surfaced as ErrNoResult; it
	// never reaches callers of the engine.
	ErrBackendUnavailable = errors.New("classification backend unavailable")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

