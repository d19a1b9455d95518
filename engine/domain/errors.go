package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation and registry lookups.
var (
	ErrNoKeywords     = errors.New("alert needs at least one keyword")
	ErrNoCommunities  = errors.New("at least one community required")
	ErrUnknownSort    = errors.New("unknown sort order")
	ErrUnknownWindow  = errors.New("unknown time window")
	ErrEmptyTitle     = errors.New("title must not be empty")
	ErrAlertNotFound  = errors.New("alert not found")
	ErrPostNotFound   = errors.New("scheduled post not found")
	ErrNotPending     = errors.New("scheduled post is not pending")
	ErrEmptyQuery     = errors.New("search query must not be empty")
	ErrBadWindowHours = errors.New("window hours must be positive")
)

// ValidationError wraps a sentinel with field context. Commands surface these
// as a {"error": ...} document on stdout rather than a hard failure.
type ValidationError struct {
	Field   string
	Value   string
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s (value=%q)", e.Wrapped, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Wrapped }

// NewValidationError creates a ValidationError.
func NewValidationError(field, value string, wrapped error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Wrapped: wrapped}
}
