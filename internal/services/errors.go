package services

import (
	"errors"
	"fmt"
)

var (
	ErrSeparataNotFound    = errors.New("separata not found")
	ErrItemNotFound        = errors.New("item not found")
	ErrCatalogItemNotFound = errors.New("catalog item not found")
)

// ValidationError reports a missing or malformed field. Terminal for the
// triggering call, never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// PermissionError reports a failed role or deadline gate. Terminal for the
// triggering call, never retried.
type PermissionError struct {
	Rule string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s", e.Rule)
}
