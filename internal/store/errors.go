package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested resource does not exist in
	// the store. Entity-specific variants wrap it.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when an operation would violate a uniqueness
	// constraint, such as two users sharing an email address.
	ErrConflict = errors.New("resource already exists")

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrCategoryNotFound indicates that the requested category does not exist.
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)
)

// ConflictError carries the uniqueness-violation detail returned to callers
// as the structured body of a 409 response.
type ConflictError struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// NewConflictError creates a ConflictError for a unique constraint on the
// given field of the given entity.
func NewConflictError(entity, field string) *ConflictError {
	return &ConflictError{
		Message: fmt.Sprintf("%s already exists", entity),
		Fields:  map[string]string{field: "already in use"},
	}
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return e.Message
}

// Unwrap ties ConflictError into the ErrConflict classification.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
