package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when an entity fails validation.
	// Errors carrying per-field detail wrap this sentinel.
	ErrValidation = errors.New("validation failed")
)

// FieldErrors collects validation problems keyed by attribute name. It is
// returned to callers as the structured body of a 400 response.
type FieldErrors struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// NewFieldErrors creates an empty FieldErrors collector.
func NewFieldErrors() *FieldErrors {
	return &FieldErrors{
		Message: "validation failed",
		Fields:  make(map[string]string),
	}
}

// Add records a problem for the given field. The first problem recorded for a
// field wins.
func (e *FieldErrors) Add(field, problem string) {
	if _, exists := e.Fields[field]; exists {
		return
	}
	e.Fields[field] = problem
}

// HasErrors reports whether any field problem has been recorded.
func (e *FieldErrors) HasErrors() bool {
	return len(e.Fields) > 0
}

// Error implements the error interface with a deterministic field listing.
func (e *FieldErrors) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	return fmt.Sprintf("%s: %s", e.Message, strings.Join(fields, ", "))
}

// Unwrap ties FieldErrors into the ErrValidation classification.
func (e *FieldErrors) Unwrap() error {
	return ErrValidation
}
