// Package common defines sentinel errors and shared constants used by the
// repositories, services and transport layers. Callers should match the
// sentinels with errors.Is and ValidationError with errors.As.
package common

import (
	"errors"
	"sort"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors.
	ErrorUsernameTaken      = errors.New("username already registered")
	ErrorInvalidCredentials = errors.New("username or password wrong")

	// Transport errors.
	ErrorMalformedBody = errors.New("malformed request body")
)

// ValidationError carries field-keyed messages produced by input validation.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns an empty ValidationError ready for Add calls.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Add appends a message for the given field.
func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

// Empty reports whether no field has failed.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// OrNil returns e when it holds failures and nil otherwise, so validators can
// end with `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return "validation error: " + strings.Join(parts, "; ")
}
