package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by repo and service functions when the requested
// record, or the user a record must belong to, does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrUserNotFound is the ErrNotFound raised when a record references a user
// that does not exist. errors.Is(ErrUserNotFound, ErrNotFound) holds.
var ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)

// ErrValidation is matched by errors.Is for every *ValidationError.
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// FieldError describes one field that failed its constraint.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every failing field of a rejected payload.
// A payload with any FieldError is rejected as a whole.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Reason
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
