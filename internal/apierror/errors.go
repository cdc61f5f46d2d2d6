package apierror

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying every failure a service can surface. Handlers
// map them to HTTP status codes with errors.Is / errors.As; services wrap them
// with context via fmt.Errorf("...: %w", ...).
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
)

// FieldError is a validation failure tied to a specific payload field.
// It unwraps to ErrValidation so handlers only need one errors.Is branch.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrValidation }

// Invalid reports a single invalid payload field.
func Invalid(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}
