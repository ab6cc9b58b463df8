// Package validate runs the normalize-then-validate pipeline that every
// Event and Booking passes through before it is persisted.
package validate

import "fmt"

// ValidationError rejects a write because of a single field. It is never
// retryable without the caller correcting the input.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
