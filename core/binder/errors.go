package binder

import (
	"errors"
	"fmt"
)

var (
	// ErrFailedToParseJSON indicates the body contains invalid JSON or JSON
	// that doesn't match the target struct schema.
	ErrFailedToParseJSON = errors.New("failed to parse JSON request body")

	// ErrFailedToParseQuery indicates query parameter parsing failed,
	// typically due to type conversion errors.
	ErrFailedToParseQuery = errors.New("failed to parse query parameters")

	// ErrInvalidTarget indicates the bind target is not a non-nil struct pointer.
	ErrInvalidTarget = errors.New("bind target must be a non-nil pointer to struct")
)

// DecodeError describes a malformed body or query: a client fault. Field
// names the offending field or JSON path when known; Reason is safe to show
// to the client.
type DecodeError struct {
	cause  error
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode failed: field %s: %s", e.Field, e.Reason)
	}
	return "decode failed: " + e.Reason
}

// Unwrap exposes the underlying sentinel for errors.Is checks.
func (e *DecodeError) Unwrap() error {
	return e.cause
}

func newDecodeError(cause error, field, reason string) *DecodeError {
	return &DecodeError{cause: cause, Field: field, Reason: reason}
}
