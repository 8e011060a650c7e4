package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is the sentinel all validation failures match via errors.Is.
var ErrValidation = errors.New("validation failed")

// FieldError is a single rule violation scoped to one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the list of violations produced by one validation pass.
// It implements the error interface so it can flow through the request
// boundary, which converts it into a 400 envelope with an "errors" payload.
type Errors []FieldError

// Error implements the error interface.
func (e Errors) Error() string {
	if len(e) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is matches ErrValidation so callers can use errors.Is without knowing the
// concrete type.
func (e Errors) Is(target error) bool {
	return target == ErrValidation
}

// Validatable lets a type add programmatic rules beyond struct tags.
// Returning Errors preserves field detail; any other error is treated as a
// single non-field-scoped failure.
type Validatable interface {
	Validate() error
}
