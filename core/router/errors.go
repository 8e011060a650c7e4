package router

import (
	"errors"
	"fmt"
)

var (
	// Dispatch errors routed through the error boundary.
	ErrNotFound         = errors.New("not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrNilResponse      = errors.New("nil response")

	// Registration errors; these panic at startup, never at dispatch.
	ErrNoContextFactory = errors.New("no context factory provided")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrInvalidPattern   = errors.New("invalid route path pattern")
	ErrDuplicateRoute   = errors.New("duplicate route registration")
	ErrDuplicateParam   = errors.New("duplicate parameter name")
	ErrWildcardPosition = errors.New("wildcard must be the last pattern segment")
	ErrNilHandler       = errors.New("nil route handler")
	ErrRoutesSealed     = errors.New("middleware must be added before routes")
)

// HandlerFault allows external error handlers to detect recovered panics.
// When a panic escapes a handler chain the router wraps it in an error that
// implements this interface, carrying the original panic value and the stack
// trace captured at the panic point.
type HandlerFault interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

// handlerFault is the private implementation of HandlerFault.
type handlerFault struct {
	value any
	stack []byte
}

func (e *handlerFault) Error() string {
	return fmt.Sprintf("handler fault: %v", e.value)
}

func (e *handlerFault) Value() any {
	return e.value
}

func (e *handlerFault) Stack() []byte {
	return e.stack
}

// Unwrap lets errors.Is/As see through faults whose panic value is an error.
func (e *handlerFault) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
