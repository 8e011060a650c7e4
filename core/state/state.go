package state

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrStateNotConfigured indicates a handler or middleware asked for a state
// type that was never registered. This is a programming error and maps to a
// 500 response at the request boundary.
var ErrStateNotConfigured = errors.New("application state not configured")

// Container holds the shared application state values, keyed by dynamic type.
// Immutable after New.
type Container struct {
	values map[reflect.Type]any
}

// New builds a container from the given values. Nil values are ignored.
// Registering two values of the same dynamic type keeps the last one.
func New(values ...any) *Container {
	c := &Container{values: make(map[reflect.Type]any, len(values))}
	for _, v := range values {
		if v == nil {
			continue
		}
		c.values[reflect.TypeOf(v)] = v
	}
	return c
}

// Len returns the number of registered state types.
func (c *Container) Len() int {
	if c == nil {
		return 0
	}
	return len(c.values)
}

// Get returns the state value of type T. A nil container and a missing type
// both yield ErrStateNotConfigured; the error names the requested type.
func Get[T any](c *Container) (T, error) {
	var zero T
	if c == nil {
		return zero, fmt.Errorf("%w: no state registered, requested %T", ErrStateNotConfigured, zero)
	}
	v, ok := c.values[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return zero, fmt.Errorf("%w: %T", ErrStateNotConfigured, zero)
	}
	return v.(T), nil
}
