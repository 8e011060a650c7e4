package extensions

import "reflect"

// Map is a type-keyed store. Each type holds at most one value; storing a
// second value of the same type overwrites the first.
//
// The zero value is not usable; create instances with New.
type Map struct {
	values map[reflect.Type]any
}

// New creates an empty Map.
func New() *Map {
	return &Map{values: make(map[reflect.Type]any)}
}

// Len returns the number of distinct types currently stored.
func (m *Map) Len() int {
	return len(m.values)
}

// Clear removes all stored values.
func (m *Map) Clear() {
	clear(m.values)
}

// Set stores v keyed by its type T, replacing any prior value of the same type.
func Set[T any](m *Map, v T) {
	m.values[typeOf[T]()] = v
}

// Get returns the value stored for type T. The second return value reports
// whether a value was present; an absent type is not an error.
func Get[T any](m *Map) (T, bool) {
	if v, ok := m.values[typeOf[T]()]; ok {
		return v.(T), true
	}
	var zero T
	return zero, false
}

// Remove deletes the value stored for type T and returns it.
// The second return value reports whether a value was present.
func Remove[T any](m *Map) (T, bool) {
	key := typeOf[T]()
	if v, ok := m.values[key]; ok {
		delete(m.values, key)
		return v.(T), true
	}
	var zero T
	return zero, false
}

// typeOf resolves the reflect.Type of T without allocating a value.
// Works for interface types as well as concrete types.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
