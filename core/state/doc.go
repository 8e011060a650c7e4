// Package state provides the process-wide application state container shared
// by every request. The container is populated once at bootstrap and is
// read-only afterwards, so concurrent lookups need no locking.
//
// Values are keyed by their dynamic type. Interior mutability (counters,
// caches) belongs to the stored values themselves and must use their own
// synchronization; the container only guarantees that the reference stays
// valid for the process lifetime.
//
// Usage:
//
//	type AppState struct {
//		Visits *atomic.Int64
//	}
//
//	container := state.New(&AppState{Visits: new(atomic.Int64)})
//
//	st, err := state.Get[*AppState](container)
package state
