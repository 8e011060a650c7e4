// Package handler defines the contracts every request flows through: the
// Context interface, the HandlerFunc/Middleware/Response types, and the
// middleware composition engine.
//
// Middleware come in three calling conventions that all compose through the
// same Chain algorithm:
//
//   - Plain: no auxiliary input.
//   - WithConfig: a config value captured at route registration, fixed for
//     the life of the route.
//   - WithState: a slice of the shared application state, looked up fresh on
//     every invocation so concurrent requests observe current state.
//
// Each middleware receives the context and a single-use Next continuation.
// It either short-circuits by returning a Response without calling Next, or
// calls Next exactly once and may transform the result on the way back up
// (onion ordering: first-declared pre-logic runs first, its post-logic runs
// last). Calling Next twice panics; the router boundary converts the panic
// into a 500 envelope.
package handler
