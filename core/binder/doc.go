// Package binder decodes raw request data into typed values: JSON body bytes
// and key-value multimaps (query parameters). Decoding is a pure function of
// its input; it performs no I/O and mutates no shared state.
//
// Failures are reported as *DecodeError carrying the offending field or path
// and a human-readable reason, which the request boundary maps to a 400
// envelope.
//
// Query binding supports struct tags for custom parameter names:
//   - `query:"name"` binds to parameter "name"
//   - `query:"-"` skips the field
//
// Supported query field types: string, signed/unsigned ints, floats, bool,
// slices of those (repeated or comma-separated parameters), and pointers for
// optional fields.
package binder
