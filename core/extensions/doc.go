// Package extensions provides a type-keyed heterogeneous store for
// request-scoped values. Each stored value is keyed by its static type, so a
// middleware and a handler can exchange typed data without string keys or
// unchecked casts.
//
// A fresh Map is attached to every request context and lives exactly as long
// as the request. It is not safe for concurrent use: a request is handled by
// a single logical flow, so no synchronization is needed.
//
// Usage:
//
//	type authUser struct{ ID string }
//
//	// in middleware
//	extensions.Set(ctx.Extensions(), authUser{ID: "u_123"})
//
//	// in the handler
//	user, ok := extensions.Get[authUser](ctx.Extensions())
package extensions
