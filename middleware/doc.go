// Package middleware provides built-in middleware for common HTTP concerns:
// request IDs, structured request logging, CORS, body size limits, static
// token authentication, and in-memory rate limiting.
//
// Middleware composes through the handler package and short-circuits by
// returning a response without running the rest of the chain:
//
//	r.Use(
//		middleware.RequestID[*router.Context](),
//		middleware.Logging[*router.Context](log),
//	)
//
// TokenAuth demonstrates the config-carrying middleware form and RateLimit
// the state-backed form; both are regular handler.Middleware values once
// constructed.
package middleware
