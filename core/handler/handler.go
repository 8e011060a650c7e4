package handler

import "net/http"

// Response renders an HTTP response: headers, status code, and body.
// Rendering errors are handled by the router's error boundary.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// ResponseFunc adapts a function to the Response interface.
type ResponseFunc func(w http.ResponseWriter, r *http.Request) error

// Render implements Response.
func (f ResponseFunc) Render(w http.ResponseWriter, r *http.Request) error {
	return f(w, r)
}

// HandlerFunc is a type-safe request handler with custom context support.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler converts errors raised during request processing into a
// written response.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps handlers to add cross-cutting behavior. The three calling
// conventions (Plain, WithConfig, WithState) all produce this shape, so they
// compose through the same Chain regardless of variant.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
