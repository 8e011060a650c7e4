package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cadrehq/cadre/core/di"
	"github.com/cadrehq/cadre/core/extensions"
	"github.com/cadrehq/cadre/core/state"
)

// Context is the per-request contract handlers and middleware receive. One
// instance exists per request, owned exclusively by that request's flow; it
// is never shared across requests, so implementations need no locking.
//
// Context embeds context.Context delegating to the request's context, so
// deadlines and cancellation (connection drop, shutdown drain) propagate to
// anything awaiting on it.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// ResponseWriter returns the http.ResponseWriter for this request.
	ResponseWriter() http.ResponseWriter

	// Method returns the HTTP method of the request.
	Method() string

	// Path returns the request path as matched by the router.
	Path() string

	// Param returns the value of a named route parameter, or "" if absent.
	Param(key string) string

	// Query returns the parsed query parameters.
	Query() url.Values

	// BodyBytes returns the raw request body. The body is read once and
	// cached, so repeated calls and multiple typed decodes are cheap.
	BodyBytes() ([]byte, error)

	// Extensions returns the request-scoped type-keyed store.
	// It starts empty on every request.
	Extensions() *extensions.Map

	// State returns the shared application state container, or nil when no
	// state was registered at bootstrap.
	State() *state.Container

	// Deps returns the dependency resolver, or nil when no module was
	// registered at bootstrap.
	Deps() *di.Container

	// SetValue stores a value in the request context, retrievable via Value.
	SetValue(key, val any)
}
