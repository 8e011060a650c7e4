package router

import (
	"net/http"

	"github.com/cadrehq/cadre/core/handler"
)

// RouteDef declares a single route: a method, a path pattern relative to the
// owning controller's prefix, the endpoint handler, and optional per-route
// middleware. Routes are plain data; the router composes the final chain at
// registration time.
type RouteDef[C handler.Context] struct {
	Method      string
	Path        string
	Middlewares []handler.Middleware[C]
	Handler     handler.HandlerFunc[C]
}

// Controller groups routes under a shared path prefix, an optional version
// segment, and middleware that wraps every route in the group (outermost in
// the composed chain).
type Controller[C handler.Context] struct {
	Prefix      string
	Version     string
	Middlewares []handler.Middleware[C]
	Routes      []RouteDef[C]
}

// NewController builds a controller from a prefix and its routes.
func NewController[C handler.Context](prefix string, routes ...RouteDef[C]) Controller[C] {
	return Controller[C]{Prefix: prefix, Routes: routes}
}

// WithVersion returns a copy of the controller mounted under the given
// version segment, e.g. "v1" -> /v1/<prefix>/....
func (c Controller[C]) WithVersion(version string) Controller[C] {
	c.Version = version
	return c
}

// WithMiddlewares returns a copy of the controller with middleware applied
// to every route in the group.
func (c Controller[C]) WithMiddlewares(mws ...handler.Middleware[C]) Controller[C] {
	c.Middlewares = append(c.Middlewares[:len(c.Middlewares):len(c.Middlewares)], mws...)
	return c
}

// GET declares a GET route.
func GET[C handler.Context](path string, h handler.HandlerFunc[C], mws ...handler.Middleware[C]) RouteDef[C] {
	return RouteDef[C]{Method: http.MethodGet, Path: path, Handler: h, Middlewares: mws}
}

// POST declares a POST route.
func POST[C handler.Context](path string, h handler.HandlerFunc[C], mws ...handler.Middleware[C]) RouteDef[C] {
	return RouteDef[C]{Method: http.MethodPost, Path: path, Handler: h, Middlewares: mws}
}

// PUT declares a PUT route.
func PUT[C handler.Context](path string, h handler.HandlerFunc[C], mws ...handler.Middleware[C]) RouteDef[C] {
	return RouteDef[C]{Method: http.MethodPut, Path: path, Handler: h, Middlewares: mws}
}

// PATCH declares a PATCH route.
func PATCH[C handler.Context](path string, h handler.HandlerFunc[C], mws ...handler.Middleware[C]) RouteDef[C] {
	return RouteDef[C]{Method: http.MethodPatch, Path: path, Handler: h, Middlewares: mws}
}

// DELETE declares a DELETE route.
func DELETE[C handler.Context](path string, h handler.HandlerFunc[C], mws ...handler.Middleware[C]) RouteDef[C] {
	return RouteDef[C]{Method: http.MethodDelete, Path: path, Handler: h, Middlewares: mws}
}

// HEAD declares a HEAD route.
func HEAD[C handler.Context](path string, h handler.HandlerFunc[C], mws ...handler.Middleware[C]) RouteDef[C] {
	return RouteDef[C]{Method: http.MethodHead, Path: path, Handler: h, Middlewares: mws}
}

// OPTIONS declares an OPTIONS route.
func OPTIONS[C handler.Context](path string, h handler.HandlerFunc[C], mws ...handler.Middleware[C]) RouteDef[C] {
	return RouteDef[C]{Method: http.MethodOptions, Path: path, Handler: h, Middlewares: mws}
}

// validMethods is the set of methods accepted at registration.
var validMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodConnect: true,
	http.MethodOptions: true,
	http.MethodTrace:   true,
}
