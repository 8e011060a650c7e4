package router

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/cadrehq/cadre/core/di"
	"github.com/cadrehq/cadre/core/handler"
	"github.com/cadrehq/cadre/core/response"
	"github.com/cadrehq/cadre/core/state"
)

// Router dispatches HTTP requests to registered handler chains.
type Router[C handler.Context] interface {
	http.Handler
	Routes

	// Register adds controllers to the dispatch table. It panics on
	// duplicate (method, pattern) pairs and malformed patterns; routing
	// tables are startup configuration, not runtime input.
	Register(controllers ...Controller[C])

	// Handle adds a single route outside any controller.
	Handle(method, pattern string, h handler.HandlerFunc[C], mws ...handler.Middleware[C])

	// Use appends router-level middleware, outermost in every chain.
	// It panics when called after the first route registration.
	Use(mws ...handler.Middleware[C])
}

// Routes provides route introspection for debugging and monitoring.
type Routes interface {
	Routes() []Route
}

// Route describes a registered route.
type Route struct {
	Method  string
	Pattern string
	Version string
}

// ContextFactory builds the per-request context handed to handler chains.
type ContextFactory[C handler.Context] func(w http.ResponseWriter, r *http.Request, params map[string]string) C

// New creates a router. The context type parameter fixes the context every
// handler in this router receives; non-default context types require
// WithContextFactory.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	m := &mux[C]{
		errorHandler: defaultErrorHandler[C],
		registered:   make(map[string]bool),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request, params map[string]string) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(NewContext(w, r, params, m.state, m.deps)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	return m
}

// entry is one row of the dispatch table. The chain is composed once at
// registration; matching scans entries in insertion order.
type entry[C handler.Context] struct {
	method  string
	pattern *pattern
	version string
	chain   handler.HandlerFunc[C]
}

type mux[C handler.Context] struct {
	entries      []*entry[C]
	registered   map[string]bool
	middlewares  []handler.Middleware[C]
	notAllowed   handler.HandlerFunc[C]
	errorHandler handler.ErrorHandler[C]
	newContext   ContextFactory[C]
	logger       *slog.Logger
	globalPrefix string
	timeout      time.Duration

	state *state.Container
	deps  *di.Container
}

func (m *mux[C]) Use(mws ...handler.Middleware[C]) {
	if len(m.entries) > 0 {
		panic(ErrRoutesSealed)
	}
	m.middlewares = append(m.middlewares, mws...)
}

func (m *mux[C]) Register(controllers ...Controller[C]) {
	for _, c := range controllers {
		for _, rt := range c.Routes {
			full := joinPath(m.globalPrefix, c.Version, c.Prefix, rt.Path)
			mws := make([]handler.Middleware[C], 0, len(c.Middlewares)+len(rt.Middlewares))
			mws = append(mws, c.Middlewares...)
			mws = append(mws, rt.Middlewares...)
			m.add(rt.Method, full, c.Version, rt.Handler, mws)
		}
	}
}

func (m *mux[C]) Handle(method, pattern string, h handler.HandlerFunc[C], mws ...handler.Middleware[C]) {
	m.add(method, joinPath(m.globalPrefix, pattern), "", h, mws)
}

func (m *mux[C]) add(method, fullPattern, version string, h handler.HandlerFunc[C], mws []handler.Middleware[C]) {
	if !validMethods[method] {
		panic(fmt.Errorf("%w: %q", ErrInvalidMethod, method))
	}
	if h == nil {
		panic(fmt.Errorf("%w: %s %s", ErrNilHandler, method, fullPattern))
	}

	key := method + " " + fullPattern
	if m.registered[key] {
		panic(fmt.Errorf("%w: %s %s", ErrDuplicateRoute, method, fullPattern))
	}
	m.registered[key] = true

	// Router-level middleware also wraps the method-not-allowed outcome, so
	// units like CORS preflight handling can answer OPTIONS requests for
	// paths whose routes declare other methods. Use seals after the first
	// registration, so composing here is stable.
	if m.notAllowed == nil {
		m.notAllowed = handler.Chain(m.middlewares, func(C) handler.Response {
			return response.Error(ErrMethodNotAllowed)
		})
	}

	// Router-level middleware wraps the controller and route middleware.
	all := make([]handler.Middleware[C], 0, len(m.middlewares)+len(mws))
	all = append(all, m.middlewares...)
	all = append(all, mws...)

	m.entries = append(m.entries, &entry[C]{
		method:  method,
		pattern: parsePattern(fullPattern),
		version: version,
		chain:   handler.Chain(all, h),
	})
}

func (m *mux[C]) Routes() []Route {
	routes := make([]Route, len(m.entries))
	for i, e := range m.entries {
		routes[i] = Route{Method: e.method, Pattern: e.pattern.raw, Version: e.version}
	}
	return routes
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)

	if m.timeout > 0 {
		ctx, cancel := context.WithTimeout(r.Context(), m.timeout)
		defer cancel()
		r = r.WithContext(ctx)
	}

	path := r.URL.Path
	if path == "" {
		path = "/"
	}

	// First registered match wins; entries that match the path but not the
	// method accumulate the Allow set.
	var (
		matched *entry[C]
		params  map[string]string
		allowed []string
	)
	for _, e := range m.entries {
		ps, ok := e.pattern.match(path)
		if !ok {
			continue
		}
		if e.method == r.Method {
			matched, params = e, ps
			break
		}
		allowed = append(allowed, e.method)
	}

	ctx := m.newContext(ww, r, params)

	defer func() {
		if p := recover(); p != nil {
			fault := &handlerFault{value: p, stack: debug.Stack()}
			m.logger.ErrorContext(r.Context(), "panic recovered",
				"value", fault.value,
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(fault.stack),
			)
			if !ww.Written() {
				m.errorHandler(ctx, fault)
			}
		}
	}()

	if matched == nil {
		if len(allowed) > 0 {
			ww.Header().Set("Allow", allowHeader(allowed))
			m.run(ctx, ww, r, m.notAllowed)
		} else {
			m.errorHandler(ctx, ErrNotFound)
		}
		return
	}

	m.run(ctx, ww, r, matched.chain)
}

// run executes a composed chain and renders its response, routing failures
// through the error boundary unless the response already started.
func (m *mux[C]) run(ctx C, ww *responseWriter, r *http.Request, chain handler.HandlerFunc[C]) {
	resp := chain(ctx)
	if resp == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}
	if err := resp.Render(ww, r); err != nil {
		if ww.Written() {
			m.logger.ErrorContext(r.Context(), "render failed after response started",
				"error", err,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
			)
			return
		}
		m.errorHandler(ctx, err)
	}
}

func allowHeader(methods []string) string {
	seen := make(map[string]bool, len(methods))
	out := ""
	for _, mt := range methods {
		if seen[mt] {
			continue
		}
		seen[mt] = true
		if out != "" {
			out += ", "
		}
		out += mt
	}
	return out
}
