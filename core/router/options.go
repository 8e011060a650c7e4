package router

import (
	"log/slog"
	"time"

	"github.com/cadrehq/cadre/core/di"
	"github.com/cadrehq/cadre/core/handler"
	"github.com/cadrehq/cadre/core/state"
)

// Option configures a Router during creation.
type Option[C handler.Context] func(*mux[C])

// WithErrorHandler replaces the default error boundary.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(m *mux[C]) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithMiddleware adds router-level middleware, outermost in every chain.
func WithMiddleware[C handler.Context](middlewares ...handler.Middleware[C]) Option[C] {
	return func(m *mux[C]) {
		m.middlewares = append(m.middlewares, middlewares...)
	}
}

// WithContextFactory sets a custom context factory. Required when the
// router's context type is not *router.Context.
func WithContextFactory[C handler.Context](f ContextFactory[C]) Option[C] {
	return func(m *mux[C]) {
		m.newContext = f
	}
}

// WithLogger sets the logger used for recovered panics and render failures.
func WithLogger[C handler.Context](logger *slog.Logger) Option[C] {
	return func(m *mux[C]) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithGlobalPrefix mounts every registered route under the given prefix,
// e.g. "/api".
func WithGlobalPrefix[C handler.Context](prefix string) Option[C] {
	return func(m *mux[C]) {
		m.globalPrefix = prefix
	}
}

// WithAppState exposes the application state container to request contexts
// built by the default factory.
func WithAppState[C handler.Context](st *state.Container) Option[C] {
	return func(m *mux[C]) {
		m.state = st
	}
}

// WithDependencies exposes the dependency container to request contexts
// built by the default factory.
func WithDependencies[C handler.Context](deps *di.Container) Option[C] {
	return func(m *mux[C]) {
		m.deps = deps
	}
}

// WithRequestTimeout bounds every request context with the given timeout.
// Zero disables the bound.
func WithRequestTimeout[C handler.Context](d time.Duration) Option[C] {
	return func(m *mux[C]) {
		m.timeout = d
	}
}
