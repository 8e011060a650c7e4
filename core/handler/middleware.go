package handler

import (
	"net/http"

	"github.com/cadrehq/cadre/core/state"
)

// Next is the single-use continuation representing the rest of the chain,
// including the terminal handler. A middleware either calls Run exactly once
// or returns a short-circuit Response without calling it. A second Run is a
// contract violation and panics; the router boundary turns the panic into a
// 500 envelope.
type Next[C Context] struct {
	next   HandlerFunc[C]
	called bool
}

// Run invokes the remainder of the chain and returns its response.
func (n *Next[C]) Run(ctx C) Response {
	if n.called {
		panic("handler: Next invoked more than once in a single middleware")
	}
	n.called = true
	return n.next(ctx)
}

// Called reports whether the continuation has been invoked.
func (n *Next[C]) Called() bool {
	return n.called
}

// Plain adapts a middleware with no auxiliary input.
//
//	requireJSON := handler.Plain(func(ctx *router.Context, next *handler.Next[*router.Context]) handler.Response {
//		if ctx.Request().Header.Get("Content-Type") != "application/json" {
//			return response.Error(response.ErrBadRequest)
//		}
//		return next.Run(ctx)
//	})
func Plain[C Context](fn func(ctx C, next *Next[C]) Response) Middleware[C] {
	return func(next HandlerFunc[C]) HandlerFunc[C] {
		return func(ctx C) Response {
			return fn(ctx, &Next[C]{next: next})
		}
	}
}

// WithConfig adapts a middleware configured with a value fixed at route
// registration time. The same cfg is observed by every invocation of the
// route; two routes registered with different values keep their own.
func WithConfig[C Context, Cfg any](cfg Cfg, fn func(ctx C, cfg Cfg, next *Next[C]) Response) Middleware[C] {
	return func(next HandlerFunc[C]) HandlerFunc[C] {
		return func(ctx C) Response {
			return fn(ctx, cfg, &Next[C]{next: next})
		}
	}
}

// WithState adapts a middleware that reads a slice S of the shared
// application state. S is looked up on every invocation rather than captured
// at registration, so concurrent requests observe the current shared value.
// A missing state registration is a programming error surfaced as a 500 at
// the boundary.
func WithState[C Context, S any](fn func(ctx C, st S, next *Next[C]) Response) Middleware[C] {
	return func(next HandlerFunc[C]) HandlerFunc[C] {
		return func(ctx C) Response {
			st, err := state.Get[S](ctx.State())
			if err != nil {
				return errorResponse{err: err}
			}
			return fn(ctx, st, &Next[C]{next: next})
		}
	}
}

// errorResponse defers an error to the router's error boundary.
type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error { return e.err }
