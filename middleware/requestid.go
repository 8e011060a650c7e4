package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/cadrehq/cadre/core/handler"
)

// requestIDContextKey keys the request ID in the request context.
type requestIDContextKey struct{}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Skip bypasses the middleware for matching requests.
	Skip func(ctx handler.Context) bool
	// Generator creates new request IDs (default: UUID v4).
	Generator func() string
	// HeaderName carries the ID on the response (default: "X-Request-ID").
	HeaderName string
	// UseExisting reuses an incoming request ID instead of generating one.
	UseExisting bool
}

// RequestID assigns a unique identifier to each request for tracing and
// logging. The ID lands in the request context and the response headers.
func RequestID[C handler.Context]() handler.Middleware[C] {
	return RequestIDWithConfig[C](RequestIDConfig{})
}

// RequestIDWithConfig is RequestID with custom configuration.
func RequestIDWithConfig[C handler.Context](cfg RequestIDConfig) handler.Middleware[C] {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}
	if cfg.Generator == nil {
		cfg.Generator = func() string {
			return uuid.New().String()
		}
	}

	return handler.Plain(func(ctx C, next *handler.Next[C]) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next.Run(ctx)
		}

		var id string
		if cfg.UseExisting {
			id = ctx.Request().Header.Get(cfg.HeaderName)
		}
		if id == "" {
			id = cfg.Generator()
		}

		ctx.SetValue(requestIDContextKey{}, id)

		resp := next.Run(ctx)

		return handler.ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
			w.Header().Set(cfg.HeaderName, id)
			return resp.Render(w, r)
		})
	})
}

// GetRequestID retrieves the request ID assigned by the middleware.
func GetRequestID(ctx handler.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey{}).(string)
	return id, ok
}
