// Package health provides HTTP handlers for service health monitoring.
//
//	r.Handle("GET", "/health/live", health.Liveness[*router.Context])
//	r.Handle("GET", "/health/ready", health.Readiness[*router.Context](
//		log,
//		pg.Healthcheck(pool),
//		redis.Healthcheck(client),
//	))
//
// Dependency checks follow the func(context.Context) error signature.
package health

import (
	"context"
	"log/slog"

	"github.com/cadrehq/cadre/core/handler"
	"github.com/cadrehq/cadre/core/logger"
	"github.com/cadrehq/cadre/core/response"
)

// Liveness indicates the process is running. Always responds 200 with an
// "alive" data envelope; no dependency checks.
func Liveness[C handler.Context](C) handler.Response {
	return response.Ok().Data("alive")
}

// NoContent responds 204 without a body, for high-frequency probes.
func NoContent[C handler.Context](C) handler.Response {
	return response.NoContent()
}

// Readiness verifies every dependency check succeeds. Responds 200 with a
// "ready" data envelope, or 503 when any check fails. Failures are logged
// with the failing error; the response stays opaque.
func Readiness[C handler.Context](log *slog.Logger, checks ...func(context.Context) error) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
				return response.Error(response.ErrServiceUnavailable)
			}
		}
		return response.Ok().Data("ready")
	}
}
