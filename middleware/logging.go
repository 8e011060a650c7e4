package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cadrehq/cadre/core/handler"
	"github.com/cadrehq/cadre/core/logger"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip bypasses logging for matching requests, e.g. health probes.
	Skip func(ctx handler.Context) bool
	// Logger receives the records (default: slog.Default()).
	Logger *slog.Logger
	// Level for completed requests (default: info).
	Level slog.Level
	// SlowRequestThreshold promotes slower requests to warn level.
	// Zero disables the promotion.
	SlowRequestThreshold time.Duration
	// Component tags every record, e.g. the service name.
	Component string
}

// responseStats is implemented by the router's response writer.
type responseStats interface {
	Status() int
	BytesWritten() int
}

// Logging records one structured log line per request: method, path,
// status, response size, and elapsed time. The record is emitted after the
// response has rendered, so the status is the one the client saw.
func Logging[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig is Logging with custom configuration.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	log := cfg.Logger
	if cfg.Component != "" {
		log = log.With(logger.Component(cfg.Component))
	}

	return handler.Plain(func(ctx C, next *handler.Next[C]) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next.Run(ctx)
		}

		start := time.Now()
		resp := next.Run(ctx)

		return handler.ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
			err := resp.Render(w, r)

			attrs := []slog.Attr{
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.ClientIP(r.RemoteAddr),
				logger.Elapsed(start),
			}
			if stats, ok := w.(responseStats); ok {
				attrs = append(attrs,
					logger.StatusCode(stats.Status()),
					logger.BytesOut(int64(stats.BytesWritten())),
				)
			}
			if id, ok := GetRequestID(ctx); ok {
				attrs = append(attrs, logger.RequestID(id))
			}
			if err != nil {
				attrs = append(attrs, logger.Error(err))
			}

			level := cfg.Level
			if cfg.SlowRequestThreshold > 0 && time.Since(start) > cfg.SlowRequestThreshold {
				level = slog.LevelWarn
			}
			log.LogAttrs(r.Context(), level, "request completed", attrs...)

			return err
		})
	})
}
