package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/cadrehq/cadre/core/handler"
	"github.com/cadrehq/cadre/core/response"
)

// CORSConfig defines configuration options for the CORS middleware.
type CORSConfig struct {
	// Skip bypasses CORS handling for matching requests.
	Skip func(ctx handler.Context) bool
	// AllowOrigins lists allowed origins; empty or "*" allows all.
	AllowOrigins []string
	// AllowMethods lists allowed methods (default: GET, HEAD, PUT,
	// PATCH, POST, DELETE).
	AllowMethods []string
	// AllowHeaders lists allowed request headers.
	AllowHeaders []string
	// ExposeHeaders lists headers exposed to the client.
	ExposeHeaders []string
	// AllowCredentials permits cookies and authorization headers.
	// Ignored for wildcard origins.
	AllowCredentials bool
	// MaxAge caches preflight responses for the given seconds.
	MaxAge int
	// AllowOriginFunc overrides AllowOrigins with custom validation. It
	// returns the origin to echo and whether the origin is allowed.
	AllowOriginFunc func(origin string) (string, bool)
}

// CORS allows all origins with common methods and headers. Development
// setting; production should use CORSWithConfig with explicit origins.
func CORS[C handler.Context]() handler.Middleware[C] {
	return CORSWithConfig[C](CORSConfig{})
}

// CORSWithConfig handles preflight OPTIONS requests and decorates actual
// responses with the configured CORS headers.
func CORSWithConfig[C handler.Context](cfg CORSConfig) handler.Middleware[C] {
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		}
	}
	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{
			"Accept",
			"Accept-Language",
			"Content-Language",
			"Content-Type",
			"Origin",
			"Authorization",
			"X-Request-ID",
		}
	}

	allowMethods := strings.Join(cfg.AllowMethods, ",")
	allowHeaders := strings.Join(cfg.AllowHeaders, ",")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ",")

	allowOrigins := make(map[string]bool, len(cfg.AllowOrigins))
	for _, origin := range cfg.AllowOrigins {
		allowOrigins[origin] = true
	}

	return handler.Plain(func(ctx C, next *handler.Next[C]) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next.Run(ctx)
		}

		req := ctx.Request()
		origin := req.Header.Get("Origin")

		var allowedOrigin string
		allowed := false
		switch {
		case cfg.AllowOriginFunc != nil:
			allowedOrigin, allowed = cfg.AllowOriginFunc(origin)
		case len(cfg.AllowOrigins) == 0 || allowOrigins["*"]:
			allowedOrigin, allowed = "*", true
		case allowOrigins[origin]:
			allowedOrigin, allowed = origin, true
		}

		// Preflight detection per the CORS spec: OPTIONS plus the
		// requested-method header.
		isPreflight := req.Method == http.MethodOptions &&
			req.Header.Get("Access-Control-Request-Method") != ""

		if isPreflight {
			requestMethod := req.Header.Get("Access-Control-Request-Method")
			requestHeaders := req.Header.Get("Access-Control-Request-Headers")
			methodAllowed := slices.Contains(cfg.AllowMethods, requestMethod)

			if !allowed || !methodAllowed {
				return response.Forbidden()
			}

			return handler.ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", allowedOrigin)
				h.Set("Access-Control-Allow-Methods", allowMethods)
				if requestHeaders != "" {
					h.Set("Access-Control-Allow-Headers", allowHeaders)
				}
				// Credentials with a wildcard origin would leak them to
				// any site; the spec forbids the combination.
				if cfg.AllowCredentials && allowedOrigin != "*" {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
				if cfg.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				h.Add("Vary", "Origin")
				h.Add("Vary", "Access-Control-Request-Method")
				h.Add("Vary", "Access-Control-Request-Headers")

				w.WriteHeader(http.StatusNoContent)
				return nil
			})
		}

		resp := next.Run(ctx)
		if !allowed {
			return resp
		}

		return handler.ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", allowedOrigin)
			if cfg.AllowCredentials && allowedOrigin != "*" {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if exposeHeaders != "" {
				h.Set("Access-Control-Expose-Headers", exposeHeaders)
			}
			h.Add("Vary", "Origin")
			return resp.Render(w, r)
		})
	})
}
