package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cadrehq/cadre/core/handler"
	"github.com/cadrehq/cadre/core/response"
)

// RateLimitState tracks fixed-window request counts per key. Register one
// instance in the application state; every request flowing through the
// RateLimit middleware shares it. Safe for concurrent use.
type RateLimitState struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]*bucket

	// now is swappable in tests.
	now func() time.Time
}

type bucket struct {
	start time.Time
	count int
}

// NewRateLimitState allows limit requests per key within each window.
func NewRateLimitState(limit int, windowSize time.Duration) *RateLimitState {
	if limit <= 0 {
		panic("ratelimit: limit must be positive")
	}
	if windowSize <= 0 {
		panic("ratelimit: window must be positive")
	}
	return &RateLimitState{
		limit:   limit,
		window:  windowSize,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// take consumes one slot for key. Returns the remaining budget and, when
// denied, the duration until the window resets.
func (s *RateLimitState) take(key string) (remaining int, retryAfter time.Duration, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	b := s.buckets[key]
	if b == nil || now.Sub(b.start) >= s.window {
		b = &bucket{start: now}
		s.buckets[key] = b
	}

	if b.count >= s.limit {
		return 0, s.window - now.Sub(b.start), false
	}
	b.count++
	return s.limit - b.count, 0, true
}

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Skip bypasses limiting for matching requests.
	Skip func(ctx handler.Context) bool
	// KeyExtractor derives the limiting key (default: client address).
	KeyExtractor func(ctx handler.Context) string
	// SetHeaders includes X-RateLimit-* headers on allowed responses.
	SetHeaders bool
}

// RateLimit enforces the shared RateLimitState from the application state.
// Over-budget requests receive a 429 envelope with a Retry-After header;
// the downstream chain never runs for them. Requests fail with a 500 when
// no RateLimitState was registered.
func RateLimit[C handler.Context]() handler.Middleware[C] {
	return RateLimitWithConfig[C](RateLimitConfig{})
}

// RateLimitWithConfig is RateLimit with custom configuration.
func RateLimitWithConfig[C handler.Context](cfg RateLimitConfig) handler.Middleware[C] {
	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = func(ctx handler.Context) string {
			return ctx.Request().RemoteAddr
		}
	}

	return handler.WithState(func(ctx C, st *RateLimitState, next *handler.Next[C]) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next.Run(ctx)
		}

		remaining, retryAfter, ok := st.take(cfg.KeyExtractor(ctx))
		if !ok {
			seconds := int(retryAfter.Round(time.Second).Seconds())
			if seconds < 1 {
				seconds = 1
			}
			// Setting the header here and returning the error lets the
			// boundary render the 429 envelope with Retry-After attached.
			return handler.ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				return response.ErrTooManyRequests
			})
		}

		resp := next.Run(ctx)
		if !cfg.SetHeaders {
			return resp
		}

		return handler.ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(st.limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			return resp.Render(w, r)
		})
	})
}
