package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/cadrehq/cadre/core/handler"
	"github.com/cadrehq/cadre/core/response"
)

// TokenAuthConfig configures static token authentication.
type TokenAuthConfig struct {
	// Token is the expected credential. Required.
	Token string
	// Header carrying the credential (default: "Authorization").
	Header string
	// Scheme prefix stripped from the header value (default: "Bearer").
	// Empty string means the header carries the bare token.
	Scheme string
	// Skip bypasses authentication for matching requests.
	Skip func(ctx handler.Context) bool
}

// TokenAuth guards routes with a static bearer token. Requests without a
// matching credential are rejected with a 401 envelope before any
// downstream middleware or handler runs. The comparison is constant-time.
//
// The configuration is captured per construction, so different route groups
// can carry different tokens:
//
//	admin := middleware.TokenAuth[*router.Context](middleware.TokenAuthConfig{Token: adminToken})
//	public := middleware.TokenAuth[*router.Context](middleware.TokenAuthConfig{Token: apiToken})
func TokenAuth[C handler.Context](cfg TokenAuthConfig) handler.Middleware[C] {
	if cfg.Token == "" {
		panic("tokenauth middleware: token is required")
	}
	if cfg.Header == "" {
		cfg.Header = "Authorization"
		if cfg.Scheme == "" {
			cfg.Scheme = "Bearer"
		}
	}

	return handler.WithConfig(cfg, func(ctx C, cfg TokenAuthConfig, next *handler.Next[C]) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next.Run(ctx)
		}

		credential := ctx.Request().Header.Get(cfg.Header)
		if cfg.Scheme != "" {
			prefix := cfg.Scheme + " "
			if !strings.HasPrefix(credential, prefix) {
				return response.Error(response.ErrUnauthorized)
			}
			credential = credential[len(prefix):]
		}

		if subtle.ConstantTimeCompare([]byte(credential), []byte(cfg.Token)) != 1 {
			return response.Error(response.ErrUnauthorized)
		}

		return next.Run(ctx)
	})
}
