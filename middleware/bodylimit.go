package middleware

import (
	"fmt"
	"io"
	"mime"
	"strconv"

	"github.com/cadrehq/cadre/core/handler"
	"github.com/cadrehq/cadre/core/response"
)

// BodyLimitConfig configures the request body limit middleware.
type BodyLimitConfig struct {
	// Skip bypasses the limit for matching requests.
	Skip func(ctx handler.Context) bool
	// MaxSize is the maximum allowed body size in bytes (default: 4MB).
	MaxSize int64
	// ContentTypeLimit overrides MaxSize per media type, e.g.
	// {"multipart/form-data": 10 << 20}.
	ContentTypeLimit map[string]int64
	// ErrorHandler produces the over-limit response (default: a 413
	// envelope naming the limit).
	ErrorHandler func(ctx handler.Context, contentLength, maxSize int64) handler.Response
}

// BodyLimit rejects requests whose bodies exceed 4MB.
func BodyLimit[C handler.Context]() handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{})
}

// BodyLimitWithSize rejects requests whose bodies exceed maxSize bytes.
func BodyLimitWithSize[C handler.Context](maxSize int64) handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{MaxSize: maxSize})
}

// BodyLimitWithConfig enforces the limit twice: declared Content-Length is
// checked up front, and the body reader is capped for requests that lie or
// stream without a length.
func BodyLimitWithConfig[C handler.Context](cfg BodyLimitConfig) handler.Middleware[C] {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 4 << 20
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx handler.Context, contentLength, maxSize int64) handler.Response {
			details := map[string]any{"limit": maxSize}
			if contentLength > 0 {
				details["size"] = contentLength
			}
			msg := fmt.Sprintf("Request body exceeds the %d byte limit", maxSize)
			return response.Error(response.ErrRequestEntityTooLarge.WithMessage(msg).WithDetails(details))
		}
	}

	return handler.Plain(func(ctx C, next *handler.Next[C]) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next.Run(ctx)
		}

		req := ctx.Request()

		maxSize := cfg.MaxSize
		if cfg.ContentTypeLimit != nil {
			if mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type")); err == nil {
				if limit, ok := cfg.ContentTypeLimit[mediaType]; ok {
					maxSize = limit
				}
			}
		}

		if lenStr := req.Header.Get("Content-Length"); lenStr != "" {
			if contentLength, err := strconv.ParseInt(lenStr, 10, 64); err == nil && contentLength > maxSize {
				return cfg.ErrorHandler(ctx, contentLength, maxSize)
			}
		}

		if req.Body != nil {
			req.Body = &limitedReader{reader: req.Body, limit: maxSize}
		}

		return next.Run(ctx)
	})
}

// limitedReader caps an io.ReadCloser at limit bytes and errors past it.
type limitedReader struct {
	reader io.ReadCloser
	limit  int64
	read   int64
}

func (lr *limitedReader) Read(p []byte) (int, error) {
	if lr.read > lr.limit {
		return 0, lr.errTooLarge()
	}

	// Allow one byte past the limit so a body of exactly limit bytes still
	// reaches EOF cleanly.
	if remaining := lr.limit - lr.read + 1; int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := lr.reader.Read(p)
	lr.read += int64(n)
	if lr.read > lr.limit {
		return n, lr.errTooLarge()
	}
	return n, err
}

// errTooLarge carries the 413 status, so a read failure deep inside body
// decoding still renders as Request Entity Too Large at the boundary.
func (lr *limitedReader) errTooLarge() error {
	return response.ErrRequestEntityTooLarge.WithMessage(
		fmt.Sprintf("Request body exceeds the %d byte limit", lr.limit))
}

func (lr *limitedReader) Close() error {
	return lr.reader.Close()
}
