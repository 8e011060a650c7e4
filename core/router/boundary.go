package router

import (
	"errors"

	"github.com/cadrehq/cadre/core/binder"
	"github.com/cadrehq/cadre/core/di"
	"github.com/cadrehq/cadre/core/handler"
	"github.com/cadrehq/cadre/core/response"
	"github.com/cadrehq/cadre/core/state"
	"github.com/cadrehq/cadre/core/validator"
)

// defaultErrorHandler is the error boundary: every error that escapes a
// handler chain, and every dispatch miss, passes through here and leaves the
// server as a JSON envelope. Replace it with WithErrorHandler.
func defaultErrorHandler[C handler.Context](ctx C, err error) {
	// A handler that already streamed a response cannot receive an
	// envelope on top of it.
	if ww, ok := ctx.ResponseWriter().(*responseWriter); ok && ww.Written() {
		return
	}
	_ = Envelope(err).Render(ctx.ResponseWriter(), ctx.Request())
}

// Envelope maps an error to the response envelope the default boundary
// renders for it. Custom error handlers can call it to keep the uniform
// shape while adding behavior around it.
func Envelope(err error) *response.Builder {
	var (
		decodeErr *binder.DecodeError
		fieldErrs validator.Errors
		httpErr   response.HTTPError
	)

	switch {
	case errors.As(err, &decodeErr):
		he := response.ErrBadRequest.WithMessage(decodeErr.Reason)
		if decodeErr.Field != "" {
			he = he.WithDetails(map[string]any{"field": decodeErr.Field})
		}
		return response.BadRequest().Err(he)

	case errors.As(err, &fieldErrs):
		return response.BadRequest().FieldErrors(fieldErrs...)

	case errors.As(err, &httpErr):
		return response.New(httpErr.StatusCode()).Err(httpErr)

	case errors.Is(err, ErrNotFound):
		return response.NotFound()

	case errors.Is(err, ErrMethodNotAllowed):
		return response.MethodNotAllowed()

	case errors.Is(err, state.ErrStateNotConfigured),
		errors.Is(err, di.ErrDependencyNotFound):
		// Wiring mistakes surface as opaque 500s; details stay in logs.
		return response.InternalServerError().Err(response.ErrInternalServerError)

	default:
		return response.InternalServerError().Err(response.ErrInternalServerError)
	}
}
