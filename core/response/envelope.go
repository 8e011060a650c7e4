package response

import (
	"encoding/json"
	"net/http"

	"github.com/cadrehq/cadre/core/handler"
	"github.com/cadrehq/cadre/core/validator"
)

// Envelope is the wire shape of every response.
type Envelope struct {
	Status  int                   `json:"status"`
	Message string                `json:"message,omitempty"`
	Data    any                   `json:"data,omitempty"`
	Err     any                   `json:"error,omitempty"`
	Errs    []validator.FieldError `json:"errors,omitempty"`
}

// Builder assembles an Envelope. Create one with a status constructor (Ok,
// Created, BadRequest, ...); it implements handler.Response, so handlers
// return it directly.
type Builder struct {
	envelope Envelope
}

// New creates a builder with an arbitrary status code.
func New(status int) *Builder {
	return &Builder{envelope: Envelope{Status: status}}
}

// Status constructors. Each fixes the envelope's status code.

func Ok() *Builder                  { return New(http.StatusOK) }
func Created() *Builder             { return New(http.StatusCreated) }
func Accepted() *Builder            { return New(http.StatusAccepted) }
func NoContent() *Builder           { return New(http.StatusNoContent) }
func BadRequest() *Builder          { return New(http.StatusBadRequest) }
func Unauthorized() *Builder        { return New(http.StatusUnauthorized) }
func Forbidden() *Builder           { return New(http.StatusForbidden) }
func NotFound() *Builder            { return New(http.StatusNotFound) }
func MethodNotAllowed() *Builder    { return New(http.StatusMethodNotAllowed) }
func Conflict() *Builder            { return New(http.StatusConflict) }
func UnprocessableEntity() *Builder { return New(http.StatusUnprocessableEntity) }
func TooManyRequests() *Builder     { return New(http.StatusTooManyRequests) }
func InternalServerError() *Builder { return New(http.StatusInternalServerError) }

// Data attaches the success payload. Mutually exclusive with Err and
// FieldErrors; mixing the two families panics.
func (b *Builder) Data(v any) *Builder {
	if b.envelope.Err != nil || b.envelope.Errs != nil {
		panic("response: cannot attach data to an envelope carrying an error payload")
	}
	b.envelope.Data = v
	return b
}

// Message attaches the optional human-readable message.
func (b *Builder) Message(s string) *Builder {
	b.envelope.Message = s
	return b
}

// Err attaches a single structured failure payload.
func (b *Builder) Err(v any) *Builder {
	if b.envelope.Data != nil {
		panic("response: cannot attach an error payload to an envelope carrying data")
	}
	b.envelope.Err = v
	return b
}

// FieldErrors attaches a multi-field validation failure payload.
func (b *Builder) FieldErrors(errs ...validator.FieldError) *Builder {
	if b.envelope.Data != nil {
		panic("response: cannot attach an error payload to an envelope carrying data")
	}
	b.envelope.Errs = append(b.envelope.Errs, errs...)
	return b
}

// Envelope returns the assembled envelope value.
func (b *Builder) Envelope() Envelope {
	return b.envelope
}

// Render implements handler.Response: writes the envelope as JSON with the
// envelope's status code.
func (b *Builder) Render(w http.ResponseWriter, _ *http.Request) error {
	return writeEnvelope(w, b.envelope)
}

func writeEnvelope(w http.ResponseWriter, e Envelope) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Status)
	return json.NewEncoder(w).Encode(e)
}

// Error returns a response that propagates err to the router's error
// boundary, which converts it into the appropriate envelope. Use it to pass
// through decode and validation failures from typed extraction:
//
//	body, err := request.ValidatedBody[CreateUser](ctx)
//	if err != nil {
//		return response.Error(err)
//	}
func Error(err error) handler.Response {
	return handler.ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
		return err
	})
}
