package router

import (
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cadrehq/cadre/core/di"
	"github.com/cadrehq/cadre/core/extensions"
	"github.com/cadrehq/cadre/core/handler"
	"github.com/cadrehq/cadre/core/state"
)

// Context is the default handler.Context implementation. The router creates
// one per request with a fresh extensions map and handles to the shared
// application state and dependency containers. Custom context types embed
// *Context and are produced through WithContextFactory.
type Context struct {
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string

	ext   *extensions.Map
	state *state.Container
	deps  *di.Container

	query url.Values

	body     []byte
	bodyErr  error
	bodyRead bool

	values map[any]any
}

var _ handler.Context = (*Context)(nil)

// NewContext creates a request context. The state and deps containers may be
// nil when the application registered none.
func NewContext(w http.ResponseWriter, r *http.Request, params map[string]string, st *state.Container, deps *di.Container) *Context {
	return &Context{
		w:      w,
		r:      r,
		params: params,
		ext:    extensions.New(),
		state:  st,
		deps:   deps,
	}
}

// Deadline delegates to the request's context.
func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done delegates to the request's context, so connection drops and shutdown
// drains cancel work awaiting on the handler context.
func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err delegates to the request's context.
func (c *Context) Err() error {
	return c.r.Context().Err()
}

// Value returns values stored via SetValue first, then falls back to the
// request's context.
func (c *Context) Value(key any) any {
	if c.values != nil {
		if v, ok := c.values[key]; ok {
			return v
		}
	}
	return c.r.Context().Value(key)
}

// SetValue stores a value retrievable via Value for the rest of the request.
func (c *Context) SetValue(key, val any) {
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = val
}

// Request returns the underlying *http.Request.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the http.ResponseWriter for this request.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Method returns the HTTP method of the request.
func (c *Context) Method() string {
	return c.r.Method
}

// Path returns the request URL path.
func (c *Context) Path() string {
	return c.r.URL.Path
}

// Param returns the value of a named route parameter, or "" if absent.
func (c *Context) Param(key string) string {
	if c.params == nil {
		return ""
	}
	return c.params[key]
}

// Query returns the parsed query parameters. Parsing happens once.
func (c *Context) Query() url.Values {
	if c.query == nil {
		c.query = c.r.URL.Query()
	}
	return c.query
}

// BodyBytes reads and caches the request body. Subsequent calls return the
// cached bytes, so several typed decodes of the same request are cheap.
func (c *Context) BodyBytes() ([]byte, error) {
	if !c.bodyRead {
		c.bodyRead = true
		if c.r.Body != nil {
			c.body, c.bodyErr = io.ReadAll(c.r.Body)
		}
	}
	return c.body, c.bodyErr
}

// Extensions returns the request-scoped type-keyed store.
func (c *Context) Extensions() *extensions.Map {
	return c.ext
}

// State returns the shared application state container, or nil.
func (c *Context) State() *state.Container {
	return c.state
}

// Deps returns the dependency resolver, or nil.
func (c *Context) Deps() *di.Container {
	return c.deps
}
