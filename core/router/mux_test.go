package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadrehq/cadre/core/handler"
	"github.com/cadrehq/cadre/core/request"
	"github.com/cadrehq/cadre/core/response"
	"github.com/cadrehq/cadre/core/router"
	"github.com/cadrehq/cadre/core/state"
)

func ok(body string) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		return response.Ok().Data(body)
	}
}

func doRequest(t *testing.T, r http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	t.Run("static route", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Handle(http.MethodGet, "/health", ok("alive"))

		rec := doRequest(t, r, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, float64(200), env["status"])
		assert.Equal(t, "alive", env["data"])
	})

	t.Run("path params", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Handle(http.MethodGet, "/users/{id}/posts/{post}", func(ctx *router.Context) handler.Response {
			return response.Ok().Data(map[string]string{
				"id":   ctx.Param("id"),
				"post": ctx.Param("post"),
			})
		})

		rec := doRequest(t, r, http.MethodGet, "/users/42/posts/7", "")
		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		data := env["data"].(map[string]any)
		assert.Equal(t, "42", data["id"])
		assert.Equal(t, "7", data["post"])
	})

	t.Run("trailing wildcard", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Handle(http.MethodGet, "/static/*", ok("file"))

		assert.Equal(t, http.StatusOK, doRequest(t, r, http.MethodGet, "/static/css/site.css", "").Code)
		assert.Equal(t, http.StatusOK, doRequest(t, r, http.MethodGet, "/static", "").Code)
		assert.Equal(t, http.StatusNotFound, doRequest(t, r, http.MethodGet, "/other", "").Code)
	})

	t.Run("first registered match wins", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Handle(http.MethodGet, "/users/{id}", func(ctx *router.Context) handler.Response {
			return response.Ok().Data("param:" + ctx.Param("id"))
		})
		r.Handle(http.MethodGet, "/users/me", ok("me"))

		rec := doRequest(t, r, http.MethodGet, "/users/me", "")
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "param:me", env["data"], "earlier registration must win over later static route")
	})

	t.Run("not found renders bare envelope", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Handle(http.MethodGet, "/known", ok("known"))

		rec := doRequest(t, r, http.MethodGet, "/unknown", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"status":404}`, rec.Body.String())
	})

	t.Run("method mismatch returns 405 with allow header", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Handle(http.MethodGet, "/things", ok("list"))
		r.Handle(http.MethodPost, "/things", ok("create"))

		rec := doRequest(t, r, http.MethodDelete, "/things", "")
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))
		assert.JSONEq(t, `{"status":405}`, rec.Body.String())
	})

	t.Run("duplicate registration panics", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Handle(http.MethodGet, "/dup", ok("a"))
		assert.Panics(t, func() {
			r.Handle(http.MethodGet, "/dup", ok("b"))
		})
	})

	t.Run("nil response becomes 500", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Handle(http.MethodGet, "/broken", func(ctx *router.Context) handler.Response {
			return nil
		})

		rec := doRequest(t, r, http.MethodGet, "/broken", "")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestControllers(t *testing.T) {
	t.Parallel()

	t.Run("prefix version and global prefix compose", func(t *testing.T) {
		t.Parallel()

		users := router.NewController[*router.Context]("/users",
			router.GET("", ok("list")),
			router.GET("/{id}", ok("one")),
		).WithVersion("v1")

		r := router.New(router.WithGlobalPrefix[*router.Context]("/api"))
		r.Register(users)

		assert.Equal(t, http.StatusOK, doRequest(t, r, http.MethodGet, "/api/v1/users", "").Code)
		assert.Equal(t, http.StatusOK, doRequest(t, r, http.MethodGet, "/api/v1/users/9", "").Code)
		assert.Equal(t, http.StatusNotFound, doRequest(t, r, http.MethodGet, "/users", "").Code)
	})

	t.Run("routes introspection", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Register(router.NewController[*router.Context]("/a",
			router.GET("/x", ok("x")),
			router.POST("/y", ok("y")),
		))

		routes := r.Routes()
		require.Len(t, routes, 2)
		assert.Equal(t, router.Route{Method: "GET", Pattern: "/a/x"}, routes[0])
		assert.Equal(t, router.Route{Method: "POST", Pattern: "/a/y"}, routes[1])
	})
}

func TestMiddlewareOrdering(t *testing.T) {
	t.Parallel()

	record := func(log *[]string, name string) handler.Middleware[*router.Context] {
		return handler.Plain(func(ctx *router.Context, next *handler.Next[*router.Context]) handler.Response {
			*log = append(*log, name+":pre")
			resp := next.Run(ctx)
			*log = append(*log, name+":post")
			return resp
		})
	}

	t.Run("controller wraps route wraps handler", func(t *testing.T) {
		t.Parallel()

		var log []string
		ctrl := router.NewController[*router.Context]("/",
			router.GET("/run", func(ctx *router.Context) handler.Response {
				log = append(log, "handler")
				return response.Ok()
			}, record(&log, "route")),
		).WithMiddlewares(record(&log, "ctrl"))

		r := router.New[*router.Context]()
		r.Register(ctrl)

		doRequest(t, r, http.MethodGet, "/run", "")
		assert.Equal(t, []string{"ctrl:pre", "route:pre", "handler", "route:post", "ctrl:post"}, log)
	})

	t.Run("short circuit skips downstream but unwinds upstream", func(t *testing.T) {
		t.Parallel()

		var log []string
		deny := handler.Plain(func(ctx *router.Context, next *handler.Next[*router.Context]) handler.Response {
			log = append(log, "deny")
			return response.Forbidden().Err(response.ErrForbidden)
		})

		r := router.New[*router.Context]()
		r.Handle(http.MethodGet, "/guarded", func(ctx *router.Context) handler.Response {
			log = append(log, "handler")
			return response.Ok()
		}, record(&log, "outer"), deny, record(&log, "inner"))

		rec := doRequest(t, r, http.MethodGet, "/guarded", "")
		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, []string{"outer:pre", "deny", "outer:post"}, log)
	})

	t.Run("no handler or middleware runs on dispatch miss", func(t *testing.T) {
		t.Parallel()

		var log []string
		r := router.New[*router.Context]()
		r.Use(record(&log, "global"))
		r.Handle(http.MethodGet, "/present", ok("present"))

		doRequest(t, r, http.MethodGet, "/absent", "")
		assert.Empty(t, log)
	})

	t.Run("router middleware wraps method mismatch", func(t *testing.T) {
		t.Parallel()

		var log []string
		answerOptions := handler.Plain(func(ctx *router.Context, next *handler.Next[*router.Context]) handler.Response {
			log = append(log, "mw")
			if ctx.Method() == http.MethodOptions {
				return response.NoContent()
			}
			return next.Run(ctx)
		})

		r := router.New[*router.Context]()
		r.Use(answerOptions)
		r.Handle(http.MethodPost, "/data", ok("created"))

		rec := doRequest(t, r, http.MethodOptions, "/data", "")
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(t, r, http.MethodDelete, "/data", "")
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, "POST", rec.Header().Get("Allow"))
		assert.JSONEq(t, `{"status":405}`, rec.Body.String())
		assert.Equal(t, []string{"mw", "mw"}, log)
	})

	t.Run("use after registration panics", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Handle(http.MethodGet, "/x", ok("x"))
		assert.Panics(t, func() {
			r.Use(record(new([]string), "late"))
		})
	})
}

func TestErrorBoundary(t *testing.T) {
	t.Parallel()

	type listQuery struct {
		Page int `query:"page" validate:"between:1,1000"`
	}

	t.Run("validation failure renders errors envelope", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Handle(http.MethodGet, "/users", func(ctx *router.Context) handler.Response {
			q, err := request.ValidatedQuery[listQuery](ctx)
			if err != nil {
				return response.Error(err)
			}
			return response.Ok().Data(q)
		})

		rec := doRequest(t, r, http.MethodGet, "/users?page=0", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, float64(400), env["status"])
		errs := env["errors"].([]any)
		require.Len(t, errs, 1)
		fe := errs[0].(map[string]any)
		assert.Equal(t, "page", fe["field"])
		assert.Equal(t, "Page must be between 1 and 1000", fe["message"])
	})

	t.Run("malformed body renders error envelope", func(t *testing.T) {
		t.Parallel()

		type payload struct {
			Name string `json:"name"`
		}

		r := router.New[*router.Context]()
		r.Handle(http.MethodPost, "/submit", func(ctx *router.Context) handler.Response {
			p, err := request.ValidatedBody[payload](ctx)
			if err != nil {
				return response.Error(err)
			}
			return response.Ok().Data(p)
		})

		rec := doRequest(t, r, http.MethodPost, "/submit", `{"name": 12`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, float64(400), env["status"])
		assert.NotNil(t, env["error"])
	})

	t.Run("valid body renders data envelope", func(t *testing.T) {
		t.Parallel()

		type payload struct {
			Name string `json:"name" validate:"required"`
		}

		r := router.New[*router.Context]()
		r.Handle(http.MethodPost, "/submit", func(ctx *router.Context) handler.Response {
			p, err := request.ValidatedBody[payload](ctx)
			if err != nil {
				return response.Error(err)
			}
			return response.Ok().Data(p)
		})

		rec := doRequest(t, r, http.MethodPost, "/submit", `{"name":"ada"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, map[string]any{"name": "ada"}, env["data"])
	})

	t.Run("http error keeps its status", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Handle(http.MethodGet, "/secret", func(ctx *router.Context) handler.Response {
			return response.Error(response.ErrUnauthorized)
		})

		rec := doRequest(t, r, http.MethodGet, "/secret", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		env := decodeEnvelope(t, rec)
		errObj := env["error"].(map[string]any)
		assert.Equal(t, "UNAUTHORIZED", errObj["code"])
	})

	t.Run("panic becomes opaque 500", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Handle(http.MethodGet, "/boom", func(ctx *router.Context) handler.Response {
			panic("kaboom")
		})

		rec := doRequest(t, r, http.MethodGet, "/boom", "")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		env := decodeEnvelope(t, rec)
		errObj := env["error"].(map[string]any)
		assert.Equal(t, "INTERNAL_SERVER_ERROR", errObj["code"])
		assert.NotContains(t, rec.Body.String(), "kaboom")
	})

	t.Run("custom error handler observes handler fault", func(t *testing.T) {
		t.Parallel()

		var fault router.HandlerFault
		r := router.New(router.WithErrorHandler[*router.Context](func(ctx *router.Context, err error) {
			if f, ok := err.(router.HandlerFault); ok {
				fault = f
			}
			ctx.ResponseWriter().WriteHeader(http.StatusServiceUnavailable)
		}))
		r.Handle(http.MethodGet, "/boom", func(ctx *router.Context) handler.Response {
			panic("kaboom")
		})

		rec := doRequest(t, r, http.MethodGet, "/boom", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.NotNil(t, fault)
		assert.Equal(t, "kaboom", fault.Value())
		assert.NotEmpty(t, fault.Stack())
	})
}

func TestContextWiring(t *testing.T) {
	t.Parallel()

	type greeting struct{ Text string }

	t.Run("state reaches handlers", func(t *testing.T) {
		t.Parallel()

		st := state.New(greeting{Text: "hello"})
		r := router.New(router.WithAppState[*router.Context](st))
		r.Handle(http.MethodGet, "/greet", func(ctx *router.Context) handler.Response {
			g, err := request.State[greeting](ctx)
			if err != nil {
				return response.Error(err)
			}
			return response.Ok().Data(g.Text)
		})

		rec := doRequest(t, r, http.MethodGet, "/greet", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "hello")
	})

	t.Run("missing state is an opaque 500", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Handle(http.MethodGet, "/greet", func(ctx *router.Context) handler.Response {
			g, err := request.State[greeting](ctx)
			if err != nil {
				return response.Error(err)
			}
			return response.Ok().Data(g.Text)
		})

		rec := doRequest(t, r, http.MethodGet, "/greet", "")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "greeting")
	})

	t.Run("body bytes cached across reads", func(t *testing.T) {
		t.Parallel()

		type payload struct {
			Name string `json:"name"`
		}

		r := router.New[*router.Context]()
		r.Handle(http.MethodPost, "/twice", func(ctx *router.Context) handler.Response {
			first, err := request.Body[payload](ctx)
			if err != nil {
				return response.Error(err)
			}
			second, err := request.Body[payload](ctx)
			if err != nil {
				return response.Error(err)
			}
			return response.Ok().Data([]string{first.Name, second.Name})
		})

		rec := doRequest(t, r, http.MethodPost, "/twice", `{"name":"ada"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, []any{"ada", "ada"}, env["data"])
	})
}
