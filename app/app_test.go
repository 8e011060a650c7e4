package app_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadrehq/cadre/app"
	"github.com/cadrehq/cadre/core/di"
	"github.com/cadrehq/cadre/core/handler"
	"github.com/cadrehq/cadre/core/request"
	"github.com/cadrehq/cadre/core/response"
	"github.com/cadrehq/cadre/core/router"
)

func TestMain(m *testing.M) {
	// Bind to an ephemeral port so tests never collide with a local service.
	os.Setenv("SERVER_ADDR", "127.0.0.1:0")
	os.Exit(m.Run())
}

type greeter interface {
	Greet() string
}

type englishGreeter struct{}

func (englishGreeter) Greet() string { return "hello" }

type appSettings struct {
	Motto string
}

func greetController() router.Controller[*router.Context] {
	return router.NewController[*router.Context]("/greet",
		router.GET("", func(ctx *router.Context) handler.Response {
			g, err := request.Dep[greeter](ctx)
			if err != nil {
				return response.Error(err)
			}
			s, err := request.State[appSettings](ctx)
			if err != nil {
				return response.Error(err)
			}
			return response.Ok().Data(g.Greet() + ", " + s.Motto)
		}),
	)
}

func TestNew(t *testing.T) {
	t.Run("wires state deps and controllers", func(t *testing.T) {
		module := di.NewModule(
			di.Provide(func(c *di.Container) (greeter, error) {
				return englishGreeter{}, nil
			}),
		)

		a, err := app.New(
			app.WithState(appSettings{Motto: "onward"}),
			app.WithModule(module),
			app.WithControllers(greetController()),
			app.WithGlobalPrefix("/api"),
		)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/greet", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "hello, onward")
	})

	t.Run("failing module aborts boot", func(t *testing.T) {
		module := di.NewModule(
			di.Provide(func(c *di.Container) (greeter, error) {
				return nil, errors.New("no greeter available")
			}),
		)

		_, err := app.New(app.WithModule(module))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no greeter available")
	})

	t.Run("option errors propagate", func(t *testing.T) {
		_, err := app.New(app.WithLogger(nil))
		require.Error(t, err)
	})
}

func TestRun(t *testing.T) {
	a, err := app.New(app.WithControllers(greetController()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- a.Run(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not shut down after cancellation")
	}
}
