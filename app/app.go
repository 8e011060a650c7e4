// Package app assembles the framework pieces into a runnable service:
// configuration from the environment, structured logging, application state,
// a dependency module built at boot, a routing table from controllers, and a
// gracefully draining HTTP server.
//
//	a, err := app.New(
//		app.WithState(cache),
//		app.WithModule(di.NewModule(providers...)),
//		app.WithControllers(users.Controller(), billing.Controller()),
//		app.WithMiddleware(middleware.RequestID[*router.Context]()),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := a.Run(context.Background()); err != nil {
//		log.Fatal(err)
//	}
package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cadrehq/cadre/core/config"
	"github.com/cadrehq/cadre/core/di"
	"github.com/cadrehq/cadre/core/handler"
	"github.com/cadrehq/cadre/core/logger"
	"github.com/cadrehq/cadre/core/router"
	"github.com/cadrehq/cadre/core/server"
	"github.com/cadrehq/cadre/core/state"
)

// Config holds application configuration with environment variable support.
type Config struct {
	Server server.Config
	Log    logger.Config

	AppName string `env:"APP_NAME" envDefault:"cadre"`
	Env     string `env:"APP_ENV" envDefault:"development"`
}

// App owns the composed service. Build one with New, then call Run.
type App struct {
	config Config
	logger *slog.Logger

	stateValues []any
	state       *state.Container
	module      *di.Module
	diOpts      []di.Option
	deps        *di.Container

	controllers    []router.Controller[*router.Context]
	middlewares    []handler.Middleware[*router.Context]
	globalPrefix   string
	requestTimeout time.Duration

	router router.Router[*router.Context]
	server *server.Server
}

// Option configures the application during New.
type Option func(*App) error

// New loads configuration, applies options, eagerly builds the dependency
// module, and registers the routing table. Any wiring failure aborts boot;
// a misassembled service never starts serving.
func New(opts ...Option) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	a := &App{config: cfg}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if a.logger == nil {
		a.logger = logger.New(cfg.Log, logger.WithAttrs(
			slog.String("app", cfg.AppName),
			slog.String("env", cfg.Env),
		))
	}

	if len(a.stateValues) > 0 {
		a.state = state.New(a.stateValues...)
	}

	if a.module != nil {
		deps, err := di.Build(a.module, a.diOpts...)
		if err != nil {
			return nil, err
		}
		a.deps = deps
	}

	if a.router == nil {
		a.router = router.New(
			router.WithLogger[*router.Context](a.logger),
			router.WithGlobalPrefix[*router.Context](a.globalPrefix),
			router.WithRequestTimeout[*router.Context](a.requestTimeout),
			router.WithAppState[*router.Context](a.state),
			router.WithDependencies[*router.Context](a.deps),
		)
	}
	if len(a.middlewares) > 0 {
		a.router.Use(a.middlewares...)
	}
	a.router.Register(a.controllers...)

	if a.server == nil {
		srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		a.server = srv
	}

	return a, nil
}

// Router exposes the routing table, mainly for tests driving the app
// without a listening socket.
func (a *App) Router() router.Router[*router.Context] {
	return a.router
}

// Logger exposes the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Deps exposes the dependency container built from the registered module,
// or nil when no module was registered.
func (a *App) Deps() *di.Container {
	return a.deps
}

// Run starts the HTTP server and blocks until the context is canceled or a
// SIGINT/SIGTERM arrives, then drains in-flight requests before returning.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(ctx, a.router))

	a.logger.InfoContext(ctx, "application started", "addr", a.config.Server.Addr)
	return g.Wait()
}

// WithLogger replaces the configured logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *App) error {
		if log == nil {
			return errors.New("app: logger cannot be nil")
		}
		a.logger = log
		return nil
	}
}

// WithState registers shared application state values, retrievable in
// handlers via request.State.
func WithState(values ...any) Option {
	return func(a *App) error {
		a.stateValues = append(a.stateValues, values...)
		return nil
	}
}

// WithModule registers the dependency module. Constructors run during New;
// a failing or cyclic module aborts boot.
func WithModule(m *di.Module, opts ...di.Option) Option {
	return func(a *App) error {
		if m == nil {
			return errors.New("app: module cannot be nil")
		}
		a.module = m
		a.diOpts = append(a.diOpts, opts...)
		return nil
	}
}

// WithControllers registers routing controllers.
func WithControllers(controllers ...router.Controller[*router.Context]) Option {
	return func(a *App) error {
		a.controllers = append(a.controllers, controllers...)
		return nil
	}
}

// WithMiddleware registers application-level middleware, outermost around
// every route.
func WithMiddleware(mws ...handler.Middleware[*router.Context]) Option {
	return func(a *App) error {
		a.middlewares = append(a.middlewares, mws...)
		return nil
	}
}

// WithGlobalPrefix mounts all routes under the given prefix.
func WithGlobalPrefix(prefix string) Option {
	return func(a *App) error {
		a.globalPrefix = prefix
		return nil
	}
}

// WithRequestTimeout bounds every request context.
func WithRequestTimeout(d time.Duration) Option {
	return func(a *App) error {
		a.requestTimeout = d
		return nil
	}
}

// WithRouter replaces the router assembled by New. The app still applies
// registered middleware and controllers to it.
func WithRouter(r router.Router[*router.Context]) Option {
	return func(a *App) error {
		if r == nil {
			return errors.New("app: router cannot be nil")
		}
		a.router = r
		return nil
	}
}

// WithServer replaces the server assembled from configuration.
func WithServer(srv *server.Server) Option {
	return func(a *App) error {
		if srv == nil {
			return errors.New("app: server cannot be nil")
		}
		a.server = srv
		return nil
	}
}
