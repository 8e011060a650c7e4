// Package di provides a process-wide dependency resolver: an explicit,
// validated-at-construction registry mapping a capability (usually an
// interface type) to one shared instance.
//
// A Module is a declarative set of providers. Build runs every constructor
// eagerly, so a missing capability, a cyclic dependency, or a failing
// constructor aborts bootstrap before the server accepts a single request.
// After Build the container is read-only and resolution is a lock-free map
// lookup.
//
// Usage:
//
//	type UserRepo interface {
//		Find(ctx context.Context, id string) (User, error)
//	}
//
//	module := di.NewModule(
//		di.Provide(func(c *di.Container) (*pgxpool.Pool, error) {
//			return pg.Connect(ctx, cfg)
//		}),
//		di.Provide(func(c *di.Container) (UserRepo, error) {
//			pool, err := di.Resolve[*pgxpool.Pool](c)
//			if err != nil {
//				return nil, err
//			}
//			return newPgUserRepo(pool), nil
//		}),
//	)
//
//	container, err := di.Build(module)
//	if err != nil {
//		log.Fatal(err) // never serve with a broken dependency graph
//	}
//
//	repo, err := di.Resolve[UserRepo](container)
//
// Constructors may resolve other capabilities from the container they are
// given; Build orders construction accordingly and rejects cycles.
//
// Lazy construction can be opted into with WithLazy, which defers running
// constructors to the first Resolve while still validating the capability map
// at Build time. Prefer the eager default: failures belong at startup, not in
// request flows.
package di
