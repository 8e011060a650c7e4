package di

import (
	"fmt"
	"reflect"
	"sync"
)

// Provider declares how to construct the shared instance for one capability.
// Create providers with Provide; the zero value is not usable.
type Provider struct {
	capability reflect.Type
	build      func(c *Container) (any, error)
}

// Provide declares a provider for capability T. T is usually an interface
// type; the constructor returns the concrete instance that satisfies it.
// The constructor may resolve other capabilities from the container it
// receives.
func Provide[T any](build func(c *Container) (T, error)) Provider {
	return Provider{
		capability: reflect.TypeOf((*T)(nil)).Elem(),
		build: func(c *Container) (any, error) {
			return build(c)
		},
	}
}

// Module is a declarative description of a dependency graph: an ordered set
// of providers. Modules are inert; Build turns them into a Container.
type Module struct {
	providers []Provider
}

// NewModule groups providers into a module.
func NewModule(providers ...Provider) *Module {
	return &Module{providers: providers}
}

// Merge returns a new module containing this module's providers followed by
// the other module's. Duplicate capabilities are rejected at Build.
func (m *Module) Merge(other *Module) *Module {
	if other == nil {
		return m
	}
	combined := make([]Provider, 0, len(m.providers)+len(other.providers))
	combined = append(combined, m.providers...)
	combined = append(combined, other.providers...)
	return &Module{providers: combined}
}

// Option configures container construction.
type Option func(*Container)

// WithLazy defers running constructors to the first Resolve of each
// capability. The capability map is still validated at Build; only
// constructor execution is deferred. First-resolution is synchronized, so
// concurrent flows observe a single shared instance.
func WithLazy() Option {
	return func(c *Container) {
		c.lazy = true
	}
}

// Container hands out the shared instances built from a module.
// Read-only after Build; safe for concurrent use.
type Container struct {
	mu        sync.Mutex
	providers map[reflect.Type]func(c *Container) (any, error)
	instances map[reflect.Type]any
	building  map[reflect.Type]bool
	lazy      bool
}

// Build constructs a container from the module. With the eager default every
// constructor runs here, so any failure aborts bootstrap with a descriptive
// error instead of surfacing per-request.
func Build(m *Module, opts ...Option) (*Container, error) {
	if m == nil {
		return nil, ErrNilModule
	}

	c := &Container{
		providers: make(map[reflect.Type]func(c *Container) (any, error), len(m.providers)),
		instances: make(map[reflect.Type]any, len(m.providers)),
		building:  make(map[reflect.Type]bool),
	}

	for _, opt := range opts {
		opt(c)
	}

	for _, p := range m.providers {
		if p.capability == nil || p.build == nil {
			return nil, fmt.Errorf("di: provider missing capability or constructor, use di.Provide")
		}
		if _, exists := c.providers[p.capability]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProvider, p.capability)
		}
		c.providers[p.capability] = p.build
	}

	if c.lazy {
		return c, nil
	}

	for capability := range c.providers {
		if _, err := c.resolveType(capability); err != nil {
			return nil, err
		}
	}
	// Cycle bookkeeping is only needed during construction.
	c.building = nil

	return c, nil
}

// MustBuild is like Build but panics on error. Intended for bootstrap code
// where a broken dependency graph must abort the process.
func MustBuild(m *Module, opts ...Option) *Container {
	c, err := Build(m, opts...)
	if err != nil {
		panic(fmt.Sprintf("di: %v", err))
	}
	return c
}

// Resolve returns the shared instance for capability T.
// Resolution after an eager Build is a plain map lookup and never constructs.
func Resolve[T any](c *Container) (T, error) {
	var zero T
	if c == nil {
		return zero, fmt.Errorf("%w: no container configured, requested %s",
			ErrDependencyNotFound, reflect.TypeOf((*T)(nil)).Elem())
	}

	v, err := c.resolveType(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Container) T {
	v, err := Resolve[T](c)
	if err != nil {
		panic(fmt.Sprintf("di: %v", err))
	}
	return v
}

// Has reports whether a provider for the capability type is registered.
func (c *Container) Has(capability reflect.Type) bool {
	if c == nil {
		return false
	}
	_, ok := c.providers[capability]
	return ok
}

// resolveType returns the instance for the capability, constructing it on
// first use. In lazy mode the whole construction runs under the container
// lock; nested resolution from inside a constructor goes through an unlocked
// view sharing the same maps, so constructors can resolve their own
// dependencies without deadlocking.
func (c *Container) resolveType(capability reflect.Type) (any, error) {
	if c.lazy {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.building == nil {
			c.building = make(map[reflect.Type]bool)
		}
		inner := &Container{
			providers: c.providers,
			instances: c.instances,
			building:  c.building,
		}
		return inner.resolveLocked(capability)
	}
	return c.resolveLocked(capability)
}

func (c *Container) resolveLocked(capability reflect.Type) (any, error) {
	if v, ok := c.instances[capability]; ok {
		return v, nil
	}

	build, ok := c.providers[capability]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDependencyNotFound, capability)
	}

	if c.building[capability] {
		return nil, fmt.Errorf("%w: %s resolves itself", ErrCyclicDependency, capability)
	}
	c.building[capability] = true
	defer delete(c.building, capability)

	v, err := build(c)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConstructorFailed, capability, err)
	}

	c.instances[capability] = v
	return v, nil
}
