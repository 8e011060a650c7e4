package di

import "errors"

var (
	// ErrDependencyNotFound indicates a requested capability has no provider.
	// At request time this is a programming error and maps to a 500 response.
	ErrDependencyNotFound = errors.New("dependency not found")

	// ErrDuplicateProvider indicates two providers declare the same capability.
	ErrDuplicateProvider = errors.New("duplicate provider for capability")

	// ErrCyclicDependency indicates providers resolve each other in a cycle.
	ErrCyclicDependency = errors.New("cyclic dependency")

	// ErrConstructorFailed wraps an error returned by a provider constructor.
	ErrConstructorFailed = errors.New("constructor failed")

	// ErrNilModule is returned by Build when the module is nil.
	ErrNilModule = errors.New("module cannot be nil")
)
