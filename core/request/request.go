package request

import (
	"github.com/cadrehq/cadre/core/binder"
	"github.com/cadrehq/cadre/core/di"
	"github.com/cadrehq/cadre/core/handler"
	"github.com/cadrehq/cadre/core/state"
	"github.com/cadrehq/cadre/core/validator"
)

// Body decodes the request body into T without validation.
func Body[T any](ctx handler.Context) (T, error) {
	var v T
	data, err := ctx.BodyBytes()
	if err != nil {
		return v, err
	}
	if err := binder.JSON(data, &v); err != nil {
		return v, err
	}
	return v, nil
}

// ValidatedBody decodes the request body into T and runs its validation
// rules. Propagates *binder.DecodeError or validator.Errors.
func ValidatedBody[T any](ctx handler.Context) (T, error) {
	v, err := Body[T](ctx)
	if err != nil {
		return v, err
	}
	if err := validator.ValidateStruct(&v); err != nil {
		return v, err
	}
	return v, nil
}

// Query decodes the query parameters into T without validation.
func Query[T any](ctx handler.Context) (T, error) {
	var v T
	if err := binder.Query(ctx.Query(), &v); err != nil {
		return v, err
	}
	return v, nil
}

// ValidatedQuery decodes the query parameters into T and runs its validation
// rules. Propagates *binder.DecodeError or validator.Errors.
func ValidatedQuery[T any](ctx handler.Context) (T, error) {
	v, err := Query[T](ctx)
	if err != nil {
		return v, err
	}
	if err := validator.ValidateStruct(&v); err != nil {
		return v, err
	}
	return v, nil
}

// State returns the application state slice of type S, or
// state.ErrStateNotConfigured when nothing of that type was registered.
func State[S any](ctx handler.Context) (S, error) {
	return state.Get[S](ctx.State())
}

// Dep resolves capability T from the dependency container, or
// di.ErrDependencyNotFound when no module (or no provider for T) was
// registered.
func Dep[T any](ctx handler.Context) (T, error) {
	return di.Resolve[T](ctx.Deps())
}
