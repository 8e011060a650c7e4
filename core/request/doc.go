// Package request provides the typed accessors handlers use to pull data out
// of a Context: decoded bodies and queries (optionally validated), slices of
// the shared application state, and dependency-injected capabilities.
//
//	func listUsers(ctx *router.Context) handler.Response {
//		q, err := request.ValidatedQuery[ListUsersQuery](ctx)
//		if err != nil {
//			return response.Error(err)
//		}
//		repo, err := request.Dep[UserRepo](ctx)
//		if err != nil {
//			return response.Error(err)
//		}
//		users, err := repo.List(ctx, q.Page)
//		...
//	}
//
// Decode failures propagate as *binder.DecodeError, rule violations as
// validator.Errors; both are converted into client-fault envelopes by the
// router boundary when passed through response.Error.
package request
