// Package validator runs tag-driven validation rules over decoded values and
// reports violations as field-scoped errors that map directly onto the
// response envelope's "errors" payload.
//
// Rules are declared in the `validate` struct tag, separated by semicolons,
// with parameters after a colon:
//
//	type ListUsersQuery struct {
//		Page  int    `query:"page" validate:"between:1,1000"`
//		Email string `json:"email" validate:"required;email"`
//	}
//
// Field names in violations use the wire name (json tag, then query tag,
// then the lowercased Go name), so clients can match errors to the fields
// they sent.
//
// Types may additionally implement Validatable for programmatic rules; its
// Validate method runs after tag rules and its field errors are merged into
// the same result.
//
// Validation is a pure function of its input: no I/O, no shared-state
// mutation.
package validator
