// Package response builds the uniform JSON envelope every request resolves
// to:
//
//	{"status": <int>, "message"?: <string>, "data"? | "error"? | "errors"?: <payload>}
//
// Exactly one of the three payload keys is present when set: "data" carries a
// success payload, "error" a single structured failure, "errors" a list of
// field-scoped validation failures. Status constructors fix the code and the
// chainable builder attaches the rest:
//
//	return response.Ok().Data(user).Message("User created")
//	return response.BadRequest().FieldErrors(validator.FieldError{...})
//
// Attaching a success payload to an envelope that already carries a failure
// payload (or vice versa) is a programming error and panics; the router
// boundary converts the panic into a 500 envelope.
//
// Error passthrough: response.Error(err) defers err to the router's error
// boundary, which maps decode failures, validation failures, HTTPError
// values, and unexpected faults onto envelopes with the right status.
package response
