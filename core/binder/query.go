package binder

import "net/url"

// Query binds query parameters to a struct using `query` tags.
// Fields without a tag bind to the lowercased field name.
func Query(values url.Values, v any) error {
	return bindValues(v, "query", values, ErrFailedToParseQuery)
}

// Values binds an arbitrary key-value multimap to a struct using the given
// struct tag for field names. Query is shorthand for Values with the "query"
// tag.
func Values(values url.Values, tag string, v any) error {
	return bindValues(v, tag, values, ErrFailedToParseQuery)
}
