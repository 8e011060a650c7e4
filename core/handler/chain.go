package handler

// Chain builds a single handler from a middleware stack and endpoint.
// The list is folded from last to first, wrapping each unit around the
// previously built continuation, so the first-declared middleware runs first
// at request time and its post-processing runs last on the way back up.
// The endpoint is the innermost continuation and never receives a Next.
func Chain[C Context](middlewares []Middleware[C], endpoint HandlerFunc[C]) HandlerFunc[C] {
	h := endpoint
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
