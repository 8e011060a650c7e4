// Package router dispatches HTTP requests to handler chains built from
// declarative route tables.
//
// Routes are declared as data (RouteDef grouped into Controller values) and
// registered on a Router. At registration time each route's middleware chain
// is composed once; at dispatch time the table is scanned in registration
// order and the first matching entry wins. Patterns support static segments,
// {name} parameters, and a trailing * wildcard.
//
//	users := router.NewController[*router.Context]("/users",
//		router.GET("", listUsers),
//		router.GET("/{id}", getUser),
//		router.POST("", createUser, requireAdmin),
//	)
//
//	r := router.New[*router.Context]()
//	r.Register(users)
//	http.ListenAndServe(":8080", r)
//
// Errors returned by handlers, decode failures, validation failures, and
// recovered panics all pass through a single error boundary that renders a
// uniform JSON envelope. The boundary is replaceable via WithErrorHandler.
package router
