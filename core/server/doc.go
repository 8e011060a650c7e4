// Package server wraps http.Server with configuration options and a
// two-phase graceful shutdown: in-flight requests get a drain window, then
// remaining connections are force-closed.
//
//	srv := server.New(":8080", server.WithShutdownTimeout(10*time.Second))
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, mux))
//	err := g.Wait()
//
// Configuration can come from the environment via Config and NewFromConfig.
package server
