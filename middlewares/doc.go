// Package middlewares provides handler middleware for uniweb apps.
//
//   - [RequestID] tags each request with an id, reusing chi's when present.
//   - [AccessLog] logs one line per handled request.
//   - [Tracing] wraps each handler call in an OpenTelemetry span.
//
// Install them app-wide with uniweb.WithMiddleware or per route with
// uniweb.Use:
//
//	app := uniweb.New(
//	    uniweb.WithLogger("quiz", middlewares.RequestIDExtractor()),
//	    uniweb.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Tracing(),
//	        middlewares.AccessLog(log),
//	    ),
//	)
package middlewares
