// Package logger builds slog loggers.
//
// [New] writes JSON to stdout, [NewConsole] writes colored text for local
// runs, and [NewWithSentry] additionally forwards warnings and errors to
// Sentry. All of them accept [ContextExtractor] functions that add
// request-scoped attributes, such as the request id, to every record:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "answer recorded")
//	// {"level":"INFO","msg":"answer recorded","request_id":"..."}
//
// [NewNope] discards everything and is the default wherever a logger is
// optional.
package logger
