package middlewares

import (
	"log/slog"
	"time"

	"github.com/bskqd/uniweb/internal"
)

// AccessLog logs one line per handled request with method, path, status
// and duration. Failed handlers are logged at warn level; the error itself
// is reported by the app.
func AccessLog(log *slog.Logger) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(req *internal.Request, deps internal.Deps) (*internal.Response, error) {
			start := time.Now()
			resp, err := next(req, deps)

			attrs := []any{
				slog.String("method", req.Method()),
				slog.String("path", req.Path()),
				slog.Duration("duration", time.Since(start)),
			}
			if resp != nil {
				attrs = append(attrs, slog.String("status", resp.Status()))
			}
			if err != nil {
				log.WarnContext(req.Context(), "request failed", append(attrs, slog.String("error", err.Error()))...)
				return resp, err
			}
			log.InfoContext(req.Context(), "request handled", attrs...)
			return resp, nil
		}
	}
}
