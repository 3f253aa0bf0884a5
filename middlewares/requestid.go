package middlewares

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/bskqd/uniweb/internal"
	"github.com/bskqd/uniweb/pkg/logger"
)

type requestIDKey struct{}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	Generator      func() string
	ResponseHeader string
}

// RequestIDOption configures RequestIDConfig.
type RequestIDOption func(*RequestIDConfig)

// WithRequestIDGenerator sets the generator used when no upstream id exists.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		if gen != nil {
			cfg.Generator = gen
		}
	}
}

// WithRequestIDResponseHeader sets the response header carrying the id.
// An empty name disables the header.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.ResponseHeader = header
	}
}

// RequestID assigns an id to each request.
// An id already placed in the context by chi's RequestID middleware (as
// App.Run does) is reused; otherwise one is generated. The id is stored in the
// request context and echoed in the X-Request-ID response header.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &RequestIDConfig{
		Generator:      uuid.NewString,
		ResponseHeader: "X-Request-ID",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(req *internal.Request, deps internal.Deps) (*internal.Response, error) {
			ctx := req.Context()
			reqID := middleware.GetReqID(ctx)
			if reqID == "" {
				reqID = cfg.Generator()
			}

			resp, err := next(req.WithContext(context.WithValue(ctx, requestIDKey{}, reqID)), deps)
			if resp != nil && cfg.ResponseHeader != "" {
				resp.AddHeader(cfg.ResponseHeader, reqID)
			}
			return resp, err
		}
	}
}

// GetRequestID returns the request id stored in ctx, or "".
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// RequestIDExtractor adds "request_id" to log records.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := GetRequestID(ctx); v != "" {
			return slog.String("request_id", v), true
		}
		if v := middleware.GetReqID(ctx); v != "" {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
}
