package middlewares

import (
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bskqd/uniweb/internal"
)

const tracerName = "github.com/bskqd/uniweb"

// TracingConfig configures the tracing middleware.
type TracingConfig struct {
	TracerProvider trace.TracerProvider
}

// TracingOption configures TracingConfig.
type TracingOption func(*TracingConfig)

// WithTracerProvider sets the provider spans are created from.
// Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) TracingOption {
	return func(cfg *TracingConfig) {
		if tp != nil {
			cfg.TracerProvider = tp
		}
	}
}

// Tracing opens a server span around each handler call. The span context is
// attached to the request, so child spans started by handlers nest under it.
func Tracing(opts ...TracingOption) internal.Middleware {
	cfg := &TracingConfig{TracerProvider: otel.GetTracerProvider()}
	for _, opt := range opts {
		opt(cfg)
	}
	tracer := cfg.TracerProvider.Tracer(tracerName)

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(req *internal.Request, deps internal.Deps) (*internal.Response, error) {
			ctx, span := tracer.Start(req.Context(), req.Method()+" "+req.Path(),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", req.Method()),
					attribute.String("url.path", req.Path()),
					attribute.Bool("session.present", req.SessionID() != ""),
				),
			)
			defer span.End()

			resp, err := next(req.WithContext(ctx), deps)
			if resp != nil {
				span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode()))
			}
			switch {
			case errors.Is(err, internal.ErrAuthentication):
				span.SetAttributes(attribute.Bool("auth.denied", true))
			case err != nil:
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return resp, err
		}
	}
}
