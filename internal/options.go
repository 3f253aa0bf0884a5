package internal

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bskqd/uniweb/pkg/health"
	"github.com/bskqd/uniweb/pkg/logger"
	"github.com/bskqd/uniweb/pkg/session"
)

// Option configures the application.
type Option func(*App)

// WithRouters includes routers in order. When several routers register the
// same path, the first included router wins, even if its methods do not
// match the request.
func WithRouters(r ...*Router) Option {
	return func(a *App) {
		for _, router := range r {
			if router != nil {
				a.routers = append(a.routers, router)
			}
		}
	}
}

// WithHandlers registers handlers that declare routes.
// All handlers share one router, included after the WithRouters routers.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithMiddleware adds middleware around every route handler.
// The first middleware is the outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithSessionBackend sets where session data lives.
// Defaults to an in-process session.Memory.
func WithSessionBackend(b session.Backend) Option {
	return func(a *App) {
		if b != nil {
			a.backend = b
		}
	}
}

// WithDependencies registers capability providers.
// Providers given here are in place before routes are validated.
//
// Example:
//
//	uniweb.WithDependencies(uniweb.Providers{
//	    "store": func() any { return repo },
//	})
func WithDependencies(p Providers) Option {
	return func(a *App) {
		for t, fn := range p {
			if fn != nil {
				a.providers[t] = fn
			}
		}
	}
}

// WithScopeFactory sets how the per-request scoped resource is acquired.
// Defaults to a factory whose scopes hold nothing.
func WithScopeFactory(f ScopeFactory) Option {
	return func(a *App) {
		if f != nil {
			a.scopes = f
		}
	}
}

// WithAuthRedirect sets the Location unauthenticated requests are sent to.
// Defaults to "/".
func WithAuthRedirect(location string) Option {
	return func(a *App) {
		a.authRedirect = location
	}
}

// WithIdentityKey sets the session key the authentication gate checks.
// Defaults to "username".
func WithIdentityKey(key string) Option {
	return func(a *App) {
		if key != "" {
			a.identityKey = key
		}
	}
}

// WithBodyParser registers a parser for a request media type.
func WithBodyParser(contentType string, p BodyParser) Option {
	return func(a *App) {
		a.parsers[contentType] = p
	}
}

// WithMaxBodySize caps how many body bytes are read. Larger bodies are
// answered with 400. Defaults to 1MB.
func WithMaxBodySize(n int64) Option {
	return func(a *App) {
		a.maxBodySize = n
	}
}

// WithNotFoundHandler sets a custom handler for paths with no route.
// The handler receives no capabilities besides the request scope.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFound = h
	}
}

// WithMethodNotAllowedHandler sets a custom handler for routes matched by
// path but not by method. The Allow header is added to its response.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowed = h
	}
}

// WithLogger creates a JSON logger with a component name and optional
// extractors.
//
// Example:
//
//	uniweb.New(
//	    uniweb.WithLogger("quiz", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(extractors...).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMetrics registers request counters and duration histograms with reg
// under namespace.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	uniweb.New(
//	    uniweb.WithMetrics(reg, "quiz"),
//	    uniweb.WithMount("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
//	)
func WithMetrics(reg prometheus.Registerer, namespace string) Option {
	return func(a *App) {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		a.metrics = newMetrics(reg, namespace)
	}
}

// WithMount serves a net/http handler at pattern next to the app when it is
// started with Run. Mounted handlers bypass the dispatch pipeline.
func WithMount(pattern string, h http.Handler) Option {
	return func(a *App) {
		if pattern != "" && h != nil {
			a.mounts = append(a.mounts, mount{handler: h, pattern: pattern})
		}
	}
}

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// WithHealthChecks enables liveness and readiness endpoints served by Run.
//
// Example:
//
//	uniweb.WithHealthChecks(
//	    uniweb.WithReadinessCheck("db", db.Healthcheck(pool)),
//	    uniweb.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(health.Checks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		c.checks[name] = fn
	}
}
