package internal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bskqd/uniweb/pkg/health"
)

// Handler returns the host mux Run serves: health endpoints, mounted
// handlers, and the app itself for every other path.
//
// chi's RealIP and RequestID run before the app, so the request context seen
// by handlers carries chi's request id.
func (a *App) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	if a.healthConfig != nil {
		r.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		r.Get(a.healthConfig.readinessPath, health.ReadinessHandler(
			a.healthConfig.checks,
			health.WithLogger(a.logger),
		))
	}
	for _, m := range a.mounts {
		r.Mount(m.pattern, m.handler)
	}

	r.Handle("/*", a)
	return r
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	app := uniweb.New(uniweb.WithHandlers(handlers.NewQuiz(store)))
//	err := app.Run(":8080", uniweb.Logger(log), uniweb.ShutdownHook(db.Shutdown(pool)))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}

	return runServer(runtimeConfig{
		handler:         a.Handler(),
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}
