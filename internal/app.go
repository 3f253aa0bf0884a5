package internal

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/bskqd/uniweb/pkg/logger"
	"github.com/bskqd/uniweb/pkg/session"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App dispatches requests through the pipeline: build the request, match
// the route and method, gate authentication, resolve capabilities, call the
// handler, render and emit, then release the request scope.
// App is immutable after creation except for OverrideDependencies.
type App struct {
	logger           *slog.Logger
	backend          session.Backend
	builder          *RequestBuilder
	scopes           ScopeFactory
	injector         *injector
	metrics          *metrics
	notFound         HandlerFunc
	methodNotAllowed HandlerFunc
	healthConfig     *healthConfig
	providers        Providers
	parsers          map[string]BodyParser
	authRedirect     string
	identityKey      string
	routers          []*Router
	handlers         []Handler
	middlewares      []Middleware
	mounts           []mount
	bound            []map[string]*boundRoute
	maxBodySize      int64
}

// mount is a net/http handler served next to the app by Run.
type mount struct {
	handler http.Handler
	pattern string
}

// New creates an application with the given options.
// Routers are bound in inclusion order; handlers passed through WithHandlers
// register on a router included after every WithRouters router.
//
// New panics when a route declares a capability with no provider.
//
// Example:
//
//	app := uniweb.New(
//	    uniweb.WithSessionBackend(session.NewFilesystem(osfs.New())),
//	    uniweb.WithAuthRedirect("/"),
//	    uniweb.WithHandlers(quiz.NewHandler(questions)),
//	)
func New(opts ...Option) *App {
	a := &App{
		logger:       logger.NewNope(),
		scopes:       NopScopeFactory(),
		authRedirect: "/",
		identityKey:  DefaultIdentityKey,
		providers:    make(Providers),
		parsers:      make(map[string]BodyParser),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.backend == nil {
		a.backend = session.NewMemory()
	}

	a.builder = NewRequestBuilder(a.backend)
	a.builder.SetMaxBodySize(a.maxBodySize)
	for ct, p := range a.parsers {
		a.builder.RegisterParser(ct, p)
	}

	a.injector = newInjector(Providers{TokenLogger: Value(a.logger)})
	a.injector.override(a.providers)

	routers := slices.Clone(a.routers)
	if len(a.handlers) > 0 {
		r := NewRouter()
		for _, h := range a.handlers {
			h.Routes(r)
		}
		routers = append(routers, r)
	}
	for _, r := range routers {
		a.bind(r)
	}

	return a
}

// bind snapshots a router's routes with middleware applied.
func (a *App) bind(r *Router) {
	table := make(map[string]*boundRoute, len(r.routes))
	for _, rt := range r.Routes() {
		if err := a.injector.check(rt.path, rt.capabilities); err != nil {
			panic(err)
		}
		mws := append(slices.Clone(a.middlewares), rt.middlewares...)
		table[rt.path] = &boundRoute{
			route:       rt,
			handler:     chain(rt.handler, mws...),
			tokens:      slices.Clone(rt.capabilities),
			requireAuth: rt.requireAuth,
		}
	}
	a.bound = append(a.bound, table)
}

// lookup returns the first bound route for path across included routers.
func (a *App) lookup(path string) (*boundRoute, bool) {
	for _, table := range a.bound {
		if br, ok := table[path]; ok {
			return br, true
		}
	}
	return nil, false
}

// Lookup returns the route that would serve path.
func (a *App) Lookup(path string) (*Route, bool) {
	br, ok := a.lookup(path)
	if !ok {
		return nil, false
	}
	return br.route, true
}

// OverrideDependencies replaces providers at runtime, typically in tests.
// Tokens not in p keep their providers. Safe for concurrent use with
// in-flight requests; each request sees either the old or the new provider.
//
// Example:
//
//	app.OverrideDependencies(uniweb.Providers{
//	    "store": uniweb.Value(fakeStore),
//	})
func (a *App) OverrideDependencies(p Providers) {
	a.injector.override(p)
}

// Capabilities lists the tokens that have providers.
func (a *App) Capabilities() []Token {
	return a.injector.tokens()
}

// Logger returns the app logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// SessionBackend returns the backend requests load sessions from.
func (a *App) SessionBackend() session.Backend {
	return a.backend
}
