package internal

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// Route is one registered path of a Router.
type Route struct {
	handler      HandlerFunc
	methods      map[string]struct{}
	path         string
	capabilities []Token
	middlewares  []Middleware
	requireAuth  bool
}

// Path returns the exact path the route matches.
func (rt *Route) Path() string {
	return rt.path
}

// Handler returns the route's handler without middleware applied.
func (rt *Route) Handler() HandlerFunc {
	return rt.handler
}

// Allows reports whether method is registered for the route.
// Registered methods are upper case; method is compared as sent by the client.
func (rt *Route) Allows(method string) bool {
	_, ok := rt.methods[method]
	return ok
}

// Methods returns the accepted methods in sorted order.
func (rt *Route) Methods() []string {
	out := make([]string, 0, len(rt.methods))
	for m := range rt.methods {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}

// Capabilities returns the dependency tokens the route declared.
func (rt *Route) Capabilities() []Token {
	return slices.Clone(rt.capabilities)
}

// RequiresAuth reports whether the route is behind the authentication gate.
func (rt *Route) RequiresAuth() bool {
	return rt.requireAuth
}

// RouteOption configures a route at registration.
type RouteOption func(*Route)

// RequireAuth puts the route behind the authentication gate.
// Unauthenticated requests are redirected before any capability is resolved.
func RequireAuth() RouteOption {
	return func(rt *Route) {
		rt.requireAuth = true
	}
}

// Inject declares the capabilities the handler needs.
// Every token must have a provider by the time the router is included in an App.
func Inject(tokens ...Token) RouteOption {
	return func(rt *Route) {
		for _, t := range tokens {
			if !slices.Contains(rt.capabilities, t) {
				rt.capabilities = append(rt.capabilities, t)
			}
		}
	}
}

// Use attaches middleware to a single route.
// Route middleware runs inside the app-wide middleware.
func Use(mws ...Middleware) RouteOption {
	return func(rt *Route) {
		rt.middlewares = append(rt.middlewares, mws...)
	}
}

// Router maps exact paths to routes.
// Matching is by equality: no patterns, no trailing-slash normalization.
// Registration is not safe for concurrent use; register everything before
// passing the router to New.
type Router struct {
	routes map[string]*Route
	order  []string
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{routes: make(map[string]*Route)}
}

// Handle registers handler for path and methods.
// Method names are upper-cased. Registering the same path again replaces
// the previous route.
// Panics when path is empty, handler is nil or no methods are given.
func (r *Router) Handle(path string, methods []string, handler HandlerFunc, opts ...RouteOption) {
	if path == "" {
		panic("uniweb: route path must not be empty")
	}
	if handler == nil {
		panic(fmt.Sprintf("uniweb: nil handler for route %q", path))
	}
	if len(methods) == 0 {
		panic(fmt.Sprintf("uniweb: route %q has no methods", path))
	}

	rt := &Route{
		path:    path,
		handler: handler,
		methods: make(map[string]struct{}, len(methods)),
	}
	for _, m := range methods {
		rt.methods[strings.ToUpper(m)] = struct{}{}
	}
	for _, opt := range opts {
		opt(rt)
	}

	if _, exists := r.routes[path]; !exists {
		r.order = append(r.order, path)
	}
	r.routes[path] = rt
}

// GET registers a GET route.
func (r *Router) GET(path string, handler HandlerFunc, opts ...RouteOption) {
	r.Handle(path, []string{http.MethodGet}, handler, opts...)
}

// POST registers a POST route.
func (r *Router) POST(path string, handler HandlerFunc, opts ...RouteOption) {
	r.Handle(path, []string{http.MethodPost}, handler, opts...)
}

// PUT registers a PUT route.
func (r *Router) PUT(path string, handler HandlerFunc, opts ...RouteOption) {
	r.Handle(path, []string{http.MethodPut}, handler, opts...)
}

// PATCH registers a PATCH route.
func (r *Router) PATCH(path string, handler HandlerFunc, opts ...RouteOption) {
	r.Handle(path, []string{http.MethodPatch}, handler, opts...)
}

// DELETE registers a DELETE route.
func (r *Router) DELETE(path string, handler HandlerFunc, opts ...RouteOption) {
	r.Handle(path, []string{http.MethodDelete}, handler, opts...)
}

// Lookup returns the route registered for path.
func (r *Router) Lookup(path string) (*Route, bool) {
	rt, ok := r.routes[path]
	return rt, ok
}

// Routes returns all routes in registration order.
func (r *Router) Routes() []*Route {
	out := make([]*Route, 0, len(r.order))
	for _, p := range r.order {
		out = append(out, r.routes[p])
	}
	return out
}

// String lists the registered routes, one per line.
func (r *Router) String() string {
	var b strings.Builder
	for _, rt := range r.Routes() {
		fmt.Fprintf(&b, "%s %s\n", strings.Join(rt.Methods(), ","), rt.path)
	}
	return b.String()
}
