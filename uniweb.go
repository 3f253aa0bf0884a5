package uniweb

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bskqd/uniweb/internal"
	"github.com/bskqd/uniweb/pkg/health"
	"github.com/bskqd/uniweb/pkg/logger"
	"github.com/bskqd/uniweb/pkg/session"
)

// Type aliases - public API
type (
	// App dispatches requests through routing, authentication, dependency
	// resolution and the handler, and releases the request scope.
	App = internal.App

	// Router maps exact paths to routes.
	Router = internal.Router

	// Route is one registered path of a Router.
	Route = internal.Route

	// RouteOption configures a route at registration.
	RouteOption = internal.RouteOption

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// Request is the immutable view of one incoming request.
	Request = internal.Request

	// RequestBuilder turns a transport Environ into a Request.
	RequestBuilder = internal.RequestBuilder

	// Response is a status, ordered headers and a body producer.
	Response = internal.Response

	// Header is one response header line.
	Header = internal.Header

	// Values holds parsed query or body parameters.
	Values = internal.Values

	// BodyParser decodes a request body into Values.
	BodyParser = internal.BodyParser

	// BodyParserFunc adapts a function to BodyParser.
	BodyParserFunc = internal.BodyParserFunc

	// Environ is the transport-level description of one request.
	Environ = internal.Environ

	// StartResponse receives the status and headers of a response.
	StartResponse = internal.StartResponse

	// Token names a capability a handler can ask for.
	Token = internal.Token

	// Provider produces a capability value.
	Provider = internal.Provider

	// Providers maps capability tokens to providers.
	Providers = internal.Providers

	// Deps carries the capability values resolved for one request.
	Deps = internal.Deps

	// Scope is a resource held for the lifetime of one request.
	Scope = internal.Scope

	// ScopeFactory acquires a Scope at the start of each request.
	ScopeFactory = internal.ScopeFactory

	// ScopeFactoryFunc adapts a function to ScopeFactory.
	ScopeFactoryFunc = internal.ScopeFactoryFunc

	// Outcome classifies how a request finished.
	Outcome = internal.Outcome

	// PanicError wraps a recovered panic.
	PanicError = internal.PanicError

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// Component is the interface for renderable response bodies.
	Component = templ.Component

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor

	// SessionData is the per-session key/value mapping.
	SessionData = session.Data

	// SessionBackend loads and stores session data.
	SessionBackend = session.Backend

	// Extractor tries multiple request sources in order.
	Extractor = internal.Extractor

	// ExtractorSource extracts a value from a request.
	ExtractorSource = internal.ExtractorSource

	// Scalar lists the types typed parameter accessors convert to.
	Scalar = internal.Scalar
)

// Constants
const (
	// SessionCookie is the reserved cookie carrying the session identifier.
	SessionCookie = internal.SessionCookie

	// DefaultCookieMaxAge is the lifetime of cookies set without one.
	DefaultCookieMaxAge = internal.DefaultCookieMaxAge

	// DefaultIdentityKey is the session key checked by the authentication gate.
	DefaultIdentityKey = internal.DefaultIdentityKey

	// TokenLogger resolves to the app logger unless overridden.
	TokenLogger = internal.TokenLogger

	ContentTypeForm = internal.ContentTypeForm
	ContentTypeHTML = internal.ContentTypeHTML
	ContentTypeText = internal.ContentTypeText

	HeaderContentType = internal.HeaderContentType
	HeaderSetCookie   = internal.HeaderSetCookie
	HeaderLocation    = internal.HeaderLocation
	HeaderAllow       = internal.HeaderAllow
)

// Request outcomes.
const (
	OutcomeHandled        = internal.OutcomeHandled
	OutcomeUnrouted       = internal.OutcomeUnrouted
	OutcomeMethodMismatch = internal.OutcomeMethodMismatch
	OutcomeDenied         = internal.OutcomeDenied
	OutcomeFaulted        = internal.OutcomeFaulted
	OutcomeBadRequest     = internal.OutcomeBadRequest
	OutcomeUnavailable    = internal.OutcomeUnavailable
)

// Errors
var (
	ErrAuthentication    = internal.ErrAuthentication
	ErrMalformedRequest  = internal.ErrMalformedRequest
	ErrReservedCookie    = internal.ErrReservedCookie
	ErrUnknownCapability = internal.ErrUnknownCapability
	ErrNilResponse       = internal.ErrNilResponse
	ErrStartupHook       = internal.ErrStartupHook
	ErrDetachedResponse  = internal.ErrDetachedResponse
)

// Constructors

// New creates a new application with the given options.
// The App is immutable after creation, except for OverrideDependencies.
//
// Example:
//
//	app := uniweb.New(
//	    uniweb.WithSessionBackend(session.NewFilesystem(osfs.New())),
//	    uniweb.WithMiddleware(middlewares.RequestID()),
//	    uniweb.WithHandlers(handlers.NewQuiz(questions)),
//	)
//
//	err := app.Run(":8080", uniweb.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return internal.NewRouter()
}

// NewRequestBuilder creates a builder loading sessions from backend.
func NewRequestBuilder(backend SessionBackend) *RequestBuilder {
	return internal.NewRequestBuilder(backend)
}

// EnvironFromRequest builds an Environ from a net/http request.
func EnvironFromRequest(r *http.Request) Environ {
	return internal.EnvironFromRequest(r)
}

// Route options

// RequireAuth puts the route behind the authentication gate.
func RequireAuth() RouteOption {
	return internal.RequireAuth()
}

// Inject declares the capabilities the handler needs.
func Inject(tokens ...Token) RouteOption {
	return internal.Inject(tokens...)
}

// Use attaches middleware to a single route.
func Use(mws ...Middleware) RouteOption {
	return internal.Use(mws...)
}

// Responses

// NewResponse creates a response with a verbatim status line.
func NewResponse(req *Request, status, contentType string, body Component) *Response {
	return internal.NewResponse(req, status, contentType, body)
}

// Text creates an HTML response whose body is s written as is.
func Text(req *Request, code int, s string) *Response {
	return internal.Text(req, code, s)
}

// HTML creates an HTML response rendering c.
func HTML(req *Request, code int, c Component) *Response {
	return internal.HTML(req, code, c)
}

// Redirect creates an empty-bodied response pointing at location.
func Redirect(req *Request, code int, location string) *Response {
	return internal.Redirect(req, code, location)
}

// StatusLine formats code with its reason phrase, e.g. "404 Not Found".
func StatusLine(code int) string {
	return internal.StatusLine(code)
}

// FormParser decodes application/x-www-form-urlencoded bodies.
func FormParser() BodyParser {
	return internal.FormParser()
}

// Authenticated reports whether data holds a non-zero identity under key.
func Authenticated(data SessionData, key string) bool {
	return internal.Authenticated(data, key)
}

// Extractors

// NewExtractor creates an Extractor that tries the given sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

// FromQuery returns a source that reads from a query parameter.
func FromQuery(name string) ExtractorSource {
	return internal.FromQuery(name)
}

// FromForm returns a source that reads from a body field.
func FromForm(name string) ExtractorSource {
	return internal.FromForm(name)
}

// FromCookie returns a source that reads from a cookie.
func FromCookie(name string) ExtractorSource {
	return internal.FromCookie(name)
}

// FromSession returns a source that reads from a session value.
func FromSession(key string) ExtractorSource {
	return internal.FromSession(key)
}

// Query returns the named query parameter converted to T.
func Query[T Scalar](req *Request, name string) T {
	return internal.Query[T](req, name)
}

// QueryDefault returns the named query parameter converted to T, or
// defaultValue when it is empty or cannot be parsed.
func QueryDefault[T Scalar](req *Request, name string, defaultValue T) T {
	return internal.QueryDefault(req, name, defaultValue)
}

// Form returns the named body field converted to T.
func Form[T Scalar](req *Request, name string) T {
	return internal.Form[T](req, name)
}

// SessionValue returns the session value for key asserted to T.
func SessionValue[T any](req *Request, key string) (T, bool) {
	return internal.SessionValue[T](req, key)
}

// Dependencies

// Value returns a provider that always yields v.
func Value(v any) Provider {
	return internal.Value(v)
}

// NewDeps builds a Deps by hand, for calling handlers in tests.
func NewDeps(values map[Token]any, scope Scope) Deps {
	return internal.NewDeps(values, scope)
}

// Resolve returns the value for t asserted to T.
//
// Example:
//
//	store, ok := uniweb.Resolve[*quiz.Store](deps, "store")
func Resolve[T any](d Deps, t Token) (T, bool) {
	return internal.Resolve[T](d, t)
}

// ScopeFunc adapts a constructor returning a concrete scope type.
func ScopeFunc[S Scope](acquire func(ctx context.Context) (S, error)) ScopeFactory {
	return internal.ScopeFunc(acquire)
}

// ScopeAs returns the request scope asserted to S.
//
// Example:
//
//	tx, ok := uniweb.ScopeAs[*db.Session](deps)
func ScopeAs[S Scope](d Deps) (S, bool) {
	return internal.ScopeAs[S](d)
}

// NopScopeFactory returns a factory whose scopes hold nothing.
func NopScopeFactory() ScopeFactory {
	return internal.NopScopeFactory()
}

// IsPanicError reports whether err contains a PanicError.
func IsPanicError(err error) bool {
	return internal.IsPanicError(err)
}

// AsPanicError extracts the PanicError from err.
func AsPanicError(err error) (*PanicError, bool) {
	return internal.AsPanicError(err)
}

// App options

// WithRouters includes routers in order. The first router that knows a
// path serves it.
func WithRouters(r ...*Router) Option {
	return internal.WithRouters(r...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithMiddleware adds middleware around every route handler.
// The first middleware is the outermost.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithSessionBackend sets where session data lives.
func WithSessionBackend(b SessionBackend) Option {
	return internal.WithSessionBackend(b)
}

// WithDependencies registers capability providers.
func WithDependencies(p Providers) Option {
	return internal.WithDependencies(p)
}

// WithScopeFactory sets how the per-request scoped resource is acquired.
func WithScopeFactory(f ScopeFactory) Option {
	return internal.WithScopeFactory(f)
}

// WithAuthRedirect sets where unauthenticated requests are redirected.
func WithAuthRedirect(location string) Option {
	return internal.WithAuthRedirect(location)
}

// WithIdentityKey sets the session key the authentication gate checks.
func WithIdentityKey(key string) Option {
	return internal.WithIdentityKey(key)
}

// WithBodyParser registers a parser for a request media type.
func WithBodyParser(contentType string, p BodyParser) Option {
	return internal.WithBodyParser(contentType, p)
}

// WithMaxBodySize caps how many body bytes are read.
func WithMaxBodySize(n int64) Option {
	return internal.WithMaxBodySize(n)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithLogger creates a logger with a component name and optional extractors.
//
// Example:
//
//	uniweb.New(
//	    uniweb.WithLogger("quiz", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithMetrics registers request metrics with reg under namespace.
func WithMetrics(reg prometheus.Registerer, namespace string) Option {
	return internal.WithMetrics(reg, namespace)
}

// WithMount serves a net/http handler at pattern next to the app.
func WithMount(pattern string, h http.Handler) Option {
	return internal.WithMount(pattern, h)
}

// WithHealthChecks enables liveness and readiness endpoints.
// Liveness (/health/live): always OK while the process runs.
// Readiness (/health/ready): runs all configured checks.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the server logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout bounds graceful shutdown.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook runs fn before the server accepts connections.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook runs fn after the server stopped accepting requests.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}
