package internal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"
)

// Outcome classifies how a request finished.
type Outcome string

// Request outcomes.
const (
	OutcomeHandled        Outcome = "handled"
	OutcomeUnrouted       Outcome = "unrouted"
	OutcomeMethodMismatch Outcome = "method_mismatch"
	OutcomeDenied         Outcome = "denied"
	OutcomeFaulted        Outcome = "faulted"
	OutcomeBadRequest     Outcome = "bad_request"
	OutcomeUnavailable    Outcome = "unavailable"
)

// boundRoute is a route as included in an App: middleware applied and
// capabilities validated.
type boundRoute struct {
	route       *Route
	handler     HandlerFunc
	tokens      []Token
	requireAuth bool
}

// exchange is the state of one request moving through the pipeline.
type exchange struct {
	started  time.Time
	ctx      context.Context
	scope    Scope
	request  *Request
	route    *boundRoute
	response *Response
	err      error
	deps     Deps
	env      Environ
	outcome  Outcome
}

// stage is one step of the pipeline. A stage finishes the request early by
// setting x.response, or fails it by returning an error.
type stage func(a *App, x *exchange) error

// pipeline lists the stages in execution order.
var pipeline = []stage{
	(*App).buildRequest,
	(*App).matchRoute,
	(*App).matchMethod,
	(*App).authenticate,
	(*App).inject,
	(*App).handle,
}

// dispatch runs env through the pipeline, emits the response through start
// and returns the body chunks. The scope is released after emission, exactly
// once, whatever the outcome.
func (a *App) dispatch(env Environ, start StartResponse) [][]byte {
	x := &exchange{env: env, ctx: env.Context, started: time.Now()}
	if x.ctx == nil {
		x.ctx = context.Background()
	}
	defer a.observe(x)

	scope, err := a.acquire(x.ctx)
	if err != nil {
		x.outcome = OutcomeUnavailable
		x.err = err
		a.logFault(x)
		x.response = a.internalError(x)
		return a.emit(x, start)
	}
	if scope == nil {
		scope = nopScope{}
	}
	x.scope = scope
	defer a.release(x)

	for _, run := range pipeline {
		if err := a.guard(run, x); err != nil {
			a.fail(x, err)
			break
		}
		if x.response != nil {
			break
		}
	}
	return a.emit(x, start)
}

// acquire obtains the request scope, converting a panic into a PanicError.
func (a *App) acquire(ctx context.Context) (scope Scope, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return a.scopes.Acquire(ctx)
}

// emit renders the body and hands status and headers to start.
// A render failure replaces the response with a 500.
func (a *App) emit(x *exchange, start StartResponse) [][]byte {
	body, err := a.render(x)
	if err != nil {
		x.outcome = OutcomeFaulted
		x.err = err
		a.logFault(x)
		x.response = a.internalError(x)
		body, _ = x.response.render(x.ctx)
	}

	start(x.response.status, x.response.Headers())
	if len(body) == 0 {
		return nil
	}
	return [][]byte{body}
}

func (a *App) render(x *exchange) (body []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return x.response.render(x.ctx)
}

// guard runs a stage, converting a panic into a PanicError.
func (a *App) guard(run stage, x *exchange) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return run(a, x)
}

// fail translates a stage error into a response.
func (a *App) fail(x *exchange, err error) {
	x.err = err
	switch {
	case errors.Is(err, ErrAuthentication):
		x.outcome = OutcomeDenied
		x.response = Redirect(x.request, http.StatusFound, a.authRedirect)
		a.logger.InfoContext(x.ctx, "authentication required",
			slog.String("path", x.env.Path),
			slog.String("redirect", a.authRedirect),
		)
	case errors.Is(err, ErrMalformedRequest):
		x.outcome = OutcomeBadRequest
		x.response = Text(nil, http.StatusBadRequest, http.StatusText(http.StatusBadRequest))
		a.logger.InfoContext(x.ctx, "malformed request",
			slog.String("path", x.env.Path),
			slog.String("error", err.Error()),
		)
	default:
		x.outcome = OutcomeFaulted
		a.logFault(x)
		x.response = a.internalError(x)
	}
}

func (a *App) internalError(x *exchange) *Response {
	return Text(x.request, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// logFault reports x.err through the injected logger.
func (a *App) logFault(x *exchange) {
	attrs := []any{
		slog.String("path", x.env.Path),
		slog.String("method", x.env.Method),
		slog.String("outcome", string(x.outcome)),
	}
	if x.err != nil {
		attrs = append(attrs, slog.String("error", x.err.Error()))
	}
	if pe, ok := AsPanicError(x.err); ok {
		attrs = append(attrs, slog.String("stack", string(pe.Stack)))
	}
	a.faultLogger().ErrorContext(x.ctx, "request failed", attrs...)
}

// faultLogger resolves TokenLogger, falling back to the app logger when the
// provider is missing, panics or yields something else.
func (a *App) faultLogger() (l *slog.Logger) {
	l = a.logger
	fn, ok := a.injector.provider(TokenLogger)
	if !ok {
		return l
	}
	defer func() {
		if recover() != nil {
			l = a.logger
		}
	}()
	if resolved, ok := fn().(*slog.Logger); ok && resolved != nil {
		return resolved
	}
	return l
}

func (a *App) release(x *exchange) {
	if err := x.scope.Release(); err != nil {
		a.logger.WarnContext(x.ctx, "failed to release request scope",
			slog.String("path", x.env.Path),
			slog.String("error", err.Error()),
		)
	}
}

func (a *App) observe(x *exchange) {
	elapsed := time.Since(x.started)
	if a.metrics != nil {
		label := ""
		if x.route != nil {
			label = x.route.route.path
		}
		a.metrics.observe(x.outcome, label, elapsed)
	}
	status := ""
	if x.response != nil {
		status = x.response.status
	}
	a.logger.DebugContext(x.ctx, "request dispatched",
		slog.String("method", x.env.Method),
		slog.String("path", x.env.Path),
		slog.String("status", status),
		slog.String("outcome", string(x.outcome)),
		slog.Duration("duration", elapsed),
	)
}

func (a *App) buildRequest(x *exchange) error {
	req, err := a.builder.Build(x.env)
	if err != nil {
		return err
	}
	x.request = req
	return nil
}

func (a *App) matchRoute(x *exchange) error {
	br, ok := a.lookup(x.env.Path)
	if ok {
		x.route = br
		return nil
	}
	x.outcome = OutcomeUnrouted
	if a.notFound == nil {
		x.response = Text(x.request, http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return nil
	}
	return a.respond(x, a.notFound, Deps{scope: x.scope})
}

func (a *App) matchMethod(x *exchange) error {
	if x.route.route.Allows(x.env.Method) {
		return nil
	}
	x.outcome = OutcomeMethodMismatch
	if a.methodNotAllowed == nil {
		x.response = Text(x.request, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	} else if err := a.respond(x, a.methodNotAllowed, Deps{scope: x.scope}); err != nil {
		return err
	}
	x.response.AddHeader(HeaderAllow, strings.Join(x.route.route.Methods(), ", "))
	return nil
}

func (a *App) inject(x *exchange) error {
	x.deps = a.injector.resolve(x.route.tokens, x.scope)
	return nil
}

func (a *App) handle(x *exchange) error {
	x.outcome = OutcomeHandled
	return a.respond(x, x.route.handler, x.deps)
}

// respond calls h and stores its response.
func (a *App) respond(x *exchange, h HandlerFunc, deps Deps) error {
	resp, err := h(x.request, deps)
	if err != nil {
		return err
	}
	if resp == nil {
		return ErrNilResponse
	}
	x.response = resp
	return nil
}
