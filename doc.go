// Package uniweb is a small request-dispatch framework for server-rendered
// web applications.
//
// A request travels one explicit pipeline: the transport's Environ is parsed
// into an immutable [Request] (cookies, session, query, body), the path is
// matched exactly against the included routers, the method is checked, routes
// marked with [RequireAuth] are gated on the session identity, the
// capabilities the route declared are resolved, and the handler returns a
// [Response]. The response is rendered and emitted, then the request scope is
// released exactly once.
//
// # Quick Start
//
//	app := uniweb.New(
//	    uniweb.WithSessionBackend(session.NewFilesystem(osfs.New())),
//	    uniweb.WithDependencies(uniweb.Providers{
//	        "questions": uniweb.Value(questions),
//	    }),
//	    uniweb.WithHandlers(handlers.NewQuiz()),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Handlers
//
// Handlers implement the [Handler] interface to declare routes:
//
//	type Quiz struct{}
//
//	func (h *Quiz) Routes(r *uniweb.Router) {
//	    r.POST("/login", h.login)
//	    r.GET("/questions", h.questions, uniweb.RequireAuth(), uniweb.Inject("questions"))
//	}
//
//	func (h *Quiz) login(req *uniweb.Request, _ uniweb.Deps) (*uniweb.Response, error) {
//	    resp := uniweb.Redirect(req, http.StatusFound, "/questions")
//	    return resp, resp.SetSession(uniweb.SessionData{"username": req.Body().Get("username")})
//	}
//
// # Failures
//
// Unknown paths are answered with 404, known paths with the wrong method
// with 405 and an Allow header. [ErrAuthentication] from the gate or a
// handler redirects with 302. Unparseable input yields 400. Any other error,
// a panic, or a failure to render yields 500 with a generic body; the detail
// is logged through the logger resolved for [TokenLogger].
//
// # Transport
//
// [App.Call] is the transport entry point: it reports the status and headers
// through a [StartResponse] callback and returns the body chunks. App also
// implements http.Handler, and [App.Run] serves it behind chi with health
// endpoints, mounted handlers and graceful shutdown.
package uniweb
