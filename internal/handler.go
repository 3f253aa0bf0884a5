package internal

// Handler declares routes on a router.
//
// Example:
//
//	type QuizHandler struct {
//	    questions []Question
//	}
//
//	func (h *QuizHandler) Routes(r *uniweb.Router) {
//	    r.GET("/questions", h.list, uniweb.RequireAuth(), uniweb.Inject("store"))
//	    r.POST("/login", h.login)
//	}
type Handler interface {
	Routes(r *Router)
}

// HandlerFunc is the signature for route handlers.
// It receives the immutable request and the capabilities the route declared,
// and returns the response to emit. A non-nil error is answered with 500,
// except ErrAuthentication which redirects to the login location.
type HandlerFunc func(req *Request, deps Deps) (*Response, error)

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can replace the request via Request.WithContext, short-circuit
// by returning its own response, or decorate the response of next.
//
// Example:
//
//	func Timing(next uniweb.HandlerFunc) uniweb.HandlerFunc {
//	    return func(req *uniweb.Request, deps uniweb.Deps) (*uniweb.Response, error) {
//	        start := time.Now()
//	        resp, err := next(req, deps)
//	        if resp != nil {
//	            resp.AddHeader("Server-Timing", fmt.Sprintf("app;dur=%d", time.Since(start).Milliseconds()))
//	        }
//	        return resp, err
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// chain wraps h so that the first middleware is the outermost.
func chain(h HandlerFunc, mws ...Middleware) HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
