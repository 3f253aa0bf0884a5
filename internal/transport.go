package internal

import (
	"context"
	"io"
	"net/http"
	"strings"
)

// Environ is the transport-level description of one request.
// Path, Method and QueryString are always set by the transport; the rest
// may be empty.
type Environ struct {
	Context     context.Context
	Body        io.Reader
	Path        string
	Method      string
	QueryString string
	Cookie      string
	ContentType string
}

// StartResponse receives the status and headers before any body is returned.
type StartResponse func(status string, headers []Header)

// Call dispatches env, reports status and headers through start and returns
// the body chunks.
//
// start is invoked exactly once per call. Call never panics on handler
// failures; they are answered with 500.
func (a *App) Call(env Environ, start StartResponse) [][]byte {
	return a.dispatch(env, start)
}

// EnvironFromRequest builds an Environ from a net/http request.
// Multiple Cookie headers are joined with "; ".
func EnvironFromRequest(r *http.Request) Environ {
	return Environ{
		Context:     r.Context(),
		Body:        r.Body,
		Path:        r.URL.Path,
		Method:      r.Method,
		QueryString: r.URL.RawQuery,
		Cookie:      strings.Join(r.Header.Values("Cookie"), "; "),
		ContentType: r.Header.Get("Content-Type"),
	}
}

// ServeHTTP implements http.Handler on top of Call.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code := http.StatusInternalServerError
	chunks := a.Call(EnvironFromRequest(r), func(status string, headers []Header) {
		h := w.Header()
		for _, hdr := range headers {
			h.Add(hdr.Name, hdr.Value)
		}
		code = statusCode(status)
	})
	w.WriteHeader(code)
	for _, c := range chunks {
		if _, err := w.Write(c); err != nil {
			return
		}
	}
}
