package internal

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/bskqd/uniweb/pkg/session"
)

// Header names with special handling.
const (
	HeaderContentType = "Content-Type"
	HeaderSetCookie   = "Set-Cookie"
	HeaderLocation    = "Location"
	HeaderAllow       = "Allow"
)

// Header is one response header line. Order is preserved on emission.
type Header struct {
	Name  string
	Value string
}

// Response is a status, an ordered header list and a body producer.
// Content-Type is always the first header and appears exactly once.
type Response struct {
	request *Request
	body    templ.Component
	now     func() time.Time
	status  string
	headers []Header
}

// NewResponse creates a response for req.
// status is forwarded verbatim, e.g. "200 OK". body may be nil.
func NewResponse(req *Request, status, contentType string, body templ.Component) *Response {
	return &Response{
		request: req,
		status:  status,
		body:    body,
		headers: []Header{{Name: HeaderContentType, Value: contentType}},
		now:     time.Now,
	}
}

// StatusLine formats code with its reason phrase, e.g. "404 Not Found".
func StatusLine(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return strconv.Itoa(code)
	}
	return strconv.Itoa(code) + " " + text
}

// Text creates an HTML response whose body is s written as is.
func Text(req *Request, code int, s string) *Response {
	return NewResponse(req, StatusLine(code), ContentTypeHTML, rawString(s))
}

// HTML creates an HTML response rendering c.
func HTML(req *Request, code int, c templ.Component) *Response {
	return NewResponse(req, StatusLine(code), ContentTypeHTML, c)
}

// Redirect creates an empty-bodied response pointing at location.
func Redirect(req *Request, code int, location string) *Response {
	resp := NewResponse(req, StatusLine(code), ContentTypeHTML, nil)
	resp.headers = append(resp.headers, Header{Name: HeaderLocation, Value: location})
	return resp
}

// Status returns the status string.
func (r *Response) Status() string {
	return r.status
}

// StatusCode parses the leading digits of the status.
// Returns 500 when the status does not start with a number.
func (r *Response) StatusCode() int {
	return statusCode(r.status)
}

// ContentType returns the value of the Content-Type header.
func (r *Response) ContentType() string {
	return r.headers[0].Value
}

// Headers returns a copy of the headers in emission order.
func (r *Response) Headers() []Header {
	return slices.Clone(r.headers)
}

// Header returns the first value of the named header, matched case-insensitively.
func (r *Response) Header(name string) (string, bool) {
	for _, h := range r.headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

// Body returns the body producer; nil means an empty body.
func (r *Response) Body() templ.Component {
	return r.body
}

// Request returns the request the response answers, if any.
func (r *Response) Request() *Request {
	return r.request
}

// AddHeader appends a header.
// Content-Type and Set-Cookie are ignored; use the constructors and
// SetCookie for those.
func (r *Response) AddHeader(name, value string) {
	if strings.EqualFold(name, HeaderContentType) || strings.EqualFold(name, HeaderSetCookie) {
		return
	}
	r.headers = append(r.headers, Header{Name: name, Value: value})
}

// SetCookie appends a Set-Cookie header.
// A non-positive maxAge uses DefaultCookieMaxAge. The session cookie is
// reserved and rejected with ErrReservedCookie.
func (r *Response) SetCookie(name, value string, maxAge time.Duration) error {
	if strings.EqualFold(name, SessionCookie) {
		return ErrReservedCookie
	}
	r.setCookie(name, value, maxAge)
	return nil
}

func (r *Response) setCookie(name, value string, maxAge time.Duration) {
	if maxAge <= 0 {
		maxAge = DefaultCookieMaxAge
	}
	r.headers = append(r.headers, Header{
		Name:  HeaderSetCookie,
		Value: formatCookie(name, value, maxAge, r.now()),
	})
}

// SetSession writes data for the request's session.
// When the request carried no usable session id (absent, or not
// session.ValidID) a fresh one is minted and the session cookie is set;
// otherwise the existing id is reused and no cookie is emitted.
func (r *Response) SetSession(data session.Data) error {
	if r.request == nil {
		return ErrDetachedResponse
	}
	if id := r.request.SessionID(); session.ValidID(id) {
		return r.writeSession(id, data, false)
	}
	return r.writeSession(r.request.Backend().NewID(), data, true)
}

// SetSessionID writes data under id and sets the session cookie to id.
// An empty id behaves like SetSession.
func (r *Response) SetSessionID(id string, data session.Data) error {
	if r.request == nil {
		return ErrDetachedResponse
	}
	if id == "" {
		return r.SetSession(data)
	}
	return r.writeSession(id, data, true)
}

func (r *Response) writeSession(id string, data session.Data, issueCookie bool) error {
	if err := r.request.Backend().Save(r.request.Context(), id, data); err != nil {
		return err
	}
	if issueCookie {
		r.setCookie(SessionCookie, id, DefaultCookieMaxAge)
	}
	return nil
}

// render produces the body bytes.
func (r *Response) render(ctx context.Context) ([]byte, error) {
	if r.body == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := r.body.Render(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rawString writes s without escaping.
func rawString(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

// statusCode parses the leading digits of a status string.
func statusCode(status string) int {
	end := 0
	for end < len(status) && status[end] >= '0' && status[end] <= '9' {
		end++
	}
	code, err := strconv.Atoi(status[:end])
	if err != nil || code < 100 || code > 999 {
		return http.StatusInternalServerError
	}
	return code
}
