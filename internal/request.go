package internal

import (
	"context"
	"errors"
	"maps"

	"github.com/bskqd/uniweb/pkg/session"
)

// Request is the immutable view of one incoming request.
// Accessors return copies; a handler cannot change what another stage sees.
type Request struct {
	ctx       context.Context
	backend   session.Backend
	cookies   map[string]string
	session   session.Data
	query     Values
	body      Values
	path      string
	method    string
	sessionID string
}

// Context returns the request context.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// WithContext returns a shallow copy of r with ctx.
// Middleware uses it to attach request-scoped values.
func (r *Request) WithContext(ctx context.Context) *Request {
	if ctx == nil {
		panic("uniweb: nil context")
	}
	r2 := *r
	r2.ctx = ctx
	return &r2
}

// Path returns the request path.
func (r *Request) Path() string {
	return r.path
}

// Method returns the request method as sent by the client.
func (r *Request) Method() string {
	return r.method
}

// Cookies returns every cookie sent with the request.
func (r *Request) Cookies() map[string]string {
	return maps.Clone(r.cookies)
}

// Cookie returns the named cookie.
func (r *Request) Cookie(name string) (string, bool) {
	v, ok := r.cookies[name]
	return v, ok
}

// SessionID returns the value of the session cookie, or "".
func (r *Request) SessionID() string {
	return r.sessionID
}

// Session returns a copy of the session data loaded for the request.
func (r *Request) Session() session.Data {
	return r.session.Clone()
}

// Query returns the parsed query string. Blank values are dropped.
func (r *Request) Query() Values {
	return r.query.clone()
}

// Body returns the parsed body. Blank values are kept.
func (r *Request) Body() Values {
	return r.body.clone()
}

// Backend returns the session backend the request was built with.
func (r *Request) Backend() session.Backend {
	return r.backend
}

// RequestBuilder turns a transport Environ into a Request.
// It holds no per-request state and is safe for concurrent use once configured.
type RequestBuilder struct {
	backend  session.Backend
	parsers  map[string]BodyParser
	fallback BodyParser
	maxBody  int64
}

// NewRequestBuilder creates a builder loading sessions from backend.
// The form parser is registered for its media type and also serves bodies
// whose content type is absent or has no registered parser.
func NewRequestBuilder(backend session.Backend) *RequestBuilder {
	if backend == nil {
		backend = session.NewMemory()
	}
	return &RequestBuilder{
		backend:  backend,
		parsers:  map[string]BodyParser{ContentTypeForm: FormParser()},
		fallback: FormParser(),
		maxBody:  DefaultMaxBodySize,
	}
}

// RegisterParser sets the parser for a media type. Parameters such as
// charset are ignored when matching.
func (b *RequestBuilder) RegisterParser(contentType string, p BodyParser) {
	if p == nil {
		delete(b.parsers, mediaType(contentType))
		return
	}
	b.parsers[mediaType(contentType)] = p
}

// SetMaxBodySize sets the body read limit. Non-positive values are ignored.
func (b *RequestBuilder) SetMaxBodySize(n int64) {
	if n > 0 {
		b.maxBody = n
	}
}

// Build parses env into a Request.
//
// Parse failures return an error wrapping ErrMalformedRequest. Session
// backend failures are returned as is.
func (b *RequestBuilder) Build(env Environ) (*Request, error) {
	ctx := env.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cookies, err := parseCookies(env.Cookie)
	if err != nil {
		return nil, err
	}

	sessionID := cookies[SessionCookie]
	data, err := b.backend.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = session.Data{}
	}

	query, err := parseValues(env.QueryString, false)
	if err != nil {
		return nil, err
	}

	body, err := b.parseBody(env)
	if err != nil {
		return nil, err
	}

	return &Request{
		ctx:       ctx,
		backend:   b.backend,
		cookies:   cookies,
		session:   data,
		query:     query,
		body:      body,
		path:      env.Path,
		method:    env.Method,
		sessionID: sessionID,
	}, nil
}

func (b *RequestBuilder) parseBody(env Environ) (Values, error) {
	if env.Body == nil {
		return Values{}, nil
	}
	parser, ok := b.parsers[mediaType(env.ContentType)]
	if !ok {
		parser = b.fallback
	}
	values, err := parser.Parse(&limitedBody{r: env.Body, limit: b.maxBody})
	if err != nil {
		if errors.Is(err, ErrMalformedRequest) {
			return nil, err
		}
		return nil, errors.Join(ErrMalformedRequest, err)
	}
	if values == nil {
		values = Values{}
	}
	return values, nil
}
