package internal_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bskqd/uniweb/internal"
	"github.com/bskqd/uniweb/pkg/session"
)

// result captures what the transport receives from App.Call.
type result struct {
	status  string
	headers []internal.Header
	body    string
	starts  int
}

func (r result) header(name string) []string {
	var out []string
	for _, h := range r.headers {
		if strings.EqualFold(h.Name, name) {
			out = append(out, h.Value)
		}
	}
	return out
}

func call(t *testing.T, app *internal.App, env internal.Environ) result {
	t.Helper()

	var res result
	chunks := app.Call(env, func(status string, headers []internal.Header) {
		res.starts++
		res.status = status
		res.headers = headers
	})
	for _, c := range chunks {
		res.body += string(c)
	}
	require.Equal(t, 1, res.starts, "start must be called exactly once")
	return res
}

func get(path string) internal.Environ {
	return internal.Environ{Path: path, Method: http.MethodGet}
}

func postForm(path, body string) internal.Environ {
	return internal.Environ{
		Path:        path,
		Method:      http.MethodPost,
		ContentType: internal.ContentTypeForm,
		Body:        strings.NewReader(body),
	}
}

func withCookie(env internal.Environ, cookie string) internal.Environ {
	env.Cookie = cookie
	return env
}

func build(t *testing.T, backend session.Backend, env internal.Environ) *internal.Request {
	t.Helper()
	req, err := internal.NewRequestBuilder(backend).Build(env)
	require.NoError(t, err)
	return req
}

// countingScope records how often it is released.
type countingScope struct {
	mu       sync.Mutex
	releases int
}

func (s *countingScope) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releases++
	return nil
}

func (s *countingScope) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.releases
}

// scopeRecorder hands out countingScopes and remembers them.
type scopeRecorder struct {
	mu     sync.Mutex
	scopes []*countingScope
}

func (r *scopeRecorder) Acquire(context.Context) (internal.Scope, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &countingScope{}
	r.scopes = append(r.scopes, s)
	return s, nil
}

func (r *scopeRecorder) only(t *testing.T) *countingScope {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.Len(t, r.scopes, 1)
	return r.scopes[0]
}

type errReader struct{ err error }

func (e errReader) Read([]byte) (int, error) { return 0, e.err }

var _ io.Reader = errReader{}
