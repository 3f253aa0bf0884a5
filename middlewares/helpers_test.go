package middlewares_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bskqd/uniweb/internal"
	"github.com/bskqd/uniweb/pkg/session"
)

func newRequest(t *testing.T, ctx context.Context, path string) *internal.Request {
	t.Helper()

	req, err := internal.NewRequestBuilder(session.NewMemory()).Build(internal.Environ{
		Context: ctx,
		Path:    path,
		Method:  http.MethodGet,
	})
	require.NoError(t, err)
	return req
}

func okHandler(req *internal.Request, _ internal.Deps) (*internal.Response, error) {
	return internal.Text(req, http.StatusOK, "ok"), nil
}
