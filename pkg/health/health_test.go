package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bskqd/uniweb/pkg/health"
)

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("no checks is healthy", func(t *testing.T) {
		t.Parallel()

		resp := health.Run(context.Background(), nil)
		require.Equal(t, health.StatusHealthy, resp.Status)
		require.NoError(t, resp.Err())
	})

	t.Run("one failure marks the run unhealthy", func(t *testing.T) {
		t.Parallel()

		resp := health.Run(context.Background(), health.Checks{
			"db":    func(context.Context) error { return nil },
			"redis": func(context.Context) error { return errors.New("refused") },
		})
		require.Equal(t, health.StatusUnhealthy, resp.Status)
		require.Equal(t, health.StatusHealthy, resp.Checks["db"].Status)
		require.Equal(t, "refused", resp.Checks["redis"].Error)
		require.ErrorIs(t, resp.Err(), health.ErrCheckFailed)
		require.Contains(t, resp.Err().Error(), "redis: refused")
	})

	t.Run("slow checks time out", func(t *testing.T) {
		t.Parallel()

		resp := health.Run(context.Background(), health.Checks{
			"slow": func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
		}, health.WithTimeout(10*time.Millisecond))
		require.Equal(t, health.StatusUnhealthy, resp.Status)
		require.Contains(t, resp.Checks["slow"].Error, health.ErrCheckTimeout.Error())
	})
}

func TestHandlers(t *testing.T) {
	t.Parallel()

	t.Run("liveness answers OK", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		health.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "OK", rec.Body.String())
	})

	t.Run("readiness answers 503 in JSON", func(t *testing.T) {
		t.Parallel()

		h := health.ReadinessHandler(health.Checks{
			"db": func(context.Context) error { return errors.New("down") },
		})
		req := httptest.NewRequest(http.MethodGet, "/health/ready?format=json", nil)
		rec := httptest.NewRecorder()
		h(rec, req)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body health.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, health.StatusUnhealthy, body.Status)
		require.Equal(t, "down", body.Checks["db"].Error)
	})

	t.Run("readiness honors Accept header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		req.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		health.ReadinessHandler(nil)(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	})
}
