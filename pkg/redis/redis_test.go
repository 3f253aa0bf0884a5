package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestConfig_Options(t *testing.T) {
	t.Parallel()

	t.Run("empty URL", func(t *testing.T) {
		t.Parallel()

		_, err := Config{}.Options()
		require.ErrorIs(t, err, ErrEmptyConnectionURL)
	})

	t.Run("rejected URLs", func(t *testing.T) {
		t.Parallel()

		testCases := []struct {
			name string
			url  string
		}{
			{name: "http scheme", url: "http://localhost:6379"},
			{name: "no scheme", url: "localhost:6379"},
			{name: "invalid port", url: "redis://localhost:notaport"},
			{name: "invalid database", url: "redis://localhost:6379/notanumber"},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				_, err := Config{URL: tc.url}.Options()
				require.ErrorIs(t, err, ErrFailedToParseURL)
			})
		}
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()

		opts, err := Config{URL: "redis://localhost:6379/2"}.Options()
		require.NoError(t, err)
		require.Equal(t, 2, opts.DB)
		require.Equal(t, defaultPoolSize, opts.PoolSize)
		require.Equal(t, defaultDialTimeout, opts.DialTimeout)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		t.Parallel()

		opts, err := Config{URL: "rediss://localhost:6380", PoolSize: 42, ReadTimeout: time.Second}.Options()
		require.NoError(t, err)
		require.Equal(t, 42, opts.PoolSize)
		require.Equal(t, time.Second, opts.ReadTimeout)
		require.NotNil(t, opts.TLSConfig)
	})
}

func TestOpen_InvalidConfig(t *testing.T) {
	t.Parallel()

	client, err := Open(context.Background(), Config{URL: "http://localhost"})
	require.Nil(t, client)
	require.ErrorIs(t, err, ErrFailedToParseURL)
}

func TestOpen_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client, err := Open(ctx, Config{
		URL:             "redis://127.0.0.1:1/0",
		ConnectAttempts: 2,
		ConnectBackoff:  time.Millisecond,
		DialTimeout:     50 * time.Millisecond,
	})
	require.Nil(t, client)
	require.ErrorIs(t, err, ErrConnectionFailed)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "ping")
	if err := f(ctx); err != nil {
		cmd.SetErr(err)
	} else {
		cmd.SetVal("PONG")
	}
	return cmd
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	t.Run("nil client", func(t *testing.T) {
		t.Parallel()
		require.ErrorIs(t, Healthcheck(nil)(context.Background()), ErrUnhealthy)
	})

	t.Run("ping ok with a bounded context", func(t *testing.T) {
		t.Parallel()
		err := Healthcheck(pingFunc(func(ctx context.Context) error {
			_, ok := ctx.Deadline()
			require.True(t, ok)
			return nil
		}))(context.Background())
		require.NoError(t, err)
	})

	t.Run("ping failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		err := Healthcheck(pingFunc(func(context.Context) error { return boom }))(context.Background())
		require.ErrorIs(t, err, ErrUnhealthy)
		require.ErrorIs(t, err, boom)
	})
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestShutdown(t *testing.T) {
	t.Parallel()

	t.Run("closes the client", func(t *testing.T) {
		t.Parallel()

		calls := 0
		hook := Shutdown(closerFunc(func() error { calls++; return nil }))
		require.NoError(t, hook(context.Background()))
		require.NoError(t, hook(context.Background()))
		require.Equal(t, 1, calls)
	})

	t.Run("propagates close errors", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		err := Shutdown(closerFunc(func() error { return boom }))(context.Background())
		require.ErrorIs(t, err, boom)
	})
}
