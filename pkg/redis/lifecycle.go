package redis

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
)

// Pinger is the part of a client the readiness check needs.
type Pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// pingTimeout bounds a readiness ping when ctx has no deadline.
const pingTimeout = 2 * time.Second

// Healthcheck returns a readiness check that pings client.
func Healthcheck(client Pinger) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrUnhealthy
		}
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, pingTimeout)
			defer cancel()
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrUnhealthy, err)
		}
		return nil
	}
}

// Shutdown returns a shutdown hook closing client. The hook closes at most
// once; later calls return nil.
func Shutdown(client io.Closer) func(context.Context) error {
	closed := false
	return func(context.Context) error {
		if closed {
			return nil
		}
		closed = true
		return client.Close()
	}
}
