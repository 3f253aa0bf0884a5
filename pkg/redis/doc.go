// Package redis opens go-redis clients for the remote session backend.
//
// A [Config] is usually decoded from the application config file. [Open]
// validates the URL, applies pool and timeout defaults and pings the server,
// retrying with backoff while it starts up:
//
//	client, err := redis.Open(ctx, redis.Config{URL: "redis://localhost:6379/0"})
//	if err != nil {
//		return err
//	}
//	backend := session.NewRedis(client)
//
// [Healthcheck] plugs into readiness probes and [Shutdown] into the server's
// shutdown hooks.
package redis
