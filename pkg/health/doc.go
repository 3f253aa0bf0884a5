// Package health serves liveness and readiness probes.
//
// Checks are plain func(context.Context) error closures, so db.Healthcheck
// and redis.Healthcheck plug in directly:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "postgres": db.Healthcheck(pool),
//	    "redis":    redis.Healthcheck(client),
//	}))
//
// Responses are plain text unless the client asks for JSON with
// ?format=json or an Accept: application/json header.
package health
