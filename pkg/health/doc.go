// Package health serves liveness and readiness probes.
//
// Liveness answers OK as long as the process runs. Readiness runs named
// checks concurrently and answers 503 when any of them fails:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"postgres": db.Healthcheck(pool),
//		"redis":    redis.Healthcheck(client),
//	}))
//
// Responses are plain text unless the client asks for JSON with
// "Accept: application/json" or "?format=json":
//
//	{"status":"unhealthy","checks":{"postgres":{"status":"healthy"},"redis":{"status":"unhealthy","error":"..."}}}
package health
