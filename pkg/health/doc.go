// Package health provides HTTP handlers for liveness and readiness probes.
//
// [LivenessHandler] always answers OK while the process runs.
// [ReadinessHandler] runs a set of named [Checks] in parallel and answers 503
// when any of them fails:
//
//	r.Get("/health/live", health.LivenessHandler())
//	w, _ := diaglog.New("email_errors.log")
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "dispatch_log": diaglog.Healthcheck(w),
//	}))
//
// Both answer JSON. Readiness includes one entry per check, so an operator can
// see which dependency is failing without reading logs.
package health
