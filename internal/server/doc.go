// Package server runs the relay's HTTP listener.
//
// CreateMux assembles the routes:
//
//	GET /auth             start a flow for an app
//	GET <callback path>   provider redirect target (default /google/callback)
//	GET /refresh          fresh access token for an app
//	GET /health           liveness probe
//	GET /metrics          Prometheus metrics
//
// and wraps them in the middleware chain: request ID, access log with
// per-route counters, panic recovery.
//
// Server.Run binds the listener, tells systemd the service is ready (a no-op
// outside systemd) and serves until the context is cancelled, then shuts
// down gracefully.
//
// Query strings are never logged, since the callback's carries the
// authorization code.
package server
