// Package server serves the search page over HTTP.
//
// Routes:
//
//	GET /          search page; ?q= submits a query
//	GET /essays    essay catalogue; ?limit= and ?offset= paginate
//	GET /health    liveness probe
//	GET /metrics   Prometheus metrics, when a gatherer is configured
//
// Every request gets a fresh page, so concurrent requests share no page state.
package server
