// Package server provides the reusable HTTP layer of the validation
// daemon: listener lifecycle with graceful shutdown, middleware (request
// IDs, rate limiting, panic recovery, request logging, Prometheus
// metrics, API version negotiation), and the system endpoints.
//
// Application handlers are injected through Config.Handlers and mounted
// under the full middleware chain; the system endpoints (/health, /ready,
// /metrics and the default route) bypass rate limiting so probes keep
// working under load.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("asdf-validate-server"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/validations": h.HandleValidations,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Run blocks until SIGINT/SIGTERM or a listener failure, then drains
// in-flight requests for Config.ShutdownTimeout.
//
// # Configuration
//
// Defaults come from pkg/defaults and can be overridden by environment
// variables: PORT, RATE_LIMIT, SHUTDOWN_TIMEOUT_SECONDS.
package server
