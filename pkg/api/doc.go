// Package api provides the HTTP API layer of the ASDF validation daemon.
//
// This package acts as a thin wrapper around the reusable pkg/server
// package, configuring it with the validation routes. It exposes the same
// pipeline the CLI runs, so a file uploaded to the daemon and a file
// validated locally produce identical reports.
//
// # Usage
//
// To start the daemon:
//
//	package main
//
//	import (
//	    "log"
//	    "github.com/seismicdata/asdf-validate/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (with rate limiting):
//   - POST /v1/validations - Validate an uploaded container and return the
//     full report. The file arrives either as a multipart upload (field
//     "file") or as the raw request body. Valid and invalid files both
//     return 200 with a report; files no verdict can be produced for
//     (not HDF5, unreadable format declaration, unsupported version)
//     return 422 with a structured error.
//   - GET /v1/versions - List the registered format versions.
//
// System endpoints (no rate limiting):
//   - GET /health  - Health check (liveness probe)
//   - GET /ready   - Readiness check
//   - GET /metrics - Prometheus metrics
//
// # Configuration
//
// The server is configured via environment variables:
//   - PORT: HTTP server port (default: 8080)
//   - RATE_LIMIT: requests per second (default: 100)
//   - LOG_LEVEL: Logging level (debug, info, warn, error)
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/seismicdata/asdf-validate/pkg/api.version=1.0.0'"
package api
