package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/seismicdata/asdf-validate/pkg/logging"
	"github.com/seismicdata/asdf-validate/pkg/server"
	"github.com/seismicdata/asdf-validate/pkg/validator"
)

const (
	name           = "asdf-validate-server"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/seismicdata/asdf-validate/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// routes wires the validation pipeline into the daemon's route table.
// One validator serves every request; runs are independent.
func routes() map[string]http.HandlerFunc {
	h := validator.NewHandler(validator.New(validator.WithVersion(version)))

	return map[string]http.HandlerFunc{
		"/v1/validations": h.HandleValidations,
		"/v1/versions":    h.HandleVersions,
	}
}

// Serve starts the validation daemon and blocks until shutdown.
// It configures logging, wires the validation pipeline into the HTTP
// routes, and handles graceful shutdown.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(routes()),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
