/*
Copyright © 2025 SeismicData
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	apperrors "github.com/seismicdata/asdf-validate/pkg/errors"
	"github.com/seismicdata/asdf-validate/pkg/logging"
	"github.com/seismicdata/asdf-validate/pkg/serializer"
)

const (
	name = "asdf-validate"

	versionDefault = "dev"
)

// Build-time variables set via ldflags.
var (
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Shared flags used across subcommands.
var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
		Sources: cli.EnvVars("ASDF_OUTPUT"),
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   "Output format (supported: json, yaml, table)",
		Value:   string(serializer.FormatTable),
		Sources: cli.EnvVars("ASDF_FORMAT"),
	}

	schemaDirFlag = &cli.StringFlag{
		Name:    "schema-dir",
		Usage:   "Directory with schema documents layered over the embedded set",
		Sources: cli.EnvVars("ASDF_SCHEMA_DIR"),
	}

	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Logging verbosity (debug, info, warn, error)",
		Value:   "warn",
		Sources: cli.EnvVars("LOG_LEVEL"),
	}
)

// parseOutputFormat resolves the format flag into a serializer format.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported: %v)",
			cmd.String("format"), serializer.SupportedFormats())
	}
	return f, nil
}

// exitCodeFor maps structured precheck and introspection errors to the
// command exit code. Violations are not errors and exit 1 through the
// validate action itself.
func exitCodeFor(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeFileNotFound:
		return 2
	case apperrors.ErrCodeNotContainer:
		return 3
	case apperrors.ErrCodeMissingFormat,
		apperrors.ErrCodeMissingVersion,
		apperrors.ErrCodeUnsupportedVersion:
		return 4
	case apperrors.ErrCodeIntrospection:
		return 5
	default:
		return 1
	}
}

// exitWith wraps err so the CLI terminates with the mapped exit code and a
// single line on stderr.
func exitWith(err error) error {
	return cli.Exit(fmt.Sprintf("%s: %v", name, err), exitCodeFor(err))
}

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		EnableShellCompletion: true,
		Usage:                 "Validate ASDF seismic data containers",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Description: `Validate Adaptable Seismic Data Format (ASDF) containers against the
structural schema and semantic rules for their declared format version.

Validation accumulates every violation instead of stopping at the first
one; a container is valid only when none are found.`,
		Flags: []cli.Flag{
			logLevelFlag,
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			validateCmd(),
			inspectCmd(),
			versionsCmd(),
		},
	}
}

// Execute runs the CLI and terminates the process with the appropriate
// exit code.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		// Exit-coded errors terminate inside Run; everything else is a
		// plain command failure.
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		os.Exit(1)
	}
}
