/*
Copyright © 2025 SeismicData
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/seismicdata/asdf-validate/pkg/schema"
	"github.com/seismicdata/asdf-validate/pkg/serializer"
	"github.com/seismicdata/asdf-validate/pkg/validator"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate an ASDF container against its declared format version",
		ArgsUsage:             "<file>",
		Description: `Validate an ASDF container file. The container's declared format version
selects the structural schema; the semantic rule set runs on top of it.
Every violation is accumulated and reported, never just the first one.

# Layers

Structural - the container tree is checked against the schema for the
declared format version: required groups and datasets, attribute
presence, datatype and dataspace constraints, naming patterns.

Semantic - cross-node rules that no structural schema can express:
waveform path/attribute agreement, time interval consistency, sampling
rate checks, QuakeML payload well-formedness, provenance and auxiliary
layout.

# Exit Codes

  0  container is valid
  1  violations were found (or the command itself failed)
  2  file not found or not a regular file
  3  file is not an HDF5 container
  4  missing or unusable format declaration, or unsupported version
  5  container introspection failed

# Examples

Validate a local file:
  asdf-validate validate observations.h5

Validate a remote file:
  asdf-validate validate https://data.example.org/event.h5

Write the report as JSON to a file:
  asdf-validate validate observations.h5 --format json --output report.json

Layer pre-release schema documents over the embedded set:
  asdf-validate validate observations.h5 --schema-dir ./schemas

Run the structural and semantic layers sequentially:
  asdf-validate validate observations.h5 --serial`,
		Flags: []cli.Flag{
			schemaDirFlag,
			&cli.BoolFlag{
				Name:    "serial",
				Usage:   "Run the structural and semantic layers sequentially",
				Sources: cli.EnvVars("ASDF_SERIAL"),
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			filePath := cmd.Args().First()
			if filePath == "" {
				return fmt.Errorf("missing required argument: <file>")
			}

			if err := applySchemaDir(cmd.String("schema-dir")); err != nil {
				return err
			}

			if isRemote(filePath) {
				localPath, cleanup, err := fetchRemote(ctx, filePath)
				if err != nil {
					return fmt.Errorf("failed to download %s: %w", filePath, err)
				}
				defer cleanup()
				filePath = localPath
			}

			v := validator.New(
				validator.WithVersion(version),
				validator.WithParallel(!cmd.Bool("serial")),
			)

			slog.Info("validating container", "file", filePath)

			rep, err := v.Validate(ctx, filePath)
			if err != nil {
				return exitWith(err)
			}

			output := cmd.String("output")
			ser := serializer.NewFileWriterOrStdout(outFormat, output)
			defer func() {
				if err := ser.Close(); err != nil {
					slog.Warn("failed to close serializer", "error", err)
				}
			}()

			if err := ser.Serialize(ctx, rep); err != nil {
				return fmt.Errorf("failed to serialize report: %w", err)
			}

			slog.Info("validation completed",
				"file", rep.File,
				"formatVersion", rep.FormatVersion,
				"status", rep.Summary.Status,
				"violations", rep.Summary.Total,
				"duration", rep.Summary.Duration)

			if !rep.Valid() {
				// The report already carries the violations; no extra
				// stderr line is needed.
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// applySchemaDir layers an external schema directory over the embedded
// documents. An empty dir leaves the embedded provider in place.
func applySchemaDir(dir string) error {
	if dir == "" {
		return nil
	}
	embedded := schema.NewEmbeddedDataProvider(schema.GetEmbeddedFS(), "data")
	layered, err := schema.NewLayeredDataProvider(embedded, schema.LayeredProviderConfig{
		ExternalDir: dir,
	})
	if err != nil {
		return fmt.Errorf("failed to load schema directory %q: %w", dir, err)
	}
	schema.SetDataProvider(layered)
	return nil
}

// isRemote reports whether the path names an HTTP(S) source.
func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// fetchRemote downloads a remote container into a temporary file and
// returns its path with a cleanup function.
func fetchRemote(ctx context.Context, url string) (string, func(), error) {
	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("asdf-%d.h5", time.Now().UnixNano()))

	slog.Info("downloading remote container", "url", url)
	if err := serializer.NewHttpReader().Download(ctx, url, tmp); err != nil {
		return "", nil, err
	}

	cleanup := func() {
		if err := os.Remove(tmp); err != nil {
			slog.Warn("failed to remove downloaded file", "file", tmp, "error", err)
		}
	}
	return tmp, cleanup, nil
}
