/*
Copyright © 2025 SeismicData
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/seismicdata/asdf-validate/pkg/serializer"
	"github.com/seismicdata/asdf-validate/pkg/tree"
	"github.com/seismicdata/asdf-validate/pkg/validator"
)

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:                  "inspect",
		EnableShellCompletion: true,
		Usage:                 "Dump the canonical tree of an ASDF container",
		ArgsUsage:             "<file>",
		Description: `Dump the canonical tree of an ASDF container: every group and dataset
with its attributes, datatypes, and dataspaces, exactly as the
validation layers see them.

The container must pass the candidate and format prechecks, but its
declared format version is not resolved against the schema registry, so
containers of unreleased versions can be inspected while their schema
documents are being written.

# Examples

Dump the canonical tree as YAML:
  asdf-validate inspect observations.h5

Dump as JSON to a file:
  asdf-validate inspect observations.h5 --format json --output tree.json`,
		Flags: []cli.Flag{
			outputFlag,
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Usage:   "Output format (supported: json, yaml)",
				Value:   string(serializer.FormatYAML),
				Sources: cli.EnvVars("ASDF_FORMAT"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			if outFormat == serializer.FormatTable {
				return fmt.Errorf("table format is not supported for tree dumps")
			}

			filePath := cmd.Args().First()
			if filePath == "" {
				return fmt.Errorf("missing required argument: <file>")
			}

			if isRemote(filePath) {
				localPath, cleanup, err := fetchRemote(ctx, filePath)
				if err != nil {
					return fmt.Errorf("failed to download %s: %w", filePath, err)
				}
				defer cleanup()
				filePath = localPath
			}

			root, err := validator.New(validator.WithVersion(version)).Inspect(ctx, filePath)
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

			if err := ser.Serialize(ctx, tree.View(root)); err != nil {
				return fmt.Errorf("failed to serialize tree: %w", err)
			}
			return nil
		},
	}
}
