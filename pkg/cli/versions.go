/*
Copyright © 2025 SeismicData
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/seismicdata/asdf-validate/pkg/schema"
)

func versionsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "versions",
		EnableShellCompletion: true,
		Usage:                 "List the registered format versions",
		Description: `List every ASDF format version a schema document is registered for,
oldest first. Containers declaring any other version are rejected as
unsupported.

# Examples

List versions from the embedded schema set:
  asdf-validate versions

Include a directory of pre-release schema documents:
  asdf-validate versions --schema-dir ./schemas`,
		Flags: []cli.Flag{
			schemaDirFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := applySchemaDir(cmd.String("schema-dir")); err != nil {
				return err
			}

			versions := schema.Versions()
			if len(versions) == 0 {
				return fmt.Errorf("no schema documents registered")
			}
			for _, v := range versions {
				fmt.Fprintln(cmd.Root().Writer, v)
			}
			return nil
		},
	}
}
