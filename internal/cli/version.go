/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suparena/agml"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Version output needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := agml.GetVersionInfo()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "agml %s (commit %s, built %s, %s)\n",
				v.Version, v.GitCommit, v.BuildDate, v.GoVersion)
			return err
		},
	}
}
