/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/suparena/agml/synthetic"
)

func newOptionsCmd() *cobra.Command {
	var heliosFile string
	var set map[string]string

	cmd := &cobra.Command{
		Use:   "options CANOPY",
		Short: "Print the Helios generation parameters for a canopy type",
		Example: `  $ agml options VSPGrapevine
  $ agml options VSPGrapevine --set plant_spacing=2 --set grape_radius=0.01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []synthetic.Option
			if heliosFile != "" {
				c, err := synthetic.LoadConfiguration(os.DirFS(filepath.Dir(heliosFile)), filepath.Base(heliosFile))
				if err != nil {
					return err
				}
				opts = append(opts, synthetic.WithConfiguration(c))
			}
			h, err := synthetic.NewHeliosOptions(args[0], opts...)
			if err != nil {
				return err
			}
			for field, raw := range set {
				var value any
				if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
					return err
				}
				if err := h.Canopy().Set(field, value); err != nil {
					return err
				}
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(h); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVar(&heliosFile, "helios-config", "", "Helios configuration document replacing the bundled one")
	cmd.Flags().StringToStringVar(&set, "set", nil, "override a canopy parameter, value parsed as YAML")
	return cmd
}
