/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suparena/agml/catalog"
	"github.com/suparena/agml/datastore"
	"github.com/suparena/agml/metadata"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Publish and read dataset metadata from the shared catalog table",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "publish [NAME...]",
			Short: "Publish the metadata of the named datasets, or of all of them",
			RunE: func(cmd *cobra.Command, args []string) error {
				ds, err := app.catalogStore(cmd)
				if err != nil {
					return err
				}
				tables, err := app.sourceTables()
				if err != nil {
					return err
				}
				n, err := catalog.Publish(cmd.Context(), ds, tables, args...)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "published %d datasets\n", n)
				return err
			},
		},
		newCatalogListCmd(app),
		&cobra.Command{
			Use:   "fetch NAME",
			Short: "Show the published metadata of a dataset",
			Args:  exactName,
			RunE: func(cmd *cobra.Command, args []string) error {
				ds, err := app.catalogStore(cmd)
				if err != nil {
					return err
				}
				tables, err := catalog.Fetch(cmd.Context(), ds, args[0])
				if err != nil {
					return err
				}
				m, err := metadata.New(args[0], metadata.WithTables(tables))
				if err != nil {
					return err
				}
				return m.Summary(cmd.OutOrStdout())
			},
		},
	)
	return cmd
}

func newCatalogListCmd(app *App) *cobra.Command {
	var (
		prefix  string
		reverse bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the published datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := app.catalogStore(cmd)
			if err != nil {
				return err
			}
			opts := []catalog.ListOption{catalog.WithPrefix(prefix)}
			if reverse {
				opts = append(opts, catalog.Descending())
			}
			names, err := catalog.List(cmd.Context(), ds, opts...)
			if err != nil {
				return err
			}
			return printLines(cmd.OutOrStdout(), names)
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "only list datasets whose name starts with this prefix")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "list in reverse order")
	return cmd
}

func (a *App) catalogStore(cmd *cobra.Command) (datastore.DataStore[catalog.Record], error) {
	if err := a.cfg.RequireCatalog(); err != nil {
		return nil, err
	}
	return a.openCatalog(cmd.Context(), a.cfg.Catalog)
}
