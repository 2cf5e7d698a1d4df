/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/suparena/agml/internal/term"
	"github.com/suparena/agml/metadata"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the public datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, err := app.sourceTables()
			if err != nil {
				return err
			}
			return printLines(cmd.OutOrStdout(), tables.Names())
		},
	}
}

func (a *App) dataset(name string) (*metadata.DatasetMetadata, error) {
	tables, err := a.sourceTables()
	if err != nil {
		return nil, err
	}
	return metadata.New(name, metadata.WithTables(tables))
}

func newInfoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "info NAME",
		Short:   "Show the metadata of a dataset",
		Example: "  $ agml info apple_detection_usa",
		Args:    exactName,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.dataset(args[0])
			if err != nil {
				return err
			}
			return m.Summary(cmd.OutOrStdout())
		},
	}
}

func newCitationCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "citation NAME",
		Short: "Show the license and citation of a dataset",
		Args:  exactName,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.dataset(args[0])
			if err != nil {
				return err
			}
			return m.CitationSummary(cmd.OutOrStdout())
		},
	}
}

func newClassesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "classes NAME",
		Short: "Show the class labels of a dataset",
		Args:  exactName,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.dataset(args[0])
			if err != nil {
				return err
			}
			mapping, err := m.NumToClass()
			if err != nil {
				return err
			}
			return printClasses(cmd.OutOrStdout(), mapping)
		},
	}
}

func printClasses(w io.Writer, mapping metadata.ClassMapping) error {
	switch c := mapping.(type) {
	case metadata.FlatClasses:
		return printFlat(w, c, "")
	case metadata.GroupedClasses:
		groups := make([]string, 0, len(c))
		for g := range c {
			groups = append(groups, g)
		}
		sort.Strings(groups)
		for _, g := range groups {
			if _, err := fmt.Fprintf(w, "%s:\n", term.Bold(g)); err != nil {
				return err
			}
			if err := printFlat(w, c[g], "  "); err != nil {
				return err
			}
		}
	}
	return nil
}

func printFlat(w io.Writer, classes metadata.FlatClasses, indent string) error {
	labels := make([]int, 0, len(classes))
	for l := range classes {
		labels = append(labels, l)
	}
	sort.Ints(labels)
	for _, l := range labels {
		if _, err := fmt.Fprintf(w, "%s%d: %s\n", indent, l, classes[l]); err != nil {
			return err
		}
	}
	return nil
}
