/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/suparena/agml/transfer"
)

// progressPrinter redraws a single status line on w.
func progressPrinter(w io.Writer, verb, name string) transfer.ProgressFunc {
	return func(transferred, total int64) {
		pct := 100.0
		if total > 0 {
			pct = float64(transferred) / float64(total) * 100
		}
		fmt.Fprintf(w, "\r%s %s: %d/%d bytes (%.0f%%)", verb, name, transferred, total, pct)
		if transferred >= total {
			fmt.Fprintln(w)
		}
	}
}

func (a *App) transferAPI(cmd *cobra.Command) (*transfer.API, error) {
	store, err := a.openBlob(cmd.Context(), a.cfg.Blob)
	if err != nil {
		return nil, err
	}
	tables, err := a.sourceTables()
	if err != nil {
		return nil, err
	}
	metrics := transfer.NewMetrics(a.metrics)
	return transfer.New(store, transfer.WithMetrics(metrics), transfer.WithTables(tables)), nil
}

func newDownloadCmd(app *App) *cobra.Command {
	var dest string
	var quiet bool
	cmd := &cobra.Command{
		Use:     "download NAME",
		Short:   "Download and extract a dataset archive",
		Example: "  $ agml download apple_detection_usa --dest ./data",
		Args:    exactName,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := app.transferAPI(cmd)
			if err != nil {
				return err
			}
			var progress transfer.ProgressFunc
			if !quiet {
				progress = progressPrinter(cmd.ErrOrStderr(), "Downloading", args[0])
			}
			path, err := api.Download(cmd.Context(), args[0], dest, progress)
			if metricsErr := app.writeMetrics(); err == nil {
				err = metricsErr
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
	cmd.Flags().StringVarP(&dest, "dest", "d", ".", "directory the dataset is extracted into")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not report progress")
	return cmd
}

func newUploadCmd(app *App) *cobra.Command {
	var dir string
	var quiet bool
	cmd := &cobra.Command{
		Use:     "upload NAME",
		Short:   "Upload the archive <dir>/<NAME>.zip",
		Example: "  $ agml upload apple_detection_usa --dir ./archives",
		Args:    exactName,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := app.transferAPI(cmd)
			if err != nil {
				return err
			}
			var progress transfer.ProgressFunc
			if !quiet {
				progress = progressPrinter(cmd.ErrOrStderr(), "Uploading", args[0])
			}
			info, err := api.Upload(cmd.Context(), args[0], dir, progress)
			if metricsErr := app.writeMetrics(); err == nil {
				err = metricsErr
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", info.Key, info.Size)
			return err
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "directory holding the archive")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not report progress")
	return cmd
}
