/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package cli implements the agml command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/suparena/agml/blob"
	"github.com/suparena/agml/blob/s3"
	"github.com/suparena/agml/catalog"
	"github.com/suparena/agml/datastore"
	"github.com/suparena/agml/datastore/ddb"
	"github.com/suparena/agml/internal/config"
	"github.com/suparena/agml/internal/logger"
	"github.com/suparena/agml/internal/term"
	"github.com/suparena/agml/sources"
)

// BlobFactory opens the archive store.
type BlobFactory func(ctx context.Context, cfg config.BlobConfig) (blob.Store, error)

// CatalogFactory opens the catalog datastore.
type CatalogFactory func(ctx context.Context, cfg config.CatalogConfig) (datastore.DataStore[catalog.Record], error)

// App carries the state shared by every command.
type App struct {
	cfg     *config.Config
	tables  *sources.Tables
	metrics *prometheus.Registry

	configPath  string
	noColor     bool
	metricsFile string

	openBlob    BlobFactory
	openCatalog CatalogFactory
}

// AppOption customizes an App.
type AppOption func(*App)

// WithBlobFactory replaces the S3 archive store.
func WithBlobFactory(f BlobFactory) AppOption {
	return func(a *App) { a.openBlob = f }
}

// WithCatalogFactory replaces the DynamoDB catalog store.
func WithCatalogFactory(f CatalogFactory) AppOption {
	return func(a *App) { a.openCatalog = f }
}

// NewRootCommand builds the agml command tree.
func NewRootCommand(opts ...AppOption) *cobra.Command {
	app := &App{
		metrics:     prometheus.NewRegistry(),
		openBlob:    openS3,
		openCatalog: openDynamoDB,
	}
	for _, opt := range opts {
		opt(app)
	}

	root := &cobra.Command{
		Use:   "agml",
		Short: "Agricultural machine learning datasets",
		Long: `Browse the metadata of the public agricultural datasets, inspect
synthetic data generation parameters and move dataset archives to and from
blob storage.`,
		Example: `  # List every public dataset
  $ agml list

  # Show the metadata of a dataset
  $ agml info apple_flower_segmentation

  # Download a dataset into ./data
  $ agml download apple_flower_segmentation --dest ./data`,
		SilenceUsage:      true,
		PersistentPreRunE: app.setup,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVarP(&app.configPath, "config", "c", "", "path to config file (default ./agml.yaml or $HOME/.agml/agml.yaml)")
	root.PersistentFlags().BoolVar(&app.noColor, "no-color", false, "disable bold terminal output")
	root.PersistentFlags().StringVar(&app.metricsFile, "metrics-file", "", "write transfer metrics in Prometheus text format to this file")

	root.AddCommand(
		newVersionCmd(),
		newListCmd(app),
		newInfoCmd(app),
		newCitationCmd(app),
		newClassesCmd(app),
		newOptionsCmd(),
		newDownloadCmd(app),
		newUploadCmd(app),
		newCatalogCmd(app),
	)
	return root
}

func (a *App) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := logger.Setup(cfg.Log); err != nil {
		return err
	}
	term.SetStyling(!a.noColor)
	a.cfg = cfg
	return nil
}

// sourceTables returns the dataset sources, honoring sources.dir.
func (a *App) sourceTables() (*sources.Tables, error) {
	if a.tables != nil {
		return a.tables, nil
	}
	if a.cfg != nil && a.cfg.Sources.Dir != "" {
		t, err := sources.Load(os.DirFS(a.cfg.Sources.Dir), sources.PublicSourcesFile, sources.CitationSourcesFile)
		if err != nil {
			return nil, err
		}
		a.tables = t
		return t, nil
	}
	t, err := sources.Default()
	if err != nil {
		return nil, err
	}
	a.tables = t
	return t, nil
}

func (a *App) writeMetrics() error {
	if a.metricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.metricsFile, a.metrics); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

func openS3(ctx context.Context, cfg config.BlobConfig) (blob.Store, error) {
	return s3.New(ctx, s3.Config{
		Region:          cfg.Region,
		Bucket:          cfg.Bucket,
		Endpoint:        cfg.Endpoint,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		PathStyle:       cfg.PathStyle,
	})
}

func openDynamoDB(ctx context.Context, cfg config.CatalogConfig) (datastore.DataStore[catalog.Record], error) {
	return ddb.NewDynamodbDataStore[catalog.Record](ctx, ddb.Config{
		Region:    cfg.Region,
		Table:     cfg.Table,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Endpoint:  cfg.Endpoint,
	})
}

func exactName(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%s requires exactly one dataset name", cmd.CommandPath())
	}
	return nil
}

func printLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
