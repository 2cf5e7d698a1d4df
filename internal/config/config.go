/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads the agml command line configuration.
package config

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// FileName is the config file searched for, without extension.
	FileName = "agml"
	// EnvPrefix prefixes every environment override, e.g. AGML_BLOB_BUCKET.
	EnvPrefix = "AGML"
)

// Config is the CLI configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Blob    BlobConfig    `mapstructure:"blob"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Sources SourcesConfig `mapstructure:"sources"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// BlobConfig locates the bucket dataset archives are stored in.
type BlobConfig struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	PathStyle       bool   `mapstructure:"path_style"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// CatalogConfig locates the DynamoDB table datasets are published to.
type CatalogConfig struct {
	Table     string `mapstructure:"table"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// SourcesConfig overrides the embedded dataset sources.
type SourcesConfig struct {
	Dir string `mapstructure:"dir"`
}

var defaults = map[string]any{
	"log.level":              "warn",
	"log.format":             "text",
	"log.output":             "stderr",
	"blob.bucket":            "agdata-data",
	"blob.region":            "us-west-1",
	"blob.endpoint":          "",
	"blob.path_style":        false,
	"blob.access_key_id":     "",
	"blob.secret_access_key": "",
	"catalog.table":          "",
	"catalog.region":         "us-west-1",
	"catalog.endpoint":       "",
	"catalog.access_key":     "",
	"catalog.secret_key":     "",
	"sources.dir":            "",
}

// Load reads the configuration. An explicit path must exist; otherwise
// agml.yaml is looked up in the working directory and $HOME/.agml and may be
// absent. A .env file in the working directory is loaded first.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, proceeding with environment variables")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.agml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !stderrors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks the values that have a fixed set of choices.
func (c *Config) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("invalid log format: %s, must be 'json' or 'text'", c.Log.Format)
	}
	if c.Log.Output != "stderr" && c.Log.Output != "stdout" {
		return fmt.Errorf("invalid log output: %s, must be 'stderr' or 'stdout'", c.Log.Output)
	}
	if c.Blob.Bucket == "" {
		return fmt.Errorf("blob.bucket is required")
	}
	if (c.Blob.AccessKeyID == "") != (c.Blob.SecretAccessKey == "") {
		return fmt.Errorf("blob.access_key_id and blob.secret_access_key must be set together")
	}
	if (c.Catalog.AccessKey == "") != (c.Catalog.SecretKey == "") {
		return fmt.Errorf("catalog.access_key and catalog.secret_key must be set together")
	}
	return nil
}

// RequireCatalog reports whether the catalog table is configured.
func (c *Config) RequireCatalog() error {
	if c.Catalog.Table == "" {
		return fmt.Errorf("catalog.table is required (set it in %s.yaml or %s_CATALOG_TABLE)", FileName, EnvPrefix)
	}
	return nil
}
