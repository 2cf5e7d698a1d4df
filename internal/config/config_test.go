/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"AGML_LOG_LEVEL", "AGML_BLOB_BUCKET", "AGML_CATALOG_TABLE", "AGML_SOURCES_DIR"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Output)
	assert.Equal(t, "agdata-data", cfg.Blob.Bucket)
	assert.Equal(t, "us-west-1", cfg.Blob.Region)
	assert.False(t, cfg.Blob.PathStyle)
	assert.Error(t, cfg.RequireCatalog())
}

func TestLoadFileAndEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "agml.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
  format: json
blob:
  bucket: private-data
  endpoint: http://localhost:9000
  path_style: true
catalog:
  table: agml-catalog
sources:
  dir: /srv/agml
`), 0o644))
	t.Setenv("AGML_BLOB_BUCKET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "from-env", cfg.Blob.Bucket)
	assert.Equal(t, "http://localhost:9000", cfg.Blob.Endpoint)
	assert.True(t, cfg.Blob.PathStyle)
	assert.Equal(t, "agml-catalog", cfg.Catalog.Table)
	assert.Equal(t, "/srv/agml", cfg.Sources.Dir)
	assert.NoError(t, cfg.RequireCatalog())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv("AGML_LOG_LEVEL", "verbose")
	_, err := Load("")
	assert.ErrorContains(t, err, "invalid log level: verbose")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Log:  LogConfig{Level: "info", Format: "text", Output: "stderr"},
			Blob: BlobConfig{Bucket: "b"},
		}
	}
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"valid", func(*Config) {}, ""},
		{"format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"output", func(c *Config) { c.Log.Output = "file" }, "invalid log output"},
		{"bucket", func(c *Config) { c.Blob.Bucket = "" }, "blob.bucket is required"},
		{"blob keys", func(c *Config) { c.Blob.AccessKeyID = "AKIA" }, "must be set together"},
		{"catalog keys", func(c *Config) { c.Catalog.SecretKey = "s" }, "must be set together"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
