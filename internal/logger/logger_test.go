/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/agml/internal/config"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("kept", "dataset", "apple_detection_usa")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "apple_detection_usa", record["dataset"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(config.LogConfig{Level: "DEBUG", Format: "text"}, &buf)
	require.NoError(t, err)
	l.Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}

func TestNewRejectsUnknownValues(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown log level: loud")
	_, err = New(config.LogConfig{Format: "xml"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "invalid log format")
	assert.Error(t, Setup(config.LogConfig{Output: "file"}))
}

func TestSetupInstallsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	require.NoError(t, Setup(config.LogConfig{Level: "error", Format: "text", Output: "stderr"}))
	assert.False(t, slog.Default().Enabled(t.Context(), slog.LevelWarn))
}
