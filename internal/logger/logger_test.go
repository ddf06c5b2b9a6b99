package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", "json").With("component", "test")

	log.Debug("hidden")
	log.Info("http: starting server", "address", ":3000")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http: starting server", entry["msg"])
	assert.Equal(t, ":3000", entry["address"])
	assert.Equal(t, "test", entry["component"])
}

func TestNewWithWriter_TextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "error", "text")

	log.Warn("ignored")
	assert.Empty(t, buf.String())

	log.Error("failed", "error", "boom")
	assert.Contains(t, buf.String(), "msg=failed")
	assert.Contains(t, buf.String(), "error=boom")
}
