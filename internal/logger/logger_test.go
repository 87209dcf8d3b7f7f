package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestNewSlogJSON(t *testing.T) {
	var buf bytes.Buffer
	log, closer := NewSlog(SlogConfig{Level: "warn", Format: "json", Console: &buf})
	assert.Nil(t, closer)

	log.Info("dropped")
	log.Warn("kept", "query", "cats")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "cats", entry["query"])
	assert.Contains(t, entry, "time")
}

func TestNewSlogText(t *testing.T) {
	var buf bytes.Buffer
	log, _ := NewSlog(SlogConfig{Format: "text", Console: &buf})
	log.Info("hello", "k", "v")
	assert.Contains(t, buf.String(), "msg=hello k=v")
}

func TestNewSlogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	var buf bytes.Buffer

	log, closer := NewSlog(SlogConfig{Format: "text", File: path, Console: &buf})
	require.NotNil(t, closer)
	log.Info("to both")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both")
	assert.Contains(t, buf.String(), "to both")
}
