package logging

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
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "grid", slog.LevelInfo)

	log.Debug("hidden")
	log.Info("reconciled", slog.Int("added", 3))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "reconciled", rec["msg"])
	assert.Equal(t, "grid", rec["component"])
	assert.Equal(t, "lzs", rec["system"])
	assert.Equal(t, float64(3), rec["added"])
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lzs.log")
	log, closeFn, err := Open(path, "app", slog.LevelInfo)
	require.NoError(t, err)

	log.Info("hello")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestOpenEmptyPathDiscards(t *testing.T) {
	log, closeFn, err := Open("", "app", slog.LevelInfo)
	require.NoError(t, err)
	log.Info("nowhere")
	assert.NoError(t, closeFn())
}
