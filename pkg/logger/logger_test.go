package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/loadshift/pkg/config"
)

func TestNew_DefaultLogger(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "loadshift.log")
	_, err := New(cfg)
	require.NoError(t, err)
}

func TestNew_InvalidLevel(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	cfg.LogFile = ""
	cfg.LogLevel = "loud"
	_, err := New(cfg)
	require.Error(t, err)
}

func TestNew_JSONConsoleAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "out.log")
	cfg := config.LogConfig{LogFile: path, LogFormat: "json", LogLevel: "debug", MaxLogSizeMB: 1}

	var console bytes.Buffer
	log, err := newWithConsole(cfg, &console)
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())

	log.Info().Int32("pid", 42).Msg("Process detected")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(console.Bytes(), &rec))
	assert.Equal(t, "Process detected", rec["message"])
	assert.Equal(t, float64(42), rec["pid"])

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"message":"Process detected"`)
}

func TestNew_LevelFilters(t *testing.T) {
	var console bytes.Buffer
	log, err := newWithConsole(config.LogConfig{LogFormat: "text", LogLevel: "warn"}, &console)
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "shown")
}
