package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/jlptquiz/internal/config"
)

func TestNewLogger_SetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := NewLogger(config.LogConfig{Level: "info", Format: "json"})
	assert.Equal(t, logger.Handler(), slog.Default().Handler())
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{" Warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level_"+tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, config.LogConfig{Level: tt.level, Format: "text"})

			logger.Log(context.Background(), tt.want, "should appear")
			assert.NotZero(t, buf.Len(), "expected output at %v", tt.want)

			buf.Reset()
			logger.Log(context.Background(), tt.want-1, "should be suppressed")
			assert.Zero(t, buf.Len(), "level %v should suppress %v", tt.want, tt.want-1)
		})
	}
}

func TestNewLogger_Formats(t *testing.T) {
	var textBuf, jsonBuf bytes.Buffer

	newLogger(&textBuf, config.LogConfig{Level: "info", Format: "text"}).Info("hello")
	newLogger(&jsonBuf, config.LogConfig{Level: "info", Format: "JSON"}).Info("hello", "mode", "kanji")

	assert.Contains(t, textBuf.String(), "source=")

	var m map[string]any
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &m))
	assert.Equal(t, "kanji", m["mode"])
	assert.NotContains(t, m, "source")
}

func TestNewFileLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "jlptquiz.log")
	logger, closer, err := NewFileLogger(config.LogConfig{Level: "info", Format: "json", File: path})
	require.NoError(t, err)
	logger.Info("ui started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"msg":"ui started"`))

	logger, closer, err = NewFileLogger(config.LogConfig{})
	require.NoError(t, err)
	logger.Info("dropped")
	assert.NoError(t, closer.Close())

	_, _, err = NewFileLogger(config.LogConfig{File: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.Error(t, err)
}
