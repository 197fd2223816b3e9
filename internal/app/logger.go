package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/abhisek/jlptquiz/internal/config"
)

// NewLogger builds a logger from cfg, writing to stderr, and installs it
// as the slog default.
//
// Format "json" gives structured output; "text" adds source locations.
// Level is debug, info, warn or error; anything else means info.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

// NewFileLogger is NewLogger for the terminal UI, which owns the
// screen. Records go to cfg.File, or are discarded when it is empty.
func NewFileLogger(cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	path := cfg.File
	if path == "" {
		logger := newLogger(io.Discard, cfg)
		slog.SetDefault(logger)
		return logger, io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(f, cfg)
	slog.SetDefault(logger)
	return logger, f, nil
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
