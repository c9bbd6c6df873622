package app

import (
	"io"
	"log/slog"
)

// newLogger builds the logger owned by one App instance for the lifetime of
// a build run. levelStr and formatStr carry the validated -log-level and
// -log-format flag values; unknown levels fall back to info. The process-wide
// default logger is left untouched so embedding callers keep their own.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler)
}
