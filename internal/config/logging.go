package config

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// LogOutput describes where log records go and at which thresholds.
type LogOutput struct {
	// File receives JSON records at Level. Empty disables file logging.
	File  string
	Level slog.Level
	// Terminal is the minimum level written to stderr. It is never lower
	// than Level, so a quiet CLI can still keep a verbose log file.
	Terminal slog.Level
}

// Output returns the log outputs configured by c with stderr at the same
// level as the file.
func (c Config) Output() LogOutput {
	return LogOutput{File: c.LogFile, Level: c.LogLevel, Terminal: c.LogLevel}
}

// SetupLogger builds a logger that writes text to stderr and JSON to the log
// file. The returned func closes the file.
func SetupLogger(out LogOutput) (*slog.Logger, func() error) {
	terminal := textHandler(os.Stderr, max(out.Level, out.Terminal))
	if out.File == "" {
		return slog.New(terminal), func() error { return nil }
	}

	f, err := os.OpenFile(out.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger := slog.New(terminal)
		logger.Warn("log file unavailable, logging to stderr only", "file", out.File, "error", err)
		return logger, func() error { return nil }
	}
	return slog.New(slogmulti.Fanout(terminal, jsonHandler(f, out.Level))), f.Close
}

// SetupLoggerWithWriters is SetupLogger over arbitrary writers.
func SetupLoggerWithWriters(stderr, file io.Writer, out LogOutput) *slog.Logger {
	return slog.New(slogmulti.Fanout(
		textHandler(stderr, max(out.Level, out.Terminal)),
		jsonHandler(file, out.Level),
	))
}

func textHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}

func jsonHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}
