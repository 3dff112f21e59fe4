// Package logging provides the application logger.
// Logs are written to a file under the data directory so CLI output
// stays clean; the MCP server must keep stdout free for the protocol.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const logsDirName = "logs"

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewFileLogger creates a logger writing to <dataDir>/logs/pm.log.
// The file is append-only and created on first use.
func NewFileLogger(dataDir string, level slog.Level) (*slog.Logger, func() error, error) {
	logsDir := filepath.Join(dataDir, logsDirName)
	if err := os.MkdirAll(logsDir, 0o750); err != nil {
		return nil, nil, fmt.Errorf("create logs directory: %w", err)
	}

	path := filepath.Join(logsDir, "pm.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // log file readable by owner and group
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, f.Close, nil
}

// NewStderrLogger creates a logger writing to stderr.
func NewStderrLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
