// Package logger provides structured file-based logging for the nudge TUI.
// Each run writes to its own file in the XDG state directory so log output
// never corrupts the terminal the TUI is drawing on.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidLogLevel is returned when an unrecognised log level is provided.
var ErrInvalidLogLevel = errors.New("invalid log level")

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// Logger wraps slog with per-session file output.
type Logger struct {
	log     *slog.Logger
	logFile *os.File
}

// New creates a new Logger. An empty level yields a no-op logger.
// Valid levels: debug, info, warn, error (case-insensitive).
func New(level string) (*Logger, error) {
	if level == "" {
		return &Logger{
			log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		}, nil
	}

	slogLevel, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	logFile, err := openSessionFile()
	if err != nil {
		return nil, err
	}

	handler := slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: slogLevel,
	})

	l := &Logger{
		log:     slog.New(handler),
		logFile: logFile,
	}

	l.Info("nudge started", "pid", os.Getpid(), "level", level, "log_path", logFile.Name())

	return l, nil
}

// Close closes the log file if open.
func (l *Logger) Close() {
	if l.logFile != nil {
		l.logFile.Close()
	}
}

// Debug logs a debug message with optional key-value pairs.
func (l *Logger) Debug(msg string, args ...any) {
	l.log.Debug(msg, args...)
}

// Info logs an info message with optional key-value pairs.
func (l *Logger) Info(msg string, args ...any) {
	l.log.Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func (l *Logger) Warn(msg string, args ...any) {
	l.log.Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs.
func (l *Logger) Error(msg string, args ...any) {
	l.log.Error(msg, args...)
}

// openSessionFile creates the log directory and opens a pid-named log file,
// clobbering any stale file left behind by a recycled pid.
func openSessionFile() (*os.File, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home directory: %w", err)
		}

		stateDir = filepath.Join(home, ".local", "state")
	}

	logDir := filepath.Join(stateDir, "nudge")
	if err := os.MkdirAll(logDir, dirPermissions); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, fmt.Sprintf("nudge-%d.log", os.Getpid()))

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermissions)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}

	return logFile, nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return -1, fmt.Errorf("%w: %s (use debug, info, warn, error)", ErrInvalidLogLevel, level)
	}
}
