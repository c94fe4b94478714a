// Package logging provides centralized logging functionality for the application.
//
// Besides the standard slog levels it defines two outcome levels, SKIP and
// OK, which sit between INFO and WARN. Sync and branch operations use them
// to report per-issue results.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug for detailed troubleshooting information.
	LevelDebug LogLevel = "debug"
	// LevelInfo for general operational information.
	LevelInfo LogLevel = "info"
	// LevelSkip for items left untouched because they already exist.
	LevelSkip LogLevel = "skip"
	// LevelOK for items that were processed successfully.
	LevelOK LogLevel = "ok"
	// LevelWarn for potentially harmful situations.
	LevelWarn LogLevel = "warn"
	// LevelError for error events that might still allow the application to continue.
	LevelError LogLevel = "error"
)

// slog has no SKIP or OK, so they are wedged in between INFO (0) and WARN (4).
const (
	slogLevelSkip = slog.Level(1)
	slogLevelOK   = slog.Level(2)
)

var (
	// defaultLogger is the default logger instance.
	defaultLogger *slog.Logger
)

// init initializes the default logger.
func init() {
	// Get log level from environment variable, default to "info"
	logLevelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = string(LevelInfo)
	}

	// Set up the logger
	SetupLogger(os.Stdout, LogLevel(logLevelStr))
}

// slogLevel maps a LogLevel to its slog threshold.
func slogLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelSkip:
		return slogLevelSkip
	case LevelOK:
		return slogLevelOK
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// renameCustomLevels rewrites the level attribute so the custom levels
// render as SKIP and OK instead of INFO+1 and INFO+2.
func renameCustomLevels(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		level, ok := a.Value.Any().(slog.Level)
		if !ok {
			return a
		}
		switch level {
		case slogLevelSkip:
			a.Value = slog.StringValue("SKIP")
		case slogLevelOK:
			a.Value = slog.StringValue("OK")
		}
	}
	return a
}

// SetupLogger configures the logger with the specified output and level.
func SetupLogger(w io.Writer, level LogLevel) {
	opts := &slog.HandlerOptions{
		Level:       slogLevel(level),
		ReplaceAttr: renameCustomLevels,
	}

	handler := slog.NewTextHandler(w, opts)
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// Debug logs a message at debug level.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs a message at info level.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Skip logs a message at skip level.
func Skip(msg string, args ...any) {
	defaultLogger.Log(context.Background(), slogLevelSkip, msg, args...)
}

// OK logs a message at ok level.
func OK(msg string, args ...any) {
	defaultLogger.Log(context.Background(), slogLevelOK, msg, args...)
}

// Warn logs a message at warn level.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs a message at error level.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// GetLogger returns the default logger.
func GetLogger() *slog.Logger {
	return defaultLogger
}

// MaskSensitive masks sensitive data for logging.
func MaskSensitive(value string) string {
	if value == "" {
		return "<not set>"
	}
	if len(value) <= 4 {
		return "<set>"
	}
	return value[:4] + "..." + strings.Repeat("*", 3)
}
