// Package logging sets up the two log streams the server writes: regular
// application logs on stdout and the security audit trail in a rotating file.
package logging

import (
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger returns the application logger. Debug deployments get text at
// debug level; everything else gets JSON at info.
func NewLogger(debug bool) *slog.Logger {
	if debug {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// NewAuditLogger returns the security-event logger, writing JSON lines to a
// size-rotated file. An empty path falls back to stderr so events are never
// dropped silently.
func NewAuditLogger(path string) *slog.Logger {
	if path == "" {
		return slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     90, // days
		Compress:   true,
	}
	return slog.New(slog.NewJSONHandler(sink, nil))
}

// RedactToken shortens a session or CAPTCHA token for logging. Only the first
// eight characters ever reach a log line.
func RedactToken(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8] + "..."
}
