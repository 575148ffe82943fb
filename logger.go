package pointmerge

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with pointmerge-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithRun adds a run identifier to the logger (useful for correlating the
// records of one merge).
func (l *Logger) WithRun(run string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run", run),
	}
}

// LogMerge logs a merge run.
func (l *Logger) LogMerge(ctx context.Context, sources int, newPoints int64, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "merge failed",
			"sources", sources,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "merge completed",
			"sources", sources,
			"points", newPoints,
			"duration", duration,
		)
	}
}

// LogValidate logs a post-merge validation.
func (l *Logger) LogValidate(ctx context.Context, points int64, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "validation failed",
			"points", points,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "validation passed",
			"points", points,
			"duration", duration,
		)
	}
}
