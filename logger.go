package seedforge

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with seedforge-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRunID adds a run_id field to the logger.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// WithBatch adds a batch field to the logger.
func (l *Logger) WithBatch(batch int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("batch", batch),
	}
}

// LogStart logs the start of a search run.
func (l *Logger) LogStart(ctx context.Context, workers int, totalBatches int64) {
	l.InfoContext(ctx, "search started",
		"workers", workers,
		"total_batches", totalBatches,
	)
}

// LogMatch logs a verified match.
func (l *Logger) LogMatch(ctx context.Context, seed string, score int) {
	l.InfoContext(ctx, "match found",
		"seed", seed,
		"score", score,
	)
}

// LogCheckpoint logs a checkpoint write.
func (l *Logger) LogCheckpoint(ctx context.Context, completed, total int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "checkpoint write failed",
			"completed", completed,
			"total", total,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "checkpoint written",
			"completed", completed,
			"total", total,
		)
	}
}

// LogResume logs a resume from checkpoint.
func (l *Logger) LogResume(ctx context.Context, completed, total int64) {
	l.InfoContext(ctx, "resuming from checkpoint",
		"completed", completed,
		"total", total,
	)
}

// LogFinish logs the end of a search run.
func (l *Logger) LogFinish(ctx context.Context, matches int, completed int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"matches", matches,
			"completed", completed,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "search finished",
			"matches", matches,
			"completed", completed,
		)
	}
}
