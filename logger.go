package reqindex

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/reqindex/model"
)

// Logger wraps slog.Logger with reqindex-specific context.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs to stderr.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithGeneration adds the index generation to the logger.
func (l *Logger) WithGeneration(generation uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("generation", generation),
	}
}

// WithComponent adds a component field to the logger.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", name),
	}
}

// LogRebuild logs the outcome of a rebuild.
func (l *Logger) LogRebuild(ctx context.Context, generation uint64, records, edges int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "rebuild failed",
			"generation", generation,
			"duration", duration,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "rebuild completed",
			"generation", generation,
			"records", records,
			"edges", edges,
			"duration", duration,
		)
	}
}

// LogLookup logs an identifier lookup.
func (l *Logger) LogLookup(ctx context.Context, id model.ID, found bool) {
	l.DebugContext(ctx, "lookup",
		"id", id,
		"found", found,
	)
}

// LogQuery logs a query over the index.
func (l *Logger) LogQuery(ctx context.Context, op string, results int) {
	l.DebugContext(ctx, "query completed",
		"op", op,
		"results", results,
	)
}

// LogDuplicates warns about records that share an identifier with an earlier
// record in the same snapshot.
func (l *Logger) LogDuplicates(ctx context.Context, generation uint64, duplicates int) {
	if duplicates == 0 {
		return
	}
	l.WarnContext(ctx, "snapshot contains duplicate identifiers",
		"generation", generation,
		"duplicates", duplicates,
	)
}
