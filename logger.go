package tensorenc

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/tensorenc/tensor"
)

// Logger wraps slog.Logger with tensorenc-specific context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogPack logs a pack operation.
func (l *Logger) LogPack(ctx context.Context, count int, original, target uint, err error) {
	if err != nil {
		l.ErrorContext(ctx, "pack failed",
			"count", count,
			"original_bits", original,
			"target_bits", target,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "pack completed",
			"count", count,
			"original_bits", original,
			"target_bits", target,
		)
	}
}

// LogUnpack logs an unpack operation.
func (l *Logger) LogUnpack(ctx context.Context, words int, shape tensor.Shape, err error) {
	if err != nil {
		l.ErrorContext(ctx, "unpack failed",
			"words", words,
			"shape", shape.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "unpack completed",
			"words", words,
			"shape", shape.String(),
		)
	}
}

// LogTransform logs a Hadamard transform.
func (l *Logger) LogTransform(ctx context.Context, shape tensor.Shape, parallel bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "transform failed",
			"shape", shape.String(),
			"parallel", parallel,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "transform completed",
			"shape", shape.String(),
			"parallel", parallel,
		)
	}
}

// LogGenerate logs a random generation call. kind names the generator,
// e.g. "signs_cmwc".
func (l *Logger) LogGenerate(ctx context.Context, kind string, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "generate failed",
			"kind", kind,
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "generate completed",
			"kind", kind,
			"count", count,
		)
	}
}

// LogFrame logs a frame encode or decode.
func (l *Logger) LogFrame(ctx context.Context, op string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "frame "+op+" failed",
			"bytes", size,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "frame "+op+" completed",
			"bytes", size,
		)
	}
}
