package govq

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hupe1980/govq/raster"
	"github.com/hupe1980/govq/vq"
)

// Logger wraps slog.Logger with govq-specific context.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// ParseLevel parses "debug", "info", "warn" or "error".
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("govq: invalid log level %q", s)
	}
	return level, nil
}

// NewLoggerFor builds a text or JSON logger writing to w.
func NewLoggerFor(w io.Writer, format string, level slog.Level) (*Logger, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(format) {
	case "", "text":
		return NewLogger(slog.NewTextHandler(w, opts)), nil
	case "json":
		return NewLogger(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("govq: unknown log format %q", format)
	}
}

// WithRunID tags every record with the run identifier of one Compress call.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// WithChannel adds the channel being trained.
func (l *Logger) WithChannel(ch raster.Channel) *Logger {
	return &Logger{
		Logger: l.Logger.With("channel", ch.String()),
	}
}

// LogTrain logs the outcome of training one channel.
func (l *Logger) LogTrain(ctx context.Context, stats vq.TrainStats, fingerprint uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "training failed",
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "training completed",
		"repair_passes", stats.RepairPasses,
		"repairs", stats.Repairs,
		"iterations", stats.Iterations,
		"distortion", stats.FinalDistortion(),
		"dropped", stats.Dropped,
		"fingerprint", fmt.Sprintf("%016x", fingerprint),
		"duration", stats.Duration,
	)
}

// LogShrink logs codewords dropped during a centroid update.
func (l *Logger) LogShrink(ctx context.Context, iteration, dropped int) {
	l.WarnContext(ctx, "codebook shrank during update",
		"iteration", iteration,
		"dropped", dropped,
	)
}

// LogCompress logs a complete Compress call.
func (l *Logger) LogCompress(ctx context.Context, width, height, channels int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "compress failed",
			"width", width,
			"height", height,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "compress completed",
		"width", width,
		"height", height,
		"channels", channels,
	)
}
