package slogobs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/leofalp/brain/providers/observability"
)

// LevelTrace sits below slog.LevelDebug; slog has no trace level of its own.
const LevelTrace = slog.LevelDebug - 4

// Observer implements [observability.Observer] using Go's standard library
// slog. It routes log events through a structured slog.Logger, making it
// suitable for lightweight observability without external dependencies.
type Observer struct {
	logger *slog.Logger
}

// New creates a new slog-based observer with functional options.
// If no options are provided, it uses environment variables for configuration
// (BRAIN_LOG_FORMAT: "text"|"json", BRAIN_LOG_LEVEL: "trace"|"debug"|"info"|
// "warn"|"error"), defaulting to text format at INFO level on stderr.
func New(opts ...Option) *Observer {
	cfg := applyOptions(opts...)

	var logger *slog.Logger
	if cfg.logger != nil {
		logger = cfg.logger
	} else {
		handlerOpts := &slog.HandlerOptions{Level: cfg.level}
		var handler slog.Handler
		if cfg.format == FormatJSON {
			handler = slog.NewJSONHandler(cfg.output, handlerOpts)
		} else {
			handler = slog.NewTextHandler(cfg.output, handlerOpts)
		}
		logger = slog.New(handler)
	}

	return &Observer{logger: logger}
}

// Ensure Observer implements observability.Observer
var _ observability.Observer = (*Observer)(nil)

func (o *Observer) log(ctx context.Context, level slog.Level, msg string, attrs ...observability.Attribute) {
	if !o.logger.Enabled(ctx, level) {
		return
	}
	logAttrs := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		logAttrs = append(logAttrs, slog.Any(attr.Key, attr.Value))
	}
	o.logger.LogAttrs(ctx, level, msg, logAttrs...)
}

// Trace logs at the custom trace level (below Debug).
func (o *Observer) Trace(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, LevelTrace, msg, attrs...)
}

// Debug logs at Debug level.
func (o *Observer) Debug(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelDebug, msg, attrs...)
}

// Info logs at Info level.
func (o *Observer) Info(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelInfo, msg, attrs...)
}

// Warn logs at Warn level.
func (o *Observer) Warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelWarn, msg, attrs...)
}

// Error logs at Error level.
func (o *Observer) Error(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelError, msg, attrs...)
}

// --- OPTIONS ---

// Format selects the slog handler used for output.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type config struct {
	logger *slog.Logger
	format Format
	level  slog.Level
	output io.Writer
}

// Option configures the observer returned by [New].
type Option func(*config)

// WithLogger uses an existing slog.Logger, bypassing format/level/output options.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithFormat selects the output format.
func WithFormat(format Format) Option {
	return func(c *config) { c.format = format }
}

// WithLevel sets the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(c *config) { c.level = level }
}

// WithOutput sets the destination writer (default os.Stderr).
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.output = w }
}

func applyOptions(opts ...Option) config {
	cfg := config{
		format: formatFromEnv(),
		level:  levelFromEnv(),
		output: os.Stderr,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func formatFromEnv() Format {
	if strings.EqualFold(os.Getenv("BRAIN_LOG_FORMAT"), "json") {
		return FormatJSON
	}
	return FormatText
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("BRAIN_LOG_LEVEL")) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
