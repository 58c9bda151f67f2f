// Package log provides structured logging (slog) for the splash host.
package log

import (
	"context"
	"io"
	"log/slog"
)

// subsystemKey tags every record emitted through a Handler so splash
// output is separable from the host's own logs.
const subsystemKey = "subsystem"

// Handler implements slog.Handler, decorating a text handler with the
// splash subsystem attribute.
type Handler struct {
	inner slog.Handler
	opts  handlerConfig
}

// HandlerOption configures the Handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level     slog.Level
	addSource bool
	subsystem string
}

// defaultHandlerConfig returns the default configuration.
func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level:     slog.LevelInfo,
		subsystem: "splash",
	}
}

// WithLevel sets the minimum log level to report.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file/line).
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// WithSubsystem overrides the subsystem attribute value.
func WithSubsystem(name string) HandlerOption {
	return func(c *handlerConfig) {
		c.subsystem = name
	}
}

// NewHandler creates a Handler writing to w with the given options.
func NewHandler(w io.Writer, opts ...HandlerOption) *Handler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	inner := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     cfg.level,
		AddSource: cfg.addSource,
	})
	return &Handler{
		inner: inner.WithAttrs([]slog.Attr{slog.String(subsystemKey, cfg.subsystem)}),
		opts:  cfg,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle forwards the record to the underlying text handler.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

// WithAttrs returns a new Handler that includes the given attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{inner: h.inner.WithAttrs(attrs), opts: h.opts}
}

// WithGroup returns a new Handler with the given group name.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{inner: h.inner.WithGroup(name), opts: h.opts}
}
