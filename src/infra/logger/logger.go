// Package logger builds the application's structured logger on log/slog.
//
// Usage:
//
//	log := logger.New(cfg.Log)
//	log.Info("server starting", "port", 8080)
//	log.Error("failed to connect", "error", err)
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"resourcehub/src/infra/config"
)

// New creates a logger writing to stdout in the configured format and level.
func New(cfg config.LogConfig) *slog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter creates a logger that writes to w.
// Formats: "json" (default), "text", "plain".
func NewWithWriter(cfg config.LogConfig, w io.Writer) *slog.Logger {
	level := parseLevel(cfg.Level)

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "plain":
		handler = &plainHandler{level: level, w: w, mu: &sync.Mutex{}}
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// parseLevel converts a string log level to slog.Level, defaulting to Info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID returns a logger tagging every entry with the request ID.
func WithRequestID(log *slog.Logger, requestID string) *slog.Logger {
	return log.With("request_id", requestID)
}

// WithComponent returns a logger tagging every entry with a component name.
func WithComponent(log *slog.Logger, component string) *slog.Logger {
	if log == nil {
		return nil
	}
	return log.With("component", component)
}

// Info is a convenience wrapper for slog.Logger.Info, guarding nil.
func Info(log *slog.Logger, msg string, args ...any) {
	if log == nil {
		return
	}
	log.Info(msg, args...)
}

// Warn is a convenience wrapper for slog.Logger.Warn, guarding nil.
func Warn(log *slog.Logger, msg string, args ...any) {
	if log == nil {
		return
	}
	log.Warn(msg, args...)
}

// Error is a convenience wrapper for slog.Logger.Error, guarding nil.
func Error(log *slog.Logger, msg string, args ...any) {
	if log == nil {
		return
	}
	log.Error(msg, args...)
}

// Debug is a convenience wrapper for slog.Logger.Debug, guarding nil.
func Debug(log *slog.Logger, msg string, args ...any) {
	if log == nil {
		return
	}
	log.Debug(msg, args...)
}

// plainHandler writes "LEVEL message key=value ..." lines without timestamps.
type plainHandler struct {
	level slog.Level
	w     io.Writer
	mu    *sync.Mutex
	attrs []slog.Attr
}

func (h *plainHandler) Enabled(_ context.Context, lvl slog.Level) bool {
	return lvl >= h.level
}

func (h *plainHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Level.String())
	b.WriteByte(' ')
	b.WriteString(r.Message)

	write := func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value.Any())
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.w, b.String())
	return err
}

func (h *plainHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

// WithGroup is a no-op; plain output is flat.
func (h *plainHandler) WithGroup(_ string) slog.Handler {
	return h
}
