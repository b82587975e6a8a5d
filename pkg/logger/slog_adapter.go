package logger

import (
	"context"
	"log/slog"
	"strings"
)

// SlogHandler routes log/slog records through a Logger so libraries that
// take a *slog.Logger (the MCP server) obey the DEBUG selection.
type SlogHandler struct {
	logger *Logger
	attrs  []slog.Attr
}

// NewSlogHandler wraps logger in a slog.Handler.
func NewSlogHandler(logger *Logger) *SlogHandler {
	return &SlogHandler{logger: logger}
}

// Enabled reports whether the wrapped logger is enabled; levels are not
// filtered separately.
func (h *SlogHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return h.logger.Enabled()
}

// Handle formats the record as "[LEVEL] message key=value ...".
func (h *SlogHandler) Handle(_ context.Context, r slog.Record) error {
	if !h.logger.Enabled() {
		return nil
	}

	var msg strings.Builder
	msg.WriteString(levelPrefix(r.Level))
	msg.WriteString(r.Message)
	for _, a := range h.attrs {
		writeAttr(&msg, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&msg, a)
		return true
	})

	h.logger.Print(msg.String())
	return nil
}

// WithAttrs returns a handler that prefixes attrs to every record.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &SlogHandler{logger: h.logger, attrs: merged}
}

// WithGroup is a no-op; groups are flattened.
func (h *SlogHandler) WithGroup(string) slog.Handler {
	return h
}

func levelPrefix(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "[ERROR] "
	case level >= slog.LevelWarn:
		return "[WARN] "
	case level >= slog.LevelInfo:
		return "[INFO] "
	default:
		return "[DEBUG] "
	}
}

func writeAttr(sb *strings.Builder, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	sb.WriteString(" ")
	sb.WriteString(a.Key)
	sb.WriteString("=")
	sb.WriteString(a.Value.String())
}

// NewSlogLogger creates a *slog.Logger backed by a new Logger for namespace.
func NewSlogLogger(namespace string) *slog.Logger {
	return slog.New(NewSlogHandler(New(namespace)))
}
