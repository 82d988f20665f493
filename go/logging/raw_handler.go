package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// RawHandler prints the bare message followed by k=v pairs, one record per
// line. It is the format used by the command-line tools, where the output is
// read by a human rather than a log collector.
type RawHandler struct {
	writer io.Writer
	level  slog.Level
	prefix string
	group  string
}

// NewRawHandler creates a new RawHandler.
func NewRawHandler(w io.Writer, opts *slog.HandlerOptions) *RawHandler {
	level := slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level.Level()
	}
	return &RawHandler{writer: w, level: level}
}

func (h *RawHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *RawHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	b.WriteString(h.prefix)
	r.Attrs(func(attr slog.Attr) bool {
		writeAttr(&b, h.group, attr)
		return true
	})
	_, err := fmt.Fprintln(h.writer, b.String())
	return err
}

func (h *RawHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var b strings.Builder
	for _, attr := range attrs {
		writeAttr(&b, h.group, attr)
	}
	clone := *h
	clone.prefix = h.prefix + b.String()
	return &clone
}

func (h *RawHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.group = h.group + name + "."
	return &clone
}

func writeAttr(b *strings.Builder, group string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	fmt.Fprintf(b, " %s%s=%v", group, attr.Key, attr.Value)
}
