package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// CaptureHandler is a slog.Handler that keeps records in memory, one line per record
// formatted as "LEVEL message key=value ...". Handlers derived with WithAttrs or
// WithGroup share the parent's buffer.
//
//	h := logging.NewCaptureHandler(slog.LevelDebug)
//	logging.SetLogger(slog.New(h))
//	defer logging.SetLogger(nil)
type CaptureHandler struct {
	level  slog.Leveler
	buf    *captureBuffer
	attrs  []slog.Attr
	groups []string
}

type captureBuffer struct {
	mu    sync.Mutex
	lines []string
}

// NewCaptureHandler returns a handler that captures records at level and above.
func NewCaptureHandler(level slog.Leveler) *CaptureHandler {
	if level == nil {
		level = slog.LevelDebug
	}
	return &CaptureHandler{level: level, buf: &captureBuffer{}}
}

// Enabled implements slog.Handler.
func (h *CaptureHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Level.String())
	b.WriteByte(' ')
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		b.WriteByte(' ')
		b.WriteString(h.prefixed(a))
	}
	r.Attrs(func(a slog.Attr) bool {
		b.WriteByte(' ')
		b.WriteString(h.prefixed(a))
		return true
	})

	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	h.buf.lines = append(h.buf.lines, b.String())
	return nil
}

func (h *CaptureHandler) prefixed(a slog.Attr) string {
	if len(h.groups) == 0 {
		return a.String()
	}
	return strings.Join(h.groups, ".") + "." + a.String()
}

// WithAttrs implements slog.Handler.
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cp := *h
	cp.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &cp
}

// WithGroup implements slog.Handler.
func (h *CaptureHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	cp := *h
	cp.groups = append(append([]string(nil), h.groups...), name)
	return &cp
}

// Lines returns a copy of the captured lines.
func (h *CaptureHandler) Lines() []string {
	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	return append([]string(nil), h.buf.lines...)
}

// String returns the captured lines joined by newlines.
func (h *CaptureHandler) String() string {
	return strings.Join(h.Lines(), "\n")
}

// Contains reports whether any captured line contains s.
func (h *CaptureHandler) Contains(s string) bool {
	for _, l := range h.Lines() {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

// Reset drops all captured lines.
func (h *CaptureHandler) Reset() {
	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	h.buf.lines = nil
}
