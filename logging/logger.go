// Package logging holds the *slog.Logger used by xlnest.
package logging

import (
	"io"
	"log/slog"
	"sync/atomic"
)

// logger is the package-level logger. Nil means discard.
var logger atomic.Pointer[slog.Logger]

// SetLogger installs sl as the package-level logger. Passing nil restores the
// discarding default.
//
// SetLogger is safe for concurrent use.
//
//	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
func SetLogger(sl *slog.Logger) {
	if sl == nil {
		sl = slog.New(slog.DiscardHandler)
	}
	logger.Store(sl)
}

// Logger returns the package-level logger, or a discarding logger when none is set.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	l := logger.Load()
	if l == nil {
		l = slog.New(slog.DiscardHandler)
		logger.Store(l)
	}
	return l
}

// NewTextLogger returns a text logger on w that logs at level and above.
func NewTextLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
