package tilefish

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled reports false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for tilefish and its sub-packages.
// By default, tilefish produces no log output.
//
// Pass nil to restore the silent default.
//
// Log levels used by tilefish:
//   - [slog.LevelDebug]: state transitions, buffer and encoding sizes
//   - [slog.LevelInfo]: lifecycle events (host started, frame saved)
//   - [slog.LevelWarn]: aborted generation cycles
//
// Example:
//
//	tilefish.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by tilefish.
// Display hosts under integration/ call this to share the same
// logger configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
