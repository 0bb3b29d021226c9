package hwc

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/hwc/blit"
	"github.com/gogpu/hwc/buffer"
	"github.com/gogpu/hwc/idle"
	"github.com/gogpu/hwc/overlay"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine,
// including the idle timer.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for hwc and all its sub-packages.
// By default, hwc produces no log output. Call SetLogger to enable logging.
//
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by hwc:
//   - [slog.LevelDebug]: per-frame decisions (classification, pipe setup)
//   - [slog.LevelInfo]: lifecycle events (open, close, external display)
//   - [slog.LevelWarn]: degraded paths (fallbacks, lock failures, stale handles)
//
// Example:
//
//	hwc.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	buffer.SetLogger(l)
	overlay.SetLogger(l)
	blit.SetLogger(l)
	idle.SetLogger(l)
}

// Logger returns the current logger used by hwc.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// slogger returns the current logger for internal use.
func slogger() *slog.Logger {
	return loggerPtr.Load()
}
