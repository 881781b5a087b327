package whisp

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/whisp/internal/gpu"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
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

// SetLogger configures the logger for whisp and all its sub-packages.
// By default the engine produces no log output.
//
// Pass nil to restore the silent default.
//
// Log levels used by whisp:
//   - [slog.LevelDebug]: per-frame diagnostics (slot waits, reconfigures)
//   - [slog.LevelInfo]: lifecycle events (adapter selected, state changes, FPS)
//   - [slog.LevelWarn]: tolerated problems (software fallback, suboptimal present, config fallback)
//   - [slog.LevelError]: a window stopped rendering
//
// Example:
//
//	sink, err := whisp.OpenLogSink("engine.log", slog.LevelInfo, os.Stderr)
//	if err != nil {
//	    return err
//	}
//	defer sink.Close()
//	whisp.SetLogger(sink.Logger())
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	gpu.SetLogger(l)
}

// Logger returns the current logger used by whisp.
// Sub-packages (backend/, app/, game/) call this to share one configuration
// without introducing import cycles.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
