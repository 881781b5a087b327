package app

import (
	"errors"

	"github.com/gogpu/whisp"
	"github.com/gogpu/whisp/backend"
	"github.com/gogpu/whisp/config"
	"github.com/gogpu/whisp/game"
	"github.com/gogpu/whisp/window"
)

// WindowContext ties one window to its adapter.
type WindowContext struct {
	Spec    config.WindowSpec
	Window  window.Window
	Adapter backend.Adapter

	fps    FPSCounter
	frames int
	err    error
	closed bool
}

// Open reports whether the window is still being rendered.
func (w *WindowContext) Open() bool { return !w.closed }

// Err returns the error that closed the window, if any.
func (w *WindowContext) Err() error { return w.err }

// Frames returns the number of frames presented.
func (w *WindowContext) Frames() int { return w.frames }

// render records and presents one frame. A skipped frame is not an error.
func (w *WindowContext) render(ctx game.Context, m *game.Machine, mvp [16]float32) error {
	a := w.Adapter
	if err := a.BeginFrame(); err != nil {
		if errors.Is(err, backend.ErrFrameSkipped) {
			return nil
		}
		return err
	}
	a.Clear(w.Spec.Clear)
	m.Render(ctx, a)
	a.SetTransform(mvp)
	a.Draw()
	if err := a.EndFrame(); err != nil {
		return err
	}
	if err := a.Present(); err != nil {
		return err
	}
	w.frames++
	w.fps.Frame()
	return nil
}

// publish updates the title once per FPSInterval of wall time.
func (w *WindowContext) publish(elapsed float32) {
	fps, ok := w.fps.Advance(elapsed)
	if !ok {
		return
	}
	w.Window.SetTitle(FormatTitle(w.Spec.TitleTemplate, w.Spec.Title, w.Adapter.Name(), fps))
	whisp.Logger().Info("app: fps", "window", w.Spec.Title, "backend", w.Adapter.Name(), "fps", FormatFPS(fps))
}

// close shuts the adapter down before the window it renders into.
func (w *WindowContext) close(err error) {
	if w.closed {
		return
	}
	w.closed = true
	w.err = err
	w.Adapter.Shutdown()
	w.Window.Destroy()
}
