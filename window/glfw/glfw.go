// Package glfw implements window.System with GLFW. Windows are created
// without a client API so a Vulkan or Direct3D 12 surface can be built on
// their native handle.
//
// GLFW must be driven from the main thread; the package locks it at init.
package glfw

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/whisp/window"
)

func init() {
	runtime.LockOSThread()
}

// library guards glfw.Init and glfw.Terminate for the whole process.
var library = window.NewLibrary(glfw.Init, glfw.Terminate)

// System opens GLFW windows.
type System struct{}

// New returns a GLFW window system.
func New() *System { return &System{} }

// Open creates a native window. Every open window holds a reference on the
// GLFW library until it is destroyed.
func (s *System) Open(cfg window.Config) (window.Window, error) {
	if err := library.Acquire(); err != nil {
		return nil, err
	}
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	glw, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		library.Release()
		return nil, fmt.Errorf("%w: %q: %w", window.ErrCreate, cfg.Title, err)
	}
	w := &Window{glw: glw, title: cfg.Title}
	w.install()
	return w, nil
}

// PollEvents processes pending events for all windows.
func (s *System) PollEvents() { glfw.PollEvents() }

// Window is a GLFW window.
type Window struct {
	window.Dispatcher

	glw   *glfw.Window
	title string
}

func (w *Window) install() {
	w.glw.SetKeyCallback(func(_ *glfw.Window, k glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}
		w.EmitKey(Key(k), Mods(mods), action == glfw.Press)
	})
	w.glw.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if mb, ok := MouseButton(b); ok {
			w.EmitMouseButton(mb, action == glfw.Press)
		}
	})
	w.glw.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) { w.EmitMouseMove(x, y) })
	w.glw.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) { w.EmitScroll(dx, dy) })
	w.glw.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) { w.EmitResize(width, height) })
	w.glw.SetFocusCallback(func(_ *glfw.Window, focused bool) { w.EmitFocus(focused) })
}

// FramebufferSize returns the drawable size in pixels, or 0x0 once destroyed.
func (w *Window) FramebufferSize() (int, int) {
	if w.glw == nil {
		return 0, 0
	}
	return w.glw.GetFramebufferSize()
}

// Size returns the window size in screen coordinates.
func (w *Window) Size() (int, int) {
	if w.glw == nil {
		return 0, 0
	}
	return w.glw.GetSize()
}

// ScaleFactor returns the horizontal content scale.
func (w *Window) ScaleFactor() float64 {
	if w.glw == nil {
		return 1
	}
	x, _ := w.glw.GetContentScale()
	return float64(x)
}

// RequestRedraw wakes a blocked event wait.
func (w *Window) RequestRedraw() { glfw.PostEmptyEvent() }

// Title returns the last title set.
func (w *Window) Title() string { return w.title }

// SetTitle replaces the native window title.
func (w *Window) SetTitle(title string) {
	w.title = title
	if w.glw != nil {
		w.glw.SetTitle(title)
	}
}

// ShouldClose reports whether the user asked to close the window. A
// destroyed window always should.
func (w *Window) ShouldClose() bool { return w.glw == nil || w.glw.ShouldClose() }

// SetShouldClose sets or clears the close flag.
func (w *Window) SetShouldClose(v bool) {
	if w.glw != nil {
		w.glw.SetShouldClose(v)
	}
}

// Events returns the source the window's callbacks emit into.
func (w *Window) Events() gpucontext.EventSource { return &w.Dispatcher }

// Destroy destroys the native window and drops its library reference.
func (w *Window) Destroy() {
	if w.glw == nil {
		return
	}
	w.glw.Destroy()
	w.glw = nil
	library.Release()
}

var (
	_ window.System = (*System)(nil)
	_ window.Window = (*Window)(nil)
)
