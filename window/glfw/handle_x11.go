//go:build (linux && !wayland) || (freebsd && !wayland) || (netbsd && !wayland) || (openbsd && !wayland)

package glfw

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// NativeHandle returns the X11 Display connection and Window id.
func (w *Window) NativeHandle() (display, win uintptr) {
	if w.glw == nil {
		return 0, 0
	}
	return uintptr(unsafe.Pointer(glfw.GetX11Display())), uintptr(w.glw.GetX11Window())
}
