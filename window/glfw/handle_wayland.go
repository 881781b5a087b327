//go:build (linux && wayland) || (freebsd && wayland) || (netbsd && wayland) || (openbsd && wayland)

package glfw

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// NativeHandle returns the wl_display and wl_surface.
func (w *Window) NativeHandle() (display, win uintptr) {
	if w.glw == nil {
		return 0, 0
	}
	return uintptr(unsafe.Pointer(glfw.GetWaylandDisplay())), uintptr(unsafe.Pointer(w.glw.GetWaylandWindow()))
}
