//go:build windows

package glfw

import "unsafe"

// NativeHandle returns the HWND. Direct3D and Vulkan surfaces on Windows
// need no display connection.
func (w *Window) NativeHandle() (display, win uintptr) {
	if w.glw == nil {
		return 0, 0
	}
	return 0, uintptr(unsafe.Pointer(w.glw.GetWin32Window()))
}
