//go:build darwin

package glfw

// NativeHandle returns the NSWindow. The Vulkan HAL builds its Metal layer
// from it.
func (w *Window) NativeHandle() (display, win uintptr) {
	if w.glw == nil {
		return 0, 0
	}
	return 0, uintptr(w.glw.GetCocoaWindow())
}
