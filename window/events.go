package window

import "github.com/gogpu/gpucontext"

// Dispatcher is a gpucontext.EventSource that fans events out to every
// registered callback. Window implementations embed it and call the Emit
// methods from their native callbacks. Text and IME events are not
// produced.
type Dispatcher struct {
	gpucontext.NullEventSource

	keyPress     []func(gpucontext.Key, gpucontext.Modifiers)
	keyRelease   []func(gpucontext.Key, gpucontext.Modifiers)
	mouseMove    []func(x, y float64)
	mousePress   []func(gpucontext.MouseButton, float64, float64)
	mouseRelease []func(gpucontext.MouseButton, float64, float64)
	scroll       []func(dx, dy float64)
	resize       []func(w, h int)
	focus        []func(bool)

	x, y float64
}

func (d *Dispatcher) OnKeyPress(fn func(gpucontext.Key, gpucontext.Modifiers)) {
	d.keyPress = append(d.keyPress, fn)
}

func (d *Dispatcher) OnKeyRelease(fn func(gpucontext.Key, gpucontext.Modifiers)) {
	d.keyRelease = append(d.keyRelease, fn)
}

func (d *Dispatcher) OnMouseMove(fn func(x, y float64)) { d.mouseMove = append(d.mouseMove, fn) }

func (d *Dispatcher) OnMousePress(fn func(gpucontext.MouseButton, float64, float64)) {
	d.mousePress = append(d.mousePress, fn)
}

func (d *Dispatcher) OnMouseRelease(fn func(gpucontext.MouseButton, float64, float64)) {
	d.mouseRelease = append(d.mouseRelease, fn)
}

func (d *Dispatcher) OnScroll(fn func(dx, dy float64)) { d.scroll = append(d.scroll, fn) }
func (d *Dispatcher) OnResize(fn func(w, h int))       { d.resize = append(d.resize, fn) }
func (d *Dispatcher) OnFocus(fn func(bool))            { d.focus = append(d.focus, fn) }

// EmitKey delivers a key press or release.
func (d *Dispatcher) EmitKey(k gpucontext.Key, mods gpucontext.Modifiers, pressed bool) {
	handlers := d.keyRelease
	if pressed {
		handlers = d.keyPress
	}
	for _, fn := range handlers {
		fn(k, mods)
	}
}

// EmitMouseMove records the cursor position and delivers it.
func (d *Dispatcher) EmitMouseMove(x, y float64) {
	d.x, d.y = x, y
	for _, fn := range d.mouseMove {
		fn(x, y)
	}
}

// EmitMouseButton delivers a button event at the last cursor position.
func (d *Dispatcher) EmitMouseButton(b gpucontext.MouseButton, pressed bool) {
	handlers := d.mouseRelease
	if pressed {
		handlers = d.mousePress
	}
	for _, fn := range handlers {
		fn(b, d.x, d.y)
	}
}

func (d *Dispatcher) EmitScroll(dx, dy float64) {
	for _, fn := range d.scroll {
		fn(dx, dy)
	}
}

func (d *Dispatcher) EmitResize(w, h int) {
	for _, fn := range d.resize {
		fn(w, h)
	}
}

func (d *Dispatcher) EmitFocus(focused bool) {
	for _, fn := range d.focus {
		fn(focused)
	}
}

var _ gpucontext.EventSource = (*Dispatcher)(nil)
