// Package input tracks keyboard and mouse state from gpucontext event
// sources so game code can poll it the way it would poll a window.
package input

import "github.com/gogpu/gpucontext"

// State is the set of keys and mouse buttons currently held. It is fed by
// the callbacks of one or more event sources and read once per update.
// It is not safe for concurrent use; events arrive on the polling thread.
type State struct {
	keys    map[gpucontext.Key]bool
	buttons map[gpucontext.MouseButton]bool
	x, y    float64
}

// New returns an empty state.
func New() *State {
	return &State{
		keys:    make(map[gpucontext.Key]bool),
		buttons: make(map[gpucontext.MouseButton]bool),
	}
}

// Attach subscribes the state to src.
func (s *State) Attach(src gpucontext.EventSource) {
	src.OnKeyPress(func(k gpucontext.Key, _ gpucontext.Modifiers) { s.SetKey(k, true) })
	src.OnKeyRelease(func(k gpucontext.Key, _ gpucontext.Modifiers) { s.SetKey(k, false) })
	src.OnMousePress(func(b gpucontext.MouseButton, x, y float64) {
		s.x, s.y = x, y
		s.SetButton(b, true)
	})
	src.OnMouseRelease(func(b gpucontext.MouseButton, x, y float64) {
		s.x, s.y = x, y
		s.SetButton(b, false)
	})
	src.OnMouseMove(func(x, y float64) { s.x, s.y = x, y })
	src.OnFocus(func(focused bool) {
		if !focused {
			s.Reset()
		}
	})
}

// SetKey records a key transition.
func (s *State) SetKey(k gpucontext.Key, down bool) {
	if down {
		s.keys[k] = true
	} else {
		delete(s.keys, k)
	}
}

// SetButton records a mouse button transition.
func (s *State) SetButton(b gpucontext.MouseButton, down bool) {
	if down {
		s.buttons[b] = true
	} else {
		delete(s.buttons, b)
	}
}

// KeyDown reports whether any of keys is held.
func (s *State) KeyDown(keys ...gpucontext.Key) bool {
	for _, k := range keys {
		if s.keys[k] {
			return true
		}
	}
	return false
}

// ButtonDown reports whether b is held.
func (s *State) ButtonDown(b gpucontext.MouseButton) bool { return s.buttons[b] }

// Cursor returns the last cursor position.
func (s *State) Cursor() (x, y float64) { return s.x, s.y }

// Reset releases everything, as when a window loses focus.
func (s *State) Reset() {
	clear(s.keys)
	clear(s.buttons)
}

// Edge turns a held state into a one-shot trigger: Rising reports true only
// on the first sample after the input went from released to held.
type Edge struct {
	prev bool
}

// Rising feeds the current sample and reports a released-to-held change.
func (e *Edge) Rising(cur bool) bool {
	fired := cur && !e.prev
	e.prev = cur
	return fired
}

// Reset forgets the previous sample.
func (e *Edge) Reset() { e.prev = false }
