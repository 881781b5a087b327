package game

import (
	"github.com/gogpu/whisp"
	"github.com/gogpu/whisp/backend"
)

// Machine owns the current state and at most one pending transition.
type Machine struct {
	current State
	pending State
}

// ChangeState queues next. A transition queued earlier and not yet applied
// is replaced; its state never sees OnEnter or OnExit.
func (m *Machine) ChangeState(next State) {
	if m.pending != nil && next != nil {
		whisp.Logger().Debug("game: pending transition replaced",
			"dropped", m.pending.Name(), "next", next.Name())
	}
	m.pending = next
}

// ApplyPending performs the queued transition, if any: OnExit on the
// current state, then OnEnter on the new one. It reports whether a
// transition happened.
func (m *Machine) ApplyPending(ctx Context) bool {
	if m.pending == nil {
		return false
	}
	next := m.pending
	m.pending = nil

	from := ""
	if m.current != nil {
		from = m.current.Name()
		m.current.OnExit(ctx)
	}
	m.current = next
	whisp.Logger().Info("game: state changed", "from", from, "to", next.Name())
	next.OnEnter(ctx)
	return true
}

// Update runs the current state's Update.
func (m *Machine) Update(ctx Context, dt float32) {
	if m.current != nil {
		m.current.Update(ctx, dt)
	}
}

// Render runs the current state's Render.
func (m *Machine) Render(ctx Context, r backend.Adapter) {
	if m.current != nil {
		m.current.Render(ctx, r)
	}
}

// Current returns the active state or nil.
func (m *Machine) Current() State { return m.current }

// Pending returns the queued state or nil.
func (m *Machine) Pending() State { return m.pending }

// CurrentName returns the active state's name, or "" before the first
// transition.
func (m *Machine) CurrentName() string {
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}
