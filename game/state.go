package game

import (
	"github.com/gogpu/whisp/backend"
	"github.com/gogpu/whisp/input"
)

// Context is the part of the application a state can use.
type Context interface {
	Input() *input.State
	Transform() *Transform

	// ChangeState requests a transition. It takes effect at the next
	// ApplyPending, never during the current Update or Render.
	ChangeState(next State)
}

// State is one game state. Update runs once per simulation step and Render
// once per window per frame, between Clear and Draw.
type State interface {
	Name() string
	OnEnter(ctx Context)
	OnExit(ctx Context)
	Update(ctx Context, dt float32)
	Render(ctx Context, r backend.Adapter)
}

// Base implements the optional State callbacks as no-ops.
type Base struct{}

func (Base) OnEnter(Context)                 {}
func (Base) OnExit(Context)                  {}
func (Base) Render(Context, backend.Adapter) {}
