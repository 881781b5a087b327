package game

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/whisp"
	"github.com/gogpu/whisp/input"
)

// LoadingDuration is how long Loading lasts before it requests Menu.
const LoadingDuration = 1.0

// Loading waits LoadingDuration seconds and moves to Menu.
type Loading struct {
	Base
	elapsed float32
}

func (*Loading) Name() string { return "Loading" }

func (s *Loading) OnEnter(Context) {
	s.elapsed = 0
	whisp.Logger().Info("game: loading")
}

func (s *Loading) Update(ctx Context, dt float32) {
	s.elapsed += dt
	if s.elapsed >= LoadingDuration {
		ctx.ChangeState(&Menu{})
	}
}

// Menu waits for Enter and moves to Gameplay.
type Menu struct {
	Base
	enter input.Edge
}

func (*Menu) Name() string { return "Menu" }

func (s *Menu) OnEnter(Context) {
	s.enter.Reset()
	whisp.Logger().Info("game: menu (Enter starts gameplay)")
}

func (s *Menu) Update(ctx Context, _ float32) {
	held := ctx.Input().KeyDown(gpucontext.KeyEnter, gpucontext.KeyNumpadEnter)
	if s.enter.Rising(held) {
		whisp.Logger().Info("game: enter pressed")
		ctx.ChangeState(&Gameplay{})
	}
}

// Gameplay drives the transform from input and returns to Menu on Escape.
type Gameplay struct {
	Base
	escape input.Edge
}

func (*Gameplay) Name() string { return "Gameplay" }

func (s *Gameplay) OnEnter(Context) {
	s.escape.Reset()
	whisp.Logger().Info("game: gameplay (Esc returns to menu)")
}

func (s *Gameplay) Update(ctx Context, dt float32) {
	ctx.Transform().Update(ctx.Input(), dt)
	if s.escape.Rising(ctx.Input().KeyDown(gpucontext.KeyEscape)) {
		whisp.Logger().Info("game: escape pressed")
		ctx.ChangeState(&Menu{})
	}
}

var (
	_ State = (*Loading)(nil)
	_ State = (*Menu)(nil)
	_ State = (*Gameplay)(nil)
)
