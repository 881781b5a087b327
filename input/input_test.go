package input

import (
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/whisp/window"
)

func TestEdgeRising(t *testing.T) {
	samples := []bool{false, true, true, false, true, false, false, true}
	want := []bool{false, true, false, false, true, false, false, true}

	var e Edge
	for i, s := range samples {
		if got := e.Rising(s); got != want[i] {
			t.Errorf("sample %d: Rising(%v) = %v, want %v", i, s, got, want[i])
		}
	}
}

func TestEdgeReset(t *testing.T) {
	var e Edge
	e.Rising(true)
	e.Reset()
	if !e.Rising(true) {
		t.Error("Rising(true) after Reset = false, want true")
	}
}

func TestStateFromEvents(t *testing.T) {
	var d window.Dispatcher
	s := New()
	s.Attach(&d)

	d.EmitKey(gpucontext.KeyLeft, 0, true)
	d.EmitKey(gpucontext.KeyNumpadEnter, 0, true)
	d.EmitMouseMove(10, 20)
	d.EmitMouseButton(gpucontext.MouseButtonRight, true)

	if !s.KeyDown(gpucontext.KeyLeft) {
		t.Error("KeyDown(Left) = false, want true")
	}
	if !s.KeyDown(gpucontext.KeyEnter, gpucontext.KeyNumpadEnter) {
		t.Error("KeyDown(Enter, NumpadEnter) = false, want true")
	}
	if s.KeyDown(gpucontext.KeyRight) {
		t.Error("KeyDown(Right) = true, want false")
	}
	if !s.ButtonDown(gpucontext.MouseButtonRight) {
		t.Error("ButtonDown(Right) = false, want true")
	}
	if x, y := s.Cursor(); x != 10 || y != 20 {
		t.Errorf("Cursor() = (%v, %v), want (10, 20)", x, y)
	}

	d.EmitKey(gpucontext.KeyLeft, 0, false)
	d.EmitMouseButton(gpucontext.MouseButtonRight, false)
	if s.KeyDown(gpucontext.KeyLeft) || s.ButtonDown(gpucontext.MouseButtonRight) {
		t.Error("state still held after release")
	}
}

func TestStateFocusLossReleases(t *testing.T) {
	var d window.Dispatcher
	s := New()
	s.Attach(&d)

	d.EmitKey(gpucontext.KeyUp, 0, true)
	d.EmitMouseButton(gpucontext.MouseButtonLeft, true)
	d.EmitFocus(false)
	if s.KeyDown(gpucontext.KeyUp) || s.ButtonDown(gpucontext.MouseButtonLeft) {
		t.Error("focus loss did not release held input")
	}
}
