package glfw

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gpucontext"
)

func TestKey(t *testing.T) {
	tests := []struct {
		in   glfw.Key
		want gpucontext.Key
	}{
		{glfw.KeyA, gpucontext.KeyA},
		{glfw.KeyR, gpucontext.KeyR},
		{glfw.KeyZ, gpucontext.KeyZ},
		{glfw.Key5, gpucontext.Key5},
		{glfw.KeyF12, gpucontext.KeyF12},
		{glfw.KeyEnter, gpucontext.KeyEnter},
		{glfw.KeyKPEnter, gpucontext.KeyNumpadEnter},
		{glfw.KeyKP7, gpucontext.KeyNumpad7},
		{glfw.KeyEscape, gpucontext.KeyEscape},
		{glfw.KeyLeft, gpucontext.KeyLeft},
		{glfw.KeyMenu, gpucontext.KeyUnknown},
	}
	for _, tt := range tests {
		if got := Key(tt.in); got != tt.want {
			t.Errorf("Key(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMods(t *testing.T) {
	got := Mods(glfw.ModShift | glfw.ModSuper)
	if !got.HasShift() || !got.HasSuper() || got.HasControl() || got.HasAlt() {
		t.Errorf("Mods(shift|super) = %b", got)
	}
}

func TestMouseButton(t *testing.T) {
	if b, ok := MouseButton(glfw.MouseButtonRight); !ok || b != gpucontext.MouseButtonRight {
		t.Errorf("MouseButton(right) = %v, %v", b, ok)
	}
	if _, ok := MouseButton(glfw.MouseButton8); ok {
		t.Error("MouseButton(8) should be unmapped")
	}
}
