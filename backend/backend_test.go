package backend

import (
	"errors"
	"slices"
	"testing"
)

type fakeTarget struct{}

func (fakeTarget) NativeHandle() (uintptr, uintptr) { return 0, 0 }
func (fakeTarget) FramebufferSize() (int, int)      { return 640, 480 }

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"DX12", KindDX12, true},
		{"dx12", KindDX12, true},
		{"D3D12", KindDX12, true},
		{"d3d12", KindDX12, true},
		{"Vulkan", KindVulkan, true},
		{"vulkan", KindVulkan, true},
		{"VK", KindVulkan, true},
		{"vk", KindVulkan, true},
		{"null", KindNull, true},
		{"metal", KindDX12, false},
		{"", KindDX12, false},
	}
	for _, tt := range tests {
		got, ok := ParseKind(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseKind(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRegistry_NullAlwaysRegistered(t *testing.T) {
	if !IsRegistered(KindNull) {
		t.Fatal("null backend not registered")
	}
	a, err := New(KindNull)
	if err != nil {
		t.Fatalf("New(null) error = %v", err)
	}
	if a.Name() != "null" {
		t.Errorf("Name() = %q, want null", a.Name())
	}
	b, _ := New(KindNull)
	if a == b {
		t.Error("New() returned the same adapter twice")
	}
}

func TestRegistry_Unavailable(t *testing.T) {
	_, err := New(Kind("metal"))
	if !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("New(metal) error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestRegistry_PriorityOrder(t *testing.T) {
	Register(KindVulkan, func() Adapter { return NewNullAdapter(NullOptions{}) })
	Register(Kind("custom"), func() Adapter { return NewNullAdapter(NullOptions{}) })
	t.Cleanup(func() {
		Unregister(KindVulkan)
		Unregister(Kind("custom"))
	})

	got := Available()
	want := []Kind{KindVulkan, KindNull, Kind("custom")}
	if !slices.Equal(got, want) {
		t.Errorf("Available() = %v, want %v", got, want)
	}
	if Default() != KindVulkan {
		t.Errorf("Default() = %v, want vulkan", Default())
	}
}

func TestNullAdapter_FrameSequence(t *testing.T) {
	a := NewNullAdapter(NullOptions{SwapchainImages: 3, FramesInFlight: 2})
	if err := a.Initialize(fakeTarget{}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	var images, slots []int
	for i := 0; i < 6; i++ {
		if err := a.BeginFrame(); err != nil {
			t.Fatalf("BeginFrame() error = %v", err)
		}
		a.Clear(Color{0.08, 0.08, 0.12, 1})
		a.SetTransform([16]float32{0: float32(i)})
		a.Draw()
		if err := a.EndFrame(); err != nil {
			t.Fatalf("EndFrame() error = %v", err)
		}
		if err := a.Present(); err != nil {
			t.Fatalf("Present() error = %v", err)
		}
		images = append(images, a.SwapchainIndex())
		slots = append(slots, a.FrameIndex())
	}

	if want := []int{1, 2, 0, 1, 2, 0}; !slices.Equal(images, want) {
		t.Errorf("swapchain indices = %v, want %v", images, want)
	}
	if want := []int{1, 0, 1, 0, 1, 0}; !slices.Equal(slots, want) {
		t.Errorf("slot indices = %v, want %v", slots, want)
	}
	if a.Draws() != 6 {
		t.Errorf("Draws() = %d, want 6", a.Draws())
	}
	if got := a.DrawTransforms()[5][0]; got != 5 {
		t.Errorf("last draw transform[0] = %v, want 5", got)
	}
}

func TestNullAdapter_OutOfOrder(t *testing.T) {
	a := NewNullAdapter(NullOptions{})
	if err := a.BeginFrame(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("BeginFrame() before Initialize = %v, want ErrNotInitialized", err)
	}
	if err := a.Initialize(fakeTarget{}); err != nil {
		t.Fatal(err)
	}
	if err := a.Initialize(fakeTarget{}); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Initialize() = %v, want ErrAlreadyInitialized", err)
	}
	if err := a.Present(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Present() without frame = %v, want ErrInvalidState", err)
	}
	if err := a.BeginFrame(); err != nil {
		t.Fatal(err)
	}
	if err := a.BeginFrame(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("nested BeginFrame() = %v, want ErrInvalidState", err)
	}
	a.Draw()
	if a.Draws() != 0 {
		t.Error("Draw() before Clear should not record")
	}
}

func TestNullAdapter_FailPresent(t *testing.T) {
	a := NewNullAdapter(NullOptions{FailPresentAt: 2})
	if err := a.Initialize(fakeTarget{}); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 2; i++ {
		_ = a.BeginFrame()
		_ = a.EndFrame()
		err := a.Present()
		if i == 2 && !errors.Is(err, ErrPresent) {
			t.Errorf("Present() #2 = %v, want ErrPresent", err)
		}
	}
	if a.SwapchainIndex() != 1 || a.FrameIndex() != 1 {
		t.Errorf("indices after failure = (%d, %d), want (1, 1)", a.SwapchainIndex(), a.FrameIndex())
	}
}

func TestNullAdapter_ShutdownIdempotent(t *testing.T) {
	a := NewNullAdapter(NullOptions{})
	a.Shutdown()
	a.Shutdown()
	if a.State() != StateDestroyed {
		t.Errorf("State() = %v, want Destroyed", a.State())
	}
	if err := a.BeginFrame(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("BeginFrame() after Shutdown = %v, want ErrNotInitialized", err)
	}
}

func TestNullAdapter_HotReload(t *testing.T) {
	var a Adapter = NewNullAdapter(NullOptions{})
	hr, ok := a.(HotReloader)
	if !ok {
		t.Fatal("NullAdapter does not implement HotReloader")
	}
	if err := a.Initialize(fakeTarget{}); err != nil {
		t.Fatal(err)
	}
	if err := hr.HotReloadShaders(); err != nil {
		t.Errorf("HotReloadShaders() error = %v", err)
	}

	failing := NewNullAdapter(NullOptions{FailHotReload: true})
	_ = failing.Initialize(fakeTarget{})
	if err := failing.HotReloadShaders(); !errors.Is(err, ErrHotReload) {
		t.Errorf("HotReloadShaders() = %v, want ErrHotReload", err)
	}
}

func TestStateString(t *testing.T) {
	if StateRecording.String() != "Recording" {
		t.Errorf("StateRecording.String() = %q", StateRecording.String())
	}
	if State(99).String() != "Unknown" {
		t.Errorf("State(99).String() = %q", State(99).String())
	}
}
