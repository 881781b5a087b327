package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/whisp/backend"
)

func TestOpenDevice_SkipsSoftwareAdapter(t *testing.T) {
	r := newRig()
	r.api.adapters = []hal.ExposedAdapter{
		exposed("llvmpipe", gputypes.DeviceTypeCPU, &fakeAdapter{dev: r.dev, queue: r.queue}),
		exposed("Fake Discrete", gputypes.DeviceTypeDiscreteGPU, &fakeAdapter{dev: r.dev, queue: r.queue}),
	}

	dc, err := OpenDevice(DeviceOptions{Label: "test", API: r.api}, &fakeTarget{640, 480})
	if err != nil {
		t.Fatalf("OpenDevice() error = %v", err)
	}
	defer dc.Destroy()

	if dc.Info.Name != "Fake Discrete" {
		t.Errorf("selected %q, want Fake Discrete", dc.Info.Name)
	}
	if dc.Fallback {
		t.Error("Fallback = true for a hardware adapter")
	}
	if got := dc.AdapterInfo().Type; got != gpucontext.AdapterTypeDiscrete {
		t.Errorf("AdapterInfo().Type = %v, want Discrete", got)
	}
}

func TestOpenDevice_SkipsAdaptersThatCannotPresentOrOpen(t *testing.T) {
	r := newRig()
	r.api.adapters = []hal.ExposedAdapter{
		exposed("headless", gputypes.DeviceTypeDiscreteGPU, &fakeAdapter{noPresent: true}),
		exposed("broken", gputypes.DeviceTypeDiscreteGPU, &fakeAdapter{openErr: errors.New("open failed")}),
		exposed("Fake Integrated", gputypes.DeviceTypeIntegratedGPU, &fakeAdapter{dev: r.dev, queue: r.queue}),
	}

	dc, err := OpenDevice(DeviceOptions{API: r.api}, &fakeTarget{640, 480})
	if err != nil {
		t.Fatalf("OpenDevice() error = %v", err)
	}
	defer dc.Destroy()
	if dc.Info.Name != "Fake Integrated" {
		t.Errorf("selected %q, want Fake Integrated", dc.Info.Name)
	}
}

func TestOpenDevice_NoHardwareNoFallback(t *testing.T) {
	r := newRig()
	r.api.adapters = []hal.ExposedAdapter{
		exposed("llvmpipe", gputypes.DeviceTypeCPU, &fakeAdapter{dev: r.dev, queue: r.queue}),
	}

	_, err := OpenDevice(DeviceOptions{API: r.api}, &fakeTarget{640, 480})
	if !errors.Is(err, backend.ErrNoDevice) {
		t.Errorf("OpenDevice() error = %v, want ErrNoDevice", err)
	}
	if r.events == nil || r.events[len(r.events)-1] != "surface" {
		t.Errorf("surface not destroyed after failed selection, events = %v", r.events)
	}
}

func TestOpenDevice_SoftwareFallback(t *testing.T) {
	r := newRig()
	r.api.adapters = nil

	fallback := &fakeAPI{adapters: []hal.ExposedAdapter{
		exposed("Software Rasterizer", gputypes.DeviceTypeCPU, &fakeAdapter{}),
	}}

	dc, err := OpenDevice(DeviceOptions{API: r.api, Fallback: fallback}, &fakeTarget{640, 480})
	if err != nil {
		t.Fatalf("OpenDevice() error = %v", err)
	}
	defer dc.Destroy()

	if !dc.Fallback {
		t.Error("Fallback = false, want true")
	}
	if got := dc.AdapterInfo().Type; got != gpucontext.AdapterTypeSoftware {
		t.Errorf("AdapterInfo().Type = %v, want Software", got)
	}
}

func TestOpenDevice_NilAPIGoesToFallback(t *testing.T) {
	fallback := &fakeAPI{adapters: []hal.ExposedAdapter{
		exposed("Software Rasterizer", gputypes.DeviceTypeCPU, &fakeAdapter{}),
	}}
	dc, err := OpenDevice(DeviceOptions{Fallback: fallback}, &fakeTarget{640, 480})
	if err != nil {
		t.Fatalf("OpenDevice() error = %v", err)
	}
	defer dc.Destroy()
	if !dc.Fallback {
		t.Error("Fallback = false, want true")
	}

	if _, err := OpenDevice(DeviceOptions{}, &fakeTarget{640, 480}); !errors.Is(err, backend.ErrNoDevice) {
		t.Errorf("OpenDevice() with no HAL = %v, want ErrNoDevice", err)
	}
}

func TestOpenDevice_InstanceFailure(t *testing.T) {
	api := &fakeAPI{instErr: errors.New("loader missing")}
	_, err := OpenDevice(DeviceOptions{API: api}, &fakeTarget{640, 480})
	if err == nil {
		t.Fatal("OpenDevice() expected error")
	}
}

func TestDeviceContext_DestroyOrderAndIdempotence(t *testing.T) {
	r := newRig()
	dc, err := OpenDevice(DeviceOptions{API: r.api}, &fakeTarget{640, 480})
	if err != nil {
		t.Fatal(err)
	}
	dc.Destroy()
	dc.Destroy()

	want := []string{"surface", "device"}
	if len(r.events) != len(want) || r.events[0] != want[0] || r.events[1] != want[1] {
		t.Errorf("destroy events = %v, want %v", r.events, want)
	}

	var nilCtx *DeviceContext
	nilCtx.Destroy()
	if err := nilCtx.WaitIdle(); err != nil {
		t.Errorf("nil WaitIdle() = %v", err)
	}
}
