package gpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/whisp/backend"
)

// DeviceOptions controls adapter selection.
type DeviceOptions struct {
	// Label prefixes log messages, usually the backend name.
	Label string

	// API is the hardware HAL. Nil means the platform has none, in which
	// case selection goes straight to Fallback.
	API hal.Backend

	// Backends is passed to the instance descriptor of API.
	Backends gputypes.Backends

	// Fallback, when set, is tried with CPU adapters allowed after API
	// produced no usable adapter.
	Fallback hal.Backend

	// Debug enables validation layers where the HAL supports them.
	Debug bool
}

// DeviceContext owns the instance, surface and logical device of one
// render adapter. It is created first and destroyed last.
type DeviceContext struct {
	Instance hal.Instance
	Surface  hal.Surface
	Adapter  hal.Adapter
	Info     gputypes.AdapterInfo
	Caps     *hal.SurfaceCapabilities
	Device   hal.Device
	Queue    hal.Queue

	// Fallback reports whether the device came from DeviceOptions.Fallback.
	Fallback bool
}

// OpenDevice creates an instance and a surface for target, then picks the
// first adapter that is not a CPU device, can present to the surface and
// opens successfully. When none qualifies and a fallback HAL is configured
// the search repeats on the fallback with CPU devices allowed.
func OpenDevice(opts DeviceOptions, target backend.Target) (*DeviceContext, error) {
	if opts.API != nil {
		dc, err := openOn(opts.API, opts.Backends, opts.Debug, target, false)
		if err == nil {
			logAdapter(opts.Label, dc)
			return dc, nil
		}
		if opts.Fallback == nil {
			return nil, err
		}
		slogger().Warn("gpu: no hardware adapter, using fallback device",
			"backend", opts.Label, "err", err)
	} else if opts.Fallback == nil {
		return nil, backend.ErrNoDevice
	}

	dc, err := openOn(opts.Fallback, 0, opts.Debug, target, true)
	if err != nil {
		return nil, fmt.Errorf("fallback device: %w", err)
	}
	dc.Fallback = true
	logAdapter(opts.Label, dc)
	return dc, nil
}

func openOn(api hal.Backend, backends gputypes.Backends, debug bool, target backend.Target, allowCPU bool) (*DeviceContext, error) {
	flags := gputypes.InstanceFlagsNone
	if debug {
		flags = gputypes.InstanceFlagsDebug
	}
	instance, err := api.CreateInstance(&hal.InstanceDescriptor{Backends: backends, Flags: flags})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	display, window := target.NativeHandle()
	surface, err := instance.CreateSurface(display, window)
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("create surface: %w", err)
	}

	for _, exposed := range instance.EnumerateAdapters(surface) {
		if exposed.Info.DeviceType == gputypes.DeviceTypeCPU && !allowCPU {
			slogger().Debug("gpu: skipping software adapter", "name", exposed.Info.Name)
			continue
		}
		caps := exposed.Adapter.SurfaceCapabilities(surface)
		if caps == nil || len(caps.Formats) == 0 {
			slogger().Debug("gpu: adapter cannot present", "name", exposed.Info.Name)
			continue
		}
		open, err := exposed.Adapter.Open(0, exposed.Capabilities.Limits)
		if err != nil {
			slogger().Debug("gpu: adapter open failed", "name", exposed.Info.Name, "err", err)
			continue
		}
		return &DeviceContext{
			Instance: instance,
			Surface:  surface,
			Adapter:  exposed.Adapter,
			Info:     exposed.Info,
			Caps:     caps,
			Device:   open.Device,
			Queue:    open.Queue,
		}, nil
	}

	surface.Destroy()
	instance.Destroy()
	return nil, backend.ErrNoDevice
}

func logAdapter(label string, dc *DeviceContext) {
	info := dc.AdapterInfo()
	slogger().Info("gpu: adapter selected",
		"backend", label, "name", info.Name, "type", info.Type.String(), "fallback", dc.Fallback)
}

// AdapterInfo reports the selected adapter in the gpucontext form.
func (dc *DeviceContext) AdapterInfo() gpucontext.AdapterInfo {
	t := gpucontext.AdapterTypeUnknown
	switch dc.Info.DeviceType {
	case gputypes.DeviceTypeDiscreteGPU:
		t = gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		t = gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		t = gpucontext.AdapterTypeSoftware
	}
	return gpucontext.AdapterInfo{Name: dc.Info.Name, Type: t}
}

// WaitIdle blocks until the device has finished all submitted work.
func (dc *DeviceContext) WaitIdle() error {
	if dc == nil || dc.Device == nil {
		return nil
	}
	return dc.Device.WaitIdle()
}

// Destroy releases surface, device, adapter and instance in that order.
// The swapchain must already be unconfigured. Safe to call more than once.
func (dc *DeviceContext) Destroy() {
	if dc == nil {
		return
	}
	if dc.Surface != nil {
		dc.Surface.Destroy()
		dc.Surface = nil
	}
	if dc.Device != nil {
		dc.Device.Destroy()
		dc.Device = nil
		dc.Queue = nil
	}
	if dc.Adapter != nil {
		dc.Adapter.Destroy()
		dc.Adapter = nil
	}
	if dc.Instance != nil {
		dc.Instance.Destroy()
		dc.Instance = nil
	}
}
