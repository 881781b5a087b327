package gpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/whisp/backend"
)

// RendererConfig describes one GPU backend.
type RendererConfig struct {
	// Name is the backend name used in labels and logs.
	Name string

	Device    DeviceOptions
	Swapchain SwapchainConfig

	// FramesInFlight is M. It must not exceed Swapchain.ImageCount.
	FramesInFlight int

	// LoadStages returns the initial compiled shaders. It is called once
	// the device exists.
	LoadStages func(dc *DeviceContext) (Stages, error)

	// FrameTimeout overrides DefaultFrameTimeout when positive.
	FrameTimeout time.Duration
}

// Renderer implements the backend.Adapter frame protocol on top of the HAL.
// The DX12 and Vulkan adapters are thin configurations of it.
type Renderer struct {
	cfg    RendererConfig
	target backend.Target
	state  backend.State

	dc        *DeviceContext
	swapchain *Swapchain
	layout    *Layout
	pipeline  *Pipeline
	mesh      *Mesh
	frames    *FrameRing

	pass      hal.RenderPassEncoder
	clear     backend.Color
	transform [16]float32
	recordErr error
}

// NewRenderer returns an uninitialized renderer.
func NewRenderer(cfg RendererConfig) *Renderer {
	r := &Renderer{cfg: cfg}
	r.transform[0], r.transform[5], r.transform[10], r.transform[15] = 1, 1, 1, 1
	return r
}

// Initialize opens the device and creates the swapchain, the initial
// pipeline, the vertex buffer and the frame slots. Anything created before
// a failure is released again.
func (r *Renderer) Initialize(target backend.Target) (err error) {
	switch {
	case r.state == backend.StateDestroyed:
		return fmt.Errorf("%w: adapter was shut down", backend.ErrInvalidState)
	case r.state != backend.StateUninitialized:
		return backend.ErrAlreadyInitialized
	case target == nil:
		return fmt.Errorf("%s: nil render target", r.cfg.Name)
	case r.cfg.FramesInFlight < 1 || r.cfg.FramesInFlight > r.cfg.Swapchain.ImageCount:
		return fmt.Errorf("%s: %d frames in flight with %d swapchain images",
			r.cfg.Name, r.cfg.FramesInFlight, r.cfg.Swapchain.ImageCount)
	}

	defer func() {
		if err != nil {
			r.destroy()
		}
	}()

	r.dc, err = OpenDevice(r.cfg.Device, target)
	if err != nil {
		if !errors.Is(err, backend.ErrNoDevice) {
			err = fmt.Errorf("%w: %w", backend.ErrNoDevice, err)
		}
		return fmt.Errorf("%s: %w", r.cfg.Name, err)
	}
	device := r.dc.Device

	w, h := target.FramebufferSize()
	if r.swapchain, err = NewSwapchain(r.dc, r.cfg.Swapchain, w, h); err != nil {
		return fmt.Errorf("%s: %w", r.cfg.Name, err)
	}
	if r.layout, err = NewLayout(device); err != nil {
		return fmt.Errorf("%s: %w", r.cfg.Name, err)
	}
	if r.cfg.LoadStages == nil {
		return fmt.Errorf("%s: %w", r.cfg.Name, backend.ErrShaderMissing)
	}
	stages, err := r.cfg.LoadStages(r.dc)
	if err != nil {
		return fmt.Errorf("%s: %w", r.cfg.Name, err)
	}
	if r.pipeline, err = BuildPipeline(device, r.layout, r.swapchain.Format(), stages); err != nil {
		return fmt.Errorf("%s: %w", r.cfg.Name, err)
	}
	if r.mesh, err = NewTriangleMesh(device, r.dc.Queue); err != nil {
		return fmt.Errorf("%s: %w", r.cfg.Name, err)
	}
	if r.frames, err = NewFrameRing(device, r.dc.Queue, r.cfg.FramesInFlight, r.layout.BindGroupLayout()); err != nil {
		return fmt.Errorf("%s: %w", r.cfg.Name, err)
	}
	if r.cfg.FrameTimeout > 0 {
		r.frames.SetTimeout(r.cfg.FrameTimeout)
	}

	r.target = target
	r.state = backend.StateInitialized
	slogger().Info("gpu: renderer initialized",
		"backend", r.cfg.Name,
		"width", w, "height", h,
		"images", r.cfg.Swapchain.ImageCount,
		"frames_in_flight", r.cfg.FramesInFlight,
		"format", r.swapchain.Format(),
		"present_mode", r.swapchain.PresentMode())
	return nil
}

// BeginFrame waits for the current frame slot, resets it, starts recording
// and acquires the next swapchain image.
func (r *Renderer) BeginFrame() error {
	switch {
	case r.state == backend.StateUninitialized || r.state == backend.StateDestroyed:
		return backend.ErrNotInitialized
	case !r.state.CanBegin():
		return fmt.Errorf("%w: BeginFrame in %s", backend.ErrInvalidState, r.state)
	}
	r.recordErr = nil

	r.swapchain.Resize(r.target.FramebufferSize())
	if _, err := r.frames.Begin(r.cfg.Name + "_frame"); err != nil {
		return fmt.Errorf("%s: %w", r.cfg.Name, err)
	}
	view, err := r.swapchain.Acquire()
	if err != nil {
		r.frames.Abort()
		return err
	}
	r.frames.Retain(view)
	r.state = backend.StateRecording
	return nil
}

// fail records the first recording error; EndFrame reports it.
func (r *Renderer) fail(err error) {
	if r.recordErr == nil {
		r.recordErr = err
		slogger().Debug("gpu: recording error", "backend", r.cfg.Name, "err", err)
	}
}

// Clear begins the render pass with a clear of the current image and binds
// the active pipeline and the slot's transform.
func (r *Renderer) Clear(c backend.Color) {
	if r.state != backend.StateRecording {
		r.fail(fmt.Errorf("%w: Clear in %s", backend.ErrInvalidState, r.state))
		return
	}
	if r.pass != nil {
		r.fail(fmt.Errorf("%w: Clear called twice", backend.ErrInvalidState))
		return
	}
	r.clear = c
	slot := r.frames.Current()
	r.pass = slot.encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: r.cfg.Name + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:    slot.view,
				LoadOp:  gputypes.LoadOpClear,
				StoreOp: gputypes.StoreOpStore,
				ClearValue: gputypes.Color{
					R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A),
				},
			},
		},
	})
	r.pass.SetPipeline(r.pipeline.pipeline)
	r.pass.SetBindGroup(0, slot.bindGroup, nil)
}

// SetTransform stages m for the next Draw.
func (r *Renderer) SetTransform(m [16]float32) { r.transform = m }

// Draw uploads the staged transform into the slot's uniform buffer and
// records the triangle.
func (r *Renderer) Draw() {
	if r.pass == nil {
		r.fail(fmt.Errorf("%w: Draw without Clear", backend.ErrInvalidState))
		return
	}
	if err := r.frames.WriteTransform(r.transform); err != nil {
		r.fail(fmt.Errorf("gpu: write transform: %w", err))
		return
	}
	r.mesh.Record(r.pass)
}

// EndFrame closes the render pass, ends the command buffer and submits it.
// A frame with a recording error is dropped and the error returned.
func (r *Renderer) EndFrame() error {
	if r.state != backend.StateRecording {
		return fmt.Errorf("%w: EndFrame in %s", backend.ErrInvalidState, r.state)
	}
	if r.pass == nil && r.recordErr == nil {
		// The image still has to be written before it can be presented.
		r.Clear(r.clear)
	}
	if r.pass != nil {
		r.pass.End()
		r.pass = nil
	}
	if r.recordErr != nil {
		r.frames.Abort()
		r.swapchain.Discard()
		r.state = backend.StatePresented
		return r.recordErr
	}
	if err := r.frames.Submit(); err != nil {
		r.swapchain.Discard()
		r.state = backend.StatePresented
		return fmt.Errorf("%s: %w", r.cfg.Name, err)
	}
	r.state = backend.StateSubmitted
	return nil
}

// Present presents the image and advances the frame slot.
func (r *Renderer) Present() error {
	if r.state != backend.StateSubmitted {
		return fmt.Errorf("%w: Present in %s", backend.ErrInvalidState, r.state)
	}
	if err := r.swapchain.Present(r.dc.Queue); err != nil {
		return fmt.Errorf("%s: %w", r.cfg.Name, err)
	}
	r.frames.Advance()
	r.state = backend.StatePresented
	return nil
}

// SwapStages builds a pipeline from stages and, only if that succeeds,
// waits for the device to go idle and replaces the active pipeline. On
// failure the active pipeline is untouched.
func (r *Renderer) SwapStages(stages Stages) error {
	switch r.state {
	case backend.StateUninitialized, backend.StateDestroyed:
		return backend.ErrNotInitialized
	case backend.StateRecording, backend.StateSubmitted:
		return fmt.Errorf("%w: hot reload during a frame", backend.ErrInvalidState)
	}
	device := r.dc.Device
	p, err := BuildPipeline(device, r.layout, r.swapchain.Format(), stages)
	if err != nil {
		return fmt.Errorf("%w: %w", backend.ErrHotReload, err)
	}
	if err := r.dc.WaitIdle(); err != nil {
		p.Destroy(device)
		return fmt.Errorf("%w: wait idle: %w", backend.ErrHotReload, err)
	}
	old := r.pipeline
	r.pipeline = p
	old.Destroy(device)
	slogger().Info("gpu: pipeline swapped", "backend", r.cfg.Name, "label", stages.Label)
	return nil
}

// Shutdown waits for the device to go idle and destroys everything in
// reverse creation order. It is idempotent.
func (r *Renderer) Shutdown() {
	if r.state == backend.StateDestroyed {
		return
	}
	r.state = backend.StateShuttingDown
	if r.pass != nil {
		r.pass.End()
		r.pass = nil
	}
	if r.frames != nil {
		r.frames.Abort()
	}
	if r.swapchain != nil {
		r.swapchain.Discard()
	}
	if err := r.dc.WaitIdle(); err != nil {
		slogger().Warn("gpu: wait idle failed during shutdown", "backend", r.cfg.Name, "err", err)
	}
	r.destroy()
	r.state = backend.StateDestroyed
	slogger().Debug("gpu: renderer destroyed", "backend", r.cfg.Name)
}

func (r *Renderer) destroy() {
	if r.dc == nil {
		return
	}
	device := r.dc.Device
	if r.frames != nil {
		r.frames.Destroy()
		r.frames = nil
	}
	if r.mesh != nil {
		r.mesh.Destroy(device)
		r.mesh = nil
	}
	if r.pipeline != nil {
		r.pipeline.Destroy(device)
		r.pipeline = nil
	}
	if r.layout != nil {
		r.layout.Destroy(device)
		r.layout = nil
	}
	if r.swapchain != nil {
		r.swapchain.Destroy()
		r.swapchain = nil
	}
	r.dc.Destroy()
	r.dc = nil
}

// State returns the lifecycle state.
func (r *Renderer) State() backend.State { return r.state }

// SwapchainIndex returns the current image index, or 0 before Initialize.
func (r *Renderer) SwapchainIndex() int {
	if r.swapchain == nil {
		return 0
	}
	return r.swapchain.Index()
}

// FrameIndex returns the current frame slot index, or 0 before Initialize.
func (r *Renderer) FrameIndex() int {
	if r.frames == nil {
		return 0
	}
	return r.frames.Index()
}

// Device returns the device context, or nil before Initialize.
func (r *Renderer) Device() *DeviceContext { return r.dc }

// PipelineLabel returns the label of the active pipeline's stages.
func (r *Renderer) PipelineLabel() string {
	if r.pipeline == nil {
		return ""
	}
	return r.pipeline.Label()
}
