package backend

import (
	"errors"
)

// Common backend errors. Adapters wrap HAL failures with one of these so
// callers never depend on backend-specific error types.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when frame operations are called before Initialize.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrAlreadyInitialized is returned by a second Initialize.
	ErrAlreadyInitialized = errors.New("backend: already initialized")

	// ErrNoDevice is returned when no adapter can render to the window.
	ErrNoDevice = errors.New("backend: no capable device")

	// ErrShaderMissing is returned when compiled shader binaries cannot be found.
	ErrShaderMissing = errors.New("backend: shader binaries missing")

	// ErrInvalidState is returned when frame operations are called out of order.
	ErrInvalidState = errors.New("backend: invalid adapter state")

	// ErrFrameSkipped is returned by BeginFrame when the frame cannot be
	// rendered (minimized window, image not ready). It is not fatal.
	ErrFrameSkipped = errors.New("backend: frame skipped")

	// ErrSubmit is returned when command submission fails.
	ErrSubmit = errors.New("backend: submit failed")

	// ErrPresent is returned when presentation fails for a reason other
	// than a suboptimal surface.
	ErrPresent = errors.New("backend: present failed")

	// ErrFrameTimeout is returned when the GPU does not release a frame slot in time.
	ErrFrameTimeout = errors.New("backend: frame timeout")

	// ErrHotReload is returned when shaders could not be rebuilt. The
	// previous pipeline stays active.
	ErrHotReload = errors.New("backend: hot reload failed")
)

// Color is a linear RGBA clear color.
type Color struct {
	R, G, B, A float32
}

// Target is the native window an adapter renders into.
type Target interface {
	// NativeHandle returns the platform display and window handles.
	NativeHandle() (display, window uintptr)

	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (width, height int)
}

// Adapter renders one window. A frame is recorded as
//
//	BeginFrame, Clear, SetTransform, Draw, EndFrame, Present
//
// and at most FramesInFlight-1 frames may still be executing on the GPU
// when BeginFrame returns.
//
// Adapters are not safe for concurrent use.
type Adapter interface {
	// Name returns the backend identifier ("dx12", "vulkan", "null").
	Name() string

	// Initialize creates the device, swapchain, frame slots and the
	// initial pipeline for target.
	Initialize(target Target) error

	// BeginFrame waits for the next frame slot and starts recording.
	// ErrFrameSkipped means nothing should be recorded this frame.
	BeginFrame() error

	// Clear clears the current image and binds the active pipeline.
	Clear(c Color)

	// SetTransform stages a column-major 4x4 matrix for the next Draw.
	SetTransform(m [16]float32)

	// Draw records the drawable with the staged transform.
	Draw()

	// EndFrame finishes recording and submits the frame.
	EndFrame() error

	// Present presents the current image and advances the frame slot.
	Present() error

	// Shutdown waits for the GPU to go idle and releases everything in
	// reverse creation order. It is idempotent and safe on an adapter that
	// was never initialized.
	Shutdown()
}

// HotReloader is implemented by adapters that can rebuild their pipeline
// from shader source at runtime.
type HotReloader interface {
	// HotReloadShaders recompiles the shaders and swaps the pipeline only
	// if every step succeeded.
	HotReloadShaders() error
}

// FrameIndexer is implemented by adapters that expose their ring positions.
type FrameIndexer interface {
	// SwapchainIndex returns the current image index in [0, N).
	SwapchainIndex() int

	// FrameIndex returns the current frame slot index in [0, M).
	FrameIndex() int
}

// State is the lifecycle state of an adapter.
type State int

// Adapter states.
const (
	StateUninitialized State = iota
	StateInitialized
	StateRecording
	StateSubmitted
	StatePresented
	StateShuttingDown
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateInitialized:
		return "Initialized"
	case StateRecording:
		return "Recording"
	case StateSubmitted:
		return "Submitted"
	case StatePresented:
		return "Presented"
	case StateShuttingDown:
		return "ShuttingDown"
	case StateDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// CanBegin reports whether BeginFrame is legal in state s.
func (s State) CanBegin() bool {
	return s == StateInitialized || s == StatePresented
}
