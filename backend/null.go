package backend

import (
	"errors"
	"fmt"
)

// Null adapter ring sizes.
const (
	NullSwapchainImages = 2
	NullFramesInFlight  = 2
)

// NullOptions configures a NullAdapter. The zero value never fails.
type NullOptions struct {
	// SwapchainImages and FramesInFlight override the ring sizes.
	SwapchainImages int
	FramesInFlight  int

	// FailInit makes Initialize return this error.
	FailInit error

	// FailPresentAt makes the Nth Present (1-based) fail. Zero disables.
	FailPresentAt int

	// FailHotReload makes every HotReloadShaders call fail.
	FailHotReload bool
}

// NullAdapter renders nothing. It tracks the same image and slot rings and
// enforces the same call order as the GPU backends, which makes it the
// backend of choice for headless runs and tests.
type NullAdapter struct {
	opts  NullOptions
	state State

	images, slots  int
	image, slot    int
	frames         int
	presents       int
	draws          int
	reloads        int
	clear          Color
	transform      [16]float32
	drawTransforms [][16]float32
	cleared        bool
}

func init() {
	Register(KindNull, func() Adapter { return NewNullAdapter(NullOptions{}) })
}

// NewNullAdapter creates a null adapter.
func NewNullAdapter(opts NullOptions) *NullAdapter {
	n, m := opts.SwapchainImages, opts.FramesInFlight
	if n <= 0 {
		n = NullSwapchainImages
	}
	if m <= 0 {
		m = NullFramesInFlight
	}
	return &NullAdapter{opts: opts, images: n, slots: min(m, n)}
}

// Name returns "null".
func (a *NullAdapter) Name() string { return string(KindNull) }

// Initialize moves the adapter to the Initialized state.
func (a *NullAdapter) Initialize(Target) error {
	if a.state != StateUninitialized {
		return ErrAlreadyInitialized
	}
	if a.opts.FailInit != nil {
		return fmt.Errorf("%w: %w", ErrNoDevice, a.opts.FailInit)
	}
	a.state = StateInitialized
	return nil
}

// BeginFrame starts recording a frame.
func (a *NullAdapter) BeginFrame() error {
	if a.state == StateUninitialized || a.state == StateDestroyed {
		return ErrNotInitialized
	}
	if !a.state.CanBegin() {
		return fmt.Errorf("%w: BeginFrame in %s", ErrInvalidState, a.state)
	}
	a.state = StateRecording
	a.cleared = false
	return nil
}

// Clear records a clear.
func (a *NullAdapter) Clear(c Color) {
	if a.state == StateRecording {
		a.clear = c
		a.cleared = true
	}
}

// SetTransform stages m.
func (a *NullAdapter) SetTransform(m [16]float32) { a.transform = m }

// Draw records a draw with the staged transform.
func (a *NullAdapter) Draw() {
	if a.state == StateRecording && a.cleared {
		a.draws++
		a.drawTransforms = append(a.drawTransforms, a.transform)
	}
}

// EndFrame submits the frame.
func (a *NullAdapter) EndFrame() error {
	if a.state != StateRecording {
		return fmt.Errorf("%w: EndFrame in %s", ErrInvalidState, a.state)
	}
	a.state = StateSubmitted
	return nil
}

// Present advances both rings.
func (a *NullAdapter) Present() error {
	if a.state != StateSubmitted {
		return fmt.Errorf("%w: Present in %s", ErrInvalidState, a.state)
	}
	a.presents++
	if a.opts.FailPresentAt > 0 && a.presents == a.opts.FailPresentAt {
		return fmt.Errorf("%w: injected failure", ErrPresent)
	}
	a.image = (a.image + 1) % a.images
	a.slot = (a.slot + 1) % a.slots
	a.frames++
	a.state = StatePresented
	return nil
}

// Shutdown is idempotent.
func (a *NullAdapter) Shutdown() {
	a.state = StateDestroyed
}

// HotReloadShaders counts successful reloads.
func (a *NullAdapter) HotReloadShaders() error {
	if a.state == StateUninitialized || a.state == StateDestroyed {
		return ErrNotInitialized
	}
	if a.opts.FailHotReload {
		return fmt.Errorf("%w: %w", ErrHotReload, errors.New("injected failure"))
	}
	a.reloads++
	return nil
}

// SwapchainIndex returns the current image index.
func (a *NullAdapter) SwapchainIndex() int { return a.image }

// FrameIndex returns the current slot index.
func (a *NullAdapter) FrameIndex() int { return a.slot }

// State returns the lifecycle state.
func (a *NullAdapter) State() State { return a.state }

// Frames returns the number of presented frames.
func (a *NullAdapter) Frames() int { return a.frames }

// Draws returns the number of recorded draws.
func (a *NullAdapter) Draws() int { return a.draws }

// Reloads returns the number of successful hot reloads.
func (a *NullAdapter) Reloads() int { return a.reloads }

// ClearColor returns the last clear color.
func (a *NullAdapter) ClearColor() Color { return a.clear }

// DrawTransforms returns the transform used by every recorded draw.
func (a *NullAdapter) DrawTransforms() [][16]float32 { return a.drawTransforms }
