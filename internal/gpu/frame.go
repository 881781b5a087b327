package gpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/whisp/backend"
)

// DefaultFrameTimeout bounds how long BeginFrame waits for a slot's
// previous submission.
const DefaultFrameTimeout = 5 * time.Second

// TransformSize is the size of the per-frame uniform: one column-major
// 4x4 float32 matrix.
const TransformSize = 64

// FrameSlot holds everything one in-flight frame needs. Its command buffer
// and retained view are only released after the queue reports the slot's
// submission complete.
type FrameSlot struct {
	encoder   hal.CommandEncoder
	cmd       hal.CommandBuffer
	submitted uint64

	uniform   hal.Buffer
	bindGroup hal.BindGroup

	// view is the swapchain view recorded into this slot. The GPU may still
	// read it until the submission completes.
	view hal.TextureView
}

// Submitted returns the queue submission index of the slot's last frame,
// or 0 if it has never been submitted.
func (s *FrameSlot) Submitted() uint64 { return s.submitted }

// FrameRing is the fixed array of M frame slots indexed modulo M.
type FrameRing struct {
	device  hal.Device
	queue   hal.Queue
	slots   []FrameSlot
	index   int
	timeout time.Duration

	// sleep is replaced in tests.
	sleep func(time.Duration)
}

// NewFrameRing allocates count slots, each with its own transform uniform
// buffer and bind group built against layout.
func NewFrameRing(device hal.Device, queue hal.Queue, count int, layout hal.BindGroupLayout) (*FrameRing, error) {
	if count < 1 {
		return nil, fmt.Errorf("gpu: frame ring size %d", count)
	}
	r := &FrameRing{
		device:  device,
		queue:   queue,
		slots:   make([]FrameSlot, count),
		timeout: DefaultFrameTimeout,
		sleep:   time.Sleep,
	}
	for i := range r.slots {
		slot := &r.slots[i]
		buf, err := device.CreateBuffer(&hal.BufferDescriptor{
			Label: fmt.Sprintf("frame_%d_transform", i),
			Size:  TransformSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			r.Destroy()
			return nil, fmt.Errorf("gpu: create transform buffer %d: %w", i, err)
		}
		slot.uniform = buf

		bg, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  fmt.Sprintf("frame_%d_bind_group", i),
			Layout: layout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{
					Buffer: buf.NativeHandle(), Offset: 0, Size: TransformSize,
				}},
			},
		})
		if err != nil {
			r.Destroy()
			return nil, fmt.Errorf("gpu: create bind group %d: %w", i, err)
		}
		slot.bindGroup = bg
	}
	return r, nil
}

// SetTimeout overrides DefaultFrameTimeout.
func (r *FrameRing) SetTimeout(d time.Duration) { r.timeout = d }

// Len returns M.
func (r *FrameRing) Len() int { return len(r.slots) }

// Index returns the current slot index in [0, M).
func (r *FrameRing) Index() int { return r.index }

// Current returns the current slot.
func (r *FrameRing) Current() *FrameSlot { return &r.slots[r.index] }

// Wait blocks until the current slot's previous submission has completed.
func (r *FrameRing) Wait() error {
	return r.waitFor(r.slots[r.index].submitted)
}

func (r *FrameRing) waitFor(idx uint64) error {
	if idx == 0 || r.queue.PollCompleted() >= idx {
		return nil
	}
	deadline := time.Now().Add(r.timeout)
	backoff := 50 * time.Microsecond
	for r.queue.PollCompleted() < idx {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: slot %d, submission %d", backend.ErrFrameTimeout, r.index, idx)
		}
		r.sleep(backoff)
		if backoff < 2*time.Millisecond {
			backoff *= 2
		}
	}
	return nil
}

// Begin waits for the current slot, releases what its previous frame held
// and starts a new command encoder for it.
func (r *FrameRing) Begin(label string) (hal.CommandEncoder, error) {
	if err := r.Wait(); err != nil {
		return nil, err
	}
	slot := &r.slots[r.index]
	r.release(slot)

	enc, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := enc.BeginEncoding(label); err != nil {
		enc.Destroy()
		return nil, fmt.Errorf("gpu: begin encoding: %w", err)
	}
	slot.encoder = enc
	return enc, nil
}

// release frees the command buffer and view of a slot whose submission has
// completed.
func (r *FrameRing) release(slot *FrameSlot) {
	if slot.cmd != nil {
		r.device.FreeCommandBuffer(slot.cmd)
		slot.cmd = nil
	}
	if slot.view != nil {
		r.device.DestroyTextureView(slot.view)
		slot.view = nil
	}
}

// Retain hands a swapchain view to the current slot. It is destroyed once
// the slot's submission completes.
func (r *FrameRing) Retain(view hal.TextureView) {
	r.slots[r.index].view = view
}

// WriteTransform uploads m into the current slot's uniform buffer.
func (r *FrameRing) WriteTransform(m [16]float32) error {
	var buf [TransformSize]byte
	putFloats(buf[:], m[:])
	return r.queue.WriteBuffer(r.slots[r.index].uniform, 0, buf[:])
}

// Submit ends the current slot's encoder and submits it. The returned
// submission index is what Wait later waits for.
func (r *FrameRing) Submit() error {
	slot := &r.slots[r.index]
	if slot.encoder == nil {
		return errors.New("gpu: submit without recording")
	}
	cmd, err := slot.encoder.EndEncoding()
	slot.encoder = nil
	if err != nil {
		return fmt.Errorf("gpu: end encoding: %w", err)
	}
	idx, err := r.queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		r.device.FreeCommandBuffer(cmd)
		return fmt.Errorf("%w: %w", backend.ErrSubmit, err)
	}
	slot.cmd = cmd
	slot.submitted = idx
	return nil
}

// Abort discards an unfinished recording on the current slot.
func (r *FrameRing) Abort() {
	slot := &r.slots[r.index]
	if slot.encoder != nil {
		slot.encoder.DiscardEncoding()
		slot.encoder = nil
	}
}

// Advance moves to the next slot.
func (r *FrameRing) Advance() {
	r.index = (r.index + 1) % len(r.slots)
}

// Destroy releases every slot in reverse order. The device must be idle.
func (r *FrameRing) Destroy() {
	if r == nil || r.device == nil {
		return
	}
	for i := len(r.slots) - 1; i >= 0; i-- {
		slot := &r.slots[i]
		if slot.encoder != nil {
			slot.encoder.DiscardEncoding()
			slot.encoder = nil
		}
		r.release(slot)
		if slot.bindGroup != nil {
			r.device.DestroyBindGroup(slot.bindGroup)
			slot.bindGroup = nil
		}
		if slot.uniform != nil {
			r.device.DestroyBuffer(slot.uniform)
			slot.uniform = nil
		}
	}
}
