package gpu

import (
	"errors"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// rig wires fake HAL objects around the noop backend so tests can observe
// what the renderer does and inject failures.
type rig struct {
	api     *fakeAPI
	dev     *fakeDevice
	queue   *fakeQueue
	surface *fakeSurface
	events  []string
}

func newRig() *rig {
	r := &rig{}
	r.dev = &fakeDevice{rig: r, views: map[*fakeView]bool{}}
	r.queue = &fakeQueue{}
	r.surface = &fakeSurface{rig: r}
	r.api = &fakeAPI{surface: r.surface}
	r.api.adapters = []hal.ExposedAdapter{
		exposed("Fake Discrete", gputypes.DeviceTypeDiscreteGPU, &fakeAdapter{dev: r.dev, queue: r.queue}),
	}
	return r
}

func (r *rig) record(event string) { r.events = append(r.events, event) }

func exposed(name string, typ gputypes.DeviceType, a hal.Adapter) hal.ExposedAdapter {
	return hal.ExposedAdapter{
		Adapter:      a,
		Info:         gputypes.AdapterInfo{Name: name, DeviceType: typ},
		Capabilities: hal.Capabilities{Limits: gputypes.DefaultLimits()},
	}
}

type fakeTarget struct{ w, h int }

func (t *fakeTarget) NativeHandle() (uintptr, uintptr) { return 0, 0 }
func (t *fakeTarget) FramebufferSize() (int, int)      { return t.w, t.h }

func testStages(label string) Stages {
	return Stages{Label: label, Vertex: []uint32{0x07230203}, Fragment: []uint32{0x07230203}}
}

type fakeAPI struct {
	adapters  []hal.ExposedAdapter
	surface   *fakeSurface
	instErr   error
	instances int
}

func (a *fakeAPI) Variant() gputypes.Backend { return gputypes.BackendEmpty }

func (a *fakeAPI) CreateInstance(*hal.InstanceDescriptor) (hal.Instance, error) {
	if a.instErr != nil {
		return nil, a.instErr
	}
	a.instances++
	return &fakeInstance{api: a}, nil
}

type fakeInstance struct {
	noop.Instance
	api *fakeAPI
}

func (i *fakeInstance) CreateSurface(_, _ uintptr) (hal.Surface, error) {
	if i.api.surface == nil {
		return &noop.Surface{}, nil
	}
	return i.api.surface, nil
}

func (i *fakeInstance) EnumerateAdapters(hal.Surface) []hal.ExposedAdapter { return i.api.adapters }

type fakeAdapter struct {
	noop.Adapter
	dev       *fakeDevice
	queue     *fakeQueue
	noPresent bool
	openErr   error
}

func (a *fakeAdapter) SurfaceCapabilities(s hal.Surface) *hal.SurfaceCapabilities {
	if a.noPresent {
		return nil
	}
	return a.Adapter.SurfaceCapabilities(s)
}

func (a *fakeAdapter) Open(gputypes.Features, gputypes.Limits) (hal.OpenDevice, error) {
	if a.openErr != nil {
		return hal.OpenDevice{}, a.openErr
	}
	if a.dev == nil {
		return hal.OpenDevice{Device: &noop.Device{}, Queue: &noop.Queue{}}, nil
	}
	return hal.OpenDevice{Device: a.dev, Queue: a.queue}, nil
}

type fakePipeline struct{ id int }

func (*fakePipeline) Destroy() {}

type fakeView struct{ id int }

func (*fakeView) Destroy()              {}
func (*fakeView) NativeHandle() uintptr { return 0 }

type fakeCmd struct{ id int }

func (*fakeCmd) Destroy() {}

type fakeDevice struct {
	noop.Device
	rig *rig

	nextID       int
	failPipeline bool
	pipelines    int
	destroyed    int
	views        map[*fakeView]bool
	freed        int
	bound        []hal.RenderPipeline
	draws        int
}

func (d *fakeDevice) id() int { d.nextID++; return d.nextID }

func (d *fakeDevice) CreateRenderPipeline(*hal.RenderPipelineDescriptor) (hal.RenderPipeline, error) {
	if d.failPipeline {
		return nil, errors.New("pipeline rejected")
	}
	d.pipelines++
	return &fakePipeline{id: d.id()}, nil
}

func (d *fakeDevice) DestroyRenderPipeline(hal.RenderPipeline) {
	d.destroyed++
	d.rig.record("pipeline")
}

func (d *fakeDevice) CreateTextureView(hal.Texture, *hal.TextureViewDescriptor) (hal.TextureView, error) {
	v := &fakeView{id: d.id()}
	d.views[v] = true
	return v, nil
}

func (d *fakeDevice) DestroyTextureView(v hal.TextureView) {
	delete(d.views, v.(*fakeView))
	d.rig.record("view")
}

func (d *fakeDevice) CreateCommandEncoder(*hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	return &fakeEncoder{dev: d}, nil
}

func (d *fakeDevice) FreeCommandBuffer(hal.CommandBuffer) { d.freed++ }

func (d *fakeDevice) DestroyBuffer(hal.Buffer)                   { d.rig.record("buffer") }
func (d *fakeDevice) DestroyBindGroup(hal.BindGroup)             { d.rig.record("bindgroup") }
func (d *fakeDevice) DestroyPipelineLayout(hal.PipelineLayout)   { d.rig.record("layout") }
func (d *fakeDevice) DestroyBindGroupLayout(hal.BindGroupLayout) { d.rig.record("layout") }
func (d *fakeDevice) Destroy()                                   { d.rig.record("device") }

func (d *fakeDevice) WaitIdle() error {
	d.rig.record("idle")
	return nil
}

type fakeEncoder struct {
	noop.CommandEncoder
	dev *fakeDevice
}

func (e *fakeEncoder) EndEncoding() (hal.CommandBuffer, error) {
	return &fakeCmd{id: e.dev.id()}, nil
}

func (e *fakeEncoder) BeginRenderPass(*hal.RenderPassDescriptor) hal.RenderPassEncoder {
	return &fakePass{dev: e.dev}
}

type fakePass struct {
	noop.RenderPassEncoder
	dev *fakeDevice
}

func (p *fakePass) SetPipeline(pl hal.RenderPipeline) { p.dev.bound = append(p.dev.bound, pl) }
func (p *fakePass) Draw(_, _, _, _ uint32)            { p.dev.draws++ }

type fakeQueue struct {
	noop.Queue
	submitted  uint64
	completed  uint64
	lag        bool
	presentErr error
	presents   int
	writes     [][]byte
}

func (q *fakeQueue) Submit([]hal.CommandBuffer) (uint64, error) {
	q.submitted++
	if !q.lag {
		q.completed = q.submitted
	}
	return q.submitted, nil
}

func (q *fakeQueue) PollCompleted() uint64 { return q.completed }

func (q *fakeQueue) WriteBuffer(_ hal.Buffer, _ uint64, data []byte) error {
	q.writes = append(q.writes, append([]byte(nil), data...))
	return nil
}

func (q *fakeQueue) Present(hal.Surface, hal.SurfaceTexture, []image.Rectangle) error {
	q.presents++
	return q.presentErr
}

type fakeSurface struct {
	noop.Surface
	rig *rig

	acquireErrs  []error
	suboptimal   bool
	configures   int
	unconfigures int
	last         hal.SurfaceConfiguration
}

func (s *fakeSurface) Configure(_ hal.Device, c *hal.SurfaceConfiguration) error {
	s.configures++
	s.last = *c
	return nil
}

func (s *fakeSurface) Unconfigure(hal.Device) { s.unconfigures++ }

func (s *fakeSurface) AcquireTexture(hal.Fence) (*hal.AcquiredSurfaceTexture, error) {
	if len(s.acquireErrs) > 0 {
		err := s.acquireErrs[0]
		s.acquireErrs = s.acquireErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &hal.AcquiredSurfaceTexture{Texture: &noop.SurfaceTexture{}, Suboptimal: s.suboptimal}, nil
}

func (s *fakeSurface) Destroy() {
	if s.rig != nil {
		s.rig.record("surface")
	}
}
