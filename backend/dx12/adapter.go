package dx12

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/software"
	"github.com/gogpu/whisp/backend"
	"github.com/gogpu/whisp/internal/gpu"
	"github.com/gogpu/whisp/shaders"
)

// Swapchain and frame pacing constants.
const (
	SwapchainImages = 2
	FramesInFlight  = 2
)

// PresentModes is the present mode preference. Fifo is vsync.
var PresentModes = []hal.PresentMode{hal.PresentModeFifo}

// Formats is the surface format preference.
var Formats = []gputypes.TextureFormat{
	gputypes.TextureFormatRGBA8Unorm,
	gputypes.TextureFormatBGRA8Unorm,
}

// Options configures an Adapter. The zero value uses the platform HAL, the
// software fallback and shader binaries probed from the working directory.
type Options struct {
	// API replaces the platform HAL.
	API hal.Backend

	// Fallback replaces the software device. Ignored when NoFallback is set.
	Fallback   hal.Backend
	NoFallback bool

	// ShaderBase is the directory shader paths are probed from.
	ShaderBase string

	// Debug enables the D3D12 debug layer.
	Debug bool
}

// Adapter is the Direct3D 12 render adapter.
type Adapter struct {
	*gpu.Renderer
	opts Options
}

// New returns an uninitialized adapter.
func New(opts Options) *Adapter {
	a := &Adapter{opts: opts}

	api := opts.API
	if api == nil {
		api = platformAPI()
	}
	var fallback hal.Backend
	if !opts.NoFallback {
		fallback = opts.Fallback
		if fallback == nil {
			fallback = software.API{}
		}
	}
	if api == nil && fallback != nil {
		gpu.Logger().Warn("dx12: using software device", "reason", ErrUnsupportedPlatform)
	}

	a.Renderer = gpu.NewRenderer(gpu.RendererConfig{
		Name: string(backend.KindDX12),
		Device: gpu.DeviceOptions{
			Label:    string(backend.KindDX12),
			API:      api,
			Backends: gputypes.BackendsDX12,
			Fallback: fallback,
			Debug:    opts.Debug,
		},
		Swapchain: gpu.SwapchainConfig{
			ImageCount:   SwapchainImages,
			PresentModes: PresentModes,
			Formats:      Formats,
		},
		FramesInFlight: FramesInFlight,
		LoadStages:     a.loadStages,
	})
	return a
}

// Name returns "dx12".
func (a *Adapter) Name() string { return string(backend.KindDX12) }

// AdapterInfo describes the selected adapter. It is zero before Initialize.
func (a *Adapter) AdapterInfo() gpucontext.AdapterInfo {
	if dc := a.Device(); dc != nil {
		return dc.AdapterInfo()
	}
	return gpucontext.AdapterInfo{}
}

// UsingFallback reports whether Initialize settled on the software device.
func (a *Adapter) UsingFallback() bool {
	dc := a.Device()
	return dc != nil && dc.Fallback
}

func (a *Adapter) loadStages(*gpu.DeviceContext) (gpu.Stages, error) {
	vs, err := readDXIL(a.opts.ShaderBase, shaders.DX12Vertex)
	if err != nil {
		return gpu.Stages{}, err
	}
	ps, err := readDXIL(a.opts.ShaderBase, shaders.DX12Pixel)
	if err != nil {
		return gpu.Stages{}, err
	}
	return gpu.Stages{
		Label:         "dx12_triangle",
		Vertex:        vs,
		Fragment:      ps,
		VertexEntry:   shaders.EntryPoint,
		FragmentEntry: shaders.EntryPoint,
	}, nil
}

func readDXIL(base, rel string) ([]uint32, error) {
	b, path, err := shaders.ReadFile(base, rel)
	if err != nil {
		if errors.Is(err, shaders.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", backend.ErrShaderMissing, rel)
		}
		return nil, err
	}
	words, err := shaders.Words(b)
	if err != nil {
		return nil, fmt.Errorf("dx12: %s: %w", path, err)
	}
	return words, nil
}

var (
	_ backend.Adapter      = (*Adapter)(nil)
	_ backend.FrameIndexer = (*Adapter)(nil)
)
