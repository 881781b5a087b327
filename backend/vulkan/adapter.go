package vulkan

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/vulkan"
	"github.com/gogpu/whisp/backend"
	"github.com/gogpu/whisp/internal/gpu"
	"github.com/gogpu/whisp/shaders"
)

// Swapchain and frame pacing constants.
const (
	SwapchainImages = 3
	FramesInFlight  = 2
)

// PresentModes is the present mode preference: low-latency triple
// buffering when available, vsync otherwise.
var PresentModes = []hal.PresentMode{hal.PresentModeMailbox, hal.PresentModeFifo}

// Formats is the surface format preference.
var Formats = []gputypes.TextureFormat{
	gputypes.TextureFormatBGRA8Unorm,
	gputypes.TextureFormatRGBA8Unorm,
}

// Options configures an Adapter.
type Options struct {
	// API replaces the Vulkan HAL.
	API hal.Backend

	// ShaderBase is the directory shader paths are probed from.
	ShaderBase string

	// Debug enables validation layers.
	Debug bool
}

// Adapter is the Vulkan render adapter.
type Adapter struct {
	*gpu.Renderer
	opts Options
}

// New returns an uninitialized adapter.
func New(opts Options) *Adapter {
	a := &Adapter{opts: opts}
	api := opts.API
	if api == nil {
		api = vulkan.Backend{}
	}
	a.Renderer = gpu.NewRenderer(gpu.RendererConfig{
		Name: string(backend.KindVulkan),
		Device: gpu.DeviceOptions{
			Label:    string(backend.KindVulkan),
			API:      api,
			Backends: gputypes.BackendsVulkan,
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

// Name returns "vulkan".
func (a *Adapter) Name() string { return string(backend.KindVulkan) }

// AdapterInfo describes the selected physical device. It is zero before
// Initialize.
func (a *Adapter) AdapterInfo() gpucontext.AdapterInfo {
	if dc := a.Device(); dc != nil {
		return dc.AdapterInfo()
	}
	return gpucontext.AdapterInfo{}
}

func (a *Adapter) loadStages(*gpu.DeviceContext) (gpu.Stages, error) {
	vs, err := readSPIRV(a.opts.ShaderBase, shaders.VulkanVertex)
	if err != nil {
		return gpu.Stages{}, err
	}
	fs, err := readSPIRV(a.opts.ShaderBase, shaders.VulkanFragment)
	if err != nil {
		return gpu.Stages{}, err
	}
	return gpu.Stages{
		Label:         "vulkan_triangle",
		Vertex:        vs,
		Fragment:      fs,
		VertexEntry:   shaders.EntryPoint,
		FragmentEntry: shaders.EntryPoint,
	}, nil
}

func readSPIRV(base, rel string) ([]uint32, error) {
	b, path, err := shaders.ReadFile(base, rel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", backend.ErrShaderMissing, err)
	}
	words, err := shaders.Words(b)
	if err != nil {
		return nil, fmt.Errorf("vulkan: %s: %w", path, err)
	}
	if len(words) == 0 || words[0] != spirvMagic {
		return nil, fmt.Errorf("vulkan: %s: %w", path, ErrNotSPIRV)
	}
	return words, nil
}

var (
	_ backend.Adapter      = (*Adapter)(nil)
	_ backend.HotReloader  = (*Adapter)(nil)
	_ backend.FrameIndexer = (*Adapter)(nil)
)
