package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/whisp/backend"
)

// SwapchainConfig fixes the swapchain shape for a backend.
type SwapchainConfig struct {
	// ImageCount is the number of presentable images N.
	ImageCount int

	// PresentModes in preference order. Fifo is used when none is supported.
	PresentModes []hal.PresentMode

	// Formats in preference order. The first supported format is used;
	// if none is supported the surface's first format is.
	Formats []gputypes.TextureFormat
}

// Swapchain is the ring of N presentable images of a surface. The current
// image index is advanced only by Present and always lies in [0, N).
type Swapchain struct {
	surface hal.Surface
	device  hal.Device
	cfg     SwapchainConfig

	format      gputypes.TextureFormat
	presentMode hal.PresentMode
	width       uint32
	height      uint32

	index      int
	acquired   hal.SurfaceTexture
	suboptimal bool
	stale      bool
	configured bool
}

// NewSwapchain configures dc's surface at the given framebuffer size.
func NewSwapchain(dc *DeviceContext, cfg SwapchainConfig, width, height int) (*Swapchain, error) {
	if cfg.ImageCount < 1 {
		return nil, fmt.Errorf("gpu: swapchain image count %d", cfg.ImageCount)
	}
	var supportedFormats []gputypes.TextureFormat
	var supportedModes []hal.PresentMode
	if dc.Caps != nil {
		supportedFormats = dc.Caps.Formats
		supportedModes = dc.Caps.PresentModes
	}
	format, err := ChooseFormat(cfg.Formats, supportedFormats)
	if err != nil {
		return nil, err
	}
	s := &Swapchain{
		surface:     dc.Surface,
		device:      dc.Device,
		cfg:         cfg,
		format:      format,
		presentMode: ChoosePresentMode(cfg.PresentModes, supportedModes),
	}
	if err := s.configure(width, height); err != nil {
		return nil, err
	}
	return s, nil
}

// ChooseFormat returns the first preferred format the surface supports.
func ChooseFormat(preferred, supported []gputypes.TextureFormat) (gputypes.TextureFormat, error) {
	for _, p := range preferred {
		for _, s := range supported {
			if p == s {
				return p, nil
			}
		}
	}
	if len(supported) > 0 {
		return supported[0], nil
	}
	if len(preferred) > 0 {
		return preferred[0], nil
	}
	return 0, errors.New("gpu: no surface format available")
}

// ChoosePresentMode returns the first preferred mode the surface supports,
// or Fifo, which every surface must support.
func ChoosePresentMode(preferred, supported []hal.PresentMode) hal.PresentMode {
	for _, p := range preferred {
		for _, s := range supported {
			if p == s {
				return p
			}
		}
	}
	return hal.PresentModeFifo
}

func (s *Swapchain) configure(width, height int) error {
	if width <= 0 || height <= 0 {
		s.stale = true
		return nil
	}
	if s.configured {
		s.surface.Unconfigure(s.device)
		s.configured = false
	}
	err := s.surface.Configure(s.device, &hal.SurfaceConfiguration{
		Width:       uint32(width),
		Height:      uint32(height),
		Format:      s.format,
		Usage:       gputypes.TextureUsageRenderAttachment,
		PresentMode: s.presentMode,
		AlphaMode:   hal.CompositeAlphaModeOpaque,
	})
	if err != nil {
		return fmt.Errorf("gpu: configure surface: %w", err)
	}
	s.width, s.height = uint32(width), uint32(height)
	s.configured = true
	s.stale = false
	s.suboptimal = false
	slogger().Debug("gpu: swapchain configured",
		"width", width, "height", height, "images", s.cfg.ImageCount,
		"format", s.format, "present_mode", s.presentMode)
	return nil
}

// Resize reconfigures the surface at the next Acquire if the size changed.
func (s *Swapchain) Resize(width, height int) {
	if width != int(s.width) || height != int(s.height) || !s.configured {
		s.stale = true
		s.width, s.height = uint32(max(width, 0)), uint32(max(height, 0))
	}
}

// Acquire returns the current image and a fresh view of it. The view is
// owned by the caller. backend.ErrFrameSkipped means there is nothing to
// render into this frame (minimized window, acquire timeout). An outdated surface is reconfigured and acquired
// once more before giving up.
func (s *Swapchain) Acquire() (hal.TextureView, error) {
	if s.acquired != nil {
		return nil, errors.New("gpu: swapchain image already acquired")
	}
	if s.stale {
		if err := s.configure(int(s.width), int(s.height)); err != nil {
			return nil, err
		}
		if s.stale {
			return nil, backend.ErrFrameSkipped
		}
	}

	acquired, err := s.surface.AcquireTexture(nil)
	if errors.Is(err, hal.ErrSurfaceOutdated) {
		if err := s.configure(int(s.width), int(s.height)); err != nil {
			return nil, err
		}
		acquired, err = s.surface.AcquireTexture(nil)
	}
	switch {
	case errors.Is(err, hal.ErrTimeout), errors.Is(err, hal.ErrNotReady), errors.Is(err, hal.ErrSurfaceOutdated):
		s.stale = true
		return nil, backend.ErrFrameSkipped
	case err != nil:
		return nil, fmt.Errorf("gpu: acquire: %w", err)
	case acquired == nil || acquired.Texture == nil:
		return nil, backend.ErrFrameSkipped
	}

	view, err := s.device.CreateTextureView(acquired.Texture, &hal.TextureViewDescriptor{
		Label:           "swapchain_view",
		Format:          s.format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		s.surface.DiscardTexture(acquired.Texture)
		return nil, fmt.Errorf("gpu: create swapchain view: %w", err)
	}
	s.acquired = acquired.Texture
	s.suboptimal = acquired.Suboptimal
	return view, nil
}

// Present queues the acquired image for display and advances the image
// index. A suboptimal or outdated surface is tolerated and reconfigured
// before the next Acquire; any other failure is returned and the index is
// left where it was.
func (s *Swapchain) Present(queue hal.Queue) error {
	if s.acquired == nil {
		return errors.New("gpu: present without acquired image")
	}
	tex := s.acquired
	s.acquired = nil

	err := queue.Present(s.surface, tex, nil)
	if err != nil && !errors.Is(err, hal.ErrSurfaceOutdated) {
		return fmt.Errorf("%w: %w", backend.ErrPresent, err)
	}
	if err != nil || s.suboptimal {
		slogger().Debug("gpu: swapchain suboptimal, reconfiguring", "err", err)
		s.stale = true
	}
	s.index = (s.index + 1) % s.cfg.ImageCount
	return nil
}

// Discard drops an acquired image without presenting it.
func (s *Swapchain) Discard() {
	if s.acquired != nil {
		s.surface.DiscardTexture(s.acquired)
		s.acquired = nil
	}
}

// Index returns the current image index.
func (s *Swapchain) Index() int { return s.index }

// ImageCount returns N.
func (s *Swapchain) ImageCount() int { return s.cfg.ImageCount }

// Format returns the configured surface format.
func (s *Swapchain) Format() gputypes.TextureFormat { return s.format }

// PresentMode returns the configured present mode.
func (s *Swapchain) PresentMode() hal.PresentMode { return s.presentMode }

// Destroy discards any acquired image and unconfigures the surface.
func (s *Swapchain) Destroy() {
	if s == nil {
		return
	}
	s.Discard()
	if s.configured {
		s.surface.Unconfigure(s.device)
		s.configured = false
	}
}
