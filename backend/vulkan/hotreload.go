package vulkan

import (
	"fmt"

	"github.com/gogpu/whisp/backend"
	"github.com/gogpu/whisp/internal/gpu"
	"github.com/gogpu/whisp/shaders"
)

// HotReloadShaders recompiles the on-disk WGSL sources and swaps the
// pipeline. Any failure leaves the active pipeline in place and is
// returned wrapped in backend.ErrHotReload.
func (a *Adapter) HotReloadShaders() error {
	stages, err := a.compileSources()
	if err != nil {
		gpu.Logger().Warn("vulkan: shader hot reload failed", "err", err)
		return fmt.Errorf("%w: %w", backend.ErrHotReload, err)
	}
	if err := a.SwapStages(stages); err != nil {
		gpu.Logger().Warn("vulkan: shader hot reload failed", "err", err)
		return err
	}
	gpu.Logger().Info("vulkan: shaders reloaded")
	return nil
}

func (a *Adapter) compileSources() (gpu.Stages, error) {
	vs, err := compileStage(a.opts.ShaderBase, shaders.VertexSource)
	if err != nil {
		return gpu.Stages{}, err
	}
	fs, err := compileStage(a.opts.ShaderBase, shaders.FragmentSource)
	if err != nil {
		return gpu.Stages{}, err
	}
	return gpu.Stages{
		Label:         "vulkan_triangle_reload",
		Vertex:        vs,
		Fragment:      fs,
		VertexEntry:   shaders.EntryPoint,
		FragmentEntry: shaders.EntryPoint,
	}, nil
}

func compileStage(base, name string) ([]uint32, error) {
	src, err := shaders.DiskSource(base, name)
	if err != nil {
		return nil, err
	}
	bin, err := shaders.CompileSPIRV(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return shaders.Words(bin)
}
