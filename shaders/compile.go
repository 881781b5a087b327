package shaders

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/dxil"
)

// CompileSPIRV compiles one WGSL stage to a SPIR-V binary.
func CompileSPIRV(src string) ([]byte, error) {
	out, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("shaders: compile spir-v: %w", err)
	}
	return out, nil
}

// CompileDXIL compiles one WGSL stage to a DXIL container. The module's
// first entry point is the one compiled, which is why each stage lives in
// its own source file.
func CompileDXIL(src string) ([]byte, error) {
	ast, err := naga.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("shaders: parse: %w", err)
	}
	module, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return nil, fmt.Errorf("shaders: lower: %w", err)
	}
	out, err := dxil.Compile(module, dxil.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("shaders: compile dxil: %w", err)
	}
	return out, nil
}

// Words reinterprets a little-endian binary as 32-bit words, the form the
// HAL shader module descriptor takes.
func Words(b []byte) ([]uint32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("shaders: binary length %d is not a multiple of 4", len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words, nil
}

// Target selects which artifacts CompileAll produces.
type Target int

const (
	TargetSPIRV Target = 1 << iota
	TargetDXIL

	TargetAll = TargetSPIRV | TargetDXIL
)

// CompileAll compiles both stages for the requested targets and writes the
// artifacts under outRoot at their standard relative paths. Sources are read
// with Source(srcBase, ...). It returns the written paths.
func CompileAll(srcBase, outRoot string, targets Target) ([]string, error) {
	vs, err := Source(srcBase, VertexSource)
	if err != nil {
		return nil, err
	}
	fsrc, err := Source(srcBase, FragmentSource)
	if err != nil {
		return nil, err
	}

	type job struct {
		target  Target
		src     string
		out     string
		compile func(string) ([]byte, error)
	}
	jobs := []job{
		{TargetSPIRV, vs, VulkanVertex, CompileSPIRV},
		{TargetSPIRV, fsrc, VulkanFragment, CompileSPIRV},
		{TargetDXIL, vs, DX12Vertex, CompileDXIL},
		{TargetDXIL, fsrc, DX12Pixel, CompileDXIL},
	}

	var written []string
	for _, j := range jobs {
		if targets&j.target == 0 {
			continue
		}
		bin, err := j.compile(j.src)
		if err != nil {
			return written, fmt.Errorf("%s: %w", j.out, err)
		}
		p := filepath.Join(outRoot, j.out)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return written, fmt.Errorf("shaders: %w", err)
		}
		if err := os.WriteFile(p, bin, 0o644); err != nil {
			return written, fmt.Errorf("shaders: %w", err)
		}
		written = append(written, p)
	}
	return written, nil
}
