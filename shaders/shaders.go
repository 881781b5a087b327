// Package shaders owns the engine's shader sources and the compiled
// artifacts each backend loads at startup.
//
// WGSL sources are embedded in the binary and also looked up on disk under
// shaders/src so they can be edited while the engine runs. Compiled
// artifacts live at fixed paths relative to the working directory:
//
//	shaders/vulkan/triangle.vert.spv   shaders/vulkan/triangle.frag.spv
//	shaders/dx12/triangle_vs.dxil      shaders/dx12/triangle_ps.dxil
//
// Every lookup probes the working directory and up to three parent
// directories, so binaries started from bin/ or cmd/whisp still find them.
package shaders

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed src/*.wgsl
var sources embed.FS

// EntryPoint is the entry point name of every stage.
const EntryPoint = "main"

// WGSL source file names.
const (
	VertexSource   = "triangle.vert.wgsl"
	FragmentSource = "triangle.frag.wgsl"
)

// Artifact and source locations, relative to a probe root.
const (
	SourceDir      = "shaders/src"
	VulkanVertex   = "shaders/vulkan/triangle.vert.spv"
	VulkanFragment = "shaders/vulkan/triangle.frag.spv"
	DX12Vertex     = "shaders/dx12/triangle_vs.dxil"
	DX12Pixel      = "shaders/dx12/triangle_ps.dxil"
)

// ProbeDirs are the directories tried, in order, relative to the base
// directory when resolving a path.
var ProbeDirs = []string{".", "..", filepath.Join("..", ".."), filepath.Join("..", "..", "..")}

// ErrNotFound is returned when a path does not exist in any probe directory.
var ErrNotFound = errors.New("shaders: file not found")

// Resolve returns the first existing path for rel under base joined with
// each of ProbeDirs. An empty base means the working directory.
func Resolve(base, rel string) (string, error) {
	if base == "" {
		base = "."
	}
	for _, dir := range ProbeDirs {
		p := filepath.Join(base, dir, rel)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, rel)
}

// ReadFile resolves rel and reads it. The resolved path is returned for
// logging.
func ReadFile(base, rel string) ([]byte, string, error) {
	p, err := Resolve(base, rel)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, p, fmt.Errorf("shaders: read %s: %w", p, err)
	}
	return data, p, nil
}

// Embedded returns the built-in copy of a WGSL source.
func Embedded(name string) (string, error) {
	data, err := fs.ReadFile(sources, "src/"+name)
	if err != nil {
		return "", fmt.Errorf("%w: embedded %s", ErrNotFound, name)
	}
	return string(data), nil
}

// Source returns the WGSL source for name, preferring the on-disk copy under
// SourceDir and falling back to the embedded one.
func Source(base, name string) (string, error) {
	data, _, err := ReadFile(base, filepath.Join(SourceDir, name))
	if err == nil {
		return string(data), nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}
	return Embedded(name)
}

// DiskSource returns the on-disk WGSL source for name and never falls back
// to the embedded copy. Hot reload uses it so edits are what get compiled.
func DiskSource(base, name string) (string, error) {
	data, _, err := ReadFile(base, filepath.Join(SourceDir, name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
