// Package dx12 provides the double-buffered Direct3D 12 render adapter.
//
// The adapter uses the gogpu/wgpu DX12 HAL on Windows. When no hardware
// adapter can present to the window, or on platforms without Direct3D 12,
// it falls back to the wgpu software device. Shaders are the precompiled
// DXIL binaries produced by "whisp shaders compile":
//
//	shaders/dx12/triangle_vs.dxil
//	shaders/dx12/triangle_ps.dxil
//
// Import the package for its side effect to make the backend available:
//
//	import _ "github.com/gogpu/whisp/backend/dx12"
package dx12
