// Package whisp is a small real-time rendering engine built on the gogpu
// HAL.
//
// The engine opens one or more native windows, binds each to a render
// backend (DX12, Vulkan or a null backend used for headless runs and
// tests), and drives them from a single cooperative frame loop:
//
//	poll events -> fixed/variable update -> apply pending state -> render every window
//
// # Packages
//
//   - backend: the render adapter contract, backend tags and the factory
//   - backend/dx12, backend/vulkan: the two GPU backends
//   - game: the state machine and the Loading, Menu and Gameplay states
//   - input: keyboard and mouse state with edge detection
//   - app: the frame orchestrator
//   - config: window and timestep configuration
//   - window, window/glfw: native windows and the headless window
//   - shaders: shader sources, artifact paths and WGSL compilation
//
// # Logging
//
// The engine is silent unless a logger is installed with [SetLogger].
// [OpenLogSink] builds the usual engine sink that writes to the console
// and to engine.log at the same time.
package whisp
