// Package vulkan provides the triple-buffered Vulkan render adapter with
// runtime shader hot reload.
//
// Initialize loads the precompiled SPIR-V binaries
//
//	shaders/vulkan/triangle.vert.spv
//	shaders/vulkan/triangle.frag.spv
//
// probed from the working directory and up to three parents.
// HotReloadShaders recompiles the WGSL sources under shaders/src with naga
// and swaps the pipeline only if the new one builds.
//
// There is no software fallback: Initialize fails with
// backend.ErrNoDevice when no hardware adapter can present to the window.
package vulkan
