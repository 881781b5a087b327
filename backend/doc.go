// Package backend defines the render adapter contract shared by every
// rendering backend, and the registry that maps a backend kind to an
// adapter factory.
//
// # Backend Registration
//
// Backends register themselves from init functions. The null backend is
// always available; the GPU backends are registered by importing their
// packages:
//
//	import (
//		_ "github.com/gogpu/whisp/backend/dx12"
//		_ "github.com/gogpu/whisp/backend/vulkan"
//	)
//
// # Backend Selection
//
// Use ParseKind to turn a user-supplied name into a Kind and New to create
// an adapter:
//
//	kind, _ := backend.ParseKind("VK")
//	a, err := backend.New(kind)
//	if err != nil {
//		return err
//	}
//	if err := a.Initialize(win); err != nil {
//		return err
//	}
//	defer a.Shutdown()
//
// # Frame Protocol
//
// Each frame is BeginFrame, Clear, SetTransform, Draw, EndFrame, Present.
// Calls out of order fail with ErrInvalidState. Errors returned by adapters
// always wrap one of the sentinel errors in this package.
package backend
