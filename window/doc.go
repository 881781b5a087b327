// Package window defines the native window abstraction the engine renders
// into, the reference-counted lifetime of the windowing library, and a
// headless implementation driven by scripted events.
//
// The GLFW implementation lives in package window/glfw so that nothing
// outside it needs cgo.
package window
