package window

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/whisp/backend"
)

// Errors returned by window systems.
var (
	// ErrInit is returned when the windowing library fails to initialize.
	ErrInit = errors.New("window: library initialization failed")

	// ErrCreate is returned when a native window cannot be created.
	ErrCreate = errors.New("window: create failed")
)

// Config describes a window to open.
type Config struct {
	Title  string
	Width  int
	Height int
}

// Window is one native window. It is a render target for a backend
// adapter and a source of input events.
type Window interface {
	backend.Target
	gpucontext.WindowProvider

	// Title returns the title last set.
	Title() string
	SetTitle(title string)

	// ShouldClose reports whether the user asked to close the window.
	ShouldClose() bool
	SetShouldClose(bool)

	// Events returns the window's input event source.
	Events() gpucontext.EventSource

	// Destroy releases the native window. It is idempotent.
	Destroy()
}

// System opens windows and pumps their events. Callbacks registered on a
// window's Events run inside PollEvents.
type System interface {
	Open(cfg Config) (Window, error)
	PollEvents()
}
