package window

import (
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
)

// Headless is a System without a display. Its windows have no native
// handle; input is injected by scheduling events on them, and those events
// are delivered during PollEvents the way a native system delivers them.
type Headless struct {
	mu      sync.Mutex
	lib     *Library
	windows []*HeadlessWindow
	polls   int
}

// NewHeadless returns an empty headless system.
func NewHeadless() *Headless {
	return &Headless{lib: NewLibrary(nil, nil)}
}

// Open creates a headless window.
func (h *Headless) Open(cfg Config) (Window, error) {
	if cfg.Width < 0 || cfg.Height < 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrCreate, cfg.Width, cfg.Height)
	}
	if err := h.lib.Acquire(); err != nil {
		return nil, err
	}
	w := &HeadlessWindow{sys: h, title: cfg.Title, width: cfg.Width, height: cfg.Height}
	h.mu.Lock()
	h.windows = append(h.windows, w)
	h.mu.Unlock()
	return w, nil
}

// PollEvents runs the events scheduled for this poll on every window and
// delivers everything queued.
func (h *Headless) PollEvents() {
	h.mu.Lock()
	h.polls++
	poll := h.polls
	windows := append([]*HeadlessWindow(nil), h.windows...)
	h.mu.Unlock()

	for _, w := range windows {
		w.deliver(poll)
	}
}

// Polls returns how many times PollEvents ran.
func (h *Headless) Polls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.polls
}

// Windows returns the windows opened so far, including destroyed ones.
func (h *Headless) Windows() []*HeadlessWindow {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*HeadlessWindow(nil), h.windows...)
}

// Library returns the reference count shared by the system's windows.
func (h *Headless) Library() *Library { return h.lib }

// HeadlessWindow is a window of a Headless system.
type HeadlessWindow struct {
	Dispatcher

	sys    *Headless
	title  string
	width  int
	height int
	close  bool
	gone   bool

	queue     []func()
	scheduled map[int][]func(*HeadlessWindow)
}

func (w *HeadlessWindow) NativeHandle() (uintptr, uintptr) { return 0, 0 }
func (w *HeadlessWindow) FramebufferSize() (int, int)      { return w.width, w.height }
func (w *HeadlessWindow) Size() (int, int)                 { return w.width, w.height }
func (w *HeadlessWindow) ScaleFactor() float64             { return 1 }
func (w *HeadlessWindow) RequestRedraw()                   {}

func (w *HeadlessWindow) Title() string         { return w.title }
func (w *HeadlessWindow) SetTitle(title string) { w.title = title }

func (w *HeadlessWindow) ShouldClose() bool     { return w.close || w.gone }
func (w *HeadlessWindow) SetShouldClose(v bool) { w.close = v }

// Events returns the window's dispatcher.
func (w *HeadlessWindow) Events() gpucontext.EventSource { return &w.Dispatcher }

// Destroy releases the window's library reference.
func (w *HeadlessWindow) Destroy() {
	if w.gone {
		return
	}
	w.gone = true
	w.sys.lib.Release()
}

// At schedules fn to run at the start of the given poll (1-based).
func (w *HeadlessWindow) At(poll int, fn func(*HeadlessWindow)) {
	if w.scheduled == nil {
		w.scheduled = make(map[int][]func(*HeadlessWindow))
	}
	w.scheduled[poll] = append(w.scheduled[poll], fn)
}

// CloseAt schedules a close request for the given poll.
func (w *HeadlessWindow) CloseAt(poll int) {
	w.At(poll, func(w *HeadlessWindow) { w.SetShouldClose(true) })
}

// Press queues a key press.
func (w *HeadlessWindow) Press(k gpucontext.Key) {
	w.queue = append(w.queue, func() { w.EmitKey(k, 0, true) })
}

// Release queues a key release.
func (w *HeadlessWindow) Release(k gpucontext.Key) {
	w.queue = append(w.queue, func() { w.EmitKey(k, 0, false) })
}

// PressButton queues a mouse button press.
func (w *HeadlessWindow) PressButton(b gpucontext.MouseButton) {
	w.queue = append(w.queue, func() { w.EmitMouseButton(b, true) })
}

// ReleaseButton queues a mouse button release.
func (w *HeadlessWindow) ReleaseButton(b gpucontext.MouseButton) {
	w.queue = append(w.queue, func() { w.EmitMouseButton(b, false) })
}

// Resize queues a framebuffer resize.
func (w *HeadlessWindow) Resize(width, height int) {
	w.queue = append(w.queue, func() {
		w.width, w.height = width, height
		w.EmitResize(width, height)
	})
}

func (w *HeadlessWindow) deliver(poll int) {
	if w.gone {
		return
	}
	for _, fn := range w.scheduled[poll] {
		fn(w)
	}
	delete(w.scheduled, poll)
	queue := w.queue
	w.queue = nil
	for _, fn := range queue {
		fn()
	}
}

var (
	_ System = (*Headless)(nil)
	_ Window = (*HeadlessWindow)(nil)
)
