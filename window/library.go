package window

import (
	"fmt"
	"sync"
)

// Library reference-counts a process-global windowing library. The first
// Acquire initializes it and the last Release terminates it.
type Library struct {
	mu        sync.Mutex
	refs      int
	init      func() error
	terminate func()
}

// NewLibrary returns a library with the given lifecycle hooks.
func NewLibrary(init func() error, terminate func()) *Library {
	return &Library{init: init, terminate: terminate}
}

// Acquire takes a reference, initializing the library on the first one.
// A failed initialization takes no reference.
func (l *Library) Acquire() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.refs == 0 && l.init != nil {
		if err := l.init(); err != nil {
			return fmt.Errorf("%w: %w", ErrInit, err)
		}
	}
	l.refs++
	return nil
}

// Release drops a reference and terminates the library when none remain.
// Extra releases are ignored.
func (l *Library) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.refs <= 0 {
		return
	}
	l.refs--
	if l.refs == 0 && l.terminate != nil {
		l.terminate()
	}
}

// Refs returns the current reference count.
func (l *Library) Refs() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.refs
}
