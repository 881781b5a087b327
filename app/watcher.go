package app

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/whisp"
)

// ShaderWatcher watches a shader source directory and raises a flag when a
// .wgsl file is written, created or renamed. The flag is consumed by the
// render loop with Take.
type ShaderWatcher struct {
	w       *fsnotify.Watcher
	dir     string
	pending atomic.Bool
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// WatchShaders starts watching dir.
func WatchShaders(dir string) (*ShaderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("app: shader watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("app: watch %s: %w", dir, err)
	}
	sw := &ShaderWatcher{w: w, dir: dir, done: make(chan struct{})}
	sw.wg.Add(1)
	go sw.loop()
	return sw, nil
}

func (sw *ShaderWatcher) loop() {
	defer sw.wg.Done()
	for {
		select {
		case <-sw.done:
			return
		case ev, ok := <-sw.w.Events:
			if !ok {
				return
			}
			if filepath.Ext(ev.Name) != ".wgsl" {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			whisp.Logger().Debug("app: shader source changed", "file", ev.Name, "op", ev.Op.String())
			sw.pending.Store(true)
		case err, ok := <-sw.w.Errors:
			if !ok {
				return
			}
			whisp.Logger().Warn("app: shader watcher", "dir", sw.dir, "error", err)
		}
	}
}

// Take reports whether a change was seen since the last call and clears
// the flag.
func (sw *ShaderWatcher) Take() bool { return sw.pending.Swap(false) }

// Dir returns the watched directory.
func (sw *ShaderWatcher) Dir() string { return sw.dir }

// Close stops the watcher. It is idempotent.
func (sw *ShaderWatcher) Close() error {
	var err error
	sw.once.Do(func() {
		close(sw.done)
		err = sw.w.Close()
		sw.wg.Wait()
	})
	return err
}
