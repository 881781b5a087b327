package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/whisp"
	"github.com/gogpu/whisp/backend"
	"github.com/gogpu/whisp/config"
	"github.com/gogpu/whisp/game"
	"github.com/gogpu/whisp/input"
	"github.com/gogpu/whisp/shaders"
	"github.com/gogpu/whisp/window"
)

// ErrNoWindows is returned by Initialize when no configured window could be
// opened with a working adapter.
var ErrNoWindows = errors.New("app: no window could be opened")

// ErrNoSystem is returned by Initialize when Options.System is nil.
var ErrNoSystem = errors.New("app: no window system")

// ReloadKey triggers a shader hot reload.
const ReloadKey = gpucontext.KeyR

// Options configures an Application.
type Options struct {
	Windows  []config.WindowSpec
	Timestep config.Timestep
	System   window.System

	// NewAdapter creates the adapter for a window. It defaults to
	// backend.New(spec.Backend).
	NewAdapter func(spec config.WindowSpec) (backend.Adapter, error)

	// WatchDir, if set, is watched for shader source changes, each of
	// which triggers the same hot reload as ReloadKey.
	WatchDir string

	// MaxFrames stops the loop after that many ticks. Zero runs until
	// every window is closed.
	MaxFrames int

	// Initial is the first state. It defaults to game.Loading.
	Initial game.State

	// Now is the clock source. It defaults to time.Now.
	Now func() time.Time
}

// FromConfig builds Options from a loaded configuration. backendOverride is
// the command line backend, used by windows that do not name one.
func FromConfig(cfg *config.Config, backendOverride string) Options {
	opts := Options{
		Windows:  cfg.Resolve(backendOverride),
		Timestep: cfg.Timestep,
	}
	if cfg.Shaders.Watch {
		p, err := shaders.Resolve(cfg.Shaders.Base, filepath.Join(shaders.SourceDir, shaders.VertexSource))
		if err != nil {
			whisp.Logger().Warn("app: shader sources not found, watching disabled", "error", err)
		} else {
			opts.WatchDir = filepath.Dir(p)
		}
	}
	return opts
}

// Application owns the windows, the input state, the transform and the
// state machine. It implements game.Context.
type Application struct {
	opts Options

	input     *input.State
	transform *game.Transform
	machine   game.Machine
	clock     *Clock
	stepper   Stepper
	windows   []*WindowContext
	watcher   *ShaderWatcher
	reload    input.Edge
	ticks     int

	initialized bool
	shutdown    bool
}

// New returns an application that has not opened anything yet.
func New(opts Options) *Application {
	if opts.NewAdapter == nil {
		opts.NewAdapter = func(spec config.WindowSpec) (backend.Adapter, error) {
			return backend.New(spec.Backend)
		}
	}
	if opts.Initial == nil {
		opts.Initial = &game.Loading{}
	}
	return &Application{
		opts:      opts,
		input:     input.New(),
		transform: game.NewTransform(),
		clock:     NewClock(opts.Timestep.MaxDt, opts.Now),
		stepper:   Stepper{FixedDt: opts.Timestep.FixedDt, MaxSteps: opts.Timestep.MaxSteps},
	}
}

// Input returns the input state shared by all windows.
func (a *Application) Input() *input.State { return a.input }

// Transform returns the drawable's transform.
func (a *Application) Transform() *game.Transform { return a.transform }

// ChangeState queues a state transition.
func (a *Application) ChangeState(next game.State) { a.machine.ChangeState(next) }

// Machine returns the state machine.
func (a *Application) Machine() *game.Machine { return &a.machine }

// Windows returns every window that was opened, including closed ones.
func (a *Application) Windows() []*WindowContext { return a.windows }

// Ticks returns the number of loop iterations run.
func (a *Application) Ticks() int { return a.ticks }

// Initialize opens every configured window and initializes its adapter.
// A window that fails is logged and skipped; Initialize fails only when
// none succeed.
func (a *Application) Initialize() error {
	if a.initialized {
		return nil
	}
	if a.opts.System == nil {
		return ErrNoSystem
	}
	var errs []error
	for _, spec := range a.opts.Windows {
		wc, err := a.open(spec)
		if err != nil {
			whisp.Logger().Error("app: window failed", "window", spec.Title, "backend", spec.Backend, "error", err)
			errs = append(errs, err)
			continue
		}
		a.windows = append(a.windows, wc)
	}
	if len(a.windows) == 0 {
		if len(errs) == 0 {
			return ErrNoWindows
		}
		return fmt.Errorf("%w: %w", ErrNoWindows, errors.Join(errs...))
	}

	if a.opts.WatchDir != "" {
		w, err := WatchShaders(a.opts.WatchDir)
		if err != nil {
			whisp.Logger().Warn("app: shader watching disabled", "error", err)
		} else {
			a.watcher = w
			whisp.Logger().Info("app: watching shaders", "dir", w.Dir())
		}
	}

	a.machine.ChangeState(a.opts.Initial)
	a.machine.ApplyPending(a)
	a.initialized = true
	return nil
}

func (a *Application) open(spec config.WindowSpec) (*WindowContext, error) {
	w, err := a.opts.System.Open(window.Config{Title: spec.Title, Width: spec.Width, Height: spec.Height})
	if err != nil {
		return nil, err
	}
	ad, err := a.opts.NewAdapter(spec)
	if err != nil {
		w.Destroy()
		return nil, fmt.Errorf("%s: %w", spec.Backend, err)
	}
	if err := ad.Initialize(w); err != nil {
		ad.Shutdown()
		w.Destroy()
		return nil, fmt.Errorf("%s: %w", spec.Backend, err)
	}
	a.input.Attach(w.Events())
	whisp.Logger().Info("app: window ready", "window", spec.Title, "backend", ad.Name(),
		"width", spec.Width, "height", spec.Height)
	return &WindowContext{Spec: spec, Window: w, Adapter: ad}, nil
}

// Run initializes the application if needed and runs the loop until every
// window is closed, ctx is cancelled or MaxFrames ticks have run. It always
// shuts down before returning.
func (a *Application) Run(ctx context.Context) error {
	if err := a.Initialize(); err != nil {
		return err
	}
	defer a.Shutdown()

	a.clock.Reset()
	for {
		if err := ctx.Err(); err != nil {
			whisp.Logger().Info("app: run cancelled", "reason", err)
			return nil
		}
		if !a.Tick() {
			return nil
		}
		if a.opts.MaxFrames > 0 && a.ticks >= a.opts.MaxFrames {
			return nil
		}
	}
}

// Tick runs one loop iteration. It reports whether any window is still open.
func (a *Application) Tick() bool {
	a.opts.System.PollEvents()
	for _, w := range a.windows {
		if w.Open() && w.Window.ShouldClose() {
			whisp.Logger().Info("app: window closed", "window", w.Spec.Title)
			w.close(nil)
		}
	}
	if !a.anyOpen() {
		return false
	}
	a.ticks++

	dt := a.clock.Tick()
	elapsed := a.clock.Raw()
	key := a.reload.Rising(a.input.KeyDown(ReloadKey))
	if key || (a.watcher != nil && a.watcher.Take()) {
		a.ReloadShaders()
	}
	a.step(dt)

	mvp := a.transform.Matrix()
	for _, w := range a.windows {
		if !w.Open() {
			continue
		}
		if err := w.render(a, &a.machine, mvp); err != nil {
			whisp.Logger().Error("app: window stopped", "window", w.Spec.Title, "backend", w.Adapter.Name(), "error", err)
			w.close(err)
			continue
		}
		w.publish(elapsed)
	}
	return a.anyOpen()
}

func (a *Application) step(dt float32) {
	if !a.opts.Timestep.Fixed {
		a.machine.Update(a, dt)
		a.machine.ApplyPending(a)
		return
	}
	a.stepper.Advance(dt, func(step float32) {
		a.machine.Update(a, step)
		a.machine.ApplyPending(a)
	})
}

// ReloadShaders hot reloads every open window whose adapter supports it.
// Failures are logged; the previous pipelines stay active.
func (a *Application) ReloadShaders() {
	for _, w := range a.windows {
		if !w.Open() {
			continue
		}
		r, ok := w.Adapter.(backend.HotReloader)
		if !ok {
			whisp.Logger().Debug("app: hot reload not supported", "window", w.Spec.Title, "backend", w.Adapter.Name())
			continue
		}
		if err := r.HotReloadShaders(); err != nil {
			whisp.Logger().Warn("app: hot reload failed", "window", w.Spec.Title, "error", err)
			continue
		}
		whisp.Logger().Info("app: shaders reloaded", "window", w.Spec.Title)
	}
}

func (a *Application) anyOpen() bool {
	for _, w := range a.windows {
		if w.Open() {
			return true
		}
	}
	return false
}

// Shutdown stops the watcher, then shuts down every adapter and destroys
// its window. It is idempotent.
func (a *Application) Shutdown() {
	if a.shutdown {
		return
	}
	a.shutdown = true
	if a.watcher != nil {
		a.watcher.Close()
	}
	for _, w := range a.windows {
		w.close(nil)
	}
	whisp.Logger().Info("app: shutdown complete", "ticks", a.ticks)
}

var _ game.Context = (*Application)(nil)
