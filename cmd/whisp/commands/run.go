package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/whisp"
	"github.com/gogpu/whisp/app"
	"github.com/gogpu/whisp/backend"
	"github.com/gogpu/whisp/backend/dx12"
	"github.com/gogpu/whisp/backend/vulkan"
	"github.com/gogpu/whisp/config"
	"github.com/gogpu/whisp/window"
)

type runOptions struct {
	backend  string
	headless bool
	frames   int
	watch    bool
}

func newRunCommand(g *globalOptions) *cobra.Command {
	o := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the configured windows and run the engine",
		Long: `Run opens every window listed in the config file. A window's own
backend wins over --backend, which wins over the file's top-level backend.

Keys: Enter starts gameplay, Esc returns to the menu, arrows move, left click
scales, right mouse rotates, R hot reloads the shaders.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEngine(cmd, g, o)
		},
	}
	cmd.Flags().StringVarP(&o.backend, "backend", "b", "", "backend for windows that do not set one (dx12, vulkan, null)")
	cmd.Flags().BoolVar(&o.headless, "headless", false, "use headless windows and the null backend")
	cmd.Flags().IntVar(&o.frames, "frames", 0, "stop after this many frames (0 runs until every window closes)")
	cmd.Flags().BoolVar(&o.watch, "watch", false, "hot reload shaders when a source under shaders/src changes")
	return cmd
}

func runEngine(cmd *cobra.Command, g *globalOptions, o *runOptions) error {
	cfg, cfgErr := config.Load(g.configFile)

	levelName := g.logLevel
	if levelName == "" {
		levelName = cfg.Log.Level
	}
	level, err := whisp.ParseLevel(levelName)
	if err != nil {
		return err
	}
	logFile := g.logFile
	if logFile == "" {
		logFile = cfg.Log.File
	}
	sink, err := whisp.OpenLogSink(logFile, level, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	whisp.SetLogger(sink.Logger())
	defer func() {
		whisp.SetLogger(nil)
		sink.Close()
	}()
	log := whisp.Logger()

	if cfgErr != nil {
		log.Warn("config: using defaults", "file", g.configFile, "error", cfgErr)
	}
	if o.watch {
		cfg.Shaders.Watch = true
	}

	opts := app.FromConfig(cfg, o.backend)
	opts.MaxFrames = o.frames
	if o.headless || WindowSystem == nil {
		for i := range opts.Windows {
			opts.Windows[i].Backend = backend.KindNull
		}
		opts.System = window.NewHeadless()
	} else {
		opts.System = WindowSystem()
	}
	opts.NewAdapter = adapterFactory(cfg.Shaders.Base)

	log.Info("whisp: starting", "version", version, "windows", len(opts.Windows), "available", backend.Available())
	a := app.New(opts)
	if err := a.Run(cmd.Context()); err != nil {
		log.Error("whisp: run failed", "error", err)
		return err
	}

	var failed []error
	for _, w := range a.Windows() {
		if w.Err() != nil {
			failed = append(failed, fmt.Errorf("%s: %w", w.Spec.Title, w.Err()))
		}
	}
	return errors.Join(failed...)
}

// adapterFactory builds GPU adapters that look for shader binaries under
// shaderBase; other kinds come from the registry.
func adapterFactory(shaderBase string) func(config.WindowSpec) (backend.Adapter, error) {
	return func(spec config.WindowSpec) (backend.Adapter, error) {
		switch spec.Backend {
		case backend.KindDX12:
			return dx12.New(dx12.Options{ShaderBase: shaderBase}), nil
		case backend.KindVulkan:
			return vulkan.New(vulkan.Options{ShaderBase: shaderBase}), nil
		default:
			return backend.New(spec.Backend)
		}
	}
}
