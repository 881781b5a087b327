// Package config loads the engine configuration: the windows to open and
// their backends, the timestep, shader watching and logging.
//
// Files may be JSON, YAML or TOML. Any key can be overridden from the
// environment with the WHISP_ prefix, e.g. WHISP_TIMESTEP_FIXED=false.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	"github.com/gogpu/whisp"
	"github.com/gogpu/whisp/backend"
)

var (
	// ErrNoWindows is returned when the configuration is missing or lists
	// no windows. The returned config still holds one default window.
	ErrNoWindows = errors.New("config: no windows configured")

	// ErrInvalid is returned when the file cannot be parsed. The returned
	// config holds the defaults and one default window.
	ErrInvalid = errors.New("config: invalid configuration")
)

// Defaults for a window.
const (
	DefaultTitle         = "WhispEngine"
	DefaultWidth         = 1280
	DefaultHeight        = 720
	DefaultTitleTemplate = "{title} | {backend} | {fps} FPS"
)

// DefaultClearColor is the clear color of a window that sets none.
var DefaultClearColor = backend.Color{R: 0.08, G: 0.08, B: 0.12, A: 1}

// Config is the whole engine configuration.
type Config struct {
	// Backend is used by windows that do not name one.
	Backend  string   `mapstructure:"backend"`
	Windows  []Window `mapstructure:"windows"`
	Timestep Timestep `mapstructure:"timestep"`
	Shaders  Shaders  `mapstructure:"shaders"`
	Log      Log      `mapstructure:"log"`
}

// Window describes one window as written in the file.
type Window struct {
	Backend       string    `mapstructure:"backend"`
	Title         string    `mapstructure:"title"`
	Width         int       `mapstructure:"width"`
	Height        int       `mapstructure:"height"`
	ClearColor    []float32 `mapstructure:"clearColor"`
	TitleTemplate string    `mapstructure:"titleTemplate"`
}

// Timestep controls the simulation step.
type Timestep struct {
	Fixed    bool    `mapstructure:"fixed"`
	FixedDt  float32 `mapstructure:"fixedDt"`
	MaxSteps int     `mapstructure:"maxSteps"`
	MaxDt    float32 `mapstructure:"maxDt"`
}

// Shaders controls shader source watching.
type Shaders struct {
	// Watch hot reloads shaders whenever a source under shaders/src changes.
	Watch bool `mapstructure:"watch"`

	// Base is the directory shader paths are probed from.
	Base string `mapstructure:"base"`
}

// Log controls the engine log sink.
type Log struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Defaults returns the configuration used when nothing is set. It has no
// windows; DefaultWindow is added by Load when none are configured.
func Defaults() *Config {
	return &Config{
		Backend: string(backend.KindDX12),
		Timestep: Timestep{
			Fixed:    true,
			FixedDt:  1.0 / 60.0,
			MaxSteps: 5,
			MaxDt:    0.1,
		},
		Log: Log{File: "engine.log", Level: "info"},
	}
}

// DefaultWindow returns the single window used when none are configured.
func DefaultWindow() Window {
	return Window{
		Title:  DefaultTitle,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		ClearColor: []float32{
			DefaultClearColor.R, DefaultClearColor.G, DefaultClearColor.B, DefaultClearColor.A,
		},
	}
}

// Load reads the configuration at path. An empty path searches for
// whisp.{json,yaml,toml} in the working directory. Load always returns a
// usable config; a non-nil error wraps ErrNoWindows or ErrInvalid and
// should be logged.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	v := viper.New()
	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("whisp")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("WHISP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var loadErr error
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			loadErr = fmt.Errorf("%w: %w", ErrNoWindows, err)
		} else {
			loadErr = fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	// Defaults and environment still apply without a file.
	if err := v.Unmarshal(cfg); err != nil {
		cfg = Defaults()
		if loadErr == nil {
			loadErr = fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}

	cfg.normalize()
	if len(cfg.Windows) == 0 {
		if loadErr == nil {
			loadErr = ErrNoWindows
		}
		cfg.Windows = []Window{DefaultWindow()}
	}
	if loadErr != nil {
		whisp.Logger().Warn("config: using default window", "err", loadErr)
	} else {
		whisp.Logger().Info("config: loaded", "file", v.ConfigFileUsed(), "windows", len(cfg.Windows))
	}
	return cfg, loadErr
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("backend", cfg.Backend)
	v.SetDefault("timestep.fixed", cfg.Timestep.Fixed)
	v.SetDefault("timestep.fixedDt", cfg.Timestep.FixedDt)
	v.SetDefault("timestep.maxSteps", cfg.Timestep.MaxSteps)
	v.SetDefault("timestep.maxDt", cfg.Timestep.MaxDt)
	v.SetDefault("shaders.watch", cfg.Shaders.Watch)
	v.SetDefault("shaders.base", cfg.Shaders.Base)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.level", cfg.Log.Level)
}

func (c *Config) normalize() {
	d := Defaults()
	if c.Timestep.FixedDt <= 0 {
		c.Timestep.FixedDt = d.Timestep.FixedDt
	}
	if c.Timestep.MaxSteps <= 0 {
		c.Timestep.MaxSteps = d.Timestep.MaxSteps
	}
	if c.Timestep.MaxDt <= 0 {
		c.Timestep.MaxDt = d.Timestep.MaxDt
	}
}
