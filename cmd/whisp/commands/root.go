// Package commands implements the whisp command line.
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gogpu/whisp/window"
)

var version = "0.1.0"

// WindowSystem opens the native windows for `whisp run`. When nil, or with
// --headless, windows are headless.
var WindowSystem func() window.System

type globalOptions struct {
	configFile string
	logLevel   string
	logFile    string
}

// NewRootCommand builds the whisp command tree.
func NewRootCommand() *cobra.Command {
	g := &globalOptions{}
	root := &cobra.Command{
		Use:   "whisp",
		Short: "A small multi-window rendering engine",
		Long: `whisp opens the configured windows, renders each with its own
DX12, Vulkan or null backend, and runs the Loading, Menu and Gameplay states.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&g.configFile, "config", "config.json", "config file (JSON, YAML or TOML)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")
	root.PersistentFlags().StringVar(&g.logFile, "log-file", "", "log file (default from config)")

	root.AddCommand(newRunCommand(g))
	root.AddCommand(newShadersCommand())
	root.AddCommand(newBackendsCommand())
	return root
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}
