// Command whisp runs the engine and its shader tooling.
package main

import (
	"os"

	_ "github.com/gogpu/whisp/backend/dx12"
	_ "github.com/gogpu/whisp/backend/vulkan"
	"github.com/gogpu/whisp/cmd/whisp/commands"
	"github.com/gogpu/whisp/window"
	"github.com/gogpu/whisp/window/glfw"
)

func main() {
	commands.WindowSystem = func() window.System { return glfw.New() }
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
