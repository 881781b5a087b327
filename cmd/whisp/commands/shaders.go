package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/whisp/shaders"
)

func newShadersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shaders",
		Short: "Shader tooling",
	}
	cmd.AddCommand(newShadersCompileCommand())
	return cmd
}

func newShadersCompileCommand() *cobra.Command {
	var src, out, target string
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile the WGSL sources to SPIR-V and DXIL",
		Long: `Compile reads shaders/src/*.wgsl (falling back to the embedded copies)
and writes shaders/vulkan/*.spv and shaders/dx12/*.dxil under --out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := parseTarget(target)
			if err != nil {
				return err
			}
			written, err := shaders.CompileAll(src, out, t)
			for _, p := range written {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&src, "src", "", "directory shaders/src is probed from (default: working directory)")
	cmd.Flags().StringVarP(&out, "out", "o", ".", "root directory for the compiled artifacts")
	cmd.Flags().StringVar(&target, "target", "all", "artifacts to build: spirv, dxil or all")
	return cmd
}

func parseTarget(s string) (shaders.Target, error) {
	switch s {
	case "spirv", "vulkan":
		return shaders.TargetSPIRV, nil
	case "dxil", "dx12":
		return shaders.TargetDXIL, nil
	case "all", "":
		return shaders.TargetAll, nil
	default:
		return 0, fmt.Errorf("unknown shader target %q", s)
	}
}
