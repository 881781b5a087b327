package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/whisp/backend"
)

func newBackendsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List registered backends in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "BACKEND\tDEFAULT")
			def := backend.Default()
			for _, k := range backend.Available() {
				mark := ""
				if k == def {
					mark = "*"
				}
				fmt.Fprintf(w, "%s\t%s\n", k, mark)
			}
			return w.Flush()
		},
	}
}
