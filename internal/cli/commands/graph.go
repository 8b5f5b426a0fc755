package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/pirakansa/helmdeps/internal/cli/render"
)

func newGraphCmd(ctx *appContext) *cobra.Command {
	var combined bool

	cmd := &cobra.Command{
		Use:   "graph <chart-dir>",
		Short: "Render the dependency tree as a DOT graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveChart(ctx, args[0])
			if err != nil {
				return err
			}
			if combined {
				return writeOutput(ctx, render.CombinedGraphFileName(root.Name), func(w io.Writer) error {
					return render.CombinedGraph(root, w)
				})
			}
			return writeOutput(ctx, render.GraphFileName(root.Name), func(w io.Writer) error {
				return render.Graph(root, w)
			})
		},
	}
	cmd.Flags().BoolVar(&combined, "combined", false, "merge charts sharing a name into one node")
	return cmd
}
