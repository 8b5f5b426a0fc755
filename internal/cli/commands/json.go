package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/pirakansa/helmdeps/internal/cli/render"
)

func newJSONCmd(ctx *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "json <chart-dir>",
		Short: "Render the dependency tree as nested JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveChart(ctx, args[0])
			if err != nil {
				return err
			}
			return writeOutput(ctx, render.JSONFileName(root.Name), func(w io.Writer) error {
				return render.JSON(root, w)
			})
		},
	}
}
