package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pirakansa/helmdeps/internal/cli/chart"
	"github.com/pirakansa/helmdeps/internal/cli/shared"
)

type appContext struct {
	outputDir string
	verbose   bool
	log       *slog.Logger
}

func NewRootCmd(version string) *cobra.Command {
	ctx := &appContext{}
	cmd := &cobra.Command{
		Use:   "helmdeps",
		Short: "Resolve and visualize Helm chart dependency trees",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx.log = shared.NewLogger(ctx.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&ctx.outputDir, "output-dir", ".", "directory the rendered file is written to")
	cmd.PersistentFlags().BoolVarP(&ctx.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newGraphCmd(ctx))
	cmd.AddCommand(newJSONCmd(ctx))
	cmd.AddCommand(newVersionCmd(version))

	return cmd
}

func Execute(version string) int {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return mapExitCode(err)
	}
	return shared.ExitOK
}

func mapExitCode(err error) int {
	var codeErr *exitCodeError
	if errors.As(err, &codeErr) {
		return codeErr.code
	}
	return 1
}

func resolveChart(ctx *appContext, chartDir string) (*chart.Node, error) {
	root, err := chart.NewResolver(ctx.log).Resolve(chartDir)
	if err != nil {
		return nil, newExitCodeError(shared.ExitChartError, err)
	}
	return root, nil
}

// writeOutput renders into <output-dir>/<fileName>. The output
// directory must already exist.
func writeOutput(ctx *appContext, fileName string, renderTo func(io.Writer) error) error {
	info, err := os.Stat(ctx.outputDir)
	if err != nil || !info.IsDir() {
		return newExitCodeError(shared.ExitOutputError,
			fmt.Errorf("%s is not a valid output directory", ctx.outputDir))
	}

	path := filepath.Join(ctx.outputDir, fileName)
	f, err := os.Create(path)
	if err != nil {
		return newExitCodeError(shared.ExitOutputError, err)
	}
	if err := renderTo(f); err != nil {
		f.Close()
		return newExitCodeError(shared.ExitOutputError, err)
	}
	if err := f.Close(); err != nil {
		return newExitCodeError(shared.ExitOutputError, err)
	}
	ctx.log.Info("output written", "path", path)
	return nil
}

type exitCodeError struct {
	code int
	err  error
}

func newExitCodeError(code int, err error) *exitCodeError {
	return &exitCodeError{code: code, err: err}
}

func (e *exitCodeError) Error() string {
	return e.err.Error()
}

func (e *exitCodeError) Unwrap() error {
	return e.err
}
