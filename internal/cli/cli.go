// Package cli implements the ascii command-line interface.
//
// This package provides commands for rendering diagram text into
// fixed-width ASCII art, validating diagram source without producing
// output, serving the renderer over HTTP, and managing the local render
// cache. The CLI is built using cobra and supports verbose logging via
// the charmbracelet/log library.
//
// # Commands
//
//   - render: compile diagram text from a file or stdin to ASCII art
//   - validate: check diagram text without rendering
//   - serve: run the HTTP render server
//   - cache: manage the local render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context so nested helpers can report
// structured progress.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dnl-fm/ascii/pkg/buildinfo"
)

// Execute runs the ascii CLI and returns an error if any command fails.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "ascii",
		Short:        "ascii compiles diagram text into box-drawing ASCII art",
		Long:         `ascii is a deterministic compiler for a small diagram language: flowcharts, sequence diagrams, ER diagrams, state charts, class diagrams, timelines and tables, rendered as fixed-width ASCII art.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
