package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dnl-fm/ascii/pkg/pipeline"
)

// readSource reads diagram text from the named file, or stdin when the
// argument is missing or "-".
func readSource(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

func newRenderCmd() *cobra.Command {
	var (
		frame   bool
		outPath string
		noCache bool
		refresh bool
		stats   bool
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Compile diagram text into ASCII art",
		Long: `Render reads diagram text from a file or stdin and writes the
compiled ASCII art to stdout or --out. On error the input is left
untouched and nothing is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			text, err := readSource(args)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.Render.Framed {
				frame = true
			}

			runner := pipeline.NewRunner(nil, logger)
			if !noCache {
				backend := openCache(cmd.Context(), cfg, logger)
				defer backend.Close()
				runner = pipeline.NewRunner(backend, logger)
				runner.SetTTL(cacheTTL(cfg))
			}

			p := newProgress(logger)
			res, err := runner.Render(cmd.Context(), text, pipeline.Options{
				Framed:  frame,
				Refresh: refresh,
			})
			if err != nil {
				printError("%s", err)
				return err
			}
			p.done("rendered " + res.Kind)

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				defer f.Close()
				out = f
			}
			fmt.Fprintln(out, res.Output)

			if stats {
				printStats(res.Kind, res.Hash, res.CacheHit)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&frame, "frame", false, "wrap output in an outer border")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write output to a file instead of stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache read, re-render and store")
	cmd.Flags().BoolVar(&stats, "stats", false, "print render statistics")
	return cmd
}
