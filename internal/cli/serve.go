package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/dnl-fm/ascii/internal/server"
	"github.com/dnl-fm/ascii/pkg/pipeline"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render server",
		Long: `Serve exposes the renderer over HTTP. The render endpoint is
content addressed: GET /render/ascii/{sha256}?code=<base64url-source>.
Responses are cacheable for thirty days since identical input always
renders identically.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			backend := openCache(cmd.Context(), cfg, logger)
			defer backend.Close()
			runner := pipeline.NewRunner(backend, logger)
			runner.SetTTL(cacheTTL(cfg))
			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(runner, logger).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case <-cmd.Context().Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else :8080)")
	return cmd
}
