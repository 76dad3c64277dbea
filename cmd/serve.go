package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lehigh-university-libraries/clicklabel/internal/handlers"
	"github.com/lehigh-university-libraries/clicklabel/internal/session"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the labeling interface",
		Long: `Starts a labeling session and serves its grid on the given address.

Open the printed URL in a browser. Left click an image to apply the first
label, right click to apply the second, click again to clear. "Next page"
saves the grid to the result file and shows the next batch of images.
"Close" (or Ctrl+C) saves the current grid and stops the server.`,
		Example: `  # Label ./data with the default Cat meme / Dog meme labels
  clicklabel serve

  # Custom labels, colors and a 3x5 grid
  clicklabel serve --data-dir ./photos --result-path ./labels/photos.csv \
    --labels keep,discard --colors green,#cc0000 --rows 3 --columns 5

  # Read settings from a file
  clicklabel serve --config labeling.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}

			sess, err := session.New(cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := sess.Close(); err != nil {
					slog.Error("Failed to close session", "err", err)
				}
			}()

			if err := sess.Start(); err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			handler := handlers.New(sess, cancel)
			server := &http.Server{
				Addr:              cfg.Addr,
				Handler:           handlers.NewRouter(handler, slog.Default()),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Labeling interface available", "addr", cfg.Addr, "url", "http://localhost"+cfg.Addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for Ctrl+C, a close from the interface, or a server error
			select {
			case <-ctx.Done():
				slog.Info("Shutting down server...")
				handler.Shutdown()
				shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancelShutdown()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				handler.Shutdown()
				return err
			}
		},
	}

	flags.bind(cmd)

	return cmd
}
