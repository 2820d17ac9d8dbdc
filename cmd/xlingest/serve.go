package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ukaji3/xlingest-go/internal/server"
	"github.com/ukaji3/xlingest-go/pkg/xlingest/sink"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ingestion HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				cfg.Server.Addr = addr
			}

			in, err := newIngestor()
			if err != nil {
				return err
			}
			// Fail fast on a broken schema instead of on the first request.
			if _, err := in.Spreadsheets(); err != nil {
				return fmt.Errorf("resolve schema: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w, err := sink.Open(ctx, cfg.Sink.Driver, cfg.Sink.DSN)
			if err != nil {
				return fmt.Errorf("open sink: %w", err)
			}
			defer w.Close()

			srv := server.New(in, w, cfg.Server.Addr)
			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			slog.Info("shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}
