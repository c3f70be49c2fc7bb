package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"clip-summarize/internal/infra/watcher"
	"clip-summarize/internal/observability/logging"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Summarize new notes as they are created in the vault",
		Long: `Watch the vault and summarize every new markdown note.

New notes are handled one at a time. Auto-summarize must be enabled in the
settings, and when a watch folder is set only notes below it are handled.
Prometheus metrics are served on METRICS_PORT unless it is 0.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx = logging.WithLogger(ctx, a.logger)

			c, err := a.wire()
			if err != nil {
				return err
			}

			w, err := watcher.New(c.store.Root(), c.service.HandleNewFile, a.logger)
			if err != nil {
				return err
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return w.Run(gctx)
			})

			if port := a.cfg.Observe.MetricsPort; port > 0 {
				server := newMetricsServer(port, c.factory)
				g.Go(func() error {
					return serveMetrics(gctx, server, a.logger)
				})
			}

			err = g.Wait()
			a.logger.Info("watch stopped", slog.Any("error", err))
			return err
		},
	}
}
