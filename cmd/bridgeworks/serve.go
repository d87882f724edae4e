package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/bridgeworks/internal/predict"
	"github.com/Carmen-Shannon/bridgeworks/internal/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the beam prediction service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}
	f := cmd.Flags()
	f.StringVar(&c.flags.Addr, "addr", "", "listen address")
	f.StringVar(&c.flags.Models, "models", "", "model file written by fit")
	return cmd
}

func (c *cli) serve(ctx context.Context) error {
	registry, err := predict.NewRegistry(c.cfg.Server.Models, predict.WithLogger(c.logger))
	if err != nil {
		return err
	}
	srv, err := server.NewServer(registry,
		server.WithLogger(c.logger),
		server.WithMaxUploadMB(c.cfg.Server.MaxUploadMB),
		server.WithOutputName(c.cfg.Upload.Output),
	)
	if err != nil {
		return err
	}

	c.logger.Info("serving model",
		slog.String("models", c.cfg.Server.Models),
		slog.String("version", registry.Info().Version),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return registry.Watch(ctx)
	})
	g.Go(func() error {
		return srv.ListenAndServe(ctx, c.cfg.Server.Addr)
	})
	return g.Wait()
}
