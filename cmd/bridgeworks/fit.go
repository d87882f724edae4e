package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/bridgeworks/internal/predict"
	"github.com/spf13/cobra"
)

type fitOptions struct {
	data    string
	out     string
	seed    uint64
	version string
	ridge   float64
}

func newFitCommand(c *cli) *cobra.Command {
	opts := &fitOptions{}
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Train a model file from a labelled beam dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.out == "" {
				opts.out = c.cfg.Server.Models
			}
			return c.fit(opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.data, "data", "", "labelled CSV with the input columns and every target")
	f.StringVar(&opts.out, "out", "", "model file to write, defaults to the server models path")
	f.Uint64Var(&opts.seed, "seed", 42, "shuffle seed for the train/test split")
	f.StringVar(&opts.version, "version", "", "version recorded in the model, defaults to the training time")
	f.Float64Var(&opts.ridge, "ridge", 1e-3, "ridge penalty")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func (c *cli) fit(opts *fitOptions) error {
	f, err := os.Open(opts.data)
	if err != nil {
		return err
	}
	defer f.Close()

	table, err := predict.ReadTable(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.data, err)
	}

	fitOpts := []predict.FitOption{predict.WithRidge(opts.ridge)}
	if opts.version != "" {
		fitOpts = append(fitOpts, predict.WithVersion(opts.version))
	}
	model, report, err := predict.Fit(table, opts.seed, fitOpts...)
	if err != nil {
		return err
	}
	if err := model.Save(opts.out); err != nil {
		return err
	}

	attrs := []any{
		slog.String("out", opts.out),
		slog.String("version", model.Version),
		slog.Int("train", report.Train),
		slog.Int("test", report.Test),
	}
	for _, target := range predict.Targets {
		attrs = append(attrs, slog.Float64("r2_"+target, report.R2[target]))
	}
	c.logger.Info("model trained", attrs...)
	return nil
}
