package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/bridgeworks/internal/config"
	"github.com/Carmen-Shannon/bridgeworks/internal/logging"
	"github.com/spf13/cobra"
)

// cli is the state shared by every subcommand once the persistent flags are parsed.
type cli struct {
	configPath string
	flags      config.Flags

	cfg    config.Config
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "bridgeworks",
		Short:         "Animated bridge construction site with a beam prediction upload",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "TOML or YAML config file")
	pf.StringVar(&c.flags.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&c.flags.LogFormat, "log-format", "", "log format: text or json")

	root.AddCommand(
		newViewCommand(c),
		newSnapshotCommand(c),
		newServeCommand(c),
		newFitCommand(c),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	cfg.Resolve(c.flags)

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	slog.SetDefault(logger)

	c.cfg = cfg
	c.logger = logger
	if c.configPath != "" {
		logger.Debug("config loaded", slog.String("path", c.configPath))
	}
	return nil
}

// writeFile creates path and streams into it with write, removing the file on failure.
func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
