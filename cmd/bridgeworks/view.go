package main

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/bridgeworks/engine"
	"github.com/Carmen-Shannon/bridgeworks/engine/window"
	"github.com/Carmen-Shannon/bridgeworks/internal/site"
	"github.com/Carmen-Shannon/bridgeworks/internal/upload"
	"github.com/spf13/cobra"
)

func newViewCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the construction site window; drop a CSV on it to get predictions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.view()
		},
	}
	f := cmd.Flags()
	f.IntVar(&c.flags.Width, "width", 0, "window width")
	f.IntVar(&c.flags.Height, "height", 0, "window height")
	f.IntVar(&c.flags.Workers, "workers", 0, "rasterizer worker count")
	f.StringVar(&c.flags.Action, "action", "", "URL the dropped CSV is posted to")
	f.StringVar(&c.flags.Output, "output", "", "where returned predictions are written")
	return cmd
}

func (c *cli) view() error {
	cfg := c.cfg
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)
	if err != nil {
		return fmt.Errorf("open window: %w", err)
	}

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithLogger(c.logger),
		engine.WithProfiling(cfg.Render.Profile),
		engine.WithRenderFrameLimit(cfg.Render.FrameLimit),
	)

	app, err := site.Assemble(
		site.WithWindow(win),
		site.WithLogger(c.logger),
		site.WithRendererOptions(c.rendererOptions()...),
	)
	if err != nil {
		_ = win.Close()
		return err
	}
	defer app.Release()

	// The engine renders the scene right after the render callback, so each frame shows the
	// pose applied for it.
	driver := site.NewDriver(app)
	eng.AddScene(0, app.Scene)
	eng.SetRenderCallback(func(float32) { driver.Animate() })

	widgetOptions := []upload.WidgetBuilderOption{
		upload.WithLogger(c.logger),
		upload.WithTimeout(cfg.UploadTimeout()),
		upload.WithResultCallback(func(path string, err error) {
			if err != nil {
				c.logger.Error("upload failed", slog.String("file", path), slog.Any("error", err))
				return
			}
			c.logger.Info("predictions saved", slog.String("file", path), slog.String("output", cfg.Upload.Output))
		}),
	}
	if picker, err := upload.NewCommandPicker(cfg.Upload.Picker); err != nil {
		c.logger.Warn("file picker disabled", slog.Any("error", err))
	} else {
		widgetOptions = append(widgetOptions, upload.WithPicker(picker))
	}
	widget := upload.NewWidget(upload.NewHTTPSubmitter(cfg.Upload.Action, cfg.Upload.Output), widgetOptions...)

	upload.Bind(widget, win, upload.Zone{
		Width:  cfg.Upload.ZoneWidth,
		Height: cfg.Upload.ZoneHeight,
		Margin: cfg.Upload.ZoneMargin,
	})
	site.BindControls(win, app.Camera.Controller(), eng.Quit)

	c.logger.Info("viewer started",
		slog.Int("width", win.Width()),
		slog.Int("height", win.Height()),
		slog.String("upload_action", cfg.Upload.Action),
	)
	eng.Run()

	// Failures reach the result callback, so Wait only drains pending uploads.
	_ = widget.Wait()
	return nil
}
