// Package config loads bridgeworks settings from TOML or YAML and fills defaults.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/Carmen-Shannon/bridgeworks/common"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds every configurable setting of the viewer, the uploader and the prediction service.
type Config struct {
	Window WindowConfig `toml:"window" yaml:"window"`
	Render RenderConfig `toml:"render" yaml:"render"`
	Upload UploadConfig `toml:"upload" yaml:"upload"`
	Server ServerConfig `toml:"server" yaml:"server"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// WindowConfig sizes the native window.
type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
}

// RenderConfig tunes the software rasterizer and presentation.
type RenderConfig struct {
	// Supersample is the antialiasing factor; 1 disables it.
	Supersample   int     `toml:"supersample" yaml:"supersample"`
	Workers       int     `toml:"workers" yaml:"workers"`
	ShadowMapSize int     `toml:"shadow_map_size" yaml:"shadow_map_size"`
	FrameLimit    float64 `toml:"frame_limit" yaml:"frame_limit"`
	// PresentMode is "vsync" or "uncapped".
	PresentMode string `toml:"present_mode" yaml:"present_mode"`
	Software    bool   `toml:"software" yaml:"software"`
	Profile     bool   `toml:"profile" yaml:"profile"`
}

// UploadConfig describes where dropped CSV files are sent and how the drop zone looks.
type UploadConfig struct {
	// Action is the form action URL the file is posted to.
	Action string `toml:"action" yaml:"action"`
	// Output is where the returned predictions are written.
	Output string `toml:"output" yaml:"output"`
	// Picker is the shell-style command run on a click in the zone; it prints the chosen path on stdout.
	Picker         string `toml:"picker" yaml:"picker"`
	TimeoutSeconds int    `toml:"timeout_seconds" yaml:"timeout_seconds"`
	// Zone is the clickable rectangle, anchored to the bottom-right corner of the window.
	ZoneWidth  int `toml:"zone_width" yaml:"zone_width"`
	ZoneHeight int `toml:"zone_height" yaml:"zone_height"`
	ZoneMargin int `toml:"zone_margin" yaml:"zone_margin"`
}

// ServerConfig configures the prediction service.
type ServerConfig struct {
	Addr        string `toml:"addr" yaml:"addr"`
	Models      string `toml:"models" yaml:"models"`
	MaxUploadMB int    `toml:"max_upload_mb" yaml:"max_upload_mb"`
}

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Flags carries command-line overrides. Zero values leave the file value in place.
type Flags struct {
	LogLevel  string
	LogFormat string
	Addr      string
	Models    string
	Action    string
	Output    string
	Width     int
	Height    int
	Workers   int
}

// Load reads a TOML or YAML config file, chosen by extension.
// An empty path returns an empty Config, which Resolve turns into the defaults.
//
// Parameters:
//   - path: the file path, or "" for none
//
// Returns:
//   - Config: the parsed settings
//   - error: an error if the file cannot be read or parsed
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
	default:
		return Config{}, fmt.Errorf("config: unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve applies flag overrides and fills every empty field with its default.
//
// Parameters:
//   - flags: command-line overrides
func (c *Config) Resolve(flags Flags) {
	c.Log.Level = common.Coalesce(flags.LogLevel, c.Log.Level, "info")
	c.Log.Format = common.Coalesce(flags.LogFormat, c.Log.Format, "text")

	c.Window.Title = common.Coalesce(c.Window.Title, "bridgeworks")
	c.Window.Width = common.Coalesce(flags.Width, c.Window.Width, 1280)
	c.Window.Height = common.Coalesce(flags.Height, c.Window.Height, 720)

	c.Render.Supersample = common.Coalesce(c.Render.Supersample, 2)
	c.Render.Workers = common.Coalesce(flags.Workers, c.Render.Workers, max(runtime.NumCPU()-1, 1))
	c.Render.ShadowMapSize = common.Coalesce(c.Render.ShadowMapSize, 2048)
	c.Render.FrameLimit = common.Coalesce(c.Render.FrameLimit, 60)
	c.Render.PresentMode = common.Coalesce(c.Render.PresentMode, "vsync")

	c.Upload.Action = common.Coalesce(flags.Action, c.Upload.Action, "http://127.0.0.1:5000/upload")
	c.Upload.Output = common.Coalesce(flags.Output, c.Upload.Output, "predictions.csv")
	c.Upload.Picker = common.Coalesce(c.Upload.Picker, "zenity --file-selection --file-filter='*.csv'")
	c.Upload.TimeoutSeconds = common.Coalesce(c.Upload.TimeoutSeconds, 30)
	c.Upload.ZoneWidth = common.Coalesce(c.Upload.ZoneWidth, 320)
	c.Upload.ZoneHeight = common.Coalesce(c.Upload.ZoneHeight, 120)
	c.Upload.ZoneMargin = common.Coalesce(c.Upload.ZoneMargin, 24)

	c.Server.Addr = common.Coalesce(flags.Addr, c.Server.Addr, ":5000")
	c.Server.Models = common.Coalesce(flags.Models, c.Server.Models, "models.toml")
	c.Server.MaxUploadMB = common.Coalesce(c.Server.MaxUploadMB, 16)
}

// UploadTimeout returns the submission timeout as a duration.
//
// Returns:
//   - time.Duration: the timeout
func (c *Config) UploadTimeout() time.Duration {
	return time.Duration(c.Upload.TimeoutSeconds) * time.Second
}
