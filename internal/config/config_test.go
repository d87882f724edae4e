package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Resolve(Flags{})

	assert.Equal(t, "bridgeworks", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 2, cfg.Render.Supersample)
	assert.Equal(t, 2048, cfg.Render.ShadowMapSize)
	assert.Equal(t, "vsync", cfg.Render.PresentMode)
	assert.Equal(t, "http://127.0.0.1:5000/upload", cfg.Upload.Action)
	assert.Equal(t, "predictions.csv", cfg.Upload.Output)
	assert.Equal(t, 30*time.Second, cfg.UploadTimeout())
	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.GreaterOrEqual(t, cfg.Render.Workers, 1)
}

func TestLoadTOML(t *testing.T) {
	cfg, err := Load("testdata/bridgeworks.toml")
	require.NoError(t, err)
	cfg.Resolve(Flags{})

	assert.Equal(t, "site", cfg.Window.Title)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, 3, cfg.Render.Supersample)
	assert.Equal(t, "uncapped", cfg.Render.PresentMode)
	assert.Equal(t, "kdialog --getopenfilename", cfg.Upload.Picker)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadYAMLWithFlagOverrides(t *testing.T) {
	cfg, err := Load("testdata/bridgeworks.yaml")
	require.NoError(t, err)
	cfg.Resolve(Flags{Addr: ":7000", LogLevel: "warn"})

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "/srv/models.toml", cfg.Server.Models)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("testdata/missing.toml")
	assert.Error(t, err)

	_, err = Load("testdata/unknown.toml")
	assert.Error(t, err)

	_, err = Load("config.go")
	assert.ErrorContains(t, err, "unsupported")
}
