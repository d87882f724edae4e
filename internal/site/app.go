package site

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/bridgeworks/common"
	"github.com/Carmen-Shannon/bridgeworks/engine/camera"
	"github.com/Carmen-Shannon/bridgeworks/engine/game_object"
	"github.com/Carmen-Shannon/bridgeworks/engine/light"
	"github.com/Carmen-Shannon/bridgeworks/engine/renderer"
	"github.com/Carmen-Shannon/bridgeworks/engine/scene"
	"github.com/Carmen-Shannon/bridgeworks/engine/window"
)

// App holds everything the site needs at runtime. Nothing about the scene lives in package state.
type App struct {
	Scene    scene.Scene
	Camera   camera.Camera
	Renderer renderer.Renderer

	Water  game_object.GameObject
	Road   game_object.GameObject
	Bridge game_object.GameObject
	Cranes []*Crane

	Ambient light.Light
	Sun     light.Light
	Fill    light.Light

	logger *slog.Logger
}

type assembleConfig struct {
	backend         renderer.RendererBackendType
	win             window.Window
	width, height   int
	rendererOptions []renderer.RendererBuilderOption
	logger          *slog.Logger
}

// AssembleOption configures Assemble.
type AssembleOption func(*assembleConfig)

// WithWindow presents frames into win through the WGPU backend. The viewport size follows the window.
//
// Parameters:
//   - win: the window
//
// Returns:
//   - AssembleOption: option function to apply
func WithWindow(win window.Window) AssembleOption {
	return func(c *assembleConfig) {
		c.win = win
		c.backend = renderer.BackendTypeWGPU
	}
}

// WithSize sets the viewport size for a headless App.
//
// Parameters:
//   - width, height: the size in pixels
//
// Returns:
//   - AssembleOption: option function to apply
func WithSize(width, height int) AssembleOption {
	return func(c *assembleConfig) {
		c.width, c.height = width, height
	}
}

// WithRendererOptions passes options through to the renderer.
//
// Parameters:
//   - options: renderer options such as supersampling or worker count
//
// Returns:
//   - AssembleOption: option function to apply
func WithRendererOptions(options ...renderer.RendererBuilderOption) AssembleOption {
	return func(c *assembleConfig) {
		c.rendererOptions = append(c.rendererOptions, options...)
	}
}

// WithLogger sets the logger used by the App and its driver.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - AssembleOption: option function to apply
func WithLogger(logger *slog.Logger) AssembleOption {
	return func(c *assembleConfig) {
		c.logger = logger
	}
}

// Assemble creates the camera, renderer and lights and builds every scene element once.
// Without WithWindow the renderer is headless.
//
// Parameters:
//   - options: assembly options
//
// Returns:
//   - *App: the assembled site
//   - error: the renderer creation error
func Assemble(options ...AssembleOption) (*App, error) {
	cfg := assembleConfig{
		backend: renderer.BackendTypeHeadless,
		width:   1280,
		height:  720,
		logger:  slog.Default(),
	}
	for _, option := range options {
		option(&cfg)
	}
	if cfg.win != nil {
		cfg.width, cfg.height = cfg.win.Width(), cfg.win.Height()
	}

	rendererOptions := append([]renderer.RendererBuilderOption{
		renderer.WithSize(cfg.width, cfg.height),
		renderer.WithSupersample(2),
	}, cfg.rendererOptions...)
	r, err := renderer.NewRenderer(cfg.backend, cfg.win, rendererOptions...)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	cam := camera.NewCamera(
		camera.WithFov(common.DegToRad(75)),
		camera.WithAspect(float32(cfg.width)/float32(cfg.height)),
		camera.WithClip(0.1, 1000),
		camera.WithController(camera.NewCameraController(
			camera.WithEye(0, 80, 200),
			camera.WithTarget(0, 0, 0),
		)),
	)

	app := &App{
		Camera:   cam,
		Renderer: r,
		Water:    CreateWater(),
		Road:     CreateRoad(),
		Bridge:   CreateArchBridge(),
		Ambient:  light.NewLight(light.LightTypeAmbient, light.WithColor(0xffffff), light.WithIntensity(0.4)),
		Sun: light.NewLight(light.LightTypeDirectional,
			light.WithColor(0xffffff),
			light.WithIntensity(1),
			light.WithPosition(100, 100, 50),
			light.WithCastsShadows(true),
			light.WithShadowMapSize(2048),
			light.WithShadowFrustum(-100, 100, -100, 100, 0.5, 500),
		),
		Fill: light.NewLight(light.LightTypeDirectional,
			light.WithColor(0xffffff),
			light.WithIntensity(0.3),
			light.WithPosition(-100, 50, -50),
		),
		logger: cfg.logger,
	}
	for _, pos := range CranePositions {
		app.Cranes = append(app.Cranes, CreateCrane(pos[0], pos[1]))
	}

	app.Scene = scene.NewScene(
		scene.WithName("site"),
		scene.WithCamera(cam),
		scene.WithRenderer(r),
		scene.WithBackground(0xffffff),
		scene.WithFog(0xffffff, 200, 500),
		scene.WithLights(app.Ambient, app.Sun, app.Fill),
	)

	objects := []game_object.GameObject{app.Water, app.Road, app.Bridge}
	for _, c := range app.Cranes {
		objects = append(objects, c.Group)
	}
	if err := app.Scene.Add(objects...); err != nil {
		r.Release()
		return nil, fmt.Errorf("assemble scene: %w", err)
	}

	cfg.logger.Debug("site assembled",
		slog.Int("meshes", app.Scene.Count()),
		slog.Int("width", cfg.width),
		slog.Int("height", cfg.height),
	)
	return app, nil
}

// Animate applies the animation at t milliseconds: water opacity, then every crane's pose.
//
// Parameters:
//   - t: timestamp in milliseconds
func (a *App) Animate(t float64) {
	a.Water.Material().SetOpacity(WaterOpacity(t))
	for i, c := range a.Cranes {
		c.Apply(CranePose(t, i))
	}
}

// Resize sets the camera aspect to width/height and resizes the renderer output.
// Scene transforms are untouched. Zero sizes are ignored.
//
// Parameters:
//   - width, height: the new viewport size
func (a *App) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.Camera.SetAspect(float32(width) / float32(height))
	a.Renderer.Resize(width, height)
}

// Release frees the renderer.
func (a *App) Release() {
	a.Renderer.Release()
}
