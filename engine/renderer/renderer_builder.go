package renderer

import (
	"log/slog"

	"github.com/Carmen-Shannon/bridgeworks/engine/renderer/raster"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithSize sets the initial output size. Overrides the window size when both are given.
//
// Parameters:
//   - width, height: the size in pixels
//
// Returns:
//   - RendererBuilderOption: a function that applies the size option to a renderer
func WithSize(width, height int) RendererBuilderOption {
	return func(r *renderer) {
		if width > 0 && height > 0 {
			r.width, r.height = width, height
		}
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithSupersample renders internally at factor times the output size and filters down.
//
// Parameters:
//   - factor: 1 disables supersampling
//
// Returns:
//   - RendererBuilderOption: a function that applies the supersample option to a renderer
func WithSupersample(factor int) RendererBuilderOption {
	return func(r *renderer) {
		r.rasterOptions = append(r.rasterOptions, raster.WithSupersample(factor))
	}
}

// WithWorkers sets how many worker goroutines rasterize bands of each frame.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - RendererBuilderOption: a function that applies the worker option to a renderer
func WithWorkers(n int) RendererBuilderOption {
	return func(r *renderer) {
		r.rasterOptions = append(r.rasterOptions, raster.WithWorkers(n))
	}
}

// WithShadowMapSize overrides the shadow map resolution of every light.
//
// Parameters:
//   - size: texels per side; 0 keeps each light's own setting
//
// Returns:
//   - RendererBuilderOption: a function that applies the shadow map option to a renderer
func WithShadowMapSize(size int) RendererBuilderOption {
	return func(r *renderer) {
		r.rasterOptions = append(r.rasterOptions, raster.WithShadowMapSize(size))
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithLogger sets the logger for backend failures that have no caller to return to.
//
// Parameters:
//   - logger: the logger; nil keeps slog.Default()
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger option to a renderer
func WithLogger(logger *slog.Logger) RendererBuilderOption {
	return func(r *renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
