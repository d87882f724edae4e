package renderer

import "image"

// RendererBackendType identifies the presentation backend used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU presents frames to a window surface through WebGPU.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeHeadless keeps frames in memory only. Used for snapshots, the web preview and tests.
	BackendTypeHeadless
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// RendererBackend moves a finished CPU frame to wherever it is displayed.
type RendererBackend interface {
	// ConfigureSurface (re)creates size-dependent resources.
	//
	// Parameters:
	//   - width, height: the surface size in pixels
	//
	// Returns:
	//   - error: an error if the surface could not be configured
	ConfigureSurface(width, height int) error

	// SetPresentMode selects vsync or uncapped presentation. Applied on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Present uploads img and shows it. img must match the configured size.
	//
	// Parameters:
	//   - img: the rendered frame
	//
	// Returns:
	//   - error: an error if presentation failed
	Present(img *image.RGBA) error

	// Release frees backend resources.
	Release()
}
