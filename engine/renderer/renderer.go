package renderer

import (
	"errors"
	"image"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/bridgeworks/engine/renderer/raster"
	"github.com/Carmen-Shannon/bridgeworks/engine/window"
)

// Frame, Item and Fog describe one image; see the raster package.
type (
	Frame = raster.Frame
	Item  = raster.Item
	Fog   = raster.Fog
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	raster      raster.Rasterizer
	logger      *slog.Logger

	last *image.RGBA

	// Pre-creation config collected from builder options
	width, height        int
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	rasterOptions        []raster.RasterizerBuilderOption
}

// Renderer draws frames on the CPU and hands them to a presentation backend.
//
// Render and Resize are serialized, so a frame never observes a half-applied resize.
type Renderer interface {
	// Render rasterizes f and presents it.
	//
	// Parameters:
	//   - f: the frame to draw
	//
	// Returns:
	//   - error: an error if presentation failed
	Render(f *Frame) error

	// Resize changes the output and surface size. Zero sizes (a minimized window) are ignored.
	// When the backend cannot reconfigure its surface the failure is logged and the old size is kept.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// Size returns the current output size in pixels.
	//
	// Returns:
	//   - width, height: the output size
	Size() (width, height int)

	// Snapshot returns a copy of the last rendered frame, or nil before the first Render.
	//
	// Returns:
	//   - *image.RGBA: the copied frame
	Snapshot() *image.RGBA

	// Stats returns rasterizer counters for the last frame.
	//
	// Returns:
	//   - raster.Stats: the counters
	Stats() raster.Stats

	// SetPresentMode changes vsync behavior; takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Release frees the rasterizer workers and backend resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer with the specified backend.
// The WGPU backend presents into win; the headless backend ignores win and takes its size from WithSize.
//
// Parameters:
//   - backendType: the presentation backend to use
//   - win: the window to present into, or nil for headless
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured renderer
//   - error: an error if the backend could not be created
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		logger:      slog.Default(),
		width:       1280,
		height:      720,
	}
	if win != nil {
		r.width, r.height = win.Width(), win.Height()
	}
	for _, option := range options {
		option(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		if win == nil {
			return nil, errors.New("the WGPU backend requires a window")
		}
		b, err := newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter)
		if err != nil {
			return nil, err
		}
		r.backend = b
	case BackendTypeHeadless:
		r.backend = newHeadlessRendererBackend()
	default:
		return nil, errors.New("unknown renderer backend type")
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
		r.backend.Release()
		return nil, err
	}
	r.raster = raster.NewRasterizer(r.width, r.height, r.rasterOptions...)
	return r, nil
}

func (r *renderer) Render(f *Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	img := r.raster.Render(f)
	r.last = img
	return r.backend.Present(img)
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.backend.ConfigureSurface(width, height); err != nil {
		r.logger.Warn("surface resize failed",
			slog.Int("width", width),
			slog.Int("height", height),
			slog.Any("error", err),
		)
		return
	}
	r.width, r.height = width, height
	r.raster.Resize(width, height)
	r.last = nil
}

func (r *renderer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) Snapshot() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return nil
	}
	cp := image.NewRGBA(r.last.Bounds())
	copy(cp.Pix, r.last.Pix)
	return cp
}

func (r *renderer) Stats() raster.Stats {
	return r.raster.Stats()
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.raster.Release()
	r.backend.Release()
}
