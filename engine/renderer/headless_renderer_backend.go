package renderer

import (
	"image"
	"sync"
)

// headlessRendererBackend discards presentation; the Renderer keeps the last frame itself.
type headlessRendererBackend struct {
	mu       *sync.Mutex
	presents int
}

var _ RendererBackend = &headlessRendererBackend{}

func newHeadlessRendererBackend() *headlessRendererBackend {
	return &headlessRendererBackend{mu: &sync.Mutex{}}
}

func (b *headlessRendererBackend) ConfigureSurface(width, height int) error {
	return nil
}

func (b *headlessRendererBackend) SetPresentMode(mode PresentMode) {}

func (b *headlessRendererBackend) Present(img *image.RGBA) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presents++
	return nil
}

func (b *headlessRendererBackend) Release() {}
