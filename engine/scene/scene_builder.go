package scene

import (
	"github.com/Carmen-Shannon/bridgeworks/common"
	"github.com/Carmen-Shannon/bridgeworks/engine/camera"
	"github.com/Carmen-Shannon/bridgeworks/engine/light"
	"github.com/Carmen-Shannon/bridgeworks/engine/renderer"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithName sets the scene's identifier.
//
// Parameters:
//   - name: the identifier
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithCamera attaches the camera used to build frames.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithRenderer attaches the renderer frames are handed to.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) SceneBuilderOption {
	return func(s *scene) {
		s.rdr = r
	}
}

// WithLights registers initial lights.
//
// Parameters:
//   - lights: the lights to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.lights = append(s.lights, lights...)
	}
}

// WithBackground sets the clear color from a 0xRRGGBB sRGB value.
//
// Parameters:
//   - hex: the packed sRGB color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(hex uint32) SceneBuilderOption {
	return func(s *scene) {
		s.background = common.ColorFromHex(hex)
	}
}

// WithFog enables linear fog between near and far view distances.
//
// Parameters:
//   - hex: the packed sRGB fog color
//   - near: distance where fog starts
//   - far: distance where fog is opaque
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFog(hex uint32, near, far float32) SceneBuilderOption {
	return func(s *scene) {
		s.fog = &renderer.Fog{Color: common.ColorFromHex(hex), Near: near, Far: far}
	}
}
