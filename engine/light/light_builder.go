package light

import (
	"github.com/Carmen-Shannon/bridgeworks/common"
)

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = [3]float32{x, y, z}
	}
}

// WithTarget is an option builder that sets the point a directional light aims at.
//
// Parameters:
//   - x, y, z: the target components
//
// Returns:
//   - LightBuilderOption: a function that applies the target option to a lightImpl
func WithTarget(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.target = [3]float32{x, y, z}
	}
}

// WithColor is an option builder that sets the light color from a 0xRRGGBB sRGB value.
//
// Parameters:
//   - hex: the packed sRGB color
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(hex uint32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = common.ColorFromHex(hex)
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithEnabled is an option builder that sets whether the light is active.
//
// Parameters:
//   - enabled: true to enable the light
//
// Returns:
//   - LightBuilderOption: a function that applies the enabled option to a lightImpl
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}

// WithCastsShadows is an option builder that enables shadow mapping for a directional light.
// Ignored for other light types.
//
// Parameters:
//   - castsShadows: true to enable shadow casting
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow option to a lightImpl
func WithCastsShadows(castsShadows bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = castsShadows
	}
}

// WithShadowMapSize is an option builder that overrides the shadow depth map resolution.
//
// Parameters:
//   - size: width and height in texels
//
// Returns:
//   - LightBuilderOption: a function that applies the map size option to a lightImpl
func WithShadowMapSize(size int) LightBuilderOption {
	return func(l *lightImpl) {
		if size > 0 {
			l.shadow.MapSize = size
		}
	}
}

// WithShadowFrustum is an option builder that overrides the orthographic shadow frustum.
//
// Parameters:
//   - left, right, bottom, top: extents in light view space
//   - near, far: depth range along the light direction
//
// Returns:
//   - LightBuilderOption: a function that applies the frustum option to a lightImpl
func WithShadowFrustum(left, right, bottom, top, near, far float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.shadow.Left, l.shadow.Right = left, right
		l.shadow.Bottom, l.shadow.Top = bottom, top
		l.shadow.Near, l.shadow.Far = near, far
	}
}

// WithShadowPCF is an option builder that sets the percentage-closer filter radius in texels.
//
// Parameters:
//   - radius: 0 for hard shadows, 1 for 3x3 soft shadows
//
// Returns:
//   - LightBuilderOption: a function that applies the PCF option to a lightImpl
func WithShadowPCF(radius int) LightBuilderOption {
	return func(l *lightImpl) {
		l.shadow.PCFRadius = max(radius, 0)
	}
}
