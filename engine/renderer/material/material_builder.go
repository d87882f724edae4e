package material

import (
	"github.com/Carmen-Shannon/bridgeworks/common"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithType is an option builder that sets the lighting model of the material.
//
// Parameters:
//   - t: the lighting model
//
// Returns:
//   - MaterialBuilderOption: a function that applies the type option to a material
func WithType(t MaterialType) MaterialBuilderOption {
	return func(m *material) {
		m.materialType = t
	}
}

// WithColor is an option builder that sets the diffuse color from a 0xRRGGBB sRGB value.
//
// Parameters:
//   - hex: the packed sRGB color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(hex uint32) MaterialBuilderOption {
	return func(m *material) {
		m.color = common.ColorFromHex(hex)
	}
}

// WithEmissive is an option builder that sets the emitted color from a 0xRRGGBB sRGB value.
//
// Parameters:
//   - hex: the packed sRGB color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the emissive option to a material
func WithEmissive(hex uint32) MaterialBuilderOption {
	return func(m *material) {
		m.emissive = common.ColorFromHex(hex)
	}
}

// WithRoughness is an option builder that sets the roughness factor.
//
// Parameters:
//   - roughness: 0 for mirror-smooth, 1 for fully rough
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = clamp01(roughness)
	}
}

// WithMetalness is an option builder that sets the metalness factor.
//
// Parameters:
//   - metalness: 0 for dielectric, 1 for metal
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metalness option to a material
func WithMetalness(metalness float32) MaterialBuilderOption {
	return func(m *material) {
		m.metalness = clamp01(metalness)
	}
}

// WithShininess is an option builder that sets the Phong specular exponent.
//
// Parameters:
//   - shininess: the exponent, larger is tighter
//
// Returns:
//   - MaterialBuilderOption: a function that applies the shininess option to a material
func WithShininess(shininess float32) MaterialBuilderOption {
	return func(m *material) {
		m.shininess = shininess
	}
}

// WithTransparent is an option builder that enables alpha blending with the given opacity.
//
// Parameters:
//   - opacity: the initial opacity in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that applies the transparency option to a material
func WithTransparent(opacity float32) MaterialBuilderOption {
	return func(m *material) {
		m.transparent = true
		m.opacity = clamp01(opacity)
	}
}
