package light

// ShadowMapResolution is the default width and height in texels of the shadow
// depth map. Lights use this as their initial value but can override it
// via the WithShadowMapSize builder option.
const ShadowMapResolution = 2048

// DefaultShadowHalfExtent is the default orthographic half-extent (in world units)
// of the directional light shadow frustum.
const DefaultShadowHalfExtent float32 = 100.0

// DefaultShadowNear is the default near plane for the directional light's
// orthographic shadow projection.
const DefaultShadowNear float32 = 0.5

// DefaultShadowFar is the default far plane for the directional light's
// orthographic shadow projection.
const DefaultShadowFar float32 = 500.0

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = 0.0005

// DefaultShadowSlopeBias scales extra bias by how obliquely the light grazes the surface.
const DefaultShadowSlopeBias float32 = 0.002

// Shadow describes the orthographic shadow frustum and depth map of a directional light.
type Shadow struct {
	// MapSize is the width and height of the depth map in texels.
	MapSize int

	// Left, Right, Bottom, Top bound the frustum in light view space.
	Left, Right, Bottom, Top float32

	// Near and Far bound the frustum along the light direction.
	Near, Far float32

	// Bias is subtracted from the receiver depth before comparison.
	Bias float32

	// SlopeBias is added to Bias, scaled by tan of the light incidence angle.
	SlopeBias float32

	// PCFRadius is the half-width in texels of the percentage-closer filter kernel.
	// 0 gives hard shadows, 1 a 3x3 kernel.
	PCFRadius int
}

// DefaultShadow returns a soft 3x3 PCF shadow covering +-100 world units from 0.5 to 500.
//
// Returns:
//   - Shadow: the default shadow configuration
func DefaultShadow() Shadow {
	return Shadow{
		MapSize:   ShadowMapResolution,
		Left:      -DefaultShadowHalfExtent,
		Right:     DefaultShadowHalfExtent,
		Bottom:    -DefaultShadowHalfExtent,
		Top:       DefaultShadowHalfExtent,
		Near:      DefaultShadowNear,
		Far:       DefaultShadowFar,
		Bias:      DefaultShadowBias,
		SlopeBias: DefaultShadowSlopeBias,
		PCFRadius: 1,
	}
}
