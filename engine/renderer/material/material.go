package material

import (
	"sync"

	"github.com/Carmen-Shannon/bridgeworks/common"
)

// MaterialType selects the lighting model used to shade a surface.
type MaterialType int

const (
	// MaterialTypeStandard is a metalness/roughness surface.
	MaterialTypeStandard MaterialType = iota
	// MaterialTypePhong is a Blinn-Phong surface with a shininess exponent.
	MaterialTypePhong
)

// material is the implementation of the Material interface.
type material struct {
	mu *sync.Mutex

	name         string
	materialType MaterialType
	color        common.Color
	emissive     common.Color
	specular     common.Color
	roughness    float32
	metalness    float32
	shininess    float32
	transparent  bool
	opacity      float32
}

// Material defines the interface for a surface description shared by any number of meshes.
//
// Surface properties are fixed at construction. Opacity is the only mutable property so that
// per-frame animation can fade transparent surfaces; it is safe to change from another goroutine.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Type returns the lighting model for this material.
	//
	// Returns:
	//   - MaterialType: the lighting model
	Type() MaterialType

	// Color retrieves the linear diffuse color of the material.
	//
	// Returns:
	//   - common.Color: the diffuse color
	Color() common.Color

	// Emissive retrieves the linear emitted color, added after lighting.
	//
	// Returns:
	//   - common.Color: the emissive color
	Emissive() common.Color

	// Specular retrieves the specular highlight color used by MaterialTypePhong.
	//
	// Returns:
	//   - common.Color: the specular color
	Specular() common.Color

	// Roughness retrieves the roughness factor used by MaterialTypeStandard.
	// A value of 0.0 represents a perfectly smooth surface, 1.0 represents a fully rough surface.
	//
	// Returns:
	//   - float32: the roughness factor
	Roughness() float32

	// Metalness retrieves the metalness factor used by MaterialTypeStandard.
	//
	// Returns:
	//   - float32: the metalness factor
	Metalness() float32

	// Shininess retrieves the Phong specular exponent.
	//
	// Returns:
	//   - float32: the shininess exponent
	Shininess() float32

	// Transparent reports whether the surface is alpha blended using Opacity.
	//
	// Returns:
	//   - bool: true if blended
	Transparent() bool

	// Opacity retrieves the current opacity in [0, 1].
	//
	// Returns:
	//   - float32: the opacity
	Opacity() float32

	// SetOpacity sets the opacity, clamped to [0, 1].
	//
	// Parameters:
	//   - opacity: the new opacity
	SetOpacity(opacity float32)
}

var _ Material = &material{}

// NewMaterial creates a new Material with the defaults of a white, fully rough, non-metallic
// standard surface.
//
// Parameters:
//   - options: a variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: the newly created material
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		mu:           &sync.Mutex{},
		name:         "material",
		materialType: MaterialTypeStandard,
		color:        common.ColorFromHex(0xffffff),
		specular:     common.ColorFromHex(0x111111),
		roughness:    1,
		metalness:    0,
		shininess:    30,
		opacity:      1,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Type() MaterialType {
	return m.materialType
}

func (m *material) Color() common.Color {
	return m.color
}

func (m *material) Emissive() common.Color {
	return m.emissive
}

func (m *material) Specular() common.Color {
	return m.specular
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) Metalness() float32 {
	return m.metalness
}

func (m *material) Shininess() float32 {
	return m.shininess
}

func (m *material) Transparent() bool {
	return m.transparent
}

func (m *material) Opacity() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opacity
}

func (m *material) SetOpacity(opacity float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opacity = clamp01(opacity)
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
