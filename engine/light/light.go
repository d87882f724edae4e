package light

import (
	"sync"

	"github.com/Carmen-Shannon/bridgeworks/common"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every fragment uniformly regardless of orientation.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a light with no falloff that shines from its position
	// toward its target. Used for large distant sources like the sun.
	LightTypeDirectional
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu *sync.Mutex

	lightType    LightType
	position     [3]float32
	target       [3]float32
	color        common.Color
	intensity    float32
	enabled      bool
	castsShadows bool
	shadow       Shadow
}

// Light defines the interface for a light source in the scene.
//
// Ambient lights only use color and intensity. Directional lights add a position and a target;
// the light travels from the position toward the target, so only their difference matters for
// shading. The absolute position still anchors the shadow frustum.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Target returns the world-space point the light aims at.
	//
	// Returns:
	//   - [3]float32: target as (x, y, z)
	Target() [3]float32

	// Direction returns the normalized direction the light travels, from position to target.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the linear color of the light.
	//
	// Returns:
	//   - common.Color: the light color
	Color() common.Color

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Enabled returns whether this light contributes to rendering.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// CastsShadows returns whether this light renders a shadow map each frame.
	// Only directional lights can cast shadows.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// Shadow returns the shadow map configuration.
	//
	// Returns:
	//   - Shadow: the shadow settings
	Shadow() Shadow

	// ShadowViewProjection returns the column-major matrix mapping world space into the
	// light's orthographic shadow clip space.
	//
	// Returns:
	//   - [16]float32: the shadow view-projection matrix
	ShadowViewProjection() [16]float32

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetTarget sets the point the light aims at.
	//
	// Parameters:
	//   - x, y, z: target components
	SetTarget(x, y, z float32)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:        &sync.Mutex{},
		lightType: lightType,
		position:  [3]float32{0, 1, 0},
		target:    [3]float32{0, 0, 0},
		color:     common.ColorFromHex(0xffffff),
		intensity: 1.0,
		enabled:   true,
		shadow:    DefaultShadow(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.lightType != LightTypeDirectional {
		l.castsShadows = false
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) Target() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.target
}

func (l *lightImpl) Direction() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return common.Normalize3(common.Sub3(l.target, l.position))
}

func (l *lightImpl) Color() common.Color {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) Shadow() Shadow {
	return l.shadow
}

func (l *lightImpl) ShadowViewProjection() [16]float32 {
	l.mu.Lock()
	p, t := l.position, l.target
	l.mu.Unlock()

	up := [3]float32{0, 1, 0}
	if d := common.Normalize3(common.Sub3(p, t)); d[0] == 0 && d[2] == 0 {
		up = [3]float32{0, 0, 1}
	}

	var view, proj, vp [16]float32
	common.LookAt(view[:], p[0], p[1], p[2], t[0], t[1], t[2], up[0], up[1], up[2])
	s := l.shadow
	common.Ortho(proj[:], s.Left, s.Right, s.Bottom, s.Top, s.Near, s.Far)
	common.Mul4(vp[:], proj[:], view[:])
	return vp
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetTarget(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.target = [3]float32{x, y, z}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}
