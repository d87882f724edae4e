package light

import (
	"testing"

	"github.com/Carmen-Shannon/bridgeworks/common"
	"github.com/stretchr/testify/assert"
)

func TestSunDefaults(t *testing.T) {
	sun := NewLight(LightTypeDirectional,
		WithPosition(100, 100, 50),
		WithCastsShadows(true),
	)
	assert.True(t, sun.CastsShadows())
	s := sun.Shadow()
	assert.Equal(t, 2048, s.MapSize)
	assert.Equal(t, float32(0.5), s.Near)
	assert.Equal(t, float32(500), s.Far)
	assert.Equal(t, float32(-100), s.Left)
	assert.Equal(t, float32(100), s.Top)

	d := sun.Direction()
	expected := common.Normalize3([3]float32{-100, -100, -50})
	for i := range d {
		assert.InDelta(t, expected[i], d[i], 1e-6)
	}
}

func TestAmbientNeverCastsShadows(t *testing.T) {
	amb := NewLight(LightTypeAmbient, WithIntensity(0.4), WithCastsShadows(true))
	assert.False(t, amb.CastsShadows())
	assert.Equal(t, float32(0.4), amb.Intensity())
}

func TestShadowViewProjectionMapsTargetToCenter(t *testing.T) {
	sun := NewLight(LightTypeDirectional, WithPosition(100, 100, 50))
	vp := sun.ShadowViewProjection()

	origin := common.TransformPoint(vp[:], [3]float32{0, 0, 0})
	assert.InDelta(t, 0, origin[0], 1e-4)
	assert.InDelta(t, 0, origin[1], 1e-4)
	assert.Greater(t, origin[2], float32(0))
	assert.Less(t, origin[2], float32(1))

	// Points nearer the light have smaller depth.
	nearer := common.TransformPoint(vp[:], [3]float32{50, 50, 25})
	assert.Less(t, nearer[2], origin[2])
}

func TestShadowViewProjectionStraightDown(t *testing.T) {
	sun := NewLight(LightTypeDirectional, WithPosition(0, 100, 0))
	vp := sun.ShadowViewProjection()
	p := common.TransformPoint(vp[:], [3]float32{0, 0, 0})
	for _, v := range p {
		assert.False(t, v != v)
	}
}
