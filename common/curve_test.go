package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var archPoints = [][3]float32{
	{-140, -5, 15},
	{-100, 30, 15},
	{-60, 55, 15},
	{0, 65, 15},
	{60, 55, 15},
	{100, 30, 15},
	{140, -5, 15},
}

func TestCurvePassesThroughControlPoints(t *testing.T) {
	c := NewCatmullRomCurve(archPoints)
	for i, p := range archPoints {
		tt := float32(i) / float32(len(archPoints)-1)
		assertVec3(t, p, c.Point(tt))
	}
}

func TestCurveSymmetricArch(t *testing.T) {
	c := NewCatmullRomCurve(archPoints)
	for _, tt := range []float32{0.05, 0.2, 0.35, 0.45} {
		a := c.Point(tt)
		b := c.Point(1 - tt)
		assert.InDelta(t, a[0], -b[0], 1e-3)
		assert.InDelta(t, a[1], b[1], 1e-3)
		assert.InDelta(t, 15, a[2], 1e-4)
	}
}

func TestCurveArcLengthParameterization(t *testing.T) {
	c := NewCatmullRomCurve(archPoints)
	require.Greater(t, c.Length(), float32(280))

	assertVec3(t, archPoints[0], c.PointAt(0))
	assertVec3(t, archPoints[6], c.PointAt(1))

	// Equal steps in u cover roughly equal chord lengths.
	const n = 10
	prev := c.PointAt(0)
	step := c.Length() / n
	for i := 1; i <= n; i++ {
		cur := c.PointAt(float32(i) / n)
		assert.InDelta(t, step, Length3(Sub3(cur, prev)), step*0.05)
		prev = cur
	}
}

func TestCurveCoincidentPoints(t *testing.T) {
	c := NewCatmullRomCurve([][3]float32{{0, 0, 0}, {0, 0, 0}, {1, 0, 0}})
	p := c.Point(0.25)
	for _, v := range p {
		assert.False(t, v != v, "NaN in curve point")
	}
}

func TestCurveFramesAreOrthonormal(t *testing.T) {
	c := NewCatmullRomCurve(archPoints)
	tangents, normals, binormals := c.Frames(50)
	require.Len(t, tangents, 51)
	for i := range tangents {
		assert.InDelta(t, 1, Length3(tangents[i]), 1e-3)
		assert.InDelta(t, 1, Length3(normals[i]), 1e-3)
		assert.InDelta(t, 0, Dot3(tangents[i], normals[i]), 1e-3)
		assert.InDelta(t, 0, Dot3(normals[i], binormals[i]), 1e-3)
	}
}

func TestUniformCurve(t *testing.T) {
	c := NewCatmullRomCurve([][3]float32{{0, 0, 0}, {1, 1, 0}, {2, 0, 0}}, WithCurveType(CurveUniform), WithTension(0.5))
	assertVec3(t, [3]float32{1, 1, 0}, c.Point(0.5))
}
