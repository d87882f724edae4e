package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrustumIntersectsSphere(t *testing.T) {
	var view, proj, vp [16]float32
	LookAt(view[:], 0, 80, 200, 0, 0, 0, 0, 1, 0)
	Perspective(proj[:], DegToRad(75), 1, 0.1, 1000)
	Mul4(vp[:], proj[:], view[:])
	f := ExtractFrustumFromMatrix(vp[:])

	assert.True(t, f.IntersectsSphere([3]float32{0, 0, 0}, 1))
	assert.False(t, f.IntersectsSphere([3]float32{0, 80, 400}, 10), "behind the camera")
	assert.False(t, f.IntersectsSphere([3]float32{5000, 0, 0}, 10), "far to the side")
	assert.True(t, f.IntersectsSphere([3]float32{5000, 0, 0}, 5000), "large enough to reach inside")
}

func TestMaxScale(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 0, 0, 0, 0.4, 0.2, 0, 1, 65, 1)
	assert.InDelta(t, 65, MaxScale(m[:]), 1e-3)
}
