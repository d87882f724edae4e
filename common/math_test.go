package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func assertVec3(t *testing.T, expected, actual [3]float32) {
	t.Helper()
	for i := range expected {
		assert.InDelta(t, expected[i], actual[i], 1e-4, "component %d", i)
	}
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	BuildModelMatrix(m[:], 1, 2, 3, 0.1, 0.2, 0.3, 1, 2, 3)
	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)
}

func TestBuildModelMatrixRotateXMinusHalfPi(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 0, -20, 0, -math32.Pi/2, 0, 0, 1, 1, 1)

	// A plane facing +Z lies flat facing +Y after the rotation.
	assertVec3(t, [3]float32{0, 1, 0}, Normalize3(TransformDirection(m[:], [3]float32{0, 0, 1})))
	p := TransformPoint(m[:], [3]float32{0, 10, 0})
	assertVec3(t, [3]float32{0, -20, -10}, [3]float32{p[0], p[1], p[2]})
}

func TestBuildModelMatrixEulerOrder(t *testing.T) {
	var m, rx, ry, rz, tmp, expected [16]float32
	BuildModelMatrix(m[:], 0, 0, 0, 0.3, -0.7, 0.5, 1, 1, 1)
	BuildModelMatrix(rx[:], 0, 0, 0, 0.3, 0, 0, 1, 1, 1)
	BuildModelMatrix(ry[:], 0, 0, 0, 0, -0.7, 0, 1, 1, 1)
	BuildModelMatrix(rz[:], 0, 0, 0, 0, 0, 0.5, 1, 1, 1)
	Mul4(tmp[:], rx[:], ry[:])
	Mul4(expected[:], tmp[:], rz[:])
	for i := range m {
		assert.InDelta(t, expected[i], m[i], 1e-5)
	}
}

func TestInvert4(t *testing.T) {
	var m, inv, out [16]float32
	BuildModelMatrix(m[:], 4, -2, 7, 0.4, 1.1, -0.3, 2, 0.5, 3)
	assert.True(t, Invert4(inv[:], m[:]))
	Mul4(out[:], m[:], inv[:])
	var id [16]float32
	Identity(id[:])
	for i := range out {
		assert.InDelta(t, id[i], out[i], 1e-4)
	}

	var singular [16]float32
	assert.False(t, Invert4(inv[:], singular[:]))
}

func TestPerspectiveDepthRange(t *testing.T) {
	var p [16]float32
	Perspective(p[:], DegToRad(75), 16.0/9.0, 0.1, 1000)

	near := TransformPoint(p[:], [3]float32{0, 0, -0.1})
	far := TransformPoint(p[:], [3]float32{0, 0, -1000})
	assert.InDelta(t, 0, near[2]/near[3], 1e-4)
	assert.InDelta(t, 1, far[2]/far[3], 1e-4)
}

func TestOrthoDepthRange(t *testing.T) {
	var o [16]float32
	Ortho(o[:], -100, 100, -100, 100, 0.5, 500)

	near := TransformPoint(o[:], [3]float32{100, -100, -0.5})
	far := TransformPoint(o[:], [3]float32{0, 0, -500})
	assertVec3(t, [3]float32{1, -1, 0}, [3]float32{near[0], near[1], near[2]})
	assert.InDelta(t, 1, far[2], 1e-5)
}

func TestLookAtMapsTargetToNegativeZ(t *testing.T) {
	var v [16]float32
	LookAt(v[:], 0, 80, 200, 0, 0, 0, 0, 1, 0)
	p := TransformPoint(v[:], [3]float32{0, 0, 0})
	dist := Length3([3]float32{0, 80, 200})
	assertVec3(t, [3]float32{0, 0, -dist}, [3]float32{p[0], p[1], p[2]})
}

func TestRotateAxis(t *testing.T) {
	r := RotateAxis([3]float32{1, 0, 0}, [3]float32{0, 0, 1}, math32.Pi/2)
	assertVec3(t, [3]float32{0, 1, 0}, r)
}

func TestColorFromHex(t *testing.T) {
	c := ColorFromHex(0x006994)
	assert.Equal(t, float32(0), c.R)
	assert.Equal(t, uint32(0x006994), c.Hex())
	assert.Equal(t, uint32(0xffffff), ColorFromHex(0xffffff).Hex())
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 0, 3, 4))
	assert.Equal(t, "", Coalesce[string]())
}
