package site

import (
	"testing"

	"github.com/Carmen-Shannon/bridgeworks/engine/game_object"
	"github.com/Carmen-Shannon/bridgeworks/engine/renderer/material"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countNamed(children []game_object.GameObject, name string) []game_object.GameObject {
	var out []game_object.GameObject
	for _, c := range children {
		if c.Name() == name {
			out = append(out, c)
		}
	}
	return out
}

func TestWater(t *testing.T) {
	w := CreateWater()
	mat := w.Material()
	require.NotNil(t, mat)
	assert.Equal(t, material.MaterialTypePhong, mat.Type())
	assert.Equal(t, uint32(0x006994), mat.Color().Hex())
	assert.True(t, mat.Transparent())
	assert.InDelta(t, 0.8, mat.Opacity(), 1e-6)
	assert.Equal(t, float32(100), mat.Shininess())
	assert.True(t, w.ReceiveShadow())

	rx, _, _ := w.Rotation()
	assert.InDelta(t, -math32.Pi/2, rx, 1e-6)
	_, y, _ := w.Position()
	assert.Equal(t, float32(-20), y)
}

func TestRoad(t *testing.T) {
	road := CreateRoad()
	children := road.Children()
	require.Len(t, children, 51)
	assert.Equal(t, "road-surface", children[0].Name())

	dashes := countNamed(children, "lane-dash")
	require.Len(t, dashes, 48)
	x, y, z := dashes[0].Position()
	assert.Equal(t, [3]float32{-140, 0.01, -15}, [3]float32{x, y, z})
	x, _, z = dashes[47].Position()
	assert.Equal(t, [2]float32{135, 15}, [2]float32{x, z})
	assert.Equal(t, uint32(0xffffff), dashes[0].Material().Emissive().Hex())

	sides := countNamed(children, "side-line")
	require.Len(t, sides, 2)
	_, _, z1 := sides[0].Position()
	_, _, z2 := sides[1].Position()
	assert.Equal(t, [2]float32{25, -25}, [2]float32{z1, z2})
	assert.Equal(t, sides[0].Model(), sides[1].Model())
}

func TestArchBridge(t *testing.T) {
	bridge := CreateArchBridge()
	children := bridge.Children()
	require.Len(t, children, 98)

	deck := children[0]
	assert.True(t, deck.CastShadow())
	assert.True(t, deck.ReceiveShadow())

	arches := countNamed(children, "arch")
	require.Len(t, arches, 2)
	_, _, z := arches[1].Position()
	assert.Equal(t, float32(-30), z)
	assert.True(t, arches[0].CastShadow())

	cables := countNamed(children, "suspension-cable")
	require.Len(t, cables, 2*CableSamples)
	front, back := 0, 0
	for _, c := range cables {
		if _, _, z := c.Position(); z == 15 {
			front++
		} else if z == -15 {
			back++
		}
	}
	assert.Equal(t, CableSamples, front)
	assert.Equal(t, CableSamples, back)

	mid := cables[2*10]
	_, y, _ := mid.Position()
	_, sy, _ := mid.Scale()
	assert.InDelta(t, 65, sy, 1e-3)
	assert.InDelta(t, 32.5, y, 1e-3)
	_, sy, _ = cables[0].Scale()
	assert.InDelta(t, -5, sy, 1e-3)

	assert.Len(t, countNamed(children, "cross-beam"), 15)
	supports := countNamed(children, "diagonal-support")
	require.Len(t, supports, 28)
	_, ry1, rz1 := supports[0].Rotation()
	_, ry2, rz2 := supports[1].Rotation()
	assert.InDelta(t, math32.Pi/4, ry1, 1e-6)
	assert.InDelta(t, -math32.Pi/4, ry2, 1e-6)
	assert.InDelta(t, math32.Pi/6, rz1, 1e-6)
	assert.InDelta(t, math32.Pi/6, rz2, 1e-6)

	pillars := countNamed(children, "pillar")
	require.Len(t, pillars, 10)
	for _, p := range pillars {
		assert.True(t, p.CastShadow())
		_, y, _ := p.Position()
		assert.Equal(t, float32(-20), y)

		mat := p.Material()
		assert.Equal(t, uint32(0x34495e), mat.Color().Hex())
		assert.InDelta(t, 0.5, mat.Roughness(), 1e-6)
		assert.InDelta(t, 0.7, mat.Metalness(), 1e-6)
	}
	assert.NotSame(t, deck.Material(), pillars[0].Material())
}

func TestCraneChildOrderAndHandles(t *testing.T) {
	c := CreateCrane(-120, 40)
	children := c.Group.Children()
	require.Len(t, children, 6)
	assert.Equal(t, []game_object.GameObject{c.Base, c.Arm, c.Counterweight, c.Cable, c.Hook, c.Block}, children)

	x, _, z := c.Group.Position()
	assert.Equal(t, [2]float32{-120, 40}, [2]float32{x, z})
	_, y, _ := c.Hook.Position()
	assert.Equal(t, float32(18), y)
	_, y, _ = c.Block.Position()
	assert.Equal(t, float32(14), y)
	for _, part := range children {
		assert.Equal(t, part != c.Cable, part.CastShadow(), part.Name())
	}
	assert.Equal(t, uint32(0xdd3333), c.Base.Material().Color().Hex())
	assert.Same(t, c.Base.Material(), c.Arm.Material())
}
