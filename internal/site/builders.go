// Package site builds the construction site scene: water, road, arch bridge and cranes, plus the
// driver that animates it.
package site

import (
	"github.com/Carmen-Shannon/bridgeworks/common"
	"github.com/Carmen-Shannon/bridgeworks/engine/game_object"
	"github.com/Carmen-Shannon/bridgeworks/engine/model"
	"github.com/Carmen-Shannon/bridgeworks/engine/renderer/material"
	"github.com/chewxy/math32"
)

const (
	// CableSamples is the number of suspension cables per arch: one every 0.05 of the curve, both ends included.
	CableSamples = 21

	// WaterLevel is the height of the water plane.
	WaterLevel = -20
)

// ArchPoints are the control points of the front arch.
var ArchPoints = [][3]float32{
	{-140, -5, 15},
	{-100, 30, 15},
	{-60, 55, 15},
	{0, 65, 15},
	{60, 55, 15},
	{100, 30, 15},
	{140, -5, 15},
}

// ArchCurve returns the centripetal Catmull-Rom curve through ArchPoints.
func ArchCurve() *common.CatmullRomCurve {
	return common.NewCatmullRomCurve(ArchPoints, common.WithCurveType(common.CurveCentripetal), common.WithTension(0.5))
}

func standard(name string, hex uint32, roughness, metalness float32) material.Material {
	return material.NewMaterial(
		material.WithName(name),
		material.WithColor(hex),
		material.WithRoughness(roughness),
		material.WithMetalness(metalness),
	)
}

func flat(obj game_object.GameObject) game_object.GameObject {
	_, ry, rz := obj.Rotation()
	obj.SetRotation(-math32.Pi/2, ry, rz)
	return obj
}

// CreateWater builds the translucent water plane.
//
// Returns:
//   - game_object.GameObject: the water mesh; its material carries the animated opacity
func CreateWater() game_object.GameObject {
	mat := material.NewMaterial(
		material.WithName("water"),
		material.WithType(material.MaterialTypePhong),
		material.WithColor(0x006994),
		material.WithTransparent(0.8),
		material.WithShininess(100),
	)
	return flat(game_object.NewGameObject(
		game_object.WithName("water"),
		game_object.WithMesh(model.NewPlane(1000, 1000), mat),
		game_object.WithPosition(0, WaterLevel, 0),
		game_object.WithReceiveShadow(true),
	))
}

// CreateRoad builds the road surface with four dashed lanes and two side lines.
//
// Returns:
//   - game_object.GameObject: the road group with 51 children
func CreateRoad() game_object.GameObject {
	road := game_object.NewGameObject(game_object.WithName("road"))
	children := []game_object.GameObject{
		flat(game_object.NewGameObject(
			game_object.WithName("road-surface"),
			game_object.WithMesh(model.NewPlane(300, 60), standard("asphalt", 0x333333, 0.8, 0.2)),
			game_object.WithReceiveShadow(true),
		)),
	}

	lineMat := material.NewMaterial(
		material.WithName("road-line"),
		material.WithColor(0xffffff),
		material.WithEmissive(0xffffff),
		material.WithRoughness(0.2),
	)
	dash := model.NewPlane(12, 1)
	for x := -140; x <= 140; x += 25 {
		for _, z := range []float32{-15, -5, 5, 15} {
			children = append(children, flat(game_object.NewGameObject(
				game_object.WithName("lane-dash"),
				game_object.WithMesh(dash, lineMat),
				game_object.WithPosition(float32(x), 0.01, z),
			)))
		}
	}

	side := flat(game_object.NewGameObject(
		game_object.WithName("side-line"),
		game_object.WithMesh(model.NewPlane(300, 1.2), lineMat),
		game_object.WithPosition(0, 0.01, 25),
	))
	other := side.Clone()
	other.SetPosition(0, 0.01, -25)
	children = append(children, side, other)

	// Freshly built nodes have no parents, so Add cannot fail.
	_ = road.Add(children...)
	return road
}

// CreateArchBridge builds the deck, two arches with suspension cables, cross beams, diagonal
// supports and pillars.
//
// Returns:
//   - game_object.GameObject: the bridge group with 98 children
func CreateArchBridge() game_object.GameObject {
	bridge := game_object.NewGameObject(game_object.WithName("bridge"))
	deckMat := standard("deck", 0x333333, 0.8, 0.2)
	children := []game_object.GameObject{
		game_object.NewGameObject(
			game_object.WithName("deck"),
			game_object.WithMesh(model.NewBox(300, 2, 40), deckMat),
			game_object.WithPosition(0, 0.5, 0),
			game_object.WithCastShadow(true),
			game_object.WithReceiveShadow(true),
		),
	}

	curve := ArchCurve()
	front := game_object.NewGameObject(
		game_object.WithName("arch"),
		game_object.WithMesh(model.NewTube(curve, 50, 4, 16), standard("arch", 0x2c3e50, 0.3, 0.8)),
		game_object.WithCastShadow(true),
	)
	back := front.Clone()
	back.SetPosition(0, 0, -30)
	children = append(children, front, back)

	cable := model.NewCylinder(0.2, 0.2, 1, 8)
	cableMat := standard("cable", 0x666666, 1, 0.8)
	for k := 0; k < CableSamples; k++ {
		p := curve.Point(float32(k) * 0.05)
		c := game_object.NewGameObject(
			game_object.WithName("suspension-cable"),
			game_object.WithMesh(cable, cableMat),
			game_object.WithPosition(p[0], p[1]/2, 15),
			game_object.WithScale(1, p[1], 1),
		)
		backCable := c.Clone()
		backCable.SetPosition(p[0], p[1]/2, -15)
		children = append(children, c, backCable)
	}

	beamMat := standard("beam", 0x34495e, 0.5, 0.7)
	beam := model.NewBox(4, 1, 30)
	for x := -140; x <= 140; x += 20 {
		children = append(children, game_object.NewGameObject(
			game_object.WithName("cross-beam"),
			game_object.WithMesh(beam, beamMat),
			game_object.WithPosition(float32(x), -1, 0),
		))
	}

	support := model.NewBox(28, 1, 1)
	for x := -130; x <= 130; x += 20 {
		s1 := game_object.NewGameObject(
			game_object.WithName("diagonal-support"),
			game_object.WithMesh(support, beamMat),
			game_object.WithPosition(float32(x), -1, 0),
			game_object.WithRotation(0, math32.Pi/4, math32.Pi/6),
		)
		s2 := s1.Clone()
		s2.SetRotation(0, -math32.Pi/4, math32.Pi/6)
		children = append(children, s1, s2)
	}

	pillar := model.NewBox(8, 40, 8)
	pillarMat := standard("pillar", 0x34495e, 0.5, 0.7)
	for _, x := range []float32{-120, -60, 0, 60, 120} {
		p := game_object.NewGameObject(
			game_object.WithName("pillar"),
			game_object.WithMesh(pillar, pillarMat),
			game_object.WithPosition(x, -20, 15),
			game_object.WithCastShadow(true),
		)
		backPillar := p.Clone()
		backPillar.SetPosition(x, -20, -15)
		children = append(children, p, backPillar)
	}

	_ = bridge.Add(children...)
	return bridge
}
