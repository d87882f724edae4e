package site

import (
	"github.com/Carmen-Shannon/bridgeworks/engine/game_object"
	"github.com/Carmen-Shannon/bridgeworks/engine/model"
	"github.com/Carmen-Shannon/bridgeworks/engine/renderer/material"
)

// Rest heights of the moving crane parts.
const (
	cableRestY = 28
	hookRestY  = 18
	blockRestY = 14
)

// CranePositions are the (x, z) ground positions of the six cranes.
var CranePositions = [][2]float32{
	{-120, 40},
	{-120, -40},
	{0, 60},
	{0, -60},
	{120, 40},
	{120, -40},
}

// Crane is a crane group with named handles to its parts. The group's children are, in order,
// Base, Arm, Counterweight, Cable, Hook and Block.
type Crane struct {
	Group         game_object.GameObject
	Base          game_object.GameObject
	Arm           game_object.GameObject
	Counterweight game_object.GameObject
	Cable         game_object.GameObject
	Hook          game_object.GameObject
	Block         game_object.GameObject
}

// CreateCrane builds a crane standing at (x, 0, z).
//
// Parameters:
//   - x, z: ground position
//
// Returns:
//   - *Crane: the crane and its part handles
func CreateCrane(x, z float32) *Crane {
	frame := material.NewMaterial(
		material.WithName("crane"),
		material.WithColor(0xdd3333),
		material.WithMetalness(0.5),
		material.WithRoughness(0.7),
	)

	part := func(name string, m model.Model, mat material.Material, px, py float32, castShadow bool) game_object.GameObject {
		return game_object.NewGameObject(
			game_object.WithName(name),
			game_object.WithMesh(m, mat),
			game_object.WithPosition(px, py, 0),
			game_object.WithCastShadow(castShadow),
		)
	}

	cableMat := material.NewMaterial(material.WithName("cable"), material.WithColor(0x666666), material.WithMetalness(0.8))
	hookMat := material.NewMaterial(material.WithName("hook"), material.WithColor(0x444444), material.WithMetalness(0.9))
	blockMat := material.NewMaterial(
		material.WithName("block"),
		material.WithColor(0x888888),
		material.WithRoughness(0.7),
		material.WithMetalness(0.3),
	)

	c := &Crane{
		Group:         game_object.NewGameObject(game_object.WithName("crane"), game_object.WithPosition(x, 0, z)),
		Base:          part("crane-base", model.NewBox(12, 60, 12), frame, 0, 20, true),
		Arm:           part("crane-arm", model.NewBox(80, 4, 4), frame, 20, 38, true),
		Counterweight: part("crane-counterweight", model.NewBox(10, 10, 8), frame, -10, 38, true),
		Cable:         part("crane-cable", model.NewCylinder(0.2, 0.2, 20, 8), cableMat, 35, cableRestY, false),
		Hook:          part("crane-hook", model.NewBox(3, 3, 3), hookMat, 35, hookRestY, true),
		Block:         part("crane-block", model.NewBox(8, 8, 8), blockMat, 35, blockRestY, true),
	}
	_ = c.Group.Add(c.Base, c.Arm, c.Counterweight, c.Cable, c.Hook, c.Block)
	return c
}

// Apply moves the crane to the given pose.
//
// Parameters:
//   - p: the pose
func (c *Crane) Apply(p Pose) {
	c.Group.SetRotation(0, p.Yaw, 0)

	c.Cable.SetScale(1, p.CableScaleY, 1)
	x, _, z := c.Cable.Position()
	c.Cable.SetPosition(x, p.CableY, z)

	x, _, z = c.Hook.Position()
	c.Hook.SetPosition(x, p.HookY, z)

	x, _, z = c.Block.Position()
	c.Block.SetPosition(x, p.BlockY, z)
}
