package game_object

import (
	"github.com/Carmen-Shannon/bridgeworks/engine/model"
	"github.com/Carmen-Shannon/bridgeworks/engine/renderer/material"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithName sets the name of the GameObject.
//
// Parameters:
//   - name: identifier used in logs and lookups
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject is enabled for rendering.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithMesh turns the GameObject into a mesh drawing the given model with the given material.
//
// Parameters:
//   - m: the shape to draw
//   - mat: the surface to draw it with
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the mesh
func WithMesh(m model.Model, mat material.Material) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.kind = KindMesh
		obj.mdl = m
		obj.mat = mat
	}
}

// WithPosition sets the initial position of the GameObject.
//
// Parameters:
//   - x, y, z: position relative to the parent
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = [3]float32{x, y, z}
	}
}

// WithScale sets the initial scale of the GameObject.
//
// Parameters:
//   - sx, sy, sz: scale factors
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = [3]float32{sx, sy, sz}
	}
}

// WithRotation sets the initial Euler rotation of the GameObject.
//
// Parameters:
//   - rx, ry, rz: rotation angles in radians
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = [3]float32{rx, ry, rz}
	}
}

// WithCastShadow sets whether the GameObject is drawn into shadow maps.
//
// Parameters:
//   - cast: true to cast shadows
//
// Returns:
//   - GameObjectBuilderOption: functional option to set shadow casting
func WithCastShadow(cast bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.castShadow = cast
	}
}

// WithReceiveShadow sets whether shadow maps darken the GameObject.
//
// Parameters:
//   - receive: true to receive shadows
//
// Returns:
//   - GameObjectBuilderOption: functional option to set shadow receiving
func WithReceiveShadow(receive bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.receiveShadow = receive
	}
}
