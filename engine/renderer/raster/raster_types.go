package raster

import (
	"github.com/Carmen-Shannon/bridgeworks/common"
	"github.com/Carmen-Shannon/bridgeworks/engine/light"
	"github.com/Carmen-Shannon/bridgeworks/engine/model"
	"github.com/Carmen-Shannon/bridgeworks/engine/renderer/material"
)

// Fog blends fragments toward a color as their view depth moves from Near to Far.
type Fog struct {
	Color common.Color
	Near  float32
	Far   float32
}

// Item is one mesh to draw: a model in world space with its surface.
type Item struct {
	Model         model.Model
	Material      material.Material
	World         [16]float32
	CastShadow    bool
	ReceiveShadow bool
}

// Frame is everything the rasterizer needs for one image.
type Frame struct {
	// ViewProjection maps world space to clip space with depth in [0, 1].
	ViewProjection [16]float32
	// Eye is the camera position in world space, used for specular highlights.
	Eye        [3]float32
	Background common.Color
	// Fog is optional; nil disables it.
	Fog    *Fog
	Lights []light.Light
	Items  []Item
}

// Stats reports the work done for the last frame.
type Stats struct {
	Items       int
	Culled      int
	Triangles   int
	Transparent int
	ShadowMaps  int
}

// clipVertex is a vertex after the world and view-projection transforms.
type clipVertex struct {
	clip   [4]float32
	world  [3]float32
	normal [3]float32
}

// screenVertex is a vertex after the perspective divide. Attributes are stored pre-divided by w
// so they interpolate linearly in screen space.
type screenVertex struct {
	x, y, z float32
	invW    float32
	world   [3]float32
	normal  [3]float32
}

// triangle is a rasterization-ready primitive with its screen bounds.
type triangle struct {
	v [3]screenVertex

	minX, minY, maxX, maxY int

	surface *surface
	// depth sorts transparent triangles back to front; it is the owning item's view distance.
	depth float32
}

// surface is the per-item shading state shared by its triangles.
type surface struct {
	mat           materialSnapshot
	receiveShadow bool
}

// materialSnapshot freezes material values for the duration of a frame so that
// concurrent opacity animation never tears a single image.
type materialSnapshot struct {
	phong       bool
	color       common.Color
	emissive    common.Color
	specular    common.Color
	roughness   float32
	metalness   float32
	shininess   float32
	transparent bool
	opacity     float32
}

func snapshot(m material.Material) materialSnapshot {
	return materialSnapshot{
		phong:       m.Type() == material.MaterialTypePhong,
		color:       m.Color(),
		emissive:    m.Emissive(),
		specular:    m.Specular(),
		roughness:   m.Roughness(),
		metalness:   m.Metalness(),
		shininess:   m.Shininess(),
		transparent: m.Transparent(),
		opacity:     m.Opacity(),
	}
}
