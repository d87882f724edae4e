package model

import (
	"github.com/Carmen-Shannon/bridgeworks/common"
)

// model is the implementation of the Model interface.
type model struct {
	name     string
	kind     Kind
	vertices []Vertex
	indices  []uint32

	boundsCenter   [3]float32
	boundingRadius float32
}

// Model defines the interface for an immutable triangle mesh.
// A Model is shared freely between scene nodes; nothing mutates it after construction.
// Triangles are wound counter-clockwise when viewed from their front side.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Kind reports which primitive produced this model.
	//
	// Returns:
	//   - Kind: the primitive kind
	Kind() Kind

	// Vertices returns the vertex array. Callers must not modify the returned slice.
	//
	// Returns:
	//   - []Vertex: the vertices
	Vertices() []Vertex

	// Indices returns the triangle list, three indices per triangle. Callers must not modify the returned slice.
	//
	// Returns:
	//   - []uint32: the triangle indices
	Indices() []uint32

	// TriangleCount returns len(Indices()) / 3.
	//
	// Returns:
	//   - int: the number of triangles
	TriangleCount() int

	// Bounds returns the center and radius of a sphere enclosing every vertex in model space.
	//
	// Returns:
	//   - center: the sphere center
	//   - radius: the sphere radius
	Bounds() (center [3]float32, radius float32)
}

var _ Model = &model{}

// NewModel creates a new Model from raw vertex and index data.
// The bounding sphere is computed from the vertices.
//
// Parameters:
//   - vertices: the vertex array
//   - indices: the triangle list
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: the newly created Model
func NewModel(vertices []Vertex, indices []uint32, options ...ModelBuilderOption) Model {
	m := &model{
		name:     "model",
		kind:     KindCustom,
		vertices: vertices,
		indices:  indices,
	}
	for _, opt := range options {
		opt(m)
	}
	m.computeBounds()
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Kind() Kind {
	return m.kind
}

func (m *model) Vertices() []Vertex {
	return m.vertices
}

func (m *model) Indices() []uint32 {
	return m.indices
}

func (m *model) TriangleCount() int {
	return len(m.indices) / 3
}

func (m *model) Bounds() (center [3]float32, radius float32) {
	return m.boundsCenter, m.boundingRadius
}

// computeBounds fits a sphere around the axis-aligned bounding box of the vertices.
func (m *model) computeBounds() {
	if len(m.vertices) == 0 {
		return
	}
	lo := m.vertices[0].Position
	hi := lo
	for _, v := range m.vertices[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], v.Position[i])
			hi[i] = max(hi[i], v.Position[i])
		}
	}
	m.boundsCenter = common.Scale3(common.Add3(lo, hi), 0.5)

	var r float32
	for _, v := range m.vertices {
		r = max(r, common.Length3(common.Sub3(v.Position, m.boundsCenter)))
	}
	m.boundingRadius = r
}
