package game_object

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/bridgeworks/common"
	"github.com/Carmen-Shannon/bridgeworks/engine/model"
	"github.com/Carmen-Shannon/bridgeworks/engine/renderer/material"
)

var (
	// ErrHasParent is returned when adding a node that is already owned by another group.
	ErrHasParent = errors.New("game object already has a parent")

	// ErrCycle is returned when adding a node to itself or to one of its own descendants.
	ErrCycle = errors.New("game object cannot be added to itself or its descendants")

	// ErrForeign is returned when a GameObject implementation from outside this package is added.
	ErrForeign = errors.New("game object was not created by NewGameObject")
)

// objectCount is an atomic counter used to generate unique IDs for each game object.
var objectCount atomic.Uint64

// graphMu guards every parent and children link in the process. Structural edits are rare
// (scene assembly), so a single lock keeps multi-node checks such as cycle detection atomic.
var graphMu sync.RWMutex

// Kind distinguishes pure grouping nodes from drawable meshes.
type Kind int

const (
	// KindGroup has no geometry; it only parents other nodes and composes their transforms.
	KindGroup Kind = iota
	// KindMesh draws a model with a material.
	KindMesh
)

type gameObject struct {
	mu *sync.Mutex

	id      uint64
	name    string
	kind    Kind
	enabled atomic.Bool

	mdl model.Model
	mat material.Material

	position [3]float32
	rotation [3]float32
	scale    [3]float32

	castShadow    bool
	receiveShadow bool

	parent   *gameObject
	children []*gameObject
}

// GameObject defines the interface for a node of the scene graph.
//
// Every node is owned by at most one parent. Transforms are relative to the parent and composed
// as translation * rotation(X, then Y, then Z Euler order) * scale. Transform accessors are safe
// for concurrent use.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the human-readable name, used in logs and lookups.
	//
	// Returns:
	//   - string: the object name
	Name() string

	// Kind reports whether this node is a group or a mesh.
	//
	// Returns:
	//   - Kind: the node kind
	Kind() Kind

	// Enabled returns whether this object and its subtree are rendered.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Model returns the Model drawn by this node, or nil for groups.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// Material returns the Material used to draw this node, or nil for groups.
	//
	// Returns:
	//   - material.Material: the associated material or nil
	Material() material.Material

	// Position returns the translation relative to the parent.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Rotation returns the Euler rotation in radians relative to the parent.
	//
	// Returns:
	//   - rx, ry, rz: rotation angles
	Rotation() (rx, ry, rz float32)

	// Scale returns the scale relative to the parent.
	//
	// Returns:
	//   - sx, sy, sz: scale components
	Scale() (sx, sy, sz float32)

	// CastShadow reports whether the node is drawn into shadow maps.
	//
	// Returns:
	//   - bool: true if the node casts shadows
	CastShadow() bool

	// ReceiveShadow reports whether shadow maps darken this node.
	//
	// Returns:
	//   - bool: true if the node receives shadows
	ReceiveShadow() bool

	// SetEnabled sets whether the object is rendered.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetPosition sets the translation relative to the parent.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetRotation sets the Euler rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: rotation angles
	SetRotation(rx, ry, rz float32)

	// SetScale sets the scale.
	//
	// Parameters:
	//   - sx, sy, sz: scale components
	SetScale(sx, sy, sz float32)

	// LocalMatrix returns the column-major transform relative to the parent.
	//
	// Returns:
	//   - [16]float32: the local matrix
	LocalMatrix() [16]float32

	// WorldMatrix composes the local matrices from the root down to this node.
	//
	// Returns:
	//   - [16]float32: the world matrix
	WorldMatrix() [16]float32

	// Parent returns the owning group, or nil for a detached node or the root.
	//
	// Returns:
	//   - GameObject: the parent or nil
	Parent() GameObject

	// Children returns a snapshot of the direct children in insertion order.
	//
	// Returns:
	//   - []GameObject: the children
	Children() []GameObject

	// Add appends children in order. Either every child is attached or, on error, none is.
	//
	// Parameters:
	//   - children: the nodes to attach
	//
	// Returns:
	//   - error: ErrHasParent, ErrCycle or ErrForeign when ownership would be violated
	Add(children ...GameObject) error

	// Remove detaches a direct child.
	//
	// Parameters:
	//   - child: the node to detach
	//
	// Returns:
	//   - bool: true if the child was found and removed
	Remove(child GameObject) bool

	// Traverse visits this node and its descendants depth-first in child order.
	// Returning false from fn skips the visited node's subtree.
	//
	// Parameters:
	//   - fn: the visitor
	Traverse(fn func(GameObject) bool)

	// Clone copies this node and its subtree. The copies share models and materials
	// with the originals, and the returned root is detached.
	//
	// Returns:
	//   - GameObject: the detached copy
	Clone() GameObject
}

var _ GameObject = &gameObject{}

// NewGameObject creates a detached node. Without a model it is a group; WithMesh makes it a mesh.
//
// Parameters:
//   - options: functional options to configure the node
//
// Returns:
//   - GameObject: the newly created node
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:    &sync.Mutex{},
		id:    objectCount.Add(1),
		kind:  KindGroup,
		scale: [3]float32{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Kind() Kind {
	return g.kind
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Material() material.Material {
	return g.mat
}

func (g *gameObject) Position() (x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position[0], g.position[1], g.position[2]
}

func (g *gameObject) Rotation() (rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation[0], g.rotation[1], g.rotation[2]
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale[0], g.scale[1], g.scale[2]
}

func (g *gameObject) CastShadow() bool {
	return g.castShadow
}

func (g *gameObject) ReceiveShadow() bool {
	return g.receiveShadow
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = [3]float32{x, y, z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = [3]float32{rx, ry, rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = [3]float32{sx, sy, sz}
}

func (g *gameObject) LocalMatrix() [16]float32 {
	g.mu.Lock()
	p, r, s := g.position, g.rotation, g.scale
	g.mu.Unlock()

	var m [16]float32
	common.BuildModelMatrix(m[:], p[0], p[1], p[2], r[0], r[1], r[2], s[0], s[1], s[2])
	return m
}

func (g *gameObject) WorldMatrix() [16]float32 {
	graphMu.RLock()
	chain := make([]*gameObject, 0, 4)
	for n := g; n != nil; n = n.parent {
		chain = append(chain, n)
	}
	graphMu.RUnlock()

	var world [16]float32
	common.Identity(world[:])
	for i := len(chain) - 1; i >= 0; i-- {
		local := chain[i].LocalMatrix()
		common.Mul4(world[:], world[:], local[:])
	}
	return world
}

func (g *gameObject) Parent() GameObject {
	graphMu.RLock()
	defer graphMu.RUnlock()
	if g.parent == nil {
		return nil
	}
	return g.parent
}

func (g *gameObject) Children() []GameObject {
	graphMu.RLock()
	defer graphMu.RUnlock()
	out := make([]GameObject, len(g.children))
	for i, c := range g.children {
		out[i] = c
	}
	return out
}

func (g *gameObject) Add(children ...GameObject) error {
	graphMu.Lock()
	defer graphMu.Unlock()

	batch := make([]*gameObject, 0, len(children))
	seen := make(map[*gameObject]struct{}, len(children))
	for _, c := range children {
		child, ok := c.(*gameObject)
		if !ok || child == nil {
			return ErrForeign
		}
		if child.parent != nil {
			return ErrHasParent
		}
		if _, dup := seen[child]; dup {
			return ErrHasParent
		}
		for n := g; n != nil; n = n.parent {
			if n == child {
				return ErrCycle
			}
		}
		seen[child] = struct{}{}
		batch = append(batch, child)
	}

	for _, child := range batch {
		child.parent = g
		g.children = append(g.children, child)
	}
	return nil
}

func (g *gameObject) Remove(c GameObject) bool {
	child, ok := c.(*gameObject)
	if !ok {
		return false
	}
	graphMu.Lock()
	defer graphMu.Unlock()
	for i, existing := range g.children {
		if existing == child {
			g.children = append(g.children[:i], g.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

func (g *gameObject) Traverse(fn func(GameObject) bool) {
	if !fn(g) {
		return
	}
	for _, c := range g.Children() {
		c.Traverse(fn)
	}
}

func (g *gameObject) Clone() GameObject {
	g.mu.Lock()
	cp := &gameObject{
		mu:            &sync.Mutex{},
		id:            objectCount.Add(1),
		name:          g.name,
		kind:          g.kind,
		mdl:           g.mdl,
		mat:           g.mat,
		position:      g.position,
		rotation:      g.rotation,
		scale:         g.scale,
		castShadow:    g.castShadow,
		receiveShadow: g.receiveShadow,
	}
	g.mu.Unlock()
	cp.enabled.Store(g.Enabled())

	for _, c := range g.Children() {
		child := c.Clone().(*gameObject)
		child.parent = cp
		cp.children = append(cp.children, child)
	}
	return cp
}
