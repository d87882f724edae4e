package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/bridgeworks/common"
	"github.com/Carmen-Shannon/bridgeworks/engine/model"
	"github.com/Carmen-Shannon/bridgeworks/engine/renderer/material"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameObjectDefaults(t *testing.T) {
	g := NewGameObject(WithName("road"))
	assert.Equal(t, KindGroup, g.Kind())
	assert.True(t, g.Enabled())
	sx, sy, sz := g.Scale()
	assert.Equal(t, [3]float32{1, 1, 1}, [3]float32{sx, sy, sz})
	assert.Nil(t, g.Model())
	assert.Nil(t, g.Parent())

	other := NewGameObject()
	assert.NotEqual(t, g.ID(), other.ID())
}

func TestAddPreservesOrderAndOwnership(t *testing.T) {
	root := NewGameObject()
	a, b, c := NewGameObject(WithName("a")), NewGameObject(WithName("b")), NewGameObject(WithName("c"))
	require.NoError(t, root.Add(a, b, c))

	children := root.Children()
	require.Len(t, children, 3)
	assert.Equal(t, "a", children[0].Name())
	assert.Equal(t, "c", children[2].Name())
	assert.Equal(t, root, a.Parent())

	other := NewGameObject()
	assert.ErrorIs(t, other.Add(b), ErrHasParent)
	assert.Len(t, other.Children(), 0)
}

func TestAddRejectsCycles(t *testing.T) {
	root := NewGameObject()
	child := NewGameObject()
	grandchild := NewGameObject()
	require.NoError(t, root.Add(child))
	require.NoError(t, child.Add(grandchild))

	assert.ErrorIs(t, root.Add(root), ErrCycle)
	assert.ErrorIs(t, grandchild.Add(root), ErrCycle)

	detached := NewGameObject()
	inner := NewGameObject()
	require.NoError(t, detached.Add(inner))
	assert.ErrorIs(t, inner.Add(detached), ErrCycle)
}

func TestAddIsAllOrNothing(t *testing.T) {
	owner := NewGameObject()
	owned := NewGameObject()
	require.NoError(t, owner.Add(owned))

	g := NewGameObject()
	fresh := NewGameObject()
	assert.ErrorIs(t, g.Add(fresh, owned), ErrHasParent)
	assert.Len(t, g.Children(), 0)
	assert.Nil(t, fresh.Parent())

	assert.ErrorIs(t, g.Add(fresh, fresh), ErrHasParent)
	assert.Nil(t, fresh.Parent())
}

func TestRemove(t *testing.T) {
	root := NewGameObject()
	child := NewGameObject()
	require.NoError(t, root.Add(child))
	assert.True(t, root.Remove(child))
	assert.False(t, root.Remove(child))
	assert.Nil(t, child.Parent())
	assert.NoError(t, NewGameObject().Add(child))
}

func TestWorldMatrixComposesParents(t *testing.T) {
	crane := NewGameObject(WithPosition(-120, 0, 40))
	hook := NewGameObject(WithPosition(35, 18, 0))
	require.NoError(t, crane.Add(hook))

	crane.SetRotation(0, math32.Pi/2, 0)
	w := hook.WorldMatrix()
	p := common.TransformPoint(w[:], [3]float32{})
	assert.InDelta(t, -120, p[0], 1e-3)
	assert.InDelta(t, 18, p[1], 1e-3)
	assert.InDelta(t, 40-35, p[2], 1e-3)
}

func TestCloneSharesModelAndMaterial(t *testing.T) {
	box := model.NewBox(8, 40, 8)
	mat := material.NewMaterial()
	pillar := NewGameObject(WithMesh(box, mat), WithPosition(-120, -20, 15), WithCastShadow(true))
	parent := NewGameObject()
	require.NoError(t, parent.Add(pillar))

	clone := pillar.Clone()
	assert.Nil(t, clone.Parent())
	assert.NotEqual(t, pillar.ID(), clone.ID())
	assert.Equal(t, box, clone.Model())
	assert.Equal(t, mat, clone.Material())
	assert.True(t, clone.CastShadow())

	clone.SetPosition(-120, -20, -15)
	_, _, z := pillar.Position()
	assert.Equal(t, float32(15), z)
	require.NoError(t, parent.Add(clone))
}

func TestTraverseSkipsSubtree(t *testing.T) {
	root := NewGameObject(WithName("root"))
	hidden := NewGameObject(WithName("hidden"))
	require.NoError(t, hidden.Add(NewGameObject(WithName("inner"))))
	require.NoError(t, root.Add(hidden, NewGameObject(WithName("shown"))))

	var visited []string
	root.Traverse(func(g GameObject) bool {
		visited = append(visited, g.Name())
		return g.Name() != "hidden"
	})
	assert.Equal(t, []string{"root", "hidden", "shown"}, visited)
}
