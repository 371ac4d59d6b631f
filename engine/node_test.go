package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/spacejam/vmath"
)

func TestNodeAttachDetach(t *testing.T) {
	render := NewRoot("render")
	ship := render.AttachNewNode("Hero")
	cnode := ship.AttachNewNode("Hero-cnode")

	assert.Same(t, render, ship.Parent())
	assert.Equal(t, 1, render.NumChildren())
	assert.Same(t, cnode, render.Find("Hero-cnode"))

	cnode.DetachNode()
	assert.True(t, cnode.IsDetached())
	assert.Zero(t, ship.NumChildren())
	assert.Nil(t, render.Find("Hero-cnode"))

	// Detaching twice is harmless
	cnode.DetachNode()
	assert.True(t, cnode.IsDetached())
}

func TestNodeReparent(t *testing.T) {
	render := NewRoot("render")
	a := render.AttachNewNode("a")
	b := render.AttachNewNode("b")
	c := a.AttachNewNode("c")

	c.ReparentTo(b)
	assert.Zero(t, a.NumChildren())
	require.Equal(t, 1, b.NumChildren())
	assert.Same(t, c, b.Children()[0])

	c.ReparentTo(nil)
	assert.True(t, c.IsDetached())
}

func TestNodeTransform(t *testing.T) {
	n := NewRoot("render").AttachNewNode("Planet1")
	n.SetPos(vmath.Vec3F{X: 1, Y: 2, Z: 3})
	n.SetScale(200)
	n.SetTexture("Mars.jpg")
	n.SetHpr(90, 10)

	assert.Equal(t, vmath.Vec3F{X: 1, Y: 2, Z: 3}, n.Pos())
	assert.Equal(t, n.Pos(), n.PrevPos())
	assert.Equal(t, 200.0, n.Scale())
	assert.Equal(t, "Mars.jpg", n.Texture())
	assert.Equal(t, 90.0, n.H())
	assert.Equal(t, 10.0, n.P())

	n.SetFluidPos(vmath.Vec3F{})
	assert.Equal(t, vmath.Vec3F{X: 1, Y: 2, Z: 3}, n.PrevPos())
}

func TestNodeRelativeVector(t *testing.T) {
	n := NewRoot("render").AttachNewNode("Hero")
	n.SetHpr(90, 0)

	fwd := n.RelativeVector(vmath.Vec3F{Y: 1})
	assert.True(t, vmath.V3FApproxEqual(n.Forward(), fwd, 1e-12))
	assert.True(t, vmath.V3FApproxEqual(vmath.Vec3F{X: -1}, fwd, 1e-12))

	left := n.RelativeVector(vmath.Vec3F{X: -1})
	assert.True(t, vmath.V3FApproxEqual(vmath.Vec3F{Y: -1}, left, 1e-12))

	up := n.RelativeVector(vmath.Vec3F{Z: 1})
	assert.True(t, vmath.V3FApproxEqual(vmath.Vec3F{Z: 1}, up, 1e-12))
}
