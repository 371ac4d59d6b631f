package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/spacejam/vmath"
)

const (
	maskBody CollideMask = 1 << iota
	maskShip
)

func newBody(render *Node, name string, pos vmath.Vec3F, radius float64) *Collider {
	n := render.AttachNewNode(name)
	n.SetPos(pos)
	return NewCollider(n, name+"-cnode", Sphere{Radius: radius}, 0, maskBody)
}

func TestSweptCollisionCatchesTunneling(t *testing.T) {
	render := NewRoot("render")
	trav := NewTraverser()
	planet := newBody(render, "Planet1", vmath.Vec3F{Y: 500}, 50)
	trav.AddSolid(planet)

	missile := render.AttachNewNode("Missile1")
	missile.SetPos(vmath.Vec3F{})
	mc := NewCollider(missile, "Missile1-cnode", Sphere{Radius: 3}, maskBody, 0)

	var hits []CollisionEntry
	trav.AddCollider(mc, CollisionHandlerFunc(func(e CollisionEntry) { hits = append(hits, e) }))

	// Jump straight through the planet in one frame
	missile.SetFluidPos(vmath.Vec3F{Y: 1000})
	trav.Traverse()

	require.Len(t, hits, 1)
	assert.Same(t, planet, hits[0].Into)
	assert.InDelta(t, 447.0/1000.0, hits[0].T, 1e-9)
	assert.InDelta(t, 447.0, hits[0].Point.Y, 1e-9)

	// History reset: a stationary mover does not re-hit the old segment
	hits = nil
	trav.Traverse()
	assert.Empty(t, hits)
}

func TestTeleportDoesNotSweep(t *testing.T) {
	render := NewRoot("render")
	trav := NewTraverser()
	trav.AddSolid(newBody(render, "Planet1", vmath.Vec3F{Y: 500}, 50))

	m := render.AttachNewNode("m")
	mc := NewCollider(m, "m-cnode", Sphere{Radius: 1}, maskBody, 0)
	hit := false
	trav.AddCollider(mc, CollisionHandlerFunc(func(CollisionEntry) { hit = true }))

	m.SetPos(vmath.Vec3F{Y: 1000})
	trav.Traverse()
	assert.False(t, hit)
}

func TestMasksFilterContacts(t *testing.T) {
	render := NewRoot("render")
	trav := NewTraverser()

	ship := render.AttachNewNode("Hero")
	sc := NewCollider(ship, "Hero-cnode", Sphere{Radius: 10}, maskBody, maskShip)
	trav.AddCollider(sc, Pusher{})

	// Missile overlapping the ship but not targeting ships
	m := render.AttachNewNode("m")
	mc := NewCollider(m, "m-cnode", Sphere{Radius: 3}, maskBody, 0)
	hit := false
	trav.AddCollider(mc, CollisionHandlerFunc(func(CollisionEntry) { hit = true }))

	trav.Traverse()
	assert.False(t, hit)
	assert.Equal(t, vmath.Vec3F{}, ship.Pos(), "ship not pushed by a non-body")
}

func TestPusherResolvesOverlap(t *testing.T) {
	render := NewRoot("render")
	trav := NewTraverser()
	trav.AddSolid(newBody(render, "Planet1", vmath.Vec3F{}, 100))

	ship := render.AttachNewNode("Hero")
	ship.SetPos(vmath.Vec3F{X: 50})
	trav.AddCollider(NewCollider(ship, "Hero-cnode", Sphere{Radius: 10}, maskBody, maskShip), Pusher{})

	trav.Traverse()
	assert.True(t, vmath.V3FApproxEqual(vmath.Vec3F{X: 110}, ship.Pos(), 1e-9))
}

func TestPusherDegenerateCenter(t *testing.T) {
	render := NewRoot("render")
	trav := NewTraverser()
	trav.AddSolid(newBody(render, "Planet1", vmath.Vec3F{}, 100))

	ship := render.AttachNewNode("Hero")
	trav.AddCollider(NewCollider(ship, "Hero-cnode", Sphere{Radius: 10}, maskBody, maskShip), Pusher{})

	trav.Traverse()
	assert.True(t, vmath.V3FApproxEqual(vmath.Vec3F{Z: 110}, ship.Pos(), 1e-9))
}

// TestPusherStopsFastMover verifies a ship faster than a small body's diameter stops at it instead of passing through
func TestPusherStopsFastMover(t *testing.T) {
	render := NewRoot("render")
	trav := NewTraverser()
	trav.AddSolid(newBody(render, "Drone1", vmath.Vec3F{Y: 40}, 5))

	ship := render.AttachNewNode("Hero")
	trav.AddCollider(NewCollider(ship, "Hero-cnode", Sphere{Radius: 10}, maskBody, maskShip), Pusher{})

	for frame := 1; frame <= 3; frame++ {
		ship.SetFluidPos(vmath.V3FAdd(ship.Pos(), vmath.Vec3F{Y: 25}))
		trav.Traverse()
		assert.InDelta(t, 25.0, ship.Pos().Y, 1e-9, "frame %d", frame)
	}
	assert.Equal(t, ship.Pos(), ship.PrevPos())
}

// TestPusherStopsAtFirstContact verifies a sweep across two bodies ends at the nearer one
func TestPusherStopsAtFirstContact(t *testing.T) {
	render := NewRoot("render")
	trav := NewTraverser()
	trav.AddSolid(newBody(render, "Drone2", vmath.Vec3F{Y: 200}, 5))
	trav.AddSolid(newBody(render, "Drone1", vmath.Vec3F{Y: 100}, 5))

	ship := render.AttachNewNode("Hero")
	trav.AddCollider(NewCollider(ship, "Hero-cnode", Sphere{Radius: 10}, maskBody, maskShip), Pusher{})

	ship.SetFluidPos(vmath.Vec3F{Y: 300})
	trav.Traverse()
	assert.True(t, vmath.V3FApproxEqual(vmath.Vec3F{Y: 85}, ship.Pos(), 1e-9), "got %v", ship.Pos())
}

// TestPusherLeavesSeparatingMover verifies a move away from a touched body is left alone
func TestPusherLeavesSeparatingMover(t *testing.T) {
	render := NewRoot("render")
	trav := NewTraverser()
	trav.AddSolid(newBody(render, "Planet1", vmath.Vec3F{}, 100))

	ship := render.AttachNewNode("Hero")
	ship.SetPos(vmath.Vec3F{X: 110})
	trav.AddCollider(NewCollider(ship, "Hero-cnode", Sphere{Radius: 10}, maskBody, maskShip), Pusher{})

	ship.SetFluidPos(vmath.Vec3F{X: 135})
	trav.Traverse()
	assert.Equal(t, vmath.Vec3F{X: 135}, ship.Pos())
}

func TestRemoveCollider(t *testing.T) {
	render := NewRoot("render")
	trav := NewTraverser()
	trav.AddSolid(newBody(render, "Planet1", vmath.Vec3F{}, 100))

	m := render.AttachNewNode("m")
	mc := NewCollider(m, "m-cnode", Sphere{Radius: 1}, maskBody, 0)
	hits := 0
	trav.AddCollider(mc, CollisionHandlerFunc(func(CollisionEntry) { hits++ }))
	require.True(t, trav.HasCollider(mc))
	assert.Equal(t, 1, trav.NumColliders())
	assert.Equal(t, 2, trav.NumSolids())

	trav.RemoveCollider(mc)
	trav.Traverse()
	assert.Zero(t, hits)
	assert.False(t, trav.HasCollider(mc))
	assert.Zero(t, trav.NumColliders())
	assert.Equal(t, 1, trav.NumSolids())
}

func TestContactsOrderedByFirstHit(t *testing.T) {
	render := NewRoot("render")
	trav := NewTraverser()
	far := newBody(render, "far", vmath.Vec3F{Y: 800}, 10)
	near := newBody(render, "near", vmath.Vec3F{Y: 300}, 10)
	trav.AddSolid(far)
	trav.AddSolid(near)

	m := render.AttachNewNode("m")
	var order []*Collider
	trav.AddCollider(NewCollider(m, "m-cnode", Sphere{Radius: 1}, maskBody, 0),
		CollisionHandlerFunc(func(e CollisionEntry) { order = append(order, e.Into) }))

	m.SetFluidPos(vmath.Vec3F{Y: 1000})
	trav.Traverse()
	require.Len(t, order, 2)
	assert.Same(t, near, order[0])
	assert.Same(t, far, order[1])
}
