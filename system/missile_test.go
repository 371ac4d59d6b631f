package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/spacejam/component"
	"github.com/lixenwraith/spacejam/vmath"
)

// TestFirstMissileLifecycle fires once from a fresh session and follows Missile1 to reclamation
func TestFirstMissileLifecycle(t *testing.T) {
	r := newRig(t, DefaultWeaponConfig(), 1)
	baseColliders := r.trav.NumColliders()

	require.True(t, r.weapon.Fire())
	assert.Equal(t, []string{"Missile1"}, r.missiles.Tags())
	assert.Equal(t, 0, r.weapon.Bay())
	assert.Equal(t, component.WeaponEmpty, r.weapon.State())

	m, ok := r.missiles.Get("Missile1")
	require.True(t, ok)
	assert.True(t, vmath.V3FApproxEqual(vmath.V3F(0, 150, 0), m.Start, 1e-9))
	assert.True(t, vmath.V3FApproxEqual(vmath.V3F(0, 4000, 0), m.End, 1e-9))
	assert.Equal(t, 4.0, m.Model.Scale())
	assert.Equal(t, "phaser", m.Model.Texture())
	assert.True(t, m.Interval.IsPlaying())
	assert.True(t, m.Interval.Fluid())
	assert.Equal(t, baseColliders+1, r.trav.NumColliders())

	// Halfway through the flight
	r.step(60)
	require.Equal(t, 1, r.missiles.Count())
	assert.InDelta(t, 150+0.5*3850, m.Model.Pos().Y, 40)

	r.step(70)
	assert.Zero(t, r.missiles.Count())
	assert.Empty(t, r.missiles.Tags())
	assert.Equal(t, component.MissileExpired, m.Result)
	assert.True(t, m.Model.IsDetached())
	assert.True(t, m.CNode.IsDetached())
	assert.False(t, r.trav.HasCollider(m.Collision))
	assert.Equal(t, baseColliders, r.trav.NumColliders())
	assert.True(t, vmath.V3FApproxEqual(m.End, m.Model.Pos(), 1e-9))
}

// TestFireReclaimRoundTrip verifies the arena and traverser return to their baseline
func TestFireReclaimRoundTrip(t *testing.T) {
	r := newRig(t, DefaultWeaponConfig(), 1)
	baseChildren := r.render.NumChildren()
	baseColliders := r.trav.NumColliders()

	for round := 1; round <= 3; round++ {
		require.True(t, r.weapon.Fire())
		assert.Equal(t, baseChildren+1, r.render.NumChildren())

		// Dry fire schedules the reload, flight and reload both finish well within 3s
		assert.False(t, r.weapon.Fire())
		r.step(180)

		assert.Zero(t, r.missiles.Count(), "round %d", round)
		assert.Equal(t, baseChildren, r.render.NumChildren())
		assert.Equal(t, baseColliders, r.trav.NumColliders())
		assert.Equal(t, 1, r.weapon.Bay())
	}
	assert.Equal(t, uint64(3), r.missiles.Launched())
}

// TestMissileStopsOnImpact verifies a collision ends the flight early and the poll reclaims it
func TestMissileStopsOnImpact(t *testing.T) {
	r := newRig(t, DefaultWeaponConfig(), 1)
	r.addPlanet("Planet1", vmath.V3F(0, 1000, 0), 100)

	require.True(t, r.weapon.Fire())
	m, _ := r.missiles.Get("Missile1")

	r.step(40)
	assert.Zero(t, r.missiles.Count())
	assert.Equal(t, component.MissileImpacted, m.Result)
	assert.Equal(t, "Planet1", m.HitName)
	assert.False(t, m.Interval.Finished())
	// Contact where the spheres first touch: 1000 - (100 + 3)
	assert.InDelta(t, 897, m.Model.Pos().Y, 0.5)
}

// TestMissileIgnoresOwner verifies the launching ship is never an impact target
func TestMissileIgnoresOwner(t *testing.T) {
	r := newRig(t, DefaultWeaponConfig(), 1)
	require.True(t, r.weapon.Fire())
	m, _ := r.missiles.Get("Missile1")

	// Park the ship on the flight path
	r.ship.Node.SetPos(vmath.V3F(0, 600, 0))
	r.step(40)
	assert.Equal(t, component.MissileInFlight, m.Result)
	assert.Equal(t, 1, r.missiles.Count())
}

// TestReclaimBatchInLaunchOrder verifies several missiles ending in one frame are all reclaimed in that frame
func TestReclaimBatchInLaunchOrder(t *testing.T) {
	r := newRig(t, DefaultWeaponConfig(), 3)
	for i := 0; i < 3; i++ {
		require.True(t, r.weapon.Fire())
	}
	assert.Equal(t, []string{"Missile1", "Missile2", "Missile3"}, r.missiles.Tags())

	for _, m := range r.missiles.Live() {
		m.Interval.Stop()
	}
	assert.Equal(t, []string{"Missile1", "Missile2", "Missile3"}, r.missiles.Reclaim())
	assert.Zero(t, r.missiles.Count())
	assert.Nil(t, r.missiles.Reclaim())
}

// TestMissileRecordsOwnAllHandles verifies every live record carries its four resources together
func TestMissileRecordsOwnAllHandles(t *testing.T) {
	r := newRig(t, DefaultWeaponConfig(), 3)
	r.ship.Node.SetHpr(90, 30)
	for i := 0; i < 3; i++ {
		r.weapon.Fire()
		r.step(10)
	}

	for _, m := range r.missiles.Live() {
		require.NotNil(t, m.Interval)
		require.NotNil(t, m.Model)
		require.NotNil(t, m.CNode)
		require.NotNil(t, m.Collision)
		assert.Same(t, m.Model, m.CNode.Parent())
		assert.Same(t, m.Model, m.Collision.Model())
		assert.True(t, r.trav.HasCollider(m.Collision))
		assert.Equal(t, m.Tag, m.Model.Name())
		// Fire solution follows the facing at launch
		assert.InDelta(t, 4000-150, vmath.V3FDist(m.Start, m.End), 1e-6)
	}
}
