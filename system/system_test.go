package system

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/spacejam/component"
	"github.com/lixenwraith/spacejam/engine"
	"github.com/lixenwraith/spacejam/event"
	"github.com/lixenwraith/spacejam/parameter"
	"github.com/lixenwraith/spacejam/vmath"
)

const frame = parameter.FrameUpdateInterval

type soundSpy struct {
	launch, reloaded, dry int
}

func (s *soundSpy) PlayLaunch()   { s.launch++ }
func (s *soundSpy) PlayReloaded() { s.reloaded++ }
func (s *soundSpy) PlayDryFire()  { s.dry++ }

// rig wires the systems the way a session does, minus the world
type rig struct {
	render    *engine.Node
	tasks     *engine.TaskManager
	intervals *engine.IntervalManager
	trav      *engine.Traverser
	bus       *event.Bus
	ship      *component.Ship
	missiles  *MissileSystem
	weapon    *WeaponSystem
	movement  *MovementSystem
	sound     *soundSpy
}

func newRig(t *testing.T, wcfg component.WeaponConfig, bay int) *rig {
	t.Helper()
	r := &rig{
		render:    engine.NewRoot("render"),
		tasks:     engine.NewTaskManager(),
		intervals: engine.NewIntervalManager(),
		trav:      engine.NewTraverser(),
		bus:       event.NewBus(),
		sound:     &soundSpy{},
	}

	node := r.render.AttachNewNode(parameter.HeroName)
	col := engine.NewCollider(node, parameter.HeroName+"-cnode",
		engine.Sphere{Radius: parameter.HeroColliderRadius}, parameter.MaskBody, parameter.MaskShip)
	r.trav.AddCollider(col, engine.Pusher{})
	r.ship = &component.Ship{Node: node, Collider: col, MissileBay: bay, BayCapacity: bay}

	var err error
	r.missiles, err = NewMissileSystem(r.render, r.intervals, r.trav, DefaultMissileConfig(), zerolog.Nop())
	require.NoError(t, err)
	r.weapon = NewWeaponSystem(r.tasks, r.ship, r.missiles, wcfg, r.sound, zerolog.Nop())
	r.movement = NewMovementSystem(r.ship, DefaultMovementConfig(), zerolog.Nop())
	r.movement.Bind(r.bus)

	r.tasks.Add(r.movement.Update, parameter.TaskShipMovement, r.movement.Sort())
	r.tasks.Add(r.intervals.Task(), engine.IntervalTaskName, parameter.SortIntervals)
	r.tasks.Add(r.trav.Task(), engine.CollisionTaskName, parameter.SortCollisions)
	r.tasks.Add(r.missiles.CheckIntervals, parameter.TaskCheckMissiles, r.missiles.Sort())
	return r
}

func (r *rig) step(n int) {
	for i := 0; i < n; i++ {
		r.tasks.Step(frame)
	}
}

// addPlanet places an into-only body on the render root
func (r *rig) addPlanet(name string, pos vmath.Vec3F, radius float64) *engine.Collider {
	n := r.render.AttachNewNode(name)
	n.SetPos(pos)
	c := engine.NewCollider(n, name+"-cnode", engine.Sphere{Radius: radius}, 0, parameter.MaskBody)
	r.trav.AddSolid(c)
	return c
}
