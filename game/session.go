// Package game assembles a playable session: scene graph, world, ship and the per-frame task chain
package game

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/spacejam/component"
	"github.com/lixenwraith/spacejam/config"
	"github.com/lixenwraith/spacejam/engine"
	"github.com/lixenwraith/spacejam/event"
	"github.com/lixenwraith/spacejam/input"
	"github.com/lixenwraith/spacejam/manifest"
	"github.com/lixenwraith/spacejam/parameter"
	"github.com/lixenwraith/spacejam/system"
	"github.com/lixenwraith/spacejam/vmath"
)

// Options configures NewSession, zero values fall back to defaults
type Options struct {
	ID     uuid.UUID
	Config *config.Config
	Scene  *manifest.Scene
	Sound  system.SoundPlayer
	Logger zerolog.Logger
}

// Session owns all game state, every method must be called from the loop goroutine
type Session struct {
	ID     uuid.UUID
	Config *config.Config
	Scene  *manifest.Scene
	Seed   uint64

	Tasks     *engine.TaskManager
	Bus       *event.Bus
	Render    *engine.Node
	Traverser *engine.Traverser
	Intervals *engine.IntervalManager

	World *World
	Ship  *component.Ship

	Missiles *system.MissileSystem
	Weapon   *system.WeaponSystem
	Movement *system.MovementSystem

	log  zerolog.Logger
	quit bool
}

// NewSession builds the world and registers the frame tasks
func NewSession(opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scene := opts.Scene
	if scene == nil {
		var err error
		if scene, err = manifest.Default(); err != nil {
			return nil, err
		}
	}
	id := opts.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	s := &Session{
		ID:        id,
		Config:    cfg,
		Scene:     scene,
		Seed:      seed,
		Tasks:     engine.NewTaskManager(),
		Bus:       event.NewBus(),
		Render:    engine.NewRoot("render"),
		Traverser: engine.NewTraverser(),
		Intervals: engine.NewIntervalManager(),
		log:       opts.Logger,
	}

	var err error
	s.World, err = BuildWorld(s.Render, s.Traverser, scene, cfg.Placement.MaxAttempts, vmath.NewFastRand(seed), s.log)
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}
	s.Ship = s.spawnHero(scene.Hero, cfg.Weapon.BayCapacity)

	s.Missiles, err = system.NewMissileSystem(s.Render, s.Intervals, s.Traverser, system.MissileConfig{
		Distance:       cfg.Missile.Distance,
		SpawnOffset:    cfg.Missile.SpawnOffset,
		Duration:       cfg.Missile.Duration,
		Scale:          cfg.Missile.Scale,
		ColliderRadius: cfg.Missile.ColliderRadius,
		TagPrefix:      parameter.MissileTagPrefix,
		HitMask:        parameter.MaskBody | parameter.MaskDrone,
	}, s.log)
	if err != nil {
		return nil, fmt.Errorf("creating missile system: %w", err)
	}
	s.Weapon = system.NewWeaponSystem(s.Tasks, s.Ship, s.Missiles, component.WeaponConfig{
		ReloadTime: cfg.Weapon.ReloadTime,
		AutoReload: cfg.Weapon.AutoReload,
	}, opts.Sound, s.log)
	s.Movement = system.NewMovementSystem(s.Ship, system.MovementConfig{
		MoveRate:   cfg.Ship.MoveRate,
		TurnRate:   cfg.Ship.TurnRate,
		PitchLimit: cfg.Ship.PitchLimit,
	}, s.log)

	s.bindKeys()
	s.addTasks()

	s.log.Info().
		Str("session", id.String()).
		Uint64("seed", seed).
		Int("tasks", s.Tasks.Count()).
		Msg("session ready")
	return s, nil
}

func (s *Session) spawnHero(spec manifest.BodySpec, capacity int) *component.Ship {
	if spec.Name == "" {
		spec.Name = parameter.HeroName
	}
	if spec.Radius <= 0 {
		spec.Radius = parameter.HeroColliderRadius
	}
	n := s.Render.AttachNewNode(spec.Name)
	n.SetPos(spec.Position.Vec())
	n.SetScale(spec.Scale)
	n.SetTexture(spec.Texture)

	col := engine.NewCollider(n, spec.Name+"-cnode", engine.Sphere{Radius: spec.Radius}, parameter.MaskBody, parameter.MaskShip)
	s.Traverser.AddCollider(col, engine.Pusher{})

	return &component.Ship{
		Node:        n,
		Collider:    col,
		MissileBay:  capacity,
		BayCapacity: capacity,
	}
}

func (s *Session) bindKeys() {
	s.Movement.Bind(s.Bus)
	s.Bus.Accept(input.KeyFire, func(...any) { s.Weapon.Fire() })
	s.Bus.Accept(input.KeyEscape, func(...any) { s.Quit() })
}

// addTasks registers the frame chain: input, intervals, collisions, missile poll
func (s *Session) addTasks() {
	s.Tasks.Add(s.Movement.Update, parameter.TaskShipMovement, s.Movement.Sort())
	s.Tasks.Add(s.Intervals.Task(), engine.IntervalTaskName, parameter.SortIntervals)
	s.Tasks.Add(s.Traverser.Task(), engine.CollisionTaskName, parameter.SortCollisions)
	s.Tasks.Add(s.Missiles.CheckIntervals, parameter.TaskCheckMissiles, s.Missiles.Sort())
}

// Step runs one frame, dt is capped at MaxFrameDelta
func (s *Session) Step(dt time.Duration) {
	if dt > parameter.MaxFrameDelta {
		dt = parameter.MaxFrameDelta
	}
	s.Tasks.Step(dt)
}

// Send dispatches a key event to the bus
func (s *Session) Send(name string) bool {
	return s.Bus.Send(name)
}

func (s *Session) Quit() {
	if !s.quit {
		s.log.Info().Uint64("frame", s.Tasks.Frame()).Msg("quit requested")
	}
	s.quit = true
}

// Quitting reports whether escape was received
func (s *Session) Quitting() bool { return s.quit }

// Status is a read-only frame summary for the HUD
type Status struct {
	Frame       uint64
	Pos         vmath.Vec3F
	Heading     float64
	Pitch       float64
	Bay         int
	BayCapacity int
	Weapon      component.WeaponState
	Missiles    []string
	Launched    uint64
	Held        []input.Axis
	Nearest     string
	NearestDist float64
	Drones      int
}

// Status summarizes the current frame
func (s *Session) Status() Status {
	st := Status{
		Frame:       s.Tasks.Frame(),
		Pos:         s.Ship.Node.Pos(),
		Heading:     s.Ship.Node.H(),
		Pitch:       s.Ship.Node.P(),
		Bay:         s.Weapon.Bay(),
		BayCapacity: s.Ship.BayCapacity,
		Weapon:      s.Weapon.State(),
		Missiles:    s.Missiles.Tags(),
		Launched:    s.Missiles.Launched(),
		Held:        s.Ship.Input.ActiveAxes(),
		NearestDist: math.Inf(1),
		Drones:      len(s.World.Drones),
	}
	for _, b := range s.World.Bodies() {
		if d := vmath.V3FDist(st.Pos, b.Node.Pos()); d < st.NearestDist {
			st.Nearest, st.NearestDist = b.Name(), d
		}
	}
	return st
}
