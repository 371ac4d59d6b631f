package system

import (
	"github.com/rs/zerolog"

	"github.com/lixenwraith/spacejam/component"
	"github.com/lixenwraith/spacejam/engine"
	"github.com/lixenwraith/spacejam/event"
	"github.com/lixenwraith/spacejam/input"
	"github.com/lixenwraith/spacejam/parameter"
	"github.com/lixenwraith/spacejam/vmath"
)

// MovementConfig is the per-frame ship handling
type MovementConfig struct {
	MoveRate   float64 // Units per frame per thrust axis
	TurnRate   float64 // Degrees per frame
	PitchLimit float64 // Degrees, symmetric
}

func DefaultMovementConfig() MovementConfig {
	return MovementConfig{
		MoveRate:   parameter.ShipMoveRate,
		TurnRate:   parameter.ShipTurnRate,
		PitchLimit: parameter.ShipPitchLimit,
	}
}

// Local thrust directions, X right, Y forward
var thrustDirs = map[input.Axis]vmath.Vec3F{
	input.AxisForward:     {Y: 1},
	input.AxisStrafeLeft:  {X: -1},
	input.AxisStrafeRight: {X: 1},
}

// MovementSystem samples the ship input state once per frame
// Key transitions only flip bits, the single movement task applies them
type MovementSystem struct {
	ship *component.Ship
	cfg  MovementConfig
	log  zerolog.Logger
}

func NewMovementSystem(ship *component.Ship, cfg MovementConfig, log zerolog.Logger) *MovementSystem {
	return &MovementSystem{
		ship: ship,
		cfg:  cfg,
		log:  log.With().Str("system", "movement").Logger(),
	}
}

func (s *MovementSystem) Name() string { return "movement" }

func (s *MovementSystem) Sort() int { return parameter.SortInput }

// Bind registers press and release events for every axis on bus
func (s *MovementSystem) Bind(bus *event.Bus) {
	for axis, key := range input.AxisBindings {
		bus.Accept(key, s.setAxis, axis, true)
		bus.Accept(input.UpEvent(key), s.setAxis, axis, false)
	}
}

func (s *MovementSystem) setAxis(args ...any) {
	if len(args) != 2 {
		return
	}
	axis, ok := args[0].(input.Axis)
	if !ok {
		return
	}
	held, ok := args[1].(bool)
	if !ok {
		return
	}
	if s.ship.Input.Active(axis) != held {
		s.log.Trace().Stringer("axis", axis).Bool("held", held).Msg("axis")
	}
	s.ship.Input.Set(axis, held)
}

// Update applies one frame of thrust and turning
func (s *MovementSystem) Update(*engine.Task) engine.TaskStatus {
	st := &s.ship.Input
	if !st.Any() {
		return engine.TaskCont
	}
	n := s.ship.Node

	// Turns first so thrust follows the new facing
	h, p := n.H(), n.P()
	if st.Active(input.AxisTurnLeft) {
		h += s.cfg.TurnRate
	}
	if st.Active(input.AxisTurnRight) {
		h -= s.cfg.TurnRate
	}
	if st.Active(input.AxisTurnUp) {
		p += s.cfg.TurnRate
	}
	if st.Active(input.AxisTurnDown) {
		p -= s.cfg.TurnRate
	}
	n.SetHpr(h, vmath.Clamp(p, -s.cfg.PitchLimit, s.cfg.PitchLimit))

	var delta vmath.Vec3F
	moved := false
	for _, axis := range []input.Axis{input.AxisForward, input.AxisStrafeLeft, input.AxisStrafeRight} {
		if !st.Active(axis) {
			continue
		}
		dir := vmath.V3FNormalize(n.RelativeVector(thrustDirs[axis]))
		delta = vmath.V3FAdd(delta, vmath.V3FScale(dir, s.cfg.MoveRate))
		moved = true
	}
	if moved {
		n.SetFluidPos(vmath.V3FAdd(n.Pos(), delta))
	}
	return engine.TaskCont
}
