package system

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lixenwraith/spacejam/component"
	"github.com/lixenwraith/spacejam/engine"
	"github.com/lixenwraith/spacejam/parameter"
	"github.com/lixenwraith/spacejam/vmath"
)

// MissileConfig is the fire solution and collision setup of launched missiles
type MissileConfig struct {
	Distance       float64
	SpawnOffset    float64
	Duration       time.Duration
	Scale          float64
	ColliderRadius float64
	TagPrefix      string

	// HitMask selects the into masks a missile collides with
	HitMask engine.CollideMask
}

// DefaultMissileConfig returns the stock phaser tuning
func DefaultMissileConfig() MissileConfig {
	return MissileConfig{
		Distance:       parameter.MissileDistance,
		SpawnOffset:    parameter.MissileSpawnOffset,
		Duration:       parameter.MissileTravelDuration,
		Scale:          parameter.MissileScale,
		ColliderRadius: parameter.MissileColliderRadius,
		TagPrefix:      parameter.MissileTagPrefix,
		HitMask:        parameter.MaskBody | parameter.MaskDrone,
	}
}

// MissileSystem owns every missile in flight
// Each record keeps its interval, render node, collision node and collider together
// from Launch until the poll reclaims it
type MissileSystem struct {
	cfg       MissileConfig
	render    *engine.Node
	intervals *engine.IntervalManager
	trav      *engine.Traverser
	log       zerolog.Logger

	counter uint64
	order   []string
	arena   map[string]*component.Missile

	// Mirrors len(arena) for the gauge callback
	live atomic.Int64

	launched  metric.Int64Counter
	reclaimed metric.Int64Counter
	inFlight  metric.Int64ObservableGauge
}

// NewMissileSystem creates the missile arena
// Uses the global OTel meter for metrics (no-op if not configured)
func NewMissileSystem(render *engine.Node, intervals *engine.IntervalManager, trav *engine.Traverser, cfg MissileConfig, log zerolog.Logger) (*MissileSystem, error) {
	s := &MissileSystem{
		cfg:       cfg,
		render:    render,
		intervals: intervals,
		trav:      trav,
		log:       log.With().Str("system", "missile").Logger(),
		arena:     make(map[string]*component.Missile),
	}

	m := meter()
	var err error

	s.launched, err = m.Int64Counter(
		"missiles.launched",
		metric.WithDescription("Total missiles launched"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating launched counter: %w", err)
	}

	s.reclaimed, err = m.Int64Counter(
		"missiles.reclaimed",
		metric.WithDescription("Total missiles reclaimed, by reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reclaimed counter: %w", err)
	}

	s.inFlight, err = m.Int64ObservableGauge(
		"missiles.in_flight",
		metric.WithDescription("Missiles currently tracked by the arena"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating in-flight gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(s.inFlight, s.live.Load())
			return nil
		},
		s.inFlight,
	)
	if err != nil {
		return nil, fmt.Errorf("registering in-flight callback: %w", err)
	}

	return s, nil
}

func (s *MissileSystem) Name() string { return "missile" }

func (s *MissileSystem) Sort() int { return parameter.SortMissileCleanup }

// Launch fires a missile along the ship's current facing
// The end of the fire solution is fixed at launch, later ship motion does not steer it
func (s *MissileSystem) Launch(ship *component.Ship) *component.Missile {
	aim := vmath.V3FNormalize(ship.Node.Forward())
	origin := ship.Node.Pos()
	end := vmath.V3FAdd(origin, vmath.V3FScale(aim, s.cfg.Distance))
	spawn := vmath.V3FAdd(origin, vmath.V3FScale(aim, s.cfg.SpawnOffset))

	s.counter++
	tag := s.cfg.TagPrefix + strconv.FormatUint(s.counter, 10)

	model := s.render.AttachNewNode(tag)
	model.SetScale(s.cfg.Scale)
	model.SetTexture(parameter.MissileTexture)
	model.SetHpr(ship.Node.H(), ship.Node.P())
	model.SetPos(spawn)

	col := engine.NewCollider(model, tag+"-cnode", engine.Sphere{Radius: s.cfg.ColliderRadius}, s.cfg.HitMask, 0)

	m := &component.Missile{
		Tag:       tag,
		Owner:     ship,
		Start:     spawn,
		End:       end,
		Duration:  s.cfg.Duration,
		Interval:  engine.PosInterval(model, s.cfg.Duration, end, spawn, true),
		Model:     model,
		CNode:     col.Node,
		Collision: col,
	}

	s.arena[tag] = m
	s.order = append(s.order, tag)
	s.live.Store(int64(len(s.arena)))

	s.trav.AddCollider(col, s.impactHandler(m))
	s.intervals.Start(m.Interval)

	s.launched.Add(context.Background(), 1)
	s.log.Debug().
		Str("tag", tag).
		Floats64("spawn", []float64{spawn.X, spawn.Y, spawn.Z}).
		Floats64("end", []float64{end.X, end.Y, end.Z}).
		Msg("missile launched")
	return m
}

// impactHandler stops the missile at the first contact, the poll reclaims it afterwards
func (s *MissileSystem) impactHandler(m *component.Missile) engine.CollisionHandler {
	return engine.CollisionHandlerFunc(func(e engine.CollisionEntry) {
		if m.Result != component.MissileInFlight {
			return
		}
		if m.Owner != nil && e.Into.Model() == m.Owner.Node {
			return
		}
		m.Interval.Stop()
		m.Model.SetPos(vmath.V3FSub(e.Point, m.Collision.Solid.Center))
		m.Result = component.MissileImpacted
		m.HitName = e.Into.Model().Name()
		s.log.Debug().Str("tag", m.Tag).Str("hit", m.HitName).Msg("missile impact")
	})
}

// CheckIntervals is the per-frame poll that reclaims missiles whose interval stopped
func (s *MissileSystem) CheckIntervals(*engine.Task) engine.TaskStatus {
	s.Reclaim()
	return engine.TaskCont
}

// Reclaim releases every missile whose interval is no longer playing, returns their tags
// Completed tags are collected first and torn down after the scan
func (s *MissileSystem) Reclaim() []string {
	var done []string
	for _, tag := range s.order {
		m := s.arena[tag]
		if !m.Interval.IsPlaying() {
			done = append(done, tag)
		}
	}
	if len(done) == 0 {
		return nil
	}

	for _, tag := range done {
		s.release(s.arena[tag])
	}

	live := s.order[:0]
	for _, tag := range s.order {
		if _, ok := s.arena[tag]; ok {
			live = append(live, tag)
		}
	}
	s.order = live
	s.live.Store(int64(len(s.arena)))
	return done
}

func (s *MissileSystem) release(m *component.Missile) {
	if m.Result == component.MissileInFlight {
		m.Result = component.MissileExpired
	}

	m.CNode.DetachNode()
	m.Model.DetachNode()
	s.trav.RemoveCollider(m.Collision)
	delete(s.arena, m.Tag)

	s.reclaimed.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("reason", m.Result.String())))
	s.log.Info().
		Str("tag", m.Tag).
		Str("reason", m.Result.String()).
		Str("hit", m.HitName).
		Msg(m.Tag + " has reached the end of its fire solution.")
}

// Count returns the number of missiles in the arena
func (s *MissileSystem) Count() int { return len(s.arena) }

// Launched returns the number of missiles fired since creation
func (s *MissileSystem) Launched() uint64 { return s.counter }

// Tags lists live missile tags in launch order
func (s *MissileSystem) Tags() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *MissileSystem) Get(tag string) (*component.Missile, bool) {
	m, ok := s.arena[tag]
	return m, ok
}

// Live returns the live missiles in launch order
func (s *MissileSystem) Live() []*component.Missile {
	out := make([]*component.Missile, 0, len(s.order))
	for _, tag := range s.order {
		out = append(out, s.arena[tag])
	}
	return out
}
