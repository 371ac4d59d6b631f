package system

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/spacejam/component"
	"github.com/lixenwraith/spacejam/engine"
	"github.com/lixenwraith/spacejam/parameter"
	"github.com/lixenwraith/spacejam/vmath"
)

// Launcher creates a missile from the ship's current pose
type Launcher interface {
	Launch(ship *component.Ship) *component.Missile
}

// SoundPlayer receives weapon cues, nil disables sound
type SoundPlayer interface {
	PlayLaunch()
	PlayReloaded()
	PlayDryFire()
}

// DefaultWeaponConfig returns the stock launcher tuning
func DefaultWeaponConfig() component.WeaponConfig {
	return component.WeaponConfig{ReloadTime: parameter.ReloadTime}
}

// WeaponSystem runs the missile bay state machine: Ready, Empty, Reloading, Ready
// At most one reload task exists at any time
type WeaponSystem struct {
	tasks    *engine.TaskManager
	ship     *component.Ship
	launcher Launcher
	cfg      component.WeaponConfig
	sound    SoundPlayer
	log      zerolog.Logger
	progress zerolog.Logger // Sampled, reload progress logs every frame
}

func NewWeaponSystem(tasks *engine.TaskManager, ship *component.Ship, launcher Launcher, cfg component.WeaponConfig, sound SoundPlayer, log zerolog.Logger) *WeaponSystem {
	if ship.BayCapacity <= 0 {
		ship.BayCapacity = parameter.MissileBayCapacity
	}
	ship.MissileBay = vmath.ClampInt(ship.MissileBay, 0, ship.BayCapacity)
	ship.Weapon = stateForBay(ship.MissileBay)

	l := log.With().Str("system", "weapon").Logger()
	return &WeaponSystem{
		tasks:    tasks,
		ship:     ship,
		launcher: launcher,
		cfg:      cfg,
		sound:    sound,
		log:      l,
		progress: l.Sample(&zerolog.BurstSampler{
			Burst:       3,
			Period:      time.Second,
			NextSampler: &zerolog.BasicSampler{N: 10},
		}),
	}
}

func (s *WeaponSystem) Name() string { return "weapon" }

// Fire launches a missile if the bay is loaded, otherwise schedules a reload
// Returns true when a missile left the bay
func (s *WeaponSystem) Fire() bool {
	if s.ship.MissileBay > 0 {
		s.ship.MissileBay--
		s.launcher.Launch(s.ship)
		if s.sound != nil {
			s.sound.PlayLaunch()
		}
		if s.ship.Weapon != component.WeaponReloading {
			s.ship.Weapon = stateForBay(s.ship.MissileBay)
		}
		if s.cfg.AutoReload && s.ship.MissileBay == 0 {
			s.scheduleReload()
		}
		return true
	}

	if s.sound != nil {
		s.sound.PlayDryFire()
	}
	s.scheduleReload()
	return false
}

// scheduleReload adds the reload task unless one is already pending
func (s *WeaponSystem) scheduleReload() {
	if s.tasks.HasTaskNamed(parameter.TaskReload) {
		return
	}
	s.log.Info().Int("bay", s.ship.MissileBay).Msg("Preparing reload...")
	s.tasks.DoMethodLater(0, s.reload, parameter.TaskReload, parameter.SortInput)
	s.ship.Weapon = component.WeaponReloading
}

func (s *WeaponSystem) reload(t *engine.Task) engine.TaskStatus {
	if t.Time <= s.cfg.ReloadTime {
		s.progress.Debug().Dur("elapsed", t.Time).Msg("Reloading...")
		return engine.TaskCont
	}

	s.ship.MissileBay = vmath.ClampInt(s.ship.MissileBay+1, 0, s.ship.BayCapacity)
	s.ship.Weapon = stateForBay(s.ship.MissileBay)
	if s.sound != nil {
		s.sound.PlayReloaded()
	}
	s.log.Info().Int("bay", s.ship.MissileBay).Msg("Reloaded.")
	return engine.TaskDone
}

// Reloading reports whether a reload task is pending
func (s *WeaponSystem) Reloading() bool {
	return s.tasks.HasTaskNamed(parameter.TaskReload)
}

func (s *WeaponSystem) Bay() int { return s.ship.MissileBay }

func (s *WeaponSystem) State() component.WeaponState { return s.ship.Weapon }

func stateForBay(bay int) component.WeaponState {
	if bay > 0 {
		return component.WeaponReady
	}
	return component.WeaponEmpty
}
