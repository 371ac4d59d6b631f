package audio

import "time"

// SoundType represents the weapon cues
type SoundType int

const (
	SoundLaunch   SoundType = iota // Missile leaves the bay
	SoundReloaded                  // Bay refilled
	SoundDryFire                   // Fire with an empty bay
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundLaunch:
		return "launch"
	case SoundReloaded:
		return "reloaded"
	case SoundDryFire:
		return "dry-fire"
	default:
		return "unknown"
	}
}

// AudioConfig holds mixer volumes and sample rate
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64
	EffectVolumes [soundTypeCount]float64
	SampleRate    int
}

func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		EffectVolumes: [soundTypeCount]float64{
			SoundLaunch:   0.8,
			SoundReloaded: 0.6,
			SoundDryFire:  0.5,
		},
		SampleRate: 48000,
	}
}

// Cue timings
const (
	LaunchDuration = 180 * time.Millisecond
	LaunchAttack   = 5 * time.Millisecond
	LaunchRelease  = 120 * time.Millisecond

	ReloadedNoteDuration = 70 * time.Millisecond
	ReloadedAttack       = 3 * time.Millisecond
	ReloadedRelease      = 40 * time.Millisecond

	DryFireDuration = 60 * time.Millisecond
	DryFireAttack   = 2 * time.Millisecond
	DryFireRelease  = 30 * time.Millisecond
)
