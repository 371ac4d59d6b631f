package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/spacejam/vmath"
)

// Wave selects the generator of a Voice
type Wave uint8

const (
	WaveSquare Wave = iota
	WaveSaw
	WaveNoise
)

// Voice is one enveloped tone, frequency glides linearly from From to To
// Noise ignores frequency
type Voice struct {
	Wave     Wave
	From, To float64
	Length   time.Duration
	Attack   time.Duration
	Release  time.Duration
	Gain     float64
}

// Streamer renders v at rate, the stream ends after Length
func (v Voice) Streamer(rate beep.SampleRate) beep.Streamer {
	total := rate.N(v.Length)
	attack, release := rate.N(v.Attack), rate.N(v.Release)
	rng := vmath.NewFastRand(uint64(total) + 1)

	pos := 0
	phase := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n := 0
		for ; n < len(samples) && pos < total; n++ {
			var s float64
			switch v.Wave {
			case WaveSquare:
				s = 1
				if phase >= 0.5 {
					s = -1
				}
			case WaveSaw:
				s = 2*phase - 1
			case WaveNoise:
				s = 2*rng.Float64() - 1
			}
			s *= v.Gain * rampAt(pos, total, attack, release)
			samples[n] = [2]float64{s, s}

			freq := v.From + (v.To-v.From)*float64(pos)/float64(total)
			phase += freq / float64(rate)
			phase -= math.Floor(phase)
			pos++
		}
		return n, n > 0
	})
}

// rampAt is the envelope gain at sample pos: linear attack in, linear release out
func rampAt(pos, total, attack, release int) float64 {
	g := 1.0
	if attack > 0 && pos < attack {
		g = float64(pos) / float64(attack)
	}
	if left := total - pos; release > 0 && left < release {
		g = min(g, float64(left)/float64(release))
	}
	return g
}

// cue is a set of voices played together, or one after another when sequential
type cue struct {
	voices     []Voice
	sequential bool
}

var cues = [soundTypeCount]cue{
	// Falling saw sweep over a short noise burst
	SoundLaunch: {voices: []Voice{
		{Wave: WaveSaw, From: 900, To: 180, Length: LaunchDuration, Attack: LaunchAttack, Release: LaunchRelease, Gain: 0.7},
		{Wave: WaveNoise, Length: LaunchDuration, Attack: LaunchAttack, Release: LaunchRelease / 2, Gain: 0.3},
	}},
	// E5 then A5
	SoundReloaded: {sequential: true, voices: []Voice{
		{Wave: WaveSquare, From: 659.25, To: 659.25, Length: ReloadedNoteDuration, Attack: ReloadedAttack, Release: ReloadedRelease, Gain: 1},
		{Wave: WaveSquare, From: 880, To: 880, Length: ReloadedNoteDuration, Attack: ReloadedAttack, Release: ReloadedRelease, Gain: 1},
	}},
	// Low click
	SoundDryFire: {voices: []Voice{
		{Wave: WaveSquare, From: 110, To: 110, Length: DryFireDuration, Attack: DryFireAttack, Release: DryFireRelease, Gain: 1},
	}},
}

// GetSoundEffect returns the streamer for soundType scaled by its effect and master volume, nil when unknown
func GetSoundEffect(soundType SoundType, cfg *AudioConfig) beep.Streamer {
	if soundType < 0 || soundType >= soundTypeCount {
		return nil
	}
	c := cues[soundType]
	rate := beep.SampleRate(cfg.SampleRate)

	parts := make([]beep.Streamer, len(c.voices))
	for i, v := range c.voices {
		parts[i] = v.Streamer(rate)
	}
	var s beep.Streamer
	if c.sequential {
		s = beep.Seq(parts...)
	} else {
		s = beep.Mix(parts...)
	}
	return withVolume(s, cfg.EffectVolumes[soundType]*cfg.MasterVolume)
}

// withVolume scales s linearly, beep's Volume is logarithmic so zero maps to Silent
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
