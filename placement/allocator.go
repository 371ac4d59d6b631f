// Package placement scatters bodies in a bounding box under a minimum separation constraint
package placement

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/spacejam/vmath"
)

// ErrPlacementExhausted is returned when no candidate satisfied the separation within the attempt budget
var ErrPlacementExhausted = errors.New("placement attempts exhausted")

// Source is the integer randomness consumed by the allocator
type Source interface {
	IntRange(lo, hi int) int
}

// Box is an axis-aligned sampling volume with integer, inclusive bounds
type Box struct {
	Min vmath.Vec3F
	Max vmath.Vec3F
}

// Contains reports whether p lies inside the box, bounds inclusive
func (b Box) Contains(p vmath.Vec3F) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Allocator rejection-samples positions from Box
// MaxAttempts of zero retries forever
type Allocator struct {
	Box         Box
	MaxAttempts int
	rng         Source
}

func NewAllocator(box Box, maxAttempts int, rng Source) *Allocator {
	return &Allocator{
		Box:         box,
		MaxAttempts: maxAttempts,
		rng:         rng,
	}
}

// GeneratePosition draws candidates until one is at least minDistance from every existing position
func (a *Allocator) GeneratePosition(existing []vmath.Vec3F, minDistance float64) (vmath.Vec3F, error) {
	minSq := minDistance * minDistance

	for attempt := 1; a.MaxAttempts <= 0 || attempt <= a.MaxAttempts; attempt++ {
		candidate := a.sample()
		if farFromAll(candidate, existing, minSq) {
			return candidate, nil
		}
	}

	return vmath.Vec3F{}, fmt.Errorf("min distance %.1f among %d bodies after %d attempts: %w",
		minDistance, len(existing), a.MaxAttempts, ErrPlacementExhausted)
}

func (a *Allocator) sample() vmath.Vec3F {
	return vmath.Vec3F{
		X: float64(a.rng.IntRange(int(a.Box.Min.X), int(a.Box.Max.X))),
		Y: float64(a.rng.IntRange(int(a.Box.Min.Y), int(a.Box.Max.Y))),
		Z: float64(a.rng.IntRange(int(a.Box.Min.Z), int(a.Box.Max.Z))),
	}
}

func farFromAll(p vmath.Vec3F, existing []vmath.Vec3F, minSq float64) bool {
	for _, e := range existing {
		if vmath.V3FDistSq(p, e) < minSq {
			return false
		}
	}
	return true
}

// Set accumulates accepted positions so every new body respects all previous ones
type Set struct {
	alloc     *Allocator
	positions []vmath.Vec3F
}

func NewSet(alloc *Allocator) *Set {
	return &Set{alloc: alloc}
}

// Place generates the next position and appends it to the set
func (s *Set) Place(minDistance float64) (vmath.Vec3F, error) {
	p, err := s.alloc.GeneratePosition(s.positions, minDistance)
	if err != nil {
		return vmath.Vec3F{}, err
	}
	s.positions = append(s.positions, p)
	return p, nil
}

// Positions returns a copy of the accepted positions in placement order
func (s *Set) Positions() []vmath.Vec3F {
	out := make([]vmath.Vec3F, len(s.positions))
	copy(out, s.positions)
	return out
}

func (s *Set) Len() int { return len(s.positions) }

// MinPairwiseDistance returns the smallest distance between any two positions, +Inf for fewer than two
func MinPairwiseDistance(positions []vmath.Vec3F) float64 {
	best := math.Inf(1)
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			if d := vmath.V3FDist(positions[i], positions[j]); d < best {
				best = d
			}
		}
	}
	return best
}
