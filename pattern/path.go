// Package pattern generates parametric defense paths for drone formations
// Every generator returns a direction that the caller normalizes and scales around an anchor body
package pattern

import (
	"fmt"
	"math"

	"github.com/lixenwraith/spacejam/vmath"
)

// CircleSteps is the angular granularity of the circle paths, one full cycle per 60 steps
const CircleSteps = 60

// SeamsF is the default vertical weave factor of BaseballSeams
const SeamsF = 1.0

// Kind selects a path generator
type Kind uint8

const (
	KindCloud Kind = iota
	KindBaseballSeams
	KindCircleX
	KindCircleY
	KindCircleZ
)

var kindNames = map[Kind]string{
	KindCloud:         "cloud",
	KindBaseballSeams: "baseball-seams",
	KindCircleX:       "circle-x",
	KindCircleY:       "circle-y",
	KindCircleZ:       "circle-z",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind resolves a path name as written in the scene manifest
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Source is the randomness consumed by Cloud
type Source interface {
	Float64() float64
}

// Axis names the axis a circle path is orthogonal to
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// CircleOn returns the point at step on the unit circle orthogonal to axis
// steps is the number of samples per revolution
func CircleOn(axis Axis, step, steps int) vmath.Vec3F {
	if steps <= 0 {
		steps = CircleSteps
	}
	theta := float64(step) * 2 * math.Pi / float64(steps)
	c, s := math.Cos(theta), math.Sin(theta)
	switch axis {
	case AxisX:
		return vmath.Vec3F{X: 0, Y: c, Z: s}
	case AxisY:
		return vmath.Vec3F{X: c, Y: 0, Z: s}
	default:
		return vmath.Vec3F{X: c, Y: s, Z: 0}
	}
}

func CircleX(step int) vmath.Vec3F { return CircleOn(AxisX, step, CircleSteps) }
func CircleY(step int) vmath.Vec3F { return CircleOn(AxisY, step, CircleSteps) }
func CircleZ(step int) vmath.Vec3F { return CircleOn(AxisZ, step, CircleSteps) }

// BaseballSeams weaves around the unit sphere like the seam of a baseball
// b shapes the lobes, numSeams is the number of steps per loop
func BaseballSeams(step, numSeams int, b float64) vmath.Vec3F {
	return BaseballSeamsF(step, numSeams, b, SeamsF)
}

// BaseballSeamsF is BaseballSeams with an explicit vertical factor f
func BaseballSeamsF(step, numSeams int, b, f float64) vmath.Vec3F {
	if numSeams <= 0 {
		numSeams = 1
	}
	t := float64(step) / float64(numSeams) * 2 * math.Pi

	v := vmath.Vec3F{
		X: math.Cos(t) - b*math.Cos(3*t),
		Y: math.Sin(t) + b*math.Sin(3*t),
		Z: f * math.Cos(2*t),
	}
	return vmath.V3FNormalize(v)
}

// Cloud returns a random direction inside the unit cube, not normalized
// Zero is possible in principle, V3FNormalize maps it back to zero
func Cloud(rng Source) vmath.Vec3F {
	return vmath.Vec3F{
		X: 2*rng.Float64() - 1,
		Y: 2*rng.Float64() - 1,
		Z: 2*rng.Float64() - 1,
	}
}

// Sample dispatches to the generator for kind
func Sample(kind Kind, step, steps int, b float64, rng Source) vmath.Vec3F {
	switch kind {
	case KindCloud:
		return Cloud(rng)
	case KindBaseballSeams:
		return BaseballSeams(step, steps, b)
	case KindCircleX:
		return CircleOn(AxisX, step, steps)
	case KindCircleY:
		return CircleOn(AxisY, step, steps)
	default:
		return CircleOn(AxisZ, step, steps)
	}
}

// Place converts a path sample into a world position around center
func Place(dir vmath.Vec3F, radius float64, center vmath.Vec3F) vmath.Vec3F {
	return vmath.V3FAdd(vmath.V3FScale(vmath.V3FNormalize(dir), radius), center)
}
