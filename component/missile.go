package component

import (
	"time"

	"github.com/lixenwraith/spacejam/engine"
	"github.com/lixenwraith/spacejam/vmath"
)

// MissileEnd records why a missile stopped flying
type MissileEnd uint8

const (
	MissileInFlight MissileEnd = iota
	MissileExpired             // Reached the end of its fire solution
	MissileImpacted            // Stopped by a collision
)

func (e MissileEnd) String() string {
	switch e {
	case MissileInFlight:
		return "in-flight"
	case MissileExpired:
		return "expired"
	case MissileImpacted:
		return "impact"
	default:
		return "unknown"
	}
}

// Missile holds one projectile and the four resources it owns
// All four are created together at launch and released together on reclaim
type Missile struct {
	Tag   string
	Owner *Ship // Not owned, never released by the missile

	Start    vmath.Vec3F
	End      vmath.Vec3F
	Duration time.Duration

	Interval  *engine.Interval
	Model     *engine.Node     // Render node
	CNode     *engine.Node     // Collision node
	Collision *engine.Collider // Collision solid registration

	Result  MissileEnd
	HitName string // Name of the body hit, empty unless impacted
}
