package component

import (
	"github.com/lixenwraith/spacejam/engine"
	"github.com/lixenwraith/spacejam/pattern"
)

// BodyKind classifies static celestial bodies
type BodyKind uint8

const (
	BodyUniverse BodyKind = iota
	BodyPlanet
	BodyStation
)

func (k BodyKind) String() string {
	switch k {
	case BodyUniverse:
		return "universe"
	case BodyPlanet:
		return "planet"
	case BodyStation:
		return "station"
	default:
		return "unknown"
	}
}

// Body is an immutable celestial body, Collider is nil for the universe shell
type Body struct {
	Kind     BodyKind
	Node     *engine.Node
	Collider *engine.Collider
	Model    string
}

func (b *Body) Name() string { return b.Node.Name() }

// Drone is a formation member placed once around an anchor body
type Drone struct {
	Node     *engine.Node
	Collider *engine.Collider
	Pattern  pattern.Kind
	Anchor   *Body
	Step     int
}
