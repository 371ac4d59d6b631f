package component

import (
	"github.com/lixenwraith/spacejam/engine"
	"github.com/lixenwraith/spacejam/input"
)

// Ship is the player ship (pure data)
// Position and heading/pitch live on Node
type Ship struct {
	Node     *engine.Node
	Collider *engine.Collider

	// Held movement axes
	Input input.State

	// Missile bay, clamped into [0, BayCapacity]
	MissileBay  int
	BayCapacity int
	Weapon      WeaponState
}
