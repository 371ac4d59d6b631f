package parameter

import (
	"time"
)

// Missile Flight
const (
	// MissileDistance is how far ahead of the ship the fire solution ends
	MissileDistance = 4000.0

	// MissileSpawnOffset places the missile in front of the ship hull
	MissileSpawnOffset = 150.0

	// MissileTravelDuration is the flight time from spawn to end of fire solution
	MissileTravelDuration = 2 * time.Second

	// MissileScale is the render scale of the phaser model
	MissileScale = 4.0

	// MissileColliderRadius is the world radius of the missile collision sphere
	MissileColliderRadius = 3.0

	// MissileTagPrefix prefixes the monotonic missile counter
	MissileTagPrefix = "Missile"

	MissileTexture = "phaser"
)

// Missile Bay
const (
	// MissileBayCapacity is the number of missiles the ship carries
	MissileBayCapacity = 1

	// ReloadTime is the time a reload task needs before the bay is refilled
	ReloadTime = 250 * time.Millisecond
)
