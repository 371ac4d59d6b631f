package parameter

// Ship Handling, per frame
const (
	// ShipMoveRate is the distance covered per frame by any held thrust axis
	ShipMoveRate = 25.0

	// ShipTurnRate is the heading/pitch change in degrees per frame
	ShipTurnRate = 1.25

	// ShipPitchLimit keeps the ship from flipping over
	ShipPitchLimit = 89.0
)

// Hero defaults used when a scene leaves the ship unnamed or without a collider
const (
	HeroName           = "Hero"
	HeroColliderRadius = 10.0
)
