package parameter

// Planet Scatter
const (
	// PlanetColliderFactor converts planet scale into collider radius
	PlanetColliderFactor = 1.0

	// MaxPlacementAttempts bounds rejection sampling per planet, 0 is unbounded
	MaxPlacementAttempts = 10000
)

// Drone Formations
const (
	// DroneCycle is the number of path steps per full formation cycle
	DroneCycle = 60

	DroneScale          = 5.0
	DroneColliderRadius = 5.0
	DroneNamePrefix     = "Drone"

	// SeamsShape is the B factor of the baseball seam formation
	SeamsShape = 0.4
)
