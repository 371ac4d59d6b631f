package parameter

// Task sort values (lower runs first within a frame)
const (
	SortInput          = 0  // Ship movement and reload
	SortIntervals      = 20 // Interval playback
	SortCollisions     = 30 // Collision traversal, after all movement
	SortMissileCleanup = 34 // Missile reclamation, after collisions resolved
)

// Task names
const (
	TaskShipMovement  = "ship-movement"
	TaskReload        = "reload"
	TaskCheckMissiles = "checkMissiles"
)
