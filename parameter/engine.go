package parameter

import "time"

// Frame Timing
const (
	// FrameRate is the default frame rate of the terminal front-end
	FrameRate = 60

	// FrameUpdateInterval is the frame delta at FrameRate
	FrameUpdateInterval = time.Second / FrameRate

	// MaxFrameDelta caps a single step after a stall
	MaxFrameDelta = 100 * time.Millisecond
)

// Collision masks
const (
	MaskBody  = 1 << 0 // Planets, station, drones
	MaskShip  = 1 << 1 // Player ship
	MaskDrone = 1 << 2 // Drones, also bodies
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "spacejam.log"
	MaxLogSize  = 10 * 1024 * 1024
)
