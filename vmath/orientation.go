package vmath

import "math"

// Orientation basis from heading/pitch in degrees, roll fixed at zero
// Heading rotates about +Z (positive turns left), pitch about the local X axis (positive noses up)

func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Forward returns the unit forward vector for heading h and pitch p
// h=0,p=0 faces +Y
func Forward(h, p float64) Vec3F {
	hr, pr := DegToRad(h), DegToRad(p)
	cp := math.Cos(pr)
	return Vec3F{
		X: -math.Sin(hr) * cp,
		Y: math.Cos(hr) * cp,
		Z: math.Sin(pr),
	}
}

// Right returns the unit right vector, pitch does not affect it without roll
func Right(h, p float64) Vec3F {
	hr := DegToRad(h)
	return Vec3F{
		X: math.Cos(hr),
		Y: math.Sin(hr),
		Z: 0,
	}
}

func Left(h, p float64) Vec3F {
	return V3FNeg(Right(h, p))
}

// Clamp limits v into [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt limits v into [lo, hi]
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
