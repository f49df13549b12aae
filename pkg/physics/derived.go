// pkg/physics/derived.go
package physics

import "math"

// MinGroundLength is the shortest ground plane drawn under a trajectory.
const MinGroundLength = 100.0

// BallRadius returns the radius of a sphere with the given volume.
func BallRadius(volume float64) float64 {
	if volume <= 0 || math.IsNaN(volume) {
		return 0
	}
	return math.Cbrt(3 * volume / (4 * math.Pi))
}

// EstimatedRange is the ideal flat-ground range v0²·sin(2θ)/g. It only
// sizes the scenery; the stepped simulation is authoritative.
func EstimatedRange(speed, angleDegrees, gravity float64) float64 {
	if gravity <= 0 {
		return 0
	}
	return speed * speed * math.Sin(2*Radians(angleDegrees)) / gravity
}

// GroundLength pads an estimated range by half again, with a floor.
func GroundLength(estimatedRange float64) float64 {
	return math.Max(MinGroundLength, estimatedRange*1.5)
}

// FocusPoint is where a follow camera should look for a ball at pos:
// offset.X ahead of it, at a fixed height of offset.Y.
func FocusPoint(pos, offset Vector2D) Vector2D {
	return Vector2D{X: pos.X + offset.X, Y: offset.Y}
}
