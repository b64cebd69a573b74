package common

import "math"

// Point2D is a position in world space. Y grows upward.
type Point2D struct {
	X float64
	Y float64
}

// ImpulseVector is a launch force in polar form.
type ImpulseVector struct {
	Angle   float64
	Impulse float64
}

// Angle returns the heading of the vector from a to b in radians (-π..π).
// Identical points yield 0, which callers should not depend on.
func Angle(a, b Point2D) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point2D) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// NewImpulseVector turns a slingshot pull into a launch vector. The direction
// runs from end back to start: dragging away from the anchor fires the
// projectile the opposite way on release.
func NewImpulseVector(start, end Point2D) ImpulseVector {
	return ImpulseVector{
		Angle:   Angle(end, start),
		Impulse: Distance(start, end),
	}
}
