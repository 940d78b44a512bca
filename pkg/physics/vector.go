// pkg/physics/vector.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the tolerance below which a vector length is treated as zero.
const Epsilon = 1e-12

// Perp returns the vector rotated a quarter turn counter-clockwise.
func Perp(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v.Y(), v.X()}
}

// Cross returns the scalar 2D cross product a×b.
func Cross(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// Project returns the projection of v onto the direction of onto.
// onto does not need to be normalized. Projecting onto a zero vector yields zero.
func Project(v, onto mgl64.Vec2) mgl64.Vec2 {
	denom := onto.Dot(onto)
	if denom < Epsilon {
		return mgl64.Vec2{}
	}
	return onto.Mul(v.Dot(onto) / denom)
}

// Reject returns the component of v perpendicular to onto.
func Reject(v, onto mgl64.Vec2) mgl64.Vec2 {
	return v.Sub(Project(v, onto))
}

// IsZero reports whether v has (numerically) zero length.
func IsZero(v mgl64.Vec2) bool {
	return v.Dot(v) < Epsilon
}

// finite reports whether every value is a real, finite number.
func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
