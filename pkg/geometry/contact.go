// Package geometry answers the two collision queries the resolution protocol
// consumes: closest contact within a margin, and time of impact under linear
// motion. The Box2D engine implements both on top of github.com/ByteArena/box2d.
package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Contact describes where two shapes touch, or nearly touch.
type Contact struct {
	// PointA is the world point on the first shape closest to the second.
	PointA mgl64.Vec2
	// PointB is the world point on the second shape closest to the first.
	PointB mgl64.Vec2
	// Normal is the unit contact normal pointing from the first shape to the second.
	Normal mgl64.Vec2
	// Depth is the penetration depth; negative while the shapes are still apart.
	Depth float64
}

// Flip returns the same contact seen from the other shape.
func (c Contact) Flip() Contact {
	return Contact{
		PointA: c.PointB,
		PointB: c.PointA,
		Normal: c.Normal.Mul(-1),
		Depth:  c.Depth,
	}
}

// Penetrating reports whether the shapes overlap.
func (c Contact) Penetrating() bool {
	return c.Depth > 0
}

func (c Contact) String() string {
	return fmt.Sprintf("contact{a=%v b=%v n=%v depth=%.4g}", c.PointA, c.PointB, c.Normal, c.Depth)
}
