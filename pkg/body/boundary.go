// pkg/body/boundary.go
package body

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-rigid/pkg/physics"
	"github.com/opd-ai/go-rigid/pkg/shape"
)

// Boundary is a static obstacle of infinite mass. Bodies striking it are
// mirrored across the contact normal; it never moves in response.
type Boundary struct {
	shape     shape.Shape
	placement physics.Placement
}

// NewBoundary creates a boundary from any shape, usually a half-plane.
func NewBoundary(s shape.Shape, placement physics.Placement) *Boundary {
	return &Boundary{shape: s, placement: placement}
}

// NewFloor creates a half-plane boundary through point with the given outward normal.
func NewFloor(point, normal mgl64.Vec2) (*Boundary, error) {
	s, err := shape.HalfPlane(normal)
	if err != nil {
		return nil, err
	}
	return NewBoundary(s, physics.NewPlacement(point, 0)), nil
}

// Shape returns the boundary's shape.
func (b *Boundary) Shape() shape.Shape {
	return b.shape
}

// Placement returns the boundary's placement.
func (b *Boundary) Placement() physics.Placement {
	return b.placement
}

// MoveBy repositions the boundary.
func (b *Boundary) MoveBy(delta mgl64.Vec2) {
	b.placement.Translate(delta)
}

// Velocity is always zero.
func (b *Boundary) Velocity() mgl64.Vec2 {
	return mgl64.Vec2{}
}

// InverseMass is zero: no impulse moves a boundary.
func (b *Boundary) InverseMass() float64 {
	return 0
}

// RequiredVelocityChange returns the reflection change of the incoming body.
func (b *Boundary) RequiredVelocityChange(incoming physics.LinearMomentum, normal, _ mgl64.Vec2) mgl64.Vec2 {
	return incoming.ReflectionChange(normal)
}

// ApplyVelocityChange does nothing.
func (b *Boundary) ApplyVelocityChange(_, _ mgl64.Vec2) {}

func (b *Boundary) String() string {
	return fmt.Sprintf("boundary %v at %v", b.shape, b.placement.Position())
}
