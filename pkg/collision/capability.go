// Package collision implements pairwise collision response: the capability
// interfaces a body satisfies to take part, and the Resolver that composes
// time of impact, partial advancement and impulse exchange.
package collision

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-rigid/pkg/geometry"
	"github.com/opd-ai/go-rigid/pkg/physics"
	"github.com/opd-ai/go-rigid/pkg/shape"
)

// Geometry answers contact and time-of-impact queries for placed shapes.
// geometry.Box2D satisfies it.
type Geometry interface {
	Contact(shapeA shape.Shape, placementA physics.Placement, shapeB shape.Shape, placementB physics.Placement, margin float64) (geometry.Contact, bool)
	TimeOfImpact(shapeA shape.Shape, placementA physics.Placement, velocityA mgl64.Vec2, shapeB shape.Shape, placementB physics.Placement, velocityB mgl64.Vec2) (float64, bool)
}

// Contactable is anything with a placed shape that can be moved.
type Contactable interface {
	Placement() physics.Placement
	Shape() shape.Shape
	MoveBy(delta mgl64.Vec2)
}

// TimeOfImpacter is a Contactable moving at a known velocity.
type TimeOfImpacter interface {
	Contactable
	Velocity() mgl64.Vec2
}

// Collidable can take part in an impulse exchange.
type Collidable interface {
	TimeOfImpacter
	// RequiredVelocityChange returns the velocity change the incoming body must
	// undergo when it strikes this one at worldPoint across normal.
	RequiredVelocityChange(incoming physics.LinearMomentum, normal, worldPoint mgl64.Vec2) mgl64.Vec2
	// ApplyVelocityChange applies delta as an impulse at worldPoint.
	ApplyVelocityChange(delta, worldPoint mgl64.Vec2)
	// InverseMass is zero for immovable bodies.
	InverseMass() float64
}

// MomentumQueryable reports the momentum felt at a body-relative offset.
type MomentumQueryable interface {
	MomentumAt(offset mgl64.Vec2) physics.LinearMomentum
}

// Body is the active side of a resolution.
type Body interface {
	Collidable
	MomentumQueryable
}

// ContactPoint asks g for the contact between a and b within margin.
func ContactPoint(g Geometry, a, b Contactable, margin float64) (geometry.Contact, bool) {
	return g.Contact(a.Shape(), a.Placement(), b.Shape(), b.Placement(), margin)
}

// TimeOfImpact asks g when a and b first touch at their current velocities.
func TimeOfImpact(g Geometry, a, b TimeOfImpacter) (float64, bool) {
	return g.TimeOfImpact(a.Shape(), a.Placement(), a.Velocity(), b.Shape(), b.Placement(), b.Velocity())
}

// Advance moves b along its velocity for time t.
func Advance(b TimeOfImpacter, t float64) {
	b.MoveBy(b.Velocity().Mul(t))
}
