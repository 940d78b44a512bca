// Package body provides the concrete bodies the collision resolver works on:
// MovingBody, a shape carried by a placement and a momentum state, and
// Boundary, an immovable obstacle.
package body

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-rigid/pkg/physics"
	"github.com/opd-ai/go-rigid/pkg/shape"
)

// ErrUnboundedShape is returned when a moving body is given a shape without
// finite moment of inertia.
var ErrUnboundedShape = errors.New("shape is unbounded")

// MovingBody owns one shape, one placement and one moment.
type MovingBody struct {
	shape     shape.Shape
	placement physics.Placement
	moment    physics.Moment
}

// New creates a moving body. The moment of inertia is derived from the shape
// and mass once, here.
func New(s shape.Shape, placement physics.Placement, velocity mgl64.Vec2, spin, mass float64) (*MovingBody, error) {
	if !s.Bounded() {
		return nil, fmt.Errorf("failed to create body with %v: %w", s, ErrUnboundedShape)
	}
	moment, err := physics.NewMoment(velocity, spin, mass, s.MomentOfInertia(mass))
	if err != nil {
		return nil, fmt.Errorf("failed to create body with %v: %w", s, err)
	}
	return &MovingBody{
		shape:     s,
		placement: placement,
		moment:    moment,
	}, nil
}

// NewDisc creates a non-spinning disc at position.
func NewDisc(radius float64, position, velocity mgl64.Vec2, mass float64) (*MovingBody, error) {
	s, err := shape.Disc(radius)
	if err != nil {
		return nil, err
	}
	return New(s, physics.NewPlacement(position, 0), velocity, 0, mass)
}

// NewBox creates a non-spinning box at position and angle.
func NewBox(halfExtents, position mgl64.Vec2, angle float64, velocity mgl64.Vec2, mass float64) (*MovingBody, error) {
	s, err := shape.Box(halfExtents)
	if err != nil {
		return nil, err
	}
	return New(s, physics.NewPlacement(position, angle), velocity, 0, mass)
}

// Shape returns the body's shape.
func (b *MovingBody) Shape() shape.Shape {
	return b.shape
}

// Placement returns a copy of the body's placement.
func (b *MovingBody) Placement() physics.Placement {
	return b.placement
}

// Moment returns a copy of the body's momentum state.
func (b *MovingBody) Moment() physics.Moment {
	return b.moment
}

// Velocity returns the linear velocity.
func (b *MovingBody) Velocity() mgl64.Vec2 {
	return b.moment.Velocity()
}

// Spin returns the angular speed in radians per unit time, counter-clockwise positive.
func (b *MovingBody) Spin() float64 {
	return b.moment.Spin()
}

// Mass returns the body's mass.
func (b *MovingBody) Mass() float64 {
	return b.moment.Linear().Mass()
}

// InverseMass returns 1/mass.
func (b *MovingBody) InverseMass() float64 {
	return b.moment.Linear().InverseMass()
}

// LinearMomentum returns the linear part of the momentum state.
func (b *MovingBody) LinearMomentum() physics.LinearMomentum {
	return b.moment.Linear()
}

// KineticEnergy returns the translational plus rotational kinetic energy.
func (b *MovingBody) KineticEnergy() float64 {
	v := b.moment.Velocity()
	angular := b.moment.Angular()
	return 0.5*b.Mass()*v.Dot(v) + 0.5*angular.MomentOfInertia()*angular.Spin()*angular.Spin()
}

// Update integrates the body over time: rotate by spin, translate by velocity.
func (b *MovingBody) Update(time float64) {
	b.placement.Rotate(b.moment.Spin() * time)
	b.placement.Translate(b.moment.Velocity().Mul(time))
}

// UpdateRotation integrates only the rotation, for bodies whose translation
// was already advanced by a resolution.
func (b *MovingBody) UpdateRotation(time float64) {
	b.placement.Rotate(b.moment.Spin() * time)
}

// Accelerate adds dv to the velocity.
func (b *MovingBody) Accelerate(dv mgl64.Vec2) {
	b.moment.Accelerate(dv)
}

// AccelerateRotation adds to the spin.
func (b *MovingBody) AccelerateRotation(rps float64) {
	b.moment.AddRotation(rps)
}

// MoveBy translates the body.
func (b *MovingBody) MoveBy(delta mgl64.Vec2) {
	b.placement.Translate(delta)
}

// MomentumAt returns the body's momentum as felt at offset from its origin.
func (b *MovingBody) MomentumAt(offset mgl64.Vec2) physics.LinearMomentum {
	return b.moment.LinearAt(offset)
}

// RequiredVelocityChange returns the change the incoming body must undergo for
// an elastic exchange with this body at worldPoint.
func (b *MovingBody) RequiredVelocityChange(incoming physics.LinearMomentum, normal, worldPoint mgl64.Vec2) mgl64.Vec2 {
	own := b.moment.LinearAt(b.placement.VectorTo(worldPoint))
	return incoming.Change(own, normal)
}

// ApplyVelocityChange applies delta as an impulse at worldPoint.
func (b *MovingBody) ApplyVelocityChange(delta, worldPoint mgl64.Vec2) {
	b.moment.ApplyVelocityChange(delta, b.placement.VectorTo(worldPoint))
}

func (b *MovingBody) String() string {
	return fmt.Sprintf("%v at %v v=%v spin=%.4g", b.shape, b.placement.Position(), b.Velocity(), b.Spin())
}
