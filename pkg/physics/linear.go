// pkg/physics/linear.go
package physics

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrNonPositiveMass is returned when a body is given a zero, negative or non-finite mass.
	ErrNonPositiveMass = errors.New("mass must be positive and finite")
	// ErrNonPositiveInertia is returned when a body is given a zero, negative or
	// non-finite moment of inertia.
	ErrNonPositiveInertia = errors.New("moment of inertia must be positive and finite")
)

// LinearMomentum is the translational half of a body's momentum state.
type LinearMomentum struct {
	velocity mgl64.Vec2
	mass     float64
	invMass  float64
}

// NewLinearMomentum creates a linear momentum state. Mass must be strictly positive.
func NewLinearMomentum(velocity mgl64.Vec2, mass float64) (LinearMomentum, error) {
	if !finite(mass) || mass <= 0 {
		return LinearMomentum{}, fmt.Errorf("linear momentum with mass %v: %w", mass, ErrNonPositiveMass)
	}
	if !finite(velocity.X(), velocity.Y()) {
		return LinearMomentum{}, fmt.Errorf("linear momentum with velocity %v: velocity must be finite", velocity)
	}
	return LinearMomentum{
		velocity: velocity,
		mass:     mass,
		invMass:  1 / mass,
	}, nil
}

// Velocity returns the current velocity.
func (l LinearMomentum) Velocity() mgl64.Vec2 {
	return l.velocity
}

// Mass returns the mass.
func (l LinearMomentum) Mass() float64 {
	return l.mass
}

// InverseMass returns 1/mass.
func (l LinearMomentum) InverseMass() float64 {
	return l.invMass
}

// Momentum returns mass × velocity.
func (l LinearMomentum) Momentum() mgl64.Vec2 {
	return l.velocity.Mul(l.mass)
}

// Accelerate adds dv directly to the velocity.
func (l *LinearMomentum) Accelerate(dv mgl64.Vec2) {
	l.velocity = l.velocity.Add(dv)
}

// ApplyForce applies an impulse: velocity += force × inverse mass.
func (l *LinearMomentum) ApplyForce(force mgl64.Vec2) {
	l.velocity = l.velocity.Add(force.Mul(l.invMass))
}

// Change returns the velocity change l must undergo when it meets other across
// a contact with the given normal, for a perfectly elastic exchange:
//
//	Δv = -2·m_other/(m_self+m_other) · ((v_self - v_other)·n̂) · n̂
//
// The normal does not need to be normalized and its sign does not matter.
func (l LinearMomentum) Change(other LinearMomentum, normal mgl64.Vec2) mgl64.Vec2 {
	nn := normal.Dot(normal)
	if nn < Epsilon {
		return mgl64.Vec2{}
	}
	closing := l.velocity.Sub(other.velocity).Dot(normal) / nn
	return normal.Mul(-2 * other.mass / (l.mass + other.mass) * closing)
}

// ReflectionChange returns the velocity change that mirrors the velocity across
// a surface with the given normal, as when striking an immovable frictionless boundary.
func (l LinearMomentum) ReflectionChange(normal mgl64.Vec2) mgl64.Vec2 {
	return Project(l.velocity, normal).Mul(-2)
}

// Reflect returns the mirrored velocity v - 2·(v·n̂)·n̂.
func (l LinearMomentum) Reflect(normal mgl64.Vec2) mgl64.Vec2 {
	return l.velocity.Add(l.ReflectionChange(normal))
}
