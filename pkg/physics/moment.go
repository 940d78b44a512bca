// pkg/physics/moment.go
package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Moment is the complete momentum state of a rigid body. It exclusively owns its
// linear and angular parts; copies are independent.
type Moment struct {
	linear  LinearMomentum
	angular AngularMomentum
}

// NewMoment creates a momentum state from the initial velocity, spin, mass and
// moment of inertia.
func NewMoment(velocity mgl64.Vec2, rps, mass, moi float64) (Moment, error) {
	linear, err := NewLinearMomentum(velocity, mass)
	if err != nil {
		return Moment{}, fmt.Errorf("failed to create moment: %w", err)
	}
	angular, err := NewAngularMomentum(moi, rps)
	if err != nil {
		return Moment{}, fmt.Errorf("failed to create moment: %w", err)
	}
	return Moment{linear: linear, angular: angular}, nil
}

// Linear returns a copy of the linear part.
func (m Moment) Linear() LinearMomentum {
	return m.linear
}

// Angular returns a copy of the angular part.
func (m Moment) Angular() AngularMomentum {
	return m.angular
}

// Velocity returns the linear velocity.
func (m Moment) Velocity() mgl64.Vec2 {
	return m.linear.velocity
}

// Spin returns the rotational speed.
func (m Moment) Spin() float64 {
	return m.angular.rps
}

// Accelerate adds dv to the linear velocity.
func (m *Moment) Accelerate(dv mgl64.Vec2) {
	m.linear.Accelerate(dv)
}

// AddRotation adds to the spin.
func (m *Moment) AddRotation(rps float64) {
	m.angular.AddRotation(rps)
}

// ApplyForce applies force at the body-local lever arm at. The component along
// the arm moves the body; the perpendicular component spins it. A force at the
// origin is purely linear.
func (m *Moment) ApplyForce(force, at mgl64.Vec2) {
	if IsZero(at) {
		m.linear.ApplyForce(force)
		return
	}
	linear := Project(force, at)
	m.linear.ApplyForce(linear)
	m.angular.ApplyForce(force.Sub(linear), at)
}

// ApplyVelocityChange requests a velocity change at the body-local point at by
// applying the equivalent impulse (change × mass).
func (m *Moment) ApplyVelocityChange(change, at mgl64.Vec2) {
	m.ApplyForce(change.Mul(m.linear.mass), at)
}

// MomentumAt returns the total momentum felt at the body-local point at:
// linear momentum plus the angular contribution.
func (m Moment) MomentumAt(at mgl64.Vec2) mgl64.Vec2 {
	return m.linear.Momentum().Add(m.angular.MomentumAt(at))
}

// LinearAt returns an equivalent LinearMomentum as felt at the body-local
// point at, so a spinning body can be treated as instantaneously linear.
func (m Moment) LinearAt(at mgl64.Vec2) LinearMomentum {
	return LinearMomentum{
		velocity: m.MomentumAt(at).Mul(m.linear.invMass),
		mass:     m.linear.mass,
		invMass:  m.linear.invMass,
	}
}
