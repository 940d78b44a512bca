// pkg/physics/angular.go
package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// AngularMomentum is the rotational half of a body's momentum state.
// Spin is signed, counter-clockwise positive, in radians per unit time.
type AngularMomentum struct {
	rps    float64
	moi    float64
	invMoi float64
}

// NewAngularMomentum creates an angular momentum state. The moment of inertia
// must be strictly positive.
func NewAngularMomentum(moi, rps float64) (AngularMomentum, error) {
	if !finite(moi) || moi <= 0 {
		return AngularMomentum{}, fmt.Errorf("angular momentum with moment of inertia %v: %w", moi, ErrNonPositiveInertia)
	}
	if !finite(rps) {
		return AngularMomentum{}, fmt.Errorf("angular momentum with spin %v: spin must be finite", rps)
	}
	return AngularMomentum{
		rps:    rps,
		moi:    moi,
		invMoi: 1 / moi,
	}, nil
}

// Spin returns the rotational speed.
func (a AngularMomentum) Spin() float64 {
	return a.rps
}

// MomentOfInertia returns the moment of inertia.
func (a AngularMomentum) MomentOfInertia() float64 {
	return a.moi
}

// InverseMomentOfInertia returns 1/moment of inertia.
func (a AngularMomentum) InverseMomentOfInertia() float64 {
	return a.invMoi
}

// AddRotation accumulates spin.
func (a *AngularMomentum) AddRotation(rps float64) {
	a.rps += rps
}

// ApplyForce applies force at the body-local lever arm at. The spin changes by
// torque/moi where torque = perp(at)·force, so a force turning the arm
// counter-clockwise increases spin.
func (a *AngularMomentum) ApplyForce(force, at mgl64.Vec2) {
	a.rps += Cross(at, force) * a.invMoi
}

// MomentumAt returns the momentum contribution of the spin at the body-local point at.
func (a AngularMomentum) MomentumAt(at mgl64.Vec2) mgl64.Vec2 {
	return Perp(at).Mul(a.moi * a.rps)
}

// LinearVelocityAt returns the velocity contribution of the spin at the
// body-local point at, for a body with the given inverse mass.
func (a AngularMomentum) LinearVelocityAt(at mgl64.Vec2, invMass float64) mgl64.Vec2 {
	return Perp(at).Mul(a.moi * invMass * a.rps)
}
