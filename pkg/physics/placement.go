// pkg/physics/placement.go
package physics

import (
	"math/cmplx"

	"github.com/go-gl/mathgl/mgl64"
)

// Placement is a rigid transform: a world position and an orientation stored as
// a unit complex number.
type Placement struct {
	position    mgl64.Vec2
	orientation complex128
}

// NewPlacement creates a placement at position rotated by angle radians.
func NewPlacement(position mgl64.Vec2, angle float64) Placement {
	return Placement{
		position:    position,
		orientation: cmplx.Rect(1, angle),
	}
}

// Position returns the world position.
func (p Placement) Position() mgl64.Vec2 {
	return p.position
}

// Orientation returns the unit complex rotation.
func (p Placement) Orientation() complex128 {
	if p.orientation == 0 {
		return 1
	}
	return p.orientation
}

// Angle returns the orientation in radians in (-π, π].
func (p Placement) Angle() float64 {
	return cmplx.Phase(p.Orientation())
}

// Translate moves the placement by delta.
func (p *Placement) Translate(delta mgl64.Vec2) {
	p.position = p.position.Add(delta)
}

// Rotate composes the orientation with a rotation of angle radians.
func (p *Placement) Rotate(angle float64) {
	o := p.Orientation() * cmplx.Rect(1, angle)
	// keep unit magnitude against drift
	p.orientation = o / complex(cmplx.Abs(o), 0)
}

// Transform returns the homogeneous 2D transform that rotates then translates.
func (p Placement) Transform() mgl64.Mat3 {
	return mgl64.Translate2D(p.position.X(), p.position.Y()).Mul3(mgl64.HomogRotate2D(p.Angle()))
}

// VectorTo returns the body-local offset of a world point: point - position.
func (p Placement) VectorTo(point mgl64.Vec2) mgl64.Vec2 {
	return point.Sub(p.position)
}

// ToWorld maps a point in the body frame to world space.
func (p Placement) ToWorld(local mgl64.Vec2) mgl64.Vec2 {
	return p.position.Add(p.RotateVector(local))
}

// ToLocal maps a world point into the body frame; the inverse of ToWorld.
func (p Placement) ToLocal(point mgl64.Vec2) mgl64.Vec2 {
	offset := p.VectorTo(point)
	r := complex(offset.X(), offset.Y()) * cmplx.Conj(p.Orientation())
	return mgl64.Vec2{real(r), imag(r)}
}

// RotateVector rotates v by the orientation.
func (p Placement) RotateVector(v mgl64.Vec2) mgl64.Vec2 {
	r := complex(v.X(), v.Y()) * p.Orientation()
	return mgl64.Vec2{real(r), imag(r)}
}

// ApproxEqual reports whether two placements agree within threshold in both
// position and orientation.
func (p Placement) ApproxEqual(other Placement, threshold float64) bool {
	if p.position.Sub(other.position).Len() > threshold {
		return false
	}
	return cmplx.Abs(p.Orientation()-other.Orientation()) <= threshold
}

