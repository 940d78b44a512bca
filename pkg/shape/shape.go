// Package shape defines the closed set of geometric primitives a body can carry.
// Each kind resolves its moment-of-inertia formula once, at construction.
package shape

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidShape is returned when shape parameters are degenerate or not finite.
var ErrInvalidShape = errors.New("invalid shape")

// Kind identifies a shape variant
type Kind int

const (
	KindDisc Kind = iota
	KindBox
	KindHalfPlane
)

// String returns the config name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDisc:
		return "disc"
	case KindBox:
		return "box"
	case KindHalfPlane:
		return "half_plane"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a config name back to a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "disc", "circle", "ball":
		return KindDisc, nil
	case "box", "cuboid":
		return KindBox, nil
	case "half_plane", "plane":
		return KindHalfPlane, nil
	default:
		return 0, fmt.Errorf("unknown shape kind %q: %w", name, ErrInvalidShape)
	}
}

// Shape is an immutable tagged variant over {disc, box, half-plane}.
// Geometry is expressed in the body's local frame.
type Shape struct {
	kind        Kind
	radius      float64
	halfExtents mgl64.Vec2
	normal      mgl64.Vec2
	inertia     func(mass float64) float64
}

// Disc creates a disc of the given radius centered on the body origin.
func Disc(radius float64) (Shape, error) {
	if !positive(radius) {
		return Shape{}, fmt.Errorf("disc radius %v: %w", radius, ErrInvalidShape)
	}
	return Shape{
		kind:   KindDisc,
		radius: radius,
		inertia: func(mass float64) float64 {
			return 0.5 * mass * radius * radius
		},
	}, nil
}

// Box creates an axis-aligned (in body frame) box with the given half-extents.
func Box(halfExtents mgl64.Vec2) (Shape, error) {
	hx, hy := halfExtents.X(), halfExtents.Y()
	if !positive(hx) || !positive(hy) {
		return Shape{}, fmt.Errorf("box half extents %v: %w", halfExtents, ErrInvalidShape)
	}
	return Shape{
		kind:        KindBox,
		halfExtents: halfExtents,
		inertia: func(mass float64) float64 {
			return 0.5 * mass * (hx*hx + hy*hy)
		},
	}, nil
}

// HalfPlane creates the half-plane whose boundary passes through the body
// origin with the given outward normal. The normal is normalized.
func HalfPlane(normal mgl64.Vec2) (Shape, error) {
	length := normal.Len()
	if !positive(length) {
		return Shape{}, fmt.Errorf("half-plane normal %v: %w", normal, ErrInvalidShape)
	}
	return Shape{
		kind:   KindHalfPlane,
		normal: normal.Mul(1 / length),
		inertia: func(float64) float64 {
			return math.Inf(1)
		},
	}, nil
}

// Kind returns the variant tag.
func (s Shape) Kind() Kind {
	return s.kind
}

// Radius returns the disc radius; zero for other kinds.
func (s Shape) Radius() float64 {
	return s.radius
}

// HalfExtents returns the box half-extents; zero for other kinds.
func (s Shape) HalfExtents() mgl64.Vec2 {
	return s.halfExtents
}

// Normal returns the half-plane's unit outward normal; zero for other kinds.
func (s Shape) Normal() mgl64.Vec2 {
	return s.normal
}

// Bounded reports whether the shape has finite extent.
func (s Shape) Bounded() bool {
	return s.kind != KindHalfPlane
}

// MomentOfInertia returns the moment of inertia about the body origin for the
// given mass. Unbounded shapes report +Inf.
func (s Shape) MomentOfInertia(mass float64) float64 {
	if s.inertia == nil {
		return math.NaN()
	}
	return s.inertia(mass)
}

// BoundingRadius returns the radius of the smallest origin-centered circle
// containing the shape; +Inf for unbounded shapes.
func (s Shape) BoundingRadius() float64 {
	switch s.kind {
	case KindDisc:
		return s.radius
	case KindBox:
		return s.halfExtents.Len()
	default:
		return math.Inf(1)
	}
}

// Contains reports whether the body-local point lies inside the shape.
func (s Shape) Contains(local mgl64.Vec2) bool {
	switch s.kind {
	case KindDisc:
		return local.Dot(local) <= s.radius*s.radius
	case KindBox:
		return math.Abs(local.X()) <= s.halfExtents.X() && math.Abs(local.Y()) <= s.halfExtents.Y()
	case KindHalfPlane:
		return local.Dot(s.normal) <= 0
	default:
		return false
	}
}

// String describes the shape for logs.
func (s Shape) String() string {
	switch s.kind {
	case KindDisc:
		return fmt.Sprintf("disc(r=%g)", s.radius)
	case KindBox:
		return fmt.Sprintf("box(%gx%g)", s.halfExtents.X(), s.halfExtents.Y())
	case KindHalfPlane:
		return fmt.Sprintf("half_plane(n=%g,%g)", s.normal.X(), s.normal.Y())
	default:
		return s.kind.String()
	}
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
