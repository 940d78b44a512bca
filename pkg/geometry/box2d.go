// pkg/geometry/box2d.go
package geometry

import (
	"github.com/ByteArena/box2d"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-rigid/pkg/physics"
	"github.com/opd-ai/go-rigid/pkg/shape"
)

const (
	// DefaultHorizon is the first time-of-impact search window.
	DefaultHorizon = 100.0
	// DefaultHalfPlaneExtent is the half length of the segment standing in for
	// a half-plane boundary.
	DefaultHalfPlaneExtent = 1e4

	// separated witness points closer than this are treated as overlapping
	touchingDistance = 1e-9
	// margin used to find the normal of pairs already touching at t = 0
	touchingProbe = 4 * box2d.B2_linearSlop
	// bound on window growth for pairs whose gap shrinks without ever closing
	maxHorizonDoublings = 64
)

// Box2D is a geometry engine backed by Box2D's GJK distance, contact manifolds
// and conservative-advancement time of impact.
//
// Half-planes are modelled as a long two-sided segment; a body whose origin is
// behind the plane is reported as deeply penetrating along the plane normal.
type Box2D struct {
	// Horizon is the initial time-of-impact search window. The window grows
	// while the pair is still closing, so impacts beyond it are still found.
	Horizon float64
	// HalfPlaneExtent is the half length of the segment used for half-planes.
	HalfPlaneExtent float64
}

// NewBox2D creates an engine with the default horizon and half-plane extent.
func NewBox2D() *Box2D {
	return &Box2D{
		Horizon:         DefaultHorizon,
		HalfPlaneExtent: DefaultHalfPlaneExtent,
	}
}

func (g *Box2D) horizon() float64 {
	if g.Horizon > 0 {
		return g.Horizon
	}
	return DefaultHorizon
}

func (g *Box2D) halfPlaneExtent() float64 {
	if g.HalfPlaneExtent > 0 {
		return g.HalfPlaneExtent
	}
	return DefaultHalfPlaneExtent
}

// Contact returns the contact between two placed shapes when they are closer
// than margin, or penetrating.
func (g *Box2D) Contact(shapeA shape.Shape, placementA physics.Placement, shapeB shape.Shape, placementB physics.Placement, margin float64) (Contact, bool) {
	if !shapeA.Bounded() && !shapeB.Bounded() {
		return Contact{}, false
	}
	// keep the half-plane first so its normal orientation is known
	if shapeA.Bounded() && !shapeB.Bounded() {
		c, ok := g.Contact(shapeB, placementB, shapeA, placementA, margin)
		return c.Flip(), ok
	}
	if !shapeA.Bounded() {
		if c, behind := behindHalfPlane(shapeA, placementA, shapeB, placementB); behind {
			return c, true
		}
	}

	b2A, b2B := g.b2Shape(shapeA), g.b2Shape(shapeB)
	xfA, xfB := toTransform(placementA), toTransform(placementB)

	output := distance(b2A, xfA, b2B, xfB)
	if output.Distance > margin {
		return Contact{}, false
	}
	if output.Distance > touchingDistance {
		pointA, pointB := fromB2(output.PointA), fromB2(output.PointB)
		normal := pointB.Sub(pointA).Normalize()
		if !shapeA.Bounded() && normal.Dot(placementA.RotateVector(shapeA.Normal())) < 0 {
			normal = placementA.RotateVector(shapeA.Normal())
		}
		return Contact{
			PointA: pointA,
			PointB: pointB,
			Normal: normal,
			Depth:  -output.Distance,
		}, true
	}
	return collide(b2A, xfA, b2B, xfB)
}

// TimeOfImpact returns the earliest time at which the shapes touch if both keep
// moving at constant velocity without rotating. Pairs already touching report
// an impact at zero only while they are approaching.
//
// The search starts with a window of Horizon and doubles it for as long as the
// pair is still closing at the end of the window. Under linear relative motion
// the distance between two convex shapes is convex in time, so a pair that is
// not closing at the end of a window never meets later.
func (g *Box2D) TimeOfImpact(shapeA shape.Shape, placementA physics.Placement, velocityA mgl64.Vec2, shapeB shape.Shape, placementB physics.Placement, velocityB mgl64.Vec2) (float64, bool) {
	if !shapeA.Bounded() && !shapeB.Bounded() {
		return 0, false
	}
	b2A, b2B := g.b2Shape(shapeA), g.b2Shape(shapeB)

	horizon := g.horizon()
	for i := 0; i <= maxHorizonDoublings; i++ {
		input := box2d.MakeB2TOIInput()
		input.ProxyA.Set(b2A, 0)
		input.ProxyB.Set(b2B, 0)
		input.SweepA = toSweep(placementA, velocityA, horizon)
		input.SweepB = toSweep(placementB, velocityB, horizon)
		input.TMax = 1

		output := box2d.MakeB2TOIOutput()
		box2d.B2TimeOfImpact(&output, &input)

		switch output.State {
		case box2d.B2TOIOutput_State.E_touching:
			if output.T > 0 {
				return output.T * horizon, true
			}
			return g.touchingAtStart(shapeA, placementA, velocityA, shapeB, placementB, velocityB)
		case box2d.B2TOIOutput_State.E_overlapped:
			return g.touchingAtStart(shapeA, placementA, velocityA, shapeB, placementB, velocityB)
		case box2d.B2TOIOutput_State.E_separated:
			if !closingAt(b2A, placementA, velocityA, b2B, placementB, velocityB, horizon) {
				return 0, false
			}
			horizon *= 2
		default:
			return 0, false
		}
	}
	return 0, false
}

func (g *Box2D) touchingAtStart(shapeA shape.Shape, placementA physics.Placement, velocityA mgl64.Vec2, shapeB shape.Shape, placementB physics.Placement, velocityB mgl64.Vec2) (float64, bool) {
	c, ok := g.Contact(shapeA, placementA, shapeB, placementB, touchingProbe)
	if !ok {
		return 0, true
	}
	if velocityB.Sub(velocityA).Dot(c.Normal) >= 0 {
		return 0, false
	}
	return 0, true
}

// closingAt reports whether the gap between the shapes is still shrinking at
// time t.
func closingAt(a box2d.B2ShapeInterface, placementA physics.Placement, velocityA mgl64.Vec2, b box2d.B2ShapeInterface, placementB physics.Placement, velocityB mgl64.Vec2, t float64) bool {
	placementA.Translate(velocityA.Mul(t))
	placementB.Translate(velocityB.Mul(t))

	output := distance(a, toTransform(placementA), b, toTransform(placementB))
	if output.Distance <= touchingDistance {
		// reached the skin at the very end of the window
		return true
	}
	gap := fromB2(output.PointB).Sub(fromB2(output.PointA))
	return velocityB.Sub(velocityA).Dot(gap) < 0
}

func distance(a box2d.B2ShapeInterface, xfA box2d.B2Transform, b box2d.B2ShapeInterface, xfB box2d.B2Transform) box2d.B2DistanceOutput {
	input := box2d.MakeB2DistanceInput()
	input.ProxyA.Set(a, 0)
	input.ProxyB.Set(b, 0)
	input.TransformA = xfA
	input.TransformB = xfB
	input.UseRadii = true
	cache := box2d.MakeB2SimplexCache()
	output := box2d.MakeB2DistanceOutput()
	box2d.B2Distance(&output, &cache, &input)
	return output
}

func (g *Box2D) b2Shape(s shape.Shape) box2d.B2ShapeInterface {
	switch s.Kind() {
	case shape.KindDisc:
		circle := box2d.MakeB2CircleShape()
		circle.M_radius = s.Radius()
		return &circle
	case shape.KindBox:
		polygon := box2d.MakeB2PolygonShape()
		polygon.SetAsBox(s.HalfExtents().X(), s.HalfExtents().Y())
		return &polygon
	default:
		along := physics.Perp(s.Normal()).Mul(g.halfPlaneExtent())
		edge := box2d.MakeB2EdgeShape()
		edge.Set(toB2(along.Mul(-1)), toB2(along))
		return &edge
	}
}

// behindHalfPlane handles a bounded shape whose origin lies on the inner side
// of the half-plane, where the two-sided segment would report the wrong side.
func behindHalfPlane(plane shape.Shape, placementA physics.Placement, s shape.Shape, placementB physics.Placement) (Contact, bool) {
	normal := placementA.RotateVector(plane.Normal())
	offset := placementB.Position().Sub(placementA.Position()).Dot(normal)
	if offset >= 0 {
		return Contact{}, false
	}
	reach := s.BoundingRadius()
	pointB := placementB.Position().Sub(normal.Mul(reach))
	pointA := pointB.Sub(normal.Mul(pointB.Sub(placementA.Position()).Dot(normal)))
	return Contact{
		PointA: pointA,
		PointB: pointB,
		Normal: normal,
		Depth:  reach - offset,
	}, true
}

// collide computes the manifold for overlapping shapes. Box2D's collide
// functions take edges before polygons before circles, so pairs are swapped
// into that order and the result flipped back.
func collide(a box2d.B2ShapeInterface, xfA box2d.B2Transform, b box2d.B2ShapeInterface, xfB box2d.B2Transform) (Contact, bool) {
	if rank(a) > rank(b) {
		c, ok := collide(b, xfB, a, xfA)
		return c.Flip(), ok
	}

	manifold := box2d.B2Manifold{}
	switch shapeA := a.(type) {
	case *box2d.B2EdgeShape:
		switch shapeB := b.(type) {
		case *box2d.B2CircleShape:
			box2d.B2CollideEdgeAndCircle(&manifold, shapeA, xfA, shapeB, xfB)
		case *box2d.B2PolygonShape:
			box2d.B2CollideEdgeAndPolygon(&manifold, shapeA, xfA, shapeB, xfB)
		}
	case *box2d.B2PolygonShape:
		switch shapeB := b.(type) {
		case *box2d.B2CircleShape:
			box2d.B2CollidePolygonAndCircle(&manifold, shapeA, xfA, shapeB, xfB)
		case *box2d.B2PolygonShape:
			box2d.B2CollidePolygons(&manifold, shapeA, xfA, shapeB, xfB)
		}
	case *box2d.B2CircleShape:
		if shapeB, ok := b.(*box2d.B2CircleShape); ok {
			box2d.B2CollideCircles(&manifold, shapeA, xfA, shapeB, xfB)
		}
	}
	if manifold.PointCount == 0 {
		return Contact{}, false
	}

	world := box2d.MakeB2WorldManifold()
	world.Initialize(&manifold, xfA, a.GetRadius(), xfB, b.GetRadius())

	var point mgl64.Vec2
	separation := world.Separations[0]
	for i := 0; i < manifold.PointCount; i++ {
		point = point.Add(fromB2(world.Points[i]))
		if world.Separations[i] < separation {
			separation = world.Separations[i]
		}
	}
	point = point.Mul(1 / float64(manifold.PointCount))
	normal := fromB2(world.Normal)

	return Contact{
		PointA: point.Sub(normal.Mul(0.5 * separation)),
		PointB: point.Add(normal.Mul(0.5 * separation)),
		Normal: normal,
		Depth:  -separation,
	}, true
}

func rank(s box2d.B2ShapeInterface) int {
	switch s.GetType() {
	case box2d.B2Shape_Type.E_edge:
		return 0
	case box2d.B2Shape_Type.E_polygon:
		return 1
	default:
		return 2
	}
}

func toTransform(p physics.Placement) box2d.B2Transform {
	m := p.Transform()
	xf := box2d.MakeB2Transform()
	xf.P = box2d.MakeB2Vec2(m[6], m[7])
	xf.Q = box2d.B2Rot{S: m[1], C: m[0]}
	return xf
}

func toSweep(p physics.Placement, velocity mgl64.Vec2, horizon float64) box2d.B2Sweep {
	start := p.Position()
	end := start.Add(velocity.Mul(horizon))
	return box2d.B2Sweep{
		LocalCenter: box2d.MakeB2Vec2(0, 0),
		C0:          toB2(start),
		C:           toB2(end),
		A0:          p.Angle(),
		A:           p.Angle(),
		Alpha0:      0,
	}
}

func toB2(v mgl64.Vec2) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(v.X(), v.Y())
}

func fromB2(v box2d.B2Vec2) mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}
