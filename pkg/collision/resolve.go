// pkg/collision/resolve.go
package collision

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-rigid/pkg/geometry"
)

// DefaultPredictionMargin is how close, after advancing to the impact instant,
// two bodies must be for the contact to be confirmed.
const DefaultPredictionMargin = 0.5

// Outcome classifies what a resolution did.
type Outcome int

const (
	// NoImpact means the pair does not meet within the budget. Nothing moved.
	NoImpact Outcome = iota
	// Resolved means an impulse was exchanged and the whole budget consumed.
	Resolved
	// Unconfirmed means an impact was predicted but no contact was found at
	// the impact instant. The budget was consumed without an impulse.
	Unconfirmed
)

func (o Outcome) String() string {
	switch o {
	case NoImpact:
		return "no_impact"
	case Resolved:
		return "resolved"
	case Unconfirmed:
		return "unconfirmed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result reports the side effects of a Resolve call.
type Result struct {
	Outcome Outcome
	// ImpactTime is the time of first contact, measured from the start of the call.
	ImpactTime float64
	// Contact is the confirmed contact, valid when Outcome is Resolved.
	Contact geometry.Contact
	// VelocityChange is the change applied to the first body at its contact point.
	VelocityChange mgl64.Vec2
}

// Moved reports whether the bodies were advanced through the budget.
func (r Result) Moved() bool {
	return r.Outcome != NoImpact
}

// Resolver runs the pairwise collision protocol against a geometry engine.
// It holds no body state between calls.
type Resolver struct {
	geometry Geometry
	margin   float64
}

// NewResolver creates a resolver. A negative or non-finite margin selects
// DefaultPredictionMargin.
func NewResolver(g Geometry, margin float64) *Resolver {
	if margin < 0 || math.IsNaN(margin) || math.IsInf(margin, 0) {
		margin = DefaultPredictionMargin
	}
	return &Resolver{geometry: g, margin: margin}
}

// Margin returns the prediction margin used to confirm contacts.
func (r *Resolver) Margin() float64 {
	return r.margin
}

// Resolve resolves at most one collision between a and b within budget.
//
// When the pair meets no later than budget both bodies are advanced to the
// impact instant, the contact is confirmed and equal and opposite impulses are
// exchanged at the contact points, then both bodies are advanced through the
// rest of the budget. When the pair does not meet in time nothing is touched
// and the caller is expected to integrate both bodies itself.
func (r *Resolver) Resolve(a Body, b Collidable, budget float64) Result {
	if math.IsNaN(budget) || budget < 0 {
		return Result{Outcome: NoImpact}
	}
	toi, ok := TimeOfImpact(r.geometry, a, b)
	if !ok || budget < toi {
		return Result{Outcome: NoImpact}
	}

	Advance(a, toi)
	Advance(b, toi)
	remaining := budget - toi

	contact, ok := ContactPoint(r.geometry, a, b, r.margin)
	if !ok {
		Advance(a, remaining)
		Advance(b, remaining)
		return Result{Outcome: Unconfirmed, ImpactTime: toi}
	}

	incoming := a.MomentumAt(a.Placement().VectorTo(contact.PointA))
	change := b.RequiredVelocityChange(incoming, contact.Normal, contact.PointB)

	// equal and opposite impulses: mA·Δv on A, -mA·Δv on B
	a.ApplyVelocityChange(change, contact.PointA)
	b.ApplyVelocityChange(change.Mul(-incoming.Mass()*b.InverseMass()), contact.PointB)

	Advance(a, remaining)
	Advance(b, remaining)

	return Result{
		Outcome:        Resolved,
		ImpactTime:     toi,
		Contact:        contact,
		VelocityChange: change,
	}
}
