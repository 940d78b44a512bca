package collision_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-rigid/pkg/body"
	"github.com/opd-ai/go-rigid/pkg/collision"
	"github.com/opd-ai/go-rigid/pkg/geometry"
)

const threshold = 1e-6

func near(got, want mgl64.Vec2, tol float64) bool {
	return got.Sub(want).Len() < tol
}

func disc(t *testing.T, position, velocity mgl64.Vec2, mass float64) *body.MovingBody {
	t.Helper()
	b, err := body.NewDisc(1, position, velocity, mass)
	if err != nil {
		t.Fatalf("NewDisc() failed: %v", err)
	}
	return b
}

func totalMomentum(bodies ...*body.MovingBody) mgl64.Vec2 {
	var total mgl64.Vec2
	for _, b := range bodies {
		total = total.Add(b.LinearMomentum().Momentum())
	}
	return total
}

func totalEnergy(bodies ...*body.MovingBody) float64 {
	var total float64
	for _, b := range bodies {
		total += b.KineticEnergy()
	}
	return total
}

func TestResolveWithBox2D_HeadOn(t *testing.T) {
	tests := []struct {
		name      string
		massA     float64
		massB     float64
		velocityA mgl64.Vec2
		velocityB mgl64.Vec2
		wantA     mgl64.Vec2
		wantB     mgl64.Vec2
	}{
		{
			name:  "equal_masses_exchange",
			massA: 1, massB: 1,
			velocityA: mgl64.Vec2{1, 0}, velocityB: mgl64.Vec2{-1, 0},
			wantA: mgl64.Vec2{-1, 0}, wantB: mgl64.Vec2{1, 0},
		},
		{
			name:  "light_into_heavy_at_rest",
			massA: 1, massB: 3,
			velocityA: mgl64.Vec2{2, 0}, velocityB: mgl64.Vec2{0, 0},
			wantA: mgl64.Vec2{-1, 0}, wantB: mgl64.Vec2{1, 0},
		},
		{
			name:  "heavy_into_light",
			massA: 4, massB: 1,
			velocityA: mgl64.Vec2{1, 0}, velocityB: mgl64.Vec2{-1, 0},
			wantA: mgl64.Vec2{0.2, 0}, wantB: mgl64.Vec2{2.2, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := disc(t, mgl64.Vec2{0, 0}, tt.velocityA, tt.massA)
			b := disc(t, mgl64.Vec2{4, 0}, tt.velocityB, tt.massB)
			momentum := totalMomentum(a, b)
			energy := totalEnergy(a, b)

			r := collision.NewResolver(geometry.NewBox2D(), collision.DefaultPredictionMargin)
			result := r.Resolve(a, b, 2)

			if result.Outcome != collision.Resolved {
				t.Fatalf("Outcome = %v, expected %v", result.Outcome, collision.Resolved)
			}
			if !near(a.Velocity(), tt.wantA, threshold) {
				t.Errorf("a.Velocity() = %v, expected %v", a.Velocity(), tt.wantA)
			}
			if !near(b.Velocity(), tt.wantB, threshold) {
				t.Errorf("b.Velocity() = %v, expected %v", b.Velocity(), tt.wantB)
			}
			if got := totalMomentum(a, b); !near(got, momentum, threshold) {
				t.Errorf("total momentum = %v, expected %v", got, momentum)
			}
			if got := totalEnergy(a, b); math.Abs(got-energy) > threshold {
				t.Errorf("total energy = %v, expected %v", got, energy)
			}
		})
	}
}

func TestResolveWithBox2D_NoDoubleResolution(t *testing.T) {
	a := disc(t, mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, 1)
	b := disc(t, mgl64.Vec2{4, 0}, mgl64.Vec2{-1, 0}, 1)
	r := collision.NewResolver(geometry.NewBox2D(), collision.DefaultPredictionMargin)

	if result := r.Resolve(a, b, 2); result.Outcome != collision.Resolved {
		t.Fatalf("first Resolve() = %v, expected %v", result.Outcome, collision.Resolved)
	}
	velocityA, velocityB := a.Velocity(), b.Velocity()

	if result := r.Resolve(a, b, 2); result.Outcome != collision.NoImpact {
		t.Errorf("second Resolve() = %v, expected %v", result.Outcome, collision.NoImpact)
	}
	if a.Velocity() != velocityA || b.Velocity() != velocityB {
		t.Error("second Resolve() applied another impulse")
	}
}

func TestResolveWithBox2D_MissWithinBudget(t *testing.T) {
	a := disc(t, mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, 1)
	b := disc(t, mgl64.Vec2{10, 0}, mgl64.Vec2{-1, 0}, 1)
	r := collision.NewResolver(geometry.NewBox2D(), collision.DefaultPredictionMargin)

	if result := r.Resolve(a, b, 1); result.Outcome != collision.NoImpact {
		t.Errorf("Resolve() = %v, expected %v", result.Outcome, collision.NoImpact)
	}
}

func TestResolveWithBox2D_FloorReflection(t *testing.T) {
	floor, err := body.NewFloor(mgl64.Vec2{0, 0}, mgl64.Vec2{0, 1})
	if err != nil {
		t.Fatalf("NewFloor() failed: %v", err)
	}
	ball := disc(t, mgl64.Vec2{0, 3}, mgl64.Vec2{0, -2}, 5)

	r := collision.NewResolver(geometry.NewBox2D(), collision.DefaultPredictionMargin)
	result := r.Resolve(ball, floor, 2)

	if result.Outcome != collision.Resolved {
		t.Fatalf("Outcome = %v, expected %v", result.Outcome, collision.Resolved)
	}
	if !near(ball.Velocity(), mgl64.Vec2{0, 2}, threshold) {
		t.Errorf("Velocity() = %v, expected (0, 2)", ball.Velocity())
	}
	// down to the floor in about 1, back up for the rest of the budget
	if y := ball.Placement().Position().Y(); y < 2.9 || y > 3.1 {
		t.Errorf("ball height = %v, expected about 3 after bouncing", y)
	}
	if floor.Placement().Position() != (mgl64.Vec2{}) {
		t.Errorf("floor moved to %v", floor.Placement().Position())
	}
}

func TestResolveWithBox2D_ImpactPastSearchWindow(t *testing.T) {
	a := disc(t, mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, 1)
	b := disc(t, mgl64.Vec2{302, 0}, mgl64.Vec2{-1, 0}, 1)
	r := collision.NewResolver(geometry.NewBox2D(), collision.DefaultPredictionMargin)

	result := r.Resolve(a, b, 200)
	if result.Outcome != collision.Resolved {
		t.Fatalf("Outcome = %v, expected %v", result.Outcome, collision.Resolved)
	}
	if math.Abs(result.ImpactTime-150) > 0.02 {
		t.Errorf("ImpactTime = %v, expected about 150", result.ImpactTime)
	}
	if !near(a.Velocity(), mgl64.Vec2{-1, 0}, threshold) || !near(b.Velocity(), mgl64.Vec2{1, 0}, threshold) {
		t.Errorf("velocities = %v, %v, expected exchanged", a.Velocity(), b.Velocity())
	}
	// 150 in, 50 back out
	if x := a.Placement().Position().X(); math.Abs(x-100) > 0.1 {
		t.Errorf("a at x = %v, expected about 100", x)
	}
}
