// pkg/physics/placement_test.go
package physics

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPlacement_TranslateInverse(t *testing.T) {
	tests := []struct {
		name  string
		start mgl64.Vec2
		delta mgl64.Vec2
	}{
		{name: "integers", start: mgl64.Vec2{3, 4}, delta: mgl64.Vec2{-7, 2}},
		{name: "zero_delta", start: mgl64.Vec2{1, 1}, delta: mgl64.Vec2{}},
		{name: "halves", start: mgl64.Vec2{0.5, -0.25}, delta: mgl64.Vec2{0.125, 4.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlacement(tt.start, 0)
			p.Translate(tt.delta)
			p.Translate(tt.delta.Mul(-1))
			if p.Position() != tt.start {
				t.Errorf("Position() = %v, expected %v", p.Position(), tt.start)
			}
		})
	}
}

func TestPlacement_RotateInverse(t *testing.T) {
	for _, angle := range []float64{0.1, math.Pi / 3, math.Pi, 5.5, -2} {
		p := NewPlacement(mgl64.Vec2{}, 0)
		p.Rotate(angle)
		p.Rotate(-angle)
		if cmplx.Abs(p.Orientation()-1) > tolerance {
			t.Errorf("angle %v: orientation = %v, expected identity", angle, p.Orientation())
		}
	}
}

func TestPlacement_OrientationStaysUnit(t *testing.T) {
	p := NewPlacement(mgl64.Vec2{}, 0.3)
	for i := 0; i < 10000; i++ {
		p.Rotate(0.0137)
	}
	if got := cmplx.Abs(p.Orientation()); math.Abs(got-1) > 1e-12 {
		t.Errorf("|orientation| = %v, expected 1", got)
	}
	expected := math.Remainder(0.3+10000*0.0137, 2*math.Pi)
	if math.Abs(p.Angle()-expected) > 1e-9 {
		t.Errorf("Angle() = %v, expected %v", p.Angle(), expected)
	}
}

func TestPlacement_ZeroValueIsIdentity(t *testing.T) {
	var p Placement
	if p.Orientation() != 1 {
		t.Errorf("Orientation() = %v, expected 1", p.Orientation())
	}
	p.Rotate(math.Pi / 2)
	if got := p.RotateVector(mgl64.Vec2{1, 0}); !near(got, mgl64.Vec2{0, 1}, tolerance) {
		t.Errorf("RotateVector() = %v, expected (0, 1)", got)
	}
}

func TestPlacement_VectorTo(t *testing.T) {
	p := NewPlacement(mgl64.Vec2{2, 3}, 1.2)
	if got := p.VectorTo(mgl64.Vec2{5, -1}); got != (mgl64.Vec2{3, -4}) {
		t.Errorf("VectorTo() = %v, expected (3, -4)", got)
	}
}

func TestPlacement_TransformMatchesToWorld(t *testing.T) {
	p := NewPlacement(mgl64.Vec2{4, -2}, math.Pi/6)
	p.Rotate(0.4)
	p.Translate(mgl64.Vec2{1, 1})

	for _, local := range []mgl64.Vec2{{1, 0}, {0, 1}, {2.5, -3}, {0, 0}} {
		h := p.Transform().Mul3x1(mgl64.Vec3{local.X(), local.Y(), 1})
		world := p.ToWorld(local)
		if !near(h.Vec2(), world, tolerance) {
			t.Errorf("Transform() maps %v to %v, ToWorld() gives %v", local, h.Vec2(), world)
		}
		if back := p.ToLocal(world); !near(back, local, tolerance) {
			t.Errorf("ToLocal(ToWorld(%v)) = %v", local, back)
		}
	}
}

func TestPlacement_ApproxEqual(t *testing.T) {
	a := NewPlacement(mgl64.Vec2{1, 1}, 0.5)
	b := NewPlacement(mgl64.Vec2{1, 1 + 1e-12}, 0.5)
	c := NewPlacement(mgl64.Vec2{1, 1}, 0.6)

	if !a.ApproxEqual(b, 1e-9) {
		t.Error("expected placements within tolerance to be equal")
	}
	if a.ApproxEqual(c, 1e-9) {
		t.Error("expected placements with different orientation to differ")
	}

	origin := NewPlacement(mgl64.Vec2{}, 0)
	noisy := NewPlacement(mgl64.Vec2{6e-17, -2e-16}, 0)
	if !origin.ApproxEqual(noisy, 1e-9) {
		t.Error("expected rounding noise around the origin to compare equal")
	}
	if origin.ApproxEqual(NewPlacement(mgl64.Vec2{1e-6, 0}, 0), 1e-9) {
		t.Error("expected placements 1e-6 apart to differ at 1e-9")
	}
}

func TestVectorHelpers(t *testing.T) {
	v := mgl64.Vec2{3, 4}
	onto := mgl64.Vec2{2, 0}

	if got := Perp(v); got != (mgl64.Vec2{-4, 3}) {
		t.Errorf("Perp() = %v, expected (-4, 3)", got)
	}
	if got := Project(v, onto); !near(got, mgl64.Vec2{3, 0}, tolerance) {
		t.Errorf("Project() = %v, expected (3, 0)", got)
	}
	if got := Reject(v, onto); !near(got, mgl64.Vec2{0, 4}, tolerance) {
		t.Errorf("Reject() = %v, expected (0, 4)", got)
	}
	if got := Project(v, mgl64.Vec2{}); got != (mgl64.Vec2{}) {
		t.Errorf("Project() onto zero = %v, expected zero", got)
	}
	if got := Cross(mgl64.Vec2{1, 0}, mgl64.Vec2{0, 1}); got != 1 {
		t.Errorf("Cross() = %v, expected 1", got)
	}
}
