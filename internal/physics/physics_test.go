package physics

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestNormalize(t *testing.T) {
	v := Vec{X: 1, Y: -1}.Normalize()
	if math.Abs(v.Len()-1) > eps {
		t.Errorf("len(Normalize) = %f, want 1", v.Len())
	}
	if z := (Vec{}).Normalize(); z != (Vec{}) {
		t.Errorf("Normalize(zero) = %v, want zero", z)
	}
}

func TestRotateIsPeriodic(t *testing.T) {
	v := Vec{X: 3, Y: 4}
	a := v.Rotate(37)
	b := v.Rotate(37 + 360*1000)
	if math.Abs(a.X-b.X) > 1e-6 || math.Abs(a.Y-b.Y) > 1e-6 {
		t.Errorf("Rotate(37) = %v, Rotate(37+360000) = %v", a, b)
	}

	// Counterclockwise on screen: right turns into up (negative y).
	up := Vec{X: 1}.Rotate(90)
	if math.Abs(up.X) > eps || math.Abs(up.Y+1) > eps {
		t.Errorf("Rotate(90) of +x = %v, want (0,-1)", up)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{3, 6, 4, 5},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestRectOverlapsAndContains(t *testing.T) {
	r := RectAt(Vec{X: 10, Y: 10}, 4, 4)
	if r.X != 8 || r.Y != 8 || r.Right() != 12 || r.Bottom() != 12 {
		t.Fatalf("RectAt = %+v", r)
	}
	if !r.Overlaps(Rect{X: 11, Y: 11, W: 5, H: 5}) {
		t.Error("expected overlapping rects to overlap")
	}
	if r.Overlaps(Rect{X: 12, Y: 8, W: 5, H: 5}) {
		t.Error("edge-touching rects must not overlap")
	}
	if !r.Contains(8, 8) || r.Contains(12, 12) {
		t.Error("Contains edge handling wrong")
	}
	if c := r.Center(); c != (Vec{X: 10, Y: 10}) {
		t.Errorf("Center() = %v, want (10,10)", c)
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	got, ok := a.Intersect(Rect{X: 5, Y: 8, W: 10, H: 10})
	if !ok || got != (Rect{X: 5, Y: 8, W: 5, H: 2}) {
		t.Errorf("Intersect = %+v, %v, want {5 8 5 2}", got, ok)
	}
	if _, ok := a.Intersect(Rect{X: 10, Y: 0, W: 5, H: 5}); ok {
		t.Error("touching edges reported as overlap")
	}
}
