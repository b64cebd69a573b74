package common

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestAngle(t *testing.T) {
	cases := []struct {
		name string
		a, b Point2D
		want float64
	}{
		{"east", Point2D{0, 0}, Point2D{1, 0}, 0},
		{"north", Point2D{0, 0}, Point2D{0, 1}, math.Pi / 2},
		{"west", Point2D{0, 0}, Point2D{-1, 0}, math.Pi},
		{"south", Point2D{0, 0}, Point2D{0, -1}, -math.Pi / 2},
		{"third_quadrant", Point2D{1, 1}, Point2D{0, 0}, -3 * math.Pi / 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Angle(c.a, c.b); math.Abs(got-c.want) > eps {
				t.Fatalf("Angle(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(Point2D{0, 0}, Point2D{3, 4}); got != 5 {
		t.Fatalf("expected 5, got %v", got)
	}

	points := []Point2D{{0, 0}, {3, 4}, {-2.5, 7}, {160, 120}, {260, 120}, {-1e3, 1e-3}}
	for _, a := range points {
		if d := Distance(a, a); d != 0 {
			t.Fatalf("Distance(%v, %v) = %v, want 0", a, a, d)
		}
		for _, b := range points {
			ab := Distance(a, b)
			ba := Distance(b, a)
			if ab != ba {
				t.Fatalf("distance not symmetric for %v %v: %v vs %v", a, b, ab, ba)
			}
			if ab < 0 {
				t.Fatalf("negative distance %v", ab)
			}
		}
	}
}

func TestNewImpulseVector(t *testing.T) {
	t.Run("slingshot_pull", func(t *testing.T) {
		iv := NewImpulseVector(Point2D{160, 120}, Point2D{260, 120})
		if math.Abs(math.Abs(iv.Angle)-math.Pi) > eps {
			t.Fatalf("expected angle ±π, got %v", iv.Angle)
		}
		if iv.Impulse != 100 {
			t.Fatalf("expected impulse 100, got %v", iv.Impulse)
		}
	})

	t.Run("reversed_argument_identity", func(t *testing.T) {
		points := []Point2D{{0, 0}, {3, 4}, {-2.5, 7}, {160, 120}, {90, 60}}
		for _, a := range points {
			for _, b := range points {
				if a == b {
					continue
				}
				iv := NewImpulseVector(a, b)
				if iv.Angle != Angle(b, a) {
					t.Fatalf("angle mismatch for %v %v: %v vs %v", a, b, iv.Angle, Angle(b, a))
				}
				if iv.Impulse != Distance(a, b) {
					t.Fatalf("impulse mismatch for %v %v: %v vs %v", a, b, iv.Impulse, Distance(a, b))
				}
			}
		}
	})

	t.Run("pull_down_left_fires_up_right", func(t *testing.T) {
		iv := NewImpulseVector(Point2D{160, 120}, Point2D{100, 60})
		if math.Abs(iv.Angle-math.Pi/4) > eps {
			t.Fatalf("expected π/4, got %v", iv.Angle)
		}
	})
}
