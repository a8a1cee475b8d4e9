package tess

import (
	"math"
	"testing"
)

func TestVec2_DotCross(t *testing.T) {
	v := V2(1, 0)
	w := V2(0, 1)

	if got := v.Dot(w); got != 0 {
		t.Errorf("Dot = %v, want 0", got)
	}
	if got := v.Cross(w); got != 1 {
		t.Errorf("Cross = %v, want 1", got)
	}
	if got := w.Cross(v); got != -1 {
		t.Errorf("Cross reversed = %v, want -1", got)
	}
}

func TestVec2_Normalize(t *testing.T) {
	v := V2(3, 4).Normalize()
	if math.Abs(v.Length()-1) > epsilon {
		t.Errorf("normalized length = %v, want 1", v.Length())
	}
	if !V2(0, 0).Normalize().IsZero() {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec2_Perp(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		want Vec2
	}{
		{"x axis", V2(1, 0), V2(0, 1)},
		{"y axis", V2(0, 1), V2(-1, 0)},
		{"diagonal", V2(1, 1), V2(-1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Perp(); got != tt.want {
				t.Errorf("Perp = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec2_PerpIsOrthogonal(t *testing.T) {
	v := V2(3.7, -1.2)
	if got := v.Dot(v.Perp()); math.Abs(got) > epsilon {
		t.Errorf("Dot with Perp = %v, want 0", got)
	}
}

func TestVec2_Angle(t *testing.T) {
	got := V2(1, 0).Angle(V2(0, 1))
	if math.Abs(got-math.Pi/2) > epsilon {
		t.Errorf("Angle = %v, want pi/2", got)
	}
}

func TestAngle_Normalized(t *testing.T) {
	tests := []struct {
		name string
		a    Angle
		want float64
	}{
		{"zero", 0, 0},
		{"wrap positive", Angle(3 * math.Pi), math.Pi},
		{"wrap negative", Angle(-math.Pi / 2), 3 * math.Pi / 2},
		{"in range", Angle(1.5), 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Normalized().Radians()
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("Normalized = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAngle_Degrees(t *testing.T) {
	if got := Degrees(180).Radians(); math.Abs(got-math.Pi) > epsilon {
		t.Errorf("Degrees(180) = %v rad, want pi", got)
	}
	if got := Radians(math.Pi / 2).Degrees(); math.Abs(got-90) > epsilon {
		t.Errorf("Radians(pi/2).Degrees() = %v, want 90", got)
	}
}
