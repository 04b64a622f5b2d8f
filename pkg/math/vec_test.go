package math

import (
	"math"
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
	if got := v.LengthSq(); got != 25 {
		t.Errorf("Vec2.LengthSq() = %v, want 25", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
}

func TestVec2NormalizeOr(t *testing.T) {
	fallback := Vec2{1, 0}

	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"zero", Vec2{0, 0}, fallback},
		{"tiny", Vec2{1e-5, 0}, fallback},
		{"nan", Vec2{math.NaN(), 1}, fallback},
		{"inf", Vec2{math.Inf(1), 0}, fallback},
		{"axis", Vec2{0, 2}, Vec2{0, 1}},
		{"diagonal", Vec2{3, 4}, Vec2{0.6, 0.8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.NormalizeOr(fallback, 1e-8)
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
				t.Errorf("NormalizeOr(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !(Vec3{1, 2, 3}).IsFinite() {
		t.Error("expected finite vector")
	}
	if (Vec3{1, math.NaN(), 3}).IsFinite() {
		t.Error("NaN component should not be finite")
	}
	if (Vec3{math.Inf(-1), 0, 0}).IsFinite() {
		t.Error("Inf component should not be finite")
	}
}

func TestVec3XZ(t *testing.T) {
	got := Vec3{1, 2, 3}.XZ()
	if got != (Vec2{1, 3}) {
		t.Errorf("Vec3.XZ() = %v, want {1 3}", got)
	}
}
