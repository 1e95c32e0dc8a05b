package math

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Rotate(t *testing.T) {
	got := Vec2{1, 0}.Rotate(90)
	if abs(got.X) > 1e-6 || abs(got.Y-1) > 1e-6 {
		t.Errorf("Vec2.Rotate(90) = %v, want (0, 1)", got)
	}
}

func TestVec2TryNormalizeZero(t *testing.T) {
	if _, err := (Vec2{}).TryNormalize(); !errors.Is(err, ErrZeroLength) {
		t.Errorf("TryNormalize() error = %v, want ErrZeroLength", err)
	}
}

func TestVec3Cross(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want Vec3
	}{
		{"x cross y", XAxis, YAxis, ZAxis},
		{"y cross z", YAxis, ZAxis, XAxis},
		{"z cross x", ZAxis, XAxis, YAxis},
		{"y cross x", YAxis, XAxis, Vec3{0, 0, -1}},
		{"parallel", Vec3{2, 0, 0}, Vec3{5, 0, 0}, Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cross(tt.b); got != tt.want {
				t.Errorf("Cross() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Dot(t *testing.T) {
	got := Vec3{1, 2, 3}.Dot(Vec3{4, -5, 6})
	if got != 12 {
		t.Errorf("Vec3.Dot() = %v, want 12", got)
	}
}

func TestVec3NormalizeLength(t *testing.T) {
	vecs := []Vec3{
		{1, 0, 0},
		{3, 4, 0},
		{-2, 7, 1.5},
		{0.001, 0.002, -0.003},
		{1e4, -3e4, 2e4},
	}
	for _, v := range vecs {
		n := v.Normalize()
		if abs(n.Length()-1) > 1e-5 {
			t.Errorf("Normalize(%v).Length() = %v, want 1", v, n.Length())
		}
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	n := Vec3{}.Normalize()
	if !math32.IsNaN(n.X) {
		t.Errorf("Normalize(zero) = %v, want NaN components", n)
	}

	v := Vec3{}
	got, err := v.TryNormalize()
	if !errors.Is(err, ErrZeroLength) {
		t.Fatalf("TryNormalize() error = %v, want ErrZeroLength", err)
	}
	if got != v {
		t.Errorf("TryNormalize() returned %v, want the input unchanged", got)
	}
}

func TestVec3SetNormalizedInPlace(t *testing.T) {
	v := Vec3{0, 0, 9}
	v.SetNormalized()
	if v != ZAxis {
		t.Errorf("SetNormalized() = %v, want %v", v, ZAxis)
	}
}

func TestVec3Rotate(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec3
		angle float32
		axis  Vec3
		want  Vec3
	}{
		{"zero angle", Vec3{1, 2, 3}, 0, YAxis, Vec3{1, 2, 3}},
		{"full turn", Vec3{1, 2, 3}, 360, YAxis, Vec3{1, 2, 3}},
		{"x to y around z", XAxis, 90, ZAxis, YAxis},
		{"z to x around y", ZAxis, 90, YAxis, XAxis},
		{"y to z around x", YAxis, 90, XAxis, ZAxis},
		{"half turn", XAxis, 180, YAxis, Vec3{-1, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Rotate(tt.angle, tt.axis)
			if !got.ApproxEqual(tt.want, 1e-5) {
				t.Errorf("Rotate(%v, %v) = %v, want %v", tt.angle, tt.axis, got, tt.want)
			}
		})
	}
}

func TestVec3RotatePreservesLength(t *testing.T) {
	v := Vec3{3, -1, 2}
	axis := Vec3{1, 1, 1}.Normalize()
	for angle := float32(-720); angle <= 720; angle += 37 {
		got := v.Rotate(angle, axis)
		if abs(got.Length()-v.Length()) > 1e-4 {
			t.Errorf("Rotate(%v) changed length: %v -> %v", angle, v.Length(), got.Length())
		}
	}
}

func TestVec3Distance(t *testing.T) {
	got := Vec3{1, 1, 1}.Distance(Vec3{4, 5, 1})
	if got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
}

func TestVec3Lerp(t *testing.T) {
	got := Vec3{0, 0, 0}.Lerp(Vec3{10, -10, 4}, 0.5)
	want := Vec3{5, -5, 2}
	if got != want {
		t.Errorf("Lerp() = %v, want %v", got, want)
	}
}
