package tiling

import (
	"math"
	"testing"
)

const transformEps = 1e-9

func nearRect(a, b RectF) bool {
	return math.Abs(a.X-b.X) < transformEps && math.Abs(a.Y-b.Y) < transformEps &&
		math.Abs(a.W-b.W) < transformEps && math.Abs(a.H-b.H) < transformEps
}

func TestIsIdentityOrTranslation(t *testing.T) {
	tests := []struct {
		name string
		m    Transform
		want bool
	}{
		{"identity", Identity(), true},
		{"pure translation", Translate(10, 20), true},
		{"zero translation", Translate(0, 0), true},
		{"negative translation", Translate(-5, -3), true},
		{"uniform scale", Scale(2, 2), false},
		{"scale 1,1", Scale(1, 1), true},
		{"rotation 90deg", Rotate(math.Pi / 2), false},
		{"perspective", Perspective(100), false},
		{"scale + translate", Translate(10, 20).Multiply(Scale(2, 3)), false},
		{"translate + translate", Translate(1, 2).Multiply(Translate(3, 4)), true},
		{"zero matrix", Transform{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsIdentityOrTranslation(); got != tt.want {
				t.Errorf("IsIdentityOrTranslation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransform_IsIdentity(t *testing.T) {
	if !Identity().IsIdentity() {
		t.Error("Identity().IsIdentity() = false")
	}
	if Translate(1, 0).IsIdentity() {
		t.Error("Translate(1,0).IsIdentity() = true")
	}
}

func TestTransform_Multiply(t *testing.T) {
	// Scale first, then translate.
	m := Translate(10, 20).Multiply(Scale(2, 3))
	x, y, ok := m.MapPoint(1, 1)
	if !ok || x != 12 || y != 23 {
		t.Errorf("MapPoint(1,1) = (%v,%v,%v), want (12,23,true)", x, y, ok)
	}
	if got := m.Multiply(Identity()); got != m {
		t.Errorf("m * I = %v, want %v", got, m)
	}
	tx, ty := Translate(1, 2).Multiply(Translate(3, 4)).Translation()
	if tx != 4 || ty != 6 {
		t.Errorf("Translation() = (%v,%v), want (4,6)", tx, ty)
	}
}

func TestTransform_MapPointBehindViewer(t *testing.T) {
	m := Identity()
	m.M[12] = -1.0 / 50
	if _, _, ok := m.MapPoint(10, 0); !ok {
		t.Error("point in front of the viewer reported behind")
	}
	if _, _, ok := m.MapPoint(100, 0); ok {
		t.Error("point behind the viewer reported visible")
	}
}

func TestClippedRectMapper(t *testing.T) {
	var mapper ClippedRectMapper
	r := NewRectF(0, 0, 10, 20)

	tests := []struct {
		name string
		m    Transform
		want RectF
	}{
		{"identity", Identity(), r},
		{"translate", Translate(5, -5), NewRectF(5, -5, 10, 20)},
		{"scale", Scale(2, 0.5), NewRectF(0, 0, 20, 10)},
		{"rotate 90", Rotate(math.Pi / 2), NewRectF(-20, 0, 20, 10)},
		{"rotate about y keeps height", RotateY(math.Pi / 3), NewRectF(0, 0, 5, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapper.MapClippedRect(tt.m, r); !nearRect(got, tt.want) {
				t.Errorf("MapClippedRect = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClippedRectMapper_ClipsBehindViewer(t *testing.T) {
	var mapper ClippedRectMapper

	// w = 1 - x/50: the right half of the rect is behind the viewer.
	m := Identity()
	m.M[12] = -1.0 / 50
	got := mapper.MapClippedRect(m, NewRectF(0, 0, 100, 10))
	if got.IsEmpty() {
		t.Fatal("partially visible rect mapped to empty")
	}
	if got.X != 0 {
		t.Errorf("X = %v, want 0", got.X)
	}
	if got.W < 1e6 {
		t.Errorf("W = %v, want a huge extent near the clip plane", got.W)
	}
	if math.IsInf(got.W, 0) || math.IsNaN(got.W) {
		t.Errorf("W = %v, want finite", got.W)
	}

	// Entirely behind.
	m = Identity()
	m.M[15] = -1
	if got := mapper.MapClippedRect(m, NewRectF(0, 0, 10, 10)); !got.IsEmpty() {
		t.Errorf("rect behind the viewer = %+v, want empty", got)
	}
}
