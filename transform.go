package tiling

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Transform is a 4x4 matrix mapping content space to screen space.
// It is stored in row-major order:
//
//	| m0  m1  m2  m3  |
//	| m4  m5  m6  m7  |
//	| m8  m9  m10 m11 |
//	| m12 m13 m14 m15 |
//
// Points are column vectors, so the translation lives in m3, m7 and m11.
type Transform struct {
	M f64.Mat4
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{M: f64.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// Translate creates a 2D translation transform.
func Translate(x, y float64) Transform {
	t := Identity()
	t.M[3] = x
	t.M[7] = y
	return t
}

// Scale creates a 2D scaling transform.
func Scale(x, y float64) Transform {
	t := Identity()
	t.M[0] = x
	t.M[5] = y
	return t
}

// Rotate creates a rotation about the z axis (angle in radians).
func Rotate(angle float64) Transform {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	t := Identity()
	t.M[0], t.M[1] = cos, -sin
	t.M[4], t.M[5] = sin, cos
	return t
}

// Perspective creates a perspective projection with the eye at distance
// depth from the z=0 plane.
func Perspective(depth float64) Transform {
	t := Identity()
	if depth != 0 {
		t.M[14] = -1 / depth
	}
	return t
}

// RotateY creates a rotation about the y axis (angle in radians).
func RotateY(angle float64) Transform {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	t := Identity()
	t.M[0], t.M[2] = cos, sin
	t.M[8], t.M[10] = -sin, cos
	return t
}

// Multiply returns m * other, which applies other first.
func (m Transform) Multiply(other Transform) Transform {
	var out Transform
	for r := range 4 {
		for c := range 4 {
			var sum float64
			for k := range 4 {
				sum += m.M[4*r+k] * other.M[4*k+c]
			}
			out.M[4*r+c] = sum
		}
	}
	return out
}

// IsIdentity returns true if the transform is the identity.
func (m Transform) IsIdentity() bool {
	return m == Identity()
}

// IsIdentityOrTranslation returns true if the transform only translates.
func (m Transform) IsIdentityOrTranslation() bool {
	id := Identity()
	for i, v := range m.M {
		if i == 3 || i == 7 || i == 11 {
			continue
		}
		if v != id.M[i] {
			return false
		}
	}
	return true
}

// Translation returns the x and y translation components.
func (m Transform) Translation() (x, y float64) {
	return m.M[3], m.M[7]
}

// mapHomogeneous maps the point (x, y, 0, 1) without dividing by w.
func (m Transform) mapHomogeneous(x, y float64) f64.Vec4 {
	return f64.Vec4{
		m.M[0]*x + m.M[1]*y + m.M[3],
		m.M[4]*x + m.M[5]*y + m.M[7],
		m.M[8]*x + m.M[9]*y + m.M[11],
		m.M[12]*x + m.M[13]*y + m.M[15],
	}
}

// MapPoint maps a point on the z=0 plane and projects it back to 2D.
// ok is false when the point lands behind the viewer (w <= 0).
func (m Transform) MapPoint(x, y float64) (px, py float64, ok bool) {
	h := m.mapHomogeneous(x, y)
	if h[3] <= 0 {
		return 0, 0, false
	}
	return h[0] / h[3], h[1] / h[3], true
}

// RectMapper maps an axis-aligned rectangle through a transform, clipping
// whatever part of it falls behind the viewer.
type RectMapper interface {
	MapClippedRect(t Transform, r RectF) RectF
}

// ClippedRectMapper is the default RectMapper. It clips the transformed
// quad against the w > 0 half-space and returns the bounding box of what
// remains.
type ClippedRectMapper struct{}

// clipW is the w value used for points clipped to the near plane.
const clipW = 1e-5

// MapClippedRect implements RectMapper.
func (ClippedRectMapper) MapClippedRect(t Transform, r RectF) RectF {
	if t.IsIdentityOrTranslation() {
		dx, dy := t.Translation()
		return r.Offset(dx, dy)
	}

	quad := [4]f64.Vec4{
		t.mapHomogeneous(r.X, r.Y),
		t.mapHomogeneous(r.Right(), r.Y),
		t.mapHomogeneous(r.Right(), r.Bottom()),
		t.mapHomogeneous(r.X, r.Bottom()),
	}

	b := newBounds()
	for i := range quad {
		h1 := quad[i]
		h2 := quad[(i+1)%4]
		if h1[3] > 0 {
			b.add(h1[0]/h1[3], h1[1]/h1[3])
		}
		// The edge crosses the w=0 plane: add the point where it enters
		// the visible half-space.
		if (h1[3] > 0) != (h2[3] > 0) {
			c := clippedPointForEdge(h1, h2)
			b.add(c[0]/c[3], c[1]/c[3])
		}
	}
	return b.rect()
}

// clippedPointForEdge interpolates the edge h1-h2 to the point with w=clipW.
func clippedPointForEdge(h1, h2 f64.Vec4) f64.Vec4 {
	t := (clipW - h1[3]) / (h2[3] - h1[3])
	return f64.Vec4{
		h1[0] + t*(h2[0]-h1[0]),
		h1[1] + t*(h2[1]-h1[1]),
		h1[2] + t*(h2[2]-h1[2]),
		clipW,
	}
}

type bounds struct {
	minX, minY, maxX, maxY float64
	ok                     bool
}

func newBounds() bounds {
	return bounds{
		minX: math.Inf(1), minY: math.Inf(1),
		maxX: math.Inf(-1), maxY: math.Inf(-1),
	}
}

func (b *bounds) add(x, y float64) {
	b.minX = math.Min(b.minX, x)
	b.minY = math.Min(b.minY, y)
	b.maxX = math.Max(b.maxX, x)
	b.maxY = math.Max(b.maxY, y)
	b.ok = true
}

func (b *bounds) rect() RectF {
	if !b.ok {
		return RectF{}
	}
	return RectF{X: b.minX, Y: b.minY, W: b.maxX - b.minX, H: b.maxY - b.minY}
}
