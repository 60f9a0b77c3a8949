package bough

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// Transform places a sprite in world space. A local point p maps to
//
//	Rotate(Rotation) * ((p + Offset) * Scale) + Position
//
// Offset shifts the sprite's anchor before scaling, so an offset of half the
// size pivots the sprite around a corner instead of its center.
type Transform struct {
	Position Vec2
	Rotation float64 // radians, clockwise on screen (Y down)
	Scale    float64
	Offset   Vec2
}

// NewTransform returns a transform at the origin with unit scale.
func NewTransform() Transform {
	return Transform{Scale: 1}
}

// Matrix returns the affine matrix [a, b, c, d, tx, ty] for the transform.
func (t Transform) Matrix() [6]float64 {
	sin, cos := math.Sincos(t.Rotation)
	s := t.Scale
	ox := t.Offset.X * s
	oy := t.Offset.Y * s
	return [6]float64{
		cos * s,
		sin * s,
		-sin * s,
		cos * s,
		cos*ox - sin*oy + t.Position.X,
		sin*ox + cos*oy + t.Position.Y,
	}
}

// Apply maps a local point into world space.
func (t Transform) Apply(p Vec2) Vec2 {
	x, y := transformPoint(t.Matrix(), p.X, p.Y)
	return Vec2{x, y}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// boundsOf returns the axis-aligned box around the rectangle (0,0)-(w,h)
// mapped through m.
func boundsOf(m [6]float64, w, h float64) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, corner := range [4]Vec2{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		x, y := transformPoint(m, corner.X, corner.Y)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
