// Package geom provides the 2D math used to place menus and controls and
// to hit-test the mouse against them.
package geom

import "math"

// Vec is a 2D point or offset.
type Vec struct {
	X, Y float64
}

// V creates a vector.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y}
}

// Cross returns the z component of the 3D cross product.
func (v Vec) Cross(o Vec) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Matrix is a 2D affine transform:
//
//	| A C Tx |
//	| B D Ty |
type Matrix struct {
	A, B, C, D, Tx, Ty float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Translate returns a translation.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, D: 1, Tx: x, Ty: y}
}

// Scale returns a scale about the origin.
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// Rotate returns a rotation by theta radians about the origin.
func Rotate(theta float64) Matrix {
	s, c := math.Sincos(theta)
	return Matrix{A: c, B: s, C: -s, D: c}
}

// Mul returns m applied after n, so Mul(n).Apply(p) == m.Apply(n.Apply(p)).
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A:  m.A*n.A + m.C*n.B,
		B:  m.B*n.A + m.D*n.B,
		C:  m.A*n.C + m.C*n.D,
		D:  m.B*n.C + m.D*n.D,
		Tx: m.A*n.Tx + m.C*n.Ty + m.Tx,
		Ty: m.B*n.Tx + m.D*n.Ty + m.Ty,
	}
}

// Apply transforms p.
func (m Matrix) Apply(p Vec) Vec {
	return Vec{
		X: m.A*p.X + m.C*p.Y + m.Tx,
		Y: m.B*p.X + m.D*p.Y + m.Ty,
	}
}

// Translation returns the translation component.
func (m Matrix) Translation() Vec {
	return Vec{m.Tx, m.Ty}
}

// Quad is a convex quadrilateral with corners in winding order.
type Quad [4]Vec

// RectQuad returns the quad for an axis-aligned rectangle centred on c.
func RectQuad(c Vec, w, h float64) Quad {
	hw, hh := w/2, h/2
	return Quad{
		{c.X - hw, c.Y - hh},
		{c.X + hw, c.Y - hh},
		{c.X + hw, c.Y + hh},
		{c.X - hw, c.Y + hh},
	}
}

// Transform applies m to every corner.
func (q Quad) Transform(m Matrix) Quad {
	var out Quad
	for i, p := range q {
		out[i] = m.Apply(p)
	}
	return out
}

// Contains reports whether p lies inside or on the edge of q. Works for
// either winding.
func (q Quad) Contains(p Vec) bool {
	var pos, neg bool
	for i := range q {
		a, b := q[i], q[(i+1)%len(q)]
		c := b.Sub(a).Cross(p.Sub(a))
		if c > 0 {
			pos = true
		} else if c < 0 {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}

// Bounds returns the axis-aligned bounding box as min and max corners.
func (q Quad) Bounds() (min, max Vec) {
	min, max = q[0], q[0]
	for _, p := range q[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}
