// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geometry

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Mat4 is a 4x4 matrix in row-major order with the translation in the
// last column:
//
//	| m0  m1  m2  m3  |
//	| m4  m5  m6  m7  |
//	| m8  m9  m10 m11 |
//	| m12 m13 m14 m15 |
//
// x' = m0*x + m1*y + m3, y' = m4*x + m5*y + m7 for the 2D affine
// subset the compositor uses.
type Mat4 = f64.Mat4

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a matrix translating by (x, y).
func Translate(x, y float64) Mat4 {
	return Mat4{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Scale returns a matrix scaling by (sx, sy).
func Scale(sx, sy float64) Mat4 {
	return Mat4{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns the product a * b, so that applying the result is
// equivalent to applying b first and a second.
func Mul(a, b Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[r*4+k] * b[k*4+c]
			}
			out[r*4+c] = sum
		}
	}
	return out
}

// Apply maps the point (x, y) through the 2D affine part of m.
func Apply(m Mat4, x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[3], m[4]*x + m[5]*y + m[7]
}

// invertEpsilon is the determinant magnitude below which a matrix is
// considered singular.
const invertEpsilon = 1e-10

// Invert returns the inverse of the 2D affine part of m. The second
// result is false when m is singular; callers must not use the matrix
// in that case.
func Invert(m Mat4) (Mat4, bool) {
	det := m[0]*m[5] - m[1]*m[4]
	if math.Abs(det) < invertEpsilon {
		return Identity(), false
	}

	inv := 1.0 / det
	a := m[5] * inv
	b := -m[1] * inv
	c := -m[4] * inv
	d := m[0] * inv
	tx := -(a*m[3] + b*m[7])
	ty := -(c*m[3] + d*m[7])
	return Mat4{
		a, b, 0, tx,
		c, d, 0, ty,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}, true
}

// Unit-square transforms. Content normalized to [0,1] x [0,1] stays
// inside the square.

func flipHMatrix() Mat4 {
	return Mat4{
		-1, 0, 0, 1,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func flipVMatrix() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, -1, 0, 1,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func rot90Matrix() Mat4 {
	return Mat4{
		0, -1, 0, 1,
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}
