// Package mat3 implements the 3x3 matrices used to turn points on the unit
// sphere about the polar axis.
package mat3

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// Matrix is a row-major 3x3 matrix.
type Matrix [3][3]float64

// FromCols returns the matrix with the given column vectors.
func FromCols(v0, v1, v2 r3.Vector) Matrix {
	return Matrix{
		{v0.X, v1.X, v2.X},
		{v0.Y, v1.Y, v2.Y},
		{v0.Z, v1.Z, v2.Z},
	}
}

// RotationZ returns the matrix that rotates vectors counter-clockwise by angle
// about the z axis, as seen from +z. Rotating a point by RotationZ(a) adds a
// to its longitude.
func RotationZ(angle s1.Angle) Matrix {
	sin, cos := math.Sincos(angle.Radians())
	return FromCols(
		r3.Vector{X: cos, Y: sin, Z: 0},
		r3.Vector{X: -sin, Y: cos, Z: 0},
		r3.Vector{X: 0, Y: 0, Z: 1},
	)
}

func (m Matrix) MulVector(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}
