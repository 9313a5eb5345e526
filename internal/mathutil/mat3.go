package mathutil

import "fmt"

// Mat3 is a 3×3 matrix stored column-major: cell (row r, col c) lives at [r+c*3].
// Value type for zero heap allocation.
type Mat3 [9]float32

// Mat3Identity returns the 3×3 identity matrix.
func Mat3Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Mat3Diag returns the diagonal matrix diag(x, y, z).
func Mat3Diag(x, y, z float32) Mat3 {
	return Mat3{x, 0, 0, 0, y, 0, 0, 0, z}
}

// Mat3FromCols builds a matrix whose columns are c0, c1, c2.
func Mat3FromCols(c0, c1, c2 Vec3) Mat3 {
	return Mat3{
		c0[0], c0[1], c0[2],
		c1[0], c1[1], c1[2],
		c2[0], c2[1], c2[2],
	}
}

// Mat3FromRows builds a matrix whose rows are r0, r1, r2.
func Mat3FromRows(r0, r1, r2 Vec3) Mat3 {
	return Mat3FromCols(r0, r1, r2).Transpose()
}

// At returns the cell at row r, column c (both zero-based).
func (m Mat3) At(r, c int) float32 {
	return m[r+c*3]
}

// Col returns column c.
func (m Mat3) Col(c int) Vec3 {
	return Vec3{m[c*3], m[c*3+1], m[c*3+2]}
}

// Mat3Mul returns a × b.
func Mat3Mul(a, b Mat3) Mat3 {
	var m Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r+c*3] = a[r+0*3]*b[0+c*3] + a[r+1*3]*b[1+c*3] + a[r+2*3]*b[2+c*3]
		}
	}
	return m
}

// MulVec3 returns M × v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[3]*v[1] + m[6]*v[2],
		m[1]*v[0] + m[4]*v[1] + m[7]*v[2],
		m[2]*v[0] + m[5]*v[1] + m[8]*v[2],
	}
}

// Det returns the determinant of m.
func (m Mat3) Det() float32 {
	return m[0]*(m[4]*m[8]-m[7]*m[5]) -
		m[3]*(m[1]*m[8]-m[7]*m[2]) +
		m[6]*(m[1]*m[5]-m[4]*m[2])
}

// Transpose returns mᵀ.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// String lists the cells in storage (column-major) order.
func (m Mat3) String() string {
	return fmt.Sprintf("mat3(%g, %g, %g, %g, %g, %g, %g, %g, %g)",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}
