package mathutil

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Quat represents a quaternion (x, y, z, w) = w + xi + yj + zk.
//
// A Quat that stands for a rotation must have unit length. Slerp, Mat3, AxisAngle and
// Vec3.TransformQuat assume it; Mul and the Rotate* methods drift the norm slowly, so
// callers composing many rotations should Normalize now and then.
//
// All methods take and return values. Nothing is modified in place.
type Quat [4]float32

// QuatIdentity returns the identity rotation (0, 0, 0, 1).
func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

// NewQuat returns the quaternion (x, y, z, w).
func NewQuat(x, y, z, w float32) Quat {
	return Quat{x, y, z, w}
}

// The linear algebra a quaternion shares with a 4-vector is forwarded to Vec4.

func (q Quat) Add(p Quat) Quat { return Quat(Vec4(q).Add(Vec4(p))) }
func (q Quat) Scale(s float32) Quat { return Quat(Vec4(q).Scale(s)) }
func (q Quat) Dot(p Quat) float32 { return Vec4(q).Dot(Vec4(p)) }
func (q Quat) LenSq() float32 { return Vec4(q).LenSq() }
func (q Quat) Len() float32 { return Vec4(q).Len() }
func (q Quat) Lerp(p Quat, t float32) Quat { return Quat(Vec4(q).Lerp(Vec4(p), t)) }

// Normalize returns q scaled to unit length. The zero quaternion is returned unchanged.
func (q Quat) Normalize() Quat {
	return Quat(Vec4(q).Normalize())
}

// QuatFromAxisAngle returns the rotation of rad radians around axis.
// axis must be unit length; it is not normalized here.
func QuatFromAxisAngle(axis Vec3, rad float32) Quat {
	h := rad * 0.5
	s, c := math32.Sin(h), math32.Cos(h)
	return Quat{s * axis[0], s * axis[1], s * axis[2], c}
}

// QuatFromAxes returns the rotation that takes +X to right, +Y to up and -Z to view.
// The three vectors must form a right-handed orthonormal basis; nothing is checked.
func QuatFromAxes(view, right, up Vec3) Quat {
	m := Mat3FromCols(right, up, view.Negate())
	return QuatFromMat3(m).Normalize()
}

// QuatFromEuler converts Euler angles (radians) to a quaternion equal to
// Rz(rz)·Ry(ry)·Rx(rx): X is applied first, Z last.
func QuatFromEuler(rx, ry, rz float32) Quat {
	cx, sx := math32.Cos(rx*0.5), math32.Sin(rx*0.5)
	cy, sy := math32.Cos(ry*0.5), math32.Sin(ry*0.5)
	cz, sz := math32.Cos(rz*0.5), math32.Sin(rz*0.5)

	return Quat{
		sx*cy*cz - cx*sy*sz, // x
		cx*sy*cz + sx*cy*sz, // y
		cx*cy*sz - sx*sy*cz, // z
		cx*cy*cz + sx*sy*sz, // w
	}
}

// QuatFromMat3 converts a rotation matrix to a quaternion (Shepperd's method).
// m must be orthonormal with determinant +1; other input gives NaN or garbage.
func QuatFromMat3(m Mat3) Quat {
	var q Quat
	trace := m[0] + m[4] + m[8]

	if trace > 0 {
		root := math32.Sqrt(trace + 1)
		q[3] = 0.5 * root
		root = 0.5 / root
		q[0] = (m[5] - m[7]) * root
		q[1] = (m[6] - m[2]) * root
		q[2] = (m[1] - m[3]) * root
		return q
	}

	// Pivot on the largest diagonal cell.
	i := 0
	if m[4] > m[0] {
		i = 1
	}
	if m[8] > m[i*3+i] {
		i = 2
	}
	j := (i + 1) % 3
	k := (i + 2) % 3

	root := math32.Sqrt(m[i*3+i] - m[j*3+j] - m[k*3+k] + 1)
	q[i] = 0.5 * root
	root = 0.5 / root
	q[3] = (m[j*3+k] - m[k*3+j]) * root
	q[j] = (m[j*3+i] + m[i*3+j]) * root
	q[k] = (m[k*3+i] + m[i*3+k]) * root
	return q
}

// Mat3 converts a unit quaternion to a rotation matrix.
func (q Quat) Mat3() Mat3 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	x2, y2, z2 := x+x, y+y, z+z

	xx, yx, yy := x*x2, y*x2, y*y2
	zx, zy, zz := z*x2, z*y2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	return Mat3{
		1 - yy - zz, yx + wz, zx - wy,
		yx - wz, 1 - xx - zz, zy + wx,
		zx + wy, zy - wx, 1 - xx - yy,
	}
}

// Mul returns the Hamilton product q·p. Rotating a vector by the result applies p
// first and then q. The result is not renormalized.
func (q Quat) Mul(p Quat) Quat {
	ax, ay, az, aw := q[0], q[1], q[2], q[3]
	bx, by, bz, bw := p[0], p[1], p[2], p[3]

	return Quat{
		ax*bw + aw*bx + ay*bz - az*by,
		ay*bw + aw*by + az*bx - ax*bz,
		az*bw + aw*bz + ax*by - ay*bx,
		aw*bw - ax*bx - ay*by - az*bz,
	}
}

// RotateX returns q·Rx(rad): q with a rotation about X applied first.
func (q Quat) RotateX(rad float32) Quat {
	h := rad * 0.5
	ax, ay, az, aw := q[0], q[1], q[2], q[3]
	bx, bw := math32.Sin(h), math32.Cos(h)

	return Quat{
		ax*bw + aw*bx,
		ay*bw + az*bx,
		az*bw - ay*bx,
		aw*bw - ax*bx,
	}
}

// RotateY returns q·Ry(rad).
func (q Quat) RotateY(rad float32) Quat {
	h := rad * 0.5
	ax, ay, az, aw := q[0], q[1], q[2], q[3]
	by, bw := math32.Sin(h), math32.Cos(h)

	return Quat{
		ax*bw - az*by,
		ay*bw + aw*by,
		az*bw + ax*by,
		aw*bw - ay*by,
	}
}

// RotateZ returns q·Rz(rad).
func (q Quat) RotateZ(rad float32) Quat {
	h := rad * 0.5
	ax, ay, az, aw := q[0], q[1], q[2], q[3]
	bz, bw := math32.Sin(h), math32.Cos(h)

	return Quat{
		ax*bw + ay*bz,
		ay*bw - ax*bz,
		az*bw + aw*bz,
		aw*bw - az*bz,
	}
}

// CalculateW recomputes w from x, y and z assuming unit length. The stored w is
// ignored and the result is always non-negative, so the sign of w is lost.
func (q Quat) CalculateW() Quat {
	x, y, z := q[0], q[1], q[2]
	q[3] = math32.Sqrt(math32.Abs(1 - x*x - y*y - z*z))
	return q
}

// Slerp interpolates between unit quaternions a and b along the shorter arc.
// The result is not renormalized.
func Slerp(a, b Quat, t float32) Quat {
	cosom := a.Dot(b)
	if cosom < 0 {
		cosom = -cosom
		b = Quat(Vec4(b).Negate())
	}

	var scale0, scale1 float32
	if 1-cosom > SlerpEpsilon {
		omega := math32.Acos(cosom)
		sinom := math32.Sin(omega)
		scale0 = math32.Sin((1-t)*omega) / sinom
		scale1 = math32.Sin(t*omega) / sinom
	} else {
		// Nearly parallel: sin(Ω) is too small to divide by.
		scale0 = 1 - t
		scale1 = t
	}

	return Quat{
		scale0*a[0] + scale1*b[0],
		scale0*a[1] + scale1*b[1],
		scale0*a[2] + scale1*b[2],
		scale0*a[3] + scale1*b[3],
	}
}

// Slerp is shorthand for Slerp(q, p, t).
func (q Quat) Slerp(p Quat, t float32) Quat {
	return Slerp(q, p, t)
}

// Invert returns the multiplicative inverse of q. A quaternion whose squared norm is
// below InvertEpsilon has no usable inverse and is returned unchanged.
func (q Quat) Invert() Quat {
	dot := q.LenSq()
	if dot < InvertEpsilon {
		return q
	}
	inv := 1 / dot
	return Quat{-q[0] * inv, -q[1] * inv, -q[2] * inv, q[3] * inv}
}

// Conjugate returns (-x, -y, -z, w). For a unit quaternion this is the inverse.
func (q Quat) Conjugate() Quat {
	return Quat{-q[0], -q[1], -q[2], q[3]}
}

// AxisAngle returns the rotation axis and angle in radians (in [0, 2π]) of a unit
// quaternion. For a rotation by zero the axis is +X.
func (q Quat) AxisAngle() (Vec3, float32) {
	w := q[3]
	if w > 1 {
		w = 1
	} else if w < -1 {
		w = -1
	}
	rad := math32.Acos(w) * 2
	s := math32.Sin(rad / 2)
	if s < 1e-6 {
		return UnitX, rad
	}
	return Vec3{q[0] / s, q[1] / s, q[2] / s}, rad
}

// ApproxEqual reports whether every component of q and p differs by at most eps.
func (q Quat) ApproxEqual(p Quat, eps float32) bool {
	for i := range q {
		if math32.Abs(q[i]-p[i]) > eps {
			return false
		}
	}
	return true
}

// SameRotation reports whether q and p describe the same rotation within eps,
// accepting p or -p.
func (q Quat) SameRotation(p Quat, eps float32) bool {
	return q.ApproxEqual(p, eps) || q.ApproxEqual(Quat(Vec4(p).Negate()), eps)
}

// String formats q as "quat(x, y, z, w)" for logs and test output.
func (q Quat) String() string {
	return fmt.Sprintf("quat(%g, %g, %g, %g)", q[0], q[1], q[2], q[3])
}
