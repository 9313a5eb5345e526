package mathutil

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vec3 is a 3-component vector (value type, stack-allocated).
type Vec3 [3]float32

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Mul multiplies componentwise.
func (a Vec3) Mul(b Vec3) Vec3 {
	return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Div divides componentwise.
func (a Vec3) Div(b Vec3) Vec3 {
	return Vec3{a[0] / b[0], a[1] / b[1], a[2] / b[2]}
}

func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (v Vec3) Negate() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Inverse returns the componentwise reciprocal.
func (v Vec3) Inverse() Vec3 {
	return Vec3{1 / v[0], 1 / v[1], 1 / v[2]}
}

func (a Vec3) Dot(b Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (v Vec3) LenSq() float32 {
	return v.Dot(v)
}

func (v Vec3) Len() float32 {
	return math32.Sqrt(v.LenSq())
}

// Normalize returns v scaled to unit length, or the zero vector if v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.LenSq()
	if l <= 0 {
		return Vec3{}
	}
	return v.Scale(1 / math32.Sqrt(l))
}

// Lerp returns a + t*(b-a).
func (a Vec3) Lerp(b Vec3, t float32) Vec3 {
	return Vec3{
		a[0] + t*(b[0]-a[0]),
		a[1] + t*(b[1]-a[1]),
		a[2] + t*(b[2]-a[2]),
	}
}

func (a Vec3) Distance(b Vec3) float32 {
	return b.Sub(a).Len()
}

func (a Vec3) DistanceSq(b Vec3) float32 {
	return b.Sub(a).LenSq()
}

func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{math32.Min(a[0], b[0]), math32.Min(a[1], b[1]), math32.Min(a[2], b[2])}
}

func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{math32.Max(a[0], b[0]), math32.Max(a[1], b[1]), math32.Max(a[2], b[2])}
}

// Angle returns the angle between a and b in radians, in [0, π].
func (a Vec3) Angle(b Vec3) float32 {
	c := a.Normalize().Dot(b.Normalize())
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math32.Acos(c)
}

// TransformMat3 returns M × v.
func (v Vec3) TransformMat3(m Mat3) Vec3 {
	return m.MulVec3(v)
}

// TransformMat4 transforms v as a point (w=1) and divides by the resulting w.
// A zero w is treated as 1.
func (v Vec3) TransformMat4(m Mat4) Vec3 {
	r := Vec4{v[0], v[1], v[2], 1}.TransformMat4(m)
	w := r[3]
	if w == 0 {
		w = 1
	}
	return Vec3{r[0] / w, r[1] / w, r[2] / w}
}

// TransformQuat returns v rotated by q, i.e. q·v·q*. q must be unit length.
func (v Vec3) TransformQuat(q Quat) Vec3 {
	x, y, z := v[0], v[1], v[2]
	qx, qy, qz, qw := q[0], q[1], q[2], q[3]

	ix := qw*x + qy*z - qz*y
	iy := qw*y + qz*x - qx*z
	iz := qw*z + qx*y - qy*x
	iw := -qx*x - qy*y - qz*z

	return Vec3{
		ix*qw + iw*-qx + iy*-qz - iz*-qy,
		iy*qw + iw*-qy + iz*-qx - ix*-qz,
		iz*qw + iw*-qz + ix*-qy - iy*-qx,
	}
}

// RotateX rotates v around the X axis through origin by rad radians.
func (v Vec3) RotateX(origin Vec3, rad float32) Vec3 {
	p := v.Sub(origin)
	s, c := math32.Sin(rad), math32.Cos(rad)
	return Vec3{p[0], p[1]*c - p[2]*s, p[1]*s + p[2]*c}.Add(origin)
}

// RotateY rotates v around the Y axis through origin by rad radians.
func (v Vec3) RotateY(origin Vec3, rad float32) Vec3 {
	p := v.Sub(origin)
	s, c := math32.Sin(rad), math32.Cos(rad)
	return Vec3{p[2]*s + p[0]*c, p[1], p[2]*c - p[0]*s}.Add(origin)
}

// RotateZ rotates v around the Z axis through origin by rad radians.
func (v Vec3) RotateZ(origin Vec3, rad float32) Vec3 {
	p := v.Sub(origin)
	s, c := math32.Sin(rad), math32.Cos(rad)
	return Vec3{p[0]*c - p[1]*s, p[0]*s + p[1]*c, p[2]}.Add(origin)
}

func (v Vec3) String() string {
	return fmt.Sprintf("vec3(%g, %g, %g)", v[0], v[1], v[2])
}
