package mathutil

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vec4 is a 4-component vector (value type, stack-allocated).
// Quat shares its layout and forwards its linear algebra here.
type Vec4 [4]float32

func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

// Mul multiplies componentwise.
func (a Vec4) Mul(b Vec4) Vec4 {
	return Vec4{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

// Div divides componentwise. Zero components of b yield ±Inf or NaN.
func (a Vec4) Div(b Vec4) Vec4 {
	return Vec4{a[0] / b[0], a[1] / b[1], a[2] / b[2], a[3] / b[3]}
}

func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

func (v Vec4) Negate() Vec4 {
	return Vec4{-v[0], -v[1], -v[2], -v[3]}
}

func (a Vec4) Dot(b Vec4) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

func (v Vec4) LenSq() float32 {
	return v.Dot(v)
}

func (v Vec4) Len() float32 {
	return math32.Sqrt(v.LenSq())
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec4) Normalize() Vec4 {
	l := v.LenSq()
	if l <= 0 {
		return v
	}
	return v.Scale(1 / math32.Sqrt(l))
}

// Lerp returns a + t*(b-a).
func (a Vec4) Lerp(b Vec4, t float32) Vec4 {
	return Vec4{
		a[0] + t*(b[0]-a[0]),
		a[1] + t*(b[1]-a[1]),
		a[2] + t*(b[2]-a[2]),
		a[3] + t*(b[3]-a[3]),
	}
}

func (a Vec4) Distance(b Vec4) float32 {
	return b.Sub(a).Len()
}

func (a Vec4) DistanceSq(b Vec4) float32 {
	return b.Sub(a).LenSq()
}

func (a Vec4) Min(b Vec4) Vec4 {
	return Vec4{math32.Min(a[0], b[0]), math32.Min(a[1], b[1]), math32.Min(a[2], b[2]), math32.Min(a[3], b[3])}
}

func (a Vec4) Max(b Vec4) Vec4 {
	return Vec4{math32.Max(a[0], b[0]), math32.Max(a[1], b[1]), math32.Max(a[2], b[2]), math32.Max(a[3], b[3])}
}

// TransformMat4 returns M × v.
func (v Vec4) TransformMat4(m Mat4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]*v[3],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]*v[3],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]*v[3],
		m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]*v[3],
	}
}

// TransformQuat rotates the xyz part of v by q and keeps w.
func (v Vec4) TransformQuat(q Quat) Vec4 {
	r := Vec3{v[0], v[1], v[2]}.TransformQuat(q)
	return Vec4{r[0], r[1], r[2], v[3]}
}

func (v Vec4) String() string {
	return fmt.Sprintf("vec4(%g, %g, %g, %g)", v[0], v[1], v[2], v[3])
}
