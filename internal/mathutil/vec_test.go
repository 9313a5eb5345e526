package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3(t *testing.T) {
	v := Vec3{1, 2, 4}
	w := Vec3{0, -1, 2}

	assert.Equal(t, Vec3{1, 1, 6}, v.Add(w))
	assert.Equal(t, Vec3{1, 3, 2}, v.Sub(w))
	assert.Equal(t, Vec3{0, -2, 8}, v.Mul(w))
	assert.Equal(t, Vec3{1, 1, 2}, v.Div(Vec3{1, 2, 2}))
	assert.Equal(t, Vec3{-1, -2, -4}, v.Scale(-1))
	assert.Equal(t, Vec3{-1, -2, -4}, v.Negate())
	assert.Equal(t, Vec3{1, 0.5, 0.25}, v.Inverse())
	assert.Equal(t, float32(6), v.Dot(w))
	assert.Equal(t, float32(21), v.LenSq())
	assert.Equal(t, float32(math.Sqrt(21)), v.Len())
	assert.Equal(t, Vec3{0, -1, 2}, v.Min(w))
	assert.Equal(t, Vec3{1, 2, 4}, v.Max(w))
	assert.Equal(t, Vec3{0.5, 0.5, 3}, v.Lerp(w, 0.5))
	assert.Equal(t, float32(math.Sqrt(14)), v.Distance(w))
	assert.Equal(t, float32(14), v.DistanceSq(w))

	assert.Equal(t, Vec3{0, 0, -1}, Vec3{0, 0, -2}.Normalize())
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())

	assert.Equal(t, Vec3{1, 0, 0}, Vec3{0, 0, -1}.Cross(Vec3{0, 1, 0}))
	assert.Equal(t, Vec3{-1, 0, 0}, Vec3{0, 1, 0}.Cross(Vec3{0, 0, -1}))
	assert.Equal(t, UnitZ, UnitX.Cross(UnitY))
}

func TestVec3Angle(t *testing.T) {
	assert.InDelta(t, math.Pi/2, UnitX.Angle(UnitY), 1e-6)
	assert.InDelta(t, math.Pi, UnitX.Angle(UnitX.Negate()), 1e-6)
	assert.InDelta(t, 0, Vec3{3, 0, 0}.Angle(Vec3{5, 0, 0}), 1e-6)
	assert.InDelta(t, math.Pi/4, Vec3{1, 0, 0}.Angle(Vec3{2, 2, 0}), 1e-6)
}

func TestVec3RotateAroundOrigin(t *testing.T) {
	origin := Vec3{1, 1, 1}

	assertVec3Near(t, Vec3{1, 1, 2}, Vec3{1, 2, 1}.RotateX(origin, math.Pi/2), 1e-6)
	assertVec3Near(t, Vec3{1, 1, 0}, Vec3{2, 1, 1}.RotateY(origin, math.Pi/2), 1e-6)
	assertVec3Near(t, Vec3{1, 2, 1}, Vec3{2, 1, 1}.RotateZ(origin, math.Pi/2), 1e-6)

	// About the world origin the rotations agree with the axis-angle quaternion.
	v := Vec3{0.3, -2, 5}
	for _, tt := range []struct {
		axis   Vec3
		rotate func(Vec3, Vec3, float32) Vec3
	}{
		{UnitX, Vec3.RotateX},
		{UnitY, Vec3.RotateY},
		{UnitZ, Vec3.RotateZ},
	} {
		want := v.TransformQuat(QuatFromAxisAngle(tt.axis, 0.8))
		assertVec3Near(t, want, tt.rotate(v, Vec3{}, 0.8), 1e-5)
	}
}

func TestVec3TransformMat3(t *testing.T) {
	m := Mat3FromCols(Vec3{2, 0, 1}, Vec3{1, 3, 2}, Vec3{4, 2, 3})
	assert.Equal(t, Vec3{2, 2, 2}, Vec3{-1, 0, 1}.TransformMat3(m))
	assert.Equal(t, Vec3{-1, 0, 1}, Vec3{-1, 0, 1}.TransformMat3(Mat3Identity()))
}

func TestVec3TransformMat4(t *testing.T) {
	m := FromMat3Translation(Mat3Diag(2, 2, 2), Vec3{1, 2, 3})
	assert.Equal(t, Vec3{3, 4, 5}, Vec3{1, 1, 1}.TransformMat4(m))

	// Homogeneous divide.
	m[15] = 2
	assert.Equal(t, Vec3{1.5, 2, 2.5}, Vec3{1, 1, 1}.TransformMat4(m))
}

func TestVec3TransformQuat(t *testing.T) {
	q := QuatFromAxisAngle(UnitY, math.Pi/2)
	assertVec3Near(t, Vec3{0, 0, -1}, UnitX.TransformQuat(q), 1e-6)
	assertVec3Near(t, UnitY, UnitY.TransformQuat(q), 1e-6)
	assert.Equal(t, Vec3{1, 2, 3}, Vec3{1, 2, 3}.TransformQuat(QuatIdentity()))
}

func TestVec4(t *testing.T) {
	v := Vec4{1, 2, 4, 8}
	w := Vec4{0, -1, 2, 1}

	assert.Equal(t, Vec4{1, 1, 6, 9}, v.Add(w))
	assert.Equal(t, Vec4{1, 3, 2, 7}, v.Sub(w))
	assert.Equal(t, Vec4{0, -2, 8, 8}, v.Mul(w))
	assert.Equal(t, Vec4{1, 1, 2, 4}, v.Div(Vec4{1, 2, 2, 2}))
	assert.Equal(t, Vec4{2, 4, 8, 16}, v.Scale(2))
	assert.Equal(t, Vec4{-1, -2, -4, -8}, v.Negate())
	assert.Equal(t, float32(14), v.Dot(w))
	assert.Equal(t, float32(85), v.LenSq())
	assert.Equal(t, float32(math.Sqrt(85)), v.Len())
	assert.Equal(t, Vec4{0, -1, 2, 1}, v.Min(w))
	assert.Equal(t, Vec4{1, 2, 4, 8}, v.Max(w))
	assert.Equal(t, Vec4{0.5, 0.5, 3, 4.5}, v.Lerp(w, 0.5))
	assert.Equal(t, float32(7), Vec4{}.Distance(Vec4{2, 3, 6, 0}))
	assert.Equal(t, float32(49), Vec4{}.DistanceSq(Vec4{2, 3, 6, 0}))

	assert.Equal(t, Vec4{0, 0, 0.6, 0.8}, Vec4{0, 0, 3, 4}.Normalize())
	assert.Equal(t, Vec4{}, Vec4{}.Normalize())
}

func TestVec4Transform(t *testing.T) {
	m := FromMat3Translation(Mat3Identity(), Vec3{1, 2, 3})
	assert.Equal(t, Vec4{2, 3, 4, 1}, Vec4{1, 1, 1, 1}.TransformMat4(m))
	assert.Equal(t, Vec4{1, 1, 1, 0}, Vec4{1, 1, 1, 0}.TransformMat4(m))

	q := QuatFromAxisAngle(UnitZ, math.Pi/2)
	have := Vec4{1, 0, 0, 7}.TransformQuat(q)
	assert.InDelta(t, 0, have[0], 1e-6)
	assert.InDelta(t, 1, have[1], 1e-6)
	assert.InDelta(t, 0, have[2], 1e-6)
	assert.Equal(t, float32(7), have[3])
}

func TestVecString(t *testing.T) {
	assert.Equal(t, "vec3(1, -2.5, 0)", Vec3{1, -2.5, 0}.String())
	assert.Equal(t, "vec4(1, 2, 3, 0.125)", Vec4{1, 2, 3, 0.125}.String())
}
