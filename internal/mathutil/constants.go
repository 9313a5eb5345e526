package mathutil

import "github.com/chewxy/math32"

// Unit axes of the right-handed, Y-up coordinate system.
var (
	UnitX = Vec3{1, 0, 0}
	UnitY = Vec3{0, 1, 0}
	UnitZ = Vec3{0, 0, 1}
)

// SlerpEpsilon is the 1-cos(Ω) threshold under which Slerp falls back to linear weights.
const SlerpEpsilon = 1e-6

// InvertEpsilon is the squared norm under which Invert treats a quaternion as zero.
// Above it 1/dot stays well inside the float32 range.
const InvertEpsilon = 1e-30

// AngleDist returns the shortest angular distance between two angles in degrees (0–180).
func AngleDist(a, b float32) float32 {
	d := math32.Mod(a-b, 360)
	if d < 0 {
		d += 360
	}
	if d > 180 {
		return 360 - d
	}
	return d
}
