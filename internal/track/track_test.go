package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quatkit/internal/mathutil"
)

const eps = 1e-5

func yRot(deg float32) mathutil.Quat {
	return mathutil.QuatFromAxisAngle(mathutil.UnitY, mathutil.Deg2Rad(deg))
}

func assertSameRotation(t *testing.T, want, got mathutil.Quat) {
	t.Helper()
	assert.True(t, want.SameRotation(got, eps), "want %v, got %v", want, got)
}

func quarterTurn() *Track {
	return &Track{
		Name: "quarter",
		Keyframes: []Keyframe{
			{Time: 0, Rotation: mathutil.QuatIdentity()},
			{Time: 1, Rotation: yRot(90)},
		},
	}
}

func TestSampleLinear(t *testing.T) {
	tr := quarterTurn()

	assertSameRotation(t, yRot(45), tr.Sample(0.5))
	assertSameRotation(t, yRot(22.5), tr.Sample(0.25))
	assert.Equal(t, mathutil.QuatIdentity(), tr.Sample(0))
	assert.Equal(t, yRot(90), tr.Sample(1))
}

func TestSampleClampsOutsideSpan(t *testing.T) {
	tr := quarterTurn()
	assert.Equal(t, mathutil.QuatIdentity(), tr.Sample(-3))
	assert.Equal(t, yRot(90), tr.Sample(7))
}

func TestSampleEased(t *testing.T) {
	tr := quarterTurn()
	tr.Easing = "in-quad"
	// in-quad maps 0.5 to 0.25
	assertSameRotation(t, yRot(22.5), tr.Sample(0.5))

	tr.Easing = "out-quad"
	// out-quad maps 0.5 to 0.75
	assertSameRotation(t, yRot(67.5), tr.Sample(0.5))
}

func TestSampleStep(t *testing.T) {
	tr := quarterTurn()
	tr.Interpolation = Step
	assert.Equal(t, mathutil.QuatIdentity(), tr.Sample(0.99))
	assert.Equal(t, yRot(90), tr.Sample(1))
}

func TestSampleMultiSegment(t *testing.T) {
	tr := &Track{Keyframes: []Keyframe{
		{Time: 0, Rotation: yRot(0)},
		{Time: 1, Rotation: yRot(90)},
		{Time: 3, Rotation: yRot(170)},
	}}
	assertSameRotation(t, yRot(90), tr.Sample(1))
	assertSameRotation(t, yRot(130), tr.Sample(2))
}

func TestSampleDuplicateTimes(t *testing.T) {
	tr := &Track{Keyframes: []Keyframe{
		{Time: 0, Rotation: yRot(0)},
		{Time: 0.5, Rotation: yRot(40)},
		{Time: 0.5, Rotation: yRot(80)},
		{Time: 1, Rotation: yRot(120)},
	}}
	// Past a duplicated time the later keyframe wins.
	assertSameRotation(t, yRot(100), tr.Sample(0.75))
	assertSameRotation(t, yRot(20), tr.Sample(0.25))
}

func TestSampleIsUnitLength(t *testing.T) {
	tr := &Track{
		Easing: "out-elastic",
		Keyframes: []Keyframe{
			{Time: 0, Rotation: mathutil.QuatFromEuler(0.3, -1.2, 0.8)},
			{Time: 2, Rotation: mathutil.QuatFromEuler(-2.1, 0.4, 2.9)},
		},
	}
	for _, f := range tr.Frames(33) {
		assert.InDelta(t, 1, f.Rotation.Len(), 1e-6, "t=%g", f.Time)
	}
}

func TestSampleEmpty(t *testing.T) {
	assert.Equal(t, mathutil.QuatIdentity(), (&Track{}).Sample(0.5))
}

func TestFrames(t *testing.T) {
	tr := quarterTurn()

	frames := tr.Frames(5)
	require.Len(t, frames, 5)
	for i, f := range frames {
		assert.Equal(t, i, f.Index)
		assert.InDelta(t, float64(i)/4, f.Time, 1e-7)
	}
	assert.Equal(t, mathutil.QuatIdentity(), frames[0].Rotation)
	assert.Equal(t, yRot(90), frames[4].Rotation)
	assertSameRotation(t, yRot(45), frames[2].Rotation)

	one := tr.Frames(1)
	require.Len(t, one, 1)
	assert.Equal(t, float32(0), one[0].Time)

	assert.Nil(t, tr.Frames(0))
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, (&Track{Name: "x"}).Validate(), ErrNoKeyframes)

	tr := quarterTurn()
	require.NoError(t, tr.Validate())

	tr.Easing = "wobble"
	assert.ErrorIs(t, tr.Validate(), ErrUnknownEasing)

	tr = quarterTurn()
	tr.Keyframes[0].Time = 2
	assert.ErrorIs(t, tr.Validate(), ErrBadKeyframe)
}

func TestEasings(t *testing.T) {
	names := EasingNames()
	require.NotEmpty(t, names)
	assert.Contains(t, names, "linear")
	assert.Contains(t, names, "in-out-sine")

	for _, name := range names {
		fn, err := Easing(name)
		require.NoError(t, err, name)
		assert.InDelta(t, 0, fn(0, 0, 1, 1), 1e-6, name)
		assert.InDelta(t, 1, fn(1, 0, 1, 1), 1e-6, name)
	}

	fn, err := Easing("")
	require.NoError(t, err)
	assert.Equal(t, float32(0.3), fn(0.3, 0, 1, 1))
}

func TestParseInterpolation(t *testing.T) {
	i, err := ParseInterpolation("STEP")
	require.NoError(t, err)
	assert.Equal(t, Step, i)
	assert.Equal(t, "step", i.String())

	i, err = ParseInterpolation("")
	require.NoError(t, err)
	assert.Equal(t, Linear, i)

	_, err = ParseInterpolation("cubic")
	assert.ErrorIs(t, err, ErrBadKeyframe)
}

func TestSpan(t *testing.T) {
	start, end := (&Track{}).Span()
	assert.Zero(t, start)
	assert.Zero(t, end)

	tr := &Track{Keyframes: []Keyframe{{Time: 0.5}, {Time: 2.5}}}
	start, end = tr.Span()
	assert.Equal(t, float32(0.5), start)
	assert.Equal(t, float32(2.5), end)
}
