package track

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	return p
}

const formsYAML = `
tracks:
  - name: forms
    easing: in-out-sine
    keyframes:
      - quat: [0, 0.7071068, 0, 0.7071068]
      - axis: [0, 2, 0]
        angle_deg: 90
      - euler_deg: [0, 90, 0]
      - basis:
          view: [-1, 0, 0]
          right: [0, 0, -1]
          up: [0, 1, 0]
      - matrix:
          - [0, 0, 1]
          - [0, 1, 0]
          - [-1, 0, 0]
  - name: timed
    interpolation: step
    keyframes:
      - time: 2
        quat: [0, 0, 0, 3]
      - time: 0.5
        axis: [1, 0, 0]
        angle_deg: 180
`

func TestLoadFileYAML(t *testing.T) {
	tracks, err := LoadFile(writeFile(t, "tracks.yaml", formsYAML))
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	forms := tracks[0]
	assert.Equal(t, "forms", forms.Name)
	assert.Equal(t, "in-out-sine", forms.Easing)
	assert.Equal(t, Linear, forms.Interpolation)
	require.Len(t, forms.Keyframes, 5)
	for i, k := range forms.Keyframes {
		assert.InDelta(t, float32(i)/4, k.Time, 1e-7)
		assertSameRotation(t, yRot(90), k.Rotation)
	}

	timed := tracks[1]
	assert.Equal(t, Step, timed.Interpolation)
	require.Len(t, timed.Keyframes, 2)
	assert.Equal(t, float32(0.5), timed.Keyframes[0].Time)
	assert.Equal(t, float32(2), timed.Keyframes[1].Time)
	assertSameRotation(t, yRot(0), timed.Keyframes[1].Rotation)
	assert.InDelta(t, 1, timed.Keyframes[0].Rotation[0], 1e-6)
}

func TestLoadFileJSON(t *testing.T) {
	p := writeFile(t, "tracks.json", `{"tracks": [{"keyframes": [
		{"time": 0, "quat": [0, 0, 0, 1]},
		{"time": 1, "axis": [0, 1, 0], "angle_deg": -90}
	]}]}`)
	tracks, err := LoadFile(p)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "track0", tracks[0].Name)
	assertSameRotation(t, yRot(-45), tracks[0].Sample(0.5))
}

func TestLoadFileErrors(t *testing.T) {
	cases := map[string]string{
		"two forms": `
tracks:
  - keyframes:
      - quat: [0, 0, 0, 1]
        euler_deg: [0, 0, 0]
`,
		"no form": `
tracks:
  - keyframes:
      - time: 0
`,
		"short quat": `
tracks:
  - keyframes:
      - quat: [0, 0, 1]
`,
		"zero quat": `
tracks:
  - keyframes:
      - quat: [0, 0, 0, 0]
`,
		"axis without angle": `
tracks:
  - keyframes:
      - axis: [0, 1, 0]
`,
		"zero axis": `
tracks:
  - keyframes:
      - axis: [0, 0, 0]
        angle_deg: 10
`,
		"scaled matrix": `
tracks:
  - keyframes:
      - matrix: [[2, 0, 0], [0, 2, 0], [0, 0, 2]]
`,
		"mirror basis": `
tracks:
  - keyframes:
      - basis: {view: [0, 0, 1], right: [1, 0, 0], up: [0, 1, 0]}
`,
		"bad interpolation": `
tracks:
  - interpolation: hermite
    keyframes:
      - quat: [0, 0, 0, 1]
`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, "bad.yaml", body))
			assert.ErrorIs(t, err, ErrBadKeyframe)
		})
	}

	_, err := LoadFile(writeFile(t, "empty.yaml", "tracks: []\n"))
	assert.ErrorIs(t, err, ErrNoKeyframes)

	_, err = LoadFile(writeFile(t, "nokeys.yaml", "tracks:\n  - name: a\n"))
	assert.ErrorIs(t, err, ErrNoKeyframes)

	_, err = LoadFile(writeFile(t, "easing.yaml", "tracks:\n  - easing: wobble\n    keyframes:\n      - quat: [0, 0, 0, 1]\n"))
	assert.ErrorIs(t, err, ErrUnknownEasing)

	_, err = LoadFile(writeFile(t, "field.yaml", "tracks:\n  - keyframes:\n      - quaternion: [0, 0, 0, 1]\n"))
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
