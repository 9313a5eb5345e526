package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/image/webp"

	"quatkit/internal/mathutil"
	"quatkit/internal/mesh"
	"quatkit/internal/track"
	"quatkit/internal/viewmatrix"
)

func spinTracks() []track.Track {
	return []track.Track{
		{
			Name: "spin/y",
			Keyframes: []track.Keyframe{
				{Time: 0, Rotation: mathutil.QuatIdentity()},
				{Time: 1, Rotation: mathutil.QuatFromAxisAngle(mathutil.UnitY, 3)},
			},
		},
		{
			Name: "tilt",
			Keyframes: []track.Keyframe{
				{Time: 0, Rotation: mathutil.QuatFromAxisAngle(mathutil.UnitX, -1)},
				{Time: 2, Rotation: mathutil.QuatFromAxisAngle(mathutil.UnitX, 1)},
			},
		},
	}
}

func testConfig(t *testing.T) Config {
	return Config{
		OutputDir:   t.TempDir(),
		Meshes:      []mesh.Mesh{mesh.Cube(1)},
		Camera:      viewmatrix.DefaultCamera,
		RenderSize:  24,
		Supersample: 2,
		Workers:     3,
		Logger:      zaptest.NewLogger(t),
	}
}

func TestJobs(t *testing.T) {
	jobs := Jobs(spinTracks(), 4)
	require.Len(t, jobs, 8)
	assert.Equal(t, "spin/y", jobs[0].Track)
	assert.Equal(t, "tilt", jobs[7].Track)
	assert.Equal(t, 3, jobs[7].Frame.Index)
	assert.Equal(t, float32(2), jobs[7].Frame.Time)
}

func TestFramePath(t *testing.T) {
	assert.Equal(t, "spin_y/0007.webp", FramePath("spin/y", 7))
	assert.Equal(t, "a_b_c/0000.webp", FramePath(`a\b c`, 0))
	assert.Equal(t, "_/0001.webp", FramePath("", 1))
	assert.Equal(t, "_/0001.webp", FramePath("..", 1))
}

func TestTrackDirs(t *testing.T) {
	dirs := TrackDirs([]string{"a/b", "a_b", "A b", "tilt", "", ".."})
	assert.Equal(t, []string{"a_b", "a_b-2", "A_b-3", "tilt", "_", "_-2"}, dirs)
}

func TestRunKeepsCollidingTracksApart(t *testing.T) {
	cfg := testConfig(t)
	tracks := spinTracks()
	tracks[1].Name = "spin_y"

	results, err := Run(context.Background(), cfg, Jobs(tracks, 2))
	require.NoError(t, err)
	require.Len(t, results, 4)

	paths := map[string]bool{}
	for _, r := range results {
		require.True(t, r.Success, r.Error)
		paths[r.Path] = true
	}
	assert.Len(t, paths, 4)
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "spin_y", "0001.webp"))
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "spin_y-2", "0001.webp"))
	assert.Equal(t, "spin_y-2/0000.webp", results[2].Path)
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.KeepImages = true
	jobs := Jobs(spinTracks(), 3)

	results, err := Run(context.Background(), cfg, jobs)
	require.NoError(t, err)
	require.Len(t, results, 6)

	for i, r := range results {
		require.True(t, r.Success, "job %d: %s", i, r.Error)
		assert.Equal(t, jobs[i].Track, r.Track)
		assert.Equal(t, jobs[i].Frame.Index, r.Index)
		require.NotNil(t, r.Image)
		assert.Equal(t, 24, r.Image.Bounds().Dx())

		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, filepath.FromSlash(r.Path)))
		require.NoError(t, err)
		assert.Equal(t, xxhash.Sum64(data), r.Checksum)

		f, err := os.Open(filepath.Join(cfg.OutputDir, filepath.FromSlash(r.Path)))
		require.NoError(t, err)
		img, err := webp.Decode(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, 24, img.Bounds().Dx())
	}

	// Different orientations give different pictures.
	assert.NotEqual(t, results[0].Checksum, results[2].Checksum)
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "spin_y", "0002.webp"))
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "tilt", "0000.webp"))
}

func TestRunIsDeterministic(t *testing.T) {
	jobs := Jobs(spinTracks()[:1], 2)
	a, err := Run(context.Background(), testConfig(t), jobs)
	require.NoError(t, err)
	b, err := Run(context.Background(), testConfig(t), jobs)
	require.NoError(t, err)
	for i := range a {
		assert.Equal(t, a[i].Checksum, b[i].Checksum)
		assert.Nil(t, a[i].Image)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, testConfig(t), Jobs(spinTracks(), 3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunReportsWriteFailure(t *testing.T) {
	cfg := testConfig(t)
	// A file where the track directory should go.
	require.NoError(t, os.WriteFile(filepath.Join(cfg.OutputDir, "tilt"), []byte("x"), 0644))

	results, err := Run(context.Background(), cfg, Jobs(spinTracks(), 1))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.NotEmpty(t, results[1].Error)
}

func TestManifest(t *testing.T) {
	q := mathutil.QuatFromAxisAngle(mathutil.UnitZ, mathutil.Deg2Rad(90))
	results := []Result{
		{Track: "spin", Index: 0, Time: 0.5, Rotation: q, Path: "spin/0000.webp", Checksum: 0xabc, Success: true},
		{Track: "spin", Index: 1, Error: "boom"},
	}

	m := NewManifest(results)
	_, err := uuid.Parse(m.RunID)
	require.NoError(t, err)
	require.Len(t, m.Frames, 1)

	e := m.Frames[0]
	assert.Equal(t, "spin/0000.webp", e.Image)
	assert.Equal(t, "0000000000000abc", e.XXH64)
	assert.Equal(t, q.String(), e.Quat)
	assert.InDelta(t, 90, e.AngleDeg, 1e-3)
	assert.InDelta(t, 1, e.Axis[2], 1e-6)

	p := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, WriteManifest(p, m))
	back, err := ReadManifest(p)
	require.NoError(t, err)
	assert.Equal(t, m.RunID, back.RunID)
	assert.Equal(t, m.Frames, back.Frames)
	assert.True(t, m.CreatedAt.Equal(back.CreatedAt))

	assert.Error(t, WriteManifest(filepath.Join(p, "nested.json"), m))
}
