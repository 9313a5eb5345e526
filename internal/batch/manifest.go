package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"quatkit/internal/mathutil"
)

// Manifest describes one batch run.
type Manifest struct {
	RunID     string          `json:"run_id"`
	CreatedAt time.Time       `json:"created_at"`
	Frames    []ManifestEntry `json:"frames"`
}

// ManifestEntry represents one rendered frame in the output manifest.
type ManifestEntry struct {
	Track    string     `json:"track"`
	Index    int        `json:"index"`
	Time     float32    `json:"time"`
	Quat     string     `json:"quat"`
	Rotation [4]float32 `json:"rotation"`
	Axis     [3]float32 `json:"axis"`
	AngleDeg float32    `json:"angle_deg"`
	Image    string     `json:"image"`
	XXH64    string     `json:"xxh64"`
}

// NewManifest collects the successful results under a fresh run id.
func NewManifest(results []Result) Manifest {
	m := Manifest{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Frames:    []ManifestEntry{},
	}
	for _, r := range results {
		if !r.Success {
			continue
		}
		axis, angle := r.Rotation.AxisAngle()
		m.Frames = append(m.Frames, ManifestEntry{
			Track:    r.Track,
			Index:    r.Index,
			Time:     r.Time,
			Quat:     r.Rotation.String(),
			Rotation: r.Rotation,
			Axis:     axis,
			AngleDeg: mathutil.Rad2Deg(angle),
			Image:    r.Path,
			XXH64:    fmt.Sprintf("%016x", r.Checksum),
		})
	}
	return m
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest %s: %w", path, err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("batch: read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("batch: parse manifest %s: %w", path, err)
	}
	return m, nil
}
