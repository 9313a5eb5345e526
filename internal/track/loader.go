package track

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"quatkit/internal/mathutil"
)

// fileDoc is the on-disk layout of a keyframe file.
type fileDoc struct {
	Tracks []fileTrack `json:"tracks" yaml:"tracks"`
}

type fileTrack struct {
	Name          string         `json:"name" yaml:"name"`
	Easing        string         `json:"easing" yaml:"easing"`
	Interpolation string         `json:"interpolation" yaml:"interpolation"`
	Keyframes     []fileKeyframe `json:"keyframes" yaml:"keyframes"`
}

// fileKeyframe carries exactly one of the rotation forms.
type fileKeyframe struct {
	Time     *float32    `json:"time" yaml:"time"`
	Quat     []float32   `json:"quat" yaml:"quat"`
	Axis     []float32   `json:"axis" yaml:"axis"`
	AngleDeg *float32    `json:"angle_deg" yaml:"angle_deg"`
	EulerDeg []float32   `json:"euler_deg" yaml:"euler_deg"`
	Basis    *fileBasis  `json:"basis" yaml:"basis"`
	Matrix   [][]float32 `json:"matrix" yaml:"matrix"`
}

type fileBasis struct {
	View  []float32 `json:"view" yaml:"view"`
	Right []float32 `json:"right" yaml:"right"`
	Up    []float32 `json:"up" yaml:"up"`
}

// LoadFile reads a keyframe file. Files ending in .json are parsed as JSON,
// everything else as YAML. Every returned track has passed Validate.
func LoadFile(path string) ([]Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("track: read %s: %w", path, err)
	}

	var doc fileDoc
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &doc)
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	}
	if err != nil {
		return nil, fmt.Errorf("track: parse %s: %w", path, err)
	}

	tracks, err := doc.build()
	if err != nil {
		return nil, fmt.Errorf("track: %s: %w", path, err)
	}
	return tracks, nil
}

func (d fileDoc) build() ([]Track, error) {
	if len(d.Tracks) == 0 {
		return nil, ErrNoKeyframes
	}

	tracks := make([]Track, 0, len(d.Tracks))
	for ti, ft := range d.Tracks {
		name := ft.Name
		if name == "" {
			name = fmt.Sprintf("track%d", ti)
		}
		interp, err := ParseInterpolation(ft.Interpolation)
		if err != nil {
			return nil, fmt.Errorf("track %q: %w", name, err)
		}

		tr := Track{Name: name, Easing: ft.Easing, Interpolation: interp}
		n := len(ft.Keyframes)
		for i, fk := range ft.Keyframes {
			q, err := fk.rotation()
			if err != nil {
				return nil, fmt.Errorf("track %q: keyframe %d: %w", name, i, err)
			}
			var at float32
			switch {
			case fk.Time != nil:
				at = *fk.Time
			case n > 1:
				at = float32(i) / float32(n-1)
			}
			tr.Keyframes = append(tr.Keyframes, Keyframe{Time: at, Rotation: q})
		}
		sort.SliceStable(tr.Keyframes, func(i, j int) bool {
			return tr.Keyframes[i].Time < tr.Keyframes[j].Time
		})

		if err := tr.Validate(); err != nil {
			return nil, err
		}
		tracks = append(tracks, tr)
	}
	return tracks, nil
}

func (k fileKeyframe) rotation() (mathutil.Quat, error) {
	forms := 0
	for _, set := range []bool{
		k.Quat != nil,
		k.Axis != nil || k.AngleDeg != nil,
		k.EulerDeg != nil,
		k.Basis != nil,
		k.Matrix != nil,
	} {
		if set {
			forms++
		}
	}
	if forms != 1 {
		return mathutil.Quat{}, fmt.Errorf("%w: need exactly one of quat, axis+angle_deg, euler_deg, basis, matrix (got %d)", ErrBadKeyframe, forms)
	}

	switch {
	case k.Quat != nil:
		if len(k.Quat) != 4 {
			return mathutil.Quat{}, fmt.Errorf("%w: quat needs 4 values, got %d", ErrBadKeyframe, len(k.Quat))
		}
		q := mathutil.NewQuat(k.Quat[0], k.Quat[1], k.Quat[2], k.Quat[3])
		if q.LenSq() == 0 {
			return mathutil.Quat{}, fmt.Errorf("%w: zero quat", ErrBadKeyframe)
		}
		return q.Normalize(), nil

	case k.Axis != nil || k.AngleDeg != nil:
		axis, err := vec3(k.Axis, "axis")
		if err != nil {
			return mathutil.Quat{}, err
		}
		if k.AngleDeg == nil {
			return mathutil.Quat{}, fmt.Errorf("%w: axis without angle_deg", ErrBadKeyframe)
		}
		if axis.LenSq() == 0 {
			return mathutil.Quat{}, fmt.Errorf("%w: zero axis", ErrBadKeyframe)
		}
		return mathutil.QuatFromAxisAngle(axis.Normalize(), mathutil.Deg2Rad(*k.AngleDeg)), nil

	case k.EulerDeg != nil:
		e, err := vec3(k.EulerDeg, "euler_deg")
		if err != nil {
			return mathutil.Quat{}, err
		}
		return mathutil.QuatFromEuler(mathutil.Deg2Rad(e[0]), mathutil.Deg2Rad(e[1]), mathutil.Deg2Rad(e[2])), nil

	case k.Basis != nil:
		view, err := vec3(k.Basis.View, "basis.view")
		if err != nil {
			return mathutil.Quat{}, err
		}
		right, err := vec3(k.Basis.Right, "basis.right")
		if err != nil {
			return mathutil.Quat{}, err
		}
		up, err := vec3(k.Basis.Up, "basis.up")
		if err != nil {
			return mathutil.Quat{}, err
		}
		m := mathutil.Mat3FromCols(right.Normalize(), up.Normalize(), view.Normalize().Negate())
		if err := checkRotation(m); err != nil {
			return mathutil.Quat{}, fmt.Errorf("basis: %w", err)
		}
		return mathutil.QuatFromAxes(view.Normalize(), right.Normalize(), up.Normalize()), nil

	default:
		if len(k.Matrix) != 3 {
			return mathutil.Quat{}, fmt.Errorf("%w: matrix needs 3 rows, got %d", ErrBadKeyframe, len(k.Matrix))
		}
		var rows [3]mathutil.Vec3
		for i := range rows {
			r, err := vec3(k.Matrix[i], fmt.Sprintf("matrix row %d", i))
			if err != nil {
				return mathutil.Quat{}, err
			}
			rows[i] = r
		}
		m := mathutil.Mat3FromRows(rows[0], rows[1], rows[2])
		if err := checkRotation(m); err != nil {
			return mathutil.Quat{}, fmt.Errorf("matrix: %w", err)
		}
		return mathutil.QuatFromMat3(m).Normalize(), nil
	}
}

// checkRotation rejects matrices that are not proper rotations.
func checkRotation(m mathutil.Mat3) error {
	if d := m.Det(); math32.Abs(d-1) > 1e-3 {
		return fmt.Errorf("%w: determinant %g, want 1", ErrBadKeyframe, d)
	}
	mtm := mathutil.Mat3Mul(m.Transpose(), m)
	id := mathutil.Mat3Identity()
	for i := range mtm {
		if math32.Abs(mtm[i]-id[i]) > 1e-3 {
			return fmt.Errorf("%w: not orthonormal", ErrBadKeyframe)
		}
	}
	return nil
}

func vec3(v []float32, what string) (mathutil.Vec3, error) {
	if len(v) != 3 {
		return mathutil.Vec3{}, fmt.Errorf("%w: %s needs 3 values, got %d", ErrBadKeyframe, what, len(v))
	}
	return mathutil.Vec3{v[0], v[1], v[2]}, nil
}
