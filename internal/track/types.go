// Package track holds orientation keyframe tracks: loading them from YAML, JSON
// or glTF files and sampling them with eased spherical interpolation.
package track

import (
	"errors"
	"fmt"
	"strings"

	"quatkit/internal/mathutil"
)

var (
	ErrNoKeyframes   = errors.New("track has no keyframes")
	ErrUnknownEasing = errors.New("unknown easing")
	ErrBadKeyframe   = errors.New("bad keyframe")
)

// Interpolation selects how rotations between two keyframes are blended.
type Interpolation int

const (
	// Linear slerps between neighbouring keyframes.
	Linear Interpolation = iota
	// Step holds each keyframe until the next one.
	Step
)

func (i Interpolation) String() string {
	if i == Step {
		return "step"
	}
	return "linear"
}

// ParseInterpolation accepts "linear" or "step" in any case. Empty means linear.
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(s) {
	case "", "linear":
		return Linear, nil
	case "step":
		return Step, nil
	}
	return Linear, fmt.Errorf("%w: interpolation %q", ErrBadKeyframe, s)
}

// Keyframe is a unit rotation pinned to a time.
type Keyframe struct {
	Time     float32
	Rotation mathutil.Quat
}

// Track is a named sequence of keyframes sorted by time.
type Track struct {
	Name          string
	Keyframes     []Keyframe
	Easing        string
	Interpolation Interpolation
}

// Frame is one sampled orientation.
type Frame struct {
	Index    int
	Time     float32
	Rotation mathutil.Quat
}

// Span returns the times of the first and last keyframe.
func (t *Track) Span() (start, end float32) {
	if len(t.Keyframes) == 0 {
		return 0, 0
	}
	return t.Keyframes[0].Time, t.Keyframes[len(t.Keyframes)-1].Time
}

// Validate reports empty tracks, unknown easings and keyframes out of order.
func (t *Track) Validate() error {
	if len(t.Keyframes) == 0 {
		return fmt.Errorf("track %q: %w", t.Name, ErrNoKeyframes)
	}
	if _, err := Easing(t.Easing); err != nil {
		return fmt.Errorf("track %q: %w", t.Name, err)
	}
	for i := 1; i < len(t.Keyframes); i++ {
		if t.Keyframes[i].Time < t.Keyframes[i-1].Time {
			return fmt.Errorf("track %q: keyframe %d: %w: time %g before %g",
				t.Name, i, ErrBadKeyframe, t.Keyframes[i].Time, t.Keyframes[i-1].Time)
		}
	}
	return nil
}
