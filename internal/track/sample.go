package track

import (
	"sort"

	"github.com/tanema/gween/ease"

	"quatkit/internal/mathutil"
)

// Sample returns the orientation at time t. Times outside the track span clamp to
// the first or last keyframe. Between keyframes the local parameter goes through
// the track easing and the rotations are slerped, then normalized.
// An empty track samples as the identity.
func (t *Track) Sample(at float32) mathutil.Quat {
	fn, err := Easing(t.Easing)
	if err != nil {
		fn = ease.Linear
	}
	return t.sample(at, fn)
}

func (t *Track) sample(at float32, fn ease.TweenFunc) mathutil.Quat {
	kf := t.Keyframes
	n := len(kf)
	if n == 0 {
		return mathutil.QuatIdentity()
	}
	if at <= kf[0].Time {
		return kf[0].Rotation
	}
	if at >= kf[n-1].Time {
		return kf[n-1].Rotation
	}

	// First keyframe strictly after at; 0 < i < n here.
	i := sort.Search(n, func(i int) bool { return kf[i].Time > at })
	a, b := kf[i-1], kf[i]
	if t.Interpolation == Step {
		return a.Rotation
	}
	span := b.Time - a.Time
	if span <= 0 {
		return b.Rotation
	}
	u := fn((at-a.Time)/span, 0, 1, 1)
	return mathutil.Slerp(a.Rotation, b.Rotation, u).Normalize()
}

// Frames samples n evenly spaced times covering the track span, both ends included.
func (t *Track) Frames(n int) []Frame {
	if n <= 0 {
		return nil
	}
	fn, err := Easing(t.Easing)
	if err != nil {
		fn = ease.Linear
	}

	start, end := t.Span()
	frames := make([]Frame, n)
	for i := range frames {
		at := start
		if n > 1 {
			at = start + (end-start)*float32(i)/float32(n-1)
		}
		frames[i] = Frame{Index: i, Time: at, Rotation: t.sample(at, fn)}
	}
	return frames
}
