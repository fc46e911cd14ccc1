package renderer

import (
	"cogentcore.org/core/math32"
	"github.com/ivlev/scrollrig/internal/director"
	"github.com/ivlev/scrollrig/internal/path"
	"github.com/ivlev/scrollrig/internal/shot"
)

// InterpolateKeyframes calculates the camera pose at a progress value by
// interpolating between baked keyframes. Progress wraps into [0,1); closed
// takes interpolate across the wrap, open takes hold their last keyframe.
func InterpolateKeyframes(keyframes []director.Keyframe, progress float32, closed bool) shot.Pose {
	if len(keyframes) == 0 {
		return shot.Pose{LookAt: math32.Vec3(0, 0, 1)}
	}

	u := path.Wrap(progress)

	// Before first keyframe
	if u <= keyframes[0].Progress {
		return keyframes[0].Pose()
	}

	last := len(keyframes) - 1
	if u >= keyframes[last].Progress {
		if !closed {
			return keyframes[last].Pose()
		}
		return lerpKeyframes(keyframes[last], keyframes[0], keyframes[last].Progress, keyframes[0].Progress+1, u)
	}

	// Find surrounding keyframes
	i := searchKeyframe(keyframes, u)
	return lerpKeyframes(keyframes[i], keyframes[i+1], keyframes[i].Progress, keyframes[i+1].Progress, u)
}

// searchKeyframe returns i with keyframes[i].Progress <= u < keyframes[i+1].Progress.
func searchKeyframe(keyframes []director.Keyframe, u float32) int {
	lo, hi := 0, len(keyframes)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if keyframes[mid].Progress <= u {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

func lerpKeyframes(a, b director.Keyframe, from, to, u float32) shot.Pose {
	span := to - from
	if span <= 0 {
		return a.Pose()
	}
	t := (u - from) / span
	return a.Pose().Lerp(b.Pose(), t)
}

// Playback drives a rig from a baked take.
type Playback struct {
	take *director.Take
	rig  *Rig
}

// NewPlayback replays take through rig.
func NewPlayback(take *director.Take, rig *Rig) *Playback {
	return &Playback{take: take, rig: rig}
}

// Target is the unsmoothed take pose at progress.
func (p *Playback) Target(progress float32) shot.Pose {
	return InterpolateKeyframes(p.take.Keyframes, progress, p.take.Closed)
}

// Update advances the rig toward the take pose at progress.
func (p *Playback) Update(dt, progress float32) shot.Pose {
	return p.rig.Update(dt, p.Target(progress))
}

// Shot names the baked shot.
func (p *Playback) Shot() shot.Name { return p.take.Shot }
