// Package renderer turns shot targets into the camera pose the host renders:
// a smoothing rig for live shots and keyframe playback for baked takes.
package renderer

import (
	"cogentcore.org/core/math32"
	"github.com/ivlev/scrollrig/internal/shot"
)

// DefaultRate is the reference smoothing rate in 1/s.
const DefaultRate = 6.0

// Rig eases the camera toward a target pose each frame. The first update
// places the camera on the target; later target changes, including shot
// switches, are always smoothed.
type Rig struct {
	Rate float32

	pose   shot.Pose
	placed bool
}

// NewRig returns a rig with the given smoothing rate.
func NewRig(rate float32) *Rig {
	return &Rig{Rate: rate}
}

// Update moves the retained pose toward target and returns it.
// Non-positive dt leaves the pose unchanged.
func (r *Rig) Update(dt float32, target shot.Pose) shot.Pose {
	if !r.placed {
		r.Reset(target)
		return r.pose
	}
	if dt <= 0 {
		return r.pose
	}

	alpha := 1 - math32.Exp(-dt*r.Rate)
	r.pose = r.pose.Lerp(target, alpha)
	return r.pose
}

// Reset hard-cuts to pose.
func (r *Rig) Reset(pose shot.Pose) {
	r.pose = pose
	r.placed = true
}

// Pose returns the retained pose and whether the rig has been placed.
func (r *Rig) Pose() (shot.Pose, bool) {
	return r.pose, r.placed
}
