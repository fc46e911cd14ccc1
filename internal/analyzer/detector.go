// Package analyzer inspects baked camera tracks for visual pops: frames where
// the camera position or aim point moves far more than its usual step.
package analyzer

import "github.com/ivlev/scrollrig/internal/shot"

// Sample is one baked camera pose at a progress value.
type Sample struct {
	Progress float32
	Pose     shot.Pose
}

// Event marks a discontinuity between Samples[Index-1] and Samples[Index].
type Event struct {
	Index      int     `yaml:"index"`
	Progress   float32 `yaml:"progress"`
	Position   float32 `yaml:"position"` // position step at the event
	LookAt     float32 `yaml:"lookAt"`   // aim point step at the event
	Confidence float32 `yaml:"confidence"`
}

// Magnitude is the larger of the two steps.
func (e Event) Magnitude() float32 { return max(e.Position, e.LookAt) }

// Detector is the interface for track analysis strategies.
type Detector interface {
	Detect(track []Sample) ([]Event, error)
}
