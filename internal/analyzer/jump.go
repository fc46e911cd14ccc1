package analyzer

import (
	"fmt"
	"slices"

	"cogentcore.org/core/math32"
)

// JumpDetector flags steps that exceed a multiple of the track's median step.
type JumpDetector struct {
	Factor  float32 // step / median ratio that counts as a pop
	MinJump float32 // absolute floor in world units
}

// NewJumpDetector creates a detector with default settings.
func NewJumpDetector() *JumpDetector {
	return &JumpDetector{
		Factor:  5,
		MinJump: 0.05,
	}
}

// Detect scans consecutive samples. Tracks are not compared across their
// wrap-around.
func (d *JumpDetector) Detect(track []Sample) ([]Event, error) {
	if len(track) < 3 {
		return nil, fmt.Errorf("track too short: %d samples", len(track))
	}

	posSteps := make([]float32, len(track)-1)
	lookSteps := make([]float32, len(track)-1)
	for i := 1; i < len(track); i++ {
		posSteps[i-1] = track[i-1].Pose.Position.DistanceTo(track[i].Pose.Position)
		lookSteps[i-1] = track[i-1].Pose.LookAt.DistanceTo(track[i].Pose.LookAt)
	}

	posLimit := d.limit(posSteps)
	lookLimit := d.limit(lookSteps)

	var events []Event
	for i := range posSteps {
		pos, look := posSteps[i], lookSteps[i]
		if pos <= posLimit && look <= lookLimit {
			continue
		}
		ratio := max(pos/posLimit, look/lookLimit)
		events = append(events, Event{
			Index:      i + 1,
			Progress:   track[i+1].Progress,
			Position:   pos,
			LookAt:     look,
			Confidence: math32.Clamp(1-1/ratio, 0, 1),
		})
	}
	return events, nil
}

func (d *JumpDetector) limit(steps []float32) float32 {
	sorted := slices.Clone(steps)
	slices.Sort(sorted)
	median := sorted[len(sorted)/2]
	return max(median*d.Factor, d.MinJump)
}
