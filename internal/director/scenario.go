package director

import (
	"cogentcore.org/core/math32"
	"github.com/ivlev/scrollrig/internal/analyzer"
	"github.com/ivlev/scrollrig/internal/shot"
)

// Scenario is a set of baked camera takes over one path.
type Scenario struct {
	Version string `yaml:"version"`
	Takes   []Take `yaml:"takes"`
}

// Take is one shot baked into keyframes over a full progress cycle.
type Take struct {
	ID        int              `yaml:"id"`
	Shot      shot.Name        `yaml:"shot"`
	Closed    bool             `yaml:"closed"`
	Frames    int              `yaml:"frames"`
	Keyframes []Keyframe       `yaml:"keyframes"`
	Pops      []analyzer.Event `yaml:"pops,omitempty"`
}

// Keyframe is the camera pose at a progress value.
type Keyframe struct {
	Progress float32        `yaml:"progress"`
	Position math32.Vector3 `yaml:"position"`
	LookAt   math32.Vector3 `yaml:"lookAt"`
}

// Pose returns the keyframe's camera pose.
func (k Keyframe) Pose() shot.Pose {
	return shot.Pose{Position: k.Position, LookAt: k.LookAt}
}

// Samples converts the take for track analysis.
func (t *Take) Samples() []analyzer.Sample {
	out := make([]analyzer.Sample, len(t.Keyframes))
	for i, kf := range t.Keyframes {
		out[i] = analyzer.Sample{Progress: kf.Progress, Pose: kf.Pose()}
	}
	return out
}

// Take returns the take for a shot, if baked.
func (s *Scenario) Take(name shot.Name) (*Take, bool) {
	for i := range s.Takes {
		if s.Takes[i].Shot == name {
			return &s.Takes[i], true
		}
	}
	return nil, false
}
