package analyzer

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// TurnDetector flags samples where the camera path changes direction
// abruptly. It catches kinks that keep the step length unchanged.
type TurnDetector struct {
	MaxTurnDeg float32 // largest direction change between two steps
	MinStep    float32 // shorter steps carry no direction
}

func NewTurnDetector() *TurnDetector {
	return &TurnDetector{
		MaxTurnDeg: 45,
		MinStep:    1e-4,
	}
}

// Detect reports one event per kinked sample. Index is the sample at the
// corner.
func (d *TurnDetector) Detect(track []Sample) ([]Event, error) {
	if len(track) < 3 {
		return nil, fmt.Errorf("track too short: %d samples", len(track))
	}

	limit := math32.DegToRad(d.MaxTurnDeg)
	var events []Event
	for i := 1; i < len(track)-1; i++ {
		a := track[i].Pose.Position.Sub(track[i-1].Pose.Position)
		b := track[i+1].Pose.Position.Sub(track[i].Pose.Position)
		la, lb := a.Length(), b.Length()
		if la < d.MinStep || lb < d.MinStep {
			continue
		}

		turn := math32.Acos(math32.Clamp(a.Dot(b)/(la*lb), -1, 1))
		if turn <= limit {
			continue
		}
		events = append(events, Event{
			Index:      i,
			Progress:   track[i].Progress,
			Position:   b.Sub(a).Length(),
			Confidence: math32.Clamp((turn-limit)/(math32.Pi-limit), 0, 1),
		})
	}
	return events, nil
}
