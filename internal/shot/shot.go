// Package shot holds the camera shot library: pure functions that place a
// camera relative to a path at a given progress value.
//
// Every shot reduces its offset with path.Wrap before doing anything else, so
// shots are periodic in the offset with period 1.
package shot

import (
	"errors"
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/ivlev/scrollrig/internal/path"
)

// ErrUnknownShot is returned for names outside the closed shot enumeration.
var ErrUnknownShot = errors.New("shot: unknown shot name")

// Pose is a camera placement. Orientation is left to the host, which derives
// it from Position and LookAt.
type Pose struct {
	Position math32.Vector3
	LookAt   math32.Vector3
}

// Lerp blends two poses component-wise.
func (p Pose) Lerp(to Pose, alpha float32) Pose {
	return Pose{
		Position: p.Position.Lerp(to.Position, alpha),
		LookAt:   p.LookAt.Lerp(to.LookAt, alpha),
	}
}

// Distance is the larger of the position and look-at distances between poses.
func (p Pose) Distance(o Pose) float32 {
	return max(p.Position.DistanceTo(o.Position), p.LookAt.DistanceTo(o.LookAt))
}

// Direction is the unit view direction, or +Z when the pose is degenerate.
func (p Pose) Direction() math32.Vector3 {
	d := p.LookAt.Sub(p.Position)
	if d.LengthSquared() < 1e-12 {
		return math32.Vec3(0, 0, 1)
	}
	return d.Normal()
}

// Func evaluates a shot on a track at the given progress offset.
type Func func(track path.Track, offset float32) Pose

// Name identifies a shot.
type Name string

const (
	Follow     Name = "follow"
	Orbit      Name = "orbit"
	Crane      Name = "crane"
	Slider     Name = "slider"
	OrbitPause Name = "orbitPause"
	SideCar    Name = "sideCar"
	Reveal     Name = "reveal"
	FrontLead  Name = "frontLead"
)

var library = map[Name]Func{
	Follow:     TrackFollow,
	Orbit:      TrackOrbit,
	Crane:      OverheadCrane,
	Slider:     LowSlider,
	OrbitPause: OrbitPauseShot,
	SideCar:    SideCarShot,
	Reveal:     RevealPan,
	FrontLead:  FrontLeadShot,
}

var order = []Name{Follow, Orbit, Crane, Slider, OrbitPause, SideCar, Reveal, FrontLead}

// Names lists every shot in menu order.
func Names() []Name {
	return append([]Name(nil), order...)
}

// ParseName validates s against the shot enumeration.
func ParseName(s string) (Name, error) {
	n := Name(s)
	if _, ok := library[n]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownShot, s)
	}
	return n, nil
}

// Lookup returns the shot function for name.
func Lookup(name Name) (Func, error) {
	fn, ok := library[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShot, string(name))
	}
	return fn, nil
}

// Evaluate looks up name and evaluates it.
func Evaluate(name Name, track path.Track, offset float32) (Pose, error) {
	fn, err := Lookup(name)
	if err != nil {
		return Pose{}, err
	}
	return fn(track, offset), nil
}

// Next returns the shot after name in menu order, wrapping around.
func Next(name Name) Name {
	for i, n := range order {
		if n == name {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}
