package shot

import (
	"cogentcore.org/core/math32"
	"github.com/ivlev/scrollrig/internal/path"
)

// wheelLift raises the follow subject above the road surface.
const wheelLift = 0.18

// Orbit phase boundaries on the wrapped offset.
const (
	OrbitPhase1End = 0.06
	OrbitPhase2End = 0.18
)

// at samples the track and returns the point, its frame and the lifted
// subject point.
func at(track path.Track, u float32) (math32.Vector3, path.Frame, math32.Vector3) {
	p := track.PointAt(u)
	f := track.FrameAt(u)
	return p, f, f.Offset(p, 0, wheelLift, 0)
}

// TrackFollow chases the subject from behind and above, aiming slightly ahead.
func TrackFollow(track path.Track, offset float32) Pose {
	u := path.Wrap(offset)
	p, f, _ := at(track, u)

	ahead := track.Advance(u, 0.08)
	look := track.PointAt(ahead)
	return Pose{
		Position: f.Offset(p, 0, 0.45, -1.6),
		LookAt:   f.Offset(look, 0, wheelLift, 0),
	}
}

// OverheadCrane hangs above and to the right, looking down at the subject.
func OverheadCrane(track path.Track, offset float32) Pose {
	u := path.Wrap(offset)
	p, f, wheel := at(track, u)
	return Pose{
		Position: f.Offset(p, 0.35, 0.5, 0.2),
		LookAt:   wheel,
	}
}

// LowSlider runs near the ground on the left side, slightly behind.
func LowSlider(track path.Track, offset float32) Pose {
	u := path.Wrap(offset)
	p, f, wheel := at(track, u)
	return Pose{
		Position: f.Offset(p, -1.0, 0.12, -0.5),
		LookAt:   f.Offset(wheel, 0.2, -0.05, 0.4),
	}
}

// SideCarShot rides alongside on the right, trailing a little.
func SideCarShot(track path.Track, offset float32) Pose {
	u := path.Wrap(offset)
	p, f, wheel := at(track, u)
	return Pose{
		Position: f.Offset(p, 1.1, 0.14, -0.1),
		LookAt:   f.Offset(wheel, -0.3, -0.04, 0.4),
	}
}

// FrontLeadShot leads the subject and looks back at it.
func FrontLeadShot(track path.Track, offset float32) Pose {
	u := path.Wrap(offset)
	p, f, wheel := at(track, u)
	return Pose{
		Position: f.Offset(p, 0.25, 0.32, 2.0),
		LookAt:   f.Offset(wheel, 0, -0.05, -0.2),
	}
}

// OrbitPauseShot circles the subject once per progress cycle at a fixed
// radius, independent of forward travel.
func OrbitPauseShot(track path.Track, offset float32) Pose {
	const (
		radius = 1.1
		height = 0.12
	)
	u := path.Wrap(offset)
	_, f, wheel := at(track, u)

	angle := u * 2 * math32.Pi
	dir := f.Binormal.MulScalar(math32.Cos(angle)).Add(f.Tangent.MulScalar(math32.Sin(angle))).Normal()

	return Pose{
		Position: wheel.Add(dir.MulScalar(radius)).Add(f.Normal.MulScalar(height)),
		LookAt:   wheel,
	}
}

// RevealPan starts wide on the left and closes in during the first quarter
// of progress, then holds.
func RevealPan(track path.Track, offset float32) Pose {
	u := path.Wrap(offset)
	p, f, wheel := at(track, u)

	alpha := math32.Clamp(u/0.25, 0, 1)
	lateral := math32.Lerp(-3.0, -0.25, alpha)
	forward := math32.Lerp(-1.2, -0.2, alpha)
	lookLateral := math32.Lerp(-2.2, -0.1, alpha)

	return Pose{
		Position: f.Offset(p, lateral, 0.12, forward),
		LookAt:   f.Offset(wheel, lookLateral, -0.05, 0.25),
	}
}

// TrackOrbit is a three-phase shot: a static pull-back, a quadratic Bézier
// swing around the subject, then a steady chase from ahead.
func TrackOrbit(track path.Track, offset float32) Pose {
	u := path.Wrap(offset)
	switch {
	case u < OrbitPhase1End:
		return orbitPullBack(track, u)
	case u < OrbitPhase2End:
		alpha := math32.Clamp((u-OrbitPhase1End)/(OrbitPhase2End-OrbitPhase1End), 0, 1)
		return orbitSwing(track, u, alpha)
	default:
		return orbitChase(track, u)
	}
}

func orbitPullBack(track path.Track, u float32) Pose {
	p, f, _ := at(track, u)
	return Pose{
		Position: f.Offset(p, 0, 0.1, -2.2),
		LookAt:   track.PointAt(track.Advance(u, 0.16)),
	}
}

func orbitSwing(track path.Track, u, alpha float32) Pose {
	p, f, _ := at(track, u)

	p0 := f.Offset(p, 0.08, 0.16, -1.0)
	p1 := f.Offset(p, 0.24, 0.24, 0.08)
	p2 := f.Offset(p, 0.14, 0.18, 0.42)

	inv := 1 - alpha
	pos := p0.MulScalar(inv * inv).
		Add(p1.MulScalar(2 * inv * alpha)).
		Add(p2.MulScalar(alpha * alpha))

	return Pose{
		Position: pos,
		LookAt:   track.PointAt(track.Advance(u, 0.28)),
	}
}

func orbitChase(track path.Track, u float32) Pose {
	camU := track.Advance(u, 0.14)
	lookU := track.Advance(camU, 0.22)

	c := track.PointAt(camU)
	f := track.FrameAt(camU)
	return Pose{
		Position: f.Offset(c, 0, 0.12, -0.35),
		LookAt:   track.PointAt(lookU),
	}
}
