package orbit

import "cogentcore.org/core/math32"

// spherical uses the y-up convention: Phi is the polar angle from +Y and
// Theta the azimuth around Y measured from +Z toward +X.
type spherical struct {
	Radius, Phi, Theta float32
}

func toSpherical(v math32.Vector3) spherical {
	r := v.Length()
	if r == 0 {
		return spherical{}
	}
	return spherical{
		Radius: r,
		Phi:    math32.Acos(math32.Clamp(v.Y/r, -1, 1)),
		Theta:  math32.Atan2(v.X, v.Z),
	}
}

func (s spherical) vector() math32.Vector3 {
	sinPhi := math32.Sin(s.Phi)
	return math32.Vec3(
		s.Radius*sinPhi*math32.Sin(s.Theta),
		s.Radius*math32.Cos(s.Phi),
		s.Radius*sinPhi*math32.Cos(s.Theta),
	)
}

// shortestArc returns the signed angle in (-π, π] that turns from into to.
func shortestArc(from, to float32) float32 {
	d := math32.Mod(to-from+math32.Pi, 2*math32.Pi)
	if d < 0 {
		d += 2 * math32.Pi
	}
	return d - math32.Pi
}
