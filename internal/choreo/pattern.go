package choreo

import (
	"errors"
	"fmt"

	"cogentcore.org/core/math32"
)

// ErrUnknownPattern is returned for names outside the pattern enumeration.
var ErrUnknownPattern = errors.New("choreo: unknown pattern")

// Pattern selects how reveal delays are laid out over the population.
type Pattern string

const (
	WaveZ      Pattern = "wave-z"
	Radial     Pattern = "radial"
	Diagonal   Pattern = "diagonal"
	Spiral     Pattern = "spiral"
	Clusters   Pattern = "clusters"
	Jitter     Pattern = "jitter"
	ColorBeats Pattern = "color-beats"
	FlyIn      Pattern = "fly-in"
	Night      Pattern = "night"
	Looping    Pattern = "looping"
)

// DefaultPattern is used when none is configured.
const DefaultPattern = WaveZ

var patterns = []Pattern{WaveZ, Radial, Diagonal, Spiral, Clusters, Jitter, ColorBeats, FlyIn, Night, Looping}

// Patterns lists every pattern in menu order.
func Patterns() []Pattern {
	return append([]Pattern(nil), patterns...)
}

// ParsePattern validates s.
func ParsePattern(s string) (Pattern, error) {
	for _, p := range patterns {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPattern, s)
}

// Valid reports whether p is one of the known patterns.
func (p Pattern) Valid() bool {
	_, err := ParsePattern(string(p))
	return err == nil
}

// byDepth reports whether the reveal runs from the far row forward.
func (p Pattern) byDepth() bool {
	switch p {
	case WaveZ, Night, ColorBeats, FlyIn, Looping:
		return true
	}
	return false
}

// delay is the reveal start of the object at base, k-th in reveal order.
func (p Pattern) delay(base math32.Vector3, k int) float32 {
	switch p {
	case Radial:
		return math32.Sqrt(base.X*base.X+base.Z*base.Z) * 0.04
	case Diagonal:
		return (base.X + base.Z) * 0.02
	case Spiral:
		angle := math32.Atan2(base.Z, base.X) + math32.Pi
		r := math32.Sqrt(base.X*base.X + base.Z*base.Z)
		return angle/(2*math32.Pi)*1.2 + r*0.01
	case Clusters:
		cluster := math32.Floor(base.X/6) + math32.Floor(base.Z/6)
		return cluster*0.12 + float32(k%5)*0.02
	case Looping:
		return float32(k) * 0.002
	default:
		return float32(k) / 350
	}
}

func (p Pattern) duration(k int) float32 {
	switch p {
	case Looping:
		return 0.25
	case Spiral:
		return 0.5 + float32(k)*0.0005
	default:
		return 0.3 + float32(k)/350
	}
}
