// Package reveal animates how a single loaded model appears: floor by floor
// (grow) or behind a rising clip plane (clip), while it slowly turns.
package reveal

import (
	"errors"
	"fmt"

	"cogentcore.org/core/math32"
)

// ErrUnknownStyle is returned for names outside the style enumeration.
var ErrUnknownStyle = errors.New("reveal: unknown style")

// Style is the reveal technique.
type Style string

const (
	Grow Style = "grow"
	Clip Style = "clip"
)

// ParseStyle validates s.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case Grow, Clip:
		return Style(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStyle, s)
}

// Config tunes the reveal.
type Config struct {
	Floors   int     // grow: discrete steps
	PerFloor float32 // grow: seconds per step
	Speed    float32 // clip: progress per second
	Spin     float32 // turn rate in rad/s
	Size     float32 // largest model extent after fitting
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		Floors:   12,
		PerFloor: 0.18,
		Speed:    0.45,
		Spin:     0.1,
		Size:     22,
	}
}

// minBuilt keeps a grown model from collapsing to a zero scale.
const minBuilt = 0.001

// Model tracks the reveal of one model.
type Model struct {
	style Style
	cfg   Config

	baseScale float32
	height    float32

	elapsed  float32
	progress float32
	angle    float32
}

// New fits a model with the given bounding-box size to cfg.Size and starts
// its reveal.
func New(style Style, cfg Config, bounds math32.Vector3) (*Model, error) {
	if _, err := ParseStyle(string(style)); err != nil {
		return nil, err
	}
	if cfg.Floors <= 0 || cfg.PerFloor <= 0 || cfg.Speed <= 0 {
		return nil, fmt.Errorf("reveal: floors, per-floor time and speed must be positive")
	}
	maxDim := max(bounds.X, bounds.Y, bounds.Z)
	if maxDim <= 0 {
		return nil, fmt.Errorf("reveal: empty model bounds %v", bounds)
	}

	scale := cfg.Size / maxDim
	return &Model{
		style:     style,
		cfg:       cfg,
		baseScale: scale,
		height:    bounds.Y * scale,
	}, nil
}

// SetStyle switches technique and restarts the reveal.
func (m *Model) SetStyle(s Style) {
	m.style = s
	m.Restart()
}

// Restart replays the reveal from nothing. The spin carries on.
func (m *Model) Restart() {
	m.elapsed = 0
	m.progress = 0
}

// Update advances the reveal by dt seconds.
func (m *Model) Update(dt float32) {
	if dt <= 0 {
		return
	}
	m.elapsed += dt
	switch m.style {
	case Grow:
		floors := float32(m.cfg.Floors)
		built := min(floors, math32.Floor(m.elapsed/m.cfg.PerFloor))
		m.progress = built / floors
	default:
		m.progress = min(1, m.elapsed*m.cfg.Speed)
	}
	m.angle += dt * m.cfg.Spin
}

func (m *Model) built() float32 { return max(minBuilt, m.progress) }

// Style is the active technique.
func (m *Model) Style() Style { return m.style }

// Progress is the reveal fraction in [0,1].
func (m *Model) Progress() float32 { return m.progress }

// Done reports whether the model is fully revealed.
func (m *Model) Done() bool { return m.progress >= 1 }

// Scale is the model scale this frame. Grow squashes the model vertically;
// clip keeps it uniform.
func (m *Model) Scale() math32.Vector3 {
	b := m.baseScale
	if m.style == Grow {
		return math32.Vec3(b, b*m.built(), b)
	}
	return math32.Vec3(b, b, b)
}

// ClipConstant is the clip plane offset along +Y: it starts below the model
// and rises to the ground plane.
func (m *Model) ClipConstant() float32 {
	start := -m.height - 2
	return math32.Lerp(start, 0, m.built())
}

// Angle is the accumulated turn around Y in radians.
func (m *Model) Angle() float32 { return m.angle }

// Height is the fitted model height.
func (m *Model) Height() float32 { return m.height }
