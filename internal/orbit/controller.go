// Package orbit implements the focus controller of the model viewer: a camera
// orbiting a pivot that animates between focus targets and yields to user
// drags.
package orbit

import (
	"errors"
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/ivlev/scrollrig/internal/path"
	"github.com/ivlev/scrollrig/internal/shot"
)

// ErrNoTargets is returned when a controller is built without focus targets.
var ErrNoTargets = errors.New("orbit: at least one focus target required")

// State is the controller's interaction state.
type State int

const (
	Idle State = iota
	Animating
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	case Dragging:
		return "dragging"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Target is a focus point and the azimuth the camera settles at.
type Target struct {
	Point    math32.Vector3 `yaml:"point"`
	AngleDeg float32        `yaml:"angle"`
}

// Config holds the camera framing around a target.
type Config struct {
	Radius         float32
	Height         float32
	Duration       float32 // seconds per transition
	CustomAngleDeg float32 // azimuth for custom and saved points
}

// DefaultConfig returns the reference framing.
func DefaultConfig() Config {
	return Config{
		Radius:         10,
		Height:         3,
		Duration:       1,
		CustomAngleDeg: 45,
	}
}

// Kind tells which list a selection points into.
type Kind int

const (
	KindTarget Kind = iota
	KindCustom
	KindSaved
)

// Selection identifies the focused point.
type Selection struct {
	Kind  Kind
	Index int
}

// Controller owns the orbit camera. It is driven from one frame loop.
type Controller struct {
	cfg     Config
	targets []Target
	custom  *math32.Vector3
	saved   []math32.Vector3

	state    State
	selected Selection
	pending  *Selection

	camera math32.Vector3
	pivot  math32.Vector3

	fromPivot, toPivot math32.Vector3
	start, end         spherical
	endOffset          math32.Vector3
	azimuth            float32
	t                  float32
}

// New places the camera at the canonical pose of the first target.
func New(targets []Target, cfg Config) (*Controller, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	if cfg.Radius <= 0 || cfg.Duration <= 0 {
		return nil, fmt.Errorf("orbit: radius and duration must be positive, got %v and %v", cfg.Radius, cfg.Duration)
	}
	if math32.Abs(cfg.Height) > cfg.Radius {
		return nil, fmt.Errorf("orbit: height %v exceeds radius %v", cfg.Height, cfg.Radius)
	}

	c := &Controller{
		cfg:     cfg,
		targets: append([]Target(nil), targets...),
	}
	t := c.targets[0]
	c.pivot = t.Point
	c.camera = t.Point.Add(c.canonical(t.AngleDeg))
	return c, nil
}

// canonical is the resting offset from the pivot for an azimuth.
func (c *Controller) canonical(angleDeg float32) math32.Vector3 {
	return spherical{
		Radius: c.cfg.Radius,
		Phi:    math32.Acos(c.cfg.Height / c.cfg.Radius),
		Theta:  math32.DegToRad(angleDeg),
	}.vector()
}

// State reports the interaction state.
func (c *Controller) State() State { return c.state }

// Selected reports the current focus selection.
func (c *Controller) Selected() Selection { return c.selected }

// Pose is the current camera pose.
func (c *Controller) Pose() shot.Pose {
	return shot.Pose{Position: c.camera, LookAt: c.pivot}
}

// ViewFrame is the orthonormal viewing basis of the current pose.
func (c *Controller) ViewFrame() path.Frame {
	return path.FrameFromTangent(c.pivot.Sub(c.camera))
}

// Targets is the number of selectable indices for Select, including the
// custom point when one is set.
func (c *Controller) Targets() int {
	if c.custom != nil {
		return len(c.targets) + 1
	}
	return len(c.targets)
}

// Select focuses target i. Indices past the target list address the custom
// point when it exists; out-of-range values clamp.
func (c *Controller) Select(i int) {
	i = max(0, min(i, c.Targets()-1))
	if i == len(c.targets) {
		c.request(Selection{Kind: KindCustom})
		return
	}
	c.request(Selection{Kind: KindTarget, Index: i})
}

// SelectCustom focuses the custom point. It reports false when none is set.
func (c *Controller) SelectCustom() bool {
	if c.custom == nil {
		return false
	}
	c.request(Selection{Kind: KindCustom})
	return true
}

// SelectSaved focuses saved point i, clamped. It reports false when nothing
// has been saved.
func (c *Controller) SelectSaved(i int) bool {
	if len(c.saved) == 0 {
		return false
	}
	i = max(0, min(i, len(c.saved)-1))
	c.request(Selection{Kind: KindSaved, Index: i})
	return true
}

// SetCustom sets the custom focus point.
func (c *Controller) SetCustom(p math32.Vector3) {
	c.custom = &p
}

// ClearCustom removes the custom point. A custom selection falls back to the
// last target without moving the camera.
func (c *Controller) ClearCustom() {
	c.custom = nil
	if c.selected.Kind == KindCustom {
		c.selected = Selection{Kind: KindTarget, Index: len(c.targets) - 1}
	}
	if c.pending != nil && c.pending.Kind == KindCustom {
		c.pending = nil
	}
}

// SaveCustom appends the custom point to the saved list and returns its
// index, or -1 when no custom point is set.
func (c *Controller) SaveCustom() int {
	if c.custom == nil {
		return -1
	}
	c.saved = append(c.saved, *c.custom)
	return len(c.saved) - 1
}

// Saved returns a copy of the saved points.
func (c *Controller) Saved() []math32.Vector3 {
	return append([]math32.Vector3(nil), c.saved...)
}

func (c *Controller) request(sel Selection) {
	if c.state == Dragging {
		c.pending = &sel
		return
	}
	c.begin(sel)
}

func (c *Controller) resolve(sel Selection) (math32.Vector3, float32) {
	switch sel.Kind {
	case KindCustom:
		return *c.custom, c.cfg.CustomAngleDeg
	case KindSaved:
		return c.saved[sel.Index], c.cfg.CustomAngleDeg
	default:
		t := c.targets[sel.Index]
		return t.Point, t.AngleDeg
	}
}

// begin starts a transition from the current pose.
func (c *Controller) begin(sel Selection) {
	point, angle := c.resolve(sel)

	c.selected = sel
	c.fromPivot = c.pivot
	c.toPivot = point
	c.endOffset = c.canonical(angle)
	c.end = toSpherical(c.endOffset)

	startOffset := c.camera.Sub(c.fromPivot)
	if startOffset.LengthSquared() < 1e-12 {
		startOffset = c.endOffset
	}
	c.start = toSpherical(startOffset)
	c.azimuth = shortestArc(c.start.Theta, c.end.Theta)

	c.t = 0
	c.state = Animating
}

// Update advances an active transition by dt seconds and returns the pose.
func (c *Controller) Update(dt float32) shot.Pose {
	if c.state != Animating || dt <= 0 {
		return c.Pose()
	}

	c.t += dt / c.cfg.Duration
	if c.t >= 1 {
		c.t = 1
		c.pivot = c.toPivot
		c.camera = c.toPivot.Add(c.endOffset)
		c.state = Idle
		return c.Pose()
	}

	inv := 1 - c.t
	e := 1 - inv*inv*inv

	s := spherical{
		Radius: math32.Lerp(c.start.Radius, c.end.Radius, e),
		Phi:    math32.Lerp(c.start.Phi, c.end.Phi, e),
		Theta:  c.start.Theta + c.azimuth*e,
	}
	c.pivot = c.fromPivot.Lerp(c.toPivot, e)
	c.camera = c.pivot.Add(s.vector())
	return c.Pose()
}

// Progress is the normalized time of the current transition.
func (c *Controller) Progress() float32 { return c.t }

// BeginDrag hands the camera to the user. Any transition in flight stops
// where it is.
func (c *Controller) BeginDrag() {
	c.state = Dragging
}

// Drag follows the user's pose while dragging.
func (c *Controller) Drag(position, target math32.Vector3) {
	if c.state != Dragging {
		return
	}
	c.camera = position
	c.pivot = target
}

// EndDrag keeps the user's resting pose. A selection made during the drag
// starts from that pose.
func (c *Controller) EndDrag(position, target math32.Vector3) {
	if c.state != Dragging {
		return
	}
	c.camera = position
	c.pivot = target
	c.state = Idle

	if c.pending != nil {
		sel := *c.pending
		c.pending = nil
		c.begin(sel)
	}
}
