// Package path builds smooth camera paths from authored control points.
//
// A Curve is a Catmull-Rom spline re-parameterized by arc length, so that a
// progress value u in [0,1] moves along the path at constant speed. Curves are
// immutable after construction and may be shared between goroutines; rebuild
// a new Curve when the control points change.
package path

import (
	"errors"
	"fmt"
	"sort"

	"cogentcore.org/core/math32"
)

// DefaultTension matches the authored road paths.
const DefaultTension = 0.4

// arcDivisions is the resolution of the arc-length lookup table.
const arcDivisions = 200

// tangentDelta is the spline-parameter step of the central difference.
const tangentDelta = 1e-4

var (
	// ErrTooFewPoints is returned when a curve gets fewer than two control points.
	ErrTooFewPoints = errors.New("path: at least 2 control points required")
	// ErrDegenerate is returned when all control points coincide.
	ErrDegenerate = errors.New("path: curve has zero length")
)

// Curve is a Catmull-Rom spline through control points.
type Curve struct {
	points   []math32.Vector3
	closed   bool
	tension  float32
	segments []segment
	lengths  []float32 // cumulative arc length, arcDivisions+1 entries
}

// segment holds the cubic basis c0 + c1*w + c2*w^2 + c3*w^3 of one span.
type segment struct {
	c0, c1, c2, c3 math32.Vector3
	chord          math32.Vector3
}

func (s *segment) at(w float32) math32.Vector3 {
	w2 := w * w
	return s.c0.Add(s.c1.MulScalar(w)).Add(s.c2.MulScalar(w2)).Add(s.c3.MulScalar(w2 * w))
}

// New builds a curve through points. Open curves are clamped to [0,1]; closed
// curves wrap around.
func New(points []math32.Vector3, closed bool, tension float32) (*Curve, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("new curve with %d points: %w", len(points), ErrTooFewPoints)
	}

	c := &Curve{
		points:  append([]math32.Vector3(nil), points...),
		closed:  closed,
		tension: tension,
	}
	c.buildSegments()
	c.buildLengths()

	if c.Length() <= 0 {
		return nil, fmt.Errorf("new curve: %w", ErrDegenerate)
	}
	return c, nil
}

// MustNew is New for authored constants; it panics on error.
func MustNew(points []math32.Vector3, closed bool, tension float32) *Curve {
	c, err := New(points, closed, tension)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Curve) buildSegments() {
	pts := c.points
	l := len(pts)
	n := l - 1
	if c.closed {
		n = l
	}

	c.segments = make([]segment, n)
	for i := 0; i < n; i++ {
		p1 := pts[i]
		p2 := pts[(i+1)%l]

		var p0, p3 math32.Vector3
		if c.closed || i > 0 {
			p0 = pts[(i-1+l)%l]
		} else {
			p0 = pts[0].MulScalar(2).Sub(pts[1])
		}
		if c.closed || i+2 < l {
			p3 = pts[(i+2)%l]
		} else {
			p3 = pts[l-1].MulScalar(2).Sub(pts[l-2])
		}

		t0 := p2.Sub(p0).MulScalar(c.tension)
		t1 := p3.Sub(p1).MulScalar(c.tension)

		c.segments[i] = segment{
			c0:    p1,
			c1:    t0,
			c2:    p1.MulScalar(-3).Add(p2.MulScalar(3)).Sub(t0.MulScalar(2)).Sub(t1),
			c3:    p1.MulScalar(2).Sub(p2.MulScalar(2)).Add(t0).Add(t1),
			chord: p2.Sub(p1),
		}
	}
}

func (c *Curve) buildLengths() {
	c.lengths = make([]float32, arcDivisions+1)
	prev := c.pointAtParam(0)
	var sum float32
	for d := 1; d <= arcDivisions; d++ {
		cur := c.pointAtParam(float32(d) / arcDivisions)
		sum += cur.DistanceTo(prev)
		c.lengths[d] = sum
		prev = cur
	}
}

// locate maps a spline parameter onto a segment index and local weight.
func (c *Curve) locate(t float32) (int, float32) {
	n := len(c.segments)
	p := float32(n) * t
	i := int(math32.Floor(p))
	w := p - float32(i)

	switch {
	case c.closed:
		i = ((i % n) + n) % n
	case i >= n:
		i, w = n-1, 1
	case i < 0:
		i, w = 0, 0
	}
	return i, w
}

func (c *Curve) pointAtParam(t float32) math32.Vector3 {
	i, w := c.locate(t)
	return c.segments[i].at(w)
}

func (c *Curve) tangentAtParam(t float32) math32.Vector3 {
	t1, t2 := t-tangentDelta, t+tangentDelta
	if !c.closed {
		t1 = max(t1, 0)
		t2 = min(t2, 1)
	}

	d := c.pointAtParam(t2).Sub(c.pointAtParam(t1))
	if d.LengthSquared() > 1e-12 {
		return d.Normal()
	}

	// cusp: fall back to the span chord, then to +Z
	i, _ := c.locate(t)
	if ch := c.segments[i].chord; ch.LengthSquared() > 1e-12 {
		return ch.Normal()
	}
	return math32.Vec3(0, 0, 1)
}

// paramAt converts an arc-length fraction into the spline parameter.
func (c *Curve) paramAt(u float32) float32 {
	n := len(c.lengths)
	target := u * c.lengths[n-1]

	i := sort.Search(n, func(k int) bool { return c.lengths[k] > target }) - 1
	if i < 0 {
		return 0
	}
	if i >= n-1 {
		return 1
	}

	before, after := c.lengths[i], c.lengths[i+1]
	span := after - before
	if span <= 0 {
		return float32(i) / float32(n-1)
	}
	return (float32(i) + (target-before)/span) / float32(n-1)
}

// domain reduces u into the curve's parameter range.
func (c *Curve) domain(u float32) float32 {
	if c.closed {
		return Wrap(u)
	}
	return math32.Clamp(u, 0, 1)
}

// PointAt returns the position at arc-length fraction u.
func (c *Curve) PointAt(u float32) math32.Vector3 {
	return c.pointAtParam(c.paramAt(c.domain(u)))
}

// TangentAt returns the unit tangent at arc-length fraction u.
func (c *Curve) TangentAt(u float32) math32.Vector3 {
	return c.tangentAtParam(c.paramAt(c.domain(u)))
}

// FrameAt returns the local frame at arc-length fraction u.
func (c *Curve) FrameAt(u float32) Frame {
	return FrameFromTangent(c.TangentAt(u))
}

// Sample returns the point and frame at u with a single parameter lookup.
func (c *Curve) Sample(u float32) (math32.Vector3, Frame) {
	t := c.paramAt(c.domain(u))
	return c.pointAtParam(t), FrameFromTangent(c.tangentAtParam(t))
}

// Advance moves u forward by d, wrapping on closed curves and stopping at the
// end of open ones.
func (c *Curve) Advance(u, d float32) float32 {
	if c.closed {
		return Wrap(u + d)
	}
	return math32.Clamp(u+d, 0, 1)
}

// Length is the total arc length.
func (c *Curve) Length() float32 {
	return c.lengths[len(c.lengths)-1]
}

// Closed reports whether the curve loops.
func (c *Curve) Closed() bool { return c.closed }

// Tension is the Catmull-Rom tension the curve was built with.
func (c *Curve) Tension() float32 { return c.tension }

// Points returns a copy of the control points.
func (c *Curve) Points() []math32.Vector3 {
	return append([]math32.Vector3(nil), c.points...)
}

// Wrap reduces any progress value into [0,1).
func Wrap(u float32) float32 {
	m := math32.Mod(u, 1)
	if m < 0 {
		m++
	}
	if m >= 1 {
		m = 0
	}
	return m
}
