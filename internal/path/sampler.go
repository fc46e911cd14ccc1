package path

import "cogentcore.org/core/math32"

// Track is what shot functions read from. Both *Curve and *Sampler satisfy it.
type Track interface {
	PointAt(u float32) math32.Vector3
	FrameAt(u float32) Frame
	Advance(u, d float32) float32
}

var (
	_ Track = (*Curve)(nil)
	_ Track = (*Sampler)(nil)
)

const samplerSlots = 4

type sample struct {
	u     float32
	point math32.Vector3
	frame Frame
	valid bool
}

// Sampler memoizes the last few samples of a curve so that repeated
// evaluations at the same u within a frame reuse the derived frame.
// A Sampler is owned by one frame loop and is not safe for concurrent use.
type Sampler struct {
	curve *Curve
	slots [samplerSlots]sample
	next  int

	hits, misses int
}

// NewSampler wraps c.
func NewSampler(c *Curve) *Sampler {
	return &Sampler{curve: c}
}

// Curve returns the wrapped curve.
func (s *Sampler) Curve() *Curve { return s.curve }

func (s *Sampler) lookup(u float32) *sample {
	for i := range s.slots {
		if s.slots[i].valid && s.slots[i].u == u {
			s.hits++
			return &s.slots[i]
		}
	}
	s.misses++
	slot := &s.slots[s.next]
	s.next = (s.next + 1) % samplerSlots
	slot.point, slot.frame = s.curve.Sample(u)
	slot.u = u
	slot.valid = true
	return slot
}

// PointAt implements Track.
func (s *Sampler) PointAt(u float32) math32.Vector3 { return s.lookup(u).point }

// FrameAt implements Track.
func (s *Sampler) FrameAt(u float32) Frame { return s.lookup(u).frame }

// Advance implements Track.
func (s *Sampler) Advance(u, d float32) float32 { return s.curve.Advance(u, d) }

// Stats reports cache hits and misses since creation.
func (s *Sampler) Stats() (hits, misses int) { return s.hits, s.misses }
