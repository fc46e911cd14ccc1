// Package tween animates float32 values over time.
//
// All tweens live in a single Pool as flat records addressed by generation
// counted handles. A Pool is driven from one frame loop and is not safe for
// concurrent use.
package tween

// Forever repeats a tween until it is cancelled.
const Forever = -1

// Spec describes one tween. A nil Target makes a pure timer that only fires
// callbacks.
type Spec struct {
	Target   *float32
	From, To float32
	// Relative resolves From as the target's value when the tween begins and
	// treats To as a delta from it.
	Relative bool

	Delay    float32
	Duration float32
	Ease     Ease

	Repeat int // extra iterations; Forever for unbounded
	Yoyo   bool

	OnRepeat   func()
	OnComplete func()
}

// Handle refers to a started tween. The zero Handle is never active.
type Handle struct {
	index int32
	gen   uint32
}

// Valid reports whether h was ever issued by a pool.
func (h Handle) Valid() bool { return h.gen != 0 }

type record struct {
	Spec

	from, to  float32
	wait      float32
	elapsed   float32
	iteration int
	reversed  bool
	begun     bool

	born uint64
	gen  uint32
	live bool
}

// Pool owns every running tween.
type Pool struct {
	records []record
	free    []int32
	tick    uint64
	live    int
}

// NewPool returns an empty pool with room for capacity tweens.
func NewPool(capacity int) *Pool {
	return &Pool{records: make([]record, 0, capacity)}
}

// Start registers a tween and returns its handle. Tweens started while the
// pool is advancing begin on the next Advance.
func (p *Pool) Start(s Spec) Handle {
	if s.Ease == nil {
		s.Ease = Linear
	}

	var idx int32
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		p.records = append(p.records, record{})
		idx = int32(len(p.records) - 1)
	}

	r := &p.records[idx]
	gen := r.gen + 1
	if gen == 0 {
		gen = 1
	}
	*r = record{
		Spec: s,
		from: s.From,
		to:   s.To,
		wait: s.Delay,
		born: p.tick,
		gen:  gen,
		live: true,
	}
	p.live++
	return Handle{index: idx, gen: gen}
}

func (p *Pool) get(h Handle) *record {
	if h.gen == 0 || h.index < 0 || int(h.index) >= len(p.records) {
		return nil
	}
	r := &p.records[h.index]
	if !r.live || r.gen != h.gen {
		return nil
	}
	return r
}

// Active reports whether h still refers to a running tween.
func (p *Pool) Active(h Handle) bool { return p.get(h) != nil }

// Cancel stops a tween without firing its callbacks. Stale handles are ignored.
func (p *Pool) Cancel(h Handle) {
	if p.get(h) == nil {
		return
	}
	p.release(h.index)
}

func (p *Pool) release(idx int32) {
	r := &p.records[idx]
	r.live = false
	r.Spec = Spec{}
	p.free = append(p.free, idx)
	p.live--
}

// Len is the number of running tweens.
func (p *Pool) Len() int { return p.live }

// Clear cancels every tween.
func (p *Pool) Clear() {
	for i := range p.records {
		if p.records[i].live {
			p.release(int32(i))
		}
	}
}

// Advance moves every running tween forward by dt seconds, writes targets
// and fires callbacks. Callbacks may start and cancel tweens.
func (p *Pool) Advance(dt float32) {
	if dt <= 0 {
		return
	}
	p.tick++

	n := len(p.records)
	for i := 0; i < n; i++ {
		r := &p.records[i]
		if !r.live || r.born == p.tick {
			continue
		}
		p.step(int32(i), dt)
	}
}

func (p *Pool) step(idx int32, dt float32) {
	r := &p.records[idx]
	gen := r.gen

	if r.wait > 0 {
		r.wait -= dt
		if r.wait > 0 {
			return
		}
		dt = -r.wait
		r.wait = 0
	}

	if !r.begun {
		r.begun = true
		if r.Relative && r.Target != nil {
			r.from = *r.Target
			r.to = r.from + r.To
		}
	}

	r.elapsed += dt
	for {
		if r.Duration > 0 && r.elapsed < r.Duration {
			r.write(r.elapsed / r.Duration)
			return
		}

		if r.Repeat == Forever || r.iteration < r.Repeat {
			r.write(1)
			r.iteration++
			if r.Duration > 0 {
				r.elapsed -= r.Duration
			} else {
				r.elapsed = 0
			}
			if r.Yoyo {
				r.reversed = !r.reversed
			}
			if fn := r.OnRepeat; fn != nil {
				fn()
				// the callback may have cancelled or recycled this slot, and
				// may have grown the records slice
				r = &p.records[idx]
				if !r.live || r.gen != gen {
					return
				}
			}
			if r.Duration <= 0 {
				return
			}
			continue
		}

		r.write(1)
		done := r.OnComplete
		p.release(idx)
		if done != nil {
			done()
		}
		return
	}
}

func (r *record) write(t float32) {
	if r.Target == nil {
		return
	}
	t = min(max(t, 0), 1)
	if r.reversed {
		t = 1 - t
	}
	e := r.Ease(t)
	*r.Target = r.from + (r.to-r.from)*e
}
