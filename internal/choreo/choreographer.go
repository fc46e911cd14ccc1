// Package choreo runs the reveal choreography of an object field: per-object
// rise tweens laid out by a spatial pattern, the secondary effects a pattern
// carries and the camera cue that frames it.
//
// Reveal state is held in flat per-object slices and composed into the host's
// objects once per frame, so cancelling a run never leaves a half-written
// object behind.
package choreo

import (
	"fmt"
	"io"
	"log/slog"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ivlev/scrollrig/internal/effects"
	"github.com/ivlev/scrollrig/internal/tween"
)

// LoopPause is the idle time between looping reveals.
const LoopPause = 1.0

// Option configures a Choreographer.
type Option func(*Choreographer)

// WithLogger routes debug events to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Choreographer) { c.logger = l }
}

// Choreographer owns every tween that animates the object field. It is driven
// from one frame loop.
type Choreographer struct {
	pool *tween.Pool

	reveal *tween.Group
	fx     *tween.Group
	loop   *tween.Group
	camera *tween.Group

	objects  []Object
	pattern  Pattern
	schedule Schedule
	material effects.Material

	revealY []float32
	jitter  float32
	mix     float32
	runs    int

	cam   cameraCue
	clock float32

	logger *slog.Logger
}

// New builds a choreographer over objects and starts the first run.
func New(objects []Object, pattern Pattern, opts ...Option) (*Choreographer, error) {
	if !pattern.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, pattern)
	}
	pool := tween.NewPool(len(objects) + 8)
	c := &Choreographer{
		pool:    pool,
		reveal:  pool.NewGroup(),
		fx:      pool.NewGroup(),
		loop:    pool.NewGroup(),
		camera:  pool.NewGroup(),
		pattern: pattern,
		cam:     newCameraCue(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.setObjects(objects)
	c.run()
	return c, nil
}

// Pattern is the active pattern.
func (c *Choreographer) Pattern() Pattern { return c.pattern }

// Schedule is the active reveal plan.
func (c *Choreographer) Schedule() Schedule { return c.schedule }

// Material is the surface preset of the active pattern.
func (c *Choreographer) Material() effects.Material { return c.material }

// Emissive is the material emissive color this frame.
func (c *Choreographer) Emissive() colorful.Color {
	return c.material.EmissiveAt(c.mix)
}

// Jitter is the shared vertical bob this frame.
func (c *Choreographer) Jitter() float32 { return c.jitter }

// Runs counts reveals started, including looping re-runs.
func (c *Choreographer) Runs() int { return c.runs }

// Tweens is the number of running tweens.
func (c *Choreographer) Tweens() int { return c.pool.Len() }

// SetPattern switches patterns and restarts the choreography. Selecting the
// active pattern does nothing; it reports whether a switch happened. An
// unknown pattern leaves the running choreography untouched.
func (c *Choreographer) SetPattern(p Pattern) (bool, error) {
	if !p.Valid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownPattern, p)
	}
	if p == c.pattern {
		return false, nil
	}
	c.logger.Debug("pattern switch", "from", c.pattern, "to", p)
	c.pattern = p
	c.schedule = ComputeSchedule(p, c.objects)
	c.run()
	return true, nil
}

// Replay restarts the active pattern from hidden.
func (c *Choreographer) Replay() {
	c.run()
}

// SetObjects replaces the population and restarts the choreography.
func (c *Choreographer) SetObjects(objects []Object) {
	c.cancel()
	c.setObjects(objects)
	c.run()
}

func (c *Choreographer) setObjects(objects []Object) {
	c.objects = objects
	c.revealY = make([]float32, len(objects))
	c.schedule = ComputeSchedule(c.pattern, objects)
	c.logger.Debug("schedule computed", "pattern", c.pattern, "objects", len(objects), "maxDelay", c.schedule.MaxDelay())
}

// Update advances all animations by dt seconds and writes the composed
// offsets into the host objects.
func (c *Choreographer) Update(dt float32) {
	if dt > 0 {
		c.pool.Advance(dt)
		c.clock += dt
	}
	c.cam.follow(c.clock)
	c.compose()
}

// Close cancels every animation.
func (c *Choreographer) Close() {
	c.cancel()
	c.logger.Debug("choreography closed", "pattern", c.pattern)
}

func (c *Choreographer) cancel() {
	c.reveal.CancelAll()
	c.fx.CancelAll()
	c.loop.CancelAll()
	c.camera.CancelAll()
}

func (c *Choreographer) run() {
	c.cancel()
	c.jitter = 0
	c.mix = 0
	c.material = effects.MaterialFor(string(c.pattern))

	c.runReveal()

	maxDelay := c.schedule.MaxDelay()
	effects.ForPattern(string(c.pattern)).Start(c.fx,
		effects.Channels{Jitter: &c.jitter, Mix: &c.mix},
		effects.Params{MaxDelay: maxDelay})

	if c.pattern == Looping {
		c.loop.Start(tween.Spec{
			Duration: maxDelay + LoopPause,
			Repeat:   tween.Forever,
			OnRepeat: func() {
				c.reveal.CancelAll()
				c.runReveal()
			},
		})
	}

	c.cam.cue(c.camera, c.pattern)
	c.compose()
}

// runReveal sinks every object and starts one rise tween each.
func (c *Choreographer) runReveal() {
	for i := range c.revealY {
		c.revealY[i] = Hidden
	}
	for k, idx := range c.schedule.Order {
		t := c.schedule.Timings[k]
		c.reveal.Start(tween.Spec{
			Target:   &c.revealY[idx],
			From:     Hidden,
			To:       Rest,
			Delay:    t.Delay,
			Duration: t.Duration,
			Ease:     tween.OutCubic,
		})
	}
	c.runs++
}

func (c *Choreographer) compose() {
	for i := range c.objects {
		c.objects[i].Offset = c.revealY[i] + c.jitter
	}
}
