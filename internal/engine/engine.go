package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"cogentcore.org/core/math32"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ivlev/scrollrig/internal/choreo"
	"github.com/ivlev/scrollrig/internal/config"
	"github.com/ivlev/scrollrig/internal/effects"
	"github.com/ivlev/scrollrig/internal/orbit"
	"github.com/ivlev/scrollrig/internal/path"
	"github.com/ivlev/scrollrig/internal/renderer"
	"github.com/ivlev/scrollrig/internal/reveal"
	"github.com/ivlev/scrollrig/internal/shot"
	"github.com/ivlev/scrollrig/internal/system"
)

// DefaultModelBounds is the bounding box assumed for the showcase model when
// the host does not supply one.
var DefaultModelBounds = math32.Vec3(10, 20, 10)

type Option func(*Engine)

// WithLogger routes debug events of the engine and its choreographer to l.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithTargets replaces the default focus targets.
func WithTargets(targets []orbit.Target) Option {
	return func(e *Engine) { e.targets = targets }
}

// WithModelBounds sets the bounding box of the revealed model.
func WithModelBounds(bounds math32.Vector3) Option {
	return func(e *Engine) { e.bounds = bounds }
}

// FrameState is everything a host needs to draw one frame. Object offsets
// are written into the host's objects directly.
type FrameState struct {
	Index    int
	Progress float32

	Shot   shot.Name
	Camera shot.Pose // smoothed shot camera
	Target shot.Pose // raw shot pose before smoothing
	Focus  shot.Pose // orbit controller camera
	Stage  shot.Pose // choreography camera cue

	Pattern  choreo.Pattern
	Material effects.Material
	Emissive colorful.Color
	Jitter   float32

	Reveal      float32 // model reveal progress in [0,1]
	ModelScale  math32.Vector3
	ModelClip   float32
	ModelAngle  float32
	FocusState  orbit.State
	FocusSelect orbit.Selection
}

// Engine ties the camera rig, the focus controller, the model reveal and the
// choreography to one frame loop. It is not safe for concurrent use.
type Engine struct {
	cfg config.Config

	track  *path.Sampler
	shot   shot.Name
	shotFn shot.Func
	rig    *renderer.Rig

	focus   *orbit.Controller
	targets []orbit.Target

	model  *reveal.Model
	bounds math32.Vector3

	choreo  *choreo.Choreographer
	objects []choreo.Object

	frame  int
	logger *slog.Logger
}

// New validates the shot, pattern and reveal style of cfg and builds an
// engine over curve and objects. A focus index past the targets clamps to the
// last one. The choreography starts at once.
func New(cfg config.Config, curve *path.Curve, objects []choreo.Object, opts ...Option) (*Engine, error) {
	if curve == nil {
		return nil, fmt.Errorf("engine: nil curve")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		track:   path.NewSampler(curve),
		objects: objects,
		bounds:  DefaultModelBounds,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if len(e.targets) == 0 {
		e.targets = config.DefaultTargets()
	}

	name, err := shot.ParseName(cfg.Shot)
	if err != nil {
		return nil, err
	}
	fn, err := shot.Lookup(name)
	if err != nil {
		return nil, err
	}
	pattern, err := choreo.ParsePattern(cfg.Pattern)
	if err != nil {
		return nil, err
	}
	style, err := reveal.ParseStyle(cfg.RevealStyle)
	if err != nil {
		return nil, err
	}

	focusCfg := orbit.DefaultConfig()
	e.focus, err = orbit.New(e.targets, focusCfg)
	if err != nil {
		return nil, err
	}
	if cfg.Focus > 0 {
		e.focus.Select(cfg.Focus)
		e.focus.Update(focusCfg.Duration)
	}

	e.model, err = reveal.New(style, reveal.DefaultConfig(), e.bounds)
	if err != nil {
		return nil, err
	}

	e.shot, e.shotFn = name, fn
	e.rig = renderer.NewRig(cfg.RigRate)
	e.choreo, err = choreo.New(objects, pattern, choreo.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}

	e.logger.Debug("engine ready", "shot", name, "pattern", pattern, "reveal", style, "objects", len(objects), "targets", len(e.targets))
	return e, nil
}

// Frame advances everything by dt seconds. The camera is evaluated first and
// the choreography second, both for the same progress.
func (e *Engine) Frame(dt, progress float32) FrameState {
	target := e.shotFn(e.track, progress)
	camera := e.rig.Update(dt, target)
	focus := e.focus.Update(dt)

	e.model.Update(dt)
	e.choreo.Update(dt)

	st := FrameState{
		Index:       e.frame,
		Progress:    progress,
		Shot:        e.shot,
		Camera:      camera,
		Target:      target,
		Focus:       focus,
		Stage:       e.choreo.CameraPose(),
		Pattern:     e.choreo.Pattern(),
		Material:    e.choreo.Material(),
		Emissive:    e.choreo.Emissive(),
		Jitter:      e.choreo.Jitter(),
		Reveal:      e.model.Progress(),
		ModelScale:  e.model.Scale(),
		ModelClip:   e.model.ClipConstant(),
		ModelAngle:  e.model.Angle(),
		FocusState:  e.focus.State(),
		FocusSelect: e.focus.Selected(),
	}
	e.frame++
	return st
}

// Shot is the active shot.
func (e *Engine) Shot() shot.Name { return e.shot }

// SetShot switches shots. The rig keeps smoothing from its current pose.
func (e *Engine) SetShot(name shot.Name) error {
	fn, err := shot.Lookup(name)
	if err != nil {
		return err
	}
	if name != e.shot {
		e.logger.Debug("shot switch", "from", e.shot, "to", name)
	}
	e.shot, e.shotFn = name, fn
	return nil
}

// SetPattern switches the choreography. It reports whether a run restarted.
func (e *Engine) SetPattern(p choreo.Pattern) (bool, error) {
	return e.choreo.SetPattern(p)
}

// SetRevealStyle switches the model reveal technique and restarts it.
func (e *Engine) SetRevealStyle(s reveal.Style) error {
	if _, err := reveal.ParseStyle(string(s)); err != nil {
		return err
	}
	e.model.SetStyle(s)
	return nil
}

// Replay restarts the choreography and the model reveal.
func (e *Engine) Replay() {
	e.choreo.Replay()
	e.model.Restart()
}

// Focus exposes the orbit controller for selections and drags.
func (e *Engine) Focus() *orbit.Controller { return e.focus }

// Choreographer exposes the object choreography.
func (e *Engine) Choreographer() *choreo.Choreographer { return e.choreo }

// Objects is the host population the choreography writes into.
func (e *Engine) Objects() []choreo.Object { return e.objects }

// Curve is the camera path.
func (e *Engine) Curve() *path.Curve { return e.track.Curve() }

// Frames is the number of frames produced so far.
func (e *Engine) Frames() int { return e.frame }

// Close cancels every animation.
func (e *Engine) Close() {
	e.choreo.Close()
	e.logger.Debug("engine closed", "frames", e.frame)
}

// ProgressFunc maps a frame index to a progress value.
type ProgressFunc func(frame, frames int) float32

// LinearProgress sweeps progress from 0 to 1 over the run.
func LinearProgress(frame, frames int) float32 {
	if frames <= 1 {
		return 0
	}
	return float32(frame) / float32(frames-1)
}

// Report summarizes a headless run.
type Report struct {
	Build   string
	Shot    shot.Name
	Pattern choreo.Pattern
	Frames  int
	Runs    int
	Wall    time.Duration
	Last    FrameState
	Stats   system.ProcessStats

	// StatsErr is set when process statistics could not be read.
	StatsErr error
}

// FPS is the effective simulation rate.
func (r Report) FPS() float64 {
	if r.Wall <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Wall.Seconds()
}

func (r Report) String() string {
	return fmt.Sprintf(
		"--- [SIMULATION REPORT] ---\n"+
			"Build: %s\n"+
			"Shot: %s, Pattern: %s\n"+
			"Frames: %d (choreography runs: %d)\n"+
			"Total Time: %.3fs\n"+
			"Effective FPS: %.1f\n"+
			"Process: %s\n"+
			"---------------------------\n",
		r.Build, r.Shot, r.Pattern, r.Frames, r.Runs, r.Wall.Seconds(), r.FPS(), r.Stats,
	)
}

// Simulate runs frames frames headless at a fixed step of 1/fps seconds.
// A nil progress function sweeps the path once.
func (e *Engine) Simulate(ctx context.Context, frames, fps int, progress ProgressFunc) (Report, error) {
	if frames < 1 || fps < 1 {
		return Report{}, fmt.Errorf("%w: simulate needs frames and fps >= 1, got %d and %d", config.ErrInvalidConfig, frames, fps)
	}
	if progress == nil {
		progress = LinearProgress
	}

	dt := 1 / float32(fps)
	start := time.Now()
	var last FrameState
	for i := 0; i < frames; i++ {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return Report{}, err
			}
		}
		last = e.Frame(dt, progress(i, frames))
	}

	r := Report{
		Build:   e.cfg.BuildVersion,
		Shot:    e.shot,
		Pattern: e.choreo.Pattern(),
		Frames:  frames,
		Runs:    e.choreo.Runs(),
		Wall:    time.Since(start),
		Last:    last,
	}
	r.Stats, r.StatsErr = system.Snapshot()
	e.logger.Debug("simulation done", "frames", frames, "wall", r.Wall, "runs", r.Runs)
	return r, nil
}
