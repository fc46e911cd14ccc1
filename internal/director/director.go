// Package director bakes shots from the shot library into keyframe takes that
// can be stored, inspected for pops and replayed without the path.
package director

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/ivlev/scrollrig/internal/analyzer"
	"github.com/ivlev/scrollrig/internal/path"
	"github.com/ivlev/scrollrig/internal/shot"
	"golang.org/x/sync/errgroup"
)

// ScenarioVersion is written into every baked scenario.
const ScenarioVersion = "1.0"

// Director generates baked scenarios from a path.
type Director struct {
	Frames   int // keyframes per take
	Workers  int
	Detector analyzer.Detector
	Logger   *slog.Logger
}

// NewDirector creates a new Director with default settings.
func NewDirector(frames int) *Director {
	return &Director{
		Frames:   frames,
		Workers:  runtime.NumCPU(),
		Detector: analyzer.NewJumpDetector(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Bake evaluates every shot over one progress cycle. Takes are baked in
// parallel; the curve is shared read-only and each take samples through its
// own Sampler.
func (d *Director) Bake(ctx context.Context, curve *path.Curve, shots []shot.Name) (*Scenario, error) {
	if len(shots) == 0 {
		return nil, fmt.Errorf("no shots to bake")
	}
	if d.Frames < 3 {
		return nil, fmt.Errorf("need at least 3 frames per take, got %d", d.Frames)
	}
	for _, name := range shots {
		if _, err := shot.Lookup(name); err != nil {
			return nil, err
		}
	}

	takes := make([]Take, len(shots))

	g, ctx := errgroup.WithContext(ctx)
	if d.Workers > 0 {
		g.SetLimit(d.Workers)
	}
	for i, name := range shots {
		g.Go(func() error {
			take, err := d.bakeTake(ctx, curve, name)
			if err != nil {
				return fmt.Errorf("bake %s: %w", name, err)
			}
			take.ID = i + 1
			takes[i] = take
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Scenario{
		Version: ScenarioVersion,
		Takes:   takes,
	}, nil
}

func (d *Director) bakeTake(ctx context.Context, curve *path.Curve, name shot.Name) (Take, error) {
	fn, err := shot.Lookup(name)
	if err != nil {
		return Take{}, err
	}

	sampler := path.NewSampler(curve)
	take := Take{
		Shot:      name,
		Closed:    curve.Closed(),
		Frames:    d.Frames,
		Keyframes: make([]Keyframe, d.Frames),
	}
	for i := range take.Keyframes {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return Take{}, err
			}
		}
		u := float32(i) / float32(d.Frames)
		pose := fn(sampler, u)
		take.Keyframes[i] = Keyframe{Progress: u, Position: pose.Position, LookAt: pose.LookAt}
	}

	if d.Detector != nil {
		pops, err := d.Detector.Detect(take.Samples())
		if err != nil {
			return Take{}, fmt.Errorf("analyze: %w", err)
		}
		take.Pops = pops
	}

	d.Logger.Debug("take baked", "shot", name, "frames", d.Frames, "pops", len(take.Pops))
	return take, nil
}
