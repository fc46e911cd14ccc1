package engine

import (
	"context"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/scrollrig/internal/choreo"
	"github.com/ivlev/scrollrig/internal/config"
	"github.com/ivlev/scrollrig/internal/orbit"
	"github.com/ivlev/scrollrig/internal/path"
	"github.com/ivlev/scrollrig/internal/reveal"
	"github.com/ivlev/scrollrig/internal/shot"
)

func road(t *testing.T) *path.Curve {
	t.Helper()
	c, err := path.New([]math32.Vector3{
		math32.Vec3(0, 0, 0),
		math32.Vec3(12, 0.5, 2),
		math32.Vec3(14, 0, 14),
		math32.Vec3(2, -0.5, 12),
	}, true, path.DefaultTension)
	require.NoError(t, err)
	return c
}

func defaults(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func newEngine(t *testing.T, cfg config.Config) (*Engine, []choreo.Object) {
	t.Helper()
	objects := choreo.NewGrid(3, 3, 0, nil)
	e, err := New(cfg, road(t), objects)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e, objects
}

func TestNewFailsFast(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   error
	}{
		{"shot", func(c *config.Config) { c.Shot = "dolly" }, shot.ErrUnknownShot},
		{"pattern", func(c *config.Config) { c.Pattern = "zigzag" }, choreo.ErrUnknownPattern},
		{"reveal", func(c *config.Config) { c.RevealStyle = "fade" }, reveal.ErrUnknownStyle},
		{"focus", func(c *config.Config) { c.Focus = -1 }, config.ErrInvalidConfig},
		{"range", func(c *config.Config) { c.RigRate = 0 }, config.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults(t)
			tt.mutate(&cfg)
			_, err := New(cfg, road(t), nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := New(defaults(t), nil, nil)
	assert.Error(t, err)
}

func TestFirstFrameSnapsCamera(t *testing.T) {
	e, _ := newEngine(t, defaults(t))

	st := e.Frame(1.0/60, 0.3)
	want := shot.TrackFollow(road(t), 0.3)
	assert.InDelta(t, 0, want.Position.DistanceTo(st.Camera.Position), 1e-4)
	assert.Equal(t, st.Target, st.Camera)
	assert.Equal(t, 0, st.Index)
	assert.Equal(t, float32(0.3), st.Progress)
	assert.Equal(t, choreo.WaveZ, st.Pattern)
	assert.Equal(t, 1, e.Frames())
}

func TestShotSwitchDoesNotSnap(t *testing.T) {
	e, _ := newEngine(t, defaults(t))
	e.Frame(1.0/60, 0.2)

	require.NoError(t, e.SetShot(shot.Crane))
	assert.Equal(t, shot.Crane, e.Shot())
	st := e.Frame(1.0/60, 0.2)

	crane := shot.OverheadCrane(road(t), 0.2)
	assert.InDelta(t, 0, crane.Position.DistanceTo(st.Target.Position), 1e-4)
	assert.Greater(t, st.Camera.Position.DistanceTo(crane.Position), float32(0.01))

	assert.ErrorIs(t, e.SetShot("dolly"), shot.ErrUnknownShot)
	assert.Equal(t, shot.Crane, e.Shot())
}

func TestSetPattern(t *testing.T) {
	e, objects := newEngine(t, defaults(t))
	e.Frame(2, 0)
	for _, o := range objects {
		assert.Equal(t, choreo.Rest, o.Offset)
	}

	changed, err := e.SetPattern(choreo.WaveZ)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = e.SetPattern(choreo.Night)
	require.NoError(t, err)
	assert.True(t, changed)
	for _, o := range objects {
		assert.Equal(t, choreo.Hidden, o.Offset)
	}

	_, err = e.SetPattern("zigzag")
	assert.ErrorIs(t, err, choreo.ErrUnknownPattern)
}

func TestFocusIndexIsApplied(t *testing.T) {
	cfg := defaults(t)
	cfg.Focus = 2
	e, _ := newEngine(t, cfg)

	assert.Equal(t, orbit.Selection{Kind: orbit.KindTarget, Index: 2}, e.Focus().Selected())
	assert.Equal(t, orbit.Idle, e.Focus().State())

	st := e.Frame(1.0/60, 0)
	assert.Equal(t, config.DefaultTargets()[2].Point, st.Focus.LookAt)
}

func TestFocusIndexClamps(t *testing.T) {
	cfg := defaults(t)
	cfg.Focus = 9
	e, _ := newEngine(t, cfg)

	last := len(config.DefaultTargets()) - 1
	assert.Equal(t, orbit.Selection{Kind: orbit.KindTarget, Index: last}, e.Focus().Selected())
	st := e.Frame(1.0/60, 0)
	assert.Equal(t, config.DefaultTargets()[last].Point, st.Focus.LookAt)
}

func TestRevealStyle(t *testing.T) {
	e, _ := newEngine(t, defaults(t))
	st := e.Frame(0.6, 0)
	assert.InDelta(t, 3.0/12, st.Reveal, 1e-6)

	require.NoError(t, e.SetRevealStyle(reveal.Clip))
	st = e.Frame(1, 0)
	assert.InDelta(t, 0.45, st.Reveal, 1e-6)
	assert.ErrorIs(t, e.SetRevealStyle("fade"), reveal.ErrUnknownStyle)

	e.Replay()
	st = e.Frame(0.5, 0)
	assert.InDelta(t, 0.225, st.Reveal, 1e-6)
}

func TestSimulate(t *testing.T) {
	cfg := defaults(t)
	cfg.BuildVersion = "test"
	e, objects := newEngine(t, cfg)

	var seen []float32
	report, err := e.Simulate(context.Background(), 120, 60, func(frame, frames int) float32 {
		p := LinearProgress(frame, frames)
		seen = append(seen, p)
		return p
	})
	require.NoError(t, err)

	assert.Equal(t, 120, report.Frames)
	assert.Equal(t, 119, report.Last.Index)
	assert.Equal(t, float32(1), report.Last.Progress)
	assert.Equal(t, float32(0), seen[0])
	assert.Equal(t, 1, report.Runs)
	assert.True(t, report.Wall > 0)
	assert.Contains(t, report.String(), "Build: test")
	t.Logf("\n%s", report)

	for _, o := range objects {
		assert.Equal(t, choreo.Rest, o.Offset)
	}
}

func TestSimulateValidatesAndCancels(t *testing.T) {
	e, _ := newEngine(t, defaults(t))

	_, err := e.Simulate(context.Background(), 0, 60, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Simulate(ctx, 10, 60, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCloseCancelsAnimations(t *testing.T) {
	cfg := defaults(t)
	cfg.Pattern = string(choreo.Looping)
	e, _ := newEngine(t, cfg)
	assert.Positive(t, e.Choreographer().Tweens())

	e.Close()
	assert.Equal(t, 0, e.Choreographer().Tweens())
}
