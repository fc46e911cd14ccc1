package orbit

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func targets() []Target {
	return []Target{
		{Point: math32.Vec3(0, 0, 0), AngleDeg: 0},
		{Point: math32.Vec3(20, 0, 0), AngleDeg: 90},
		{Point: math32.Vec3(0, 5, -30), AngleDeg: 180},
	}
}

func newController(t *testing.T) *Controller {
	t.Helper()
	c, err := New(targets(), DefaultConfig())
	require.NoError(t, err)
	return c
}

func assertVecNear(t *testing.T, want, got math32.Vector3, delta float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, 0, want.DistanceTo(got), delta, msgAndArgs...)
}

func run(c *Controller, seconds float32) {
	const dt = float32(1) / 60
	for elapsed := float32(0); elapsed < seconds; elapsed += dt {
		c.Update(dt)
	}
}

func TestNewValidates(t *testing.T) {
	_, err := New(nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrNoTargets)

	cfg := DefaultConfig()
	cfg.Height = 11
	_, err = New(targets(), cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Duration = 0
	_, err = New(targets(), cfg)
	assert.Error(t, err)
}

func TestInitialPoseIsCanonical(t *testing.T) {
	c := newController(t)
	p := c.Pose()

	assert.Equal(t, Idle, c.State())
	assert.Equal(t, math32.Vec3(0, 0, 0), p.LookAt)
	assert.InDelta(t, 10, p.Position.Length(), 1e-4)
	assert.InDelta(t, 3, p.Position.Y, 1e-4)
	assert.InDelta(t, 0, p.Position.X, 1e-4)
	assert.Greater(t, p.Position.Z, float32(0))
}

func TestTransitionReachesExactEndPose(t *testing.T) {
	c := newController(t)
	c.Select(1)
	assert.Equal(t, Animating, c.State())
	assert.Equal(t, Selection{Kind: KindTarget, Index: 1}, c.Selected())

	run(c, 0.5)
	mid := c.Pose()
	assert.Equal(t, Animating, c.State())
	// radius is 10 at both ends, so it stays 10 throughout
	assert.InDelta(t, 10, mid.Position.DistanceTo(mid.LookAt), 1e-3)

	run(c, 0.6)
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, float32(1), c.Progress())

	end := c.Pose()
	assert.Equal(t, math32.Vec3(20, 0, 0), end.LookAt)
	assertVecNear(t, math32.Vec3(20, 0, 0).Add(c.canonical(90)), end.Position, 1e-6)
	// azimuth 90 puts the camera on +X of the pivot
	assert.InDelta(t, 20+10*math32.Sin(math32.Acos(0.3)), end.Position.X, 1e-3)

	// idle updates do not move the camera
	assert.Equal(t, end, c.Update(0.1))
}

func TestEaseOutCubicPivot(t *testing.T) {
	c := newController(t)
	c.Select(1)
	c.Update(0.5)

	// e = 1 - 0.5^3
	assert.InDelta(t, 20*0.875, c.Pose().LookAt.X, 1e-3)
}

func TestShortestArc(t *testing.T) {
	tests := []struct {
		from, to, want float32
	}{
		{0, math32.Pi / 2, math32.Pi / 2},
		{math32.DegToRad(170), math32.DegToRad(-170), math32.DegToRad(20)},
		{math32.DegToRad(-170), math32.DegToRad(170), math32.DegToRad(-20)},
		{0, 0, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, shortestArc(tt.from, tt.to), 1e-4, "from %v to %v", tt.from, tt.to)
	}
}

func TestTransitionTakesShortArc(t *testing.T) {
	cfg := DefaultConfig()
	c, err := New([]Target{
		{Point: math32.Vec3(0, 0, 0), AngleDeg: 170},
		{Point: math32.Vec3(0, 0, 0), AngleDeg: -170},
	}, cfg)
	require.NoError(t, err)

	c.Select(1)
	c.Update(0.3)
	// the camera passes behind -Z rather than sweeping through +Z
	assert.Less(t, c.Pose().Position.Z, float32(-9))
}

func TestSelectionClamps(t *testing.T) {
	c := newController(t)
	c.Select(99)
	assert.Equal(t, Selection{Kind: KindTarget, Index: 2}, c.Selected())
	c.Select(-4)
	assert.Equal(t, Selection{Kind: KindTarget, Index: 0}, c.Selected())

	c.SetCustom(math32.Vec3(1, 2, 3))
	assert.Equal(t, 4, c.Targets())
	c.Select(99)
	assert.Equal(t, Selection{Kind: KindCustom}, c.Selected())

	run(c, 1.1)
	assert.Equal(t, math32.Vec3(1, 2, 3), c.Pose().LookAt)
}

func TestCustomAndSaved(t *testing.T) {
	c := newController(t)
	assert.False(t, c.SelectCustom())
	assert.False(t, c.SelectSaved(0))
	assert.Equal(t, -1, c.SaveCustom())

	c.SetCustom(math32.Vec3(5, 0, 5))
	assert.Equal(t, 0, c.SaveCustom())
	c.SetCustom(math32.Vec3(-5, 0, 5))
	assert.Equal(t, 1, c.SaveCustom())
	assert.Len(t, c.Saved(), 2)

	assert.True(t, c.SelectSaved(7))
	assert.Equal(t, Selection{Kind: KindSaved, Index: 1}, c.Selected())
	run(c, 1.1)
	assert.Equal(t, math32.Vec3(-5, 0, 5), c.Pose().LookAt)

	assert.True(t, c.SelectCustom())
	c.ClearCustom()
	assert.Equal(t, Selection{Kind: KindTarget, Index: 2}, c.Selected())
	assert.Equal(t, 3, c.Targets())
}

func TestDragKeepsRestingPose(t *testing.T) {
	c := newController(t)
	c.Select(1)
	c.Update(0.2)

	c.BeginDrag()
	assert.Equal(t, Dragging, c.State())

	// no automatic motion while dragging
	before := c.Pose()
	assert.Equal(t, before, c.Update(0.5))

	pos, target := math32.Vec3(3, 4, 5), math32.Vec3(1, 1, 1)
	c.Drag(pos, target)
	assert.Equal(t, pos, c.Pose().Position)

	c.EndDrag(pos, target)
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, pos, c.Pose().Position)
	assert.Equal(t, target, c.Pose().LookAt)
}

func TestSelectionDuringDragIsDeferred(t *testing.T) {
	c := newController(t)
	c.BeginDrag()
	c.Select(2)
	assert.Equal(t, Dragging, c.State())
	assert.Equal(t, Selection{Kind: KindTarget, Index: 0}, c.Selected())

	pos, target := math32.Vec3(0, 8, 8), math32.Vec3(0, 0, 0)
	c.EndDrag(pos, target)
	assert.Equal(t, Animating, c.State())
	assert.Equal(t, Selection{Kind: KindTarget, Index: 2}, c.Selected())

	// the transition starts from the released pose
	first := c.Update(1e-5)
	assertVecNear(t, pos, first.Position, 1e-2)

	run(c, 1.1)
	assert.Equal(t, math32.Vec3(0, 5, -30), c.Pose().LookAt)
}

func TestDragOutsideDraggingIsIgnored(t *testing.T) {
	c := newController(t)
	before := c.Pose()
	c.Drag(math32.Vec3(9, 9, 9), math32.Vector3{})
	c.EndDrag(math32.Vec3(9, 9, 9), math32.Vector3{})
	assert.Equal(t, before, c.Pose())
}

func TestDegenerateStartUsesEndOffset(t *testing.T) {
	c := newController(t)
	c.BeginDrag()
	c.EndDrag(math32.Vec3(0, 0, 0), math32.Vec3(0, 0, 0))

	c.Select(1)
	p := c.Update(0.1)
	for _, v := range []float32{p.Position.X, p.Position.Y, p.Position.Z} {
		assert.False(t, math32.IsNaN(v))
	}
	assert.InDelta(t, 10, p.Position.DistanceTo(p.LookAt), 1e-3)
}

func TestViewFrame(t *testing.T) {
	c := newController(t)
	f := c.ViewFrame()
	dir := c.Pose().LookAt.Sub(c.Pose().Position).Normal()

	assertVecNear(t, dir, f.Tangent, 1e-5)
	assert.InDelta(t, 0, f.Tangent.Dot(f.Normal), 1e-5)
	assert.InDelta(t, 0, f.Tangent.Dot(f.Binormal), 1e-5)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "animating", Animating.String())
	assert.Equal(t, "dragging", Dragging.String())
	assert.Equal(t, "State(9)", State(9).String())
}

func TestTransitionSettlesAtRadius(t *testing.T) {
	c, err := New([]Target{
		{Point: math32.Vec3(0, 0, 0), AngleDeg: 0},
		{Point: math32.Vec3(6, 1, -4), AngleDeg: 120},
	}, DefaultConfig())
	require.NoError(t, err)

	c.BeginDrag()
	c.EndDrag(math32.Vec3(0, 8, 8), math32.Vec3(0, 0, 0))
	require.InDelta(t, math32.Sqrt(128), c.Pose().Position.Length(), 1e-4)

	c.Select(1)
	assert.Equal(t, Animating, c.State())
	c.Update(0.5)
	assert.Equal(t, Animating, c.State())
	p := c.Update(0.5)

	assert.Equal(t, Idle, c.State())
	assert.Equal(t, float32(1), c.Progress())
	assert.Equal(t, math32.Vec3(6, 1, -4), p.LookAt)
	assert.InDelta(t, 10, p.Position.DistanceTo(p.LookAt), 1e-4)
	assert.InDelta(t, 3, p.Position.Y-p.LookAt.Y, 1e-4)
}
