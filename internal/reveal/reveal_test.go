package reveal

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyle(t *testing.T) {
	s, err := ParseStyle("grow")
	require.NoError(t, err)
	assert.Equal(t, Grow, s)

	_, err = ParseStyle("fade")
	assert.ErrorIs(t, err, ErrUnknownStyle)

	_, err = New("fade", DefaultConfig(), math32.Vec3(1, 1, 1))
	assert.ErrorIs(t, err, ErrUnknownStyle)
}

func TestNewValidates(t *testing.T) {
	_, err := New(Grow, DefaultConfig(), math32.Vector3{})
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.Floors = 0
	_, err = New(Grow, cfg, math32.Vec3(1, 1, 1))
	assert.Error(t, err)
}

func TestFit(t *testing.T) {
	m, err := New(Clip, DefaultConfig(), math32.Vec3(4, 11, 2))
	require.NoError(t, err)
	assert.InDelta(t, 22, m.Height(), 1e-5)
	assert.Equal(t, math32.Vec3(2, 2, 2), m.Scale())
}

func TestGrowStepsByFloor(t *testing.T) {
	m, err := New(Grow, DefaultConfig(), math32.Vec3(11, 11, 11))
	require.NoError(t, err)

	// nothing built yet keeps a sliver of height
	assert.InDelta(t, 2*0.001, m.Scale().Y, 1e-7)

	m.Update(0.1)
	assert.Equal(t, float32(0), m.Progress())

	m.Update(0.1) // 0.2 s: one floor
	assert.InDelta(t, 1.0/12, m.Progress(), 1e-6)
	assert.InDelta(t, 2.0/12, m.Scale().Y, 1e-6)

	m.Update(0.5) // 0.7 s: three floors
	assert.InDelta(t, 3.0/12, m.Progress(), 1e-6)

	m.Update(10)
	assert.Equal(t, float32(1), m.Progress())
	assert.True(t, m.Done())
}

func TestClipRisesLinearly(t *testing.T) {
	m, err := New(Clip, DefaultConfig(), math32.Vec3(22, 10, 22))
	require.NoError(t, err)

	assert.InDelta(t, -12, m.ClipConstant(), 0.02)

	m.Update(1)
	assert.InDelta(t, 0.45, m.Progress(), 1e-6)
	assert.InDelta(t, -12*0.55, m.ClipConstant(), 1e-4)

	m.Update(2)
	assert.Equal(t, float32(1), m.Progress())
	assert.Equal(t, float32(0), m.ClipConstant())
}

func TestSpinAndRestart(t *testing.T) {
	m, err := New(Grow, DefaultConfig(), math32.Vec3(1, 1, 1))
	require.NoError(t, err)
	m.Update(2)
	m.Update(-1)
	assert.InDelta(t, 0.2, m.Angle(), 1e-6)

	m.SetStyle(Clip)
	assert.Equal(t, Clip, m.Style())
	assert.Equal(t, float32(0), m.Progress())
	assert.InDelta(t, 0.2, m.Angle(), 1e-6)
}
