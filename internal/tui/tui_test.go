package tui

import (
	"testing"
	"time"

	"cogentcore.org/core/math32"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/scrollrig/internal/choreo"
	"github.com/ivlev/scrollrig/internal/config"
	"github.com/ivlev/scrollrig/internal/engine"
	"github.com/ivlev/scrollrig/internal/path"
	"github.com/ivlev/scrollrig/internal/shot"
)

func newModel(t *testing.T) (Model, *engine.Engine) {
	t.Helper()
	c, err := path.New([]math32.Vector3{
		math32.Vec3(0, 0, 0),
		math32.Vec3(12, 0.5, 2),
		math32.Vec3(14, 0, 14),
		math32.Vec3(2, -0.5, 12),
	}, true, path.DefaultTension)
	require.NoError(t, err)

	cfg, err := config.Load()
	require.NoError(t, err)
	e, err := engine.New(cfg, c, choreo.NewGrid(3, 3, 0, nil))
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return New(e, 60), e
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTickAdvancesFrames(t *testing.T) {
	m, e := newModel(t)
	assert.NotNil(t, m.Init())

	for i := 0; i < 3; i++ {
		var cmd tea.Cmd
		m, cmd = send(m, tickMsg(time.Now()))
		assert.NotNil(t, cmd)
	}
	assert.Equal(t, 3, e.Frames())
	assert.Equal(t, 2, m.last.Index)
	assert.InDelta(t, 3*DefaultSpeed/60, m.progress, 1e-6)
}

func TestPauseHoldsProgress(t *testing.T) {
	m, e := newModel(t)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = send(m, tickMsg(time.Now()))

	assert.Equal(t, float32(0), m.progress)
	assert.Equal(t, 1, e.Frames())
	assert.Contains(t, m.View(), "paused")
}

func TestKeysSwitchShotAndPattern(t *testing.T) {
	m, e := newModel(t)

	m, _ = send(m, runes("s"))
	assert.Equal(t, shot.Orbit, e.Shot())

	m, _ = send(m, runes("p"))
	assert.Equal(t, choreo.Radial, e.Choreographer().Pattern())

	m, _ = send(m, runes("f"))
	assert.Equal(t, 1, e.Focus().Selected().Index)
	assert.NoError(t, m.err)

	m, _ = send(m, tickMsg(time.Now()))
	view := m.View()
	assert.Contains(t, view, string(shot.Orbit))
	assert.Contains(t, view, string(choreo.Radial))
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t)

	_, cmd := send(m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = send(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestNextPatternWraps(t *testing.T) {
	all := choreo.Patterns()
	assert.Equal(t, all[0], nextPattern(all[len(all)-1]))
	assert.Equal(t, choreo.DefaultPattern, nextPattern("unknown"))
}
