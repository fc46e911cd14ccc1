// Package tui drives an engine from a terminal frame loop and shows the
// per-frame state.
package tui

import (
	"fmt"
	"strings"
	"time"

	"cogentcore.org/core/math32"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ivlev/scrollrig/internal/choreo"
	"github.com/ivlev/scrollrig/internal/engine"
	"github.com/ivlev/scrollrig/internal/path"
	"github.com/ivlev/scrollrig/internal/shot"
)

// DefaultSpeed is the progress advanced per second of playback.
const DefaultSpeed = 0.05

type tickMsg time.Time

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f2c14e"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8f9a")).Width(10)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e6e6e6"))
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#4ea8f2")).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5c6370"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a6cff"))
)

type Model struct {
	engine *engine.Engine
	dt     float32

	progress float32
	speed    float32
	paused   bool
	focus    int

	last engine.FrameState
	err  error
}

// New returns a model that steps e at a fixed rate of fps frames per second.
func New(e *engine.Engine, fps int) Model {
	return Model{
		engine: e,
		dt:     1 / float32(max(fps, 1)),
		speed:  DefaultSpeed,
		focus:  e.Focus().Selected().Index,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Duration(float64(m.dt)*float64(time.Second)), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m = m.step()
		return m, m.tick()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeySpace:
			m.paused = !m.paused
		case tea.KeyRight:
			m.progress += 0.01
		case tea.KeyLeft:
			m.progress -= 0.01
		case tea.KeyRunes:
			return m.handleRune(msg.String())
		}
	}
	return m, nil
}

func (m Model) handleRune(key string) (tea.Model, tea.Cmd) {
	m.err = nil
	switch key {
	case "q":
		return m, tea.Quit
	case "s":
		m.err = m.engine.SetShot(shot.Next(m.engine.Shot()))
	case "p":
		_, m.err = m.engine.SetPattern(nextPattern(m.engine.Choreographer().Pattern()))
	case "r":
		m.engine.Replay()
	case "f":
		m.focus = (m.focus + 1) % m.engine.Focus().Targets()
		m.engine.Focus().Select(m.focus)
	case "+":
		m.speed = min(m.speed*2, 1)
	case "-":
		m.speed = max(m.speed/2, 0.001)
	}
	return m, nil
}

// step renders one frame. Paused playback keeps animating at a fixed
// progress.
func (m Model) step() Model {
	if !m.paused {
		m.progress += m.speed * m.dt
	}
	m.last = m.engine.Frame(m.dt, m.progress)
	return m
}

func nextPattern(p choreo.Pattern) choreo.Pattern {
	all := choreo.Patterns()
	for i, q := range all {
		if q == p {
			return all[(i+1)%len(all)]
		}
	}
	return choreo.DefaultPattern
}

func vec(v math32.Vector3) string {
	return fmt.Sprintf("(%7.2f %7.2f %7.2f)", v.X, v.Y, v.Z)
}

func bar(frac float32, width int) string {
	frac = math32.Clamp(frac, 0, 1)
	n := int(frac * float32(width))
	return barStyle.Render(strings.Repeat("█", n)) + strings.Repeat("·", width-n)
}

func (m Model) revealed() (up, total int) {
	for _, o := range m.engine.Objects() {
		if o.Offset >= choreo.Rest {
			up++
		}
	}
	return up, len(m.engine.Objects())
}

func (m Model) View() string {
	st := m.last
	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("scrollrig") + "\n\n")
	b.WriteString(row("frame", fmt.Sprintf("%d", st.Index)))
	b.WriteString(row("progress", fmt.Sprintf("%s %.3f", bar(path.Wrap(m.progress), 30), m.progress)))
	b.WriteString(row("shot", string(m.engine.Shot())))
	b.WriteString(row("camera", vec(st.Camera.Position)))
	b.WriteString(row("look", vec(st.Camera.LookAt)))
	b.WriteString(row("pattern", string(st.Pattern)))

	up, total := m.revealed()
	frac := float32(0)
	if total > 0 {
		frac = float32(up) / float32(total)
	}
	b.WriteString(row("revealed", fmt.Sprintf("%s %d/%d", bar(frac, 30), up, total)))
	b.WriteString(row("emissive", st.Emissive.Clamped().Hex()))
	b.WriteString(row("model", fmt.Sprintf("%s %.2f", bar(st.Reveal, 30), st.Reveal)))
	b.WriteString(row("focus", fmt.Sprintf("%s #%d %s", st.FocusState, st.FocusSelect.Index+1, vec(st.Focus.Position))))
	if m.paused {
		b.WriteString(row("", "paused"))
	}
	if m.err != nil {
		b.WriteString(row("error", m.err.Error()))
	}

	help := helpStyle.Render("s shot · p pattern · f focus · r replay · space pause · ←/→ scrub · +/- speed · q quit")
	return panelStyle.Render(b.String()) + "\n" + help + "\n"
}

// Run starts the interactive loop and blocks until the user quits.
func Run(e *engine.Engine, fps int) error {
	_, err := tea.NewProgram(New(e, fps), tea.WithAltScreen()).Run()
	return err
}
