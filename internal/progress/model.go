package progress

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/henri123lemoine/trek/internal/canvas"
	"github.com/henri123lemoine/trek/internal/theme"
	"github.com/henri123lemoine/trek/internal/ui"
)

// VisibilityThreshold is the visible fraction at which a ring arms.
const VisibilityThreshold = 0.1

// VisibilityMsg reports how much of ring ID is on screen, from 0 to 1.
type VisibilityMsg struct {
	ID    int
	Ratio float64
}

// Model is the Bubble Tea progress ring.
type Model struct {
	engine *Engine
	canvas *canvas.Braille

	radius   float64
	progress float64
	color    lipgloss.TerminalColor
	theme    theme.Theme
	size     theme.Size

	armed bool
	err   error
}

// New creates a ring at MinRadius, 0%, default color, light theme and
// medium size.
func New(opts Options) Model {
	return Model{
		engine: NewEngine(opts),
		canvas: canvas.NewBraille(opts.Scale),
		radius: MinRadius,
		color:  DefaultColor,
		theme:  theme.Light,
		size:   theme.Medium,
	}
}

// ID returns the ring's id; VisibilityMsg and FrameMsg are routed by it.
func (m Model) ID() int {
	return m.engine.ID()
}

// Engine exposes the underlying engine.
func (m Model) Engine() *Engine {
	return m.engine
}

// Armed reports whether the ring has been seen and started animating.
func (m Model) Armed() bool {
	return m.armed
}

// Progress returns the target value.
func (m Model) Progress() float64 {
	return m.progress
}

// Err returns the error from the last initialization, if any.
func (m Model) Err() error {
	return m.err
}

// SetProgress sets the target, clamped to [0, 100].
func (m Model) SetProgress(v float64) (Model, tea.Cmd) {
	v = clamp(v)
	if v == m.progress {
		return m, nil
	}
	m.progress = v
	return m.restart()
}

// SetRadius sets the radius. Values below MinRadius are raised to it.
func (m Model) SetRadius(r float64) (Model, tea.Cmd) {
	r = max(r, MinRadius)
	if r == m.radius {
		return m, nil
	}
	m.radius = r
	return m.restart()
}

// SetColor sets the arc color. Nil restores DefaultColor.
func (m Model) SetColor(c lipgloss.TerminalColor) (Model, tea.Cmd) {
	if c == nil {
		c = DefaultColor
	}
	if c == m.color {
		return m, nil
	}
	m.color = c
	return m.restart()
}

// SetTheme sets the theme.
func (m Model) SetTheme(t theme.Theme) (Model, tea.Cmd) {
	if t == m.theme {
		return m, nil
	}
	m.theme = t
	return m.restart()
}

// SetSize sets the label size class.
func (m Model) SetSize(s theme.Size) (Model, tea.Cmd) {
	if s == m.size {
		return m, nil
	}
	m.size = s
	return m.restart()
}

// Init implements tea.Model. Rings wait to be seen before animating.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles visibility and frame messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case VisibilityMsg:
		if msg.ID != m.ID() || m.armed || msg.Ratio < VisibilityThreshold {
			return m, nil
		}
		m.armed = true
		return m.start()
	case FrameMsg:
		return m, m.engine.Update(msg)
	}
	return m, nil
}

// Settle draws the final frame immediately, for one-shot rendering.
func (m Model) Settle() Model {
	m.armed = true
	if m.err = m.initialize(); m.err == nil {
		m.engine.DrawValue(m.progress)
	}
	return m
}

// Replay animates again from zero if the ring is armed.
func (m Model) Replay() (Model, tea.Cmd) {
	return m.restart()
}

// Size returns the terminal cells the ring occupies.
func (m Model) Size() (cols, rows int) {
	side := int(math.Ceil(2 * m.radius))
	return m.canvas.Measure(side, side)
}

// Destroy stops the animation.
func (m Model) Destroy() {
	m.engine.Destroy()
}

// View renders the ring, or a placeholder of the same size before it is
// first seen.
func (m Model) View() string {
	if m.err != nil {
		return ui.StylesFor(m.theme).Error.Render(m.err.Error())
	}
	if !m.armed {
		cols, rows := m.Size()
		label := ui.StylesFor(m.theme).Muted.Render(Label(0))
		return lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, label)
	}
	return m.canvas.Render()
}

// restart re-runs the animation after an input change, but only once the
// ring has been armed.
func (m Model) restart() (Model, tea.Cmd) {
	if !m.armed {
		return m, nil
	}
	return m.start()
}

func (m Model) start() (Model, tea.Cmd) {
	if m.err = m.initialize(); m.err != nil {
		return m, nil
	}
	return m, m.engine.Animate(m.progress)
}

func (m Model) initialize() error {
	return m.engine.Initialize(m.canvas, m.radius, m.color, m.theme, m.size)
}
