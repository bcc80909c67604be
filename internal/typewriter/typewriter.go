// Package typewriter reveals paragraphs of text one rune at a time.
package typewriter

import (
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/henri123lemoine/trek/internal/theme"
	"github.com/henri123lemoine/trek/internal/ui"
)

const (
	// DefaultSpeed is the minimum delay between two runes.
	DefaultSpeed = 20 * time.Millisecond
	frameRate    = time.Second / 60
	cursor       = "▌"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg advances the typewriter by one frame.
type TickMsg struct {
	ID   int
	Run  int
	Time time.Time
}

// DoneMsg is sent once every paragraph has been typed.
type DoneMsg struct {
	ID int
}

// Options configures a Model.
type Options struct {
	// Speed is the delay between runes. Zero means DefaultSpeed.
	Speed time.Duration
	// Clock returns the current time. Nil means time.Now.
	Clock func() time.Time
}

// Model types its paragraphs in order, each starting once the previous
// one is complete.
type Model struct {
	id  int
	run int

	paragraphs [][]rune
	para       int
	pos        int
	last       time.Time

	speed   time.Duration
	now     func() time.Time
	stopped bool

	theme theme.Theme
	width int
}

// New creates a typewriter over paragraphs. It starts typing on Init.
func New(paragraphs []string, opts Options) Model {
	m := Model{
		id:    nextID(),
		speed: opts.Speed,
		now:   opts.Clock,
		theme: theme.Light,
	}
	if m.speed <= 0 {
		m.speed = DefaultSpeed
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.paragraphs = toRunes(paragraphs)
	return m
}

func toRunes(paragraphs []string) [][]rune {
	out := make([][]rune, len(paragraphs))
	for i, p := range paragraphs {
		out[i] = []rune(p)
	}
	return out
}

// ID returns the typewriter's id.
func (m Model) ID() int {
	return m.id
}

// Done reports whether every paragraph has been typed.
func (m Model) Done() bool {
	return m.para >= len(m.paragraphs)
}

// Text returns the paragraphs typed so far, the last one possibly partial.
func (m Model) Text() []string {
	out := make([]string, 0, min(m.para+1, len(m.paragraphs)))
	for i, p := range m.paragraphs {
		switch {
		case i < m.para:
			out = append(out, string(p))
		case i == m.para:
			out = append(out, string(p[:m.pos]))
		}
	}
	return out
}

// SetParagraphs replaces the text and types it again from the start.
func (m Model) SetParagraphs(paragraphs []string) (Model, tea.Cmd) {
	m.paragraphs = toRunes(paragraphs)
	m.para, m.pos = 0, 0
	m.last = time.Time{}
	m.stopped = false
	m.run++
	return m, m.Init()
}

// SetTheme changes the text colors.
func (m Model) SetTheme(t theme.Theme) Model {
	m.theme = t
	return m
}

// SetWidth sets the wrap width. Zero disables wrapping.
func (m Model) SetWidth(w int) Model {
	m.width = w
	return m
}

// Skip reveals all text at once.
func (m Model) Skip() Model {
	m.para, m.pos = len(m.paragraphs), 0
	m.run++
	return m
}

// Destroy stops typing. Pending ticks are ignored.
func (m Model) Destroy() Model {
	m.stopped = true
	m.run++
	return m
}

// Init schedules the first frame. With nothing to type it reports done
// straight away.
func (m Model) Init() tea.Cmd {
	if m.stopped {
		return nil
	}
	if m.Done() {
		return m.done()
	}
	return m.tick()
}

// Update handles TickMsg.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	t, ok := msg.(TickMsg)
	if !ok || t.ID != m.id || t.Run != m.run || m.stopped || m.Done() {
		return m, nil
	}

	now := m.now()
	if m.last.IsZero() {
		m.last = now
	}
	if now.Sub(m.last) >= m.speed {
		m.advance()
		m.last = now
	}

	if m.Done() {
		return m, m.done()
	}
	return m, m.tick()
}

// advance reveals the next rune, moving on to the next non-empty
// paragraph when the current one is complete.
func (m *Model) advance() {
	if m.pos < len(m.paragraphs[m.para]) {
		m.pos++
	}
	for m.para < len(m.paragraphs) && m.pos >= len(m.paragraphs[m.para]) {
		m.para++
		m.pos = 0
	}
}

func (m Model) done() tea.Cmd {
	id := m.id
	return func() tea.Msg { return DoneMsg{ID: id} }
}

func (m Model) tick() tea.Cmd {
	id, run := m.id, m.run
	return tea.Tick(frameRate, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Run: run, Time: t}
	})
}

// View renders the typed paragraphs with a cursor while typing.
func (m Model) View() string {
	pal := ui.PaletteFor(m.theme)
	style := lipgloss.NewStyle().Foreground(pal.Text)
	if m.width > 0 {
		style = style.Width(m.width)
	}

	text := m.Text()
	if !m.Done() && !m.stopped {
		if len(text) == 0 {
			text = []string{""}
		}
		text[len(text)-1] += lipgloss.NewStyle().Foreground(pal.Primary).Render(cursor)
	}

	rendered := make([]string, len(text))
	for i, p := range text {
		rendered[i] = style.Render(p)
	}
	return strings.Join(rendered, "\n\n")
}
