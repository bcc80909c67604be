package app

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/henri123lemoine/trek/internal/config"
	"github.com/henri123lemoine/trek/internal/debug"
	"github.com/henri123lemoine/trek/internal/grid"
	"github.com/henri123lemoine/trek/internal/i18n"
	"github.com/henri123lemoine/trek/internal/prefs"
	"github.com/henri123lemoine/trek/internal/progress"
	"github.com/henri123lemoine/trek/internal/reactive"
	"github.com/henri123lemoine/trek/internal/rowset"
	"github.com/henri123lemoine/trek/internal/theme"
	"github.com/henri123lemoine/trek/internal/typewriter"
	"github.com/henri123lemoine/trek/internal/ui"
)

// Section is a focusable part of the showcase.
type Section int

const (
	SectionIntro Section = iota
	SectionGrid
	SectionProgress
	sectionCount
)

// gridID names the demo grid in saved preferences.
const gridID = "people"

// maxTextWidth caps the typewriter wrap width.
const maxTextWidth = 80

// ringTargets are the values the demo rings animate to.
var ringTargets = []float64{35, 70, 100}

// Model is the main application model.
type Model struct {
	// Configuration
	config *config.Config
	tr     *i18n.Translator
	themes *theme.Service
	store  *prefs.Store
	log    debug.Logger

	// Translated labels
	title         *reactive.Signal[string]
	introTitle    *reactive.Signal[string]
	gridTitle     *reactive.Signal[string]
	progressTitle *reactive.Signal[string]
	detach        []func()

	// Theme broadcast
	themeChanges <-chan theme.Theme
	stopThemes   context.CancelFunc

	// Components
	intro     typewriter.Model
	people    grid.Model[Person]
	rings     []progress.Model
	streaming bool

	// UI
	keys     KeyMap
	help     help.Model
	focus    Section
	theme    theme.Theme
	width    int
	height   int
	status   string
	err      error
	quitting bool
}

// New creates the showcase. store may be nil, which disables persistence.
func New(cfg *config.Config, tr *i18n.Translator, themes *theme.Service, store *prefs.Store) Model {
	current := themes.Theme()
	size := theme.Size(cfg.General.Size)

	people := grid.New(peopleColumns(tr), grid.Options{
		Sortable:  cfg.Grid.Sortable,
		PageSize:  cfg.Grid.PageSize,
		PageSizes: cfg.Grid.PageSizes,
		Log:       debug.Scope("grid"),
	})
	people, _ = people.SetData(grid.Static(demoPeople()))
	people = people.
		SetKeyMap(GridKeyMapFromConfig(&cfg.Keys)).
		SetEmptyText(tr.Translate("grid.empty")).
		SetTheme(current).
		SetSize(size)

	if store != nil && cfg.Grid.Persist {
		if p, err := store.Load(); err == nil {
			if g, ok := p.Grids[gridID]; ok {
				sort := grid.SortState{Key: g.SortKey, Direction: rowset.ParseDirection(g.Direction)}
				people = people.Restore(sort, g.PageSize)
			}
		}
	}

	rings := make([]progress.Model, len(ringTargets))
	for i, target := range ringTargets {
		r := progress.New(progress.Options{
			Duration: millis(cfg.Progress.DurationMS, progress.DefaultDuration),
			FPS:      cfg.Progress.FPS,
			Scale:    cfg.Progress.DotScale,
			Log:      debug.Scope("progress"),
		})
		r, _ = r.SetRadius(float64(cfg.Progress.Radius))
		if cfg.Progress.Color != "" {
			r, _ = r.SetColor(lipgloss.Color(cfg.Progress.Color))
		}
		r, _ = r.SetTheme(current)
		r, _ = r.SetSize(theme.Size(cfg.Progress.Size))
		r, _ = r.SetProgress(target)
		rings[i] = r
	}

	intro := typewriter.New(tr.List("presentation.typewriter"), typewriter.Options{
		Speed: millis(cfg.Typewriter.SpeedMS, typewriter.DefaultSpeed),
	}).SetTheme(current)

	m := Model{
		config: cfg,
		tr:     tr,
		themes: themes,
		store:  store,
		log:    debug.Scope("app"),
		intro:  intro,
		people: people,
		rings:  rings,
		keys:   KeyMapFromConfig(&cfg.Keys),
		help:   help.New(),
		focus:  SectionGrid,
		theme:  current,
	}

	var stop func()
	m.title, stop = tr.SelectTranslate("presentation.mainTitle")
	m.detach = append(m.detach, stop)
	m.introTitle, stop = tr.SelectTranslate("presentation.introTitle")
	m.detach = append(m.detach, stop)
	m.gridTitle, stop = tr.SelectTranslate("presentation.gridTitle")
	m.detach = append(m.detach, stop)
	m.progressTitle, stop = tr.SelectTranslate("presentation.progressTitle")
	m.detach = append(m.detach, stop)

	ctx, cancel := context.WithCancel(context.Background())
	m.themeChanges = themes.Changes(ctx)
	m.stopThemes = cancel

	return m
}

func millis(ms int, fallback time.Duration) time.Duration {
	if ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

// Init starts the typewriter, the grid feed and the theme watch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.intro.Init(),
		m.people.Init(),
		theme.Watch(m.themeChanges),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.intro = m.intro.SetWidth(min(msg.Width, maxTextWidth))
		var cmd tea.Cmd
		m.people, cmd = m.people.Update(msg)
		return m, tea.Batch(cmd, m.checkVisibility())

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case theme.ChangedMsg:
		watch := theme.Watch(m.themeChanges)
		if msg.Theme == m.theme {
			return m, watch
		}
		m.log("theme %s", msg.Theme)
		var cmd tea.Cmd
		m, cmd = m.applyTheme(msg.Theme)
		return m, tea.Batch(cmd, watch)

	case typewriter.TickMsg:
		var cmd tea.Cmd
		m.intro, cmd = m.intro.Update(msg)
		return m, cmd

	case typewriter.DoneMsg:
		if msg.ID == m.intro.ID() {
			m.log("typewriter %d done", msg.ID)
		}
		return m, m.checkVisibility()

	case progress.VisibilityMsg, progress.FrameMsg:
		return m.updateRings(func(r progress.Model) (progress.Model, tea.Cmd) {
			return r.Update(msg)
		})

	case progress.CompleteMsg:
		m.log("ring %d complete at %.0f", msg.ID, msg.Value)
		m.status = m.tr.Translate("progress.complete")
		return m, nil

	case grid.SortChangeMsg:
		m.log("grid %d sort %s %s", msg.ID, msg.ColumnName, msg.Direction)
		m.status = fmt.Sprintf("sorted by %s %s", msg.ColumnName, msg.Direction)
		return m, m.saveGrid()

	case grid.PaginationChangeMsg:
		m.log("grid %d page %d size %d", msg.ID, msg.CurrentPage, msg.PageSize)
		m.status = pageStatus(msg.PaginationChange)
		return m, m.saveGrid()

	case grid.StreamFaultMsg:
		m.log("grid %d stream fault: %v", msg.ID, msg.Err)
		return m, nil

	case ui.SelectionChangedMsg:
		m.log("select %s -> %s", msg.ID, msg.Option.Label)
		return m, nil

	case PrefsSavedMsg:
		if msg.Err != nil {
			m.log("saving prefs: %v", msg.Err)
			m.err = msg.Err
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Stream emissions and anything else the grid listens for.
	var cmd tea.Cmd
	m.people, cmd = m.people.Update(msg)
	return m, cmd
}

func pageStatus(e grid.PaginationChange) string {
	if e.PageSize == 0 {
		return "showing all rows"
	}
	return fmt.Sprintf("page %d · %d per page", e.CurrentPage, e.PageSize)
}

// handleKeyPress handles global keys, then hands the rest to the focused
// section.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// An open filter takes every key.
	if m.focus == SectionGrid && m.people.Filtering() {
		return m.updateGrid(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.NextSection):
		return m.focusSection((m.focus + 1) % sectionCount)

	case key.Matches(msg, m.keys.PrevSection):
		return m.focusSection((m.focus + sectionCount - 1) % sectionCount)

	case key.Matches(msg, m.keys.Theme):
		// The new theme reaches every component through the watch.
		m.themes.Toggle()
		t := m.themes.Theme()
		return m, m.savePrefs(func(p *prefs.Prefs) { p.Theme = string(t) })

	case key.Matches(msg, m.keys.Language):
		return m.cycleLanguage()

	case key.Matches(msg, m.keys.Source):
		return m.toggleSource()

	case key.Matches(msg, m.keys.Replay):
		if m.focus == SectionIntro {
			var cmd tea.Cmd
			m.intro, cmd = m.intro.SetParagraphs(m.tr.List("presentation.typewriter"))
			return m, cmd
		}
		return m.updateRings(progress.Model.Replay)
	}

	if m.focus == SectionGrid {
		return m.updateGrid(msg)
	}
	return m, nil
}

func (m Model) updateGrid(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.people, cmd = m.people.Update(msg)
	return m, cmd
}

// updateRings applies fn to every ring. The slice is copied so earlier
// values of the model keep their rings.
func (m Model) updateRings(fn func(progress.Model) (progress.Model, tea.Cmd)) (Model, tea.Cmd) {
	rings := slices.Clone(m.rings)
	cmds := make([]tea.Cmd, len(rings))
	for i := range rings {
		rings[i], cmds[i] = fn(rings[i])
	}
	m.rings = rings
	return m, tea.Batch(cmds...)
}

func (m Model) focusSection(s Section) (Model, tea.Cmd) {
	m.focus = s
	if s == SectionGrid {
		m.people = m.people.Focus()
	} else {
		m.people = m.people.Blur()
	}
	return m, m.checkVisibility()
}

func (m Model) applyTheme(t theme.Theme) (Model, tea.Cmd) {
	m.theme = t
	m.intro = m.intro.SetTheme(t)
	m.people = m.people.SetTheme(t)
	return m.updateRings(func(r progress.Model) (progress.Model, tea.Cmd) {
		return r.SetTheme(t)
	})
}

// cycleLanguage switches to the next loaded language.
func (m Model) cycleLanguage() (Model, tea.Cmd) {
	langs := m.tr.Languages()
	if len(langs) < 2 {
		return m, nil
	}
	next := langs[(slices.Index(langs, m.tr.Language())+1)%len(langs)]
	if err := m.tr.SetLanguage(next); err != nil {
		m.err = err
		return m, nil
	}
	m.log("language %s", next)

	m.people.Pipeline().SetColumns(peopleColumns(m.tr))
	m.people = m.people.SetEmptyText(m.tr.Translate("grid.empty"))

	var cmd tea.Cmd
	m.intro, cmd = m.intro.SetParagraphs(m.tr.List("presentation.typewriter"))
	return m, tea.Batch(
		cmd,
		m.savePrefs(func(p *prefs.Prefs) { p.Language = next }),
		m.checkVisibility(),
	)
}

// toggleSource switches the grid between the static rows and the live
// stream.
func (m Model) toggleSource() (Model, tea.Cmd) {
	m.streaming = !m.streaming
	src := grid.Static(demoPeople())
	if m.streaming {
		src = grid.FromStream(peopleStream(millis(m.config.Grid.StreamIntervalMS, 1500*time.Millisecond)))
	}
	m.log("streaming %v", m.streaming)

	var cmd tea.Cmd
	m.people, cmd = m.people.SetData(src)
	return m, cmd
}

// checkVisibility reports to every unarmed ring how much of it fits on
// screen.
func (m Model) checkVisibility() tea.Cmd {
	if m.height <= 0 || len(m.rings) == 0 {
		return nil
	}
	ratio := m.ringVisibility()

	var cmds []tea.Cmd
	for _, r := range m.rings {
		if r.Armed() {
			continue
		}
		msg := progress.VisibilityMsg{ID: r.ID(), Ratio: ratio}
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	return tea.Batch(cmds...)
}

// ringVisibility returns the fraction of the ring rows inside the window.
func (m Model) ringVisibility() float64 {
	header, blocks, start := m.layout()

	// Rows above the ring: header, each shown section before the progress
	// one with its blank separator, then the separator and section title.
	top := lipgloss.Height(header)
	for s := start; s < SectionProgress; s++ {
		top += 1 + lipgloss.Height(blocks[s])
	}
	top += 2

	_, rows := m.rings[0].Size()
	if rows == 0 {
		return 0
	}
	visible := m.height - lipgloss.Height(m.renderFooter()) - top
	return math.Max(0, math.Min(1, float64(visible)/float64(rows)))
}

// Close stops every component and background watch.
func (m Model) Close() {
	if m.stopThemes != nil {
		m.stopThemes()
	}
	for _, stop := range m.detach {
		stop()
	}
	m.people.Destroy()
	for _, r := range m.rings {
		r.Destroy()
	}
}

// ShouldQuit returns true if the app should quit.
func (m Model) ShouldQuit() bool {
	return m.quitting
}

// Focus returns the focused section.
func (m Model) Focus() Section {
	return m.focus
}

// Streaming reports whether the grid shows the live stream.
func (m Model) Streaming() bool {
	return m.streaming
}

// saveGrid persists the grid's sort and page size.
func (m Model) saveGrid() tea.Cmd {
	if m.store == nil || !m.config.Grid.Persist {
		return nil
	}
	p := m.people.Pipeline()
	sort, page := p.Sort(), p.Page()
	g := prefs.Grid{
		SortKey:   sort.Key,
		Direction: sort.Direction.String(),
		PageSize:  page.PageSize,
	}
	store := m.store
	return func() tea.Msg {
		return PrefsSavedMsg{Err: store.SetGrid(gridID, g)}
	}
}

func (m Model) savePrefs(fn func(*prefs.Prefs)) tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	return func() tea.Msg {
		return PrefsSavedMsg{Err: store.Update(fn)}
	}
}

// View renders the UI. When everything does not fit, sections above the
// focused one are scrolled off.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header, blocks, start := m.layout()
	body := strings.Join(append([]string{header}, blocks[start:]...), "\n\n")
	footer := m.renderFooter()
	if m.height > 0 {
		body = clip(body, m.height-lipgloss.Height(footer))
	}
	return body + "\n" + footer
}

// Snapshot renders every section fully drawn, for non-interactive output.
func (m Model) Snapshot(width int) string {
	m.width, m.height = width, 0
	m.intro = m.intro.Skip().SetWidth(min(width, maxTextWidth))
	m.people, _ = m.people.Update(tea.WindowSizeMsg{Width: width})
	m.people = m.people.Blur()
	m, _ = m.updateRings(func(r progress.Model) (progress.Model, tea.Cmd) {
		return r.Settle(), nil
	})

	header, blocks, _ := m.layout()
	return strings.Join(append([]string{header}, blocks...), "\n\n")
}

// layout renders the header and the sections, and picks the first section
// to show so that the focused one is on screen.
func (m Model) layout() (header string, blocks []string, start Section) {
	header = m.renderHeader()
	blocks = []string{
		m.renderIntro(),
		m.renderGrid(),
		m.renderProgress(),
	}
	if m.height <= 0 {
		return header, blocks, 0
	}

	used := lipgloss.Height(header) + lipgloss.Height(m.renderFooter())
	for _, b := range blocks {
		used += 1 + lipgloss.Height(b)
	}
	if used <= m.height {
		return header, blocks, 0
	}
	return header, blocks, m.focus
}

func (m Model) renderHeader() string {
	width := max(m.width, ui.MinWidth)
	return ui.Header(m.title.Get(), m.theme, width) + "\n" + ui.Divider(m.theme, width)
}

func (m Model) sectionTitle(s Section, title string) string {
	st := ui.StylesFor(m.theme)
	if m.focus == s {
		return st.Selected.Render(ui.SymbolCursor + " " + title)
	}
	return st.Header.Render("  " + title)
}

func (m Model) renderIntro() string {
	return m.sectionTitle(SectionIntro, m.introTitle.Get()) + "\n" + m.intro.View()
}

func (m Model) renderGrid() string {
	static := ui.Button(ui.ButtonParams{
		Label:   m.tr.Translate("grid.source.static"),
		Theme:   m.theme,
		Size:    theme.Small,
		Focused: !m.streaming,
	})
	stream := ui.Button(ui.ButtonParams{
		Label:   m.tr.Translate("grid.source.stream"),
		Theme:   m.theme,
		Size:    theme.Small,
		Focused: m.streaming,
	})
	sources := lipgloss.JoinHorizontal(lipgloss.Top, static, " ", stream)

	return m.sectionTitle(SectionGrid, m.gridTitle.Get()) + "\n" +
		sources + "\n" +
		m.people.View()
}

func (m Model) renderProgress() string {
	views := make([]string, 0, 2*len(m.rings))
	for i, r := range m.rings {
		if i > 0 {
			views = append(views, "  ")
		}
		views = append(views, r.View())
	}
	return m.sectionTitle(SectionProgress, m.progressTitle.Get()) + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

func (m Model) renderFooter() string {
	st := ui.StylesFor(m.theme)
	var lines []string
	switch {
	case m.err != nil:
		lines = append(lines, st.Error.Render("Error: "+m.err.Error()))
	case m.status != "":
		lines = append(lines, st.Muted.Render(m.status))
	}
	lines = append(lines, st.Help.Render(m.help.View(m.keys)))
	return strings.Join(lines, "\n")
}

// clip keeps the first n lines of s.
func clip(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:max(n, 0)], "\n")
}
