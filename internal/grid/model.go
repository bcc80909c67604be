package grid

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/henri123lemoine/trek/internal/rowset"
	"github.com/henri123lemoine/trek/internal/theme"
	"github.com/henri123lemoine/trek/internal/ui"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// maxDots is the page count above which the page indicator switches from
// dots to "n/m".
const maxDots = 10

// outbox collects pipeline events between Update calls.
type outbox struct {
	msgs []tea.Msg
}

func (o *outbox) push(msg tea.Msg) {
	o.msgs = append(o.msgs, msg)
}

func (o *outbox) drain() tea.Cmd {
	if len(o.msgs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(o.msgs))
	for i, msg := range o.msgs {
		cmds[i] = func() tea.Msg { return msg }
	}
	o.msgs = nil
	return tea.Batch(cmds...)
}

// Model is the Bubble Tea grid component.
type Model[T any] struct {
	id       int
	pipeline *Pipeline[T]
	out      *outbox

	keys      KeyMap
	help      help.Model
	pager     paginator.Model
	sizes     ui.Select
	filter    textinput.Model
	filtering bool
	focused   bool
	column    int
	empty     string

	theme theme.Theme
	size  theme.Size
	width int
}

// New creates a grid over columns.
func New[T any](columns []Column[T], opts Options) Model[T] {
	filter := textinput.New()
	filter.Placeholder = "filter..."
	filter.CharLimit = 50

	pageSizes := opts.PageSizes
	if len(pageSizes) == 0 {
		pageSizes = DefaultPageSizes
	}
	options := make([]ui.Option, 0, len(pageSizes)+1)
	for _, size := range pageSizes {
		options = append(options, ui.Option{Value: size, Label: fmt.Sprintf("%d / page", size)})
	}
	options = append(options, ui.Option{Value: 0, Label: "all"})
	sizes := ui.NewSelect("page-size", options)
	if !sizes.SelectValue(opts.PageSize) {
		sizes.SelectValue(0)
	}

	m := Model[T]{
		id:       nextID(),
		pipeline: NewPipeline(columns, opts),
		out:      &outbox{},
		keys:     DefaultKeyMap(),
		help:     help.New(),
		pager:    paginator.New(),
		sizes:    sizes,
		filter:   filter,
		focused:  true,
		empty:    "No rows to display.",
		theme:    theme.Light,
		size:     theme.Medium,
	}

	id, out := m.id, m.out
	m.pipeline.OnSortChange(func(e SortChange) {
		out.push(SortChangeMsg{ID: id, SortChange: e})
	})
	m.pipeline.OnPaginationChange(func(e PaginationChange) {
		out.push(PaginationChangeMsg{ID: id, PaginationChange: e})
	})
	m.pipeline.OnError(func(err error) {
		out.push(StreamFaultMsg{ID: id, Err: err})
	})
	return m
}

// ID returns the grid's unique id, carried on every message it emits.
func (m Model[T]) ID() int {
	return m.id
}

// Pipeline exposes the underlying pipeline.
func (m Model[T]) Pipeline() *Pipeline[T] {
	return m.pipeline
}

// SetData replaces the data source and starts listening to it if it is
// a stream.
func (m Model[T]) SetData(src Source[T]) (Model[T], tea.Cmd) {
	m.pipeline.SetData(src)
	return m, tea.Batch(m.listen(), m.out.drain())
}

// Restore applies saved sort and page-size preferences.
func (m Model[T]) Restore(sort SortState, pageSize int) Model[T] {
	m.pipeline.Restore(sort, pageSize)
	if !m.sizes.SelectValue(pageSize) {
		m.sizes.SelectValue(0)
	}
	return m
}

// SetKeyMap replaces the key bindings.
func (m Model[T]) SetKeyMap(k KeyMap) Model[T] {
	m.keys = k
	return m
}

// SetEmptyText sets the message shown when there are no rows.
func (m Model[T]) SetEmptyText(s string) Model[T] {
	m.empty = s
	return m
}

// SetTheme changes the color theme.
func (m Model[T]) SetTheme(t theme.Theme) Model[T] {
	m.theme = t
	m.sizes.Theme = t
	return m
}

// SetSize changes the size class.
func (m Model[T]) SetSize(s theme.Size) Model[T] {
	m.size = s
	m.sizes.Size = s
	return m
}

// Focus makes the grid react to keys.
func (m Model[T]) Focus() Model[T] {
	m.focused = true
	return m
}

// Blur stops the grid reacting to keys.
func (m Model[T]) Blur() Model[T] {
	m.focused = false
	m.filtering = false
	m.filter.Blur()
	return m
}

// Focused reports whether the grid takes keys.
func (m Model[T]) Focused() bool {
	return m.focused
}

// Filtering reports whether the filter input is capturing keys.
func (m Model[T]) Filtering() bool {
	return m.filtering
}

// Destroy cancels the data subscription.
func (m Model[T]) Destroy() {
	m.pipeline.Dispose()
}

// Init starts listening to a stream source set before the program ran.
func (m Model[T]) Init() tea.Cmd {
	return m.listen()
}

// Update handles messages.
func (m Model[T]) Update(msg tea.Msg) (Model[T], tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case emissionMsg[T]:
		if msg.id != m.id {
			return m, nil
		}
		if m.pipeline.Receive(msg.gen, msg.emission, msg.ok) {
			cmd = m.listen()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		if m.filtering {
			m, cmd = m.handleFilterKeys(msg)
		} else {
			m, cmd = m.handleKeys(msg)
		}
	}

	return m, tea.Batch(cmd, m.out.drain())
}

// handleKeys handles key presses while browsing.
func (m Model[T]) handleKeys(msg tea.KeyMsg) (Model[T], tea.Cmd) {
	columns := m.pipeline.Columns()

	switch {
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.Left):
		if m.column > 0 {
			m.column--
		}
	case key.Matches(msg, m.keys.Right):
		if m.column < len(columns)-1 {
			m.column++
		}
	case key.Matches(msg, m.keys.Sort):
		if m.column < len(columns) {
			m.pipeline.HeaderClick(columns[m.column])
		}
	case key.Matches(msg, m.keys.NextPage):
		m.pipeline.NextPage()
	case key.Matches(msg, m.keys.PrevPage):
		m.pipeline.PrevPage()
	case key.Matches(msg, m.keys.FirstPage):
		m.pipeline.GoToPage(1)
	case key.Matches(msg, m.keys.LastPage):
		m.pipeline.GoToPage(m.pipeline.View().TotalPages)
	case key.Matches(msg, m.keys.SizeUp):
		if changed, ok := m.sizes.Next(); ok {
			m.pipeline.SetPageSize(changed.Option.Value)
			m.out.push(changed)
		}
	case key.Matches(msg, m.keys.SizeDown):
		if changed, ok := m.sizes.Prev(); ok {
			m.pipeline.SetPageSize(changed.Option.Value)
			m.out.push(changed)
		}
	case key.Matches(msg, m.keys.ClearFilter):
		if m.pipeline.Filter() != "" {
			m.filter.Reset()
			m.pipeline.SetFilter("")
		}
	}
	return m, nil
}

// handleFilterKeys handles key presses while the filter input has focus.
func (m Model[T]) handleFilterKeys(msg tea.KeyMsg) (Model[T], tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ClearFilter):
		m.filtering = false
		m.filter.Reset()
		m.filter.Blur()
		m.pipeline.SetFilter("")
		return m, nil
	case key.Matches(msg, m.keys.Apply):
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.pipeline.SetFilter(m.filter.Value())
	return m, cmd
}

// listen returns a command that waits for the next stream emission.
func (m Model[T]) listen() tea.Cmd {
	gen, feed := m.pipeline.Feed()
	if feed == nil {
		return nil
	}
	id := m.id
	return func() tea.Msg {
		e, ok := <-feed
		return emissionMsg[T]{id: id, gen: gen, emission: e, ok: ok}
	}
}

// View renders the grid.
func (m Model[T]) View() string {
	s := ui.StylesFor(m.theme)
	columns := m.pipeline.Columns()
	view := m.pipeline.View()
	pad := max(ui.Padding(m.size)/2, 1)

	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = m.headerLabel(c)
	}

	rows := make([][]string, len(view.Items))
	for r, item := range view.Items {
		cells := make([]string, len(columns))
		for i, c := range columns {
			text := c.Text(item)
			if c.Width > 0 {
				text = runewidth.Truncate(text, c.Width, ui.SymbolEllipsis)
			}
			cells[i] = text
		}
		rows[r] = cells
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				if m.focused && col == m.column {
					return s.Selected.Padding(0, pad)
				}
				return s.Header.Padding(0, pad)
			}
			return s.Normal.Padding(0, pad)
		})

	var b strings.Builder
	b.WriteString(t.String())
	b.WriteString("\n")

	if len(view.Items) == 0 {
		b.WriteString(s.Muted.Render("  "+m.empty) + "\n")
	}

	if err := m.pipeline.Err(); err != nil {
		b.WriteString(s.Error.Render("Stream error: "+err.Error()) + "\n")
	}

	if m.filtering || m.pipeline.Filter() != "" {
		b.WriteString(m.filter.View() + "\n")
	}

	b.WriteString(m.footer(view))

	if m.focused {
		b.WriteString("\n" + s.Help.Render(m.help.View(m.keys)))
	}
	return b.String()
}

func (m Model[T]) headerLabel(c Column[T]) string {
	if !c.Sortable || !m.pipeline.Sortable() {
		return c.Name
	}
	sort := m.pipeline.Sort()
	if sort.Key != c.Key {
		return c.Name + " " + ui.SymbolSortable
	}
	if sort.Direction == rowset.Descending {
		return c.Name + " " + ui.SymbolDesc
	}
	return c.Name + " " + ui.SymbolAsc
}

func (m Model[T]) footer(view View[T]) string {
	s := ui.StylesFor(m.theme)
	pal := ui.PaletteFor(m.theme)
	page := m.pipeline.Page()

	if !page.Paginated() {
		return s.Muted.Render(fmt.Sprintf("%d items", view.TotalItems)) + "  " + m.sizes.View()
	}

	pager := m.pager
	pager.TotalPages = max(view.TotalPages, 1)
	pager.Page = min(max(page.CurrentPage-1, 0), pager.TotalPages-1)
	pager.ActiveDot = lipgloss.NewStyle().Foreground(pal.Primary).Render("•")
	pager.InactiveDot = lipgloss.NewStyle().Foreground(pal.Secondary).Render("•")
	if pager.TotalPages > maxDots {
		pager.Type = paginator.Arabic
	} else {
		pager.Type = paginator.Dots
	}

	info := fmt.Sprintf("page %d of %d · %d items", page.CurrentPage, view.TotalPages, view.TotalItems)
	return pager.View() + "  " + s.Muted.Render(info) + "  " + m.sizes.View()
}
