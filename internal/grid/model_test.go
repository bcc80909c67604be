package grid

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/henri123lemoine/trek/internal/rowset"
	"github.com/henri123lemoine/trek/internal/theme"
	"github.com/henri123lemoine/trek/internal/ui"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// pump runs cmd and every command it leads to, feeding each resulting
// message back into m, and returns the messages a parent would see.
// Stream-backed tests must close their channel so listening ends.
func pump(t *testing.T, m Model[item], cmd tea.Cmd) (Model[item], []tea.Msg) {
	t.Helper()
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case emissionMsg[item]:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		default:
			out = append(out, msg)
		}
	}
	return m, out
}

func press(t *testing.T, m Model[item], keys ...tea.KeyMsg) (Model[item], []tea.Msg) {
	t.Helper()
	var all []tea.Msg
	for _, k := range keys {
		var cmd tea.Cmd
		var msgs []tea.Msg
		m, cmd = m.Update(k)
		m, msgs = pump(t, m, cmd)
		all = append(all, msgs...)
	}
	return m, all
}

func newTestModel(t *testing.T, rows []item) Model[item] {
	t.Helper()
	m := New([]Column[item]{idColumn(), nameColumn(false)}, Options{Sortable: true, PageSize: 5})
	m, cmd := m.SetData(Static(rows))
	m, msgs := pump(t, m, cmd)
	if len(msgs) != 0 {
		t.Fatalf("SetData emitted %v", msgs)
	}
	t.Cleanup(m.Destroy)
	return m
}

func TestModelSortKey(t *testing.T) {
	m := newTestModel(t, []item{{ID: 3}, {ID: 1}, {ID: 2}})

	m, msgs := press(t, m, runeKey("s"))
	want := []tea.Msg{SortChangeMsg{ID: m.ID(), SortChange: SortChange{ColumnName: "ID", Direction: rowset.Ascending}}}
	if diff := cmp.Diff(want, msgs); diff != "" {
		t.Errorf("messages (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, itemIDs(m.Pipeline().View().Items)); diff != "" {
		t.Errorf("view (-want +got):\n%s", diff)
	}

	// Name is not sortable.
	m, msgs = press(t, m, runeKey("l"), runeKey("s"))
	if len(msgs) != 0 {
		t.Errorf("expected no messages for non-sortable column, got %v", msgs)
	}
	if m.Pipeline().Sort().Key != "ID" {
		t.Errorf("sort changed to %+v", m.Pipeline().Sort())
	}
}

func TestModelPaging(t *testing.T) {
	m := newTestModel(t, numbered(12))

	m, msgs := press(t, m, runeKey("n"), runeKey("n"), runeKey("n"))
	want := []tea.Msg{
		PaginationChangeMsg{ID: m.ID(), PaginationChange: PaginationChange{CurrentPage: 2, PageSize: 5}},
		PaginationChangeMsg{ID: m.ID(), PaginationChange: PaginationChange{CurrentPage: 3, PageSize: 5}},
	}
	if diff := cmp.Diff(want, msgs); diff != "" {
		t.Errorf("messages (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{11, 12}, itemIDs(m.Pipeline().View().Items)); diff != "" {
		t.Errorf("last page (-want +got):\n%s", diff)
	}

	m, _ = press(t, m, runeKey("g"))
	if p := m.Pipeline().Page().CurrentPage; p != 1 {
		t.Errorf("expected first page, got %d", p)
	}
	m, _ = press(t, m, runeKey("G"))
	if p := m.Pipeline().Page().CurrentPage; p != 3 {
		t.Errorf("expected last page, got %d", p)
	}
}

func TestModelPageSizeKeys(t *testing.T) {
	m := newTestModel(t, numbered(12))

	m, msgs := press(t, m, runeKey("+"))
	var sizes []int
	for _, msg := range msgs {
		switch msg := msg.(type) {
		case PaginationChangeMsg:
			sizes = append(sizes, msg.PageSize)
		case ui.SelectionChangedMsg:
			if msg.Option.Value != 10 {
				t.Errorf("expected select to move to 10, got %+v", msg.Option)
			}
		}
	}
	if diff := cmp.Diff([]int{10}, sizes); diff != "" {
		t.Errorf("page sizes (-want +got):\n%s", diff)
	}

	m, _ = press(t, m, runeKey("-"), runeKey("-"))
	if size := m.Pipeline().Page().PageSize; size != 5 {
		t.Errorf("expected page size to stop at 5, got %d", size)
	}
}

func TestModelFilterInput(t *testing.T) {
	m := newTestModel(t, []item{{ID: 1, Name: "alpha"}, {ID: 2, Name: "beta"}})

	m, _ = m.Update(runeKey("/"))
	if !m.Filtering() {
		t.Fatal("expected filter input to take focus")
	}
	for _, r := range "bet" {
		m, _ = m.Update(runeKey(string(r)))
	}
	if diff := cmp.Diff([]int{2}, itemIDs(m.Pipeline().View().Items)); diff != "" {
		t.Errorf("filtered (-want +got):\n%s", diff)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Filtering() || m.Pipeline().Filter() != "" {
		t.Errorf("expected filter cleared, got %q", m.Pipeline().Filter())
	}
	if len(m.Pipeline().View().Items) != 2 {
		t.Errorf("expected all rows back, got %d", len(m.Pipeline().View().Items))
	}
}

func TestModelIgnoresKeysWhenBlurred(t *testing.T) {
	m := newTestModel(t, numbered(12))
	m = m.Blur()

	m, msgs := press(t, m, runeKey("n"))
	if len(msgs) != 0 || m.Pipeline().Page().CurrentPage != 1 {
		t.Errorf("blurred grid reacted: %v", msgs)
	}
}

func TestModelStream(t *testing.T) {
	boom := errors.New("feed lost")
	ch := make(chan Emission[item], 3)
	ch <- Emission[item]{Rows: numbered(3)}
	ch <- Emission[item]{Err: boom}
	close(ch)

	stream, _ := chanStream(ch)
	m := New([]Column[item]{idColumn()}, Options{})
	m, cmd := m.SetData(FromStream(stream))
	t.Cleanup(m.Destroy)

	m, msgs := pump(t, m, cmd)

	want := []tea.Msg{StreamFaultMsg{ID: m.ID(), Err: boom}}
	if diff := cmp.Diff(want, msgs, cmp.Comparer(func(a, b error) bool { return errors.Is(a, b) })); diff != "" {
		t.Errorf("messages (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, itemIDs(m.Pipeline().View().Items)); diff != "" {
		t.Errorf("last good view not kept (-want +got):\n%s", diff)
	}
	if !strings.Contains(m.View(), "feed lost") {
		t.Error("expected the fault in the rendered view")
	}
}

func TestModelIgnoresOtherGridsEmissions(t *testing.T) {
	a := newTestModel(t, numbered(2))
	b := newTestModel(t, numbered(4))

	msg := emissionMsg[item]{id: b.ID(), gen: 1, emission: Emission[item]{Rows: numbered(9)}, ok: true}
	a, cmd := a.Update(msg)
	if cmd != nil {
		t.Error("expected no command for a foreign emission")
	}
	if len(a.Pipeline().View().Items) != 2 {
		t.Errorf("foreign emission applied: %d rows", len(a.Pipeline().View().Items))
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, []item{{ID: 7, Name: "seven"}})
	m = m.SetTheme(theme.Dark)

	out := m.View()
	for _, want := range []string{"ID " + ui.SymbolSortable, "Name", "seven", "page 1 of 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}

	m, _ = press(t, m, runeKey("s"))
	if !strings.Contains(m.View(), "ID "+ui.SymbolAsc) {
		t.Errorf("expected ascending marker:\n%s", m.View())
	}
}

func TestModelEmptyView(t *testing.T) {
	m := newTestModel(t, nil)
	if !strings.Contains(m.View(), "No rows") {
		t.Errorf("expected empty state:\n%s", m.View())
	}
}
