package grid

import (
	"context"
	"slices"

	"github.com/henri123lemoine/trek/internal/debug"
	"github.com/henri123lemoine/trek/internal/reactive"
	"github.com/henri123lemoine/trek/internal/rowset"
)

// DefaultPageSizes are the page sizes offered by the page-size select.
var DefaultPageSizes = []int{5, 10, 25, 50, 100}

// SortState is the active sort. Direction is None exactly when Key is "".
type SortState struct {
	Key       string
	Direction rowset.Direction
}

// PageState is the active page. PageSize 0 shows every row.
type PageState struct {
	CurrentPage int
	PageSize    int
}

// Paginated reports whether rows are split into pages.
func (p PageState) Paginated() bool {
	return p.PageSize > 0
}

// View is the derived, display-ready subset of rows.
type View[T any] struct {
	Items      []T
	TotalItems int
	TotalPages int
}

// SortChange is emitted once per effective header click.
type SortChange struct {
	ColumnName string
	Direction  rowset.Direction
}

// PaginationChange is emitted when the page or page size changes.
// PageSize 0 means unpaginated.
type PaginationChange struct {
	CurrentPage int
	PageSize    int
}

// Options configures a Pipeline.
type Options struct {
	// Sortable enables header-click sorting for the whole grid.
	Sortable bool
	// PageSize is the initial page size; 0 disables pagination.
	PageSize int
	// PageSizes are offered by the page-size select, followed by "all".
	// Empty means DefaultPageSizes.
	PageSizes []int
	// Log receives event traces. Nil discards them.
	Log debug.Logger
}

// Pipeline derives a View from a data source, sort state and page state.
type Pipeline[T any] struct {
	columns  []Column[T]
	sortable bool
	sort     SortState
	sortBy   func(T) any
	page     PageState
	filter   string

	rows []T
	view View[T]
	err  error

	gen    uint64
	feed   <-chan Emission[T]
	cancel context.CancelFunc

	batch   *reactive.Batch
	pending []any
	views   *reactive.Signal[View[T]]
	onSort  listeners[SortChange]
	onPage  listeners[PaginationChange]
	onError listeners[error]
	log     debug.Logger
}

// NewPipeline creates a pipeline over columns with no data.
func NewPipeline[T any](columns []Column[T], opts Options) *Pipeline[T] {
	p := &Pipeline[T]{
		columns:  slices.Clone(columns),
		sortable: opts.Sortable,
		page:     PageState{CurrentPage: 1, PageSize: max(opts.PageSize, 0)},
		log:      opts.Log,
	}
	if p.log == nil {
		p.log = debug.Discard
	}
	p.batch = reactive.NewBatch(p.flush)
	p.derive()
	p.views = reactive.NewSignal(p.view)
	return p
}

// Columns returns the columns in declaration order.
func (p *Pipeline[T]) Columns() []Column[T] {
	return p.columns
}

// SetColumns replaces the column set. An active sort on a column that is
// no longer present or sortable is dropped.
func (p *Pipeline[T]) SetColumns(columns []Column[T]) {
	p.batch.Do(func() {
		p.columns = slices.Clone(columns)
		if p.sort.Key != "" {
			if c, ok := p.column(p.sort.Key); !ok || !c.Sortable {
				p.sort = SortState{}
				p.sortBy = nil
			}
		}
		p.batch.Mark()
	})
}

// SetSortable toggles grid-level sorting.
func (p *Pipeline[T]) SetSortable(sortable bool) {
	p.batch.Do(func() {
		p.sortable = sortable
		p.batch.Mark()
	})
}

// View returns the current derived view.
func (p *Pipeline[T]) View() View[T] {
	return p.view
}

// Views publishes every derived view, replaying the current one to new
// subscribers.
func (p *Pipeline[T]) Views() *reactive.Signal[View[T]] {
	return p.views
}

// Sort returns the sort state.
func (p *Pipeline[T]) Sort() SortState {
	return p.sort
}

// Page returns the page state.
func (p *Pipeline[T]) Page() PageState {
	return p.page
}

// Sortable reports whether grid-level sorting is on.
func (p *Pipeline[T]) Sortable() bool {
	return p.sortable
}

// Filter returns the active filter query.
func (p *Pipeline[T]) Filter() string {
	return p.filter
}

// Err returns the last stream fault, cleared by the next good emission.
func (p *Pipeline[T]) Err() error {
	return p.err
}

// OnSortChange registers fn for sort events.
func (p *Pipeline[T]) OnSortChange(fn func(SortChange)) func() {
	return p.onSort.add(fn)
}

// OnPaginationChange registers fn for pagination events.
func (p *Pipeline[T]) OnPaginationChange(fn func(PaginationChange)) func() {
	return p.onPage.add(fn)
}

// OnError registers fn for stream faults.
func (p *Pipeline[T]) OnError(fn func(error)) func() {
	return p.onError.add(fn)
}

// SetData replaces the data source. Any previous stream subscription is
// cancelled; a new stream is subscribed immediately and its emissions are
// read through Feed. The view is empty until the stream first emits.
func (p *Pipeline[T]) SetData(src Source[T]) {
	p.batch.Do(func() {
		p.stopFeed()
		p.gen++
		p.err = nil

		if !src.IsStream() {
			p.rows = src.rows
			p.batch.Mark()
			return
		}

		ctx, cancel := context.WithCancel(context.Background())
		p.cancel = cancel
		p.feed = src.stream(ctx)
		p.rows = nil
		p.batch.Mark()
		p.log("subscribed to stream (generation %d)", p.gen)
	})
}

// Feed returns the live subscription and its generation, or a nil channel
// when the source is static or the stream has ended.
func (p *Pipeline[T]) Feed() (uint64, <-chan Emission[T]) {
	return p.gen, p.feed
}

// Receive applies one value read from the Feed of generation gen; ok is
// false when the channel was closed. Values from a replaced or disposed
// subscription are ignored. The result reports whether the feed is still
// live and should be read again.
func (p *Pipeline[T]) Receive(gen uint64, e Emission[T], ok bool) bool {
	if gen != p.gen || p.feed == nil {
		return false
	}
	if !ok {
		p.log("stream ended (generation %d)", gen)
		p.stopFeed()
		return false
	}

	if e.Err != nil {
		p.err = e.Err
		p.log("stream fault: %v", e.Err)
		p.onError.emit(e.Err)
		return true
	}

	p.batch.Do(func() {
		p.err = nil
		p.rows = e.Rows
		p.batch.Mark()
	})
	return true
}

// HeaderClick applies the sort toggle for col. Clicking the active column
// flips the direction; any other sortable column becomes the active one,
// ascending. The page resets to 1. Clicks on non-sortable columns, or on
// any column while the grid is not sortable, do nothing and report false.
func (p *Pipeline[T]) HeaderClick(col Column[T]) bool {
	if !p.sortable || !col.Sortable {
		return false
	}

	p.batch.Do(func() {
		if p.sort.Key == col.Key {
			p.sort.Direction = p.sort.Direction.Toggle()
		} else {
			p.sort = SortState{Key: col.Key, Direction: rowset.Ascending}
		}
		p.sortBy = col.accessor()
		p.page.CurrentPage = 1
		p.pending = append(p.pending, SortChange{ColumnName: p.sort.Key, Direction: p.sort.Direction})
		p.batch.Mark()
	})
	return true
}

// HeaderClickKey clicks the column identified by key.
func (p *Pipeline[T]) HeaderClickKey(key string) bool {
	c, ok := p.column(key)
	if !ok {
		return false
	}
	return p.HeaderClick(c)
}

// SetPageSize changes the page size and returns to page 1. A size of 0
// or less turns pagination off.
func (p *Pipeline[T]) SetPageSize(size int) {
	p.batch.Do(func() {
		p.page = PageState{CurrentPage: 1, PageSize: max(size, 0)}
		p.pending = append(p.pending, PaginationChange(p.page))
		p.batch.Mark()
	})
}

// GoToPage moves to page n. Pages outside [1, TotalPages] are rejected
// without changing state or emitting anything. The range is taken from
// the current rows and page size, so it holds inside Batch too.
func (p *Pipeline[T]) GoToPage(n int) bool {
	if n < 1 || n > p.pageCount(len(p.filtered())) {
		return false
	}

	p.batch.Do(func() {
		p.page.CurrentPage = n
		p.pending = append(p.pending, PaginationChange(p.page))
		p.batch.Mark()
	})
	return true
}

// NextPage and PrevPage step through pages.
func (p *Pipeline[T]) NextPage() bool { return p.GoToPage(p.page.CurrentPage + 1) }

func (p *Pipeline[T]) PrevPage() bool { return p.GoToPage(p.page.CurrentPage - 1) }

// SetFilter narrows rows to fuzzy matches of query before sorting. A
// changed query returns to page 1.
func (p *Pipeline[T]) SetFilter(query string) {
	if query == p.filter {
		return
	}
	p.batch.Do(func() {
		p.filter = query
		if p.page.CurrentPage != 1 {
			p.page.CurrentPage = 1
			p.pending = append(p.pending, PaginationChange(p.page))
		}
		p.batch.Mark()
	})
}

// Restore applies saved preferences without emitting events. A sort on
// an unknown or non-sortable column is ignored.
func (p *Pipeline[T]) Restore(sort SortState, pageSize int) {
	p.batch.Do(func() {
		if c, ok := p.column(sort.Key); ok && c.Sortable && sort.Direction != rowset.None {
			p.sort = sort
			p.sortBy = c.accessor()
		}
		p.page = PageState{CurrentPage: 1, PageSize: max(pageSize, 0)}
		p.batch.Mark()
	})
}

// Batch runs fn with derivation deferred until it returns, so several
// operations produce a single new View.
func (p *Pipeline[T]) Batch(fn func()) {
	p.batch.Do(fn)
}

// Dispose cancels any stream subscription. It is safe to call repeatedly
// and before any data was set.
func (p *Pipeline[T]) Dispose() {
	if p.feed != nil || p.cancel != nil {
		p.log("disposed (generation %d)", p.gen)
	}
	p.stopFeed()
	p.gen++
}

func (p *Pipeline[T]) stopFeed() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.feed = nil
}

func (p *Pipeline[T]) column(key string) (Column[T], bool) {
	for _, c := range p.columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column[T]{}, false
}

// flush derives and publishes the view, then dispatches queued events.
func (p *Pipeline[T]) flush() {
	p.derive()
	p.views.Set(p.view)

	events := p.pending
	p.pending = nil
	for _, ev := range events {
		switch e := ev.(type) {
		case SortChange:
			p.log("sort %s %s", e.ColumnName, e.Direction)
			p.onSort.emit(e)
		case PaginationChange:
			p.log("page %d size %d", e.CurrentPage, e.PageSize)
			p.onPage.emit(e)
		}
	}
}

func (p *Pipeline[T]) derive() {
	rows := p.filtered()
	if p.sortable && p.sort.Key != "" && p.sortBy != nil {
		rows = rowset.Sort(rows, p.sortBy, p.sort.Direction)
	}

	view := View[T]{TotalItems: len(rows), TotalPages: p.pageCount(len(rows))}
	if !p.page.Paginated() {
		view.Items = slices.Clone(rows)
		if view.Items == nil {
			view.Items = []T{}
		}
		p.view = view
		return
	}

	items, err := rowset.Paginate(rows, p.page.CurrentPage, p.page.PageSize)
	if err != nil {
		p.log("paginate: %v", err)
		items = []T{}
	}
	view.Items = items
	p.view = view
}

// filtered returns the rows that pass the current filter.
func (p *Pipeline[T]) filtered() []T {
	if p.filter == "" {
		return p.rows
	}
	return filterRows(p.rows, p.columns, p.filter)
}

// pageCount is the number of pages n rows span under the current page
// size. Unpaginated data is always one page.
func (p *Pipeline[T]) pageCount(n int) int {
	if !p.page.Paginated() {
		return 1
	}
	return rowset.TotalPages(n, p.page.PageSize)
}

// listeners is an ordered set of callbacks.
type listeners[E any] struct {
	fns    map[int]func(E)
	nextID int
}

func (l *listeners[E]) add(fn func(E)) func() {
	if l.fns == nil {
		l.fns = make(map[int]func(E))
	}
	id := l.nextID
	l.nextID++
	l.fns[id] = fn
	return func() { delete(l.fns, id) }
}

func (l *listeners[E]) emit(e E) {
	for id := 0; id < l.nextID; id++ {
		if fn, ok := l.fns[id]; ok {
			fn(e)
		}
	}
}
