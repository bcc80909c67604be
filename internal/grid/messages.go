package grid

// Message types for the grid model.

// SortChangeMsg is sent after an effective header click.
type SortChangeMsg struct {
	ID int
	SortChange
}

// PaginationChangeMsg is sent after the page or page size changed.
type PaginationChangeMsg struct {
	ID int
	PaginationChange
}

// StreamFaultMsg is sent when the data stream emitted an error. The grid
// keeps showing its last good view.
type StreamFaultMsg struct {
	ID  int
	Err error
}

// emissionMsg carries one value read from the pipeline's feed.
type emissionMsg[T any] struct {
	id       int
	gen      uint64
	emission Emission[T]
	ok       bool
}
