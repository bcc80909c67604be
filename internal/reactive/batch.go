package reactive

// Batch coalesces changes made inside Do into one call of its flush
// function. Marks made outside any Do flush immediately. A Batch is not
// safe for concurrent use; it belongs to a single owner's event loop.
type Batch struct {
	depth int
	dirty bool
	flush func()
}

// NewBatch returns a Batch that runs flush once per dirty batch.
func NewBatch(flush func()) *Batch {
	return &Batch{flush: flush}
}

// Do runs fn. If fn (or anything it calls) marked the batch dirty, flush
// runs once after the outermost Do returns.
func (b *Batch) Do(fn func()) {
	b.depth++
	func() {
		defer func() { b.depth-- }()
		fn()
	}()
	if b.depth == 0 && b.dirty {
		b.dirty = false
		b.flush()
	}
}

// Mark records that state changed.
func (b *Batch) Mark() {
	if b.depth == 0 {
		b.flush()
		return
	}
	b.dirty = true
}
