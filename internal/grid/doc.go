// Package grid implements the data grid: a reactive Pipeline that derives
// the displayed page from a data source, the sort state and the page
// state, and a Bubble Tea Model that renders it and maps keys onto the
// pipeline's operations.
//
// The Pipeline recomputes its View synchronously inside every mutation, so
// a reader never sees new data combined with an old sort or page. Change
// events (sort, pagination, stream faults) are dispatched only after the
// View they describe has been published.
//
// A data source is either a static slice or a restartable Stream. Stream
// emissions are pulled by the Model as commands and applied on the
// program's Update loop; the Pipeline itself is not safe for concurrent
// use.
package grid
