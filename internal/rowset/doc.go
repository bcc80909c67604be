// Package rowset provides the pure row transforms used by the grid:
// stable sorting with a nulls-last policy, bounds-checked pagination and
// the value comparison that both rely on.
//
// Nothing in this package mutates its input. Sort and Paginate always
// hand back freshly allocated slices.
package rowset
