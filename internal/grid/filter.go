package grid

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// rowSource implements fuzzy.Source over the rendered text of each row.
type rowSource[T any] struct {
	rows    []T
	columns []Column[T]
}

func (s rowSource[T]) String(i int) string {
	parts := make([]string, 0, len(s.columns))
	for _, c := range s.columns {
		parts = append(parts, c.Text(s.rows[i]))
	}
	return strings.Join(parts, " ")
}

func (s rowSource[T]) Len() int {
	return len(s.rows)
}

// filterRows keeps the rows whose cell text fuzzy-matches query, in their
// original order.
func filterRows[T any](rows []T, columns []Column[T], query string) []T {
	if len(columns) == 0 {
		return rows
	}
	matches := fuzzy.FindFrom(query, rowSource[T]{rows: rows, columns: columns})

	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = m.Index
	}
	slices.Sort(idx)

	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}
