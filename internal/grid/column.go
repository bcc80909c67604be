package grid

import (
	"fmt"
	"reflect"

	"github.com/henri123lemoine/trek/internal/rowset"
)

// Column describes one grid column.
type Column[T any] struct {
	// Name is the header label.
	Name string
	// Key is the row property the column reads. It identifies the column
	// in sort state and sort events.
	Key string
	// Value reads the cell value. When nil the Key is looked up by
	// reflection with rowset.Field.
	Value func(T) any
	// Sortable allows header clicks to sort by this column.
	Sortable bool
	// Width truncates cell text to this many cells. Zero means no limit.
	Width int
}

// NewColumn creates a column reading key by reflection.
func NewColumn[T any](name, key string, sortable bool) Column[T] {
	return Column[T]{Name: name, Key: key, Sortable: sortable}
}

func (c Column[T]) accessor() func(T) any {
	if c.Value != nil {
		return c.Value
	}
	return rowset.Field[T](c.Key)
}

// Text renders the cell value of row as a string. Nulls render empty.
func (c Column[T]) Text(row T) string {
	v := c.accessor()(row)
	if rowset.IsNull(v) {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(derefForText(v))
}

func derefForText(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}
