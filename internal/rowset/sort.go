package rowset

import (
	"slices"
)

// Direction is a sort direction. The zero value means unsorted.
type Direction int

const (
	None Direction = iota
	Ascending
	Descending
)

// String returns "asc", "desc", or "" for None.
func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	}
	return ""
}

// Toggle flips Ascending and Descending. None toggles to Ascending.
func (d Direction) Toggle() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// ParseDirection is the inverse of Direction.String.
func ParseDirection(s string) Direction {
	switch s {
	case "asc":
		return Ascending
	case "desc":
		return Descending
	}
	return None
}

// Sort returns a stably sorted copy of rows ordered by the value key
// extracts. Null and NaN keys always trail, whatever the direction; only
// the comparison between two present keys is reversed for Descending.
func Sort[T any](rows []T, key func(T) any, dir Direction) []T {
	out := slices.Clone(rows)
	if out == nil {
		out = []T{}
	}
	if dir == None || key == nil {
		return out
	}

	slices.SortStableFunc(out, func(a, b T) int {
		va, vb := key(a), key(b)
		na, nb := missing(va), missing(vb)
		switch {
		case na && nb:
			return 0
		case na:
			return 1
		case nb:
			return -1
		}
		c := Compare(va, vb)
		if dir == Descending {
			return -c
		}
		return c
	})
	return out
}

func missing(v any) bool {
	return IsNull(v) || isNaN(v)
}
