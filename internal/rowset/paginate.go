package rowset

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidArgument is returned for a page or page size below 1.
var ErrInvalidArgument = errors.New("invalid argument")

// Paginate returns a copy of rows[(page-1)*size : page*size], clipped to
// the slice. A page past the end yields an empty slice.
func Paginate[T any](rows []T, page, size int) ([]T, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be at least 1, got %d", ErrInvalidArgument, page)
	}
	if size < 1 {
		return nil, fmt.Errorf("%w: page size must be at least 1, got %d", ErrInvalidArgument, size)
	}

	if page-1 >= TotalPages(len(rows), size) {
		return []T{}, nil
	}
	start := (page - 1) * size
	end := start + min(size, len(rows)-start)
	return slices.Clone(rows[start:end]), nil
}

// TotalPages returns how many pages of size hold n items.
func TotalPages(n, size int) int {
	if size < 1 || n <= 0 {
		return 0
	}
	pages := n / size
	if n%size != 0 {
		pages++
	}
	return pages
}
