package rowset

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"
)

// IsNull reports whether v has no value: a nil interface, or a nil
// pointer, map, slice or interface held in one.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

// Compare orders two non-null values using their native ordering and
// returns -1, 0 or +1. NaN ranks above every other number and equal to
// itself. Unrelated kinds compare by their text.
func Compare(a, b any) int {
	a, b = deref(a), deref(b)

	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch {
	case isInt(ra) && isInt(rb):
		return order(ra.Int(), rb.Int())
	case isUint(ra) && isUint(rb):
		return order(ra.Uint(), rb.Uint())
	case isNumber(ra) && isNumber(rb):
		fa, fb := toFloat(ra), toFloat(rb)
		if na, nb := math.IsNaN(fa), math.IsNaN(fb); na || nb {
			return order(boolRank(na), boolRank(nb))
		}
		return order(fa, fb)
	case ra.Kind() == reflect.String && rb.Kind() == reflect.String:
		return strings.Compare(ra.String(), rb.String())
	case ra.Kind() == reflect.Bool && rb.Kind() == reflect.Bool:
		return order(boolRank(ra.Bool()), boolRank(rb.Bool()))
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

type ordered interface {
	~int64 | ~uint64 | ~float64 | ~int
}

func order[V ordered](a, b V) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// isNaN reports whether v is a NaN float, possibly behind pointers.
func isNaN(v any) bool {
	rv := reflect.ValueOf(deref(v))
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(rv.Float())
	}
	return false
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isNumber(v reflect.Value) bool {
	return isInt(v) || isUint(v) || v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isInt(v):
		return float64(v.Int())
	case isUint(v):
		return float64(v.Uint())
	}
	return v.Float()
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
