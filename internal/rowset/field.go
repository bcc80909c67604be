package rowset

import (
	"reflect"
	"strings"
)

// Field returns an accessor reading the property name from a row. Struct
// rows are matched by field name, then by a `grid:"name"` tag, then
// case-insensitively; map rows with string keys are indexed directly.
// Pointers are followed. A missing property reads as nil.
func Field[T any](name string) func(T) any {
	return func(row T) any {
		return lookup(reflect.ValueOf(row), name)
	}
}

func lookup(v reflect.Value, name string) any {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		if f := structField(v, name); f.IsValid() && f.CanInterface() {
			return f.Interface()
		}
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil
		}
		val := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		if val.IsValid() {
			return val.Interface()
		}
	}
	return nil
}

func structField(v reflect.Value, name string) reflect.Value {
	if f := v.FieldByName(name); f.IsValid() {
		return f
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if tag, ok := t.Field(i).Tag.Lookup("grid"); ok && tag == name {
			return v.Field(i)
		}
	}
	for i := 0; i < t.NumField(); i++ {
		if strings.EqualFold(t.Field(i).Name, name) {
			return v.Field(i)
		}
	}
	return reflect.Value{}
}
