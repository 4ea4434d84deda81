package pretty

import (
	"cmp"
	"reflect"
	"slices"
)

type entry struct {
	key, value reflect.Value
}

// sortedEntries returns the entries of map v ordered by key, so that the same
// map always renders the same way. Keys that do not order, such as NaNs, fall
// back to text(key), then text(value).
func sortedEntries(v reflect.Value, text func(reflect.Value) string) []entry {
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		entries = append(entries, entry{key: iter.Key(), value: iter.Value()})
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		if c := compareValues(a.key, b.key); c != 0 {
			return c
		}
		if c := cmp.Compare(text(a.key), text(b.key)); c != 0 {
			return c
		}
		return cmp.Compare(text(a.value), text(b.value))
	})
	return entries
}

// compareValues orders two values of the same type. Interface values holding
// different dynamic types are ordered by type name, nil first.
func compareValues(a, b reflect.Value) int {
	switch a.Kind() {
	case reflect.Interface:
		switch {
		case a.IsNil() && b.IsNil():
			return 0
		case a.IsNil():
			return -1
		case b.IsNil():
			return 1
		}
		ae, be := a.Elem(), b.Elem()
		if ae.Type() != be.Type() {
			return cmp.Compare(ae.Type().String(), be.Type().String())
		}
		return compareValues(ae, be)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.Complex64, reflect.Complex128:
		ac, bc := a.Complex(), b.Complex()
		if c := cmp.Compare(real(ac), real(bc)); c != 0 {
			return c
		}
		return cmp.Compare(imag(ac), imag(bc))
	case reflect.String:
		return cmp.Compare(a.String(), b.String())
	case reflect.Bool:
		switch {
		case a.Bool() == b.Bool():
			return 0
		case a.Bool():
			return 1
		default:
			return -1
		}
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan:
		return cmp.Compare(a.Pointer(), b.Pointer())
	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if c := compareValues(a.Field(i), b.Field(i)); c != 0 {
				return c
			}
		}
	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if c := compareValues(a.Index(i), b.Index(i)); c != 0 {
				return c
			}
		}
	}
	return 0
}
