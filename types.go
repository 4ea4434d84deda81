package pretty

import (
	"io"
	"reflect"
)

// Char is a narrow character. It renders quoted ('a') where a plain byte
// renders as a number.
type Char byte

// WChar is a wide character, rendered with an L prefix (L'a').
type WChar rune

// WString is a wide string, rendered with an L prefix (L"abc").
type WString []rune

// Pair is one entry of a MultiMap.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// MultiMap is a mapping that allows duplicate keys. Entries render in the
// order they were added.
type MultiMap[K, V any] []Pair[K, V]

// Add appends an entry.
func (m *MultiMap[K, V]) Add(key K, value V) {
	*m = append(*m, Pair[K, V]{Key: key, Value: value})
}

func (MultiMap[K, V]) multiMap() {}

type multiMapper interface {
	multiMap()
}

var (
	charType           = reflect.TypeOf((*Char)(nil)).Elem()
	wcharType          = reflect.TypeOf((*WChar)(nil)).Elem()
	wstringType        = reflect.TypeOf((*WString)(nil)).Elem()
	multiMapType       = reflect.TypeOf((*multiMapper)(nil)).Elem()
	prettyRendererType = reflect.TypeOf((*PrettyRenderer)(nil)).Elem()
)

// RegisterTypeRenderer makes renderer use fn for every value whose dynamic
// type is exactly T, including elements of slices and maps.
func RegisterTypeRenderer[T any](renderer *Renderer, fn RenderFn[T]) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	renderer.typeRenders[t] = func(w io.Writer, v reflect.Value) error {
		return fn(w, v.Interface().(T))
	}
}
