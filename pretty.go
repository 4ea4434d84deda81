// Package pretty renders Go values as short, human-readable debug text.
//
// Numbers print as they would with fmt, characters and strings are quoted and
// escaped, slices, arrays and maps print a type header followed by their
// elements, and anything else degrades to its type name and address:
//
//	pretty.Render([]int{1, 2, 3})              // slice<int>[1, 2, 3]
//	pretty.Render(map[string]int{"a": 1})      // map<string,int>{"a"=1}
//	pretty.Render(pretty.WString("hi"))        // L"hi"
//	pretty.Render(&server)                     // (*main.Server)0xc000010000
//
// The output is meant for people. It has no grammar and cannot be parsed back.
package pretty

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
)

// Render returns the rendering of value. If a PrettyRenderer fails, the text
// stops where it failed and the error is dropped; use Write to get it.
func Render(value any) string {
	var buf bytes.Buffer
	_ = NewRenderer(&buf).Render(value)
	return buf.String()
}

// Write renders value to w. The returned error comes from w or from a
// PrettyRenderer hook, never from the value itself.
func Write(w io.Writer, value any) error {
	return NewRenderer(w).Render(value)
}

// PrettyRenderer is implemented by values that render themselves.
type PrettyRenderer interface {
	RenderPretty(io.Writer) error
}

type RenderFn[T any] func(io.Writer, T) error

type typeRendersMap map[reflect.Type]func(io.Writer, reflect.Value) error

// Formatter wraps value so that any fmt verb prints its rendering.
//
//	fmt.Printf("state: %v\n", pretty.Formatter(state))
func Formatter(value any) fmt.Formatter {
	return formatter{value: value}
}

type formatter struct {
	value any
}

func (f formatter) Format(s fmt.State, _ rune) {
	_ = Write(s, f.value)
}
