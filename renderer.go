package pretty

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strconv"
)

type Renderer struct {
	out         io.Writer
	typeRenders typeRendersMap
	opts        Options
	namer       Namer
}

func NewRenderer(out io.Writer, opts ...Option) *Renderer {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Renderer{
		out:         out,
		typeRenders: make(typeRendersMap),
		opts:        options,
		namer:       Namer{Describer: options.Describer},
	}
}

// Namer returns the namer used for type headers and the unknown fallback.
func (r *Renderer) Namer() Namer {
	return r.namer
}

func (r *Renderer) Render(value any) error {
	return r.renderTo(r.out, reflect.ValueOf(value))
}

func (r *Renderer) renderTo(w io.Writer, v reflect.Value) error {
	s := r.newState(w)
	s.render(v, 0)
	return s.w.err
}

func (r *Renderer) newState(w io.Writer) *renderState {
	return &renderState{
		Renderer: r,
		w:        &stickyWriter{w: w},
		visiting: make(map[visitKey]struct{}),
	}
}

// stickyWriter keeps the first write error and drops everything after it.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (sw *stickyWriter) Write(p []byte) (int, error) {
	if sw.err != nil {
		return 0, sw.err
	}
	n, err := sw.w.Write(p)
	if err != nil {
		sw.err = err
	}
	return n, err
}

type visitKey struct {
	typ reflect.Type
	ptr uintptr
	len int
}

// renderState is the per-call part of a render: the output, the containers
// currently being rendered and a scratch buffer.
type renderState struct {
	*Renderer
	w        *stickyWriter
	visiting map[visitKey]struct{}
	buf      []byte
}

func (s *renderState) str(str string) {
	_, _ = io.WriteString(s.w, str)
}

func (s *renderState) flush() {
	_, _ = s.w.Write(s.buf)
	s.buf = s.buf[:0]
}

func (s *renderState) fail(err error) {
	if err != nil && s.w.err == nil {
		s.w.err = fmt.Errorf("pretty: render hook: %w", err)
	}
}

func (s *renderState) render(v reflect.Value, depth int) {
	if s.w.err != nil {
		return
	}
	for v.IsValid() && v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	if !v.IsValid() || v.Kind() == reflect.Interface {
		s.str("<nil>")
		return
	}
	t := v.Type()

	// Check if we have a custom renderer for this type
	if v.CanInterface() {
		if typeRenderer, ok := s.typeRenders[t]; ok {
			s.fail(typeRenderer(s.w, v))
			return
		}
		if t.Implements(prettyRendererType) && !isNilPointer(v) {
			s.fail(v.Interface().(PrettyRenderer).RenderPretty(s.w))
			return
		}
	}

	// Render based on the type kind
	switch t.Kind() {
	case reflect.Bool:
		s.buf = strconv.AppendBool(s.buf, v.Bool())
		s.flush()

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if t == wcharType {
			s.buf = append(s.buf, 'L', '\'')
			s.buf = appendChar(s.buf, rune(v.Int()))
			s.buf = append(s.buf, '\'')
		} else {
			s.buf = strconv.AppendInt(s.buf, v.Int(), 10)
		}
		s.flush()

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if t == charType {
			s.buf = append(s.buf, '\'')
			s.buf = appendChar(s.buf, rune(v.Uint()))
			s.buf = append(s.buf, '\'')
		} else {
			s.buf = strconv.AppendUint(s.buf, v.Uint(), 10)
		}
		s.flush()

	case reflect.Float32, reflect.Float64:
		s.buf = strconv.AppendFloat(s.buf, v.Float(), 'g', -1, t.Bits())
		s.flush()

	case reflect.Complex64, reflect.Complex128:
		s.str(strconv.FormatComplex(v.Complex(), 'g', -1, t.Bits()))

	case reflect.String:
		s.buf = appendString(s.buf, v.String())
		s.flush()

	case reflect.Slice:
		switch {
		case t == wstringType:
			s.renderWideString(v)
		case t.Implements(multiMapType):
			s.renderMultiMap(v, depth)
		default:
			s.renderSequence(v, depth)
		}

	case reflect.Array:
		if elem := t.Elem(); elem == charType || elem == wcharType {
			s.renderCharArray(v)
		} else {
			s.renderSequence(v, depth)
		}

	case reflect.Map:
		s.renderMap(v, depth)

	case reflect.Struct:
		if v.CanAddr() {
			s.renderUnknown(v)
		} else {
			s.renderStructCopy(v, depth)
		}

	default:
		s.renderUnknown(v)
	}
}

func (s *renderState) renderWideString(v reflect.Value) {
	runes := make([]rune, v.Len())
	for i := range runes {
		runes[i] = rune(v.Index(i).Int())
	}
	s.buf = appendWideString(s.buf, runes)
	s.flush()
}

// renderCharArray prints the declared length, then the contents without
// trailing zero characters. Embedded zeros print as \0.
func (s *renderState) renderCharArray(v reflect.Value) {
	elem := v.Type().Elem()
	wide := elem == wcharType
	charAt := func(i int) rune {
		if wide {
			return rune(v.Index(i).Int())
		}
		return rune(v.Index(i).Uint())
	}
	end := v.Len()
	for end > 0 && charAt(end-1) == 0 {
		end--
	}

	s.buf = append(s.buf, '(')
	s.buf = append(s.buf, s.namer.Name(elem)...)
	s.buf = append(s.buf, '[')
	s.buf = strconv.AppendInt(s.buf, int64(v.Len()), 10)
	s.buf = append(s.buf, ']', ')')
	if wide {
		s.buf = append(s.buf, 'L')
	}
	s.buf = append(s.buf, '"')
	for i := 0; i < end; i++ {
		s.buf = appendChar(s.buf, charAt(i))
	}
	s.buf = append(s.buf, '"')
	s.flush()
}

func (s *renderState) renderSequence(v reflect.Value, depth int) {
	if !s.enter(v, depth) {
		s.renderUnknown(v)
		return
	}
	defer s.leave(v)

	s.str(s.namer.ContainerName(v.Type()))
	s.str("[")
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			s.str(", ")
		}
		s.render(v.Index(i), depth+1)
	}
	s.str("]")
}

func (s *renderState) renderMap(v reflect.Value, depth int) {
	if !s.enter(v, depth) {
		s.renderUnknown(v)
		return
	}
	defer s.leave(v)

	s.str(s.namer.ContainerName(v.Type()))
	s.str("{")
	entries := sortedEntries(v, func(x reflect.Value) string { return s.text(x, depth+1) })
	for i, e := range entries {
		if i > 0 {
			s.str(", ")
		}
		s.render(e.key, depth+1)
		s.str("=")
		s.render(e.value, depth+1)
	}
	s.str("}")
}

// text renders v into a string with the containers currently being rendered
// still marked, so a value that holds its own map does not recurse. Hook
// errors are dropped.
func (s *renderState) text(v reflect.Value, depth int) string {
	var buf bytes.Buffer
	sub := &renderState{Renderer: s.Renderer, w: &stickyWriter{w: &buf}, visiting: s.visiting}
	sub.render(v, depth)
	return buf.String()
}

func (s *renderState) renderMultiMap(v reflect.Value, depth int) {
	if !s.enter(v, depth) {
		s.renderUnknown(v)
		return
	}
	defer s.leave(v)

	s.str(s.namer.ContainerName(v.Type()))
	s.str("{")
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			s.str(", ")
		}
		pair := v.Index(i)
		s.render(pair.Field(0), depth+1)
		s.str("=")
		s.render(pair.Field(1), depth+1)
	}
	s.str("}")
}

// renderStructCopy prints a struct that has no address of its own, such as a
// copy held in an interface or map, as (type){Field=value, ...}. Fields go
// through render, so cycles and the depth cap apply to them too.
func (s *renderState) renderStructCopy(v reflect.Value, depth int) {
	s.str("(" + s.namer.Name(v.Type()) + "){")
	if s.opts.MaxDepth > 0 && depth >= s.opts.MaxDepth {
		if v.NumField() > 0 {
			s.str("...")
		}
		s.str("}")
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		if i > 0 {
			s.str(", ")
		}
		s.str(t.Field(i).Name + "=")
		s.render(v.Field(i), depth+1)
	}
	s.str("}")
}

// renderUnknown prints (type) followed by the address of v.
func (s *renderState) renderUnknown(v reflect.Value) {
	s.buf = append(s.buf, '(')
	s.buf = append(s.buf, s.namer.ContainerName(v.Type())...)
	s.buf = append(s.buf, ')')

	switch v.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Func, reflect.Chan, reflect.Map, reflect.Slice:
		s.buf = appendAddress(s.buf, v.Pointer())
	default:
		if v.CanAddr() {
			s.buf = appendAddress(s.buf, v.UnsafeAddr())
		} else {
			s.buf = append(s.buf, "0x0"...)
		}
	}
	s.flush()
}

func appendAddress(dst []byte, p uintptr) []byte {
	dst = append(dst, '0', 'x')
	return strconv.AppendUint(dst, uint64(p), 16)
}

// enter marks a container as being rendered. It reports false when the
// container is already on the stack or the depth cap is reached.
func (s *renderState) enter(v reflect.Value, depth int) bool {
	if s.opts.MaxDepth > 0 && depth >= s.opts.MaxDepth {
		return false
	}
	key, ok := identity(v)
	if !ok {
		return true
	}
	if _, seen := s.visiting[key]; seen {
		return false
	}
	s.visiting[key] = struct{}{}
	return true
}

func (s *renderState) leave(v reflect.Value) {
	if key, ok := identity(v); ok {
		delete(s.visiting, key)
	}
}

// identity returns the key under which a slice or map is tracked. Arrays and
// empty containers cannot reach themselves and are not tracked.
func identity(v reflect.Value) (visitKey, bool) {
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		if v.Len() == 0 {
			return visitKey{}, false
		}
		return visitKey{typ: v.Type(), ptr: v.Pointer(), len: v.Len()}, true
	}
	return visitKey{}, false
}

func isNilPointer(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
