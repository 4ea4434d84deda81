package pretty

import (
	"reflect"
	"strings"
)

// Description is what a TypeDescriber knows about a type.
type Description struct {
	// Raw is the implementation identifier, not necessarily readable.
	Raw string

	// Display is the beautified name, empty when none is available.
	Display string
}

// TypeDescriber identifies types the Namer has no short name for.
type TypeDescriber interface {
	Describe(t reflect.Type) Description
}

// ReflectDescriber describes types with the reflect package: Raw is
// qualified by the full package path, Display by the package name only.
type ReflectDescriber struct{}

func (ReflectDescriber) Describe(t reflect.Type) Description {
	return Description{Raw: qualifiedName(t), Display: t.String()}
}

// RawDescriber never beautifies, so names carry full package paths.
type RawDescriber struct{}

func (RawDescriber) Describe(t reflect.Type) Description {
	return Description{Raw: qualifiedName(t)}
}

func qualifiedName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

var wellKnownNames = map[reflect.Type]string{
	reflect.TypeOf((*bool)(nil)).Elem():       "bool",
	reflect.TypeOf((*int)(nil)).Elem():        "int",
	reflect.TypeOf((*int8)(nil)).Elem():       "int8",
	reflect.TypeOf((*int16)(nil)).Elem():      "int16",
	reflect.TypeOf((*int32)(nil)).Elem():      "int32",
	reflect.TypeOf((*int64)(nil)).Elem():      "int64",
	reflect.TypeOf((*uint)(nil)).Elem():       "uint",
	reflect.TypeOf((*uint8)(nil)).Elem():      "uint8",
	reflect.TypeOf((*uint16)(nil)).Elem():     "uint16",
	reflect.TypeOf((*uint32)(nil)).Elem():     "uint32",
	reflect.TypeOf((*uint64)(nil)).Elem():     "uint64",
	reflect.TypeOf((*uintptr)(nil)).Elem():    "uintptr",
	reflect.TypeOf((*float32)(nil)).Elem():    "float32",
	reflect.TypeOf((*float64)(nil)).Elem():    "float64",
	reflect.TypeOf((*complex64)(nil)).Elem():  "complex64",
	reflect.TypeOf((*complex128)(nil)).Elem(): "complex128",
	reflect.TypeOf((*string)(nil)).Elem():     "string",
	reflect.TypeOf((*any)(nil)).Elem():        "any",
	reflect.TypeOf((*Char)(nil)).Elem():       "char",
	reflect.TypeOf((*WChar)(nil)).Elem():      "wchar",
	reflect.TypeOf((*WString)(nil)).Elem():    "wstring",
}

// Namer produces display names for types.
type Namer struct {
	Describer TypeDescriber
}

// NameOf returns the display name of T using the default describer.
func NameOf[T any]() string {
	return Namer{Describer: ReflectDescriber{}}.Name(reflect.TypeOf((*T)(nil)).Elem())
}

// Name returns the short name of well-known types, the describer's display
// name otherwise, falling back to its raw name.
func (n Namer) Name(t reflect.Type) string {
	if name, ok := wellKnownNames[t]; ok {
		return name
	}
	return n.describe(t)
}

func (n Namer) describe(t reflect.Type) (name string) {
	if n.Describer == nil {
		return t.String()
	}
	defer func() {
		if recover() != nil {
			name = t.String()
		}
	}()

	desc := n.Describer.Describe(t)
	switch {
	case desc.Display != "":
		return desc.Display
	case desc.Raw != "":
		return desc.Raw
	default:
		return t.String()
	}
}

// ContainerName abbreviates slices, arrays, maps and multimaps to their kind
// and element names, e.g. map<string,int>. Element names are not abbreviated
// in turn: a []map[string]int is slice<map[string]int>.
func (n Namer) ContainerName(t reflect.Type) string {
	var b strings.Builder
	switch t.Kind() {
	case reflect.Slice:
		if t.Implements(multiMapType) {
			pair := t.Elem()
			b.WriteString("multimap<")
			b.WriteString(n.Name(pair.Field(0).Type))
			b.WriteByte(',')
			b.WriteString(n.Name(pair.Field(1).Type))
			b.WriteByte('>')
			return b.String()
		}
		b.WriteString("slice<")
		b.WriteString(n.Name(t.Elem()))
		b.WriteByte('>')
	case reflect.Array:
		b.WriteString("array<")
		b.WriteString(n.Name(t.Elem()))
		b.WriteByte('>')
	case reflect.Map:
		b.WriteString("map<")
		b.WriteString(n.Name(t.Key()))
		b.WriteByte(',')
		b.WriteString(n.Name(t.Elem()))
		b.WriteByte('>')
	default:
		return n.Name(t)
	}
	return b.String()
}
