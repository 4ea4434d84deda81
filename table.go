package pretty

import (
	"bytes"
	"io"
	"reflect"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Table renders the top-level entries of value as a KEY/TYPE/VALUE table:
// one row per map entry or sequence element, a single row for anything else.
func Table(w io.Writer, value any) error {
	return NewRenderer(w).Table(value)
}

func (r *Renderer) Table(value any) error {
	table := tablewriter.NewWriter(r.out)
	table.SetNoWhiteSpace(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Key  ", "Type  ", "Value"})

	rows, err := r.tableRows(reflect.ValueOf(value))
	if err != nil {
		return err
	}
	table.AppendBulk(rows)
	table.Render()
	return nil
}

func (r *Renderer) tableRows(v reflect.Value) ([][]string, error) {
	if !v.IsValid() {
		return [][]string{{"", "", "<nil>"}}, nil
	}

	var rows [][]string
	appendRow := func(key string, value reflect.Value) error {
		str, err := r.sprint(value)
		if err != nil {
			return err
		}
		rows = append(rows, []string{key + "   ", r.dynamicTypeName(value) + "   ", str})
		return nil
	}

	// Values with their own rendering stay in one piece.
	if v.CanInterface() {
		if _, ok := r.typeRenders[v.Type()]; ok {
			return rows, appendRow("", v)
		}
		if v.Type().Implements(prettyRendererType) && !isNilPointer(v) {
			return rows, appendRow("", v)
		}
	}

	switch v.Kind() {
	case reflect.Map:
		s := r.newState(io.Discard)
		s.enter(v, 0)
		entries := sortedEntries(v, func(x reflect.Value) string { return s.text(x, 1) })
		for _, e := range entries {
			key, err := r.sprint(e.key)
			if err != nil {
				return nil, err
			}
			if err := appendRow(key, e.value); err != nil {
				return nil, err
			}
		}

	case reflect.Slice, reflect.Array:
		t := v.Type()
		if t == wstringType || (t.Kind() == reflect.Array && (t.Elem() == charType || t.Elem() == wcharType)) {
			return rows, appendRow("", v)
		}
		if t.Implements(multiMapType) {
			for i := 0; i < v.Len(); i++ {
				pair := v.Index(i)
				key, err := r.sprint(pair.Field(0))
				if err != nil {
					return nil, err
				}
				if err := appendRow(key, pair.Field(1)); err != nil {
					return nil, err
				}
			}
			return rows, nil
		}
		for i := 0; i < v.Len(); i++ {
			if err := appendRow(strconv.Itoa(i), v.Index(i)); err != nil {
				return nil, err
			}
		}

	default:
		return rows, appendRow("", v)
	}
	return rows, nil
}

// dynamicTypeName names the type held by v, looking through interfaces.
func (r *Renderer) dynamicTypeName(v reflect.Value) string {
	for v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "nil"
		}
		v = v.Elem()
	}
	return r.namer.ContainerName(v.Type())
}

func (r *Renderer) sprint(v reflect.Value) (string, error) {
	var buf bytes.Buffer
	if err := r.renderTo(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
