package pretty

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int
}

type label string

type badge struct {
	name string
}

func (b badge) RenderPretty(w io.Writer) error {
	_, err := fmt.Fprintf(w, "<badge %s>", b.name)
	return err
}

type holder struct {
	M map[string]any
}

var errTorn = errors.New("torn")

// torn writes part of its rendering, then fails.
type torn struct{}

func (torn) RenderPretty(w io.Writer) error {
	if _, err := io.WriteString(w, "<"); err != nil {
		return err
	}
	return errTorn
}

func AssertRender(t *testing.T, value any, expected string) {
	t.Helper()
	assert.Equal(t, expected, Render(value))
}

func AssertRenderMatch(t *testing.T, value any, pattern string) string {
	t.Helper()
	str := Render(value)
	assert.Regexp(t, regexp.MustCompile("^"+pattern+"$"), str)
	return str
}

func TestNil(t *testing.T) {
	AssertRender(t, nil, "<nil>")
	AssertRender(t, []any{nil}, "slice<any>[<nil>]")
}

func TestBool(t *testing.T) {
	AssertRender(t, false, "false")
	AssertRender(t, true, "true")
}

func TestNumbers(t *testing.T) {
	AssertRender(t, 42, "42")
	AssertRender(t, -100, "-100")
	AssertRender(t, int8(-128), "-128")
	AssertRender(t, uint64(18446744073709551615), "18446744073709551615")
	AssertRender(t, byte(65), "65")
	AssertRender(t, 3.14, "3.14")
	AssertRender(t, float32(0.1), "0.1")
	AssertRender(t, 1e21, "1e+21")
	AssertRender(t, complex(1, 2), "(1+2i)")

	// Named numeric types are numbers too.
	AssertRender(t, time.Second, "1000000000")
}

func TestNumbersMatchFmt(t *testing.T) {
	for _, v := range []any{0, 7, -7, int64(1) << 62, 2.5, 1.0 / 3.0, float32(1.0 / 3.0), 1e-7, uint16(65535)} {
		assert.Equal(t, fmt.Sprint(v), Render(v), "value %#v", v)
	}
}

func TestChar(t *testing.T) {
	for c := 0x20; c <= 0x7e; c++ {
		if c == '"' {
			continue
		}
		AssertRender(t, Char(c), "'"+string(rune(c))+"'")
	}

	AssertRender(t, Char('"'), `'\"'`)
	AssertRender(t, Char('\n'), `'\n'`)
	AssertRender(t, Char(0), `'\0'`)
	AssertRender(t, Char('\r'), `'\r'`)
	AssertRender(t, Char('\t'), `'\t'`)
	AssertRender(t, Char('\a'), `'\a'`)
	AssertRender(t, Char(0x1b), `'\x1b'`)
	AssertRender(t, Char(0x7f), `'\x7f'`)
	AssertRender(t, Char(0xff), `'\xff'`)
}

func TestWideChar(t *testing.T) {
	AssertRender(t, WChar('a'), `L'a'`)
	AssertRender(t, WChar('"'), `L'\"'`)
	AssertRender(t, WChar('\n'), `L'\n'`)
	AssertRender(t, WChar('é'), `L'\xe9'`)
	AssertRender(t, WChar('€'), `L'\u20ac'`)
	AssertRender(t, WChar('😀'), `L'\U0001f600'`)
}

func TestString(t *testing.T) {
	AssertRender(t, "hi", `"hi"`)
	AssertRender(t, "", `""`)
	AssertRender(t, `say "hi"`, `"say \"hi\""`)
	AssertRender(t, "tab\there\n", `"tab\there\n"`)
	AssertRender(t, `back\slash`, `"back\slash"`)
	AssertRender(t, "é", `"\xc3\xa9"`)
	AssertRender(t, label("named"), `"named"`)
}

func TestWideString(t *testing.T) {
	AssertRender(t, WString("hi"), `L"hi"`)
	AssertRender(t, WString(""), `L""`)
	AssertRender(t, WString("€5"), `L"\u20ac5"`)
}

func TestCharArray(t *testing.T) {
	AssertRender(t, [6]Char{'h', 'e', 'l', 'l', 'o'}, `(char[6])"hello"`)
	AssertRender(t, [2]Char{'o', 'k'}, `(char[2])"ok"`)
	AssertRender(t, [4]Char{'a', 0, 'b'}, `(char[4])"a\0b"`)
	AssertRender(t, [6]Char{'a', 0, 'b'}, `(char[6])"a\0b"`)
	AssertRender(t, [3]Char{}, `(char[3])""`)
	AssertRender(t, [4]WChar{0, 'x'}, `(wchar[4])L"\0x"`)
	AssertRender(t, [3]WChar{'h', 'i'}, `(wchar[3])L"hi"`)
}

func TestSequence(t *testing.T) {
	AssertRender(t, []int{}, "slice<int>[]")
	AssertRender(t, []int(nil), "slice<int>[]")
	AssertRender(t, []int{1, 2, 3}, "slice<int>[1, 2, 3]")
	AssertRender(t, [2]string{"a", "b"}, `array<string>["a", "b"]`)
	AssertRender(t, []Char{'h', 'i'}, `slice<char>['h', 'i']`)
	AssertRender(t, []WChar{'h'}, `slice<wchar>[L'h']`)
	AssertRender(t, []any{1, "a", 2.5}, `slice<any>[1, "a", 2.5]`)
	AssertRender(t, []WString{WString("x")}, `slice<wstring>[L"x"]`)
}

func TestMap(t *testing.T) {
	AssertRender(t, map[string]int{}, "map<string,int>{}")
	AssertRender(t, map[string]int(nil), "map<string,int>{}")
	AssertRender(t, map[string]int{"a": 1}, `map<string,int>{"a"=1}`)
	AssertRender(t, map[string]int{"c": 3, "a": 1, "b": 2}, `map<string,int>{"a"=1, "b"=2, "c"=3}`)
	AssertRender(t, map[int]string{3: "c", -1: "z", 2: "b"}, `map<int,string>{-1="z", 2="b", 3="c"}`)
	AssertRender(t, map[Char]bool{'b': true, 'a': false}, `map<char,bool>{'a'=false, 'b'=true}`)
	AssertRender(t, map[any]int{"x": 1, 2: 2}, `map<any,int>{2=2, "x"=1}`)
}

func TestMultiMap(t *testing.T) {
	var m MultiMap[string, int]
	AssertRender(t, m, "multimap<string,int>{}")

	m.Add("b", 1)
	m.Add("a", 2)
	m.Add("b", 3)
	AssertRender(t, m, `multimap<string,int>{"b"=1, "a"=2, "b"=3}`)
}

func TestNested(t *testing.T) {
	AssertRender(t, map[string][]int{"k": {1, 2}}, `map<string,[]int>{"k"=slice<int>[1, 2]}`)
	AssertRender(t, [][]int{{1}, {}}, "slice<[]int>[slice<int>[1], slice<int>[]]")
	AssertRender(t, []map[string]int{{"a": 1}}, `slice<map[string]int>[map<string,int>{"a"=1}]`)

	m := map[string][]map[float64]string{"funk": {{0: "shpork", 4.5: "shpork"}}}
	AssertRender(t, m, `map<string,[]map[float64]string>{"funk"=slice<map[float64]string>[map<float64,string>{0="shpork", 4.5="shpork"}]}`)
}

func TestIdempotent(t *testing.T) {
	value := map[string]any{
		"list":  []int{3, 2, 1},
		"inner": map[int]string{5: "e", 1: "a", 3: "c", 2: "b", 4: "d"},
		"ptr":   &point{1, 2},
	}
	assert.Equal(t, Render(value), Render(value))

	// NaN keys never compare equal, so ties fall back to the rendered value.
	nans := map[float64]int{}
	for i := 7; i >= 0; i-- {
		nans[math.NaN()] = i
	}
	AssertRender(t, nans, "map<float64,int>{NaN=0, NaN=1, NaN=2, NaN=3, NaN=4, NaN=5, NaN=6, NaN=7}")
	assert.Equal(t, Render(nans), Render(nans))

	self := map[float64]any{}
	self[math.NaN()] = 1
	self[math.NaN()] = self
	AssertRenderMatch(t, self, `map<float64,any>\{NaN=\(map<float64,any>\)0x[0-9a-f]+, NaN=1\}`)
}

func TestUnknown(t *testing.T) {
	p := &point{1, 2}
	first := AssertRenderMatch(t, p, `\(\*pretty\.point\)0x[0-9a-f]+`)
	assert.Equal(t, first, Render(p))

	AssertRender(t, (*int)(nil), "(*int)0x0")
	AssertRender(t, (func(int) bool)(nil), "(func(int) bool)0x0")
	AssertRenderMatch(t, func() {}, `\(func\(\)\)0x[0-9a-f]+`)
	AssertRenderMatch(t, make(chan int), `\(chan int\)0x[0-9a-f]+`)

	// A struct copy has no address of its own, its fields are shown instead.
	AssertRender(t, point{1, 2}, "(pretty.point){X=1, Y=2}")
	AssertRender(t, []any{point{3, 4}}, "slice<any>[(pretty.point){X=3, Y=4}]")
	AssertRender(t, struct{}{}, "(struct {}){}")
	AssertRender(t, holder{M: map[string]any{"k": Char('c')}}, `(pretty.holder){M=map<string,any>{"k"='c'}}`)

	// Slice elements do.
	points := []point{{1, 2}, {3, 4}}
	first = AssertRenderMatch(t, points, `slice<pretty\.point>\[\(pretty\.point\)0x[0-9a-f]+, \(pretty\.point\)0x[0-9a-f]+\]`)
	assert.Equal(t, first, Render(points))
}

func TestCycles(t *testing.T) {
	s := []any{1, nil}
	s[1] = s
	AssertRenderMatch(t, s, `slice<any>\[1, \(slice<any>\)0x[0-9a-f]+\]`)

	m := map[string]any{"n": 1}
	m["self"] = m
	AssertRenderMatch(t, m, `map<string,any>\{"n"=1, "self"=\(map<string,any>\)0x[0-9a-f]+\}`)

	// A map reaching itself through a struct copy.
	h := map[string]any{}
	h["s"] = holder{M: h}
	AssertRenderMatch(t, h, `map<string,any>\{"s"=\(pretty\.holder\)\{M=\(map<string,any>\)0x[0-9a-f]+\}\}`)

	// The same slice twice side by side is not a cycle.
	inner := []int{1}
	AssertRender(t, [][]int{inner, inner}, "slice<[]int>[slice<int>[1], slice<int>[1]]")
}

func TestMaxDepth(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, WithMaxDepth(1))
	require.NoError(t, r.Render([][]int{{1}}))
	assert.Regexp(t, `^slice<\[\]int>\[\(slice<int>\)0x[0-9a-f]+\]$`, buf.String())

	buf.Reset()
	require.NoError(t, r.Render([]any{point{1, 2}}))
	assert.Equal(t, "slice<any>[(pretty.point){...}]", buf.String())

	buf.Reset()
	require.NoError(t, r.Render(42))
	assert.Equal(t, "42", buf.String())
}

func TestTypeRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)
	RegisterTypeRenderer(r, func(w io.Writer, d time.Duration) error {
		_, err := io.WriteString(w, d.String())
		return err
	})

	require.NoError(t, r.Render([]time.Duration{time.Second, time.Minute}))
	assert.Equal(t, "slice<time.Duration>[1s, 1m0s]", buf.String())

	buf.Reset()
	require.NoError(t, r.Render([]any{time.Hour}))
	assert.Equal(t, "slice<any>[1h0m0s]", buf.String())
}

func TestPrettyRenderer(t *testing.T) {
	AssertRender(t, badge{"gold"}, "<badge gold>")
	AssertRender(t, map[string]badge{"x": {"tin"}}, `map<string,pretty.badge>{"x"=<badge tin>}`)
}

type failingWriter struct {
	writes int
}

var errSinkFull = errors.New("sink full")

func (f *failingWriter) Write(p []byte) (int, error) {
	f.writes++
	return 0, errSinkFull
}

func TestSinkError(t *testing.T) {
	w := &failingWriter{}
	err := Write(w, []int{1, 2, 3})
	require.ErrorIs(t, err, errSinkFull)
	assert.Equal(t, 1, w.writes)
}

func TestHookError(t *testing.T) {
	errHook := errors.New("hook failed")
	var buf bytes.Buffer
	r := NewRenderer(&buf)
	RegisterTypeRenderer(r, func(io.Writer, point) error { return errHook })

	err := r.Render(point{})
	require.ErrorIs(t, err, errHook)
}

func TestHookErrorTruncates(t *testing.T) {
	value := []any{1, torn{}, 2}
	AssertRender(t, value, "slice<any>[1, <")

	var buf bytes.Buffer
	err := Write(&buf, value)
	require.ErrorIs(t, err, errTorn)
	assert.Equal(t, "slice<any>[1, <", buf.String())
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string]int{"a": 1}))
	assert.Equal(t, `map<string,int>{"a"=1}`, buf.String())
}

func TestFormatter(t *testing.T) {
	assert.Equal(t, "v=slice<int>[1, 2]", fmt.Sprintf("v=%v", Formatter([]int{1, 2})))
	assert.Equal(t, `"x"`, fmt.Sprint(Formatter("x")))
}
