package bind

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/muon-data/go-muon/ir"
	"github.com/muon-data/go-muon/parse"
	"github.com/muon-data/go-muon/token"
)

type character struct {
	Name     string
	Location string
}

type book struct {
	Title      string `muon:"book"`
	Author     string
	Year       *uint16
	Characters []character `muon:"character"`
}

func mustParse(t *testing.T, src string) *ir.Node {
	t.Helper()
	node, err := parse.Parse([]byte(src))
	require.NoError(t, err)
	return node
}

func TestFromNodeStruct(t *testing.T) {
	node := mustParse(t, ""+
		"book: Pale Fire\n"+
		"author: Vladimir Nabokov\n"+
		"year: 1962\n"+
		"character:\n"+
		"  name: John Shade\n"+
		"  location: New Wye\n"+
		"character:\n"+
		"  name: Charles Kinbote\n"+
		"  location: Zembla\n")

	var b book
	require.NoError(t, FromNode(node, &b))

	want := book{
		Title:  "Pale Fire",
		Author: "Vladimir Nabokov",
		Year:   ptr(uint16(1962)),
		Characters: []character{
			{Name: "John Shade", Location: "New Wye"},
			{Name: "Charles Kinbote", Location: "Zembla"},
		},
	}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Errorf("decoded book mismatch (-want +got):\n%s", diff)
	}
}

func ptr[T any](v T) *T { return &v }

func TestFromNodeOptional(t *testing.T) {
	var b book

	// absent: nil pointer
	require.NoError(t, FromNode(mustParse(t, "book: x\nauthor: y\n"), &b))
	require.Nil(t, b.Year)

	// present with no value: non-nil pointer to zero
	require.NoError(t, FromNode(mustParse(t, "book: x\nauthor: y\nyear:\n"), &b))
	require.NotNil(t, b.Year)
	require.Equal(t, uint16(0), *b.Year)

	// present with a value
	require.NoError(t, FromNode(mustParse(t, "book: x\nauthor: y\nyear: 1984\n"), &b))
	require.NotNil(t, b.Year)
	require.Equal(t, uint16(1984), *b.Year)
}

func TestFromNodeMissingField(t *testing.T) {
	var b book
	err := FromNode(mustParse(t, "book: x\n"), &b)
	require.ErrorIs(t, err, ir.ErrMissingField)
	var uerr *UnmarshalError
	require.ErrorAs(t, err, &uerr)
	require.Equal(t, "author", uerr.FieldPath)
}

func TestFromNodeOverflow(t *testing.T) {
	var v struct {
		N int8
	}
	err := FromNode(mustParse(t, "n: 128\n"), &v)
	require.ErrorIs(t, err, ir.ErrOverflow)

	// the same text fits wider targets
	var w struct {
		N int16
	}
	require.NoError(t, FromNode(mustParse(t, "n: 128\n"), &w))
	require.Equal(t, int16(128), w.N)
}

func TestFromNodeScalarKinds(t *testing.T) {
	var v struct {
		B    bool
		I    int
		U    uint8
		F    float64
		S    string
		D    ir.Date
		C    ir.Time `muon:"clock"`
		DT   ir.DateTime
		When time.Time
	}
	node := mustParse(t, ""+
		"b: true\n"+
		"i: -0x10\n"+
		"u: 255\n"+
		"f: 6.022e23\n"+
		"s: plain text\n"+
		"d: 1969-07-20\n"+
		"clock: 20:17:40\n"+
		"dt: 1969-07-20T20:17:40Z\n"+
		"when: 1969-07-20T20:17:40Z\n")
	require.NoError(t, FromNode(node, &v))
	require.True(t, v.B)
	require.Equal(t, -16, v.I)
	require.Equal(t, uint8(255), v.U)
	require.Equal(t, 6.022e23, v.F)
	require.Equal(t, "plain text", v.S)
	require.Equal(t, "1969-07-20", v.D.String())
	require.Equal(t, "20:17:40", v.C.String())
	require.Equal(t, "1969-07-20T20:17:40Z", v.DT.String())
	require.Equal(t, time.Date(1969, 7, 20, 20, 17, 40, 0, time.UTC), v.When)
}

func TestFromNodeDuplicateScalar(t *testing.T) {
	var v struct {
		N int
	}
	err := FromNode(mustParse(t, "n: 1\nn: 2\n"), &v)
	require.ErrorIs(t, err, ir.ErrTypeMismatch)
}

func TestFromNodeSingleLineList(t *testing.T) {
	var v struct {
		Tags []string
	}
	require.NoError(t, FromNode(mustParse(t, "tags: solo\n"), &v))
	require.Equal(t, []string{"solo"}, v.Tags)

	require.NoError(t, FromNode(mustParse(t, "tags: a\ntags: b\n"), &v))
	require.Equal(t, []string{"a", "b"}, v.Tags)
}

func TestFromNodeDictionary(t *testing.T) {
	var v struct {
		Ratings map[string]float64
	}
	require.NoError(t, FromNode(mustParse(t, "ratings:\n  dune: 4.5\n  solaris: 4.75\n"), &v))
	require.Equal(t, map[string]float64{"dune": 4.5, "solaris": 4.75}, v.Ratings)

	// duplicate keys fold into a list when the element type can hold one
	var w struct {
		Index map[string][]int
	}
	require.NoError(t, FromNode(mustParse(t, "index:\n  a: 1\n  a: 2\n  b: 3\n"), &w))
	require.Equal(t, map[string][]int{"a": {1, 2}, "b": {3}}, w.Index)

	// and are a type mismatch when it cannot
	err := FromNode(mustParse(t, "ratings:\n  dune: 4.5\n  dune: 5.0\n"), &v)
	require.ErrorIs(t, err, ir.ErrTypeMismatch)
}

func TestFromNodeDictCapture(t *testing.T) {
	var v struct {
		Name  string
		Extra map[string]string `muon:",dict"`
	}
	node := mustParse(t, "name: main\ncolor: blue\nshape: round\n")
	require.NoError(t, FromNode(node, &v))
	require.Equal(t, "main", v.Name)
	require.Equal(t, map[string]string{"color": "blue", "shape": "round"}, v.Extra)
}

func TestFromNodeStrict(t *testing.T) {
	var v struct {
		Name string
	}
	node := mustParse(t, "name: x\nsurprise: y\n")
	require.NoError(t, FromNode(node, &v))

	err := FromNode(node, &v, Strict())
	require.ErrorIs(t, err, ir.ErrUnknownField)
	var uerr *UnmarshalError
	require.ErrorAs(t, err, &uerr)
	require.Equal(t, "surprise", uerr.FieldPath)
}

func TestFromNodeErrorPositions(t *testing.T) {
	positions := map[*ir.Node]token.Pos{}
	node, err := parse.Parse([]byte("a: 1\nb: not a number\n"), parse.Positions(positions))
	require.NoError(t, err)

	var v struct {
		A int
		B int
	}
	err = FromNode(node, &v, Positions(positions))
	require.ErrorIs(t, err, ir.ErrSyntax)
	var uerr *UnmarshalError
	require.ErrorAs(t, err, &uerr)
	require.Equal(t, "b", uerr.FieldPath)
	require.Equal(t, 2, uerr.Line)
}

func TestFromNodeDynamic(t *testing.T) {
	node := mustParse(t, ""+
		"n: 42\n"+
		"f: 1.5\n"+
		"ok: true\n"+
		"s: hello\n"+
		"pinned: \"42\"\n"+
		"d: 2024-06-01\n"+
		"tag: a\n"+
		"tag: b\n"+
		"nested:\n"+
		"  x: 1\n")
	var got map[string]any
	require.NoError(t, FromNode(node, &got))

	d, _ := ir.ParseDate("2024-06-01")
	want := map[string]any{
		"n":      int64(42),
		"f":      1.5,
		"ok":     true,
		"s":      "hello",
		"pinned": "42",
		"d":      d,
		"tag":    []any{"a", "b"},
		"nested": map[string]any{"x": int64(1)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dynamic decode mismatch (-want +got):\n%s", diff)
	}
}

func TestFromNodeIntoNode(t *testing.T) {
	src := mustParse(t, "n: 42\nn: 43\ns: \"true\"\n")
	var node *ir.Node
	require.NoError(t, FromNode(src, &node))

	ns := ir.Get(node, "n")
	require.NotNil(t, ns)
	require.Equal(t, ir.ArrayType, ns.Type)
	require.Equal(t, int64(42), ns.Values[0].Int)
	require.Equal(t, int64(43), ns.Values[1].Int)

	s := ir.Get(node, "s")
	require.Equal(t, ir.StringType, s.Type)
	require.Equal(t, "true", s.String)
}

func TestFromNodeTypeMismatch(t *testing.T) {
	var v struct {
		N int
	}
	err := FromNode(mustParse(t, "n:\n  deep: 1\n"), &v)
	require.ErrorIs(t, err, ir.ErrTypeMismatch)

	var w struct {
		S character
	}
	err = FromNode(mustParse(t, "s: scalar\n"), &w)
	require.ErrorIs(t, err, ir.ErrTypeMismatch)
}
