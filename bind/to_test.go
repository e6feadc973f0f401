package bind

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/muon-data/go-muon/encode"
	"github.com/muon-data/go-muon/ir"
)

func mustText(t *testing.T, v any) string {
	t.Helper()
	node, err := ToNode(v)
	require.NoError(t, err)
	text, err := encode.String(node)
	require.NoError(t, err)
	return text
}

func TestToNodeStructOrder(t *testing.T) {
	b := book{
		Title:  "Pale Fire",
		Author: "Vladimir Nabokov",
		Year:   ptr(uint16(1962)),
		Characters: []character{
			{Name: "John Shade", Location: "New Wye"},
		},
	}
	want := "" +
		"book: Pale Fire\n" +
		"author: Vladimir Nabokov\n" +
		"year: 1962\n" +
		"character:\n" +
		"  name: John Shade\n" +
		"  location: New Wye\n"
	require.Equal(t, want, mustText(t, b))
}

func TestToNodeOmissions(t *testing.T) {
	b := book{Title: "x", Author: "y"}
	// nil pointer and nil slice write nothing
	require.Equal(t, "book: x\nauthor: y\n", mustText(t, b))
}

func TestToNodeMapSorted(t *testing.T) {
	v := struct {
		Ratings map[string]float64
	}{
		Ratings: map[string]float64{"solaris": 4.75, "dune": 4.5},
	}
	want := "" +
		"ratings:\n" +
		"  dune: 4.5\n" +
		"  solaris: 4.75\n"
	require.Equal(t, want, mustText(t, v))
}

func TestToNodeDictInline(t *testing.T) {
	v := struct {
		Name  string
		Extra map[string]string `muon:",dict"`
	}{
		Name:  "main",
		Extra: map[string]string{"shape": "round", "color": "blue"},
	}
	want := "" +
		"name: main\n" +
		"color: blue\n" +
		"shape: round\n"
	require.Equal(t, want, mustText(t, v))
}

func TestToNodeCalendarTypes(t *testing.T) {
	d, err := ir.ParseDate("1969-07-20")
	require.NoError(t, err)
	v := struct {
		D    ir.Date
		When time.Time
	}{
		D:    d,
		When: time.Date(1969, 7, 20, 20, 17, 40, 0, time.UTC),
	}
	want := "" +
		"d: 1969-07-20\n" +
		"when: 1969-07-20T20:17:40Z\n"
	require.Equal(t, want, mustText(t, v))
}

func TestToNodeZoneOffset(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+30*60)
	v := struct {
		When time.Time
	}{
		When: time.Date(2024, 6, 1, 17, 30, 0, 0, loc),
	}
	require.Equal(t, "when: 2024-06-01T17:30:00+05:30\n", mustText(t, v))
}

func TestToNodeUintOverflow(t *testing.T) {
	v := struct {
		N uint64
	}{N: 1 << 63}
	_, err := ToNode(v)
	require.ErrorIs(t, err, ir.ErrOverflow)
}

func TestToNodeUnsupported(t *testing.T) {
	v := struct {
		C chan int
	}{}
	_, err := ToNode(v)
	require.ErrorIs(t, err, ir.ErrUnsupportedValue)
}

func TestRoundTripThroughText(t *testing.T) {
	orig := book{
		Title:  "The Dispossessed",
		Author: "Ursula K. Le Guin",
		Year:   ptr(uint16(1974)),
		Characters: []character{
			{Name: "Shevek", Location: "Anarres"},
			{Name: "Takver", Location: "Anarres"},
		},
	}
	text := mustText(t, orig)

	node := mustParse(t, text)
	var back book
	require.NoError(t, FromNode(node, &back))
	require.Equal(t, orig, back)
}

func TestDynamicRoundTrip(t *testing.T) {
	obj := &ir.Node{Type: ir.ObjectType}
	obj.Append("n", ir.FromInt(42))
	obj.Append("s", ir.FromString("true"))
	obj.Append("f", ir.FromFloat(2.5))
	obj.Append("tags", ir.FromSlice([]*ir.Node{ir.FromString("a"), ir.FromString("b")}))
	inner := &ir.Node{Type: ir.ObjectType}
	inner.Append("x", ir.FromBool(false))
	obj.Append("nested", inner)

	text, err := encode.String(obj)
	require.NoError(t, err)

	var back *ir.Node
	require.NoError(t, FromNode(mustParse(t, text), &back))

	// folding turns the written list back into an array under its key
	want := obj.Clone()
	require.Zero(t, ir.Compare(want, back),
		"dynamic round trip changed the tree:\n%s", text)
}

func TestToNodeExplicitNull(t *testing.T) {
	// a null node encodes as an explicit empty marker
	v := struct {
		X *ir.Node
	}{X: ir.Null()}
	require.Equal(t, "x:\n", mustText(t, v))
}
