// Package encode writes ir.Node trees as MuON text.
//
// Output always round-trips: every key and value that could be
// misread is quoted, using the predicates in the token package, so
// parsing the output yields the tree that was written. Raw strings
// from a parsed document pass through verbatim, so re-encoding a
// parsed tree reproduces the source text.
package encode

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/muon-data/go-muon/ir"
	"github.com/muon-data/go-muon/scalar"
	"github.com/muon-data/go-muon/token"
)

type encState struct {
	indent int
	Color  func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w. The root must be an object; MuON documents
// have no other top-level form.
func Encode(node *ir.Node, w io.Writer, opts ...Option) error {
	es := &encState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if node == nil || node.Type != ir.ObjectType {
		return fmt.Errorf("%w: document root must be an object", ir.ErrUnsupportedValue)
	}
	return encodeFields(node, w, es, 0)
}

// String renders node to a string.
func String(node *ir.Node, opts ...Option) (string, error) {
	var buf bytes.Buffer
	if err := Encode(node, &buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func encodeFields(obj *ir.Node, w io.Writer, es *encState, depth int) error {
	for i := range obj.Fields {
		key := obj.Fields[i].String
		val := obj.Values[i]
		if val.Type == ir.ArrayType {
			if err := encodeList(key, val, w, es, depth); err != nil {
				return err
			}
			continue
		}
		if err := encodeField(key, val, w, es, depth); err != nil {
			return err
		}
	}
	return nil
}

// encodeList writes one line per element, all under the same key.
// An empty list writes nothing: absence is how the format spells it.
func encodeList(key string, arr *ir.Node, w io.Writer, es *encState, depth int) error {
	for _, elem := range arr.Values {
		if elem.Type == ir.ArrayType {
			return fmt.Errorf("%w: nested list under %q has no text form", ir.ErrUnsupportedValue, key)
		}
		if err := encodeField(key, elem, w, es, depth); err != nil {
			return err
		}
	}
	return nil
}

func encodeField(key string, val *ir.Node, w io.Writer, es *encState, depth int) error {
	if err := writeKey(key, val.Type, w, es, depth); err != nil {
		return err
	}
	switch val.Type {
	case ir.NullType:
		return writeString(w, "\n")
	case ir.ObjectType:
		if err := writeString(w, "\n"); err != nil {
			return err
		}
		return encodeFields(val, w, es, depth+1)
	default:
		text, err := scalarText(val)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		text = es.color(val.Type, ValueColor, text)
		return writeString(w, " "+text+"\n")
	}
}

func writeKey(key string, vt ir.Type, w io.Writer, es *encState, depth int) error {
	if token.NeedQuoteKey(key) {
		key = token.Quote(key)
	}
	pad := strings.Repeat(" ", es.indent*depth)
	key = es.color(vt, FieldColor, key)
	sep := es.color(vt, SepColor, ":")
	return writeString(w, pad+key+sep)
}

func scalarText(val *ir.Node) (string, error) {
	switch val.Type {
	case ir.BoolType:
		return scalar.FormatBool(val.Bool), nil
	case ir.IntType:
		return scalar.FormatInt(val.Int), nil
	case ir.FloatType:
		return scalar.FormatFloat(val.Float)
	case ir.StringType:
		// raw text came off a parsed line verbatim and reads back the
		// same way; quoting it would pin it as a string on re-parse
		if !val.Raw && token.NeedQuoteValue(val.String) {
			return token.Quote(val.String), nil
		}
		return val.String, nil
	case ir.DateType:
		return val.Date.String(), nil
	case ir.TimeType:
		return val.Time.String(), nil
	case ir.DateTimeType:
		return val.DateTime.String(), nil
	}
	return "", fmt.Errorf("%w: cannot encode %s scalar", ir.ErrUnsupportedValue, val.Type)
}

func (es *encState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}
