// Package parse builds MuON document trees from text.
//
// The result is an ir.Node object whose scalar values are all raw
// strings (ir.StringType) or empty markers (ir.NullType): the parser
// knows the shape of the document but not the types of its values.
package parse

import (
	"fmt"

	"github.com/muon-data/go-muon/ir"
	"github.com/muon-data/go-muon/token"
)

// Parse reads a whole document into a tree. The root is always an
// object; an empty document parses to an empty object.
func Parse(data []byte, opts ...Option) (*ir.Node, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	lines, err := token.Tokenize(data)
	if err != nil {
		return nil, err
	}

	root := &ir.Node{Type: ir.ObjectType}
	// stack[i] is the open object at indent i
	stack := []*ir.Node{root}
	var last *ir.Node
	var lastHadValue bool

	for _, ln := range lines {
		switch {
		case ln.Indent == len(stack):
			// one level deeper: the previous line opens a nested object
			if last == nil {
				return nil, &token.SyntaxError{Pos: ln.Pos, Msg: "unexpected indent"}
			}
			if lastHadValue {
				return nil, &token.SyntaxError{Pos: ln.Pos, Msg: "cannot nest under a line with a value"}
			}
			last.Type = ir.ObjectType
			stack = append(stack, last)
		case ln.Indent > len(stack):
			return nil, &token.SyntaxError{
				Pos: ln.Pos,
				Msg: fmt.Sprintf("indent jumps %d levels", ln.Indent-len(stack)+1),
			}
		default:
			stack = stack[:ln.Indent+1]
		}

		val := &ir.Node{Type: ir.NullType}
		if ln.HasValue {
			val.Type = ir.StringType
			val.String = ln.Value
			val.Raw = !ln.Quoted
		}
		parent := stack[len(stack)-1]
		parent.Append(ln.Key, val)
		o.record(val, ln.Pos)
		last = val
		lastHadValue = ln.HasValue
	}
	return root, nil
}
