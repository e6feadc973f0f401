package bind

import (
	"github.com/muon-data/go-muon/ir"
	"github.com/muon-data/go-muon/scalar"
)

// Interpret normalizes a tree for dynamic consumers: raw scalar text
// is inferred to its typed form and repeated keys fold into lists at
// the position of the first occurrence. The input is not modified.
func Interpret(node *ir.Node) *ir.Node {
	if node == nil {
		return nil
	}
	switch node.Type {
	case ir.StringType:
		if node.Raw {
			if typed := scalar.Infer(node.String); typed != nil {
				return typed
			}
		}
		return ir.FromString(node.String)
	case ir.ArrayType:
		vals := make([]*ir.Node, len(node.Values))
		for i, v := range node.Values {
			vals[i] = Interpret(v)
		}
		return ir.FromSlice(vals)
	case ir.ObjectType:
		res := &ir.Node{Type: ir.ObjectType}
		for _, g := range groupFields(node) {
			if len(g.nodes) == 1 {
				res.Append(g.key, Interpret(g.nodes[0]))
				continue
			}
			vals := make([]*ir.Node, len(g.nodes))
			for i, n := range g.nodes {
				vals[i] = Interpret(n)
			}
			res.Append(g.key, ir.FromSlice(vals))
		}
		return res
	default:
		return node.Clone()
	}
}

// ToAny materializes a node as plain Go values: nil, bool, int64,
// float64, string, ir.Date/Time/DateTime, []any and map[string]any.
func ToAny(node *ir.Node) (any, error) {
	d := &decoder{opts: &options{}}
	return d.decodeAny(node, "")
}

func (d *decoder) decodeAny(node *ir.Node, path string) (any, error) {
	switch node.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.IntType:
		return node.Int, nil
	case ir.FloatType:
		return node.Float, nil
	case ir.DateType:
		return node.Date, nil
	case ir.TimeType:
		return node.Time, nil
	case ir.DateTimeType:
		return node.DateTime, nil
	case ir.StringType:
		if node.Raw {
			if typed := scalar.Infer(node.String); typed != nil {
				return d.decodeAny(typed, path)
			}
		}
		return node.String, nil
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			elem, err := d.decodeAny(v, path)
			if err != nil {
				return nil, err
			}
			res[i] = elem
		}
		return res, nil
	case ir.ObjectType:
		res := make(map[string]any, len(node.Fields))
		for _, g := range groupFields(node) {
			entryPath := joinPath(path, g.key)
			if len(g.nodes) == 1 {
				v, err := d.decodeAny(g.nodes[0], entryPath)
				if err != nil {
					return nil, err
				}
				res[g.key] = v
				continue
			}
			list := make([]any, len(g.nodes))
			for i, n := range g.nodes {
				v, err := d.decodeAny(n, entryPath)
				if err != nil {
					return nil, err
				}
				list[i] = v
			}
			res[g.key] = list
		}
		return res, nil
	}
	return nil, &UnmarshalError{
		FieldPath: path,
		Message:   "unexpected node type",
		Err:       ir.ErrUnsupportedValue,
	}
}
