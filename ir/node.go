package ir

import (
	"slices"
)

type Type int

const (
	NullType Type = iota
	BoolType
	IntType
	FloatType
	StringType
	DateType
	TimeType
	DateTimeType
	ObjectType
	ArrayType
)

func (t Type) String() string {
	return map[Type]string{
		NullType:     "null",
		BoolType:     "bool",
		IntType:      "int",
		FloatType:    "float",
		StringType:   "string",
		DateType:     "date",
		TimeType:     "time",
		DateTimeType: "datetime",
		ObjectType:   "object",
		ArrayType:    "array",
	}[t]
}

func Types() []Type {
	return []Type{
		NullType, BoolType, IntType, FloatType, StringType,
		DateType, TimeType, DateTimeType, ObjectType, ArrayType,
	}
}

// Node is one value in a MuON document tree. Which value fields are
// meaningful depends on Type. For ObjectType, Fields holds the key nodes
// (always StringType) and Values the corresponding field values, index
// aligned; for ArrayType only Values is used.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string

	Fields []*Node
	Values []*Node

	// Raw marks a StringType scalar as uninterpreted source text rather
	// than a known string. The parser sets it for unquoted values; the
	// bind package's dynamic inference applies only to raw scalars.
	Raw bool

	String   string
	Bool     bool
	Int      int64
	Float    float64
	Date     Date
	Time     Time
	DateTime DateTime
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: IntType, Int: v}
}

func FromFloat(v float64) *Node {
	return &Node{Type: FloatType, Float: v}
}

func FromDate(v Date) *Node {
	return &Node{Type: DateType, Date: v}
}

func FromTime(v Time) *Node {
	return &Node{Type: TimeType, Time: v}
}

func FromDateTime(v DateTime) *Node {
	return &Node{Type: DateTimeType, DateTime: v}
}

func Null() *Node {
	return &Node{Type: NullType}
}

type KeyVal struct {
	Key *Node
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	return FromKeyValsAt(&Node{}, kvs)
}

func FromKeyValsAt(res *Node, kvs []KeyVal) *Node {
	res.Type = ObjectType
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		kv.Key.Parent = res
		kv.Key.ParentIndex = i
		kv.Key.ParentField = kv.Key.String
		kv.Val.Parent = res
		kv.Val.ParentIndex = i
		kv.Val.ParentField = kv.Key.String
		res.Fields[i] = kv.Key
		res.Values[i] = kv.Val
	}
	return res
}

// FromMap builds an object node from a Go map. Go maps are unordered, so
// keys are emitted in sorted order to keep output deterministic.
func FromMap(m map[string]*Node) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]*Node, len(m))
	res.Values = make([]*Node, len(m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for i, key := range keys {
		v := m[key]
		v.Parent = res
		v.ParentIndex = i
		v.ParentField = key
		res.Fields[i] = &Node{
			Parent:      res,
			ParentIndex: i,
			ParentField: key,
			Type:        StringType,
			String:      key,
		}
		res.Values[i] = v
	}
	return res
}

func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i := range node.Fields {
		res[node.Fields[i].String] = node.Values[i]
	}
	return res
}

func FromSlice(vs []*Node) *Node {
	res := &Node{Type: ArrayType}
	res.Values = make([]*Node, len(vs))
	for i, v := range vs {
		v.Parent = res
		v.ParentIndex = i
		res.Values[i] = v
	}
	return res
}

// Get returns the value of the first field named field, or nil.
func Get(y *Node, field string) *Node {
	for i := range y.Fields {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

// Append adds a field to an object node, keeping parent links consistent.
func (y *Node) Append(key string, val *Node) {
	i := len(y.Fields)
	k := &Node{
		Parent:      y,
		ParentIndex: i,
		ParentField: key,
		Type:        StringType,
		String:      key,
	}
	val.Parent = y
	val.ParentIndex = i
	val.ParentField = key
	y.Fields = append(y.Fields, k)
	y.Values = append(y.Values, val)
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Raw = y.Raw
	dst.String = y.String
	dst.Bool = y.Bool
	dst.Int = y.Int
	dst.Float = y.Float
	dst.Date = y.Date
	dst.Time = y.Time
	dst.DateTime = y.DateTime
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dstI := yv.CloneTo(&Node{})
			dstI.Parent = dst
			dstI.ParentIndex = i
			dstI.ParentField = yv.ParentField
			dst.Values[i] = dstI
		}
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, yf := range y.Fields {
			dstI := yf.CloneTo(&Node{})
			dstI.Parent = dst
			dstI.ParentIndex = i
			dstI.ParentField = yf.String
			dst.Fields[i] = dstI
		}
	}
	return dst
}

// Visit walks the tree depth first. f is called before and after the
// children of each node; returning false from the pre call skips them.
func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// IsScalar reports whether the node is a leaf value.
func (y *Node) IsScalar() bool {
	switch y.Type {
	case ObjectType, ArrayType:
		return false
	}
	return true
}
