// Package bind maps between ir.Node trees and Go values.
//
// Decoding interprets the raw scalars of a parsed tree against the
// target type, so the same document text can read as an int8, a
// float64 or a string depending on where it lands. Encoding builds
// typed trees from Go values; the encode package turns those into
// text. Struct fields are declared with `muon:"..."` tags.
package bind

import (
	"fmt"
	"reflect"
	"time"

	"github.com/muon-data/go-muon/ir"
	"github.com/muon-data/go-muon/scalar"
)

var (
	nodeType     = reflect.TypeOf((*ir.Node)(nil))
	dateType     = reflect.TypeOf(ir.Date{})
	clockType    = reflect.TypeOf(ir.Time{})
	dateTimeType = reflect.TypeOf(ir.DateTime{})
	stdTimeType  = reflect.TypeOf(time.Time{})
)

// FromNode decodes node into v, which must be a non-nil pointer.
func FromNode(node *ir.Node, v any, opts ...Option) error {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if node == nil {
		return &UnmarshalError{Message: "source node is nil"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return &UnmarshalError{Message: "destination must be a non-nil pointer"}
	}
	d := &decoder{opts: o}
	return d.decode(node, val.Elem(), "")
}

type decoder struct {
	opts *options
}

func (d *decoder) decode(node *ir.Node, val reflect.Value, path string) error {
	typ := val.Type()
	switch typ {
	case nodeType:
		val.Set(reflect.ValueOf(Interpret(node)))
		return nil
	case dateType:
		return d.decodeDate(node, val, path)
	case clockType:
		return d.decodeClock(node, val, path)
	case dateTimeType:
		return d.decodeDateTime(node, val, path)
	case stdTimeType:
		return d.decodeStdTime(node, val, path)
	}

	switch typ.Kind() {
	case reflect.Ptr:
		if node.Type == ir.NullType {
			// present with no value: non-nil pointer to the zero value
			val.Set(reflect.New(typ.Elem()))
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		return d.decode(node, val.Elem(), path)

	case reflect.Interface:
		if typ.NumMethod() != 0 {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("unsupported target type %s", typ),
				Err:       ir.ErrUnsupportedValue,
			}
		}
		got, err := d.decodeAny(node, path)
		if err != nil {
			return err
		}
		if got == nil {
			val.Set(reflect.Zero(typ))
		} else {
			val.Set(reflect.ValueOf(got))
		}
		return nil

	case reflect.String:
		return d.decodeString(node, val, path)
	case reflect.Bool:
		return d.decodeBool(node, val, path)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return d.decodeInt(node, val, path)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return d.decodeUint(node, val, path)
	case reflect.Float32, reflect.Float64:
		return d.decodeFloat(node, val, path)
	case reflect.Slice, reflect.Array:
		return d.decodeList(node, val, path)
	case reflect.Map:
		return d.decodeMap(node, val, path)
	case reflect.Struct:
		return d.decodeStruct(node, val, path)
	}
	return &UnmarshalError{
		FieldPath: path,
		Message:   fmt.Sprintf("unsupported target type %s", typ),
		Err:       ir.ErrUnsupportedValue,
	}
}

func (d *decoder) decodeString(node *ir.Node, val reflect.Value, path string) error {
	switch node.Type {
	case ir.StringType:
		val.SetString(node.String)
		return nil
	case ir.NullType:
		val.SetString("")
		return nil
	}
	return d.typeErrf(node, path, "expected text, got %s", node.Type)
}

func (d *decoder) decodeBool(node *ir.Node, val reflect.Value, path string) error {
	switch node.Type {
	case ir.BoolType:
		val.SetBool(node.Bool)
		return nil
	case ir.StringType:
		b, err := scalar.ParseBool(node.String)
		if err != nil {
			return d.wrap(node, path, err)
		}
		val.SetBool(b)
		return nil
	case ir.NullType:
		val.SetBool(false)
		return nil
	}
	return d.typeErrf(node, path, "expected bool, got %s", node.Type)
}

func (d *decoder) decodeInt(node *ir.Node, val reflect.Value, path string) error {
	switch node.Type {
	case ir.IntType:
		if val.OverflowInt(node.Int) {
			return &UnmarshalError{
				FieldPath: path,
				Line:      d.opts.line(node),
				Message:   fmt.Sprintf("value %d does not fit in %s", node.Int, val.Type()),
				Err:       ir.ErrOverflow,
			}
		}
		val.SetInt(node.Int)
		return nil
	case ir.StringType:
		v, err := scalar.ParseInt(node.String, intBits(val.Type()))
		if err != nil {
			return d.wrap(node, path, err)
		}
		val.SetInt(v)
		return nil
	case ir.NullType:
		val.SetInt(0)
		return nil
	}
	return d.typeErrf(node, path, "expected integer, got %s", node.Type)
}

func (d *decoder) decodeUint(node *ir.Node, val reflect.Value, path string) error {
	switch node.Type {
	case ir.IntType:
		if node.Int < 0 || val.OverflowUint(uint64(node.Int)) {
			return &UnmarshalError{
				FieldPath: path,
				Line:      d.opts.line(node),
				Message:   fmt.Sprintf("value %d does not fit in %s", node.Int, val.Type()),
				Err:       ir.ErrOverflow,
			}
		}
		val.SetUint(uint64(node.Int))
		return nil
	case ir.StringType:
		v, err := scalar.ParseUint(node.String, intBits(val.Type()))
		if err != nil {
			return d.wrap(node, path, err)
		}
		val.SetUint(v)
		return nil
	case ir.NullType:
		val.SetUint(0)
		return nil
	}
	return d.typeErrf(node, path, "expected integer, got %s", node.Type)
}

func (d *decoder) decodeFloat(node *ir.Node, val reflect.Value, path string) error {
	switch node.Type {
	case ir.FloatType:
		val.SetFloat(node.Float)
		return nil
	case ir.IntType:
		val.SetFloat(float64(node.Int))
		return nil
	case ir.StringType:
		v, err := scalar.ParseFloat(node.String, val.Type().Bits())
		if err != nil {
			return d.wrap(node, path, err)
		}
		val.SetFloat(v)
		return nil
	case ir.NullType:
		val.SetFloat(0)
		return nil
	}
	return d.typeErrf(node, path, "expected float, got %s", node.Type)
}

func (d *decoder) decodeDate(node *ir.Node, val reflect.Value, path string) error {
	switch node.Type {
	case ir.DateType:
		val.Set(reflect.ValueOf(node.Date))
		return nil
	case ir.StringType:
		v, err := ir.ParseDate(node.String)
		if err != nil {
			return d.wrap(node, path, err)
		}
		val.Set(reflect.ValueOf(v))
		return nil
	case ir.NullType:
		val.Set(reflect.Zero(dateType))
		return nil
	}
	return d.typeErrf(node, path, "expected date, got %s", node.Type)
}

func (d *decoder) decodeClock(node *ir.Node, val reflect.Value, path string) error {
	switch node.Type {
	case ir.TimeType:
		val.Set(reflect.ValueOf(node.Time))
		return nil
	case ir.StringType:
		v, err := ir.ParseTime(node.String)
		if err != nil {
			return d.wrap(node, path, err)
		}
		val.Set(reflect.ValueOf(v))
		return nil
	case ir.NullType:
		val.Set(reflect.Zero(clockType))
		return nil
	}
	return d.typeErrf(node, path, "expected time, got %s", node.Type)
}

func (d *decoder) decodeDateTime(node *ir.Node, val reflect.Value, path string) error {
	switch node.Type {
	case ir.DateTimeType:
		val.Set(reflect.ValueOf(node.DateTime))
		return nil
	case ir.StringType:
		v, err := ir.ParseDateTime(node.String)
		if err != nil {
			return d.wrap(node, path, err)
		}
		val.Set(reflect.ValueOf(v))
		return nil
	case ir.NullType:
		val.Set(reflect.Zero(dateTimeType))
		return nil
	}
	return d.typeErrf(node, path, "expected datetime, got %s", node.Type)
}

func (d *decoder) decodeStdTime(node *ir.Node, val reflect.Value, path string) error {
	var dt ir.DateTime
	switch node.Type {
	case ir.DateTimeType:
		dt = node.DateTime
	case ir.StringType:
		v, err := ir.ParseDateTime(node.String)
		if err != nil {
			return d.wrap(node, path, err)
		}
		dt = v
	case ir.NullType:
		val.Set(reflect.Zero(stdTimeType))
		return nil
	default:
		return d.typeErrf(node, path, "expected datetime, got %s", node.Type)
	}
	val.Set(reflect.ValueOf(goTime(dt)))
	return nil
}

func goTime(dt ir.DateTime) time.Time {
	loc := time.UTC
	if secs := dt.Offset().Seconds(); secs != 0 {
		loc = time.FixedZone("", secs)
	}
	d, t := dt.Date(), dt.Time()
	return time.Date(d.Year(), time.Month(d.Month()), d.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

func (d *decoder) decodeList(node *ir.Node, val reflect.Value, path string) error {
	var elems []*ir.Node
	switch node.Type {
	case ir.ArrayType:
		elems = node.Values
	case ir.NullType:
	default:
		// a lone line is a one-element list
		elems = []*ir.Node{node}
	}
	typ := val.Type()
	if typ.Kind() == reflect.Array {
		if val.Len() != len(elems) {
			return d.typeErrf(node, path, "expected %d elements, got %d", val.Len(), len(elems))
		}
	} else {
		val.Set(reflect.MakeSlice(typ, len(elems), len(elems)))
	}
	for i, elem := range elems {
		if err := d.decode(elem, val.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) decodeMap(node *ir.Node, val reflect.Value, path string) error {
	typ := val.Type()
	if typ.Key().Kind() != reflect.String {
		return &UnmarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("unsupported map key type %s", typ.Key()),
			Err:       ir.ErrUnsupportedValue,
		}
	}
	val.Set(reflect.MakeMap(typ))
	if node.Type == ir.NullType {
		return nil
	}
	if node.Type != ir.ObjectType {
		return d.typeErrf(node, path, "expected nested fields, got %s", node.Type)
	}
	for _, group := range groupFields(node) {
		elem := reflect.New(typ.Elem()).Elem()
		entry, err := d.foldGroup(group, typ.Elem(), path)
		if err != nil {
			return err
		}
		if err := d.decode(entry, elem, joinPath(path, group.key)); err != nil {
			return err
		}
		val.SetMapIndex(reflect.ValueOf(group.key).Convert(typ.Key()), elem)
	}
	return nil
}

// foldGroup reduces the occurrences of one key to a single node:
// repeats fold to a list when the target can hold one, and are a
// type mismatch otherwise.
func (d *decoder) foldGroup(group fieldGroup, elem reflect.Type, path string) (*ir.Node, error) {
	if len(group.nodes) == 1 {
		return group.nodes[0], nil
	}
	if !foldable(elem) {
		return nil, &UnmarshalError{
			FieldPath: joinPath(path, group.key),
			Line:      d.opts.line(group.nodes[1]),
			Message:   fmt.Sprintf("duplicate field %q for single-valued target", group.key),
			Err:       ir.ErrTypeMismatch,
		}
	}
	return &ir.Node{Type: ir.ArrayType, Values: group.nodes}, nil
}

func foldable(t reflect.Type) bool {
	if t == nodeType {
		return true
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return true
	case reflect.Interface:
		return t.NumMethod() == 0
	}
	return false
}

func (d *decoder) decodeStruct(node *ir.Node, val reflect.Value, path string) error {
	if node.Type != ir.ObjectType && node.Type != ir.NullType {
		return d.typeErrf(node, path, "expected nested fields, got %s", node.Type)
	}
	typ := val.Type()
	specs, err := structFields(typ)
	if err != nil {
		return &UnmarshalError{FieldPath: path, Message: err.Error()}
	}
	claimed := map[string]bool{}
	var dictSpec *fieldSpec
	for i := range specs {
		spec := &specs[i]
		if spec.dict {
			if dictSpec == nil {
				dictSpec = spec
			}
			continue
		}
		claimed[spec.name] = true
	}

	groups := groupFields(node)
	byName := make(map[string]fieldGroup, len(groups))
	for _, g := range groups {
		byName[g.key] = g
	}

	for i := range specs {
		spec := &specs[i]
		if spec.dict {
			continue
		}
		fieldPath := joinPath(path, spec.name)
		group, ok := byName[spec.name]
		if !ok {
			if required(spec.typ) {
				return &UnmarshalError{
					FieldPath: fieldPath,
					Line:      d.opts.line(node),
					Message:   fmt.Sprintf("missing field %q", spec.name),
					Err:       ir.ErrMissingField,
				}
			}
			continue
		}
		entry, err := d.foldGroup(group, spec.typ, path)
		if err != nil {
			return err
		}
		if err := d.decode(entry, val.FieldByIndex(spec.index), fieldPath); err != nil {
			return err
		}
	}

	// leftovers go to the dict field, or are unknown
	var leftover []fieldGroup
	for _, g := range groups {
		if !claimed[g.key] {
			leftover = append(leftover, g)
		}
	}
	if len(leftover) == 0 {
		return nil
	}
	if dictSpec == nil {
		if !d.opts.strict {
			return nil
		}
		g := leftover[0]
		return &UnmarshalError{
			FieldPath: joinPath(path, g.key),
			Line:      d.opts.line(g.nodes[0]),
			Message:   fmt.Sprintf("unknown field %q", g.key),
			Err:       ir.ErrUnknownField,
		}
	}
	rest := &ir.Node{Type: ir.ObjectType}
	for _, g := range leftover {
		for _, n := range g.nodes {
			rest.Fields = append(rest.Fields, &ir.Node{Type: ir.StringType, String: g.key})
			rest.Values = append(rest.Values, n)
		}
	}
	return d.decodeMap(rest, val.FieldByIndex(dictSpec.index), path)
}

// required reports whether an absent document field is an error for
// this target type. Pointers, lists, maps and dynamic targets treat
// absence as their zero value.
func required(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		return false
	}
	return true
}

// fieldGroup is the ordered occurrences of one key in an object.
type fieldGroup struct {
	key   string
	nodes []*ir.Node
}

func groupFields(node *ir.Node) []fieldGroup {
	var groups []fieldGroup
	at := map[string]int{}
	for i := range node.Fields {
		key := node.Fields[i].String
		if j, ok := at[key]; ok {
			groups[j].nodes = append(groups[j].nodes, node.Values[i])
			continue
		}
		at[key] = len(groups)
		groups = append(groups, fieldGroup{key: key, nodes: []*ir.Node{node.Values[i]}})
	}
	return groups
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func intBits(t reflect.Type) int {
	switch t.Kind() {
	case reflect.Int, reflect.Uint, reflect.Int64, reflect.Uint64:
		return 64
	case reflect.Int32, reflect.Uint32:
		return 32
	case reflect.Int16, reflect.Uint16:
		return 16
	case reflect.Int8, reflect.Uint8:
		return 8
	}
	return 64
}

func (d *decoder) typeErrf(node *ir.Node, path, format string, args ...any) error {
	return &UnmarshalError{
		FieldPath: path,
		Line:      d.opts.line(node),
		Message:   fmt.Sprintf(format, args...),
		Err:       ir.ErrTypeMismatch,
	}
}

// wrap attaches path and line context to an already classified error.
func (d *decoder) wrap(node *ir.Node, path string, err error) error {
	return &UnmarshalError{
		FieldPath: path,
		Line:      d.opts.line(node),
		Message:   err.Error(),
		Err:       err,
	}
}
