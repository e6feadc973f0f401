package bind

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"

	"github.com/muon-data/go-muon/ir"
)

// ToNode encodes a Go value as a typed tree. Field order follows
// struct declaration order; map entries are sorted by key.
func ToNode(v any) (*ir.Node, error) {
	if v == nil {
		return ir.Null(), nil
	}
	return toNode(reflect.ValueOf(v), "")
}

func toNode(val reflect.Value, path string) (*ir.Node, error) {
	if !val.IsValid() {
		return ir.Null(), nil
	}
	typ := val.Type()
	switch typ {
	case nodeType:
		n := val.Interface().(*ir.Node)
		if n == nil {
			return ir.Null(), nil
		}
		return n.Clone(), nil
	case dateType:
		return ir.FromDate(val.Interface().(ir.Date)), nil
	case clockType:
		return ir.FromTime(val.Interface().(ir.Time)), nil
	case dateTimeType:
		return ir.FromDateTime(val.Interface().(ir.DateTime)), nil
	case stdTimeType:
		return stdTimeNode(val.Interface().(time.Time), path)
	}

	switch typ.Kind() {
	case reflect.Ptr, reflect.Interface:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return toNode(val.Elem(), path)
	case reflect.String:
		return ir.FromString(val.String()), nil
	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := val.Uint()
		if u > math.MaxInt64 {
			return nil, &MarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("value %d does not fit in 64-bit integers", u),
				Err:       ir.ErrOverflow,
			}
		}
		return ir.FromInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(val.Float()), nil
	case reflect.Slice, reflect.Array:
		return sliceNode(val, path)
	case reflect.Map:
		return mapNode(val, path)
	case reflect.Struct:
		return structNode(val, path)
	}
	return nil, &MarshalError{
		FieldPath: path,
		Message:   fmt.Sprintf("unsupported type %s", typ),
		Err:       ir.ErrUnsupportedValue,
	}
}

func stdTimeNode(t time.Time, path string) (*ir.Node, error) {
	date, err := ir.NewDate(t.Year(), int(t.Month()), t.Day())
	if err != nil {
		return nil, &MarshalError{FieldPath: path, Message: err.Error(), Err: err}
	}
	clock, err := ir.NewTime(t.Hour(), t.Minute(), t.Second(), t.Nanosecond())
	if err != nil {
		return nil, &MarshalError{FieldPath: path, Message: err.Error(), Err: err}
	}
	_, secs := t.Zone()
	offset := ir.UTC
	if secs != 0 || t.Location() != time.UTC {
		if secs%60 != 0 {
			return nil, &MarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("zone offset %ds is not a whole number of minutes", secs),
				Err:       ir.ErrUnsupportedValue,
			}
		}
		offset, err = ir.NewTimeOffset(secs / 60)
		if err != nil {
			return nil, &MarshalError{FieldPath: path, Message: err.Error(), Err: err}
		}
	}
	return ir.FromDateTime(ir.NewDateTime(date, clock, offset)), nil
}

func sliceNode(val reflect.Value, path string) (*ir.Node, error) {
	vals := make([]*ir.Node, val.Len())
	for i := range vals {
		elem, err := toNode(val.Index(i), fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		vals[i] = elem
	}
	return ir.FromSlice(vals), nil
}

func mapNode(val reflect.Value, path string) (*ir.Node, error) {
	res := &ir.Node{Type: ir.ObjectType}
	if err := appendMapEntries(res, val, path); err != nil {
		return nil, err
	}
	return res, nil
}

// appendMapEntries writes a map's entries onto obj in sorted key
// order. Go maps carry no insertion order, so sorting is the
// deterministic-output contract for dictionaries.
func appendMapEntries(obj *ir.Node, val reflect.Value, path string) error {
	typ := val.Type()
	if typ.Key().Kind() != reflect.String {
		return &MarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("unsupported map key type %s", typ.Key()),
			Err:       ir.ErrUnsupportedValue,
		}
	}
	keys := make([]string, 0, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}
	sort.Strings(keys)
	for _, key := range keys {
		entry, err := toNode(val.MapIndex(reflect.ValueOf(key).Convert(typ.Key())), joinPath(path, key))
		if err != nil {
			return err
		}
		obj.Append(key, entry)
	}
	return nil
}

func structNode(val reflect.Value, path string) (*ir.Node, error) {
	specs, err := structFields(val.Type())
	if err != nil {
		return nil, &MarshalError{FieldPath: path, Message: err.Error()}
	}
	res := &ir.Node{Type: ir.ObjectType}
	for i := range specs {
		spec := &specs[i]
		fieldVal := val.FieldByIndex(spec.index)
		fieldPath := joinPath(path, spec.name)
		switch fieldVal.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
			// absent optional values have no line in the output
			if fieldVal.IsNil() {
				continue
			}
		}
		if spec.dict {
			if err := appendMapEntries(res, fieldVal, path); err != nil {
				return nil, err
			}
			continue
		}
		entry, err := toNode(fieldVal, fieldPath)
		if err != nil {
			return nil, err
		}
		res.Append(spec.name, entry)
	}
	return res, nil
}
