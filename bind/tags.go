package bind

import (
	"fmt"
	"reflect"
	"strings"
)

// fieldSpec is one bindable struct field, flattened across embedded
// structs.
type fieldSpec struct {
	name  string
	index []int
	typ   reflect.Type
	// dict marks a map field that captures every document key the
	// other fields do not claim.
	dict bool
}

// structFields resolves the muon tags of t. Tag syntax:
//
//	muon:"name"        rename
//	muon:"-"           skip
//	muon:",dict"       open-ended dictionary capture (map field)
//
// Untagged exported fields use their lower-cased name.
func structFields(t reflect.Type) ([]fieldSpec, error) {
	return appendStructFields(nil, t, nil)
}

func appendStructFields(specs []fieldSpec, t reflect.Type, prefix []int) ([]fieldSpec, error) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		index := append(append([]int{}, prefix...), i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct && f.Tag.Get("muon") == "" {
			var err error
			specs, err = appendStructFields(specs, f.Type, index)
			if err != nil {
				return nil, err
			}
			continue
		}
		spec, ok, err := parseTag(f)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		spec.index = index
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseTag(f reflect.StructField) (fieldSpec, bool, error) {
	spec := fieldSpec{
		name: strings.ToLower(f.Name),
		typ:  f.Type,
	}
	tag := f.Tag.Get("muon")
	if tag == "" {
		return spec, true, nil
	}
	if tag == "-" {
		return fieldSpec{}, false, nil
	}
	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		spec.name = parts[0]
	}
	for _, opt := range parts[1:] {
		switch opt {
		case "dict":
			if f.Type.Kind() != reflect.Map {
				return fieldSpec{}, false, fmt.Errorf("muon tag on %s: dict requires a map field", f.Name)
			}
			spec.dict = true
		case "":
		default:
			return fieldSpec{}, false, fmt.Errorf("muon tag on %s: unknown option %q", f.Name, opt)
		}
	}
	return spec, true, nil
}
