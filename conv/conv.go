// Package conv bridges MuON trees to JSON and YAML.
//
// The mapping goes through plain Go values, so only what both sides
// can say survives: dates and times cross over as RFC 3339 strings,
// and field order gives way to each codec's own conventions.
package conv

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/muon-data/go-muon/bind"
	"github.com/muon-data/go-muon/ir"
)

// ToJSON renders a tree as JSON.
func ToJSON(node *ir.Node) ([]byte, error) {
	v, err := bind.ToAny(node)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// FromJSON builds a tree from JSON. The root must be a JSON object.
func FromJSON(data []byte) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ir.ErrSyntax, err)
	}
	node, err := bind.ToNode(normalizeNumbers(v))
	if err != nil {
		return nil, err
	}
	return objectRoot(node)
}

// normalizeNumbers rewrites json.Number leaves as int64 where exact
// and float64 otherwise.
func normalizeNumbers(v any) any {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case []any:
		for i := range v {
			v[i] = normalizeNumbers(v[i])
		}
		return v
	case map[string]any:
		for k := range v {
			v[k] = normalizeNumbers(v[k])
		}
		return v
	}
	return v
}

// ToYAML renders a tree as YAML.
func ToYAML(node *ir.Node) ([]byte, error) {
	v, err := bind.ToAny(node)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(v)
}

// FromYAML builds a tree from YAML. The root must be a mapping.
func FromYAML(data []byte) (*ir.Node, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ir.ErrSyntax, err)
	}
	node, err := bind.ToNode(v)
	if err != nil {
		return nil, err
	}
	return objectRoot(node)
}

func objectRoot(node *ir.Node) (*ir.Node, error) {
	if node.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: document root must be an object, not %s", ir.ErrTypeMismatch, node.Type)
	}
	return node, nil
}
