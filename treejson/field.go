// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treejson

import (
	"fmt"
	"strings"

	"github.com/js-arias/phyexport/tree"
	"gonum.org/v1/gonum/floats/scalar"
)

// A Field is a node field
// to be exported.
type Field interface {
	// Key returns the key used for the field
	// in the JSON object.
	Key() string

	// Value returns the value of the field
	// in a node.
	Value(n *tree.Node) (any, bool)
}

// A Transform is a function applied
// to the value of a field.
type Transform func(v any) any

// PlainField is a field exported
// without modifications.
type PlainField string

// Key implements the Field interface.
func (f PlainField) Key() string {
	return string(f)
}

// Value implements the Field interface.
func (f PlainField) Value(n *tree.Node) (any, bool) {
	return n.Get(string(f))
}

// A DerivedField is a field
// whose value is transformed before export.
type DerivedField struct {
	Name      string
	Label     string
	Transform Transform
}

// Key implements the Field interface.
// The key is composed of the field name
// and the label of the transformation.
func (f DerivedField) Key() string {
	return f.Name + ":" + f.Label
}

// Value implements the Field interface.
func (f DerivedField) Value(n *tree.Node) (any, bool) {
	v, ok := n.Get(f.Name)
	if !ok {
		return nil, false
	}
	return f.Transform(v), true
}

// Plain returns a list of plain fields.
func Plain(names ...string) []Field {
	fields := make([]Field, 0, len(names))
	for _, nm := range names {
		fields = append(fields, PlainField(nm))
	}
	return fields
}

// NewTransform returns a named transformation.
// Valid names are:
//
//   - round, round a number to the given digits
//   - string, the default string format of a value
//   - upper, a string in upper case
//   - lower, a string in lower case
//
// Values that cannot be transformed
// are returned as is.
func NewTransform(name string, digits int) (Transform, error) {
	switch strings.ToLower(name) {
	case "round":
		return func(v any) any {
			x, ok := tree.Numeric(v)
			if !ok {
				return v
			}
			return scalar.Round(x, digits)
		}, nil
	case "string":
		return func(v any) any {
			return fmt.Sprintf("%v", v)
		}, nil
	case "upper":
		return func(v any) any {
			if s, ok := v.(string); ok {
				return strings.ToUpper(s)
			}
			return v
		}, nil
	case "lower":
		return func(v any) any {
			if s, ok := v.(string); ok {
				return strings.ToLower(s)
			}
			return v
		}, nil
	}
	return nil, fmt.Errorf("unknown transform %q", name)
}
