// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package treejson converts an annotated tree
// into a nested JSON object.
package treejson

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/js-arias/phyexport/tree"
	"gonum.org/v1/gonum/floats/scalar"
)

// Keys of the fixed fields of a node object.
const (
	StrainKey   = "strain"
	NumDateKey  = "numdate"
	ChildrenKey = "children"
)

// An Object is a JSON object
// that keeps its keys
// in insertion order.
type Object struct {
	keys   []string
	values map[string]any
}

func newObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set sets the value of a key.
func (o *Object) Set(key string, v any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value of a key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has returns true if the key is defined.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Keys returns the keys of the object
// in insertion order.
func (o *Object) Keys() []string {
	return o.keys
}

// Children returns the children objects.
func (o *Object) Children() []*Object {
	v, ok := o.values[ChildrenKey]
	if !ok {
		return nil
	}
	ch, _ := v.([]*Object)
	return ch
}

// MarshalJSON implements the json.Marshaler interface.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Serialize converts a node,
// and all of its descendants,
// into a JSON object.
//
// The object contains the name of the node
// (as "strain"),
// the numdate field
// (rounded to 5 decimal digits),
// the given fields that are defined in the node,
// and the "children" of the node,
// if the node is not a terminal.
//
// If the numdate is not a number,
// the value is stored as is
// and a warning is written in the logger.
// If logger is nil,
// no warning is written.
func Serialize(n *tree.Node, fields []Field, logger *slog.Logger) *Object {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return serialize(n, fields, logger)
}

func serialize(n *tree.Node, fields []Field, logger *slog.Logger) *Object {
	obj := newObject()
	if n.Name != "" {
		obj.Set(StrainKey, n.Name)
	}

	if v, ok := n.Core.Get(tree.NumDate); ok {
		obj.Set(NumDateKey, roundDate(n, v, logger))
	}

	for _, f := range fields {
		k := f.Key()
		if obj.Has(k) {
			continue
		}
		v, ok := f.Value(n)
		if !ok {
			continue
		}
		obj.Set(k, v)
	}

	if n.IsTerm() {
		return obj
	}
	children := make([]*Object, 0, len(n.Children()))
	for _, c := range n.Children() {
		children = append(children, serialize(c, fields, logger))
	}
	obj.Set(ChildrenKey, children)
	return obj
}

func roundDate(n *tree.Node, v any, logger *slog.Logger) any {
	d, ok := tree.Numeric(v)
	if !ok {
		logger.Warn("cannot round numdate, assigned as is",
			"node", n.Key(),
			"value", v,
		)
		return v
	}
	return scalar.Round(d, 5)
}
