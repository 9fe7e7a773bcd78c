// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package metadata implements a table
// of per-node metadata fields.
package metadata

import (
	"slices"
	"strings"
)

// A Record is the set of fields of a node.
type Record struct {
	fields []string
	values map[string]any
}

// Fields returns the field names of the record
// in the order they were defined.
func (r *Record) Fields() []string {
	return r.fields
}

// Value returns the value of a field.
func (r *Record) Value(field string) (any, bool) {
	v, ok := r.values[field]
	return v, ok
}

// A Table is a collection of node records.
type Table struct {
	names   []string
	records map[string]*Record

	// columns of the source file
	columns []string
}

// New creates a new empty table.
func New() *Table {
	return &Table{
		records: make(map[string]*Record),
	}
}

// Set sets the value of a field of a node.
// If the value is nil,
// the field will be removed.
func (t *Table) Set(name, field string, v any) {
	name = strings.TrimSpace(name)
	field = strings.TrimSpace(field)
	if name == "" || field == "" {
		return
	}

	r, ok := t.records[name]
	if !ok {
		r = &Record{values: make(map[string]any)}
		t.records[name] = r
		t.names = append(t.names, name)
	}

	if v == nil {
		if _, ok := r.values[field]; !ok {
			return
		}
		delete(r.values, field)
		r.fields = slices.DeleteFunc(r.fields, func(f string) bool {
			return f == field
		})
		return
	}

	if _, ok := r.values[field]; !ok {
		r.fields = append(r.fields, field)
	}
	r.values[field] = v
}

// Add adds a node without fields.
func (t *Table) Add(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if _, ok := t.records[name]; ok {
		return
	}
	t.records[name] = &Record{values: make(map[string]any)}
	t.names = append(t.names, name)
}

// Get returns the record of a node.
func (t *Table) Get(name string) (*Record, bool) {
	r, ok := t.records[name]
	return r, ok
}

// Record returns the fields and values
// of a node.
func (t *Table) Record(name string) ([]string, map[string]any, bool) {
	r, ok := t.records[name]
	if !ok {
		return nil, nil, false
	}
	return r.fields, r.values, true
}

// Names returns the node names
// in the order they were added.
func (t *Table) Names() []string {
	return t.names
}

// Fields returns the fields of the table.
// If the table was read from a TSV file,
// they are the columns of the file
// (without the node column)
// in file order,
// even if a column has no values.
// Otherwise,
// they are all the fields defined in the table
// in alphabetical order.
func (t *Table) Fields() []string {
	if len(t.columns) > 0 {
		return slices.Clone(t.columns)
	}
	return t.AllFields()
}

// AllFields returns all the fields defined
// in the table
// in alphabetical order.
func (t *Table) AllFields() []string {
	set := make(map[string]bool)
	for _, r := range t.records {
		for _, f := range r.fields {
			set[f] = true
		}
	}

	fields := make([]string, 0, len(set))
	for f := range set {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}
