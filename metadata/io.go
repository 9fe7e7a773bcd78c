// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package metadata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/js-arias/phyexport/tree"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// Valid names for the node column.
var nodeFields = []string{"node", "name", "strain"}

// ReadTSV reads a metadata table from a TSV file.
//
// The first column that is named "node", "name", or "strain"
// is used as the node name,
// any other column is a metadata field.
// Numeric values are stored as float64 numbers,
// and any other value is stored as a string.
// Empty or missing cells are ignored,
// except in mutation columns,
// where they are stored as empty strings.
//
// Here is an example file:
//
//	# node metadata
//	node	branch_length	numdate	country	aa_mutations
//	NODE_0000001	0.000000	2013.51	brazil
//	ZKC2/2016	0.001030	2016.09	american_samoa	E:T302A
func ReadTSV(r io.Reader) (*Table, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'
	tab.FieldsPerRecord = -1

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	col := -1
	for _, nf := range nodeFields {
		col = slices.IndexFunc(head, func(h string) bool {
			return strings.ToLower(strings.TrimSpace(h)) == nf
		})
		if col >= 0 {
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("expecting field %q", nodeFields[0])
	}

	t := New()
	for i, h := range head {
		h = strings.TrimSpace(h)
		if i == col || h == "" || slices.Contains(t.columns, h) {
			continue
		}
		t.columns = append(t.columns, h)
	}

	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		if col >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[col])
		if name == "" {
			continue
		}
		if _, dup := t.records[name]; dup {
			return nil, fmt.Errorf("on row %d: node %q already defined", ln, name)
		}
		t.Add(name)
		for i, h := range head {
			if i == col {
				continue
			}
			var v string
			if i < len(row) {
				v = strings.TrimSpace(row[i])
			}
			if tree.IsMutation(h) {
				t.Set(name, h, v)
				continue
			}
			if v == "" {
				continue
			}
			t.Set(name, h, parseValue(v))
		}
	}
	return t, nil
}

// parseValue returns a float64
// for finite numbers,
// otherwise the string.
func parseValue(v string) any {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return v
	}
	return f
}

var nodesPath = jp.MustParseString("$.nodes")

// ReadJSON reads a metadata table from a node data JSON file.
//
// The file must contain a "nodes" object,
// keyed by node name,
// with an object of fields for each node.
// As JSON objects are unordered,
// fields are stored in alphabetical order,
// and the fields of the table
// are all the fields of the nodes.
//
// Here is an example file:
//
//	{
//	  "nodes": {
//	    "NODE_0000001": {"branch_length": 0.0, "numdate": 2013.51},
//	    "ZKC2/2016": {"branch_length": 0.00103, "country": "american_samoa"}
//	  }
//	}
func ReadJSON(r io.Reader) (*Table, error) {
	data, err := oj.Load(r)
	if err != nil {
		return nil, err
	}

	nodes, ok := nodesPath.First(data).(map[string]any)
	if !ok {
		return nil, errors.New("expecting \"nodes\" object")
	}

	names := make([]string, 0, len(nodes))
	for n := range nodes {
		names = append(names, n)
	}
	slices.Sort(names)

	t := New()
	for _, n := range names {
		fields, ok := nodes[n].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("node %q: expecting an object", n)
		}
		t.Add(n)

		ls := make([]string, 0, len(fields))
		for f := range fields {
			ls = append(ls, f)
		}
		slices.Sort(ls)
		for _, f := range ls {
			v := fields[f]
			if i, ok := v.(int64); ok {
				v = float64(i)
			}
			t.Set(n, f, v)
		}
	}
	return t, nil
}

// Read reads a metadata table from a file.
// Files with the extension .json are read
// as node data JSON files,
// any other file is read as a TSV file.
func Read(name string) (*Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var t *Table
	if strings.ToLower(filepath.Ext(name)) == ".json" {
		t, err = ReadJSON(f)
	} else {
		t, err = ReadTSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return t, nil
}

// TSV writes a metadata table as a TSV file.
// Values are written using its default format.
func (t *Table) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	fields := t.Fields()
	header := append([]string{"node"}, fields...)
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, n := range t.names {
		r := t.records[n]
		row := make([]string, 0, len(header))
		row = append(row, n)
		for _, f := range fields {
			v, ok := r.values[f]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, formatValue(v))
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

func formatValue(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}
