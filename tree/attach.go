// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

// A Recorder returns the metadata record of a node.
type Recorder interface {
	// Record returns the fields of a node
	// in a deterministic order.
	Record(name string) (fields []string, values map[string]any, ok bool)
}

// Attach attaches the metadata of each node,
// and then calculates the divergence of each node.
//
// Fields with "mutations" in its name,
// and the fields branch_length, mutation_length,
// clock_length, clade and numdate,
// are stored as core fields.
// Any other field is stored in the attribute map.
func Attach(t *Tree, md Recorder) error {
	for _, n := range t.Preorder() {
		n.Attr = make(map[string]any)

		key := n.Key()
		fields, values, ok := md.Record(key)
		if !ok {
			return &MissingMetadataError{Node: key}
		}
		for _, f := range fields {
			v := values[f]
			if n.Core.Set(f, v) {
				continue
			}
			n.Attr[f] = v
		}
	}

	return Divergence(t)
}

// Divergence sets the divergence
// (the sum of branch lengths from the root)
// of each node.
//
// The length of a branch is the mutation length of the node,
// or its branch length,
// if the mutation length is undefined.
func Divergence(t *Tree) error {
	if t.root.Attr == nil {
		t.root.Attr = make(map[string]any)
	}
	t.root.Attr[DivKey] = 0.0

	for _, n := range t.Internal() {
		div, _ := n.Div()
		for _, c := range n.children {
			bl, err := c.branchLength()
			if err != nil {
				return err
			}
			if c.Attr == nil {
				c.Attr = make(map[string]any)
			}
			c.Attr[DivKey] = div + bl
		}
	}
	return nil
}

func (n *Node) branchLength() (float64, error) {
	field := MutationLength
	v := n.Core.MutationLength
	if v == nil {
		field = BranchLength
		v = n.Core.BranchLength
	}
	if v == nil {
		return 0, &MissingBranchLengthError{Node: n.Key()}
	}

	bl, ok := Numeric(v)
	if !ok {
		return 0, &DivergenceComputationError{
			Node:  n.Key(),
			Field: field,
			Value: v,
		}
	}
	return bl, nil
}
