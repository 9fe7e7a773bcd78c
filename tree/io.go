// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/timetree"
)

// MillionYears is the scale of the branch lengths
// of a time tree.
const MillionYears = 1_000_000

// FromTimeTree creates a new tree
// from a time-calibrated tree.
//
// Nodes are named with the taxon name of the node,
// and the branch length,
// in million years,
// is set as the default branch length of each node.
// As time trees store ages in years,
// branch lengths have a precision of 1e-6.
func FromTimeTree(tt *timetree.Tree) *Tree {
	root := tt.Root()
	t := New(tt.Taxon(root))
	addChildren(t, tt, t.root, root)
	return t
}

func addChildren(t *Tree, tt *timetree.Tree, n *Node, id int) {
	for _, c := range tt.Children(id) {
		cn := t.Add(n, tt.Taxon(c))
		bl := float64(tt.Age(id)-tt.Age(c)) / MillionYears
		cn.Core.BranchLength = bl
		addChildren(t, tt, cn, c)
	}
}

// Read reads a tree from a file.
//
// Files with extension .nwk, .newick, .tre or .tree
// are read as newick trees
// (only the first tree of the file is read).
// Any other file is read as a tab-delimited
// time tree file;
// if the file contains more than one tree,
// the tree with the given name is used,
// or the first tree, if name is empty.
func Read(name, treeName string) (*Tree, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if isNewick(name) {
		t, err := ReadNewick(f)
		if err != nil {
			return nil, fmt.Errorf("while reading file %q: %v", name, err)
		}
		return t, nil
	}

	c, err := timetree.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}

	if treeName == "" {
		ls := c.Names()
		if len(ls) == 0 {
			return nil, fmt.Errorf("file %q: no trees", name)
		}
		treeName = ls[0]
	}
	tt := c.Tree(treeName)
	if tt == nil {
		return nil, fmt.Errorf("file %q: tree %q not found", name, treeName)
	}
	return FromTimeTree(tt), nil
}

func isNewick(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".nwk", ".newick", ".tre", ".tree":
		return true
	}
	return false
}
