// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tree implements a rooted phylogenetic tree
// whose nodes can be annotated
// with metadata and derived attributes.
package tree

import (
	"strconv"
)

// A Tree is a rooted tree.
type Tree struct {
	root  *Node
	nodes []*Node
}

// A Node is a node of a tree.
type Node struct {
	// Name of the node,
	// it can be empty on internal nodes.
	Name string

	// Core fields of the node.
	Core Core

	// Attr is the generic attribute map.
	Attr map[string]any

	index    int
	parent   *Node
	children []*Node
}

// New creates a new tree
// with a root node with the given name.
func New(root string) *Tree {
	n := &Node{
		Name: root,
		Attr: make(map[string]any),
	}
	return &Tree{
		root:  n,
		nodes: []*Node{n},
	}
}

// Add adds a new node as the last child of parent.
//
// The clade index of the node is the number of nodes
// already in the tree,
// so a tree built in preorder
// has clade indices in preorder.
func (t *Tree) Add(parent *Node, name string) *Node {
	n := &Node{
		Name:   name,
		Attr:   make(map[string]any),
		parent: parent,
	}
	n.index = len(t.nodes)
	parent.children = append(parent.children, n)
	t.nodes = append(t.nodes, n)
	return n
}

// Root returns the root of the tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the first node with the given name
// in preorder.
func (t *Tree) Node(name string) (*Node, bool) {
	for _, n := range t.Preorder() {
		if n.Name == name {
			return n, true
		}
	}
	return nil, false
}

// Preorder returns the nodes of the tree
// in preorder,
// i.e., a parent is always before its descendants.
func (t *Tree) Preorder() []*Node {
	ls := make([]*Node, 0, len(t.nodes))
	return preorder(ls, t.root)
}

func preorder(ls []*Node, n *Node) []*Node {
	ls = append(ls, n)
	for _, c := range n.children {
		ls = preorder(ls, c)
	}
	return ls
}

// Internal returns the internal
// (non-terminal)
// nodes of the tree in preorder.
func (t *Tree) Internal() []*Node {
	var ls []*Node
	for _, n := range t.Preorder() {
		if n.IsTerm() {
			continue
		}
		ls = append(ls, n)
	}
	return ls
}

// Terms returns the names of the terminals
// in preorder.
func (t *Tree) Terms() []string {
	var ls []string
	for _, n := range t.Preorder() {
		if n.IsTerm() {
			ls = append(ls, n.Name)
		}
	}
	return ls
}

// Children returns the children of the node
// in tree order.
func (n *Node) Children() []*Node {
	return n.children
}

// Parent returns the parent of the node,
// or nil if the node is the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsTerm returns true if the node is a terminal.
func (n *Node) IsTerm() bool {
	return len(n.children) == 0
}

// CladeIndex returns the clade index of the node.
// By default it is the order in which the node
// was added to the tree,
// but if the node has a clade field
// with an integral number,
// that value is used.
func (n *Node) CladeIndex() int {
	if v, ok := Numeric(n.Core.Clade); ok && v == float64(int(v)) {
		return int(v)
	}
	return n.index
}

// Key returns the name used to identify the node
// in external tables.
// It is the node name
// or the clade index for unnamed nodes.
func (n *Node) Key() string {
	if n.Name != "" {
		return n.Name
	}
	return strconv.Itoa(n.index)
}

// Div returns the divergence of the node
// from the root.
func (n *Node) Div() (float64, bool) {
	v, ok := n.Attr[DivKey]
	if !ok {
		return 0, false
	}
	return Numeric(v)
}
