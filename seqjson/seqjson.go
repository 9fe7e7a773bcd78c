// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package seqjson encodes the sequences
// of the nodes of a tree
// as differences from the sequence of the root.
package seqjson

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/RoaringBitmap/roaring"
	"github.com/js-arias/phyexport/align"
	"github.com/js-arias/phyexport/tree"
)

// Threshold is the fraction used to decide
// if a sequence is stored as a diff.
// A sequence with d differences and length L
// is stored as a diff if Threshold*d <= L.
const Threshold = 0.2

// RootKey is the key used for the reference sequences.
const RootKey = "root"

// A Gene is an alignment of a gene
// (or the whole nucleotide sequence).
type Gene struct {
	Name string
	Aln  *align.Alignment
}

// A Diff is a map of positions
// to the state at that position.
type Diff map[int]byte

// MarshalJSON implements the json.Marshaler interface.
func (d Diff) MarshalJSON() ([]byte, error) {
	m := make(map[int]string, len(d))
	for p, s := range d {
		m[p] = string(s)
	}
	return json.Marshal(m)
}

// A Seq is an encoded sequence.
// It is either a diff,
// or a full sequence.
type Seq struct {
	Full string
	Diff Diff
}

// IsDiff returns true if the sequence
// is encoded as a diff.
func (s Seq) IsDiff() bool {
	return s.Diff != nil
}

// Apply returns the sequence
// using ref as the reference sequence.
func (s Seq) Apply(ref string) string {
	if !s.IsDiff() {
		return s.Full
	}
	b := []byte(ref)
	for p, st := range s.Diff {
		b[p] = st
	}
	return string(b)
}

// MarshalJSON implements the json.Marshaler interface.
func (s Seq) MarshalJSON() ([]byte, error) {
	if s.IsDiff() {
		return json.Marshal(s.Diff)
	}
	return json.Marshal(s.Full)
}

// Elems are the encoded sequences,
// by node key,
// and gene.
type Elems map[string]map[string]Seq

// Seq returns the encoded sequence of a node key
// for a gene.
func (e Elems) Seq(key, gene string) (Seq, bool) {
	g, ok := e[key]
	if !ok {
		return Seq{}, false
	}
	s, ok := g[gene]
	return s, ok
}

// MissingSequenceError is returned
// when a node does not have a sequence
// in a gene alignment.
type MissingSequenceError struct {
	Gene string
	Node string
}

func (e *MissingSequenceError) Error() string {
	return fmt.Sprintf("gene %q: node %q: sequence not found", e.Gene, e.Node)
}

// LengthMismatchError is returned
// when a sequence has a different length
// than the reference sequence.
type LengthMismatchError struct {
	Gene   string
	Node   string
	Len    int
	RefLen int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("gene %q: node %q: sequence length %d, want %d", e.Gene, e.Node, e.Len, e.RefLen)
}

// Encode encodes the sequences of each node of a tree.
//
// The sequence of the root is the reference sequence
// and it is stored as a full sequence
// with the key "root".
// The sequences of the other nodes
// are stored using its clade index as key,
// either as a diff to the reference,
// or as a full sequence.
// It is an error if two nodes have the same clade index.
func Encode(t *tree.Tree, genes []Gene) (Elems, error) {
	elems := Elems{
		RootKey: make(map[string]Seq, len(genes)),
	}
	nodes := t.Preorder()
	keys := make(map[string]*tree.Node, len(nodes))
	for _, n := range nodes {
		k := strconv.Itoa(n.CladeIndex())
		if prev, dup := keys[k]; dup {
			return nil, fmt.Errorf("clade index %s: used by nodes %q and %q", k, prev.Key(), n.Key())
		}
		keys[k] = n
		elems[k] = make(map[string]Seq, len(genes))
	}

	for _, g := range genes {
		rk := t.Root().Key()
		ref, ok := g.Aln.Seq(rk)
		if !ok {
			return nil, &MissingSequenceError{Gene: g.Name, Node: rk}
		}
		elems[RootKey][g.Name] = Seq{Full: ref}

		for _, n := range nodes {
			seq, ok := g.Aln.Seq(n.Key())
			if !ok {
				return nil, &MissingSequenceError{Gene: g.Name, Node: n.Key()}
			}
			if len(seq) != len(ref) {
				return nil, &LengthMismatchError{
					Gene:   g.Name,
					Node:   n.Key(),
					Len:    len(seq),
					RefLen: len(ref),
				}
			}
			elems[strconv.Itoa(n.CladeIndex())][g.Name] = EncodeSeq(seq, ref, Threshold)
		}
	}
	return elems, nil
}

// EncodeSeq encodes a sequence
// using ref as the reference sequence.
// Both sequences must have the same length.
//
// If the number of differences
// multiplied by the threshold
// is at most the length of the sequence,
// the sequence is encoded as a diff.
func EncodeSeq(seq, ref string, threshold float64) Seq {
	diff := roaring.New()
	for i := 0; i < len(seq); i++ {
		if seq[i] != ref[i] {
			diff.Add(uint32(i))
		}
	}

	d := float64(diff.GetCardinality())
	if threshold*d > float64(len(seq)) {
		return Seq{Full: seq}
	}

	m := make(Diff, diff.GetCardinality())
	it := diff.Iterator()
	for it.HasNext() {
		p := int(it.Next())
		m[p] = seq[p]
	}
	return Seq{Diff: m}
}
