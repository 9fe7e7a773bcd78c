// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package seqjson_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/js-arias/phyexport/align"
	"github.com/js-arias/phyexport/seqjson"
	"github.com/js-arias/phyexport/tree"
)

func newTree() *tree.Tree {
	t := tree.New("root")
	b := t.Add(t.Root(), "B")
	t.Add(b, "C")
	t.Add(b, "D")
	t.Add(t.Root(), "E")
	return t
}

func newAln(t testing.TB, seqs map[string]string) *align.Alignment {
	t.Helper()

	a := align.New()
	for _, n := range []string{"root", "B", "C", "D", "E"} {
		s, ok := seqs[n]
		if !ok {
			continue
		}
		if err := a.Add(n, s); err != nil {
			t.Fatalf("unable to add sequence %q: %v", n, err)
		}
	}
	return a
}

func TestEncode(t *testing.T) {
	seqs := map[string]string{
		"root": "ACGTACGTAC",
		"B":    "ACGTACGTAC",
		"C":    "ACGAACGTAC",
		"D":    "TTTTTTTTTT",
		"E":    "ACGTACGTAG",
	}
	tr := newTree()
	genes := []seqjson.Gene{{Name: "nuc", Aln: newAln(t, seqs)}}

	elems, err := seqjson.Encode(tr, genes)
	if err != nil {
		t.Fatalf("encode: unexpected error: %v", err)
	}

	root, ok := elems.Seq(seqjson.RootKey, "nuc")
	if !ok {
		t.Fatalf("root sequence not found")
	}
	if root.IsDiff() || root.Full != seqs["root"] {
		t.Errorf("root: got %v, want full sequence %q", root, seqs["root"])
	}

	for _, n := range tr.Preorder() {
		key := strconv.Itoa(n.CladeIndex())
		s, ok := elems.Seq(key, "nuc")
		if !ok {
			t.Errorf("node %q: sequence not found", n.Name)
			continue
		}
		if !s.IsDiff() {
			t.Errorf("node %q: expecting diff encoding", n.Name)
		}
		if got := s.Apply(root.Full); got != seqs[n.Name] {
			t.Errorf("node %q: reconstructed %q, want %q", n.Name, got, seqs[n.Name])
		}
	}

	// a single difference
	c, _ := elems.Seq("2", "nuc")
	if want := (seqjson.Diff{3: 'A'}); !reflect.DeepEqual(c.Diff, want) {
		t.Errorf("node %q: diff %v, want %v", "C", c.Diff, want)
	}

	// no differences
	b, _ := elems.Seq("1", "nuc")
	if len(b.Diff) != 0 || !b.IsDiff() {
		t.Errorf("node %q: diff %v, want empty diff", "B", b.Diff)
	}
}

func TestEncodeSeq(t *testing.T) {
	ref := "ACGTACGTAC"
	seq := "TTGTACGTAC"

	s := seqjson.EncodeSeq(seq, ref, seqjson.Threshold)
	if !s.IsDiff() {
		t.Fatalf("threshold %.2f: expecting diff encoding", seqjson.Threshold)
	}
	if want := (seqjson.Diff{0: 'T', 1: 'T'}); !reflect.DeepEqual(s.Diff, want) {
		t.Errorf("diff: got %v, want %v", s.Diff, want)
	}

	// 6 * 2 > 10
	s = seqjson.EncodeSeq(seq, ref, 6)
	if s.IsDiff() {
		t.Fatalf("threshold %.2f: expecting full encoding", 6.0)
	}
	if s.Full != seq {
		t.Errorf("full: got %q, want %q", s.Full, seq)
	}
	if got := s.Apply(ref); got != seq {
		t.Errorf("full: reconstructed %q, want %q", got, seq)
	}
}

func TestMarshal(t *testing.T) {
	elems := seqjson.Elems{
		"root": {"nuc": {Full: "ACGT"}},
		"1":    {"nuc": {Diff: seqjson.Diff{3: 'A', 10: 'C'}}},
	}
	b, err := json.Marshal(elems)
	if err != nil {
		t.Fatalf("marshal: unexpected error: %v", err)
	}
	want := `{"1":{"nuc":{"10":"C","3":"A"}},"root":{"nuc":"ACGT"}}`
	if string(b) != want {
		t.Errorf("marshal: got %s, want %s", b, want)
	}
}

func TestEncodeErrors(t *testing.T) {
	complete := map[string]string{
		"root": "ACGT",
		"B":    "ACGT",
		"C":    "ACGT",
		"D":    "ACGT",
		"E":    "ACGT",
	}

	missing := make(map[string]string)
	for n, s := range complete {
		if n == "D" {
			continue
		}
		missing[n] = s
	}
	_, err := seqjson.Encode(newTree(), []seqjson.Gene{{Name: "nuc", Aln: newAln(t, missing)}})
	var me *seqjson.MissingSequenceError
	if !errors.As(err, &me) {
		t.Errorf("missing sequence: got error %v", err)
	} else if me.Node != "D" || me.Gene != "nuc" {
		t.Errorf("missing sequence: got node %q gene %q, want %q %q", me.Node, me.Gene, "D", "nuc")
	}

	noRoot := make(map[string]string)
	for n, s := range complete {
		if n == "root" {
			continue
		}
		noRoot[n] = s
	}
	_, err = seqjson.Encode(newTree(), []seqjson.Gene{{Name: "nuc", Aln: newAln(t, noRoot)}})
	if !errors.As(err, &me) || me.Node != "root" {
		t.Errorf("missing root: got error %v", err)
	}

	short := make(map[string]string)
	for n, s := range complete {
		short[n] = s
	}
	short["E"] = "ACG"
	_, err = seqjson.Encode(newTree(), []seqjson.Gene{{Name: "nuc", Aln: newAln(t, short)}})
	var le *seqjson.LengthMismatchError
	if !errors.As(err, &le) {
		t.Errorf("length mismatch: got error %v", err)
	} else if le.Node != "E" || le.Len != 3 || le.RefLen != 4 {
		t.Errorf("length mismatch: got %v", le)
	}
}

func TestEncodeCladeKeys(t *testing.T) {
	seqs := map[string]string{
		"root": "ACGT",
		"B":    "ACGT",
		"C":    "ACGA",
		"D":    "ACGT",
		"E":    "TCGT",
	}

	tr := newTree()
	e, _ := tr.Node("E")
	e.Core.Clade = 7.0
	elems, err := seqjson.Encode(tr, []seqjson.Gene{{Name: "nuc", Aln: newAln(t, seqs)}})
	if err != nil {
		t.Fatalf("encode: unexpected error: %v", err)
	}
	if _, ok := elems.Seq("4", "nuc"); ok {
		t.Errorf("encode: key %q should be undefined", "4")
	}
	s, ok := elems.Seq("7", "nuc")
	if !ok {
		t.Fatalf("encode: key %q not found", "7")
	}
	if got := s.Apply("ACGT"); got != "TCGT" {
		t.Errorf("encode: key %q: got %q, want %q", "7", got, "TCGT")
	}

	tr = newTree()
	e, _ = tr.Node("E")
	e.Core.Clade = 2.0
	if _, err := seqjson.Encode(tr, []seqjson.Gene{{Name: "nuc", Aln: newAln(t, seqs)}}); err == nil {
		t.Errorf("duplicated clade index: expecting error")
	}
}
