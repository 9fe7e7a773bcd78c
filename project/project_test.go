// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project_test

import (
	"os"
	"reflect"
	"slices"
	"testing"

	"github.com/js-arias/phyexport/project"
)

type setPath struct {
	set  project.Dataset
	path string
}

func TestProject(t *testing.T) {
	p := project.New()

	sets := []setPath{
		{project.Tree, "tree.nwk"},
		{project.NodeData, "node-data.tab"},
		{project.Reference, "features.gff"},
		{project.AlignmentSet(project.TreeSeqs, "nuc"), "seqs-nuc.fasta"},
		{project.AlignmentSet(project.TreeSeqs, "E"), "seqs-E.fasta"},
		{project.AlignmentSet(project.SampleSeqs, "nuc"), "aln-nuc.fasta"},
		{project.AlignmentSet(project.SampleSeqs, "NS1"), "aln-NS1.fasta"},
		{project.AlignmentSet(project.SampleSeqs, "C"), "aln-C.fasta"},
	}

	for _, s := range sets {
		p.Add(s.set, s.path)
	}
	testProject(t, p, sets)

	name := "tmp-project-for-test.tab"
	defer os.Remove(name)

	p.SetName(name)
	if err := p.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	np, err := project.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testProject(t, np, sets)
}

func TestAdd(t *testing.T) {
	p := project.New()
	if prev := p.Add(project.Tree, "a.nwk"); prev != "" {
		t.Errorf("add: got previous %q, want empty", prev)
	}
	if prev := p.Add(project.Tree, "b.nwk"); prev != "a.nwk" {
		t.Errorf("add: got previous %q, want %q", prev, "a.nwk")
	}
	p.Add(project.Tree, "")
	if path := p.Path(project.Tree); path != "" {
		t.Errorf("add: got path %q, want empty", path)
	}
}

func TestGene(t *testing.T) {
	tests := []struct {
		set  project.Dataset
		kind string
		gene string
		ok   bool
	}{
		{"seqs.nuc", "seqs", "nuc", true},
		{"aln.E", "aln", "E", true},
		{"aln.", "", "", false},
		{"tree", "", "", false},
		{"other.E", "", "", false},
	}
	for _, test := range tests {
		k, g, ok := test.set.Gene()
		if k != test.kind || g != test.gene || ok != test.ok {
			t.Errorf("dataset %q: got %q %q %v, want %q %q %v", test.set, k, g, ok, test.kind, test.gene, test.ok)
		}
	}
}

func testProject(t testing.TB, p *project.Project, sets []setPath) {
	t.Helper()

	for _, s := range sets {
		if path := p.Path(s.set); path != s.path {
			t.Errorf("set %s: got path %q, want %q", s.set, path, s.path)
		}
	}
	datasets := make([]project.Dataset, 0, len(sets))
	for _, v := range sets {
		datasets = append(datasets, v.set)
	}
	slices.Sort(datasets)

	if ls := p.Sets(); !reflect.DeepEqual(ls, datasets) {
		t.Errorf("sets: got %v, want %v", ls, datasets)
	}

	if g := p.Genes(project.TreeSeqs); !reflect.DeepEqual(g, []string{"nuc", "E"}) {
		t.Errorf("tree genes: got %v, want %v", g, []string{"nuc", "E"})
	}
	if g := p.Genes(project.SampleSeqs); !reflect.DeepEqual(g, []string{"nuc", "C", "NS1"}) {
		t.Errorf("sample genes: got %v, want %v", g, []string{"nuc", "C", "NS1"})
	}
}
