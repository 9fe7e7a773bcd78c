// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package export

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/js-arias/phyexport/config"
	"github.com/js-arias/phyexport/project"
)

var testFiles = map[string]string{
	"tree.nwk": "((a:1,b:2)N1:1,c:3)R;\n",
	"node-data.tab": `node	numdate	country	aa_mutations
R	2010.123456789	brazil
N1	2011.5	brazil
a	2012	peru	E:T302A
b	2013	chile
c	2013	chile
`,
	"features.tab": `gene	start	end
E	1	9
`,
	"seqs-nuc.fasta": `>R
ATGAAACCC
>N1
ATGAAACCC
>a
ATGAAACCA
>b
ATGAAACCC
>c
TTGAAACCC
`,
	"aln-nuc.fasta": `>a
ATGAAACCA
>b
ATGAAACCC
>c
TTGAAACCC
`,
	"aln-E.fasta": `>a
MKP
>b
MKP
>c
LKP
`,
}

func writeProject(t testing.TB, dir string) *project.Project {
	t.Helper()

	for name, data := range testFiles {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatalf("unable to write file %q: %v", name, err)
		}
	}

	p := project.New()
	p.SetName(filepath.Join(dir, "project.tab"))
	p.Add(project.Tree, filepath.Join(dir, "tree.nwk"))
	p.Add(project.NodeData, filepath.Join(dir, "node-data.tab"))
	p.Add(project.Reference, filepath.Join(dir, "features.tab"))
	p.Add(project.AlignmentSet(project.TreeSeqs, project.Nuc), filepath.Join(dir, "seqs-nuc.fasta"))
	p.Add(project.AlignmentSet(project.SampleSeqs, project.Nuc), filepath.Join(dir, "aln-nuc.fasta"))
	p.Add(project.AlignmentSet(project.SampleSeqs, "E"), filepath.Join(dir, "aln-E.fasta"))
	return p
}

func readJSON(t testing.TB, name string, v any) {
	t.Helper()

	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("unable to read file %q: %v", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("file %q: invalid JSON: %v", name, err)
	}
}

type treeNode struct {
	Strain    string         `json:"strain"`
	NumDate   float64        `json:"numdate"`
	Mutations string         `json:"aa_mutations"`
	Attr      map[string]any `json:"attr"`
	Children  []*treeNode    `json:"children"`

	Raw map[string]any `json:"-"`
}

func (n *treeNode) UnmarshalJSON(b []byte) error {
	type node treeNode
	if err := json.Unmarshal(b, (*node)(n)); err != nil {
		return err
	}
	return json.Unmarshal(b, &n.Raw)
}

func (n *treeNode) HasMutations() bool {
	_, ok := n.Raw["aa_mutations"]
	return ok
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	p := writeProject(t, dir)

	prefix = filepath.Join(dir, "out")
	refFile = ""
	defer func() { prefix = "" }()

	tr, err := p.Tree("")
	if err != nil {
		t.Fatalf("tree: unexpected error: %v", err)
	}
	cfg := config.Default()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if err := exportTree(p, tr, cfg, logger); err != nil {
		t.Fatalf("export tree: unexpected error: %v", err)
	}
	if err := exportSequences(p, tr, cfg); err != nil {
		t.Fatalf("export sequences: unexpected error: %v", err)
	}
	if err := exportDiversity(p, cfg); err != nil {
		t.Fatalf("export diversity: unexpected error: %v", err)
	}

	var root treeNode
	readJSON(t, prefix+"_tree.json", &root)
	if root.NumDate != 2010.12346 {
		t.Errorf("tree: numdate %v, want %v", root.NumDate, 2010.12346)
	}
	if root.Attr["div"] != 0.0 {
		t.Errorf("tree: root div %v, want %v", root.Attr["div"], 0.0)
	}
	if root.Attr["country"] != "brazil" {
		t.Errorf("tree: root country %v, want %q", root.Attr["country"], "brazil")
	}
	if len(root.Children) != 2 {
		t.Fatalf("tree: got %d children, want %d", len(root.Children), 2)
	}
	if root.Strain != "R" || root.Children[0].Strain != "N1" || root.Children[1].Strain != "c" {
		t.Errorf("tree: got strains %q, %q, %q, want %q, %q, %q", root.Strain, root.Children[0].Strain, root.Children[1].Strain, "R", "N1", "c")
	}
	a := root.Children[0].Children[0]
	if a.Strain != "a" || a.Mutations != "E:T302A" {
		t.Errorf("tree: node %q: aa_mutations %q, want %q", a.Strain, a.Mutations, "E:T302A")
	}
	// empty mutation cells are exported as empty strings
	if b := root.Children[0].Children[1]; b.Mutations != "" || !b.HasMutations() {
		t.Errorf("tree: node %q: aa_mutations %v, want empty string", b.Strain, b.Raw["aa_mutations"])
	}

	var seqs map[string]map[string]any
	readJSON(t, prefix+"_sequences.json", &seqs)
	if v := seqs["root"]["nuc"]; v != "ATGAAACCC" {
		t.Errorf("sequences: root %v, want %q", v, "ATGAAACCC")
	}
	// five nodes plus the root reference
	if len(seqs) != 6 {
		t.Errorf("sequences: got %d keys, want %d", len(seqs), 6)
	}
	if v, ok := seqs["2"]["nuc"].(map[string]any); !ok || v["8"] != "A" || len(v) != 1 {
		t.Errorf("sequences: node %q: got %v, want %v", "a", seqs["2"]["nuc"], map[string]any{"8": "A"})
	}

	var div map[string]struct {
		Pos   []int     `json:"pos"`
		Codon []int     `json:"codon"`
		Val   []float64 `json:"val"`
	}
	readJSON(t, prefix+"_entropy.json", &div)
	if n := len(div["nuc"].Val); n != 9 {
		t.Errorf("entropy: nuc: got %d values, want %d", n, 9)
	}
	e, ok := div["E"]
	if !ok {
		t.Fatalf("entropy: gene %q not found", "E")
	}
	if want := []int{0, 3, 6}; len(e.Pos) != 3 || e.Pos[0] != want[0] || e.Pos[1] != want[1] || e.Pos[2] != want[2] {
		t.Errorf("entropy: E: pos %v, want %v", e.Pos, want)
	}
	if e.Val[1] != 0 {
		t.Errorf("entropy: E: conserved codon value %v, want 0", e.Val[1])
	}
}
