// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package align_test

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/phyexport/align"
	"github.com/klauspost/compress/gzip"
)

const plain = `>seq1 first sequence
ACGT
acgt
; a comment
>seq2
NNnn
>seq3
`

func TestReadFasta(t *testing.T) {
	a, err := align.ReadFasta(strings.NewReader(plain))
	if err != nil {
		t.Fatalf("unable to read FASTA data: %v", err)
	}
	testAlignment(t, "plain", a)
}

func TestReadGzip(t *testing.T) {
	name := "tmp-aln-for-test.fasta.gz"
	defer os.Remove(name)

	f, err := os.Create(name)
	if err != nil {
		t.Fatalf("unable to create file: %v", err)
	}
	gw := gzip.NewWriter(f)
	if _, err := gw.Write([]byte(plain)); err != nil {
		t.Fatalf("unable to write data: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("unable to close gzip writer: %v", err)
	}
	f.Close()

	a, err := align.Read(name)
	if err != nil {
		t.Fatalf("unable to read file: %v", err)
	}
	testAlignment(t, "gzip", a)
}

func TestReadErrors(t *testing.T) {
	tests := map[string]string{
		"no header": "ACGT\n",
		"duplicated": `>a
ACGT
>a
ACGT
`,
		"empty name": ">\nACGT\n",
	}
	for name, data := range tests {
		if _, err := align.ReadFasta(strings.NewReader(data)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func testAlignment(t testing.TB, name string, a *align.Alignment) {
	t.Helper()

	if names := a.Names(); !reflect.DeepEqual(names, []string{"seq1", "seq2", "seq3"}) {
		t.Errorf("%s: names: got %v, want %v", name, names, []string{"seq1", "seq2", "seq3"})
	}
	want := map[string]string{
		"seq1": "ACGTACGT",
		"seq2": "NNNN",
		"seq3": "",
	}
	for n, w := range want {
		s, ok := a.Seq(n)
		if !ok {
			t.Errorf("%s: sequence %q not found", name, n)
			continue
		}
		if s != w {
			t.Errorf("%s: sequence %q: got %q, want %q", name, n, s, w)
		}
	}
	if w := a.Width(); w != 8 {
		t.Errorf("%s: width: got %d, want %d", name, w, 8)
	}
}
