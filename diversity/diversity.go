// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package diversity implements positional diversity statistics
// of sequence alignments.
package diversity

import (
	"fmt"
	"math"

	"github.com/js-arias/phyexport/align"
	"github.com/js-arias/phyexport/feature"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// Nuc is the name of the nucleotide feature.
const Nuc = "nuc"

// Valid states.
const (
	nucStates = "ACGT"
	aaStates  = "ACDEFGHIKLMNPQRSTVWY*"
)

// Entropy returns the Shannon entropy
// (in nats)
// of each column of an alignment.
// If nuc is true,
// the alignment is a nucleotide alignment,
// otherwise it is a protein alignment.
// Characters that are not valid states
// (for example gaps or ambiguities)
// are ignored.
func Entropy(aln *align.Alignment, nuc bool) []float64 {
	states := aaStates
	if nuc {
		states = nucStates
	}
	var index [256]int
	for i := range index {
		index[i] = -1
	}
	for i := 0; i < len(states); i++ {
		index[states[i]] = i
	}

	w := aln.Width()
	counts := make([][]float64, w)
	for i := range counts {
		counts[i] = make([]float64, len(states))
	}
	for _, n := range aln.Names() {
		seq, _ := aln.Seq(n)
		for i := 0; i < len(seq); i++ {
			if s := index[seq[i]]; s >= 0 {
				counts[i][s]++
			}
		}
	}

	ent := make([]float64, w)
	for i, c := range counts {
		var sum float64
		for _, v := range c {
			sum += v
		}
		if sum == 0 {
			continue
		}
		p := make([]float64, len(c))
		for j, v := range c {
			p[j] = v / sum
		}
		ent[i] = stat.Entropy(p)
	}
	return ent
}

// A Record is the diversity of a feature.
type Record struct {
	Pos   []int     `json:"pos"`
	Codon []int     `json:"codon"`
	Val   []float64 `json:"val"`
}

// A Feature is the entropy
// of each position of a feature.
type Feature struct {
	Name    string
	Entropy []float64
}

// Compute packages the entropy of each feature.
//
// Entropy values are rounded to 4 decimal digits,
// and negative values are set to 0.
// For the nucleotide feature,
// the position is the alignment column,
// and the codon is the column divided by 3.
// For any other feature,
// the position is the start of the codon
// in the gene coordinates,
// and the codon is the column.
// Features not defined in the gene map are ignored.
func Compute(features []Feature, genes feature.Map) (map[string]Record, error) {
	div := make(map[string]Record, len(features))
	for _, f := range features {
		val := make([]float64, len(f.Entropy))
		for i, e := range f.Entropy {
			val[i] = math.Max(0, scalar.Round(e, 4))
		}
		n := len(val)

		if f.Name == Nuc {
			r := Record{
				Pos:   make([]int, n),
				Codon: make([]int, n),
				Val:   val,
			}
			for i := range r.Pos {
				r.Pos[i] = i
				r.Codon[i] = i / 3
			}
			div[f.Name] = r
			continue
		}

		if _, ok := genes[f.Name]; !ok {
			continue
		}
		codons := genes.Codons(f.Name)
		if len(codons) < n {
			return nil, fmt.Errorf("feature %q: %d codons in reference, want %d", f.Name, len(codons), n)
		}
		r := Record{
			Pos:   codons[:n],
			Codon: make([]int, n),
			Val:   val,
		}
		for i := range r.Codon {
			r.Codon[i] = i
		}
		div[f.Name] = r
	}
	return div, nil
}
