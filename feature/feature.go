// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package feature implements reading of gene features
// of a reference sequence.
//
// A feature map stores,
// for each gene,
// the nucleotide coordinates
// (0-based)
// of the gene in the reference sequence,
// in reading order.
package feature

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// Map is a collection of gene coordinates.
type Map map[string][]int

// Add adds a segment to a gene.
// Start and end are 0-based,
// and end is exclusive.
// If reverse is true,
// the segment is read in the reverse strand.
func (m Map) Add(gene string, start, end int, reverse bool) error {
	if start < 0 || end <= start {
		return fmt.Errorf("gene %q: invalid segment [%d, %d)", gene, start, end)
	}
	seg := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		seg = append(seg, i)
	}
	if reverse {
		slices.Reverse(seg)
	}
	m[gene] = append(m[gene], seg...)
	return nil
}

// Genes returns the gene names
// in alphabetical order.
func (m Map) Genes() []string {
	genes := make([]string, 0, len(m))
	for g := range m {
		genes = append(genes, g)
	}
	slices.Sort(genes)
	return genes
}

// Codons returns the start position of each codon
// of a gene.
func (m Map) Codons(gene string) []int {
	pos := m[gene]
	codons := make([]int, 0, (len(pos)+2)/3)
	for i := 0; i < len(pos); i += 3 {
		codons = append(codons, pos[i])
	}
	return codons
}

// ReadGFF reads the features from a GFF3 file.
//
// Only CDS rows are used,
// and the gene name is taken
// from the "gene" attribute,
// or the "Name" attribute.
// Segments of the same gene are joined
// in file order.
func ReadGFF(r io.Reader) (Map, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'
	tab.FieldsPerRecord = -1
	tab.LazyQuotes = true

	m := make(Map)
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		if len(row) < 9 {
			return nil, fmt.Errorf("on row %d: expecting 9 columns, found %d", ln, len(row))
		}
		if row[2] != "CDS" {
			continue
		}

		gene := gffAttr(row[8], "gene")
		if gene == "" {
			gene = gffAttr(row[8], "Name")
		}
		if gene == "" {
			continue
		}

		start, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("on row %d: start: %v", ln, err)
		}
		end, err := strconv.Atoi(row[4])
		if err != nil {
			return nil, fmt.Errorf("on row %d: end: %v", ln, err)
		}
		if err := m.Add(gene, start-1, end, row[6] == "-"); err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
	}
	return m, nil
}

func gffAttr(attrs, key string) string {
	for _, a := range strings.Split(attrs, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(a), "=")
		if !ok {
			continue
		}
		if k == key {
			return v
		}
	}
	return ""
}

// ReadTSV reads the features from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - gene, the name of the gene
//   - start, the start position (1-based, inclusive)
//   - end, the end position (1-based, inclusive)
//
// Optionally, it can contain the field "strand",
// with "-" for genes in the reverse strand.
//
// Here is an example file:
//
//	# zika features
//	gene	start	end	strand
//	C	108	473	+
//	E	978	2489	+
//	NS1	2490	3545	+
func ReadTSV(r io.Reader) (Map, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range []string{"gene", "start", "end"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	m := make(Map)
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "gene"
		gene := strings.TrimSpace(row[fields[f]])
		if gene == "" {
			continue
		}

		f = "start"
		start, err := strconv.Atoi(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		f = "end"
		end, err := strconv.Atoi(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		var reverse bool
		if i, ok := fields["strand"]; ok {
			reverse = strings.TrimSpace(row[i]) == "-"
		}

		if err := m.Add(gene, start-1, end, reverse); err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
	}
	return m, nil
}

// Read reads a feature file.
// Files with extension .gff or .gff3
// are read as GFF3 files,
// any other file is read as a TSV file.
func Read(name string) (Map, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var m Map
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gff", ".gff3":
		m, err = ReadGFF(f)
	default:
		m, err = ReadTSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return m, nil
}
