// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package align implements reading
// of sequence alignments in FASTA format.
package align

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// An Alignment is a collection of sequences
// identified by name.
type Alignment struct {
	names []string
	seqs  map[string]string
}

// New creates a new empty alignment.
func New() *Alignment {
	return &Alignment{
		seqs: make(map[string]string),
	}
}

// Add adds a sequence to the alignment.
// Sequences are stored in upper case.
func (a *Alignment) Add(name, seq string) error {
	if name == "" {
		return fmt.Errorf("empty sequence name")
	}
	if _, dup := a.seqs[name]; dup {
		return fmt.Errorf("sequence %q already defined", name)
	}
	a.names = append(a.names, name)
	a.seqs[name] = strings.ToUpper(seq)
	return nil
}

// Seq returns the sequence with the given name.
func (a *Alignment) Seq(name string) (string, bool) {
	s, ok := a.seqs[name]
	return s, ok
}

// Names returns the sequence names
// in the order they were added.
func (a *Alignment) Names() []string {
	return a.names
}

// Len returns the number of sequences.
func (a *Alignment) Len() int {
	return len(a.names)
}

// Width returns the length of the longest sequence.
func (a *Alignment) Width() int {
	var w int
	for _, s := range a.seqs {
		if len(s) > w {
			w = len(s)
		}
	}
	return w
}

// ReadFasta reads an alignment in FASTA format.
// The first word of the header line
// is used as the sequence name.
func ReadFasta(r io.Reader) (*Alignment, error) {
	a := New()
	br := bufio.NewReader(r)

	var name string
	var seq bytes.Buffer
	var ln int
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("on line %d: %v", ln+1, err)
		}
		eof := err == io.EOF
		if eof && line == "" {
			break
		}
		ln++

		line = strings.TrimSpace(line)
		switch {
		case line == "":
		case line[0] == '>':
			if name != "" {
				if err := a.Add(name, seq.String()); err != nil {
					return nil, fmt.Errorf("on line %d: %v", ln, err)
				}
			}
			fields := strings.Fields(line[1:])
			if len(fields) == 0 {
				return nil, fmt.Errorf("on line %d: empty sequence name", ln)
			}
			name = fields[0]
			seq.Reset()
		case line[0] == ';':
		default:
			if name == "" {
				return nil, fmt.Errorf("on line %d: sequence without header", ln)
			}
			seq.WriteString(line)
		}
		if eof {
			break
		}
	}
	if name != "" {
		if err := a.Add(name, seq.String()); err != nil {
			return nil, fmt.Errorf("on line %d: %v", ln, err)
		}
	}
	return a, nil
}

// Read reads an alignment from a FASTA file.
// If the file name ends with ".gz"
// the file is decompressed.
func Read(name string) (*Alignment, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(name, ".gz") {
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("on file %q: %v", name, err)
		}
		defer gr.Close()
		r = gr
	}

	a, err := ReadFasta(r)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return a, nil
}
