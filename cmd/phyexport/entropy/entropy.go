// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package entropy implements a command to print
// the entropy of each position of the sample alignments.
package entropy

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/phyexport/diversity"
	"github.com/js-arias/phyexport/feature"
	"github.com/js-arias/phyexport/project"
)

var Command = &command.Command{
	Usage: `entropy [--gene <gene>] [--reference <feature-file>]
	[--plot <file-prefix>] <project-file>`,
	Short: "print the entropy of the sample alignments",
	Long: `
Command entropy reads the sample alignments of a PhyExport project and prints
the entropy of each position as a tab-delimited table into the standard
output.

The argument of the command is the name of the project file.

By default, all the sample alignments (defined with the dataset keyword
"aln.<gene>") are used. Use the flag --gene to print only the indicated gene.

The entropy is calculated with the natural logarithm, and it is rounded to 4
decimal digits. Gaps and ambiguous characters are ignored.

The positions of protein alignments are set using the features of the
reference sequence. By default, the reference features of the project are
used. Use the flag --reference to use a different features file. Protein
alignments of genes not defined in the reference features are ignored.

The output table has the following columns:

	- gene   the name of the gene
	- pos    the position in the reference sequence
	- codon  the codon index
	- val    the entropy value

If the flag --plot is defined with a file prefix, a plot of the entropy of
each gene will be produced, using the indicated prefix and the name of the
gene as the file name (for example, "<prefix>-nuc.png").
	`,
	SetFlags: setFlags,
	Run:      run,
}

var geneFlag string
var refFile string
var plotPrefix string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&geneFlag, "gene", "", "")
	c.Flags().StringVar(&refFile, "reference", "", "")
	c.Flags().StringVar(&plotPrefix, "plot", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	genes := p.Genes(project.SampleSeqs)
	if geneFlag != "" {
		if !slices.Contains(genes, geneFlag) {
			return fmt.Errorf("gene %q not defined in project %q", geneFlag, p.Name())
		}
		genes = []string{geneFlag}
	}
	if len(genes) == 0 {
		return fmt.Errorf("sample alignments not defined in project %q", p.Name())
	}

	ref, err := readFeatures(p)
	if err != nil {
		return err
	}

	var feats []diversity.Feature
	for _, g := range genes {
		if g != diversity.Nuc {
			if _, ok := ref[g]; !ok {
				fmt.Fprintf(c.Stderr(), "WARNING: gene %q: not defined in reference features\n", g)
				continue
			}
		}
		aln, err := p.Alignment(project.SampleSeqs, g)
		if err != nil {
			return err
		}
		feats = append(feats, diversity.Feature{
			Name:    g,
			Entropy: diversity.Entropy(aln, g == diversity.Nuc),
		})
	}

	div, err := diversity.Compute(feats, ref)
	if err != nil {
		return fmt.Errorf("on project %q: %v", p.Name(), err)
	}

	if err := writeEntropy(c.Stdout(), genes, div); err != nil {
		return err
	}

	if plotPrefix != "" {
		for _, g := range genes {
			r, ok := div[g]
			if !ok {
				continue
			}
			if err := plotEntropy(g, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func readFeatures(p *project.Project) (feature.Map, error) {
	if refFile != "" {
		return feature.Read(refFile)
	}
	if p.Path(project.Reference) == "" {
		return feature.Map{}, nil
	}
	return p.Features()
}

func writeEntropy(w io.Writer, genes []string, div map[string]diversity.Record) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write([]string{"gene", "pos", "codon", "val"}); err != nil {
		return err
	}
	for _, g := range genes {
		r, ok := div[g]
		if !ok {
			continue
		}
		for i, v := range r.Val {
			row := []string{
				g,
				strconv.Itoa(r.Pos[i]),
				strconv.Itoa(r.Codon[i]),
				strconv.FormatFloat(v, 'f', 4, 64),
			}
			if err := tab.Write(row); err != nil {
				return err
			}
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return err
	}
	return nil
}
