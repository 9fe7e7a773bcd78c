// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package export implements a command to export
// the tree, sequences, and diversity of a project
// as JSON files.
package export

import (
	"fmt"
	"log/slog"

	"github.com/js-arias/command"
	"github.com/js-arias/phyexport/config"
	"github.com/js-arias/phyexport/diversity"
	"github.com/js-arias/phyexport/feature"
	"github.com/js-arias/phyexport/jsonfile"
	"github.com/js-arias/phyexport/project"
	"github.com/js-arias/phyexport/seqjson"
	"github.com/js-arias/phyexport/tree"
	"github.com/js-arias/phyexport/treejson"
)

var Command = &command.Command{
	Usage: `export --prefix <prefix> [--reference <feature-file>]
	[--config <config-file>] [--tree <name>] [--gzip]
	<project-file>`,
	Short: "export project data as JSON files",
	Long: `
Command export reads the data of a PhyExport project and writes three JSON
files: the annotated tree, the sequences of each node, and the entropy of each
alignment position.

The argument of the command is the name of the project file.

The flag --prefix is required and sets the prefix of the output files. The
output files will be named "<prefix>_tree.json", "<prefix>_sequences.json",
and "<prefix>_entropy.json". The prefix can include a directory.

The flag --reference sets the file with the features of the reference
sequence (see 'phyexport help feature-files'). It is used to set the position
of each codon of the protein alignments. If the flag is not defined, the
reference features of the project will be used. It is an error if neither
is defined.

The tree file is annotated with the node metadata of the project. Every node
of the tree must be defined in the node metadata. The divergence of each node
is calculated from the root using the mutation length, or the branch length,
of each node.

The sequences file stores the sequence of the root for each gene with
alignments of the nodes of the tree (defined with the dataset keyword
"seqs.<gene>"), and the sequence of each node, either as a full sequence, or
as the differences from the root sequence.

The entropy file stores the entropy of each position of the sample alignments
(defined with the dataset keyword "aln.<gene>"). Protein alignments of genes
not defined in the reference features are ignored.

If the tree file of the project contains more than one tree, the first tree
will be used. Use the flag --tree to define a different tree.

The flag --config sets a TOML configuration file for the export (see
'phyexport help config'). If the flag --gzip is defined, the output files will
be compressed with gzip.

Any error aborts the export.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var prefix string
var refFile string
var configFile string
var treeName string
var gzipFlag bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&prefix, "prefix", "", "")
	c.Flags().StringVar(&refFile, "reference", "", "")
	c.Flags().StringVar(&configFile, "config", "", "")
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().BoolVar(&gzipFlag, "gzip", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if prefix == "" {
		return c.UsageError("flag --prefix must be defined")
	}
	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	cfg := config.Default()
	if configFile != "" {
		cfg, err = config.Read(configFile)
		if err != nil {
			return err
		}
	}
	if gzipFlag {
		cfg.Gzip = true
	}

	logger := slog.New(slog.NewTextHandler(c.Stderr(), nil))

	t, err := p.Tree(treeName)
	if err != nil {
		return err
	}
	if err := exportTree(p, t, cfg, logger); err != nil {
		return err
	}
	if err := exportSequences(p, t, cfg); err != nil {
		return err
	}
	if err := exportDiversity(p, cfg); err != nil {
		return err
	}
	return nil
}

func exportTree(p *project.Project, t *tree.Tree, cfg *config.Config, logger *slog.Logger) error {
	md, err := p.NodeData()
	if err != nil {
		return err
	}
	if err := tree.Attach(t, md); err != nil {
		return fmt.Errorf("on project %q: %v", p.Name(), err)
	}

	fields, err := cfg.ExportFields(md.Fields())
	if err != nil {
		return err
	}
	obj := treejson.Serialize(t.Root(), fields, logger)

	opt := jsonfile.Options{
		Indent: cfg.Indent,
		Gzip:   cfg.Gzip,
	}
	if _, err := jsonfile.Write(prefix+"_tree.json", obj, opt); err != nil {
		return err
	}
	return nil
}

func exportSequences(p *project.Project, t *tree.Tree, cfg *config.Config) error {
	var genes []seqjson.Gene
	for _, g := range p.Genes(project.TreeSeqs) {
		aln, err := p.Alignment(project.TreeSeqs, g)
		if err != nil {
			return err
		}
		genes = append(genes, seqjson.Gene{
			Name: g,
			Aln:  aln,
		})
	}

	elems, err := seqjson.Encode(t, genes)
	if err != nil {
		return fmt.Errorf("on project %q: %v", p.Name(), err)
	}

	opt := jsonfile.Options{Gzip: cfg.Gzip}
	if _, err := jsonfile.Write(prefix+"_sequences.json", elems, opt); err != nil {
		return err
	}
	return nil
}

func exportDiversity(p *project.Project, cfg *config.Config) error {
	var genes feature.Map
	var err error
	if refFile != "" {
		genes, err = feature.Read(refFile)
	} else {
		genes, err = p.Features()
	}
	if err != nil {
		return err
	}

	var feats []diversity.Feature
	for _, g := range p.Genes(project.SampleSeqs) {
		aln, err := p.Alignment(project.SampleSeqs, g)
		if err != nil {
			return err
		}
		feats = append(feats, diversity.Feature{
			Name:    g,
			Entropy: diversity.Entropy(aln, g == diversity.Nuc),
		})
	}

	div, err := diversity.Compute(feats, genes)
	if err != nil {
		return fmt.Errorf("on project %q: %v", p.Name(), err)
	}

	opt := jsonfile.Options{Gzip: cfg.Gzip}
	if _, err := jsonfile.Write(prefix+"_entropy.json", div, opt); err != nil {
		return err
	}
	return nil
}
