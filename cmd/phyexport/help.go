// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(configGuide)
	app.Add(featureFilesGuide)
	app.Add(nodeDataGuide)
	app.Add(outputGuide)
	app.Add(projectsGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
PhyExport requires several files to build the exported data. To reduce the
burden of keeping track of many files, a single project file is used to hold
the reference of all files required in the export. This guide explains the
structure of the file, but most of the time, the best way to edit this file is
by using the command 'phyexport add'.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# phyexport project files
	dataset	path
	tree	tree.nwk
	nodedata	node-data.tab
	reference	features.gff
	seqs.nuc	ancestral-nuc.fasta
	seqs.E	ancestral-E.fasta
	aln.nuc	aln-nuc.fasta
	aln.E	aln-E.fasta

The valid file types are:

- Phylogenetic tree. Defined by the dataset keyword "tree". Files with the
  extension .nwk, .newick, .tre, or .tree are read as newick trees; any other
  file is read as a tab-delimited tree file.
- Node metadata. Defined by the dataset keyword "nodedata". See
  'phyexport help node-data'.
- Reference features. Defined by the dataset keyword "reference". See
  'phyexport help feature-files'.
- Tree alignments. Defined by the dataset keyword "seqs.<gene>". A FASTA file
  with the sequences of all nodes of the tree (including the root, and any
  other internal node) for the indicated gene. The gene "nuc" is used for the
  whole nucleotide sequence.
- Sample alignments. Defined by the dataset keyword "aln.<gene>". A FASTA file
  with the sequences of the samples for the indicated gene. The gene "nuc" is
  the nucleotide alignment, any other gene is a protein alignment.

FASTA files with the extension .gz are read as gzip compressed files.
	`,
}

var nodeDataGuide = &command.Command{
	Usage: "node-data",
	Short: "about node metadata files",
	Long: `
Node metadata files store the values of the fields of each node in the tree.
Every node of the tree must be defined in the node metadata file. Nodes
without name are identified by their clade index (the preorder index of the
node, starting at 0 for the root).

A node metadata file is a tab-delimited file with the following fields:

	- node  the name of the node (it can also be "name" or "strain")

Any other column is a field. Empty cells are undefined fields. Here is an
example file:

	# node metadata
	node	branch_length	numdate	country	aa_mutations
	NODE_0000001	0.000000	2013.51	brazil
	ZKC2/2016	0.001030	2016.09	american_samoa	E:T302A

Node metadata files with the extension .json are read as node data JSON
files, in which the "nodes" object contains an object with the fields of each
node:

	{
	  "nodes": {
	    "NODE_0000001": {"branch_length": 0.0, "numdate": 2013.51},
	    "ZKC2/2016": {"branch_length": 0.00103, "country": "american_samoa"}
	  }
	}

The fields "branch_length", "mutation_length", "clock_length", "clade", and
"numdate", as well as any field with "mutations" in its name, are core fields
of the node. Any other field is stored in the "attr" map of the node. The
divergence of each node is calculated from the mutation length (or the
branch length, if the mutation length is not defined) and stored as "div" in
the "attr" map.
	`,
}

var featureFilesGuide = &command.Command{
	Usage: "feature-files",
	Short: "about reference feature files",
	Long: `
Reference feature files define the coordinates of the genes in the reference
sequence. They are used to set the nucleotide position of each codon of the
protein alignments.

Files with the extension .gff or .gff3 are read as GFF3 files. Only CDS
features are used, and the gene name is taken from the "gene" attribute, or
the "Name" attribute. A gene with multiple CDS rows is joined in file order.

Any other file is read as a tab-delimited file with the following columns:

	- gene    the name of the gene
	- start   the start position (1-based, inclusive)
	- end     the end position (1-based, inclusive)

Optionally, it can contain the column "strand", with "-" for genes in the
reverse strand.

Here is an example file:

	# zika features
	gene	start	end	strand
	C	108	473	+
	E	978	2489	+
	NS1	2490	3545	+
	`,
}

var configGuide = &command.Command{
	Usage: "config",
	Short: "about export configuration files",
	Long: `
An export configuration file is a TOML file that modifies the output of the
command 'phyexport export'. Here is an example file:

	# export configuration
	indent = 1
	gzip = false
	fields = ["numdate", "clade", "aa_mutations", "attr"]

	[[derived]]
	field = "clock_length"
	label = "r3"
	transform = "round"
	digits = 3

The keys are:

- indent: number of spaces used to indent the tree file. If 0, the tree will
  be written without spaces. Default is 1.
- gzip: if true, the output files will be compressed with gzip.
- fields: the fields exported in the tree file. By default, the fields of the
  first node in the node metadata file, as well as the "attr" map, are
  exported.
- derived: a derived field. It is exported with the key "<field>:<label>",
  using the indicated transformation. Valid transformations are "round" (with
  the given digits), "string", "upper", and "lower".
	`,
}

var outputGuide = &command.Command{
	Usage: "output-files",
	Short: "about the exported files",
	Long: `
The command 'phyexport export' writes three JSON files.

The tree file (<prefix>_tree.json) is a nested object. Each node contains the
name of the node (as "strain"), the "numdate" (rounded to five decimals), the
exported fields, and the "children" of the node (only on internal nodes).

The sequences file (<prefix>_sequences.json) is an object keyed by "root" and
the clade index of each node. Each value is an object keyed by gene. The root
stores the full sequence of the gene, and any other node stores either the
full sequence, or an object with the positions (0-based) that are different
from the root sequence, and the state at each position.

The entropy file (<prefix>_entropy.json) is an object keyed by gene (or "nuc"
for the nucleotide alignment). Each value is an object with the arrays "pos"
(the nucleotide position), "codon" (the codon index), and "val" (the entropy
at that position, in nats).
	`,
}
