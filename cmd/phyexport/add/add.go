// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add data files
// to a PhyExport project.
package add

import (
	"errors"
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phyexport/align"
	"github.com/js-arias/phyexport/feature"
	"github.com/js-arias/phyexport/metadata"
	"github.com/js-arias/phyexport/project"
	"github.com/js-arias/phyexport/tree"
)

var Command = &command.Command{
	Usage: `add [--no-check] <project-file> <dataset> <file>`,
	Short: "add a data file to a PhyExport project",
	Long: `
Command add adds a data file to a PhyExport project.

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

The second argument is the dataset keyword of the file. Valid keywords are:

	tree       the phylogenetic tree
	nodedata   the node metadata
	reference  the features of the reference sequence
	seqs.<gene>  an alignment with the sequences of all the nodes of
	             the tree, for the indicated gene
	aln.<gene>   an alignment with the sequences of the samples, for
	             the indicated gene

The third argument is the name of the file. If the dataset is already defined
in the project, the new file will replace the previous one.

Before adding the file, the file is read to check that it is a valid file for
the dataset. Use the flag --no-check to skip the check.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var noCheck bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&noCheck, "no-check", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if len(args) < 2 {
		return c.UsageError("expecting dataset keyword")
	}
	if len(args) < 3 {
		return c.UsageError("expecting data file")
	}

	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	set := project.Dataset(args[1])
	name := args[2]
	if !noCheck {
		if err := checkFile(set, name); err != nil {
			return err
		}
	}

	if prev := p.Add(set, name); prev != "" && prev != name {
		fmt.Fprintf(c.Stderr(), "WARNING: dataset %q: file %q replaced by %q\n", set, prev, name)
	}
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

func checkFile(set project.Dataset, name string) error {
	var err error
	switch set {
	case project.Tree:
		_, err = tree.Read(name, "")
	case project.NodeData:
		_, err = metadata.Read(name)
	case project.Reference:
		_, err = feature.Read(name)
	default:
		if _, _, ok := set.Gene(); !ok {
			return fmt.Errorf("unknown dataset %q", set)
		}
		_, err = align.Read(name)
	}
	return err
}
