// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package div implements a command to print
// the divergence of each node of a tree.
package div

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/phyexport/project"
	"github.com/js-arias/phyexport/tree"
)

var Command = &command.Command{
	Usage: "div [--tree <name>] [--no-data] <project-file>",
	Short: "print the divergence of each node",
	Long: `
Command div reads the tree of a PhyExport project, annotates it with the node
metadata, and prints the divergence of each node from the root as a
tab-delimited table into the standard output.

The argument of the command is the name of the project file.

The divergence of the root is 0. The divergence of any other node is the
divergence of its parent plus the mutation length of the node, or, if the node
does not define a mutation length, the branch length of the node.

If the tree file of the project contains more than one tree, the first tree
will be used. Use the flag --tree to define a different tree.

By default, the node metadata of the project is used to set the branch
lengths. If the flag --no-data is defined, the branch lengths of the tree file
will be used.

The output table has the following columns:

	- node    the name of the node, or its clade index if the node is
	          not named
	- parent  the parent of the node ("--" for the root)
	- div     the divergence of the node
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var noData bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().BoolVar(&noData, "no-data", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	t, err := p.Tree(treeName)
	if err != nil {
		return err
	}

	if noData {
		err = tree.Divergence(t)
	} else {
		err = attach(p, t)
	}
	if err != nil {
		return fmt.Errorf("on project %q: %v", p.Name(), err)
	}

	if err := writeDiv(c.Stdout(), t); err != nil {
		return err
	}
	return nil
}

func attach(p *project.Project, t *tree.Tree) error {
	md, err := p.NodeData()
	if err != nil {
		return err
	}
	return tree.Attach(t, md)
}

func writeDiv(w io.Writer, t *tree.Tree) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write([]string{"node", "parent", "div"}); err != nil {
		return err
	}
	for _, n := range t.Preorder() {
		d, _ := n.Div()
		parent := "--"
		if pn := n.Parent(); pn != nil {
			parent = pn.Key()
		}
		row := []string{
			n.Key(),
			parent,
			strconv.FormatFloat(d, 'f', 6, 64),
		}
		if err := tab.Write(row); err != nil {
			return err
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return err
	}
	return nil
}
