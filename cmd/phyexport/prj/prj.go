// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prj implements a command to print
// the basic information of a project.
package prj

import (
	"fmt"
	"io"

	"github.com/js-arias/command"
	"github.com/js-arias/phyexport/project"
)

var Command = &command.Command{
	Usage: "prj <project-file>",
	Short: "print information about a project",
	Long: `
Command prj reads a PhyExport project and prints the information of the
different project elements into the standard output.

The argument of the command is the name of the project file.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	if p.Path(project.Tree) != "" {
		if err := readTree(c.Stdout(), p); err != nil {
			return err
		}
	}
	if p.Path(project.NodeData) != "" {
		if err := readNodeData(c.Stdout(), p); err != nil {
			return err
		}
	}
	if p.Path(project.Reference) != "" {
		if err := readFeatures(c.Stdout(), p); err != nil {
			return err
		}
	}
	for _, kind := range []string{project.TreeSeqs, project.SampleSeqs} {
		for _, g := range p.Genes(kind) {
			if err := readAlignment(c.Stdout(), p, kind, g); err != nil {
				return err
			}
		}
	}
	return nil
}

func readTree(w io.Writer, p *project.Project) error {
	t, err := p.Tree("")
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Tree:\n")
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.Tree))
	fmt.Fprintf(w, "\tnodes: %d\n", t.Len())
	fmt.Fprintf(w, "\tterminals: %d\n", len(t.Terms()))
	fmt.Fprintf(w, "\n")
	return nil
}

func readNodeData(w io.Writer, p *project.Project) error {
	md, err := p.NodeData()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Node metadata:\n")
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.NodeData))
	fmt.Fprintf(w, "\tnodes: %d\n", len(md.Names()))
	fmt.Fprintf(w, "\tfields: %d\n", len(md.AllFields()))
	fmt.Fprintf(w, "\n")
	return nil
}

func readFeatures(w io.Writer, p *project.Project) error {
	m, err := p.Features()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Reference features:\n")
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.Reference))
	fmt.Fprintf(w, "\tgenes: %d\n", len(m.Genes()))
	fmt.Fprintf(w, "\n")
	return nil
}

func readAlignment(w io.Writer, p *project.Project, kind, gene string) error {
	aln, err := p.Alignment(kind, gene)
	if err != nil {
		return err
	}

	set := project.AlignmentSet(kind, gene)
	fmt.Fprintf(w, "Alignment %s:\n", set)
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(set))
	fmt.Fprintf(w, "\tsequences: %d\n", aln.Len())
	fmt.Fprintf(w, "\tlength: %d\n", aln.Width())
	fmt.Fprintf(w, "\n")
	return nil
}
