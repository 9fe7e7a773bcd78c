// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"

	"github.com/js-arias/phyexport/align"
	"github.com/js-arias/phyexport/feature"
	"github.com/js-arias/phyexport/metadata"
	"github.com/js-arias/phyexport/tree"
)

// Tree reads the tree file
// as defined in a project.
// If the tree file contains more than one tree,
// the tree with the given name will be used.
func (p *Project) Tree(name string) (*tree.Tree, error) {
	tf := p.Path(Tree)
	if tf == "" {
		return nil, fmt.Errorf("tree not defined in project %q", p.name)
	}
	return tree.Read(tf, name)
}

// NodeData reads the node metadata file
// as defined in a project.
func (p *Project) NodeData() (*metadata.Table, error) {
	name := p.Path(NodeData)
	if name == "" {
		return nil, fmt.Errorf("node data not defined in project %q", p.name)
	}
	return metadata.Read(name)
}

// Features reads the reference features file
// as defined in a project.
func (p *Project) Features() (feature.Map, error) {
	name := p.Path(Reference)
	if name == "" {
		return nil, fmt.Errorf("reference features not defined in project %q", p.name)
	}
	return feature.Read(name)
}

// Alignment reads an alignment file
// of the given kind and gene
// as defined in a project.
func (p *Project) Alignment(kind, gene string) (*align.Alignment, error) {
	name := p.Path(AlignmentSet(kind, gene))
	if name == "" {
		return nil, fmt.Errorf("alignment %s.%s not defined in project %q", kind, gene, p.name)
	}
	return align.Read(name)
}
