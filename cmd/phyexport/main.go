// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// PhyExport is a tool to export annotated phylogenetic trees,
// ancestral sequences,
// and sequence diversity
// as JSON files for visualization.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phyexport/cmd/phyexport/add"
	"github.com/js-arias/phyexport/cmd/phyexport/div"
	"github.com/js-arias/phyexport/cmd/phyexport/entropy"
	"github.com/js-arias/phyexport/cmd/phyexport/export"
	"github.com/js-arias/phyexport/cmd/phyexport/prj"
)

var app = &command.Command{
	Usage: "phyexport <command> [<argument>...]",
	Short: "a tool to export phylogenetic data for visualization",
}

func init() {
	app.Add(add.Command)
	app.Add(div.Command)
	app.Add(entropy.Command)
	app.Add(export.Command)
	app.Add(prj.Command)
}

func main() {
	app.Main()
}
