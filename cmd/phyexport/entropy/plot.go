// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package entropy

import (
	"fmt"

	"github.com/js-arias/phyexport/diversity"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func plotEntropy(gene string, r diversity.Record) error {
	p := plot.New()
	p.Title.Text = gene
	p.X.Label.Text = "position"
	p.Y.Label.Text = "entropy"
	if gene != diversity.Nuc {
		p.X.Label.Text = "codon"
	}

	pts := make(plotter.XYs, len(r.Val))
	for i, v := range r.Val {
		pts[i].X = float64(r.Pos[i])
		if gene != diversity.Nuc {
			pts[i].X = float64(r.Codon[i])
		}
		pts[i].Y = v
	}

	ln, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("gene %q: %v", gene, err)
	}
	ln.LineStyle = plotter.DefaultLineStyle
	p.Add(ln)

	name := fmt.Sprintf("%s-%s.png", plotPrefix, gene)
	if err := p.Save(8*vg.Inch, 3*vg.Inch, name); err != nil {
		return err
	}
	return nil
}
