package report

import (
	"fmt"

	"github.com/LdDl/bubbles-go/bubbles"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotTrajectories saves recent track of every marker as a single image.
// Image format is picked by path extension (png, svg, pdf...).
// Markers with an empty track are skipped.
func PlotTrajectories(markers []*bubbles.Marker, path string) error {
	p := plot.New()
	p.Title.Text = "Bubble trajectories"
	p.X.Label.Text = "x, px"
	p.Y.Label.Text = "y, px"
	p.Legend.Top = true

	for i, marker := range markers {
		track := marker.GetTrack()
		if len(track) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(track))
		for j, pt := range track {
			// image rows grow downwards
			pts[j] = plotter.XY{X: pt.X, Y: -pt.Y}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return errors.Wrapf(err, "Can't create line for marker %d", marker.GetNumber())
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("Bubble_%d", marker.GetNumber()), line)
	}
	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "Can't save plot %s", path)
	}
	return nil
}
