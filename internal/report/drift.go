package report

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/lukeabraham24777/pipeline-anomaly-detection/internal/ili"
)

// WriteDriftPNG plots a run's odometer drift profile: aligned station minus
// raw logged distance, against raw distance. For a joint-aligned run the
// curve shows accumulated odometer slip; for a weld-aligned run it shows
// the piecewise-linear correction being applied. Returns an error when
// fewer than two records have both values.
func WriteDriftPNG(path string, recs []ili.AlignedRecord) error {
	pts := make(plotter.XYs, 0, len(recs))
	for _, r := range recs {
		if r.RawDist.Valid && r.Station.Valid {
			pts = append(pts, plotter.XY{X: r.RawDist.V, Y: r.Station.V - r.RawDist.V})
		}
	}
	if len(pts) < 2 {
		return fmt.Errorf("drift plot %s: need at least 2 aligned records, have %d", path, len(pts))
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })

	p := plot.New()
	p.Title.Text = "Odometer drift"
	p.X.Label.Text = "raw distance (ft)"
	p.Y.Label.Text = "station - raw distance (ft)"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("drift plot %s: %w", path, err)
	}
	line.Width = vg.Points(1)
	p.Add(line)
	p.Add(plotter.NewGrid())

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save drift plot: %w", err)
	}
	return nil
}
