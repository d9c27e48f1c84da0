// Package render draws estimated-vs-ground-truth trajectory comparisons as
// PNG files. Paths arrive in the local (North, East) frame and are drawn
// with East on the horizontal axis and North on the vertical axis.
//
// Rendering is non-blocking: figures are written to disk rather than shown
// in an interactive window.
package render

import (
	"fmt"
	"image/color"

	"github.com/UnknownOlympus/meridian/internal/geo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	estimatedColor = color.RGBA{B: 255, A: 255}
	truthColor     = color.RGBA{R: 255, A: 255}
)

// Comparison renders both paths as lines and saves the figure to outPath.
// (x, y) = (North, East) in meters for each path.
func Comparison(x1, y1, x2, y2 []float64, label1, label2, outPath string) error {
	p, err := newComparisonPlot(x1, y1, x2, y2)
	if err != nil {
		return err
	}

	est, truth := toXYs(x1, y1), toXYs(x2, y2)

	estLine, err := plotter.NewLine(est)
	if err != nil {
		return fmt.Errorf("failed to build estimated path line: %w", err)
	}
	estLine.Color = estimatedColor
	estLine.Width = vg.Points(1)
	p.Add(estLine)
	p.Legend.Add(label1, estLine)

	truthLine, err := plotter.NewLine(truth)
	if err != nil {
		return fmt.Errorf("failed to build ground-truth path line: %w", err)
	}
	truthLine.Color = truthColor
	truthLine.Width = vg.Points(1)
	p.Add(truthLine)
	p.Legend.Add(label2, truthLine)

	return save(p, outPath)
}

// ComparisonScatter renders both paths as point clouds and saves the figure
// to outPath. Useful when line rendering smears dense, noisy estimates.
func ComparisonScatter(x1, y1, x2, y2 []float64, label1, label2, outPath string) error {
	p, err := newComparisonPlot(x1, y1, x2, y2)
	if err != nil {
		return err
	}

	est, truth := toXYs(x1, y1), toXYs(x2, y2)

	estScatter, err := plotter.NewScatter(est)
	if err != nil {
		return fmt.Errorf("failed to build estimated path scatter: %w", err)
	}
	estScatter.GlyphStyle.Color = estimatedColor
	estScatter.GlyphStyle.Radius = vg.Points(1)
	p.Add(estScatter)
	p.Legend.Add(label1, estScatter)

	truthScatter, err := plotter.NewScatter(truth)
	if err != nil {
		return fmt.Errorf("failed to build ground-truth path scatter: %w", err)
	}
	truthScatter.GlyphStyle.Color = truthColor
	truthScatter.GlyphStyle.Radius = vg.Points(1)
	p.Add(truthScatter)
	p.Legend.Add(label2, truthScatter)

	return save(p, outPath)
}

func newComparisonPlot(x1, y1, x2, y2 []float64) (*plot.Plot, error) {
	if len(x1) != len(y1) {
		return nil, fmt.Errorf("estimated path: %w: %d north offsets, %d east offsets",
			geo.ErrLengthMismatch, len(x1), len(y1))
	}
	if len(x2) != len(y2) {
		return nil, fmt.Errorf("ground-truth path: %w: %d north offsets, %d east offsets",
			geo.ErrLengthMismatch, len(x2), len(y2))
	}

	p := plot.New()
	p.Title.Text = "Comparison"
	p.X.Label.Text = "East [m]"
	p.Y.Label.Text = "North [m]"
	p.Legend.Top = true

	equalize(p, append(toXYs(x1, y1), toXYs(x2, y2)...))
	return p, nil
}

// toXYs maps (North, East) samples onto plot points with East on X.
func toXYs(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i] = plotter.XY{X: y[i], Y: x[i]}
	}
	return pts
}

// equalize pads the axis ranges so one meter spans the same distance on
// both axes, keeping the trajectory geometry undistorted. The figure is
// saved square for the same reason.
func equalize(p *plot.Plot, pts plotter.XYs) {
	if len(pts) == 0 {
		return
	}

	xmin, xmax := pts[0].X, pts[0].X
	ymin, ymax := pts[0].Y, pts[0].Y
	for _, pt := range pts[1:] {
		xmin, xmax = min(xmin, pt.X), max(xmax, pt.X)
		ymin, ymax = min(ymin, pt.Y), max(ymax, pt.Y)
	}

	span := max(xmax-xmin, ymax-ymin)
	if span == 0 {
		span = 1
	}
	xmid := (xmin + xmax) / 2
	ymid := (ymin + ymax) / 2

	p.X.Min, p.X.Max = xmid-span/2, xmid+span/2
	p.Y.Min, p.Y.Max = ymid-span/2, ymid+span/2
}

func save(p *plot.Plot, outPath string) error {
	if err := p.Save(8*vg.Inch, 8*vg.Inch, outPath); err != nil {
		return fmt.Errorf("failed to save comparison figure to %s: %w", outPath, err)
	}
	return nil
}
