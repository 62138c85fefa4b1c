package export

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4 * vg.Inch
)

// NewPlot draws z(r) in millimetres.
func NewPlot(title string, r, z []float64) (*plot.Plot, error) {
	if len(r) != len(z) || len(r) == 0 {
		return nil, fmt.Errorf("export: plot data invalid")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "r (mm)"
	p.Y.Label.Text = "z (mm)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(r))
	for i := range r {
		pts[i].X = r[i] * 1e3
		pts[i].Y = z[i] * 1e3
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(1.5)
	points.Radius = vg.Points(1.5)
	p.Add(line)
	if len(pts) <= 50 {
		p.Add(points)
	}
	return p, nil
}

// SavePlot writes the profile as an image; the format follows the extension
// (.png, .svg, .pdf, ...).
func SavePlot(path, title string, r, z []float64) error {
	p, err := NewPlot(title, r, z)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create directory: %w", err)
		}
	}
	if filepath.Ext(path) == "" {
		return fmt.Errorf("export: plot path %q needs an extension", path)
	}
	return p.Save(plotWidth, plotHeight, path)
}
