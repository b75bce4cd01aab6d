package render

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/soypat/litho/internal/d3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// profileBins is the number of samples taken along x.
const profileBins = 512

// Profile returns the highest z of the model's vertices lying within a thin
// band around y, sampled in bins along x and sorted by x. It is useful to
// inspect the relief of a displaced surface.
func Profile(model []Triangle3, y float64) (plotter.XYs, error) {
	bb := d3.EmptyBox()
	for _, t := range model {
		for _, v := range t {
			bb = bb.Include(v)
		}
	}
	if bb.Empty() {
		return nil, errors.New("profile: empty model")
	}
	size := bb.Size()
	band := size.Y / 100
	if band == 0 {
		band = math.SmallestNonzeroFloat64
	}
	width := size.X
	if width == 0 {
		width = 1
	}
	top := make(map[int]plotter.XY)
	for _, t := range model {
		for _, v := range t {
			if math.Abs(v.Y-y) > band {
				continue
			}
			bin := int(float64(profileBins-1) * (v.X - bb.Min.X) / width)
			if cur, ok := top[bin]; !ok || v.Z > cur.Y {
				top[bin] = plotter.XY{X: v.X, Y: v.Z}
			}
		}
	}
	if len(top) == 0 {
		return nil, fmt.Errorf("profile: no vertices within %g of y=%g", band, y)
	}
	xys := make(plotter.XYs, 0, len(top))
	for _, xy := range top {
		xys = append(xys, xy)
	}
	sort.Slice(xys, func(i, j int) bool { return xys[i].X < xys[j].X })
	return xys, nil
}

// PlotProfile saves a line plot of Profile(model, y) as an image at path.
// The image format follows the path extension (png, svg, pdf...).
func PlotProfile(model []Triangle3, y float64, path string) error {
	xys, err := Profile(model, y)
	if err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Relief profile at y=%.3g", y)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "z"
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1)
	p.Add(line)
	if err := p.Save(8*vg.Inch, 3*vg.Inch, path); err != nil {
		return fmt.Errorf("save profile plot: %w", err)
	}
	return nil
}
