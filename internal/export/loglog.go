package export

import (
	"fmt"
	"image/color"
	"math"

	"github.com/san-kum/photonplot/internal/viz"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// matplotlib's default colour cycle
var seriesColors = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
}

// Panel is one log-log plot area.
type Panel struct {
	Title  string
	XLabel string
	YLabel string
	Series []viz.Series
}

type decades struct {
	lo, hi float64
}

func (d decades) span() float64 { return d.hi - d.lo }

// bounds returns the decade range as axis limits.
func (d decades) bounds() (float64, float64) { return math.Pow(10, d.lo), math.Pow(10, d.hi) }

// decadeRange is the smallest whole-decade interval containing every
// positive value, or false if there are none.
func decadeRange(vals []float64) (decades, bool) {
	var logs []float64
	for _, v := range vals {
		if v > 0 && !math.IsInf(v, 0) {
			logs = append(logs, math.Log10(v))
		}
	}
	if len(logs) == 0 {
		return decades{}, false
	}
	d := decades{lo: math.Floor(floats.Min(logs)), hi: math.Ceil(floats.Max(logs))}
	if d.hi == d.lo {
		d.hi++
	}
	return d, true
}

func panelValues(panels []Panel) (xs, ys []float64) {
	for _, p := range panels {
		for _, s := range p.Series {
			xs = append(xs, s.X...)
			ys = append(ys, s.Y...)
		}
	}
	return xs, ys
}

// positive keeps the points of s that a log axis can show.
func positive(s viz.Series) plotter.XYs {
	n := min(len(s.X), len(s.Y))
	xys := make(plotter.XYs, 0, n)
	for i := 0; i < n; i++ {
		x, y := s.X[i], s.Y[i]
		if x > 0 && y > 0 && !math.IsInf(x, 0) && !math.IsInf(y, 0) {
			xys = append(xys, plotter.XY{X: x, Y: y})
		}
	}
	return xys
}

// panelRanges returns the decade ranges for every panel: the union of all
// panels when shared is set, otherwise each panel's own.
func panelRanges(panels []Panel, shared bool) (xs, ys []decades) {
	unit := decades{lo: 0, hi: 1}
	var sx, sy decades
	var okX, okY bool
	if shared {
		vx, vy := panelValues(panels)
		sx, okX = decadeRange(vx)
		sy, okY = decadeRange(vy)
	}
	for _, p := range panels {
		if !shared {
			vx, vy := panelValues([]Panel{p})
			sx, okX = decadeRange(vx)
			sy, okY = decadeRange(vy)
		}
		dx, dy := sx, sy
		if !okX {
			dx = unit
		}
		if !okY {
			dy = unit
		}
		xs = append(xs, dx)
		ys = append(ys, dy)
	}
	return xs, ys
}

func logLogPlot(p Panel, dx, dy decades) (*plot.Plot, error) {
	plt := plot.New()
	plt.Title.Text = p.Title
	plt.X.Label.Text = p.XLabel
	plt.Y.Label.Text = p.YLabel
	plt.X.Scale, plt.Y.Scale = plot.LogScale{}, plot.LogScale{}
	plt.X.Tick.Marker = plot.LogTicks{Prec: -1}
	plt.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	plt.Legend.Top = true

	grid := plotter.NewGrid()
	dashes := []vg.Length{vg.Points(3), vg.Points(2)}
	grid.Vertical.Dashes, grid.Horizontal.Dashes = dashes, dashes
	plt.Add(grid)

	for i, s := range p.Series {
		xys := positive(s)
		if len(xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Name, err)
		}
		line.Color = seriesColors[i%len(seriesColors)]
		line.Width = vg.Points(1.5)
		plt.Add(line)
		plt.Legend.Add(s.Name, line)
	}

	plt.X.Min, plt.X.Max = dx.bounds()
	plt.Y.Min, plt.Y.Max = dy.bounds()
	return plt, nil
}

// LogLogSVG lays panels out side by side on log10 axes with dashed decade
// grid lines. With shared set, every panel uses the same axis ranges.
func LogLogSVG(panels []Panel, shared bool, opts SVGOptions) (string, error) {
	if len(panels) == 0 {
		return "", nil
	}
	xs, ys := panelRanges(panels, shared)
	plots := make([]*plot.Plot, len(panels))
	for i, p := range panels {
		plt, err := logLogPlot(p, xs[i], ys[i])
		if err != nil {
			return "", fmt.Errorf("export: panel %q: %w", p.Title, err)
		}
		plots[i] = plt
	}
	return renderRow(plots, nil, 0, opts)
}
