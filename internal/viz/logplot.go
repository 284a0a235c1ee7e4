package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"
)

// Series is one named curve of a plot.
type Series struct {
	Name string
	X, Y []float64
}

// series colours follow matplotlib's default cycle
var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Blue,
	asciigraph.Orange,
	asciigraph.Green,
	asciigraph.Red,
	asciigraph.Purple,
}

type PlotOptions struct {
	Width, Height int
	Title         string
	XLabel        string
	YLabel        string
}

// LogLogPlot draws series on log10 axes. Each series is resampled onto a
// shared, evenly spaced log10(x) grid so curves with different abscissae line
// up. Non-positive values are dropped; grid points outside a series' range
// are left blank.
func LogLogPlot(series []Series, opts PlotOptions) string {
	if opts.Width <= 1 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 15
	}

	logs := make([]Series, 0, len(series))
	var allX []float64
	for _, s := range series {
		ls := logSeries(s)
		if len(ls.X) == 0 {
			continue
		}
		logs = append(logs, ls)
		allX = append(allX, ls.X...)
	}
	if len(logs) == 0 {
		return ""
	}

	lo, hi := floats.Min(allX), floats.Max(allX)
	grid := make([]float64, opts.Width)
	floats.Span(grid, lo, hi)

	data := make([][]float64, len(logs))
	colors := make([]asciigraph.AnsiColor, len(logs))
	for i, s := range logs {
		data[i] = resample(s, grid)
		colors[i] = seriesColors[i%len(seriesColors)]
	}

	caption := fmt.Sprintf("log10 %s vs log10 %s, %.3g..%.3g", opts.YLabel, opts.XLabel, math.Pow(10, lo), math.Pow(10, hi))
	graph := asciigraph.PlotMany(data,
		asciigraph.Height(opts.Height),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(caption),
	)

	var b strings.Builder
	if opts.Title != "" {
		b.WriteString(CurrentTheme.Title().Render(opts.Title))
		b.WriteString("\n")
	}
	b.WriteString(graph)
	b.WriteString("\n")
	b.WriteString(legend(logs, colors))
	return b.String()
}

func legend(series []Series, colors []asciigraph.AnsiColor) string {
	parts := make([]string, len(series))
	for i, s := range series {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprint(int(colors[i])))).Render("──")
		parts[i] = swatch + " " + s.Name
	}
	return strings.Join(parts, "   ")
}

// logSeries keeps the strictly positive points of s, in log10.
func logSeries(s Series) Series {
	out := Series{Name: s.Name}
	n := min(len(s.X), len(s.Y))
	for i := 0; i < n; i++ {
		if s.X[i] > 0 && s.Y[i] > 0 {
			out.X = append(out.X, math.Log10(s.X[i]))
			out.Y = append(out.Y, math.Log10(s.Y[i]))
		}
	}
	return out
}

// resample interpolates s linearly at each grid point, NaN outside its range.
// s.X must be ascending.
func resample(s Series, grid []float64) []float64 {
	out := make([]float64, len(grid))
	j := 0
	last := len(s.X) - 1
	for i, g := range grid {
		if g < s.X[0] || g > s.X[last] {
			out[i] = math.NaN()
			continue
		}
		for j < last && s.X[j+1] < g {
			j++
		}
		if j == last || s.X[j+1] == s.X[j] {
			out[i] = s.Y[j]
			continue
		}
		t := (g - s.X[j]) / (s.X[j+1] - s.X[j])
		out[i] = s.Y[j] + t*(s.Y[j+1]-s.Y[j])
	}
	return out
}
