package export

import (
	"fmt"
	"image/color"

	"github.com/san-kum/photonplot/internal/mesh"
	"github.com/san-kum/photonplot/internal/viz"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const paletteSize = 256

func rgba(c viz.RGB) color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff} }

// colorMap adapts a viz.Colormap to a palette.ColorMap over [min, max].
type colorMap struct {
	cmap     viz.Colormap
	min, max float64
	alpha    float64
}

func newColorMap(cmap viz.Colormap, lo, hi float64) *colorMap {
	return &colorMap{cmap: cmap, min: lo, max: hi, alpha: 1}
}

func (m *colorMap) At(v float64) (color.Color, error) {
	switch {
	case v < m.min:
		return nil, palette.ErrUnderflow
	case v > m.max:
		return nil, palette.ErrOverflow
	}
	c := rgba(m.cmap(viz.Normalize(v, m.min, m.max)))
	c.A = uint8(m.alpha * 0xff)
	return c, nil
}

func (m *colorMap) Max() float64       { return m.max }
func (m *colorMap) SetMax(v float64)   { m.max = v }
func (m *colorMap) Min() float64       { return m.min }
func (m *colorMap) SetMin(v float64)   { m.min = v }
func (m *colorMap) Alpha() float64     { return m.alpha }
func (m *colorMap) SetAlpha(a float64) { m.alpha = a }

type colors []color.Color

func (c colors) Colors() []color.Color { return c }

// Palette samples the map at n evenly spaced points.
func (m *colorMap) Palette(n int) palette.Palette {
	out := make(colors, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = rgba(m.cmap(t))
	}
	return out
}

// planeGrid exposes plane[u][v] as a plotter.GridXYZ with u across and v up.
type planeGrid [][]float64

func (g planeGrid) Dims() (c, r int) {
	if len(g) == 0 {
		return 0, 0
	}
	return len(g), len(g[0])
}
func (g planeGrid) Z(c, r int) float64 { return g[c][r] }
func (g planeGrid) X(c int) float64    { return float64(c) }
func (g planeGrid) Y(r int) float64    { return float64(r) }

// HeatmapToSVG draws each plane as a grid of coloured cells, side by side,
// with a shared colour bar underneath.
func HeatmapToSVG(planes []mesh.Plane, lo, hi float64, cmap viz.Colormap, opts SVGOptions) (string, error) {
	if len(planes) == 0 {
		return "", nil
	}
	if hi <= lo {
		hi = lo + 1
	}
	cm := newColorMap(cmap, lo, hi)
	pal := cm.Palette(paletteSize)

	plots := make([]*plot.Plot, 0, len(planes))
	for _, p := range planes {
		g := planeGrid(p.Data)
		nu, nv := g.Dims()
		if nu == 0 || nv == 0 {
			continue
		}
		hm := plotter.NewHeatMap(g, pal)
		hm.Min, hm.Max = lo, hi

		plt := plot.New()
		plt.Title.Text = fmt.Sprintf("%s = %d", p.Axis, p.Index)
		plt.X.Padding, plt.Y.Padding = 0, 0
		plt.Add(hm)
		plt.X.Min, plt.X.Max = -0.5, float64(nu)-0.5
		plt.Y.Min, plt.Y.Max = -0.5, float64(nv)-0.5
		plots = append(plots, plt)
	}
	if len(plots) == 0 {
		return "", nil
	}

	bar := plot.New()
	bar.HideY()
	bar.X.Padding = 0
	bar.Add(&plotter.ColorBar{ColorMap: cm})

	return renderRow(plots, bar, vg.Points(50), opts)
}
