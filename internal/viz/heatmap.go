package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const upperHalfBlock = "▀"

// Heatmap renders plane[u][v] with u across and v up. Each terminal cell
// carries two v rows: the upper half block takes the foreground colour, the
// lower half the background.
func Heatmap(plane [][]float64, lo, hi float64, cmap Colormap) string {
	if len(plane) == 0 || len(plane[0]) == 0 {
		return ""
	}
	nu, nv := len(plane), len(plane[0])

	color := func(u, v int) lipgloss.Color {
		return lipgloss.Color(cmap(Normalize(plane[u][v], lo, hi)).Hex())
	}

	var b strings.Builder
	for top := nv - 1; top >= 0; top -= 2 {
		for u := 0; u < nu; u++ {
			style := lipgloss.NewStyle().Foreground(color(u, top))
			if top-1 >= 0 {
				style = style.Background(color(u, top-1))
			}
			b.WriteString(style.Render(upperHalfBlock))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ColorBar renders a horizontal colour scale labelled with its range.
func ColorBar(width int, lo, hi float64, cmap Colormap) string {
	if width < 2 {
		width = 2
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%.3g ", lo))
	for i := 0; i < width; i++ {
		t := float64(i) / float64(width-1)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(cmap(t).Hex())).Render("█"))
	}
	b.WriteString(fmt.Sprintf(" %.3g", hi))
	return b.String()
}

// Downsample averages plane into at most maxU x maxV cells.
func Downsample(plane [][]float64, maxU, maxV int) [][]float64 {
	if len(plane) == 0 || maxU <= 0 || maxV <= 0 {
		return plane
	}
	nu, nv := len(plane), len(plane[0])
	su := (nu + maxU - 1) / maxU
	sv := (nv + maxV - 1) / maxV
	if su <= 1 && sv <= 1 {
		return plane
	}

	out := make([][]float64, (nu+su-1)/su)
	for i := range out {
		out[i] = make([]float64, (nv+sv-1)/sv)
		for j := range out[i] {
			sum, n := 0.0, 0
			for u := i * su; u < min((i+1)*su, nu); u++ {
				for v := j * sv; v < min((j+1)*sv, nv); v++ {
					sum += plane[u][v]
					n++
				}
			}
			out[i][j] = sum / float64(n)
		}
	}
	return out
}
