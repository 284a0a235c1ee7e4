package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/san-kum/photonplot/internal/viz"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"
)

const trackColor = "#1f77b4"

type SVGOptions struct {
	Width, Height int
}

func svgHeader(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))
}

// TracksToSVG projects normalized tracks through cam, with the unit box
// behind them when box is set. A single track is drawn opaque; many tracks
// are drawn at 0.2 opacity so dense regions stand out.
func TracksToSVG(tracks [][]viz.Vec3, cam *viz.Camera, box bool, opts SVGOptions) string {
	if len(tracks) == 0 {
		return ""
	}
	width, height := opts.Width, opts.Height
	// 1.1 of the half-size, as in viz.Camera.Project
	half := float64(min(width, height)) / 2 * 1.1

	project := func(p viz.Vec3) (float64, float64, bool) {
		x, y, _, ok := cam.ProjectUnit(p)
		return float64(width)/2 + x*half, float64(height)/2 - y*half, ok
	}

	var sb strings.Builder
	svgHeader(&sb, width, height)

	if box {
		sb.WriteString(`<g stroke="#b0b0b0" stroke-width="0.8" fill="none">` + "\n")
		for _, e := range viz.BoxWireframe().Edges {
			x1, y1, ok1 := project(e.Start)
			x2, y2, ok2 := project(e.End)
			if ok1 && ok2 {
				sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x1, y1, x2, y2))
			}
		}
		sb.WriteString("</g>\n")
	}

	opacity := 1.0
	if len(tracks) > 1 {
		opacity = 0.2
	}
	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="1.2" stroke-opacity="%.1f" fill="none">`+"\n", trackColor, opacity))
	for _, t := range tracks {
		if len(t) == 0 {
			continue
		}
		sb.WriteString(`<path d="`)
		move := true
		for _, p := range t {
			x, y, ok := project(p)
			if !ok {
				move = true
				continue
			}
			if move {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
				move = false
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString(`"/>` + "\n")
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// renderRow draws plots side by side on an SVG canvas of opts' size.
// below, if not nil, is drawn in a strip of the given height under the row.
func renderRow(plots []*plot.Plot, below *plot.Plot, belowH vg.Length, opts SVGOptions) (string, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return "", fmt.Errorf("export: svg size must be positive, got %dx%d", opts.Width, opts.Height)
	}
	w, h := vg.Points(float64(opts.Width)), vg.Points(float64(opts.Height))
	c := vgsvg.New(w, h)
	dc := draw.New(c)

	row := dc
	if below != nil {
		row = draw.Crop(dc, 0, 0, belowH, 0)
		below.Draw(draw.Crop(dc, vg.Points(20), vg.Points(-20), vg.Points(4), belowH-h))
	}

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(plots),
		PadX:      vg.Points(20),
		PadTop:    vg.Points(10),
		PadBottom: vg.Points(10),
		PadLeft:   vg.Points(10),
		PadRight:  vg.Points(10),
	}
	canvases := plot.Align([][]*plot.Plot{plots}, tiles, row)
	for i, p := range plots {
		p.Draw(canvases[0][i])
	}

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("export: write svg: %w", err)
	}
	return buf.String(), nil
}
