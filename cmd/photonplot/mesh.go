package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/photonplot/internal/export"
	"github.com/san-kum/photonplot/internal/mesh"
	"github.com/san-kum/photonplot/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runMesh(cmd *cobra.Command, args []string) error {
	size, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid size %q: %w", args[1], err)
	}
	dataIndex, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid data index %q: %w", args[2], err)
	}

	tally, err := mesh.Load(args[0], size, dataIndex)
	if err != nil {
		return err
	}
	lo, hi := tally.Range()
	logger.Debug("loaded mesh tally",
		zap.String("file", args[0]),
		zap.String("column", tally.Column),
		zap.Int("size", tally.Size),
		zap.Float64("min", lo),
		zap.Float64("max", hi))

	planes := tally.Slices(sliceIndex)
	out := cmd.OutOrStdout()
	th := viz.CurrentTheme

	// three panels side by side; each cell row holds two samples
	maxU := max(1, cfg.Canvas.Width/len(planes)-2)
	maxV := max(1, cfg.Canvas.Height*2)

	rendered := make([]string, 0, len(planes))
	for _, p := range planes {
		body := viz.Heatmap(viz.Downsample(p.Data, maxU, maxV), lo, hi, viz.Viridis)
		label := th.Label().Render(fmt.Sprintf("%s = %d", p.Axis, p.Index))
		rendered = append(rendered, lipgloss.NewStyle().PaddingRight(2).Render(label+"\n"+body))
	}

	fmt.Fprintln(out, th.Title().Render(fmt.Sprintf("%s [%s]", args[0], tally.Column)))
	fmt.Fprintln(out, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	fmt.Fprintln(out, viz.ColorBar(cfg.Canvas.Width, lo, hi, viz.Viridis))

	if svgPath != "" {
		svg, err := export.HeatmapToSVG(planes, lo, hi, viz.Viridis, export.SVGOptions{Width: cfg.SVG.Width, Height: cfg.SVG.Height})
		if err != nil {
			return err
		}
		if err := export.WriteFile(svgPath, svg); err != nil {
			return err
		}
		logger.Info("wrote svg", zap.String("path", svgPath))
	}
	if jsonPath != "" {
		if err := export.WriteJSONFile(jsonPath, tally); err != nil {
			return err
		}
		logger.Info("wrote json", zap.String("path", jsonPath))
	}
	return nil
}
