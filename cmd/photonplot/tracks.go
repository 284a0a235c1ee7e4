package main

import (
	"fmt"
	"path/filepath"

	"github.com/san-kum/photonplot/internal/export"
	"github.com/san-kum/photonplot/internal/track"
	"github.com/san-kum/photonplot/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runTrack(cmd *cobra.Command, args []string) error {
	t, err := track.Load(args[0])
	if err != nil {
		return err
	}
	logger.Debug("loaded track", zap.String("file", args[0]), zap.Int("points", len(t.Points)))
	return plotTracks(cmd, filepath.Base(args[0]), []*track.Track{t})
}

func runTracks(cmd *cobra.Command, args []string) error {
	pat := cfg.Pattern
	if pattern != "" {
		pat = pattern
	}
	tracks, err := track.LoadDir(args[0], pat)
	if err != nil {
		return err
	}
	logger.Debug("loaded tracks", zap.String("dir", args[0]), zap.String("pattern", pat), zap.Int("tracks", len(tracks)))
	return plotTracks(cmd, fmt.Sprintf("%s (%d tracks)", args[0], len(tracks)), tracks)
}

func plotTracks(cmd *cobra.Command, title string, tracks []*track.Track) error {
	v, err := resolveView()
	if err != nil {
		return err
	}
	norm := track.Normalize(tracks)

	if interactive {
		return viz.RunViewer(viz.NewViewer(title, norm, v, cfg.Canvas.Width, cfg.Canvas.Height).WithBox(!noBox))
	}

	out := cmd.OutOrStdout()
	th := viz.CurrentTheme

	cam := viz.NewCamera()
	cam.Apply(v)
	canvas := viz.NewCanvas(cfg.Canvas.Width, cfg.Canvas.Height)
	viz.RenderTracks(canvas, norm, cam, !noBox)

	fmt.Fprintln(out, th.Title().Render(title))
	fmt.Fprintln(out, canvas.String())

	points := 0
	for _, t := range tracks {
		points += len(t.Points)
	}
	fmt.Fprintln(out, th.Field("tracks", len(tracks)))
	fmt.Fprintln(out, th.Field("points", points))
	fmt.Fprintln(out, th.Field("view", v.Name))
	if lo, hi, ok := track.Bounds(tracks); ok {
		fmt.Fprintln(out, th.Field("x", fmt.Sprintf("[%g, %g]", lo.X, hi.X)))
		fmt.Fprintln(out, th.Field("y", fmt.Sprintf("[%g, %g]", lo.Y, hi.Y)))
		fmt.Fprintln(out, th.Field("z", fmt.Sprintf("[%g, %g]", lo.Z, hi.Z)))
	}

	if svgPath != "" {
		size := cfg.SVG.TrackSize
		svg := export.TracksToSVG(norm, cam, !noBox, export.SVGOptions{Width: size, Height: size})
		if err := export.WriteFile(svgPath, svg); err != nil {
			return err
		}
		logger.Info("wrote svg", zap.String("path", svgPath))
	}
	return nil
}
