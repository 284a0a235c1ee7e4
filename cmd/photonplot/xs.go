package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/san-kum/photonplot/internal/ace"
	"github.com/san-kum/photonplot/internal/export"
	"github.com/san-kum/photonplot/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runXS(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	th := viz.CurrentTheme
	xsdir := args[0]

	if element < 1 || element > ace.MaxElement {
		return fmt.Errorf("%w: got %d", ace.ErrInvalidElement, element)
	}
	if math.IsNaN(energy) || math.IsInf(energy, 0) {
		return fmt.Errorf("invalid energy: %v", energy)
	}

	fmt.Fprintln(out, th.Hint().Render("reading xsdir file "+xsdir))
	el, err := ace.NewLoader(logger).Load(xsdir, element)
	if err != nil {
		if errors.Is(err, ace.ErrElementMissing) {
			logger.Error("element not in xsdir", zap.Int("z", element), zap.String("xsdir", xsdir))
		}
		return err
	}

	fmt.Fprintln(out, th.Field("atomic number", element))
	fmt.Fprintln(out, th.Field("zaid", el.Entry.ZAID))
	fmt.Fprintln(out, th.Field("atomic weight ratio", el.Entry.AtomicWeightRatio))
	fmt.Fprintln(out, th.Field("data file", el.DataFile))
	fmt.Fprintln(out, th.Field("data start", el.Entry.StartLine))
	fmt.Fprintln(out, th.Field("data count", el.Entry.TableLength))
	fmt.Fprintln(out)

	panels := elementPanels(el.Data)
	for _, p := range panels {
		fmt.Fprintln(out, th.Title().Render(p.Title))
		fmt.Fprintln(out, viz.LogLogPlot(p.Series, viz.PlotOptions{
			Width:  cfg.Canvas.Width,
			Height: cfg.Plot.Height,
			XLabel: p.XLabel,
			YLabel: p.YLabel,
		}))
		fmt.Fprintln(out)
	}

	if cmd.Flags().Changed("energy") {
		l := el.Data.CrossSections(energy)
		fmt.Fprintln(out, th.Title().Render(fmt.Sprintf("cross sections at %g MeV (barns/atom)", l.Energy)))
		fmt.Fprintln(out, th.Field("incoherent", l.Incoherent))
		fmt.Fprintln(out, th.Field("coherent", l.Coherent))
		fmt.Fprintln(out, th.Field("photoelectric", l.Photoelectric))
		fmt.Fprintln(out, th.Field("pair production", l.PairProduction))
		fmt.Fprintln(out, th.Field("total", l.Total))
	}

	if svgPath != "" {
		svg, err := export.LogLogSVG(panels, cfg.SVG.ShareAxes, export.SVGOptions{Width: cfg.SVG.Width, Height: cfg.SVG.Height})
		if err != nil {
			return err
		}
		if err := export.WriteFile(svgPath, svg); err != nil {
			return err
		}
		logger.Info("wrote svg", zap.String("path", svgPath))
	}
	if jsonPath != "" {
		if err := export.WriteJSONFile(jsonPath, el); err != nil {
			return err
		}
		logger.Info("wrote json", zap.String("path", jsonPath))
	}
	return nil
}

// elementPanels groups the decoded table into the cross section panel and
// the form factor panel.
func elementPanels(p *ace.Photoatomic) []export.Panel {
	return []export.Panel{
		{
			Title:  "cross sections",
			XLabel: "energy (MeV)",
			YLabel: "cross section (barns/atom)",
			Series: []viz.Series{
				{Name: "incoherent", X: p.Energies, Y: p.Incoherent},
				{Name: "coherent", X: p.Energies, Y: p.Coherent},
				{Name: "photoelectric", X: p.Energies, Y: p.Photoelectric},
				{Name: "pair production", X: p.Energies, Y: p.PairProduction},
			},
		},
		{
			Title:  "form factors",
			XLabel: "momentum transfer",
			YLabel: "form factor",
			Series: []viz.Series{
				{Name: "incoherent", X: p.IncoherentFF.Momentum, Y: p.IncoherentFF.Value},
				{Name: "coherent (integrated)", X: p.CoherentFF.Momentum, Y: p.CoherentFF.Cumulative},
				{Name: "coherent (differential)", X: p.CoherentFF.Momentum, Y: p.CoherentFF.Differential},
			},
		},
	}
}

func listElements(cmd *cobra.Command, args []string) error {
	dir, err := ace.NewLoader(logger).Directory(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Z\tZAID\tAWR\tFILE\tADDRESS\tLENGTH")
	for i, e := range dir.Entries {
		if i >= ace.MaxElement {
			logger.Warn("xsdir has more entries than elements", zap.Int("entries", len(dir.Entries)))
			break
		}
		if pe, ok := dir.Malformed[i+1]; ok {
			fmt.Fprintf(w, "%d\tmalformed (line %d)\t\t\t\t\n", i+1, pe.Line)
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%.4f\t%s\t%d\t%d\n", i+1, e.ZAID, e.AtomicWeightRatio, e.FileName, e.StartLine, e.TableLength)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(dir.Entries) == 0 {
		fmt.Fprintln(os.Stderr, "xsdir has no entries")
	}
	return nil
}
