package main

import (
	"fmt"
	"os"

	"github.com/san-kum/photonplot/internal/config"
	"github.com/san-kum/photonplot/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configFile string
	preset     string
	theme      string
	verbose    bool

	// xs
	element  int
	energy   float64
	svgPath  string
	jsonPath string

	// track, tracks
	view        string
	pattern     string
	interactive bool
	noBox       bool

	// mesh
	sliceIndex int

	cfg    *config.Config
	logger *zap.Logger
)

// main registers the photonplot commands and exits with status 1 if the
// selected command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "photonplot",
		Short: "plot photon transport data: cross sections, tracks and mesh tallies",
		Long: `photonplot reads the files a photon transport run consumes and produces
and renders them in the terminal or as SVG:

  xs        ACE photoatomic cross sections and form factors of one element
  elements  the entries of an xsdir file
  track     a single photon track CSV
  tracks    every photon track CSV in a directory
  mesh      orthogonal slices through a uniform mesh tally`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "", "terminal colour theme")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	xsCmd := &cobra.Command{
		Use:   "xs [xsdir]",
		Short: "plot cross sections and form factors of an element",
		Args:  cobra.ExactArgs(1),
		RunE:  runXS,
	}
	xsCmd.Flags().IntVarP(&element, "element", "e", 0, "atomic number to plot (1-100)")
	xsCmd.Flags().Float64Var(&energy, "energy", 0, "also print interpolated cross sections at this energy (MeV)")
	xsCmd.Flags().StringVar(&svgPath, "svg", "", "write the plot as SVG")
	xsCmd.Flags().StringVar(&jsonPath, "json", "", "write the decoded table as JSON")
	_ = xsCmd.MarkFlagRequired("element")

	elementsCmd := &cobra.Command{
		Use:   "elements [xsdir]",
		Short: "list xsdir entries",
		Args:  cobra.ExactArgs(1),
		RunE:  listElements,
	}

	trackCmd := &cobra.Command{
		Use:   "track [file]",
		Short: "plot a single photon track",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrack,
	}

	tracksCmd := &cobra.Command{
		Use:   "tracks [dir]",
		Short: "plot every photon track in a directory",
		Args:  cobra.ExactArgs(1),
		RunE:  runTracks,
	}
	tracksCmd.Flags().StringVar(&pattern, "pattern", "", "track file glob (default from config, photon*.csv)")

	for _, c := range []*cobra.Command{trackCmd, tracksCmd} {
		c.Flags().StringVar(&view, "view", "", fmt.Sprintf("camera view %v", viz.ViewNames()))
		c.Flags().BoolVarP(&interactive, "interactive", "i", false, "orbit the tracks interactively")
		c.Flags().BoolVar(&noBox, "no-box", false, "hide the bounding box")
		c.Flags().StringVar(&svgPath, "svg", "", "write the projection as SVG")
	}

	meshCmd := &cobra.Command{
		Use:   "mesh [file] [size] [data_index]",
		Short: "plot x, y and z slices of a mesh tally",
		Args:  cobra.ExactArgs(3),
		RunE:  runMesh,
	}
	meshCmd.Flags().IntVar(&sliceIndex, "slice", -1, "plane index for all three slices (default centre)")
	meshCmd.Flags().StringVar(&svgPath, "svg", "", "write the slices as SVG")
	meshCmd.Flags().StringVar(&jsonPath, "json", "", "write the tally column as JSON")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available configuration presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(xsCmd, elementsCmd, trackCmd, tracksCmd, meshCmd, presetsCmd, newConfigCmd())
	return rootCmd
}

// setup resolves configuration (defaults, then preset, then config file, then
// flags) and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	cfg = config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		if err := config.Overlay(configFile, cfg); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if theme != "" {
		cfg.Theme = theme
	}
	if !viz.SetTheme(cfg.Theme) {
		return fmt.Errorf("unknown theme: %s", cfg.Theme)
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Debug("configuration resolved",
		zap.String("preset", preset),
		zap.String("config", configFile),
		zap.String("theme", cfg.Theme),
		zap.String("view", cfg.View))
	return nil
}

func resolveView() (viz.View, error) {
	name := cfg.View
	if view != "" {
		name = view
	}
	v, ok := viz.GetView(name)
	if !ok {
		return viz.View{}, fmt.Errorf("unknown view: %s (available: %v)", name, viz.ViewNames())
	}
	return v, nil
}
