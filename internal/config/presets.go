package config

import "sort"

// Presets are complete configurations selectable by name.
var Presets = map[string]*Config{
	"compact": {
		Theme: "minimal", View: DefaultView, Pattern: DefaultPattern, LogLevel: DefaultLogLevel,
		Canvas: CanvasConfig{Width: 60, Height: 20},
		SVG:    SVGConfig{Width: 800, Height: 340, TrackSize: 500, ShareAxes: true},
		Plot:   PlotConfig{Height: 10},
	},
	"wide": {
		Theme: "cyberpunk", View: DefaultView, Pattern: DefaultPattern, LogLevel: DefaultLogLevel,
		Canvas: CanvasConfig{Width: 140, Height: 45},
		SVG:    SVGConfig{Width: 1800, Height: 700, TrackSize: 1200, ShareAxes: true},
		Plot:   PlotConfig{Height: 25},
	},
	"print": {
		Theme: "minimal", View: "front", Pattern: DefaultPattern, LogLevel: "error",
		Canvas: CanvasConfig{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight},
		SVG:    SVGConfig{Width: 2400, Height: 1000, TrackSize: 1600, ShareAxes: false},
		Plot:   PlotConfig{Height: DefaultPlotHeight},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
