package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCanvasWidth  = 80
	DefaultCanvasHeight = 30
	DefaultPlotHeight   = 15
	DefaultSVGWidth     = 1200
	DefaultSVGHeight    = 500
	DefaultTrackSVGSize = 800
	DefaultPattern      = "photon*.csv"
	DefaultView         = "iso"
	DefaultTheme        = "minimal"
	DefaultLogLevel     = "warn"
)

type Config struct {
	Theme    string       `yaml:"theme"`
	View     string       `yaml:"view"`
	Pattern  string       `yaml:"pattern"`
	LogLevel string       `yaml:"log_level"`
	Canvas   CanvasConfig `yaml:"canvas"`
	SVG      SVGConfig    `yaml:"svg"`
	Plot     PlotConfig   `yaml:"plot"`
}

// CanvasConfig sizes terminal renderings, in character cells.
type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SVGConfig sizes exported images, in pixels.
type SVGConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	TrackSize int  `yaml:"track_size"`
	ShareAxes bool `yaml:"share_axes"`
}

type PlotConfig struct {
	Height int `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:    DefaultTheme,
		View:     DefaultView,
		Pattern:  DefaultPattern,
		LogLevel: DefaultLogLevel,
		Canvas: CanvasConfig{
			Width:  DefaultCanvasWidth,
			Height: DefaultCanvasHeight,
		},
		SVG: SVGConfig{
			Width:     DefaultSVGWidth,
			Height:    DefaultSVGHeight,
			TrackSize: DefaultTrackSVGSize,
			ShareAxes: true,
		},
		Plot: PlotConfig{
			Height: DefaultPlotHeight,
		},
	}
}

// Load overlays the yaml file at path onto the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Overlay(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay applies the yaml file at path on top of cfg. Keys missing from the
// file keep their current values.
func Overlay(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects sizes that cannot be rendered.
func (c *Config) Validate() error {
	switch {
	case c.Canvas.Width < 10 || c.Canvas.Height < 5:
		return fmt.Errorf("canvas must be at least 10x5 cells, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	case c.SVG.Width <= 0 || c.SVG.Height <= 0 || c.SVG.TrackSize <= 0:
		return fmt.Errorf("svg sizes must be positive")
	case c.Plot.Height <= 0:
		return fmt.Errorf("plot height must be positive")
	}
	return nil
}
