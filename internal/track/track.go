// Package track reads photon track files: CSVs of (x, y, z) positions, one
// row per transport step, with a single header row.
package track

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/photonplot/internal/viz"
	"gonum.org/v1/gonum/floats"
)

// DefaultPattern matches the per-photon files written by the simulator.
const DefaultPattern = "photon*.csv"

var (
	ErrNoTracks = errors.New("track: no track files matched")
	ErrColumns  = errors.New("track: row needs x, y and z columns")
)

// ParseError wraps an error with the file position it occurred at.
type ParseError struct {
	File    string
	Line    int
	Wrapped error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Wrapped)
}

func (e *ParseError) Unwrap() error { return e.Wrapped }

// Track is the path of one simulated photon.
type Track struct {
	Name   string     `json:"name"`
	Points []viz.Vec3 `json:"points"`
}

// Parse reads a track CSV. The first row is a header; columns past z are ignored.
func Parse(r io.Reader, name string) (*Track, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	t := &Track{Name: name}
	header := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{File: name, Line: csvLine(err), Wrapped: err}
		}
		if header {
			header = false
			continue
		}

		line, _ := cr.FieldPos(0)
		if len(rec) < 3 {
			return nil, &ParseError{File: name, Line: line, Wrapped: ErrColumns}
		}

		var p [3]float64
		for i := range p {
			p[i], err = strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
			if err != nil {
				return nil, &ParseError{File: name, Line: line, Wrapped: err}
			}
		}
		t.Points = append(t.Points, viz.Vec3{X: p[0], Y: p[1], Z: p[2]})
	}
	return t, nil
}

func csvLine(err error) int {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.Line
	}
	return 0
}

// Load reads a single track file.
func Load(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, path)
}

// LoadDir loads every file in dir matching pattern, in lexical order.
func LoadDir(dir, pattern string) ([]*Track, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrNoTracks, pattern, dir)
	}
	sort.Strings(matches)

	tracks := make([]*Track, 0, len(matches))
	for _, m := range matches {
		t, err := Load(m)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

// Bounds returns the axis-aligned box containing every point of every track.
// ok is false when there are no points.
func Bounds(tracks []*Track) (min, max viz.Vec3, ok bool) {
	var xs, ys, zs []float64
	for _, t := range tracks {
		for _, p := range t.Points {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
			zs = append(zs, p.Z)
		}
	}
	if len(xs) == 0 {
		return viz.Vec3{}, viz.Vec3{}, false
	}
	min = viz.Vec3{X: floats.Min(xs), Y: floats.Min(ys), Z: floats.Min(zs)}
	max = viz.Vec3{X: floats.Max(xs), Y: floats.Max(ys), Z: floats.Max(zs)}
	return min, max, true
}

// Normalize maps every track into the cube [-0.5, 0.5]^3, scaling each axis
// on its own so the plot box has equal sides. A flat axis maps to 0.
func Normalize(tracks []*Track) [][]viz.Vec3 {
	out := make([][]viz.Vec3, len(tracks))
	min, max, ok := Bounds(tracks)
	if !ok {
		return out
	}

	span := max.Sub(min)
	norm := func(v, lo, s float64) float64 {
		if s == 0 {
			return 0
		}
		return (v-lo)/s - 0.5
	}
	for i, t := range tracks {
		pts := make([]viz.Vec3, len(t.Points))
		for j, p := range t.Points {
			pts[j] = viz.Vec3{
				X: norm(p.X, min.X, span.X),
				Y: norm(p.Y, min.Y, span.Y),
				Z: norm(p.Z, min.Z, span.Z),
			}
		}
		out[i] = pts
	}
	return out
}
