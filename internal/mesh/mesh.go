// Package mesh reads uniform mesh tally files.
//
// A tally file is a CSV with the header x,y,z,data0,...,dataK and one row per
// voxel of a cubic grid, written z-slowest and x-fastest.
package mesh

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrShape  = errors.New("mesh: value count is not size^3")
	ErrColumn = errors.New("mesh: data column out of range")
	ErrSize   = errors.New("mesh: size out of range")
)

// MaxSize is the largest grid edge accepted; a cube this size already holds
// about 10^9 voxels.
const MaxSize = 1024

// coordinate columns preceding the data columns
const coordColumns = 3

// Axis selects the normal of a slice plane.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// ParseAxis accepts "x", "y" or "z".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("mesh: unknown axis %q", s)
}

// Tally is one data column of a cubic mesh tally.
type Tally struct {
	Columns []string  `json:"columns"`
	Column  string    `json:"column"`
	Size    int       `json:"size"`
	Values  []float64 `json:"values"`
}

// Load reads data column dataIndex (file column dataIndex+3) of a size^3 tally.
func Load(path string, size, dataIndex int) (*Tally, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Parse(f, size, dataIndex)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse is Load on an already opened reader.
func Parse(r io.Reader, size, dataIndex int) (*Tally, error) {
	if size <= 0 || size > MaxSize {
		return nil, fmt.Errorf("%w: %d, want 1..%d", ErrSize, size, MaxSize)
	}
	cells := size * size * size

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("mesh: read header: %w", err)
	}
	col := dataIndex + coordColumns
	if dataIndex < 0 || col >= len(header) {
		return nil, fmt.Errorf("%w: index %d, file has %d data columns", ErrColumn, dataIndex, max(len(header)-coordColumns, 0))
	}

	t := &Tally{
		Columns: append([]string(nil), header...),
		Column:  strings.TrimSpace(header[col]),
		Size:    size,
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if col >= len(rec) {
			return nil, fmt.Errorf("line %d: %w", line, ErrColumn)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[col]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(t.Values) == cells {
			return nil, fmt.Errorf("%w: more than %d values for size %d", ErrShape, cells, size)
		}
		t.Values = append(t.Values, v)
	}

	if len(t.Values) != cells {
		return nil, fmt.Errorf("%w: %d values for size %d", ErrShape, len(t.Values), size)
	}
	return t, nil
}

// At returns the value of voxel (x, y, z).
func (t *Tally) At(x, y, z int) float64 {
	return t.Values[(z*t.Size+y)*t.Size+x]
}

// Slice returns the plane normal to axis at index as plane[u][v], where u and
// v are the remaining axes in x, y, z order. The index is clamped to the grid.
func (t *Tally) Slice(axis Axis, index int) [][]float64 {
	n := t.Size
	index = min(max(index, 0), n-1)

	plane := make([][]float64, n)
	for u := range plane {
		plane[u] = make([]float64, n)
		for v := range plane[u] {
			switch axis {
			case AxisX:
				plane[u][v] = t.At(index, u, v)
			case AxisY:
				plane[u][v] = t.At(u, index, v)
			default:
				plane[u][v] = t.At(u, v, index)
			}
		}
	}
	return plane
}

// Plane is a named slice, ready for rendering.
type Plane struct {
	Axis  Axis
	Index int
	Data  [][]float64
}

// Slices cuts one plane per axis at index, or at the grid centre when index
// is negative.
func (t *Tally) Slices(index int) []Plane {
	if index < 0 {
		index = t.Size / 2
	}
	planes := make([]Plane, 0, 3)
	for _, a := range []Axis{AxisX, AxisY, AxisZ} {
		idx := min(index, t.Size-1)
		planes = append(planes, Plane{Axis: a, Index: idx, Data: t.Slice(a, idx)})
	}
	return planes
}

// Range returns the smallest and largest value in the tally.
func (t *Tally) Range() (lo, hi float64) {
	if len(t.Values) == 0 {
		return 0, 0
	}
	return floats.Min(t.Values), floats.Max(t.Values)
}
