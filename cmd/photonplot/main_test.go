package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/san-kum/photonplot/internal/ace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestMeshCommand(t *testing.T) {
	dir := t.TempDir()
	var sb strings.Builder
	sb.WriteString("x,y,z,flux,error\n")
	for z := 0; z < 2; z++ {
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				fmt.Fprintf(&sb, "%d,%d,%d,%d,0.1\n", x, y, z, (z*2+y)*2+x)
			}
		}
	}
	csvPath := writeFile(t, filepath.Join(dir, "tally.csv"), sb.String())
	svgOut := filepath.Join(dir, "tally.svg")

	out, err := run(t, "mesh", csvPath, "2", "0", "--svg", svgOut)
	require.NoError(t, err)
	assert.Contains(t, out, "flux")
	assert.Contains(t, out, "x = 1")
	assert.Contains(t, out, "z = 1")

	svg, err := os.ReadFile(svgOut)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}

func TestMeshCommand_BadArgs(t *testing.T) {
	_, err := run(t, "mesh", "tally.csv", "two", "0")
	assert.ErrorContains(t, err, "invalid size")

	_, err = run(t, "mesh", "tally.csv", "2")
	assert.Error(t, err)
}

func TestTracksCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "photon1.csv"), "x,y,z\n0,0,0\n1,1,1\n")
	writeFile(t, filepath.Join(dir, "photon2.csv"), "x,y,z\n1,0,0\n0,1,2\n")
	writeFile(t, filepath.Join(dir, "notes.csv"), "not a track\n")
	svgOut := filepath.Join(dir, "tracks.svg")

	out, err := run(t, "tracks", dir, "--view", "top", "--svg", svgOut)
	require.NoError(t, err)
	assert.Contains(t, out, "2 tracks")
	assert.Contains(t, out, "top")
	assert.FileExists(t, svgOut)
}

func TestTrackCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "photon7.csv"), "x,y,z,energy\n0,0,0,1\n1,2,3,0.5\n-1,0,4,0.2\n")
	svgOut := filepath.Join(dir, "photon7.svg")

	out, err := run(t, "track", path, "--view", "front", "--no-box", "--svg", svgOut)
	require.NoError(t, err)
	assert.Contains(t, out, "photon7.csv")
	assert.Regexp(t, `tracks:\s+1\b`, out)
	assert.Regexp(t, `points:\s+3\b`, out)
	assert.Contains(t, out, "front")
	assert.Contains(t, out, "[-1, 1]")
	assert.Contains(t, out, "[0, 4]")

	svg, err := os.ReadFile(svgOut)
	require.NoError(t, err)
	assert.Contains(t, string(svg), `stroke-opacity="1.0"`)
	assert.NotContains(t, string(svg), "<line", "--no-box drops the box from the svg")
}

func TestTrackCommand_UnknownView(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "photon.csv"), "x,y,z\n0,0,0\n1,1,1\n")

	_, err := run(t, "track", path, "--view", "oblique")
	assert.ErrorContains(t, err, "unknown view")
}

func TestTracksCommand_Empty(t *testing.T) {
	_, err := run(t, "tracks", t.TempDir())
	assert.Error(t, err)
}

// aceTable renders a photoatomic table with three energies and two points
// per form factor: JXS(2)=16, JXS(3)=20, JXS(4)=26.
func aceTable(z int) string {
	logged := func(vals ...float64) []float64 {
		for i, v := range vals {
			if v != 0 {
				vals[i] = math.Log(v)
			}
		}
		return vals
	}
	var xss []float64
	xss = append(xss, logged(1e-3, 1e-1, 10)...)
	xss = append(xss, logged(0, 0.5, 0.25)...)
	xss = append(xss, logged(2, 1, 0.5)...)
	xss = append(xss, logged(1000, 10, 0)...)
	xss = append(xss, logged(0, 0, 0.04)...)
	xss = append(xss, 0, 1, 0, 0.9)
	xss = append(xss, 0, 2, 0, 3, 1, 0.1)

	var nxs [16]int
	var jxs [32]int
	nxs[0], nxs[1], nxs[2] = len(xss), z, 3
	jxs[0], jxs[1], jxs[2], jxs[3] = 1, 16, 20, 26

	var b strings.Builder
	fmt.Fprintf(&b, "%10s%12.6f %11.6E %10s\n", fmt.Sprintf("%d000.14p", z), 3.96822, 0.0, "12/18/12")
	fmt.Fprintf(&b, "%-70s%10s\n", "photoatomic test table", "mat200")
	for i := 0; i < 4; i++ {
		b.WriteString(strings.Repeat("      0   0.000000", 4) + "\n")
	}
	for _, ints := range [][]int{nxs[:], jxs[:]} {
		for i, v := range ints {
			fmt.Fprintf(&b, "%9d", v)
			if i%8 == 7 {
				b.WriteString("\n")
			}
		}
	}
	for i, v := range xss {
		fmt.Fprintf(&b, "%20.11E", v)
		if i%4 == 3 || i == len(xss)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// xsLibrary writes a two-element xsdir and its data file into a temp dir.
func xsLibrary(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	first, second := aceTable(1), aceTable(2)
	writeFile(t, filepath.Join(dir, "eprdata14"), first+second)
	start2 := strings.Count(first, "\n") + 1
	return writeFile(t, filepath.Join(dir, "xsdir"), fmt.Sprintf(
		"1000.14p 0.999242 eprdata14 0 1 1 25\n2000.14p 3.968220 eprdata14 0 1 %d 25\n", start2))
}

func TestXSCommand(t *testing.T) {
	xsdir := xsLibrary(t)
	dir := filepath.Dir(xsdir)
	svgOut := filepath.Join(dir, "he.svg")
	jsonOut := filepath.Join(dir, "he.json")

	out, err := run(t, "xs", xsdir, "-e", "2", "--energy", "0.1", "--svg", svgOut, "--json", jsonOut)
	require.NoError(t, err)

	assert.Contains(t, out, "reading xsdir file "+xsdir)
	assert.Regexp(t, `atomic number:\s+2\b`, out)
	assert.Regexp(t, `zaid:\s+2000\.14p`, out)
	assert.Regexp(t, `atomic weight ratio:\s+3\.96822`, out)
	assert.Regexp(t, `data file:\s+`+regexp.QuoteMeta(filepath.Join(dir, "eprdata14")), out)
	assert.Regexp(t, `data start:\s+\d+`, out)
	assert.Regexp(t, `data count:\s+25\b`, out)

	assert.Contains(t, out, "cross sections\n")
	assert.Contains(t, out, "form factors\n")
	assert.Contains(t, out, "pair production")
	assert.Contains(t, out, "cross sections at 0.1 MeV")
	m := regexp.MustCompile(`total:\s+(\S+)`).FindStringSubmatch(out)
	require.Len(t, m, 2, "total cross section line")
	total, err := strconv.ParseFloat(m[1], 64)
	require.NoError(t, err)
	assert.InDelta(t, 11.5, total, 1e-9)

	svg, err := os.ReadFile(svgOut)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), "form factors")

	data, err := os.ReadFile(jsonOut)
	require.NoError(t, err)
	var el struct {
		Entry struct {
			ZAID string `json:"zaid"`
		} `json:"entry"`
		Data struct {
			Z        int       `json:"z"`
			Energies []float64 `json:"energies"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &el))
	assert.Equal(t, "2000.14p", el.Entry.ZAID)
	assert.Equal(t, 2, el.Data.Z)
	assert.Len(t, el.Data.Energies, 3)
}

func TestXSCommand_BadEnergy(t *testing.T) {
	xsdir := xsLibrary(t)
	for _, e := range []string{"NaN", "+Inf"} {
		_, err := run(t, "xs", xsdir, "-e", "1", "--energy", e)
		assert.ErrorContains(t, err, "invalid energy", "energy=%s", e)
	}
}

func TestXSCommand_InvalidElement(t *testing.T) {
	for _, z := range []string{"0", "101"} {
		_, err := run(t, "xs", "xsdir", "-e", z)
		assert.ErrorIs(t, err, ace.ErrInvalidElement, "z=%s", z)
	}
}

func TestElementsCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "xsdir"),
		"1000.14p 0.999242 mcplib 0 1 1 100 0 0 0\n"+
			"2000.14p 3.968220 mcplib 0 1 40 120 0 0 0\n")

	out, err := run(t, "elements", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1000.14p")
	assert.Contains(t, out, "2000.14p")
	assert.Contains(t, out, "ZAID")
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photonplot.yaml")

	_, err := run(t, "--preset", "wide", "--theme", "retro", "config", "init", path)
	require.NoError(t, err)

	out, err := run(t, "config", "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "theme retro")
	assert.Contains(t, out, "canvas 140x45")

	writeFile(t, path, "canvas:\n  width: 2\n")
	_, err = run(t, "config", "check", path)
	assert.Error(t, err)
}

func TestUnknownPreset(t *testing.T) {
	_, err := run(t, "--preset", "nope", "presets")
	assert.ErrorContains(t, err, "unknown preset")
}

func TestPresetsCommand(t *testing.T) {
	out, err := run(t, "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "compact")
}
