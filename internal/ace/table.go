package ace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	headerLines   = 12
	valuesPerLine = 4
	nxsLen        = 16
	jxsLen        = 32
)

// Header is the fixed 12-line block that precedes every ACE table.
type Header struct {
	ID                string      `json:"id"`
	AtomicWeightRatio float64     `json:"awr"`
	Temperature       float64     `json:"temperature"`
	Date              string      `json:"date"`
	Comment           string      `json:"comment"`
	MatID             string      `json:"mat"`
	NXS               [nxsLen]int `json:"nxs"`
	JXS               [jxsLen]int `json:"jxs"`
}

// Len is the number of values in the data block, NXS(1).
func (h *Header) Len() int { return h.NXS[0] }

// Table is a header plus its flat XSS data array.
type Table struct {
	Header Header
	XSS    []float64
}

// LoadTable reads the table that starts at the 1-based startLine of path.
func LoadTable(path string, startLine int) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadTable(f, startLine)
	if err != nil {
		return nil, withFile(err, path)
	}
	return t, nil
}

// ReadTable skips to the 1-based startLine, reads the header and then
// ceil(NXS(1)/4) data lines.
func ReadTable(r io.Reader, startLine int) (*Table, error) {
	if startLine < 1 {
		return nil, fmt.Errorf("ace: start line must be positive, got %d", startLine)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		lineNo++
		return sc.Text(), true
	}

	for lineNo < startLine-1 {
		if _, ok := next(); !ok {
			return nil, scanErr(sc, lineNo)
		}
	}

	lines := make([]string, 0, headerLines)
	for len(lines) < headerLines {
		l, ok := next()
		if !ok {
			return nil, scanErr(sc, lineNo)
		}
		lines = append(lines, l)
	}

	hdr, err := parseHeader(lines)
	if err != nil {
		return nil, &ParseError{Line: startLine, Wrapped: err}
	}

	count := hdr.Len()
	if count < 0 {
		return nil, &ParseError{Line: startLine + 6, Wrapped: fmt.Errorf("%w: negative NXS(1)", ErrHeader)}
	}
	dataLines := (count + valuesPerLine - 1) / valuesPerLine

	xss := make([]float64, 0, count)
	for i := 0; i < dataLines; i++ {
		l, ok := next()
		if !ok {
			return nil, scanErr(sc, lineNo)
		}
		for _, field := range strings.Fields(l) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Wrapped: err}
			}
			xss = append(xss, v)
		}
	}

	if len(xss) != count {
		return nil, fmt.Errorf("%w: header says %d, read %d", ErrLengthMismatch, count, len(xss))
	}

	return &Table{Header: *hdr, XSS: xss}, nil
}

func scanErr(sc *bufio.Scanner, lineNo int) error {
	if err := sc.Err(); err != nil {
		return &ParseError{Line: lineNo + 1, Wrapped: err}
	}
	return &ParseError{Line: lineNo + 1, Wrapped: ErrTruncated}
}

func parseHeader(lines []string) (*Header, error) {
	h := &Header{}

	id := strings.Fields(lines[0])
	if len(id) < 3 {
		return nil, fmt.Errorf("%w: identification line needs ZAID, AWR and temperature", ErrHeader)
	}
	h.ID = id[0]
	var err error
	if h.AtomicWeightRatio, err = strconv.ParseFloat(id[1], 64); err != nil {
		return nil, fmt.Errorf("%w: atomic weight ratio: %v", ErrHeader, err)
	}
	if h.Temperature, err = strconv.ParseFloat(id[2], 64); err != nil {
		return nil, fmt.Errorf("%w: temperature: %v", ErrHeader, err)
	}
	if len(id) > 3 {
		h.Date = id[3]
	}

	// comment occupies columns 1-70, material id 71-80
	desc := lines[1]
	if len(desc) > 70 {
		h.Comment = strings.TrimSpace(desc[:70])
		h.MatID = strings.TrimSpace(desc[70:])
	} else {
		h.Comment = strings.TrimSpace(desc)
	}

	nxs, err := parseInts(lines[6:8])
	if err != nil {
		return nil, fmt.Errorf("%w: NXS: %v", ErrHeader, err)
	}
	if len(nxs) != nxsLen {
		return nil, fmt.Errorf("%w: NXS has %d values, want %d", ErrHeader, len(nxs), nxsLen)
	}
	copy(h.NXS[:], nxs)

	jxs, err := parseInts(lines[8:12])
	if err != nil {
		return nil, fmt.Errorf("%w: JXS: %v", ErrHeader, err)
	}
	if len(jxs) != jxsLen {
		return nil, fmt.Errorf("%w: JXS has %d values, want %d", ErrHeader, len(jxs), jxsLen)
	}
	copy(h.JXS[:], jxs)

	return h, nil
}

func parseInts(lines []string) ([]int, error) {
	var out []int
	for _, l := range lines {
		for _, f := range strings.Fields(l) {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
	}
	return out, nil
}
