package ace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MaxElement is the highest atomic number covered by the photoatomic library.
const MaxElement = 100

// Entry is one xsdir line:
//
//	ZAID AWR filename route type address length [record entries temperature]
type Entry struct {
	ZAID              string  `json:"zaid"`
	AtomicWeightRatio float64 `json:"awr"`
	FileName          string  `json:"file"`
	AccessRoute       string  `json:"route"`
	FileType          int     `json:"type"`
	StartLine         int     `json:"address"`
	TableLength       int     `json:"length"`
	RecordLength      int     `json:"record_length,omitempty"`
	EntriesPerRecord  int     `json:"entries_per_record,omitempty"`
	Temperature       float64 `json:"temperature,omitempty"`
}

// Z returns the atomic number encoded in the ZAID, or 0 if it has none.
func (e Entry) Z() int {
	za, _, _ := strings.Cut(e.ZAID, ".")
	n, err := strconv.Atoi(za)
	if err != nil {
		return 0
	}
	return n / 1000
}

// Directory is a parsed xsdir file. Entries keep file order; a malformed
// line keeps its slot as a zero Entry and its error in Malformed, keyed by
// the atomic number the slot stands for.
type Directory struct {
	BaseDir   string
	Entries   []Entry
	Malformed map[int]*ParseError
}

// LoadDirectory reads an xsdir file. Data file names resolve against its directory.
func LoadDirectory(path string) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dir, err := ParseDirectory(f, filepath.Dir(path))
	if err != nil {
		return nil, withFile(err, path)
	}
	for _, pe := range dir.Malformed {
		pe.File = path
	}
	return dir, nil
}

// ParseDirectory reads xsdir lines from r. Blank lines are skipped. A
// malformed line only fails lookups of its own element.
func ParseDirectory(r io.Reader, baseDir string) (*Directory, error) {
	dir := &Directory{BaseDir: baseDir, Malformed: make(map[int]*ParseError)}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		e, err := parseEntry(line)
		if err != nil {
			dir.Malformed[len(dir.Entries)+1] = &ParseError{Line: lineNo, Wrapped: err}
		}
		dir.Entries = append(dir.Entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return dir, nil
}

func parseEntry(line string) (Entry, error) {
	f := strings.Fields(line)
	if len(f) < 7 {
		return Entry{}, fmt.Errorf("xsdir entry needs at least 7 fields, got %d", len(f))
	}

	var e Entry
	var err error
	e.ZAID = f[0]
	e.FileName = f[2]
	e.AccessRoute = f[3]
	if e.AtomicWeightRatio, err = strconv.ParseFloat(f[1], 64); err != nil {
		return Entry{}, fmt.Errorf("atomic weight ratio: %w", err)
	}
	if e.FileType, err = strconv.Atoi(f[4]); err != nil {
		return Entry{}, fmt.Errorf("file type: %w", err)
	}
	if e.StartLine, err = strconv.Atoi(f[5]); err != nil {
		return Entry{}, fmt.Errorf("address: %w", err)
	}
	if e.TableLength, err = strconv.Atoi(f[6]); err != nil {
		return Entry{}, fmt.Errorf("table length: %w", err)
	}
	if e.StartLine < 1 {
		return Entry{}, fmt.Errorf("address must be positive, got %d", e.StartLine)
	}

	// trailing fields are optional in type 1 entries
	if len(f) > 7 {
		if e.RecordLength, err = strconv.Atoi(f[7]); err != nil {
			return Entry{}, fmt.Errorf("record length: %w", err)
		}
	}
	if len(f) > 8 {
		if e.EntriesPerRecord, err = strconv.Atoi(f[8]); err != nil {
			return Entry{}, fmt.Errorf("entries per record: %w", err)
		}
	}
	if len(f) > 9 {
		if e.Temperature, err = strconv.ParseFloat(f[9], 64); err != nil {
			return Entry{}, fmt.Errorf("temperature: %w", err)
		}
	}
	return e, nil
}

// Element returns the entry for atomic number z, which is the z-th line of
// the photoatomic xsdir.
func (d *Directory) Element(z int) (Entry, error) {
	if z < 1 || z > MaxElement {
		return Entry{}, ErrInvalidElement
	}
	if z > len(d.Entries) {
		return Entry{}, fmt.Errorf("%w: z=%d, xsdir has %d entries", ErrElementMissing, z, len(d.Entries))
	}
	if pe, ok := d.Malformed[z]; ok {
		return Entry{}, pe
	}
	return d.Entries[z-1], nil
}

// DataPath resolves the ACE data file of an entry.
func (d *Directory) DataPath(e Entry) string {
	if filepath.IsAbs(e.FileName) {
		return e.FileName
	}
	return filepath.Join(d.BaseDir, e.FileName)
}
