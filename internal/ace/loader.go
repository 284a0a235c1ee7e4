package ace

import (
	"fmt"

	"go.uber.org/zap"
)

// Loader resolves an element through an xsdir file and decodes its table.
type Loader struct {
	log *zap.Logger
}

func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log}
}

// Element is a decoded element together with where it came from.
type Element struct {
	Entry    Entry        `json:"entry"`
	DataFile string       `json:"data_file"`
	Header   Header       `json:"header"`
	Data     *Photoatomic `json:"data"`
}

// Directory loads and logs an xsdir file.
func (l *Loader) Directory(xsdirPath string) (*Directory, error) {
	l.log.Debug("reading xsdir", zap.String("path", xsdirPath))
	dir, err := LoadDirectory(xsdirPath)
	if err != nil {
		return nil, fmt.Errorf("read xsdir: %w", err)
	}
	l.log.Debug("xsdir loaded", zap.Int("entries", len(dir.Entries)))
	for z, pe := range dir.Malformed {
		l.log.Warn("skipping malformed xsdir entry", zap.Int("z", z), zap.Int("line", pe.Line), zap.Error(pe.Wrapped))
	}
	return dir, nil
}

// Load reads element z from the library described by xsdirPath.
func (l *Loader) Load(xsdirPath string, z int) (*Element, error) {
	if z < 1 || z > MaxElement {
		return nil, ErrInvalidElement
	}

	dir, err := l.Directory(xsdirPath)
	if err != nil {
		return nil, err
	}

	entry, err := dir.Element(z)
	if err != nil {
		return nil, err
	}
	dataFile := dir.DataPath(entry)

	l.log.Debug("reading ACE table",
		zap.Int("z", z),
		zap.String("zaid", entry.ZAID),
		zap.String("file", dataFile),
		zap.Int("start", entry.StartLine),
		zap.Int("length", entry.TableLength))

	table, err := LoadTable(dataFile, entry.StartLine)
	if err != nil {
		return nil, fmt.Errorf("read ACE table for z=%d: %w", z, err)
	}
	if entry.TableLength != 0 && entry.TableLength != table.Header.Len() {
		l.log.Warn("xsdir table length differs from NXS(1)",
			zap.Int("xsdir", entry.TableLength),
			zap.Int("nxs", table.Header.Len()))
	}

	data, err := DecodePhotoatomic(table)
	if err != nil {
		return nil, fmt.Errorf("decode ACE table for z=%d: %w", z, err)
	}
	if data.AtomicNumber != 0 && data.AtomicNumber != z {
		l.log.Warn("table atomic number differs from requested element",
			zap.Int("requested", z),
			zap.Int("table", data.AtomicNumber))
	}

	l.log.Debug("decoded photoatomic table",
		zap.Int("energies", len(data.Energies)),
		zap.Int("incoherent_ff", len(data.IncoherentFF.Momentum)),
		zap.Int("coherent_ff", len(data.CoherentFF.Momentum)))

	return &Element{Entry: entry, DataFile: dataFile, Header: table.Header, Data: data}, nil
}
