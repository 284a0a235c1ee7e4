package ace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

var _ = g.Describe("ParseDirectory", func() {
	const xsdir = `1000.14p 0.999242 eprdata14 0 1 1 25 0 0 0.0
2000.14p 3.968220 eprdata14 0 1 20 25

3000.14p 6.881312 eprdata14 0 1 39 25 0 0 2.5301E-08
`

	g.It("parses required and optional fields", func() {
		dir, err := ParseDirectory(strings.NewReader(xsdir), "/data")
		Expect(err).NotTo(HaveOccurred())
		Expect(dir.Entries).To(HaveLen(3))

		e := dir.Entries[0]
		Expect(e.ZAID).To(Equal("1000.14p"))
		Expect(e.Z()).To(Equal(1))
		Expect(e.FileName).To(Equal("eprdata14"))
		Expect(e.StartLine).To(Equal(1))
		Expect(e.TableLength).To(Equal(25))

		Expect(dir.Entries[1].RecordLength).To(Equal(0))
		Expect(dir.Entries[2].Temperature).To(BeNumerically("~", 2.5301e-08, 1e-20))
	})

	g.It("finds elements by line and validates the atomic number", func() {
		dir, err := ParseDirectory(strings.NewReader(xsdir), "/data")
		Expect(err).NotTo(HaveOccurred())

		e, err := dir.Element(2)
		Expect(err).NotTo(HaveOccurred())
		Expect(e.AtomicWeightRatio).To(BeNumerically("~", 3.96822, 1e-9))
		Expect(dir.DataPath(e)).To(Equal(filepath.Join("/data", "eprdata14")))

		_, err = dir.Element(0)
		Expect(err).To(MatchError(ErrInvalidElement))
		_, err = dir.Element(101)
		Expect(err).To(MatchError(ErrInvalidElement))
		_, err = dir.Element(4)
		Expect(err).To(MatchError(ErrElementMissing))
	})

	g.It("reports the line of a malformed entry on lookup", func() {
		dir, err := ParseDirectory(strings.NewReader("1000.14p 0.99 eprdata14 0 1 x 25\n"), "")
		Expect(err).NotTo(HaveOccurred())

		_, err = dir.Element(1)
		var pe *ParseError
		Expect(errors.As(err, &pe)).To(BeTrue())
		Expect(pe.Line).To(Equal(1))
		Expect(pe.Error()).To(ContainSubstring("address"))
	})

	g.It("keeps other elements usable around a malformed line", func() {
		src := "1000.14p 0.99 eprdata14 0 1 1 25\n\n2000.14p 3.97 eprdata14\n3000.14p 6.88 eprdata14 0 1 39 25\n"
		dir, err := ParseDirectory(strings.NewReader(src), "")
		Expect(err).NotTo(HaveOccurred())
		Expect(dir.Entries).To(HaveLen(3))
		Expect(dir.Malformed).To(HaveKey(2))
		Expect(dir.Malformed[2].Line).To(Equal(3))

		_, err = dir.Element(2)
		Expect(err).To(HaveOccurred())
		e, err := dir.Element(3)
		Expect(err).NotTo(HaveOccurred())
		Expect(e.StartLine).To(Equal(39))
	})

	g.It("returns zero for a ZAID without a number", func() {
		Expect(Entry{ZAID: "h2o.20t"}.Z()).To(Equal(0))
	})
})

var _ = g.Describe("Loader", func() {
	var (
		dir    string
		loader *Loader
	)

	g.BeforeEach(func() {
		dir = g.GinkgoT().TempDir()
		loader = NewLoader(zap.NewNop())

		fx := newFixture()
		first := fx.table(1)
		second := fx.table(2)
		Expect(os.WriteFile(filepath.Join(dir, "eprdata14"), []byte(first+second), 0644)).To(Succeed())

		start2 := strings.Count(first, "\n") + 1
		xsdir := fmt.Sprintf("1000.14p 0.999242 eprdata14 0 1 1 25\n2000.14p 3.968220 eprdata14 0 1 %d 25\n", start2)
		Expect(os.WriteFile(filepath.Join(dir, "xsdir"), []byte(xsdir), 0644)).To(Succeed())
	})

	g.It("loads an element through the xsdir", func() {
		el, err := loader.Load(filepath.Join(dir, "xsdir"), 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(el.Entry.ZAID).To(Equal("2000.14p"))
		Expect(el.DataFile).To(Equal(filepath.Join(dir, "eprdata14")))
		Expect(el.Data.AtomicNumber).To(Equal(2))
		Expect(el.Data.Energies).To(HaveLen(3))
	})

	g.It("rejects invalid elements before touching the disk", func() {
		_, err := loader.Load(filepath.Join(dir, "missing"), 0)
		Expect(err).To(MatchError(ErrInvalidElement))
	})

	g.It("reports elements missing from the xsdir", func() {
		_, err := loader.Load(filepath.Join(dir, "xsdir"), 3)
		Expect(err).To(MatchError(ErrElementMissing))
	})

	g.It("names the xsdir file in a malformed entry error", func() {
		path := filepath.Join(dir, "xsdir")
		Expect(os.WriteFile(path, []byte("1000.14p 0.999242 eprdata14 0 1 1 25\nbroken\n"), 0644)).To(Succeed())

		_, err := loader.Load(path, 1)
		Expect(err).NotTo(HaveOccurred())

		_, err = loader.Load(path, 2)
		var pe *ParseError
		Expect(errors.As(err, &pe)).To(BeTrue())
		Expect(pe.File).To(Equal(path))
		Expect(pe.Line).To(Equal(2))
	})

	g.It("wraps a missing data file", func() {
		Expect(os.Remove(filepath.Join(dir, "eprdata14"))).To(Succeed())
		_, err := loader.Load(filepath.Join(dir, "xsdir"), 1)
		Expect(err).To(MatchError(os.ErrNotExist))
	})
})
