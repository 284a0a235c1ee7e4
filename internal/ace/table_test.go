package ace

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"

	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = g.Describe("ReadTable", func() {
	var fx fixture

	g.BeforeEach(func() {
		fx = newFixture()
	})

	g.It("reads header and data block at line 1", func() {
		t, err := ReadTable(strings.NewReader(fx.table(1)), 1)
		Expect(err).NotTo(HaveOccurred())

		Expect(t.Header.ID).To(Equal("1000.14p"))
		Expect(t.Header.AtomicWeightRatio).To(BeNumerically("~", 0.999242, 1e-9))
		Expect(t.Header.Date).To(Equal("12/18/12"))
		Expect(t.Header.Comment).To(Equal("test photoatomic table"))
		Expect(t.Header.MatID).To(Equal("mat100"))
		Expect(t.Header.Len()).To(Equal(25))
		Expect(t.Header.NXS[2]).To(Equal(3))
		Expect(t.Header.JXS[1:4]).To(Equal([]int{16, 20, 26}))
		Expect(t.XSS).To(HaveLen(25))
	})

	g.It("skips to a later start line", func() {
		text := fx.table(1) + fx.table(2)
		second := strings.Count(fx.table(1), "\n") + 1

		t, err := ReadTable(strings.NewReader(text), second)
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Header.ID).To(Equal("2000.14p"))
		Expect(t.Header.NXS[1]).To(Equal(2))
	})

	g.It("rejects a non-positive start line", func() {
		_, err := ReadTable(strings.NewReader(fx.table(1)), 0)
		Expect(err).To(HaveOccurred())
	})

	g.It("reports truncation with the missing line", func() {
		text := fx.table(1)
		lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
		short := strings.Join(lines[:len(lines)-2], "\n") + "\n"

		_, err := ReadTable(strings.NewReader(short), 1)
		Expect(errors.Is(err, ErrTruncated)).To(BeTrue())

		var pe *ParseError
		Expect(errors.As(err, &pe)).To(BeTrue())
		Expect(pe.Line).To(Equal(len(lines) - 1))
	})

	g.It("fails when the data count disagrees with NXS(1)", func() {
		xss := fx.xss()
		var nxs [16]int
		var jxs [32]int
		nxs[0] = len(xss) + 1
		nxs[2] = 3
		text := renderTable("1000.14p", nxs, jxs, xss)

		_, err := ReadTable(strings.NewReader(text), 1)
		Expect(err).To(MatchError(ErrLengthMismatch))
	})

	g.It("rejects a header with a short NXS array", func() {
		text := fx.table(1)
		lines := strings.Split(text, "\n")
		lines[7] = "        1        2"
		_, err := ReadTable(strings.NewReader(strings.Join(lines, "\n")), 1)
		Expect(err).To(MatchError(ErrHeader))
	})

	g.It("rejects a malformed temperature", func() {
		text := strings.Replace(fx.table(1), "0.000000E+00", "0.000000X+00", 1)
		_, err := ReadTable(strings.NewReader(text), 1)
		Expect(err).To(MatchError(ErrHeader))
	})

	g.It("reports the line of a non-numeric data value", func() {
		lines := strings.Split(fx.table(1), "\n")
		lines[13] = "  garbage"
		_, err := ReadTable(strings.NewReader(strings.Join(lines, "\n")), 1)

		var pe *ParseError
		Expect(errors.As(err, &pe)).To(BeTrue())
		Expect(pe.Line).To(Equal(14))
	})

	g.It("adds the file name when loading from disk", func() {
		path := filepath.Join(g.GinkgoT().TempDir(), "eprdata14")
		Expect(os.WriteFile(path, []byte(fx.table(1)[:200]), 0644)).To(Succeed())

		_, err := LoadTable(path, 1)
		var pe *ParseError
		Expect(errors.As(err, &pe)).To(BeTrue())
		Expect(pe.File).To(Equal(path))
		Expect(err.Error()).To(HavePrefix(path + ":"))
	})
})

var _ = g.Describe("DecodePhotoatomic", func() {
	var fx fixture

	g.BeforeEach(func() {
		fx = newFixture()
	})

	g.It("unlogs the ESZG block and keeps zeros", func() {
		t, err := ReadTable(strings.NewReader(fx.table(1)), 1)
		Expect(err).NotTo(HaveOccurred())

		p, err := DecodePhotoatomic(t)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.AtomicNumber).To(Equal(1))

		for i := range fx.energies {
			Expect(p.Energies[i]).To(BeNumerically("~", fx.energies[i], 1e-9*fx.energies[i]))
		}
		Expect(p.Incoherent[0]).To(Equal(0.0))
		Expect(p.Incoherent[1]).To(BeNumerically("~", 0.5, 1e-9))
		Expect(p.Photoelectric[2]).To(Equal(0.0))
		Expect(p.PairProduction[2]).To(BeNumerically("~", 0.04, 1e-9))
	})

	g.It("slices the form factors by JXS", func() {
		t, err := ReadTable(strings.NewReader(fx.table(1)), 1)
		Expect(err).NotTo(HaveOccurred())

		p, err := DecodePhotoatomic(t)
		Expect(err).NotTo(HaveOccurred())

		Expect(p.IncoherentFF.Momentum).To(Equal(fx.incMom))
		Expect(p.IncoherentFF.Value).To(Equal(fx.incVal))
		Expect(p.CoherentFF.Momentum).To(Equal(fx.cohMom))
		Expect(p.CoherentFF.Cumulative).To(Equal(fx.cohCum))
		Expect(p.CoherentFF.Differential).To(Equal(fx.cohDiff))
	})

	g.It("rejects locators past the data block", func() {
		t, err := ReadTable(strings.NewReader(fx.table(1)), 1)
		Expect(err).NotTo(HaveOccurred())

		t.Header.JXS[3] = 40
		_, err = DecodePhotoatomic(t)
		Expect(err).To(MatchError(ErrOutOfRange))
	})
})

var _ = g.Describe("CrossSections", func() {
	p := &Photoatomic{
		Energies:       []float64{1, 2, 4},
		Incoherent:     []float64{10, 20, 40},
		Coherent:       []float64{1, 1, 1},
		Photoelectric:  []float64{100, 50, 0},
		PairProduction: []float64{0, 0, 2},
	}

	g.It("clamps below the grid", func() {
		l := p.CrossSections(0.5)
		Expect(l.Incoherent).To(Equal(10.0))
		Expect(l.Total).To(Equal(111.0))
	})

	g.It("clamps above the grid", func() {
		l := p.CrossSections(8)
		Expect(l.PairProduction).To(Equal(2.0))
		Expect(l.Photoelectric).To(Equal(0.0))
	})

	g.It("interpolates linearly inside an interval", func() {
		l := p.CrossSections(3)
		Expect(l.Incoherent).To(BeNumerically("~", 30, 1e-12))
		Expect(l.Photoelectric).To(BeNumerically("~", 25, 1e-12))
		Expect(l.PairProduction).To(BeNumerically("~", 1, 1e-12))
		Expect(l.Total).To(BeNumerically("~", 57, 1e-12))
	})

	g.It("returns grid values exactly on a grid point", func() {
		l := p.CrossSections(2)
		Expect(l.Incoherent).To(Equal(20.0))
	})

	g.It("returns NaN for a NaN energy", func() {
		l := p.CrossSections(math.NaN())
		Expect(math.IsNaN(l.Total)).To(BeTrue())
		Expect(math.IsNaN(l.Incoherent)).To(BeTrue())
	})

	g.It("handles an empty table", func() {
		l := (&Photoatomic{}).CrossSections(1)
		Expect(l.Total).To(Equal(0.0))
	})
})
