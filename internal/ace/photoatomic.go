package ace

import (
	"fmt"
	"math"
	"sort"
)

// IncoherentFF is the incoherent scattering function, tabulated against
// momentum transfer.
type IncoherentFF struct {
	Momentum []float64 `json:"momentum"`
	Value    []float64 `json:"value"`
}

// CoherentFF holds the integrated (cumulative) and differential coherent
// form factors on a shared momentum grid.
type CoherentFF struct {
	Momentum     []float64 `json:"momentum"`
	Cumulative   []float64 `json:"cumulative"`
	Differential []float64 `json:"differential"`
}

// Photoatomic is the decoded content of a photoatomic (.p) ACE table.
type Photoatomic struct {
	AtomicNumber   int          `json:"z"`
	Energies       []float64    `json:"energies"`
	Incoherent     []float64    `json:"incoherent"`
	Coherent       []float64    `json:"coherent"`
	Photoelectric  []float64    `json:"photoelectric"`
	PairProduction []float64    `json:"pair_production"`
	IncoherentFF   IncoherentFF `json:"incoherent_ff"`
	CoherentFF     CoherentFF   `json:"coherent_ff"`
}

// DecodePhotoatomic slices the ESZG block and form factor blocks out of t.
//
// ESZG values are stored as natural logs with 0.0 standing for zero.
// Form factor blocks are located by JXS(2), JXS(3) and JXS(4).
func DecodePhotoatomic(t *Table) (*Photoatomic, error) {
	h := &t.Header
	if len(t.XSS) != h.Len() {
		return nil, fmt.Errorf("%w: header says %d, table has %d", ErrLengthMismatch, h.Len(), len(t.XSS))
	}

	ny := h.NXS[2]
	jxs2, jxs3, jxs4 := h.JXS[1], h.JXS[2], h.JXS[3]
	nInc := (jxs3 - jxs2) / 2
	nCoh := (jxs4 - jxs3) / 3

	if ny < 0 || nInc < 0 || nCoh < 0 {
		return nil, fmt.Errorf("%w: negative block length (N_y=%d, N_inc=%d, N_coh=%d)", ErrOutOfRange, ny, nInc, nCoh)
	}

	p := &Photoatomic{AtomicNumber: h.NXS[1]}

	eszg := make([][]float64, 5)
	for i := range eszg {
		block, err := slice(t.XSS, i*ny, ny)
		if err != nil {
			return nil, fmt.Errorf("ESZG block %d: %w", i, err)
		}
		eszg[i] = unlog(block)
	}
	p.Energies, p.Incoherent, p.Coherent, p.Photoelectric, p.PairProduction =
		eszg[0], eszg[1], eszg[2], eszg[3], eszg[4]

	inc := make([][]float64, 2)
	for i := range inc {
		block, err := slice(t.XSS, jxs2-1+i*nInc, nInc)
		if err != nil {
			return nil, fmt.Errorf("incoherent form factor: %w", err)
		}
		inc[i] = block
	}
	p.IncoherentFF = IncoherentFF{Momentum: inc[0], Value: inc[1]}

	coh := make([][]float64, 3)
	for i := range coh {
		block, err := slice(t.XSS, jxs3-1+i*nCoh, nCoh)
		if err != nil {
			return nil, fmt.Errorf("coherent form factor: %w", err)
		}
		coh[i] = block
	}
	p.CoherentFF = CoherentFF{Momentum: coh[0], Cumulative: coh[1], Differential: coh[2]}

	return p, nil
}

func slice(xss []float64, start, n int) ([]float64, error) {
	if start < 0 || start+n > len(xss) {
		return nil, fmt.Errorf("%w: [%d:%d] of %d values", ErrOutOfRange, start, start+n, len(xss))
	}
	out := make([]float64, n)
	copy(out, xss[start:start+n])
	return out, nil
}

func unlog(vals []float64) []float64 {
	for i, v := range vals {
		if v != 0 {
			vals[i] = math.Exp(v)
		}
	}
	return vals
}

// Lookup is the set of cross sections at one energy, in barns/atom.
type Lookup struct {
	Energy         float64 `json:"energy"`
	Incoherent     float64 `json:"incoherent"`
	Coherent       float64 `json:"coherent"`
	Photoelectric  float64 `json:"photoelectric"`
	PairProduction float64 `json:"pair_production"`
	Total          float64 `json:"total"`
}

// CrossSections interpolates linearly between the two grid energies that
// bracket energy. Energies off the grid clamp to its first or last point.
// A NaN energy gives NaN cross sections.
func (p *Photoatomic) CrossSections(energy float64) Lookup {
	l := Lookup{Energy: energy}
	n := len(p.Energies)
	if n == 0 {
		return l
	}
	if math.IsNaN(energy) {
		nan := math.NaN()
		l.Incoherent, l.Coherent, l.Photoelectric, l.PairProduction, l.Total = nan, nan, nan, nan, nan
		return l
	}

	idx, t := 0, 0.0
	switch {
	case energy <= p.Energies[0]:
	case energy >= p.Energies[n-1]:
		idx = n - 1
	default:
		// first grid point strictly above energy, minus one
		idx = sort.Search(n, func(i int) bool { return p.Energies[i] > energy }) - 1
		t = (energy - p.Energies[idx]) / (p.Energies[idx+1] - p.Energies[idx])
	}

	at := func(xs []float64) float64 {
		if t == 0 {
			return xs[idx]
		}
		return (1-t)*xs[idx] + t*xs[idx+1]
	}

	l.Incoherent = at(p.Incoherent)
	l.Coherent = at(p.Coherent)
	l.Photoelectric = at(p.Photoelectric)
	l.PairProduction = at(p.PairProduction)
	l.Total = l.Incoherent + l.Coherent + l.Photoelectric + l.PairProduction
	return l
}
