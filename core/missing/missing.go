// core/missing/missing.go
package missing

import (
	"alnkit-core/align"
	"alnkit-core/concat"
)

// TotalRow names the synthetic aggregate row appended to reports.
const TotalRow = "Total"

// LocusStat holds one locus's length and per-taxon missing proportion.
// Taxa absent from the locus have no entry.
type LocusStat struct {
	Name   string
	Length int
	Prop   map[string]float64
}

// Summary is the sparse locus-by-taxon missing-data table.
type Summary struct {
	Loci []LocusStat
	taxa []string // first-seen order across loci
	seen map[string]bool
}

// Proportion computes one taxon row's missing-data fraction: residues
// outside the matrix's canonical alphabet divided by the row length.
// Gap and missing symbols are outside the alphabet by construction.
func Proportion(m *align.Matrix, taxon string) (float64, bool) {
	s, ok := m.Seq(taxon)
	if !ok || len(s) == 0 {
		return 0, ok
	}
	var canon [256]bool
	for i := 0; i < len(m.Alphabet); i++ {
		canon[m.Alphabet[i]] = true
	}
	n := 0
	for _, c := range s {
		if !canon[c] {
			n++
		}
	}
	return float64(n) / float64(len(s)), true
}

// Collect aggregates loci in input order. Callers feed it after the
// batch join barrier; it is not safe for concurrent use.
func Collect(loci []concat.Locus) *Summary {
	sum := &Summary{seen: make(map[string]bool)}
	for _, l := range loci {
		sum.Add(l.Name, l.Matrix)
	}
	return sum
}

// Add appends one locus to the summary.
func (s *Summary) Add(name string, m *align.Matrix) {
	st := LocusStat{Name: name, Length: m.NumChars(), Prop: make(map[string]float64, m.NumTaxa())}
	for _, taxon := range m.Names() {
		if !s.seen[taxon] {
			s.seen[taxon] = true
			s.taxa = append(s.taxa, taxon)
		}
		p, _ := Proportion(m, taxon)
		st.Prop[taxon] = p
	}
	s.Loci = append(s.Loci, st)
}

// Taxa returns every taxon observed, in first-seen order.
func (s *Summary) Taxa() []string {
	out := make([]string, len(s.taxa))
	copy(out, s.taxa)
	return out
}

// Total is the length-weighted average missing proportion for a taxon
// across all loci. A locus lacking the taxon contributes proportion
// 1.0 over its full length.
func (s *Summary) Total(taxon string) float64 {
	var num, den float64
	for _, l := range s.Loci {
		den += float64(l.Length)
		if p, ok := l.Prop[taxon]; ok {
			num += float64(l.Length) * p
		} else {
			num += float64(l.Length)
		}
	}
	if den == 0 {
		return 0
	}
	return num / den
}
