// core/trim/trim.go
package trim

import (
	"fmt"
	"strconv"

	"alnkit-core/align"
)

// TargetAll is the sentinel target applying a trim to every taxon.
const TargetAll = "ALL"

type refKind int

const (
	refTaxon refKind = iota
	refProportion
)

// Reference is the resolved trim source: either a taxon label whose
// flanking missing-data runs set the trim extents, or a fixed
// proportion applied to both ends. Resolved once at configuration
// time, never re-parsed per file.
type Reference struct {
	kind  refKind
	taxon string
	prop  float64
}

// TaxonReference trims by the named taxon's leading/trailing missing
// runs.
func TaxonReference(label string) Reference {
	return Reference{kind: refTaxon, taxon: label}
}

// ProportionReference trims floor(p * nchar) from each end.
func ProportionReference(p float64) Reference {
	return Reference{kind: refProportion, prop: p}
}

// ParseReference resolves a configured reference string. A value that
// parses as a number must lie strictly between 0 and 0.5; anything
// else is taken as a taxon label. Empty strings are rejected: the
// legacy silent zero-trim fallback is deliberately not preserved.
func ParseReference(s string) (Reference, error) {
	if s == "" {
		return Reference{}, fmt.Errorf("trim reference: empty value")
	}
	if p, err := strconv.ParseFloat(s, 64); err == nil {
		if p <= 0 || p >= 0.5 {
			return Reference{}, fmt.Errorf("trim reference: proportion %v outside (0, 0.5)", p)
		}
		return ProportionReference(p), nil
	}
	return TaxonReference(s), nil
}

// IsTaxon reports whether the reference is taxon-driven, and the label.
func (r Reference) IsTaxon() (string, bool) {
	if r.kind == refTaxon {
		return r.taxon, true
	}
	return "", false
}

// Extents computes the left/right trim sizes for m. For a taxon
// reference the sizes are the lengths of the leading and trailing
// missing-symbol runs in that taxon's row; the taxon must exist in m.
// For a proportion both sides are floor(p * nchar).
func (r Reference) Extents(m *align.Matrix) (left, right int, err error) {
	switch r.kind {
	case refTaxon:
		s, ok := m.Seq(r.taxon)
		if !ok {
			return 0, 0, fmt.Errorf("trim reference: taxon %q not in matrix", r.taxon)
		}
		for left < len(s) && s[left] == m.Missing {
			left++
		}
		if left == len(s) {
			// Reference row is all missing; nothing sensible to trim.
			return 0, 0, nil
		}
		for right < len(s) && s[len(s)-1-right] == m.Missing {
			right++
		}
		return left, right, nil
	default:
		n := int(r.prop * float64(m.NumChars()))
		return n, n, nil
	}
}

// Apply masks the first left and last right positions of the target
// taxon's row (or every row for TargetAll) with the missing symbol.
// It masks in place; the alignment length is unchanged.
func Apply(m *align.Matrix, target string, left, right int) error {
	if left == 0 && right == 0 {
		return nil
	}
	mask := func(s []byte) {
		for i := 0; i < left && i < len(s); i++ {
			s[i] = m.Missing
		}
		for i := 0; i < right && i < len(s); i++ {
			s[len(s)-1-i] = m.Missing
		}
	}
	if target == TargetAll {
		for i := 0; i < m.NumTaxa(); i++ {
			_, s := m.Row(i)
			mask(s)
		}
		return nil
	}
	s, ok := m.Seq(target)
	if !ok {
		return fmt.Errorf("trim: taxon %q not in matrix", target)
	}
	mask(s)
	return nil
}
