// core/concat/concat.go
package concat

import (
	"bytes"
	"fmt"

	"alnkit-core/align"
)

// Locus pairs a name with its single-locus matrix for concatenation.
type Locus struct {
	Name   string
	Matrix *align.Matrix
}

// Charset is one locus's span inside a supermatrix. Start and End are
// 1-based inclusive, the convention of partition files.
type Charset struct {
	Name       string
	Start, End int
}

// Supermatrix is the column-wise concatenation of many loci over the
// union of their taxa, plus the charset table covering its length.
type Supermatrix struct {
	Matrix   *align.Matrix
	Charsets []Charset
}

// NamingCollisionError reports duplicate locus names, detected before
// any concatenation work.
type NamingCollisionError struct {
	Name string
}

func (e *NamingCollisionError) Error() string {
	return fmt.Sprintf("duplicate locus name %q", e.Name)
}

// Concatenate merges loci in input order. The taxon universe is the
// union across loci in first-seen order; a taxon absent from a locus
// contributes a missing-symbol run for that locus's span. Callers
// must present loci in a deterministic order for byte-reproducible
// output.
func Concatenate(loci []Locus) (*Supermatrix, error) {
	if len(loci) == 0 {
		return nil, fmt.Errorf("concatenate: no loci")
	}
	seen := make(map[string]bool, len(loci))
	for _, l := range loci {
		if seen[l.Name] {
			return nil, &NamingCollisionError{Name: l.Name}
		}
		seen[l.Name] = true
	}

	gap, missing := loci[0].Matrix.Gap, loci[0].Matrix.Missing

	// Taxon universe, insertion-ordered.
	var universe []string
	inUniverse := make(map[string]bool)
	total := 0
	for _, l := range loci {
		for _, n := range l.Matrix.Names() {
			if !inUniverse[n] {
				inUniverse[n] = true
				universe = append(universe, n)
			}
		}
		total += l.Matrix.NumChars()
	}

	rows := make(map[string]*bytes.Buffer, len(universe))
	for _, n := range universe {
		b := &bytes.Buffer{}
		b.Grow(total)
		rows[n] = b
	}

	charsets := make([]Charset, 0, len(loci))
	pos := 0
	for _, l := range loci {
		n := l.Matrix.NumChars()
		charsets = append(charsets, Charset{Name: l.Name, Start: pos + 1, End: pos + n})
		fill := bytes.Repeat([]byte{missing}, n)
		for _, taxon := range universe {
			if s, ok := l.Matrix.Seq(taxon); ok {
				rows[taxon].Write(s)
			} else {
				rows[taxon].Write(fill)
			}
		}
		pos += n
	}

	out := align.New(gap, missing)
	out.Alphabet = loci[0].Matrix.Alphabet
	for _, taxon := range universe {
		if err := out.Append(taxon, rows[taxon].Bytes()); err != nil {
			return nil, fmt.Errorf("concatenate: %w", err)
		}
	}
	return &Supermatrix{Matrix: out, Charsets: charsets}, nil
}
