// core/align/align.go
package align

import (
	"fmt"
)

// Default symbols for gap and missing characters, and the canonical
// residue set used for missing-data accounting.
const (
	DefaultGap     byte = '-'
	DefaultMissing byte = '?'
	DNACanonical        = "ACGTUacgtu"
)

// Matrix is one locus held in memory: an ordered set of taxon rows of
// equal length. Row order defines output order. Taxon and character
// counts are always derived from the current rows, never cached.
type Matrix struct {
	Gap      byte
	Missing  byte
	Alphabet string // canonical residue symbols; anything else counts as missing data

	names []string
	index map[string]int
	seqs  [][]byte
}

// EmptyResultError is returned when an edit would leave zero taxa.
type EmptyResultError struct {
	Op string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("%s: no taxa remain", e.Op)
}

// New returns an empty matrix with the given gap/missing symbols.
// Zero bytes select the defaults.
func New(gap, missing byte) *Matrix {
	if gap == 0 {
		gap = DefaultGap
	}
	if missing == 0 {
		missing = DefaultMissing
	}
	return &Matrix{
		Gap:      gap,
		Missing:  missing,
		Alphabet: DNACanonical,
		index:    make(map[string]int),
	}
}

// Append adds one taxon row. Names must be unique and every row must
// match the length of the first.
func (m *Matrix) Append(name string, seq []byte) error {
	if name == "" {
		return fmt.Errorf("append: empty taxon label")
	}
	if _, dup := m.index[name]; dup {
		return fmt.Errorf("append: duplicate taxon %q", name)
	}
	if len(m.seqs) > 0 && len(seq) != len(m.seqs[0]) {
		return fmt.Errorf("append: taxon %q has %d characters, want %d", name, len(seq), len(m.seqs[0]))
	}
	m.index[name] = len(m.names)
	m.names = append(m.names, name)
	m.seqs = append(m.seqs, seq)
	return nil
}

// NumTaxa reports the current row count.
func (m *Matrix) NumTaxa() int { return len(m.names) }

// NumChars reports the current alignment length.
func (m *Matrix) NumChars() int {
	if len(m.seqs) == 0 {
		return 0
	}
	return len(m.seqs[0])
}

// Names returns the taxon labels in row order. The slice is a copy.
func (m *Matrix) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Has reports whether a taxon is present.
func (m *Matrix) Has(name string) bool {
	_, ok := m.index[name]
	return ok
}

// Seq returns the live sequence slice for a taxon. Callers may mutate
// residues in place but must not change the length.
func (m *Matrix) Seq(name string) ([]byte, bool) {
	i, ok := m.index[name]
	if !ok {
		return nil, false
	}
	return m.seqs[i], true
}

// Row returns the label and live sequence at row i.
func (m *Matrix) Row(i int) (string, []byte) { return m.names[i], m.seqs[i] }

// Clone deep-copies the matrix.
func (m *Matrix) Clone() *Matrix {
	c := New(m.Gap, m.Missing)
	c.Alphabet = m.Alphabet
	for i, n := range m.names {
		s := make([]byte, len(m.seqs[i]))
		copy(s, m.seqs[i])
		c.index[n] = len(c.names)
		c.names = append(c.names, n)
		c.seqs = append(c.seqs, s)
	}
	return c
}

// CropDelete returns a new matrix without the taxa in del, preserving
// row order. Deleting every taxon is an EmptyResultError.
func (m *Matrix) CropDelete(del map[string]bool) (*Matrix, error) {
	out := New(m.Gap, m.Missing)
	out.Alphabet = m.Alphabet
	for i, n := range m.names {
		if del[n] {
			continue
		}
		s := make([]byte, len(m.seqs[i]))
		copy(s, m.seqs[i])
		out.index[n] = len(out.names)
		out.names = append(out.names, n)
		out.seqs = append(out.seqs, s)
	}
	if out.NumTaxa() == 0 {
		return nil, &EmptyResultError{Op: "crop"}
	}
	return out, nil
}

// CropInclude returns a new matrix with only the taxa in keep. It is
// the dual of CropDelete over the complement set.
func (m *Matrix) CropInclude(keep map[string]bool) (*Matrix, error) {
	del := make(map[string]bool, len(m.names))
	for _, n := range m.names {
		if !keep[n] {
			del[n] = true
		}
	}
	return m.CropDelete(del)
}

// ColumnIsGapOnly reports whether every row holds the gap symbol at
// col, or the missing symbol too when includeMissing is set.
func (m *Matrix) ColumnIsGapOnly(col int, includeMissing bool) bool {
	if len(m.seqs) == 0 {
		return false
	}
	for _, s := range m.seqs {
		c := s[col]
		if c == m.Gap {
			continue
		}
		if includeMissing && c == m.Missing {
			continue
		}
		return false
	}
	return true
}

// StripColumns removes every column matching pred from all rows in one
// pass and reports how many were removed.
func (m *Matrix) StripColumns(pred func(col int) bool) int {
	n := m.NumChars()
	if n == 0 {
		return 0
	}
	keep := make([]int, 0, n)
	for c := 0; c < n; c++ {
		if !pred(c) {
			keep = append(keep, c)
		}
	}
	if len(keep) == n {
		return 0
	}
	for i, s := range m.seqs {
		out := make([]byte, 0, len(keep))
		for _, c := range keep {
			out = append(out, s[c])
		}
		m.seqs[i] = out
	}
	return n - len(keep)
}
