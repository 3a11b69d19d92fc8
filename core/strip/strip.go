// core/strip/strip.go
package strip

import "alnkit-core/align"

// GapOnly returns the indices of columns that hold the gap symbol (or
// the missing symbol too, when includeMissing) in every retained row.
func GapOnly(m *align.Matrix, includeMissing bool) []int {
	var cols []int
	for c := 0; c < m.NumChars(); c++ {
		if m.ColumnIsGapOnly(c, includeMissing) {
			cols = append(cols, c)
		}
	}
	return cols
}

// Strip removes all gap-only columns in one pass and reports how many
// were removed. Must run after row deletion and trimming: both can
// turn columns gap-only.
func Strip(m *align.Matrix, includeMissing bool) int {
	return m.StripColumns(func(c int) bool {
		return m.ColumnIsGapOnly(c, includeMissing)
	})
}
