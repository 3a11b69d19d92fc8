// internal/writers/report.go
package writers

import (
	"fmt"
	"io"

	"alnkit-core/missing"
)

// WriteMissingTSV renders the missing-data summary as a tab-delimited
// table: locus, length, one column per taxon (first-seen order), and
// a trailing Total row with the length-weighted averages. A taxon
// absent from a locus reads 1.0000, matching its weight in the Total.
func WriteMissingTSV(w io.Writer, s *missing.Summary) error {
	taxa := s.Taxa()

	if _, err := fmt.Fprint(w, "locus\tlength"); err != nil {
		return err
	}
	for _, t := range taxa {
		if _, err := fmt.Fprintf(w, "\t%s", t); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	totalLen := 0
	for _, l := range s.Loci {
		totalLen += l.Length
		if _, err := fmt.Fprintf(w, "%s\t%d", l.Name, l.Length); err != nil {
			return err
		}
		for _, t := range taxa {
			p, ok := l.Prop[t]
			if !ok {
				p = 1
			}
			if _, err := fmt.Fprintf(w, "\t%.4f", p); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "%s\t%d", missing.TotalRow, totalLen); err != nil {
		return err
	}
	for _, t := range taxa {
		if _, err := fmt.Fprintf(w, "\t%.4f", s.Total(t)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
