// internal/writers/droplist.go
package writers

import (
	"fmt"
	"io"
)

// WriteList writes one identifier per line: the removed/short locus
// and sequence reports.
func WriteList(w io.Writer, ids []string) error {
	for _, id := range ids {
		if _, err := fmt.Fprintln(w, id); err != nil {
			return err
		}
	}
	return nil
}
