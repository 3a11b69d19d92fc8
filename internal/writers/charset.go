// internal/writers/charset.go
package writers

import (
	"fmt"
	"io"
	"strings"

	"alnkit-core/concat"
)

// Charset sidecar writers (syntax name → handler), mirroring the
// output-format registries elsewhere in the repo.
var SetsWriters = map[string]func(io.Writer, []concat.Charset) error{
	"raxml": WriteRAxMLParts,
	"nexus": WriteNexusSets,
}

// SetsSyntaxes lists the supported charset sidecar syntaxes.
func SetsSyntaxes() string {
	names := make([]string, 0, len(SetsWriters))
	for n := range SetsWriters {
		names = append(names, n)
	}
	// Two entries; keep raxml first for the help text.
	if len(names) == 2 && names[0] != "raxml" {
		names[0], names[1] = names[1], names[0]
	}
	return strings.Join(names, " | ")
}

// WriteSets dispatches to the named sidecar syntax.
func WriteSets(syntax string, w io.Writer, cs []concat.Charset) error {
	fn, ok := SetsWriters[syntax]
	if !ok {
		return fmt.Errorf("unknown charset syntax %q (have: %s)", syntax, SetsSyntaxes())
	}
	return fn(w, cs)
}

// WriteRAxMLParts writes RAxML/IQ-TREE partition lines:
//
//	DNA, locus1 = 1-1140
func WriteRAxMLParts(w io.Writer, cs []concat.Charset) error {
	for _, c := range cs {
		if _, err := fmt.Fprintf(w, "DNA, %s = %d-%d\n", c.Name, c.Start, c.End); err != nil {
			return err
		}
	}
	return nil
}

// WriteNexusSets writes a NEXUS sets block with one charset per locus.
func WriteNexusSets(w io.Writer, cs []concat.Charset) error {
	if _, err := fmt.Fprint(w, "#NEXUS\nBEGIN SETS;\n"); err != nil {
		return err
	}
	for _, c := range cs {
		if _, err := fmt.Fprintf(w, "\tCHARSET %s = %d-%d;\n", c.Name, c.Start, c.End); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "END;\n")
	return err
}
