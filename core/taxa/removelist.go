// core/taxa/removelist.go
package taxa

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// LoadRemoveList reads a per-locus deletion list: one line per locus,
// whitespace-delimited, first token the locus identifier, remaining
// tokens the taxa to drop there. A locus line with no further tokens
// means no deletions for that locus.
func LoadRemoveList(path string) (map[string][]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	return ParseRemoveList(fh, path)
}

// ParseRemoveList parses the deletion-list format from r.
func ParseRemoveList(r io.Reader, name string) (map[string][]string, error) {
	out := make(map[string][]string)
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		locus := f[0]
		if _, dup := out[locus]; dup {
			return nil, configErrf("%s:%d duplicate locus %q in deletion list", name, ln, locus)
		}
		out[locus] = append(make([]string, 0, len(f)-1), f[1:]...)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
