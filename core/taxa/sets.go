// core/taxa/sets.go
package taxa

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Set is one named taxon list from a set-configuration file. At most
// one member carries the reference marker.
type Set struct {
	Name      string
	Taxa      []string
	Reference string // empty when no member is marked
}

// RefMarker prefixes the taxon designated as a set's reference.
const RefMarker = "*"

// LoadSets reads a sectioned taxon-set configuration file:
//
//	[clade_a]
//	taxon_1
//	*taxon_2
//	taxon_3
//
// Section headers name the set; one member may be marked with '*' as
// the reference taxon. Blank lines and '#' comments are skipped.
func LoadSets(path string) ([]Set, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	return ParseSets(fh, path)
}

// ParseSets parses the set-configuration format from r. The name is
// used in error messages only.
func ParseSets(r io.Reader, name string) ([]Set, error) {
	var (
		sets []Set
		cur  *Set
		seen = make(map[string]bool)
	)
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, configErrf("%s:%d unterminated section header %q", name, ln, line)
			}
			sec := strings.TrimSpace(line[1 : len(line)-1])
			if sec == "" {
				return nil, configErrf("%s:%d empty section name", name, ln)
			}
			if seen[sec] {
				return nil, configErrf("%s:%d duplicate subset name %q", name, ln, sec)
			}
			seen[sec] = true
			sets = append(sets, Set{Name: sec})
			cur = &sets[len(sets)-1]
			continue
		}
		if cur == nil {
			return nil, configErrf("%s:%d taxon %q before any [section]", name, ln, line)
		}
		label := line
		if strings.HasPrefix(line, RefMarker) {
			label = strings.TrimSpace(strings.TrimPrefix(line, RefMarker))
			if label == "" {
				return nil, configErrf("%s:%d reference marker without a taxon", name, ln)
			}
			if cur.Reference != "" {
				return nil, configErrf("%s:%d subset %q has more than one reference taxon", name, ln, cur.Name)
			}
			cur.Reference = label
		}
		for _, t := range cur.Taxa {
			if t == label {
				return nil, configErrf("%s:%d duplicate taxon %q in subset %q", name, ln, label, cur.Name)
			}
		}
		cur.Taxa = append(cur.Taxa, label)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, configErrf("%s: no subsets defined", name)
	}
	return sets, nil
}
