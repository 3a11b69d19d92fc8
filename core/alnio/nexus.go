// core/alnio/nexus.go
package alnio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"alnkit-core/align"
)

// nexusFormat handles the NEXUS data block as written by common
// alignment tools: DIMENSIONS/FORMAT commands, then a MATRIX section
// terminated by ';'. Interleaved matrices are accepted by appending
// to already-seen taxa.
type nexusFormat struct{}

func init() { Register(nexusFormat{}) }

func (nexusFormat) Name() string   { return "nexus" }
func (nexusFormat) Exts() []string { return []string{".nex", ".nexus"} }

func (nexusFormat) Read(r io.Reader, gap, missing byte) (*align.Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var (
		names    []string
		rows     = make(map[string][]byte)
		inMatrix bool
		sawAny   bool
	)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "[") {
			continue
		}
		upper := strings.ToUpper(line)
		if !inMatrix {
			switch {
			case strings.HasPrefix(upper, "FORMAT"):
				// Declared symbols override the configured ones.
				for _, tok := range strings.Fields(strings.TrimSuffix(line, ";")) {
					kv := strings.SplitN(tok, "=", 2)
					if len(kv) != 2 || len(kv[1]) != 1 {
						continue
					}
					switch strings.ToUpper(kv[0]) {
					case "GAP":
						gap = kv[1][0]
					case "MISSING":
						missing = kv[1][0]
					}
				}
			case upper == "MATRIX":
				inMatrix = true
			}
			continue
		}
		if line == ";" {
			inMatrix = false
			continue
		}
		row := strings.TrimSuffix(line, ";")
		done := len(row) != len(line)
		f := strings.Fields(row)
		if len(f) >= 2 {
			name := strings.Trim(f[0], "'\"")
			if _, seen := rows[name]; !seen {
				names = append(names, name)
			}
			rows[name] = append(rows[name], []byte(strings.Join(f[1:], ""))...)
			sawAny = true
		}
		if done {
			inMatrix = false
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !sawAny {
		return nil, fmt.Errorf("nexus: no matrix rows")
	}
	m := align.New(gap, missing)
	for _, n := range names {
		if err := m.Append(n, rows[n]); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (nexusFormat) Write(w io.Writer, m *align.Matrix) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "#NEXUS")
	fmt.Fprintln(bw, "BEGIN DATA;")
	fmt.Fprintf(bw, "DIMENSIONS NTAX=%d NCHAR=%d;\n", m.NumTaxa(), m.NumChars())
	fmt.Fprintf(bw, "FORMAT DATATYPE=DNA GAP=%c MISSING=%c;\n", m.Gap, m.Missing)
	fmt.Fprintln(bw, "MATRIX")
	width := 0
	for _, n := range m.Names() {
		if len(n) > width {
			width = len(n)
		}
	}
	for i := 0; i < m.NumTaxa(); i++ {
		name, seq := m.Row(i)
		fmt.Fprintf(bw, "%-*s  %s\n", width, name, seq)
	}
	fmt.Fprintln(bw, ";")
	fmt.Fprintln(bw, "END;")
	return bw.Flush()
}
