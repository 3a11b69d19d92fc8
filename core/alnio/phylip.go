// core/alnio/phylip.go
package alnio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"alnkit-core/align"
)

// phylipFormat handles relaxed sequential PHYLIP: a "ntax nchar"
// header, then one name per row with its sequence, wrapped over
// following lines until nchar characters have been read.
type phylipFormat struct{}

func init() { Register(phylipFormat{}) }

func (phylipFormat) Name() string   { return "phylip" }
func (phylipFormat) Exts() []string { return []string{".phy", ".phylip"} }

func (phylipFormat) Read(r io.Reader, gap, missing byte) (*align.Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var ntax, nchar int
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if _, err := fmt.Sscan(line, &ntax, &nchar); err != nil {
			return nil, fmt.Errorf("phylip header %q: %w", line, err)
		}
		break
	}
	if ntax <= 0 || nchar <= 0 {
		return nil, fmt.Errorf("phylip header: ntax=%d nchar=%d", ntax, nchar)
	}

	m := align.New(gap, missing)
	var (
		name string
		seq  []byte
	)
	flush := func() error {
		if name == "" {
			return nil
		}
		if len(seq) != nchar {
			return fmt.Errorf("phylip: taxon %q has %d characters, header says %d", name, len(seq), nchar)
		}
		return m.Append(name, seq)
	}
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if name == "" || len(seq) >= nchar {
			// New taxon row.
			if err := flush(); err != nil {
				return nil, err
			}
			f := strings.Fields(line)
			name = f[0]
			seq = []byte(strings.Join(f[1:], ""))
			continue
		}
		seq = append(seq, []byte(strings.Join(strings.Fields(line), ""))...)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if m.NumTaxa() != ntax {
		return nil, fmt.Errorf("phylip: read %d taxa, header says %d", m.NumTaxa(), ntax)
	}
	return m, nil
}

func (phylipFormat) Write(w io.Writer, m *align.Matrix) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, " %d %d\n", m.NumTaxa(), m.NumChars()); err != nil {
		return err
	}
	width := 0
	for _, n := range m.Names() {
		if len(n) > width {
			width = len(n)
		}
	}
	for i := 0; i < m.NumTaxa(); i++ {
		name, seq := m.Row(i)
		if _, err := fmt.Fprintf(bw, "%-*s  %s\n", width, name, seq); err != nil {
			return err
		}
	}
	return bw.Flush()
}
