// core/alnio/alnio_test.go
package alnio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"alnkit-core/align"
	"github.com/klauspost/pgzip"
)

func mk(t *testing.T, rows ...[2]string) *align.Matrix {
	t.Helper()
	m := align.New(0, 0)
	for _, r := range rows {
		if err := m.Append(r[0], []byte(r[1])); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	return m
}

func sameMatrix(t *testing.T, a, b *align.Matrix) {
	t.Helper()
	if a.NumTaxa() != b.NumTaxa() || a.NumChars() != b.NumChars() {
		t.Fatalf("shape %dx%d vs %dx%d", a.NumTaxa(), a.NumChars(), b.NumTaxa(), b.NumChars())
	}
	for i := 0; i < a.NumTaxa(); i++ {
		an, as := a.Row(i)
		bn, bs := b.Row(i)
		if an != bn || !bytes.Equal(as, bs) {
			t.Fatalf("row %d: %s/%s vs %s/%s", i, an, as, bn, bs)
		}
	}
}

func TestFastaRoundTrip(t *testing.T) {
	f, err := Lookup("fasta")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	in := mk(t,
		[2]string{"taxon_a", "AC-GT?ACGT"},
		[2]string{"taxon_b", "ACCGTTACG?"},
	)
	var buf bytes.Buffer
	if err := f.Write(&buf, in); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := f.Read(&buf, '-', '?')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	sameMatrix(t, in, got)
}

func TestFastaRaggedRejected(t *testing.T) {
	f, _ := Lookup("fasta")
	_, err := f.Read(strings.NewReader(">a\nACGT\n>b\nACG\n"), '-', '?')
	if err == nil {
		t.Fatal("ragged alignment should fail")
	}
}

func TestPhylipRoundTrip(t *testing.T) {
	f, err := Lookup("phylip")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	in := mk(t,
		[2]string{"taxon_a", "ACGTACGTAC"},
		[2]string{"t_b", "AC--ACG?AC"},
	)
	var buf bytes.Buffer
	if err := f.Write(&buf, in); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := f.Read(&buf, '-', '?')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	sameMatrix(t, in, got)
}

func TestPhylipWrapped(t *testing.T) {
	f, _ := Lookup("phylip")
	const in = " 2 8\ntax_a ACGT\nACGT\ntax_b AAAA\nCCCC\n"
	got, err := f.Read(strings.NewReader(in), '-', '?')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if s, _ := got.Seq("tax_a"); string(s) != "ACGTACGT" {
		t.Fatalf("tax_a = %q", s)
	}
}

func TestPhylipHeaderMismatch(t *testing.T) {
	f, _ := Lookup("phylip")
	if _, err := f.Read(strings.NewReader(" 3 4\na ACGT\nb ACGT\n"), '-', '?'); err == nil {
		t.Fatal("taxon-count mismatch should fail")
	}
	if _, err := f.Read(strings.NewReader(" 1 8\na ACGT\n"), '-', '?'); err == nil {
		t.Fatal("nchar mismatch should fail")
	}
}

func TestNexusRoundTrip(t *testing.T) {
	f, err := Lookup("nexus")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	in := mk(t,
		[2]string{"taxon_a", "ACGT-?"},
		[2]string{"taxon_b", "AC--T?"},
	)
	var buf bytes.Buffer
	if err := f.Write(&buf, in); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := f.Read(&buf, 0, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	sameMatrix(t, in, got)
}

func TestNexusDeclaredSymbolsWin(t *testing.T) {
	f, _ := Lookup("nexus")
	const in = `#NEXUS
BEGIN DATA;
DIMENSIONS NTAX=2 NCHAR=4;
FORMAT DATATYPE=DNA GAP=~ MISSING=N;
MATRIX
a AC~N
b ACGN
;
END;
`
	got, err := f.Read(strings.NewReader(in), '-', '?')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Gap != '~' || got.Missing != 'N' {
		t.Fatalf("symbols %c/%c, want ~/N", got.Gap, got.Missing)
	}
}

func TestReadPathZeroRecords(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "empty.fasta")
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, _ := Lookup("fasta")
	_, err := ReadPath(p, f, '-', '?')
	var ife *InputFormatError
	if !errors.As(err, &ife) {
		t.Fatalf("want InputFormatError, got %v", err)
	}
}

func TestReadPathGzip(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "l.fasta.gz")
	fh, err := os.Create(p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := pgzip.NewWriter(fh)
	if _, err := zw.Write([]byte(">a\nACGT\n>b\nAC-T\n")); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, _ := Lookup("fasta")
	m, err := ReadPath(p, f, '-', '?')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if m.NumTaxa() != 2 || m.NumChars() != 4 {
		t.Fatalf("shape %dx%d", m.NumTaxa(), m.NumChars())
	}
}

func TestMatches(t *testing.T) {
	f, _ := Lookup("fasta")
	for _, p := range []string{"x.fasta", "x.fas", "X.FA", "x.fasta.gz"} {
		if !Matches(f, p) {
			t.Errorf("%s should match fasta", p)
		}
	}
	if Matches(f, "x.phy") {
		t.Error("x.phy should not match fasta")
	}
}
