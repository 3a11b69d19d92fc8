// core/trim/trim_test.go
package trim

import (
	"testing"

	"alnkit-core/align"
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

func TestParseReference(t *testing.T) {
	if r, err := ParseReference("0.1"); err != nil {
		t.Fatalf("0.1: %v", err)
	} else if _, isTaxon := r.IsTaxon(); isTaxon {
		t.Fatal("0.1 should be a proportion reference")
	}
	if r, err := ParseReference("taxon_ref"); err != nil {
		t.Fatalf("label: %v", err)
	} else if lbl, isTaxon := r.IsTaxon(); !isTaxon || lbl != "taxon_ref" {
		t.Fatalf("label resolved as %v", r)
	}
	for _, bad := range []string{"", "0", "0.5", "0.9", "-0.1"} {
		if _, err := ParseReference(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func TestTaxonReferenceExtents(t *testing.T) {
	m := mk(t,
		[2]string{"ref", "??ACGTAC??"},
		[2]string{"oth", "GGACGTACGG"},
	)
	l, r, err := TaxonReference("ref").Extents(m)
	if err != nil {
		t.Fatalf("extents: %v", err)
	}
	if l != 2 || r != 2 {
		t.Fatalf("extents = %d,%d want 2,2", l, r)
	}

	if _, _, err := TaxonReference("nope").Extents(m); err == nil {
		t.Fatal("unknown reference taxon should error")
	}
}

func TestAllMissingReferenceTrimsNothing(t *testing.T) {
	m := mk(t, [2]string{"ref", "????"}, [2]string{"oth", "ACGT"})
	l, r, err := TaxonReference("ref").Extents(m)
	if err != nil || l != 0 || r != 0 {
		t.Fatalf("got %d,%d,%v want 0,0,nil", l, r, err)
	}
}

func TestProportionExtents(t *testing.T) {
	m := mk(t, [2]string{"a", "ACGTACGTAC"}) // 10 chars
	l, r, err := ProportionReference(0.25).Extents(m)
	if err != nil || l != 2 || r != 2 {
		t.Fatalf("got %d,%d,%v want 2,2 (floor 0.25*10)", l, r, err)
	}
}

// Masking touches exactly the flanks, preserves length and interior.
func TestApplyMasks(t *testing.T) {
	m := mk(t,
		[2]string{"ref", "??ACGTAC??"},
		[2]string{"oth", "GGACGTACGG"},
	)
	l, r, _ := TaxonReference("ref").Extents(m)
	if err := Apply(m, TargetAll, l, r); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if m.NumChars() != 10 {
		t.Fatalf("length changed to %d", m.NumChars())
	}
	if s, _ := m.Seq("oth"); string(s) != "??ACGTAC??" {
		t.Fatalf("oth = %q", s)
	}
}

func TestApplySingleTarget(t *testing.T) {
	m := mk(t,
		[2]string{"a", "ACGT"},
		[2]string{"b", "ACGT"},
	)
	if err := Apply(m, "b", 1, 1); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if s, _ := m.Seq("a"); string(s) != "ACGT" {
		t.Fatalf("a was touched: %q", s)
	}
	if s, _ := m.Seq("b"); string(s) != "?CG?" {
		t.Fatalf("b = %q, want ?CG?", s)
	}
	if err := Apply(m, "missing_taxon", 1, 0); err == nil {
		t.Fatal("unknown target should error")
	}
}
