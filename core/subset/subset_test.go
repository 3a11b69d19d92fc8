// core/subset/subset_test.go
package subset

import (
	"errors"
	"testing"

	"alnkit-core/align"
	"alnkit-core/taxa"
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

func set(name, ref string, members ...string) taxa.Set {
	return taxa.Set{Name: name, Taxa: members, Reference: ref}
}

func TestNewValidation(t *testing.T) {
	ok := set("s1", "a", "a", "b", "c", "d")
	cases := []struct {
		what    string
		sets    []taxa.Set
		minProp float64
		wantErr bool
	}{
		{"valid", []taxa.Set{ok}, 0, false},
		{"none", nil, 0, true},
		{"too few taxa", []taxa.Set{set("s", "a", "a", "b", "c")}, 0, true},
		{"no reference", []taxa.Set{set("s", "", "a", "b", "c", "d")}, 0, true},
		{"foreign reference", []taxa.Set{set("s", "x", "a", "b", "c", "d")}, 0, true},
		{"duplicate names", []taxa.Set{ok, set("s1", "e", "e", "f", "g", "h")}, 0, true},
		{"bad proportion", []taxa.Set{ok}, 1.5, true},
	}
	for _, c := range cases {
		_, err := New(c.sets, c.minProp)
		if c.wantErr {
			var ce *taxa.ConfigurationError
			if !errors.As(err, &ce) {
				t.Errorf("%s: want ConfigurationError, got %v", c.what, err)
			}
		} else if err != nil {
			t.Errorf("%s: unexpected error %v", c.what, err)
		}
	}
}

func TestProjectTrimsAndStrips(t *testing.T) {
	m := mk(t,
		[2]string{"ref", "??ACGT??"},
		[2]string{"b", "GGACGTGG"},
		[2]string{"c", "GGAC-TGG"},
		[2]string{"d", "GGACGTGG"},
		[2]string{"zz", "AAAAAAAA"}, // not in subset
	)
	p, err := New([]taxa.Set{set("s", "ref", "ref", "b", "c", "d")}, 0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	res, err := p.Project(m)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if len(res) != 1 || !res[0].Kept {
		t.Fatalf("result %+v", res)
	}
	got := res[0].Matrix
	if got.Has("zz") {
		t.Fatal("zz should be cropped away")
	}
	// Flanks masked to the ref's missing runs, then the now-missing
	// flank columns stripped: 8 -> 4 characters.
	if got.NumChars() != 4 {
		t.Fatalf("chars = %d, want 4", got.NumChars())
	}
	if s, _ := got.Seq("b"); string(s) != "ACGT" {
		t.Fatalf("b = %q", s)
	}
	// Source untouched.
	if m.NumChars() != 8 || m.NumTaxa() != 5 {
		t.Fatal("source matrix was modified")
	}
}

func TestProjectMinTaxaGate(t *testing.T) {
	m := mk(t,
		[2]string{"a", "ACGT"},
		[2]string{"b", "ACGT"},
		[2]string{"c", "ACGT"},
	)
	// Subset wants 5 taxa but the locus only has 3 of them.
	p, err := New([]taxa.Set{set("s", "a", "a", "b", "c", "x", "y")}, 0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	res, err := p.Project(m)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	r := res[0]
	if r.Kept {
		t.Fatalf("locus with %d retained taxa should be dropped (min %d)", r.Retained, r.MinRequired)
	}
	if r.Retained != 3 || r.MinRequired != 4 {
		t.Fatalf("retained=%d min=%d", r.Retained, r.MinRequired)
	}
}

func TestProjectMinProportion(t *testing.T) {
	members := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	p, err := New([]taxa.Set{set("s", "a", members...)}, 0.8)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := p.minRequired(p.Sets()[0]); got != 8 {
		t.Fatalf("minRequired = %d, want ceil(0.8*10) = 8", got)
	}
}

func TestProjectDisjointLocus(t *testing.T) {
	m := mk(t, [2]string{"q", "ACGT"}, [2]string{"r", "ACGT"})
	p, err := New([]taxa.Set{set("s", "a", "a", "b", "c", "d")}, 0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	res, err := p.Project(m)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if res[0].Kept || res[0].Matrix != nil {
		t.Fatalf("disjoint locus should be a drop outcome: %+v", res[0])
	}
}
