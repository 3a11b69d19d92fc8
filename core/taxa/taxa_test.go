// core/taxa/taxa_test.go
package taxa

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSelectionDeleteSet(t *testing.T) {
	all := []string{"A", "B", "C", "D"}

	if got := All().DeleteSet(all); len(got) != 0 {
		t.Fatalf("All: delete set %v, want empty", got)
	}
	got := Exclude([]string{"B", "Z"}).DeleteSet(all)
	if !reflect.DeepEqual(got, map[string]bool{"B": true}) {
		t.Fatalf("Exclude: %v", got)
	}
	got = Include([]string{"A", "C"}).DeleteSet(all)
	if !reflect.DeepEqual(got, map[string]bool{"B": true, "D": true}) {
		t.Fatalf("Include: %v", got)
	}
}

func TestNewSelectionMutualExclusion(t *testing.T) {
	_, err := NewSelection([]string{"A"}, []string{"B"})
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("want ConfigurationError, got %v", err)
	}
	if s, err := NewSelection(nil, nil); err != nil || !s.IsAll() {
		t.Fatalf("empty lists should select all: %v %v", s, err)
	}
}

func TestParseSets(t *testing.T) {
	const conf = `
# two clades
[ingroup]
taxon_a
*taxon_b
taxon_c
taxon_d

[outgroup]
taxon_x
taxon_y
taxon_z
taxon_w
`
	sets, err := ParseSets(strings.NewReader(conf), "sets.conf")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(sets) != 2 {
		t.Fatalf("got %d sets, want 2", len(sets))
	}
	in := sets[0]
	if in.Name != "ingroup" || in.Reference != "taxon_b" {
		t.Fatalf("ingroup parsed as %+v", in)
	}
	if !reflect.DeepEqual(in.Taxa, []string{"taxon_a", "taxon_b", "taxon_c", "taxon_d"}) {
		t.Fatalf("ingroup taxa %v", in.Taxa)
	}
	if sets[1].Reference != "" {
		t.Fatalf("outgroup should have no reference, got %q", sets[1].Reference)
	}
}

func TestParseSetsRejects(t *testing.T) {
	cases := map[string]string{
		"two references":  "[s]\n*a\n*b\nc\nd\n",
		"duplicate name":  "[s]\na\nb\n[s]\nc\nd\n",
		"orphan taxon":    "a\n[s]\nb\n",
		"duplicate taxon": "[s]\na\na\n",
		"empty file":      "\n# nothing\n",
	}
	for what, conf := range cases {
		_, err := ParseSets(strings.NewReader(conf), "sets.conf")
		var ce *ConfigurationError
		if !errors.As(err, &ce) {
			t.Errorf("%s: want ConfigurationError, got %v", what, err)
		}
	}
}

func TestParseRemoveList(t *testing.T) {
	const list = "locus1 taxon_a taxon_b\nlocus2\n# comment\nlocus3 taxon_c\n"
	got, err := ParseRemoveList(strings.NewReader(list), "drop.txt")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := map[string][]string{
		"locus1": {"taxon_a", "taxon_b"},
		"locus2": {},
		"locus3": {"taxon_c"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
