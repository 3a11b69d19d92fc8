// core/subset/subset.go
package subset

import (
	"errors"
	"math"

	"alnkit-core/align"
	"alnkit-core/strip"
	"alnkit-core/taxa"
	"alnkit-core/trim"
)

// MinTaxa is the floor on retained taxa for an emitted subset locus.
const MinTaxa = 4

// Partitioner projects loci into named taxon subsets. Definitions are
// validated once at construction; Project is then pure per locus.
type Partitioner struct {
	sets    []taxa.Set
	minProp float64
}

// Result is one subset's outcome for one locus. Kept is false when
// the projection fell below the minimum-taxa gate or retained nothing;
// that is a filtering outcome, not an error.
type Result struct {
	Subset      string
	Matrix      *align.Matrix // nil when nothing was retained
	Retained    int
	MinRequired int
	Kept        bool
}

// New validates subset definitions: unique names, at least MinTaxa
// include taxa, exactly one reference taxon that is itself a member.
// minProp scales the per-subset retention gate and must lie in [0, 1].
func New(sets []taxa.Set, minProp float64) (*Partitioner, error) {
	if len(sets) == 0 {
		return nil, &taxa.ConfigurationError{Msg: "no subsets defined"}
	}
	if minProp < 0 || minProp > 1 {
		return nil, &taxa.ConfigurationError{Msg: "minimum proportion outside [0, 1]"}
	}
	names := make(map[string]bool, len(sets))
	for _, s := range sets {
		if names[s.Name] {
			return nil, &taxa.ConfigurationError{Msg: "duplicate subset name " + s.Name}
		}
		names[s.Name] = true
		if len(s.Taxa) < MinTaxa {
			return nil, &taxa.ConfigurationError{Msg: "subset " + s.Name + " has fewer than 4 taxa"}
		}
		if s.Reference == "" {
			return nil, &taxa.ConfigurationError{Msg: "subset " + s.Name + " has no reference taxon"}
		}
		member := false
		for _, t := range s.Taxa {
			if t == s.Reference {
				member = true
				break
			}
		}
		if !member {
			return nil, &taxa.ConfigurationError{Msg: "subset " + s.Name + " reference " + s.Reference + " is not a member"}
		}
	}
	return &Partitioner{sets: sets, minProp: minProp}, nil
}

// Sets returns the validated definitions in configuration order.
func (p *Partitioner) Sets() []taxa.Set { return p.sets }

// minRequired is the retention gate for one subset definition.
func (p *Partitioner) minRequired(s taxa.Set) int {
	min := MinTaxa
	if p.minProp > 0 {
		if n := int(math.Ceil(p.minProp * float64(len(s.Taxa)))); n > min {
			min = n
		}
	}
	return min
}

// Project runs every subset over one locus: crop to the include list,
// trim all rows against the reference when it survived the crop, then
// strip gap-only columns. The source matrix is not modified.
func (p *Partitioner) Project(m *align.Matrix) ([]Result, error) {
	out := make([]Result, 0, len(p.sets))
	for _, s := range p.sets {
		min := p.minRequired(s)

		keep := make(map[string]bool, len(s.Taxa))
		for _, t := range s.Taxa {
			keep[t] = true
		}
		proj, err := m.CropInclude(keep)
		if err != nil {
			var empty *align.EmptyResultError
			if errors.As(err, &empty) {
				out = append(out, Result{Subset: s.Name, MinRequired: min})
				continue
			}
			return nil, err
		}

		if proj.Has(s.Reference) {
			l, r, err := trim.TaxonReference(s.Reference).Extents(proj)
			if err != nil {
				return nil, err
			}
			if err := trim.Apply(proj, trim.TargetAll, l, r); err != nil {
				return nil, err
			}
		}
		strip.Strip(proj, true)

		out = append(out, Result{
			Subset:      s.Name,
			Matrix:      proj,
			Retained:    proj.NumTaxa(),
			MinRequired: min,
			Kept:        proj.NumTaxa() >= min,
		})
	}
	return out, nil
}
