// core/taxa/selection.go
package taxa

import "fmt"

// ConfigurationError marks bad taxon configuration detected before any
// file processing starts.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return "configuration: " + e.Msg }

func configErrf(format string, a ...any) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, a...)}
}

type selectionMode int

const (
	selAll selectionMode = iota
	selInclude
	selExclude
)

// Selection is the one-of-three taxon choice: keep everything, keep
// only a list, or drop a list. The include/exclude flag pair collapses
// into this at parse time, so the two can never both be set.
type Selection struct {
	mode  selectionMode
	names []string
}

// All keeps every taxon.
func All() Selection { return Selection{mode: selAll} }

// Include keeps only the named taxa.
func Include(names []string) Selection { return Selection{mode: selInclude, names: names} }

// Exclude drops the named taxa.
func Exclude(names []string) Selection { return Selection{mode: selExclude, names: names} }

// NewSelection folds the mutually exclusive include/exclude lists into
// a Selection. Both non-empty is a ConfigurationError.
func NewSelection(include, exclude []string) (Selection, error) {
	switch {
	case len(include) > 0 && len(exclude) > 0:
		return Selection{}, configErrf("include and exclude taxa are mutually exclusive")
	case len(include) > 0:
		return Include(include), nil
	case len(exclude) > 0:
		return Exclude(exclude), nil
	}
	return All(), nil
}

// IsAll reports whether the selection keeps everything.
func (s Selection) IsAll() bool { return s.mode == selAll }

// DeleteSet computes the taxa to remove from all. Exclude deletes the
// intersection with the list; include deletes the complement.
func (s Selection) DeleteSet(all []string) map[string]bool {
	del := make(map[string]bool)
	switch s.mode {
	case selAll:
	case selExclude:
		listed := make(map[string]bool, len(s.names))
		for _, n := range s.names {
			listed[n] = true
		}
		for _, n := range all {
			if listed[n] {
				del[n] = true
			}
		}
	case selInclude:
		keep := make(map[string]bool, len(s.names))
		for _, n := range s.names {
			keep[n] = true
		}
		for _, n := range all {
			if !keep[n] {
				del[n] = true
			}
		}
	}
	return del
}
