// core/alnio/alnio.go
package alnio

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"alnkit-core/align"
)

// Format is one serialized alignment codec, selected by a configured
// name and matched on disk by file extension.
type Format interface {
	Name() string
	Exts() []string
	Read(r io.Reader, gap, missing byte) (*align.Matrix, error)
	Write(w io.Writer, m *align.Matrix) error
}

// InputFormatError wraps a per-file parse failure so the batch driver
// can isolate it: log, skip, continue.
type InputFormatError struct {
	Path string
	Err  error
}

func (e *InputFormatError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *InputFormatError) Unwrap() error { return e.Err }

var formats = map[string]Format{}

// Register adds a codec to the registry (last registration wins).
func Register(f Format) { formats[f.Name()] = f }

// Lookup resolves a configured format name.
func Lookup(name string) (Format, error) {
	f, ok := formats[name]
	if !ok {
		return nil, fmt.Errorf("unknown alignment format %q (have: %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names lists the registered format names, sorted.
func Names() []string {
	out := make([]string, 0, len(formats))
	for n := range formats {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Matches reports whether path carries one of the format's extensions,
// with a trailing .gz ignored.
func Matches(f Format, path string) bool {
	p := strings.ToLower(strings.TrimSuffix(path, ".gz"))
	for _, e := range f.Exts() {
		if strings.HasSuffix(p, e) {
			return true
		}
	}
	return false
}
