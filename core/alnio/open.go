// core/alnio/open.go
package alnio

import (
	"errors"
	"io"
	"os"
	"strings"

	"alnkit-core/align"
	"github.com/klauspost/pgzip"
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a reader for path, handling "-" for stdin and gzip
// input detected by magic number (1F 8B) or .gz suffix.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	_, _ = fh.Seek(0, io.SeekStart)
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := pgzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}

// ReadPath opens and parses one alignment file. Parse failures and
// zero-record files come back as InputFormatError.
func ReadPath(path string, f Format, gap, missing byte) (*align.Matrix, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	m, err := f.Read(rc, gap, missing)
	if err != nil {
		return nil, &InputFormatError{Path: path, Err: err}
	}
	if m.NumTaxa() == 0 {
		return nil, &InputFormatError{Path: path, Err: errors.New("no records")}
	}
	return m, nil
}

// WritePath serializes m to path in the given format, or to stdout
// for "-".
func WritePath(path string, f Format, m *align.Matrix) error {
	if path == "-" {
		return f.Write(os.Stdout, m)
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f.Write(fh, m); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}
