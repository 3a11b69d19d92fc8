// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger is the batch tools' leveled logger: warnings and the batch
// summary go to stderr unless --quiet, per-file progress only with
// --verbose, and everything is duplicated to --log FILE when set.
type Logger struct {
	lg      *log.Logger
	quiet   bool
	verbose bool
	file    *os.File
}

// NewLogger builds a Logger over stderr, optionally teeing to path.
func NewLogger(stderr io.Writer, quiet, verbose bool, path string) (*Logger, error) {
	w := stderr
	var f *os.File
	if path != "" {
		var err error
		f, err = os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = io.MultiWriter(stderr, f)
	}
	return &Logger{lg: log.New(w, "", log.LstdFlags), quiet: quiet, verbose: verbose, file: f}, nil
}

// Warnf logs an isolated per-file failure or other warning.
func (l *Logger) Warnf(format string, a ...any) {
	if l.quiet {
		return
	}
	l.lg.Printf("WARN: "+format, a...)
}

// Infof logs batch-level progress and the final summary.
func (l *Logger) Infof(format string, a ...any) {
	if l.quiet {
		return
	}
	l.lg.Printf(format, a...)
}

// Debugf logs per-file detail, only with --verbose.
func (l *Logger) Debugf(format string, a ...any) {
	if !l.verbose || l.quiet {
		return
	}
	l.lg.Printf(format, a...)
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
