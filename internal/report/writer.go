// Package report writes the results of a non-interactive scan in
// plain-text, JSON, or markdown form.
package report

import (
	"fmt"
	"io"

	"github.com/akx/decruft/internal/scanner"
)

// Result is everything a writer needs about a finished scan.
type Result struct {
	// Root is the absolute path the scan started from.
	Root string
	// Scanned is the number of filesystem entries visited.
	Scanned int64
	// Warnings is the number of entries skipped as unreadable.
	Warnings int64
	// Entries are the discovered cruft directories, in the order they
	// should be presented.
	Entries []scanner.Entry
}

// Writer outputs a scan result in one concrete format.
type Writer interface {
	Write(res Result) error
}

// PlainWriter emits one line per entry, path and size separated by a
// tab. This is the machine-friendly default for piped output.
type PlainWriter struct {
	output io.Writer
}

func NewPlainWriter(output io.Writer) *PlainWriter {
	return &PlainWriter{output: output}
}

func (w *PlainWriter) Write(res Result) error {
	for _, e := range res.Entries {
		if _, err := fmt.Fprintf(w.output, "%s\t%d\n", e.Path, e.Size); err != nil {
			return err
		}
	}
	return nil
}
