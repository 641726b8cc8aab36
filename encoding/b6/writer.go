package b6

import (
	"io"

	"github.com/grailbio/bioflat/encoding/flatfile"
)

// Writer writes B6 rows and comments.
type Writer struct {
	w         *flatfile.Writer
	canonical bool
}

// NewWriter constructs a Writer that writes rows in their original column
// order.  If canonical is set, rows are written with the twelve default
// columns instead.  Output is buffered; call Flush when done.
func NewWriter(w io.Writer, canonical bool) *Writer {
	return &Writer{w: flatfile.NewWriter(w), canonical: canonical}
}

// Write writes one row.
func (w *Writer) Write(rec *Record) error {
	if w.canonical && rec.Header != nil && !rec.Header.IsDefault() {
		return w.w.Write(canonicalRow{rec})
	}
	return w.w.Write(rec)
}

// WriteLine writes a comment verbatim.
func (w *Writer) WriteLine(line string) error { return w.w.WriteLine(line) }

// Flush flushes buffered output.
func (w *Writer) Flush() error { return w.w.Flush() }
