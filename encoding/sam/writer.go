package sam

import (
	"io"

	"github.com/grailbio/bioflat/encoding/flatfile"
)

// Writer writes SAM header lines and alignments.
type Writer struct {
	w *flatfile.Writer
}

// NewWriter constructs a Writer that writes to w.  Output is buffered; call
// Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: flatfile.NewWriter(w)}
}

// Write writes one alignment line.
func (w *Writer) Write(rec *Record) error { return w.w.Write(rec) }

// WriteLine writes a header line verbatim.
func (w *Writer) WriteLine(line string) error { return w.w.WriteLine(line) }

// Flush flushes buffered output.
func (w *Writer) Flush() error { return w.w.Flush() }
