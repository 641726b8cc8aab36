package gff3

import (
	"io"

	"github.com/grailbio/bioflat/encoding/flatfile"
)

// Version is the directive that begins a GFF3 file.
const Version = "##gff-version 3"

// Writer writes GFF3 features, directives and comments.
type Writer struct {
	w *flatfile.Writer
}

// NewWriter constructs a Writer that writes to w.  Output is buffered; call
// Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: flatfile.NewWriter(w)}
}

// Write writes one feature line.
func (w *Writer) Write(rec *Record) error { return w.w.Write(rec) }

// WriteLine writes a directive or comment verbatim.
func (w *Writer) WriteLine(line string) error { return w.w.WriteLine(line) }

// Flush flushes buffered output.
func (w *Writer) Flush() error { return w.w.Flush() }
