package fasta

import "io"

// Writer is a FASTA file writer.  Each sequence is written on a single line.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter constructs a new FASTA writer that writes records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes rec in FASTA format.  Errors are sticky: once a write fails,
// Write keeps returning the same error.
func (w *Writer) Write(rec *Record) error {
	if w.err != nil {
		return w.err
	}
	_, w.err = io.WriteString(w.w, rec.String())
	return w.err
}
