package fastq

import "io"

// Writer is a FASTQ file writer.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter constructs a new FASTQ writer
// that writes records to the underlying writer w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes the record r in FASTQ format.
// An error is returned if the write failed.
func (w *Writer) Write(r *Record) error {
	if w.err != nil {
		return w.err
	}
	_, w.err = io.WriteString(w.w, r.String())
	return w.err
}
