package flatfile

import (
	"io"

	"github.com/grailbio/base/tsv"
)

// Row is a record of a tab-delimited format.
type Row interface {
	// AppendFields appends the record's serialized columns to dst.
	AppendFields(dst []string) []string
}

// JoinRow serializes r as a single tab-delimited line, including the
// trailing newline.
func JoinRow(r Row) string {
	var n int
	fields := r.AppendFields(nil)
	for _, f := range fields {
		n += len(f) + 1
	}
	b := make([]byte, 0, n)
	for i, f := range fields {
		if i > 0 {
			b = append(b, '\t')
		}
		b = append(b, f...)
	}
	return string(append(b, '\n'))
}

// Writer writes Rows and passthrough lines (headers, comments) to an
// io.Writer.  Output is buffered; call Flush when done.
type Writer struct {
	tsv    *tsv.Writer
	fields []string
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{tsv: tsv.NewWriter(w)}
}

// Write writes one record line.
func (w *Writer) Write(r Row) error {
	w.fields = r.AppendFields(w.fields[:0])
	if len(w.fields) == 0 {
		w.tsv.WriteString("")
	}
	for _, f := range w.fields {
		w.tsv.WriteString(f)
	}
	return w.tsv.EndLine()
}

// WriteLine writes a line verbatim, e.g. a header or comment.
func (w *Writer) WriteLine(line string) error {
	w.tsv.WriteString(line)
	return w.tsv.EndLine()
}

// Flush flushes buffered output to the underlying io.Writer.
func (w *Writer) Flush() error {
	return w.tsv.Flush()
}
