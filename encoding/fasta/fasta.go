// Package fasta reads and writes FASTA files.  FASTA files consist of a
// number of named sequences that may be interrupted by newlines.  For
// example:
//
// >chr7 an optional description
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// The sequence ID is the stretch of characters up to the first space or tab
// after '>', and the description is the rest of the header line.  Sequence
// lines are concatenated, so wrapping is not preserved.
package fasta

import (
	"errors"
	"strings"

	"github.com/grailbio/bioflat/encoding/flatfile"
)

const format = "FASTA"

// Record is a single FASTA entry.
type Record struct {
	// ID is never empty in a scanned record.
	ID string
	// Description is "" when the header has no description.
	Description string
	Sequence    string
}

// Header returns the header line without the leading '>'.
func (r *Record) Header() string {
	if r.Description == "" {
		return r.ID
	}
	return r.ID + " " + r.Description
}

// String returns r in FASTA format with the sequence on a single line.
func (r *Record) String() string {
	var b strings.Builder
	b.Grow(len(r.ID) + len(r.Description) + len(r.Sequence) + 4)
	b.WriteByte('>')
	b.WriteString(r.Header())
	b.WriteByte('\n')
	b.WriteString(r.Sequence)
	b.WriteByte('\n')
	return b.String()
}

// SplitHeader splits a header line, with or without its leading '>', into
// an ID and a description at the first space.  Other whitespace, such as a
// tab, stays part of the ID.
func SplitHeader(header string) (id, desc string) {
	header = strings.TrimPrefix(strings.TrimRight(header, " "), ">")
	if i := strings.IndexByte(header, ' '); i >= 0 {
		return header[:i], header[i+1:]
	}
	return header, ""
}

// Opts controls the behavior of a Scanner.
type Opts struct {
	// ResumeLine, if non-nil, is a header line that the caller has already
	// read from the Source.  The Scanner starts with it instead of reading a
	// new line.
	ResumeLine *string
	// FirstLine is the line number of the first line the Scanner sees
	// (ResumeLine, if set).  Zero means 1.
	FirstLine int
}

var errEOF = errors.New("eof")

// Scanner reads FASTA records from a Source.  Records are produced one at a
// time, and the Source is read only as far as needed to produce the next
// record.  Scanners are not threadsafe.
type Scanner struct {
	c    *flatfile.Cursor
	err  error
	line int
	buf  []byte
}

// NewScanner constructs a Scanner that reads from src.
func NewScanner(src flatfile.Source, opts Opts) *Scanner {
	return &Scanner{c: flatfile.NewCursor(src, format, opts.ResumeLine, opts.FirstLine)}
}

// Scan reads the next record into rec.  It returns false at the end of the
// input or on error; once Scan returns false it never returns true again.
// The caller should check Err afterwards.
func (s *Scanner) Scan(rec *Record) bool {
	if s.err != nil {
		return false
	}
	if s.err = s.scan(rec); s.err != nil {
		return false
	}
	return true
}

func (s *Scanner) scan(rec *Record) error {
	var header string
	for {
		line, ok := s.c.Next()
		if !ok {
			if err := s.c.Err(); err != nil {
				return err
			}
			return errEOF
		}
		// Blank lines between records are ignored.
		if strings.TrimSpace(line) != "" {
			header = line
			break
		}
	}
	s.line = s.c.Line()
	if header[0] != '>' {
		return s.c.Errorf("header line does not begin with '>': %q", header)
	}
	rec.ID, rec.Description = SplitHeader(header)
	if rec.ID == "" {
		return s.c.Errorf("empty sequence ID")
	}
	s.buf = s.buf[:0]
	for {
		line, ok := s.c.Next()
		if !ok {
			break
		}
		if strings.HasPrefix(line, ">") {
			s.c.Unread(line)
			break
		}
		s.buf = append(s.buf, strings.TrimSpace(line)...)
	}
	if err := s.c.Err(); err != nil {
		return err
	}
	rec.Sequence = string(s.buf)
	return nil
}

// Line returns the line number of the header of the record most recently
// returned by Scan.
func (s *Scanner) Line() int { return s.line }

// Err returns the scanning error, if any.  It returns nil if the Scanner
// stopped at the end of the input.
func (s *Scanner) Err() error {
	if s.err == errEOF {
		return nil
	}
	return s.err
}

// ReadAll scans all remaining records from src.
func ReadAll(src flatfile.Source, opts Opts) ([]Record, error) {
	var (
		recs []Record
		rec  Record
	)
	s := NewScanner(src, opts)
	for s.Scan(&rec) {
		recs = append(recs, rec)
	}
	return recs, s.Err()
}
