// Package fastq reads and writes FASTQ files.  A record is a header line
// beginning with '@', one or more sequence lines, a separator line beginning
// with '+', and as many quality characters as there are bases, possibly
// spread over several lines.
package fastq

import (
	"errors"
	"strings"

	"github.com/grailbio/bioflat/encoding/fasta"
	"github.com/grailbio/bioflat/encoding/flatfile"
)

const format = "FASTQ"

var (
	// ErrDiscordant is returned when two underlying FASTQ files are discordant.
	ErrDiscordant = errors.New("discordant FASTQ pairs")
)

// Record is a FASTQ record.  In a scanned record, len(Sequence) ==
// len(Quality).
type Record struct {
	ID          string
	Description string
	Sequence    string
	Quality     string
}

// String returns r in FASTQ format: four lines, with a bare "+" separator.
func (r *Record) String() string {
	var b strings.Builder
	b.Grow(len(r.ID) + len(r.Description) + len(r.Sequence) + len(r.Quality) + 8)
	b.WriteByte('@')
	b.WriteString(r.ID)
	if r.Description != "" {
		b.WriteByte(' ')
		b.WriteString(r.Description)
	}
	b.WriteByte('\n')
	b.WriteString(r.Sequence)
	b.WriteString("\n+\n")
	b.WriteString(r.Quality)
	b.WriteByte('\n')
	return b.String()
}

// Opts controls the behavior of a Scanner.
type Opts struct {
	// ResumeLine, if non-nil, is a header line that the caller has already
	// read from the Source.
	ResumeLine *string
	// FirstLine is the line number of the first line the Scanner sees.  Zero
	// means 1.
	FirstLine int
}

var errEOF = errors.New("eof")

// Scanner reads FASTQ records from a Source.  Scanners are not threadsafe.
//
// Quality is read by length: once the separator line is seen, exactly
// len(Sequence) quality characters are consumed, so quality lines beginning
// with '@' or '+' are handled correctly.  Scanner does not check the
// alphabets of the sequence or quality; see package verify.
type Scanner struct {
	c    *flatfile.Cursor
	err  error
	line int
	seq  []byte
	qual []byte
}

// NewScanner constructs a Scanner that reads from src.
func NewScanner(src flatfile.Source, opts Opts) *Scanner {
	return &Scanner{c: flatfile.NewCursor(src, format, opts.ResumeLine, opts.FirstLine)}
}

// Scan reads the next record into rec.  Scan returns a boolean indicating
// whether the scan succeeded. Once Scan returns false, it never returns true
// again. Upon completion, the user should check the Err method to determine
// whether scanning stopped because of an error or because the end of the
// stream was reached.
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
		if strings.TrimSpace(line) != "" {
			header = line
			break
		}
	}
	s.line = s.c.Line()
	if header[0] != '@' {
		return s.c.Errorf("header line does not begin with '@': %q", header)
	}
	rec.ID, rec.Description = fasta.SplitHeader(header[1:])
	if rec.ID == "" {
		return s.c.Errorf("empty read ID")
	}

	s.seq = s.seq[:0]
	for {
		line, ok := s.c.Next()
		if !ok {
			return s.short(rec.ID, "separator line")
		}
		// Some producers emit '#' in place of '+'.
		if strings.HasPrefix(line, "+") || strings.HasPrefix(line, "#") {
			break
		}
		s.seq = append(s.seq, strings.TrimSpace(line)...)
	}

	s.qual = s.qual[:0]
	for len(s.qual) < len(s.seq) {
		line, ok := s.c.Next()
		if !ok {
			return s.short(rec.ID, "quality scores")
		}
		s.qual = append(s.qual, strings.TrimSpace(line)...)
	}
	if len(s.qual) != len(s.seq) {
		return s.c.Errorf("%s has %d bases but %d quality scores", rec.ID, len(s.seq), len(s.qual))
	}
	rec.Sequence = string(s.seq)
	rec.Quality = string(s.qual)
	return nil
}

func (s *Scanner) short(id, what string) error {
	if err := s.c.Err(); err != nil {
		return err
	}
	return flatfile.Errorf(format, s.line, "truncated record %s: missing %s", id, what)
}

// Line returns the line number of the header of the record most recently
// returned by Scan.
func (s *Scanner) Line() int { return s.line }

// Err returns the scanning error, if any.
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

// PairScanner composes a pair of scanners to scan a pair of FASTQ
// streams.
type PairScanner struct {
	r1, r2 *Scanner
	err    error
}

// NewPairScanner creates a new FASTQ pair scanner from the provided
// R1 and R2 sources.
func NewPairScanner(r1, r2 flatfile.Source) *PairScanner {
	return &PairScanner{
		r1: NewScanner(r1, Opts{}),
		r2: NewScanner(r2, Opts{}),
	}
}

// Scan scans the next read pair into r1, r2. Scan returns a boolean
// indicating whether the scan succeeded. Once Scan returns false, it
// never returns true again. Upon completion, the user should check
// the Err method to determine whether scanning stopped because of an
// error or because the end of the stream was reached.
func (p *PairScanner) Scan(r1, r2 *Record) bool {
	if p.err != nil {
		return false
	}
	ok1 := p.r1.Scan(r1)
	ok2 := p.r2.Scan(r2)
	if ok1 != ok2 && p.r1.Err() == nil && p.r2.Err() == nil {
		p.err = ErrDiscordant
	}
	return ok1 && ok2
}

// Err returns the scanning error, if any. It should be checked
// after Scan returns false.
func (p *PairScanner) Err() error {
	if err := p.r1.Err(); err != nil {
		return err
	}
	if err := p.r2.Err(); err != nil {
		return err
	}
	return p.err
}
