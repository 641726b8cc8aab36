package sam

import (
	"errors"
	"strings"

	"github.com/grailbio/bioflat/encoding/flatfile"
)

// Opts controls the behavior of a Scanner.
type Opts struct {
	// Headers causes '@' header lines to be returned by Scan.  They are
	// skipped otherwise.
	Headers bool
	// ResumeLine, if non-nil, is a line that the caller has already read
	// from the Source.
	ResumeLine *string
	// FirstLine is the line number of the first line the Scanner sees.  Zero
	// means 1.
	FirstLine int
}

var errEOF = errors.New("eof")

// Scanner reads SAM alignment lines from a Source.  Each call to Scan
// produces either an alignment (Record returns non-nil) or, when
// Opts.Headers is set, a header line (Record returns nil, Raw holds the
// line).  Scanners are not threadsafe.
type Scanner struct {
	c    *flatfile.Cursor
	opts Opts
	err  error

	rec  *Record
	raw  string
	line int
}

// NewScanner constructs a Scanner that reads from src.
func NewScanner(src flatfile.Source, opts Opts) *Scanner {
	return &Scanner{
		c:    flatfile.NewCursor(src, format, opts.ResumeLine, opts.FirstLine),
		opts: opts,
	}
}

// Scan advances to the next alignment or header line.  It returns false at
// the end of the input or on error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	if s.err = s.scan(); s.err != nil {
		return false
	}
	return true
}

func (s *Scanner) scan() error {
	s.rec = nil
	for {
		line, ok := s.c.Next()
		if !ok {
			if err := s.c.Err(); err != nil {
				return err
			}
			return errEOF
		}
		s.line = s.c.Line()
		s.raw = line
		if strings.TrimSpace(line) == "" {
			continue
		}
		if line[0] == '@' {
			if s.opts.Headers {
				return nil
			}
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < NumColumns {
			return s.c.Errorf("expected at least %d tab-separated columns, found %d", NumColumns, len(cols))
		}
		s.rec = &Record{
			QName: cols[0],
			Flag:  flatfile.ParseInt(cols[1], ""),
			RName: cols[2],
			Pos:   flatfile.ParseInt(cols[3], ""),
			MapQ:  flatfile.ParseInt(cols[4], ""),
			Cigar: cols[5],
			RNext: cols[6],
			PNext: flatfile.ParseInt(cols[7], ""),
			TLen:  flatfile.ParseInt(cols[8], ""),
			Seq:   cols[9],
			Qual:  cols[10],
		}
		if len(cols) > NumColumns {
			s.rec.Optional = cols[NumColumns:]
		}
		return nil
	}
}

// Record returns the alignment read by the last call to Scan, or nil if
// Scan returned a header line.  Each alignment is a new Record owned by the
// caller.
func (s *Scanner) Record() *Record { return s.rec }

// Raw returns the line read by the last call to Scan.
func (s *Scanner) Raw() string { return s.raw }

// Line returns the line number of the line read by the last call to Scan.
func (s *Scanner) Line() int { return s.line }

// Err returns the scanning error, if any.
func (s *Scanner) Err() error {
	if s.err == errEOF {
		return nil
	}
	return s.err
}

// ReadAll scans all remaining alignments from src, dropping header lines.
func ReadAll(src flatfile.Source, opts Opts) ([]*Record, error) {
	var recs []*Record
	s := NewScanner(src, opts)
	for s.Scan() {
		if rec := s.Record(); rec != nil {
			recs = append(recs, rec)
		}
	}
	return recs, s.Err()
}
