package b6

import (
	"errors"
	"strings"

	"github.com/grailbio/bioflat/encoding/flatfile"
)

// Opts controls the behavior of a Scanner.
type Opts struct {
	// Columns is the column layout.  Nil means DefaultColumns.
	Columns []string
	// Comments causes '#' lines to be returned by Scan.  They are skipped
	// otherwise.
	Comments bool
	// ResumeLine, if non-nil, is a line that the caller has already read
	// from the Source.
	ResumeLine *string
	// FirstLine is the line number of the first line the Scanner sees.  Zero
	// means 1.
	FirstLine int
}

var errEOF = errors.New("eof")

// Scanner reads B6 rows from a Source.  Each call to Scan produces either a
// row (Record returns non-nil) or, when Opts.Comments is set, a comment
// (Record returns nil, Raw holds the line).  Scanners are not threadsafe.
type Scanner struct {
	c      *flatfile.Cursor
	header *Header
	opts   Opts
	err    error

	rec  *Record
	raw  string
	line int
}

// NewScanner constructs a Scanner that reads from src.  It returns an error
// if opts.Columns is not a valid layout; no line is read in that case.
func NewScanner(src flatfile.Source, opts Opts) (*Scanner, error) {
	header := defaultHeader
	if opts.Columns != nil {
		var err error
		if header, err = NewHeader(opts.Columns); err != nil {
			return nil, err
		}
	}
	return &Scanner{
		c:      flatfile.NewCursor(src, format, opts.ResumeLine, opts.FirstLine),
		header: header,
		opts:   opts,
	}, nil
}

// Header returns the layout rows are parsed with.
func (s *Scanner) Header() *Header { return s.header }

// Scan advances to the next row or comment.  It returns false at the end of
// the input or on error.
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
		s.raw = strings.TrimRight(line, " ")
		if strings.TrimSpace(s.raw) == "" {
			continue
		}
		if strings.HasPrefix(s.raw, "#") {
			if s.opts.Comments {
				return nil
			}
			continue
		}
		rec, err := s.parse(s.raw)
		if err != nil {
			return err
		}
		s.rec = rec
		return nil
	}
}

func (s *Scanner) parse(line string) (*Record, error) {
	cols := strings.Split(line, "\t")
	h := s.header
	if len(cols) != h.width {
		return nil, s.c.Errorf("the number of columns (%d) does not match the number of columns in the header (%d)", len(cols), h.width)
	}
	rec := &Record{}
	if h != defaultHeader {
		rec.Header = h
	}
	for i, name := range h.names {
		v := cols[h.pos[i]]
		if c := h.canonical[i]; c >= 0 {
			rec.setField(c, v)
			continue
		}
		rec.SetExtra(name, flatfile.ParseString(v, Missing))
	}
	return rec, nil
}

// Record returns the row read by the last call to Scan, or nil if Scan
// returned a comment.  Each row is a new Record owned by the caller.
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

// ReadAll scans all remaining rows from src, dropping comments.
func ReadAll(src flatfile.Source, opts Opts) ([]*Record, error) {
	s, err := NewScanner(src, opts)
	if err != nil {
		return nil, err
	}
	var recs []*Record
	for s.Scan() {
		if rec := s.Record(); rec != nil {
			recs = append(recs, rec)
		}
	}
	return recs, s.Err()
}
