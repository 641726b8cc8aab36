package gff3

import (
	"errors"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/grailbio/bioflat/encoding/flatfile"
)

// Opts controls the behavior of a Scanner.
type Opts struct {
	// ParseAttributes causes Record.Attributes to be filled.  Otherwise the
	// column is kept verbatim in Record.RawAttributes.
	ParseAttributes bool
	// Directives causes "##" lines to be returned by Scan.  They are skipped
	// otherwise.  The "##FASTA" directive is never returned; it ends the
	// scan.
	Directives bool
	// Comments causes single-'#' lines to be returned by Scan.
	Comments bool
	// ResumeLine, if non-nil, is a line that the caller has already read
	// from the Source.
	ResumeLine *string
	// FirstLine is the line number of the first line the Scanner sees.  Zero
	// means 1.
	FirstLine int
}

// DefaultOpts parses attributes and skips directives and comments.
var DefaultOpts = Opts{ParseAttributes: true}

var errEOF = errors.New("eof")

// Scanner reads GFF3 features from a Source.  Each call to Scan produces
// either a feature (Record returns non-nil) or, when enabled in Opts, a
// directive or comment line (Record returns nil, Raw holds the line).
// Scanning stops at a "##FASTA" directive.  Scanners are not threadsafe.
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

// Scan advances to the next feature or passthrough line.  It returns false
// at the end of the input, at a "##FASTA" directive, or on error.
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
		s.raw = strings.TrimRight(line, " \t")
		switch {
		case s.raw == "":
			continue
		case s.raw == FASTADirective:
			log.Debug.Printf("gff3: %s at line %d, ignoring the rest of the input", FASTADirective, s.line)
			return errEOF
		case strings.HasPrefix(s.raw, "##"):
			if s.opts.Directives {
				return nil
			}
			continue
		case strings.HasPrefix(s.raw, "#"):
			if s.opts.Comments {
				return nil
			}
			continue
		}
		// Only trailing spaces are trimmed; a trailing tab may delimit an
		// empty attribute column.
		s.raw = strings.TrimRight(line, " ")
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
	if len(cols) != NumColumns {
		return nil, s.c.Errorf("expected %d tab-separated columns, found %d", NumColumns, len(cols))
	}
	rec := &Record{
		SeqID:  cols[0],
		Source: cols[1],
		Type:   cols[2],
		Start:  flatfile.ParseInt(cols[3], Missing),
		End:    flatfile.ParseInt(cols[4], Missing),
		Score:  flatfile.ParseFloat(cols[5], Missing),
		Strand: cols[6],
		Phase:  flatfile.ParseInt(cols[7], Missing),
	}
	if s.opts.ParseAttributes {
		rec.Attributes = ParseAttributes(cols[8])
	} else {
		rec.RawAttributes = cols[8]
	}
	return rec, nil
}

// Record returns the feature read by the last call to Scan, or nil if Scan
// returned a directive or comment.  Each feature is a new Record owned by
// the caller.
func (s *Scanner) Record() *Record { return s.rec }

// Raw returns the line read by the last call to Scan, without trailing
// whitespace.
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

// ReadAll scans all remaining features from src, dropping directives and
// comments.
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
