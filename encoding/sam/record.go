// Package sam reads and writes SAM alignment text: "@" header lines followed
// by tab-separated alignment lines with eleven mandatory columns and any
// number of optional TAG:TYPE:VALUE columns.
//
// Unlike github.com/grailbio/hts/sam, which decodes records into a binary
// representation, this package keeps every column as text so that
// malformed producers (e.g. hexadecimal flags) can be read, re-emitted
// unchanged, and checked by package verify.
package sam

import (
	"strconv"
	"strings"

	"github.com/grailbio/bioflat/encoding/flatfile"
	hsam "github.com/grailbio/hts/sam"
	"github.com/pkg/errors"
)

const (
	format = "SAM"
	// NumColumns is the number of mandatory columns.
	NumColumns = 11
)

// Record is one SAM alignment line.
type Record struct {
	QName string
	// Flag is not Valid when the producer wrote a non-decimal flag such as
	// "0x2"; Flag.Text keeps the literal.
	Flag  flatfile.Int
	RName string
	Pos   flatfile.Int
	MapQ  flatfile.Int
	Cigar string
	RNext string
	PNext flatfile.Int
	TLen  flatfile.Int
	Seq   string
	Qual  string
	// Optional holds the columns after the eleventh, verbatim.
	Optional []string
}

func (r *Record) appendMandatory(dst []string) []string {
	return append(dst,
		r.QName,
		r.Flag.Format(""),
		r.RName,
		r.Pos.Format(""),
		r.MapQ.Format(""),
		r.Cigar,
		r.RNext,
		r.PNext.Format(""),
		r.TLen.Format(""),
		r.Seq,
		r.Qual)
}

// AppendFields implements flatfile.Row.
func (r *Record) AppendFields(dst []string) []string {
	return append(r.appendMandatory(dst), r.Optional...)
}

// String returns r as a SAM line, including the trailing newline.
func (r *Record) String() string { return flatfile.JoinRow(r) }

type mandatoryRow struct{ *Record }

func (r mandatoryRow) AppendFields(dst []string) []string { return r.appendMandatory(dst) }

// Mandatory returns the eleven mandatory columns of r as a SAM line,
// including the trailing newline.
func (r *Record) Mandatory() string { return flatfile.JoinRow(mandatoryRow{r}) }

// Flags decodes the flag column.  Hexadecimal and octal literals are
// accepted.
func (r *Record) Flags() (hsam.Flags, error) {
	if r.Flag.Valid {
		if r.Flag.Value < 0 || r.Flag.Value > 0xffff {
			return 0, errors.Errorf("sam: flag %d out of range", r.Flag.Value)
		}
		return hsam.Flags(r.Flag.Value), nil
	}
	v, err := strconv.ParseUint(r.Flag.Text, 0, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "sam: invalid flag %q", r.Flag.Text)
	}
	return hsam.Flags(v), nil
}

// ParsedCigar decodes the CIGAR column.  It returns nil for "*".
func (r *Record) ParsedCigar() (hsam.Cigar, error) {
	if r.Cigar == "*" || r.Cigar == "" {
		return nil, nil
	}
	c, err := hsam.ParseCigar([]byte(r.Cigar))
	if err != nil {
		return nil, errors.Wrapf(err, "sam: invalid CIGAR %q", r.Cigar)
	}
	return c, nil
}

// Tag returns the value of the optional TAG:TYPE:VALUE column with the
// given two-character tag, and its type character.
func (r *Record) Tag(tag string) (value string, typ byte, ok bool) {
	for _, opt := range r.Optional {
		if len(opt) >= 5 && opt[2] == ':' && opt[4] == ':' && strings.HasPrefix(opt, tag) {
			return opt[5:], opt[3], true
		}
	}
	return "", 0, false
}

// ParseHeader decodes header lines collected by a Scanner.
func ParseHeader(lines []string) (*hsam.Header, error) {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	h, err := hsam.NewHeader([]byte(b.String()), nil)
	if err != nil {
		return nil, errors.Wrap(err, "sam: invalid header")
	}
	return h, nil
}
