// Package b6 reads and writes BLAST tabular output (B6, also known as M8):
// BLAST+ "-outfmt 6" and compatible files.  Rows are tab-separated, "-"
// marks an absent value, and "#" lines are comments.  The default layout
// is the twelve canonical columns; custom layouts are described by a
// Header.
package b6

import (
	"github.com/Velocidex/ordereddict"
	"github.com/grailbio/bioflat/encoding/flatfile"
)

const (
	format = "B6"
	// Missing is the sentinel for an absent value.
	Missing = "-"
)

// Record is one B6 row.  Numeric columns keep their literal text, so a
// Record serializes back to the exact input.
type Record struct {
	Query, Subject flatfile.String
	// Identity is the percent identity.
	Identity     flatfile.Float
	Length       flatfile.Int
	Mismatches   flatfile.Int
	GapOpens     flatfile.Int
	QueryStart   flatfile.Int
	QueryEnd     flatfile.Int
	SubjectStart flatfile.Int
	SubjectEnd   flatfile.Int
	EValue       flatfile.Float
	BitScore     flatfile.Float

	// Extra maps each non-canonical column name to its flatfile.String
	// value, in header order.  It is nil for the default layout.
	Extra *ordereddict.Dict
	// Header is the layout the record was read with.  Nil means the
	// default layout.
	Header *Header
}

// ExtraValue returns the value of a non-canonical column.
func (r *Record) ExtraValue(name string) (flatfile.String, bool) {
	if r.Extra == nil {
		return flatfile.String{}, false
	}
	v, ok := r.Extra.Get(name)
	if !ok {
		return flatfile.String{}, false
	}
	return v.(flatfile.String), true
}

// SetExtra sets the value of a non-canonical column.
func (r *Record) SetExtra(name string, v flatfile.String) {
	if r.Extra == nil {
		r.Extra = ordereddict.NewDict()
	}
	r.Extra.Set(name, v)
}

// Field returns the serialized value of canonical column c.
func (r *Record) Field(c Column) string {
	switch c {
	case Query:
		return r.Query.Format(Missing)
	case Subject:
		return r.Subject.Format(Missing)
	case Identity:
		return r.Identity.Format(Missing)
	case Length:
		return r.Length.Format(Missing)
	case Mismatches:
		return r.Mismatches.Format(Missing)
	case GapOpens:
		return r.GapOpens.Format(Missing)
	case QueryStart:
		return r.QueryStart.Format(Missing)
	case QueryEnd:
		return r.QueryEnd.Format(Missing)
	case SubjectStart:
		return r.SubjectStart.Format(Missing)
	case SubjectEnd:
		return r.SubjectEnd.Format(Missing)
	case EValue:
		return r.EValue.Format(Missing)
	case BitScore:
		return r.BitScore.Format(Missing)
	}
	panic(c)
}

func (r *Record) setField(c Column, s string) {
	switch c {
	case Query:
		r.Query = flatfile.ParseString(s, Missing)
	case Subject:
		r.Subject = flatfile.ParseString(s, Missing)
	case Identity:
		r.Identity = flatfile.ParseFloat(s, Missing)
	case Length:
		r.Length = flatfile.ParseInt(s, Missing)
	case Mismatches:
		r.Mismatches = flatfile.ParseInt(s, Missing)
	case GapOpens:
		r.GapOpens = flatfile.ParseInt(s, Missing)
	case QueryStart:
		r.QueryStart = flatfile.ParseInt(s, Missing)
	case QueryEnd:
		r.QueryEnd = flatfile.ParseInt(s, Missing)
	case SubjectStart:
		r.SubjectStart = flatfile.ParseInt(s, Missing)
	case SubjectEnd:
		r.SubjectEnd = flatfile.ParseInt(s, Missing)
	case EValue:
		r.EValue = flatfile.ParseFloat(s, Missing)
	case BitScore:
		r.BitScore = flatfile.ParseFloat(s, Missing)
	default:
		panic(c)
	}
}

// AppendFields implements flatfile.Row, in the record's original column
// order.
func (r *Record) AppendFields(dst []string) []string {
	h := r.Header
	if h == nil {
		h = defaultHeader
	}
	for i, name := range h.names {
		if c := h.canonical[i]; c >= 0 {
			dst = append(dst, r.Field(c))
			continue
		}
		v, _ := r.ExtraValue(name)
		dst = append(dst, v.Format(Missing))
	}
	return dst
}

// String returns r as a row in its original column order, including the
// trailing newline.
func (r *Record) String() string { return flatfile.JoinRow(r) }

type canonicalRow struct{ *Record }

func (r canonicalRow) AppendFields(dst []string) []string {
	for c := Column(0); c < NumColumns; c++ {
		dst = append(dst, r.Field(c))
	}
	return dst
}

// Canonical returns r as a row with the twelve default columns in default
// order, including the trailing newline.  Extra columns are dropped.
func (r *Record) Canonical() string { return flatfile.JoinRow(canonicalRow{r}) }

// EValueAtMost reports whether r's E-value is present, numeric, and at
// most max.
func (r *Record) EValueAtMost(max float64) bool {
	return r.EValue.Valid && r.EValue.Value <= max
}
