// Package gff3 reads and writes GFF3 feature files: nine tab-separated
// columns per feature, "##" directives, "#" comments, and an optional
// trailing "##FASTA" section that is not part of the feature stream.
package gff3

import (
	"github.com/biogo/biogo/feat"
	"github.com/grailbio/bioflat/encoding/flatfile"
	"github.com/grailbio/bioflat/interval"
)

const (
	format = "GFF3"
	// NumColumns is the number of tab-separated columns in a feature line.
	NumColumns = 9
	// Missing is the sentinel for an absent score or phase.
	Missing = "."
	// FASTADirective ends the feature section of a file.
	FASTADirective = "##FASTA"
)

// Record is one GFF3 feature line.  Start and End are 1-based and inclusive
// in the file; start <= end is not checked.
type Record struct {
	SeqID  string
	Source string
	Type   string
	Start  flatfile.Int
	End    flatfile.Int
	Score  flatfile.Float
	Strand string
	Phase  flatfile.Int
	// Attributes is set when the Scanner parses attributes; otherwise
	// RawAttributes holds the column text.
	Attributes    *Attributes
	RawAttributes string
}

// AttributeString returns the ninth column.
func (r *Record) AttributeString() string {
	if r.Attributes != nil {
		return r.Attributes.String()
	}
	return r.RawAttributes
}

// AppendFields implements flatfile.Row.
func (r *Record) AppendFields(dst []string) []string {
	return append(dst,
		r.SeqID,
		r.Source,
		r.Type,
		r.Start.Format(Missing),
		r.End.Format(Missing),
		r.Score.Format(Missing),
		r.Strand,
		r.Phase.Format(Missing),
		r.AttributeString())
}

// String returns r as a GFF3 line, including the trailing newline.
func (r *Record) String() string { return flatfile.JoinRow(r) }

// Overlaps reports whether r and o lie on the same sequence and their
// half-open intervals [Start, End) intersect.  If strandSpecific is set,
// features on different strands do not overlap, except that a '.' strand is
// compatible with any strand.
func (r *Record) Overlaps(o *Record, strandSpecific bool) bool {
	if r.SeqID != o.SeqID {
		return false
	}
	if strandSpecific && r.Strand != o.Strand && r.Strand != "." && o.Strand != "." {
		return false
	}
	return interval.Overlaps(r.Interval(), o.Interval())
}

// Interval returns [Start, End) as an interval.Set.  It is empty if either
// coordinate is not an integer.
func (r *Record) Interval() interval.Set {
	if !r.Start.Valid || !r.End.Valid {
		return nil
	}
	return interval.NewSet(interval.PosType(r.Start.Value), interval.PosType(r.End.Value))
}

// Feature adapts a Record to the biogo feature interfaces, using biogo's
// 0-based half-open coordinates.
type Feature struct {
	*Record
	location feat.Feature
}

var (
	_ feat.Feature  = Feature{}
	_ feat.Orienter = Feature{}
)

// Feature returns r as a biogo feat.Feature located on loc, which may be
// nil.
func (r *Record) Feature(loc feat.Feature) Feature {
	return Feature{Record: r, location: loc}
}

// Start implements feat.Range.
func (f Feature) Start() int { return int(f.Record.Start.Value) - 1 }

// End implements feat.Range.
func (f Feature) End() int { return int(f.Record.End.Value) }

// Len implements feat.Range.
func (f Feature) Len() int { return f.End() - f.Start() }

// Name returns the ID attribute if there is one, and the feature type
// otherwise.
func (f Feature) Name() string {
	if f.Attributes != nil {
		if id := f.Attributes.Get("ID"); id != "" {
			return id
		}
	}
	return f.Type
}

// Description implements feat.Feature.
func (f Feature) Description() string { return f.Source + " " + f.Type }

// Location implements feat.Feature.
func (f Feature) Location() feat.Feature { return f.location }

// Orientation implements feat.Orienter.
func (f Feature) Orientation() feat.Orientation {
	switch f.Strand {
	case "+":
		return feat.Forward
	case "-":
		return feat.Reverse
	}
	return feat.NotOriented
}
