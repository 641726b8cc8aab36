package verify

import (
	"fmt"
	"strings"
)

// Opts controls the per-format verifiers.
type Opts struct {
	// Line, if positive, is the line number of the first record.  Messages
	// then cite line numbers instead of record IDs, and Line is incremented
	// per record.  FASTA and FASTQ records span several lines and are always
	// cited by ID.
	Line int
	// Ambiguous permits the IUPAC ambiguity codes [RYKMSWBDHVNX] in FASTA and
	// FASTQ sequences.
	Ambiguous bool
}

// RecordError is a content violation in a record: it parses, but a field
// violates the format's grammar.
type RecordError struct {
	// Format is the file format, e.g. "B6".
	Format string
	// Part is the index of the failing field in the serialized record, or
	// -1 for a check that spans fields.
	Part int
	// Field is the human-readable name of the failing field.
	Field string
	// ID is the identifying value cited in Msg, or "" if Msg cites Line.
	ID string
	// Line is the line number cited in Msg, or 0.
	Line int
	// Msg is the complete message.
	Msg string
	// Cause is the grammar failure, if any.
	Cause *FormatError
}

func (e *RecordError) Error() string { return e.Msg }

// field describes one column of a format's grammar.
type field struct {
	// name is used in RecordError.Field.
	name    string
	pattern string
	// msg follows the record's introduction, e.g. "Entry with query ID q1".
	msg string
}

func grammar(delim string, fields []field) *Grammar {
	patterns := make([]string, len(fields))
	for i, f := range fields {
		patterns[i] = f.pattern
	}
	return MustGrammar(delim, patterns...)
}

// tabular verifies one tab-delimited record.  intro returns the
// identifying field cited when no line number is known.
type tabular struct {
	format  string
	fields  []field
	grammar *Grammar
	intro   func(part int) (prefix, id string)
	// override, if non-nil, may replace the message of a failing part.
	override func(part int) string
}

func newTabular(format string, fields []field) *tabular {
	return &tabular{format: format, fields: fields, grammar: grammar("\t", fields)}
}

func (t *tabular) check(entry string, line int) error {
	ferr := t.grammar.Check(strings.TrimSuffix(entry, "\n"))
	if ferr == nil {
		return nil
	}
	e := &RecordError{Format: t.format, Part: ferr.Part, Cause: ferr}
	var intro string
	if line > 0 {
		intro = fmt.Sprintf("Line %d", line)
		e.Line = line
	} else {
		var prefix string
		prefix, e.ID = t.intro(ferr.Part)
		intro = prefix + " " + e.ID
	}
	f := t.fields[ferr.Part]
	e.Field = f.name
	msg := f.msg
	if t.override != nil {
		if m := t.override(ferr.Part); m != "" {
			msg = m
		}
	}
	e.Msg = intro + " " + msg
	return e
}
