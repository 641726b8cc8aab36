package flatfile

import (
	"strconv"
)

// String is a text column that may be missing.  A missing String was
// written as the format's sentinel ("-" in B6, "." in GFF3).
type String struct {
	Value string
	Valid bool
}

// NewString returns a present String.
func NewString(v string) String { return String{Value: v, Valid: true} }

// ParseString decodes s, mapping sentinel to a missing value.
func ParseString(s, sentinel string) String {
	if s == sentinel {
		return String{}
	}
	return String{Value: s, Valid: true}
}

// Format encodes v, using sentinel for a missing value.
func (v String) Format(sentinel string) string {
	if !v.Valid {
		return sentinel
	}
	return v.Value
}

// Int is a numeric column that may be missing, or may hold text that did
// not parse as an integer.  Text keeps the column exactly as it was read so
// that re-serialization reproduces the input.
//
//	missing:      Valid == false, Text == ""
//	integer:      Valid == true
//	non-integer:  Valid == false, Text != ""
type Int struct {
	Value int64
	Text  string
	Valid bool
}

// NewInt returns a present Int with no literal text; it is formatted in
// decimal.
func NewInt(v int64) Int { return Int{Value: v, Valid: true} }

// ParseInt decodes s as a base-10 integer.  sentinel maps to a missing
// value, and text that does not parse is kept as a literal.
func ParseInt(s, sentinel string) Int {
	if s == sentinel {
		return Int{}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Int{Text: s}
	}
	return Int{Value: v, Text: s, Valid: true}
}

// Missing reports whether the column was absent.
func (v Int) Missing() bool { return !v.Valid && v.Text == "" }

// Format encodes v, using sentinel for a missing value.
func (v Int) Format(sentinel string) string {
	switch {
	case v.Text != "":
		return v.Text
	case v.Valid:
		return strconv.FormatInt(v.Value, 10)
	default:
		return sentinel
	}
}

// Float is the floating-point counterpart of Int.  For columns such as
// E-values, Text preserves the producer's notation ("1e-30" vs "1.0E-30").
type Float struct {
	Value float64
	Text  string
	Valid bool
}

// NewFloat returns a present Float with no literal text.
func NewFloat(v float64) Float { return Float{Value: v, Valid: true} }

// ParseFloat decodes s as a float.  sentinel maps to a missing value, and
// text that does not parse is kept as a literal.
func ParseFloat(s, sentinel string) Float {
	if s == sentinel {
		return Float{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Float{Text: s}
	}
	return Float{Value: v, Text: s, Valid: true}
}

// Missing reports whether the column was absent.
func (v Float) Missing() bool { return !v.Valid && v.Text == "" }

// Format encodes v, using sentinel for a missing value.
func (v Float) Format(sentinel string) string {
	switch {
	case v.Text != "":
		return v.Text
	case v.Valid:
		return strconv.FormatFloat(v.Value, 'g', -1, 64)
	default:
		return sentinel
	}
}
