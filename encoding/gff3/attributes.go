package gff3

import (
	"strings"

	"github.com/Velocidex/ordereddict"
)

// Attributes is the parsed ninth column of a GFF3 line: an ordered mapping
// from tag to values.  Multiple values for one tag are separated by ',' in
// the file.
//
// Parsing normalizes the column: empty pieces and pieces with an empty tag
// are dropped, and the values of a repeated tag are merged under its first
// occurrence.  Until Set is called, String returns the column exactly as it
// was parsed.
type Attributes struct {
	dict *ordereddict.Dict
	// raw is the parsed column; it is cleared by Set.
	raw    string
	parsed bool
	// trailingSep records a terminal ';' so that the column keeps it after
	// Set.
	trailingSep bool
}

// NewAttributes returns an empty attribute set.
func NewAttributes() *Attributes {
	return &Attributes{dict: ordereddict.NewDict()}
}

// ParseAttributes parses a "tag1=v1,v2;tag2=v3" attribute column.  Pieces
// are split on the first '='.  A piece without '=' is kept as a tag with no
// values.
func ParseAttributes(s string) *Attributes {
	a := NewAttributes()
	a.raw, a.parsed = s, true
	if s == "" {
		return a
	}
	pieces := strings.Split(s, ";")
	if n := len(pieces); n > 1 && pieces[n-1] == "" {
		a.trailingSep = true
		pieces = pieces[:n-1]
	}
	for _, piece := range pieces {
		eq := strings.IndexByte(piece, '=')
		if eq < 0 {
			if piece != "" {
				a.add(piece, nil)
			}
			continue
		}
		if eq == 0 {
			continue
		}
		a.add(piece[:eq], strings.Split(piece[eq+1:], ","))
	}
	return a
}

func (a *Attributes) add(tag string, values []string) {
	if prev, ok := a.Values(tag); ok {
		values = append(append([]string(nil), prev...), values...)
	}
	a.dict.Set(tag, values)
}

// Len returns the number of tags.
func (a *Attributes) Len() int { return a.dict.Len() }

// Keys returns the tags in file order.
func (a *Attributes) Keys() []string { return a.dict.Keys() }

// Values returns the values for tag.
func (a *Attributes) Values(tag string) ([]string, bool) {
	v, ok := a.dict.Get(tag)
	if !ok {
		return nil, false
	}
	return v.([]string), true
}

// Get returns the first value for tag, or "".
func (a *Attributes) Get(tag string) string {
	if vals, ok := a.Values(tag); ok && len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// Set replaces the values for tag.  A new tag is appended at the end.
func (a *Attributes) Set(tag string, values ...string) {
	a.raw, a.parsed = "", false
	a.dict.Set(tag, values)
}

// String returns the attribute column.
func (a *Attributes) String() string {
	if a.parsed {
		return a.raw
	}
	var b strings.Builder
	for i, key := range a.dict.Keys() {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(key)
		vals, _ := a.Values(key)
		if vals == nil {
			continue
		}
		b.WriteByte('=')
		b.WriteString(strings.Join(vals, ","))
	}
	if a.trailingSep {
		b.WriteByte(';')
	}
	return b.String()
}
