package verify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FormatError reports the first field of an entry that does not match its
// pattern.
type FormatError struct {
	// Template is the anchored pattern of the failing field.
	Template string
	// Subject is the text of the failing field.
	Subject string
	// Part is the 0-based index of the failing field.
	Part int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("field %d %q does not match %s", e.Part, e.Subject, e.Template)
}

// Grammar is a compiled, delimiter-separated entry grammar.
type Grammar struct {
	delim    string
	segments []string
	whole    *regexp.Regexp
	parts    []*regexp.Regexp
}

// anchor wraps a field pattern so that it must match the whole field.  An
// existing leading '^' or trailing '$' is dropped first.
func anchor(seg string) string {
	seg = strings.TrimPrefix(seg, "^")
	if strings.HasSuffix(seg, "$") && !strings.HasSuffix(seg, `\$`) {
		seg = seg[:len(seg)-1]
	}
	return "^(?:" + seg + ")$"
}

// NewGrammar compiles a grammar from one pattern per field.  delim is the
// literal text that separates fields in an entry.
func NewGrammar(delim string, fields ...string) (*Grammar, error) {
	g := &Grammar{delim: delim, segments: fields}
	var whole strings.Builder
	whole.WriteString("^")
	for i, f := range fields {
		if i > 0 {
			whole.WriteString(regexp.QuoteMeta(delim))
		}
		inner := anchor(f)
		whole.WriteString(inner[1 : len(inner)-1])
		re, err := regexp.Compile(inner)
		if err != nil {
			return nil, err
		}
		g.parts = append(g.parts, re)
	}
	whole.WriteString("$")
	var err error
	if g.whole, err = regexp.Compile(whole.String()); err != nil {
		return nil, err
	}
	return g, nil
}

// MustGrammar is like NewGrammar but panics on an invalid pattern.
func MustGrammar(delim string, fields ...string) *Grammar {
	g, err := NewGrammar(delim, fields...)
	if err != nil {
		panic(err)
	}
	return g
}

// Check returns nil if entry matches g, and otherwise a FormatError for the
// first field that does not.  An entry with the wrong number of fields
// fails on field 0.
func (g *Grammar) Check(entry string) *FormatError {
	if g.whole.MatchString(entry) {
		return nil
	}
	fields := strings.Split(entry, g.delim)
	if len(fields) != len(g.parts) {
		return &FormatError{Template: g.parts[0].String(), Subject: fields[0], Part: 0}
	}
	for i, re := range g.parts {
		if !re.MatchString(fields[i]) {
			return &FormatError{Template: re.String(), Subject: fields[i], Part: i}
		}
	}
	// Every field matches on its own but the entry as a whole does not.
	// This happens only with patterns that can match the delimiter.
	return &FormatError{Template: g.whole.String(), Subject: entry, Part: 0}
}

// unescape decodes a delimiter written as it appears in a pattern, e.g.
// `\t`, into the literal text that separates entry fields.
func unescape(delim string) string {
	if s, err := strconv.Unquote(`"` + delim + `"`); err == nil {
		return s
	}
	return delim
}

// Entries checks each entry against pattern.  Each entry is first matched
// whole against the anchored pattern.  Only when that fails is the pattern
// split into field patterns on delimiter, written as it appears in the
// pattern (so `\t` for a tab), and the entry split on the decoded delimiter
// to find the first field that does not match.  If the field patterns do
// not compile on their own, the failure is reported against field 0.
// Entries returns the first FormatError, or an error if pattern does not
// compile.
func Entries(entries []string, pattern, delimiter string) error {
	whole, err := regexp.Compile(anchor(pattern))
	if err != nil {
		return err
	}
	delim := unescape(delimiter)
	var g *Grammar
	for _, e := range entries {
		if whole.MatchString(e) {
			continue
		}
		if g == nil {
			if g, err = NewGrammar(delim, strings.Split(pattern, delimiter)...); err != nil {
				return &FormatError{Template: whole.String(), Subject: strings.Split(e, delim)[0], Part: 0}
			}
		}
		if ferr := g.Check(e); ferr != nil {
			return ferr
		}
		return &FormatError{Template: whole.String(), Subject: e, Part: 0}
	}
	return nil
}
