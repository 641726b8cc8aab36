package flatfile

import "fmt"

// ParseError is a fatal structural error: a line that does not have the
// minimum shape needed to extract a record's fields (wrong sigil, too few
// columns, truncated record).  Readers stop at the first ParseError.
type ParseError struct {
	// Format is the file format, e.g. "FASTQ".
	Format string
	// Line is the 1-based line number, or 0 if unknown.
	Line int
	Msg  string
}

// Errorf constructs a ParseError.
func Errorf(format string, line int, msgFormat string, args ...interface{}) *ParseError {
	return &ParseError{Format: format, Line: line, Msg: fmt.Sprintf(msgFormat, args...)}
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed %s data at line %d: %s", e.Format, e.Line, e.Msg)
	}
	return fmt.Sprintf("malformed %s data: %s", e.Format, e.Msg)
}
