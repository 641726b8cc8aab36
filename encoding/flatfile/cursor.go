package flatfile

import (
	"github.com/pkg/errors"
)

// Cursor is a forward-only position in a Source.  It keeps the number of the
// last line it returned, and supports pushing back a single line so that a
// reader can look at the first line of the next record without consuming
// it.  The resume line, if any, is returned by the first call to Next.
type Cursor struct {
	src    Source
	format string

	pending    string
	hasPending bool

	// line is the 1-based number of the line most recently returned by Next.
	line int
	err  error
}

// NewCursor constructs a Cursor over src.  If resume is non-nil, *resume is
// treated as a line already read from src, and is returned by the first
// call to Next.  firstLine is the line number of the first line returned;
// values <= 0 mean 1.  format names the file format in wrapped I/O errors.
func NewCursor(src Source, format string, resume *string, firstLine int) *Cursor {
	if firstLine <= 0 {
		firstLine = 1
	}
	c := &Cursor{src: src, format: format, line: firstLine - 1}
	if resume != nil {
		c.pending = *resume
		c.hasPending = true
	}
	return c
}

// Next returns the next line.  It returns false once the Source is
// exhausted or fails; Err distinguishes the two.
func (c *Cursor) Next() (string, bool) {
	if c.hasPending {
		c.hasPending = false
		c.line++
		return c.pending, true
	}
	if c.err != nil {
		return "", false
	}
	if !c.src.Scan() {
		if err := c.src.Err(); err != nil {
			c.err = errors.Wrapf(err, "couldn't read %s data", c.format)
		}
		return "", false
	}
	c.line++
	return c.src.Text(), true
}

// Unread pushes line back so that the next call to Next returns it again.
// Only one line may be pushed back at a time.
func (c *Cursor) Unread(line string) {
	if c.hasPending {
		panic("flatfile: Unread called twice")
	}
	c.pending = line
	c.hasPending = true
	c.line--
}

// Line returns the 1-based number of the line most recently returned by
// Next.
func (c *Cursor) Line() int { return c.line }

// Err returns the wrapped error from the underlying Source, if any.
func (c *Cursor) Err() error { return c.err }

// Errorf returns a ParseError positioned at the current line.
func (c *Cursor) Errorf(format string, args ...interface{}) *ParseError {
	return Errorf(c.format, c.line, format, args...)
}
