package flatfile

import (
	"bufio"
	"io"
)

// Source yields successive lines of text, without line terminators.  It has
// the same shape as *bufio.Scanner, which is the usual implementation.
// Readers never close or otherwise own a Source.
type Source interface {
	// Scan advances to the next line.  It returns false at the end of input
	// or on error.
	Scan() bool
	// Text returns the line read by the last successful Scan.
	Text() string
	// Err returns the first non-EOF error encountered by Scan.
	Err() error
}

const (
	bufferInitSize = 64 << 10
	// Sequence lines in unwrapped FASTA files can be very long.
	maxLineSize = 1 << 30
)

// NewSource returns a Source that reads lines from r.  Both "\n" and "\r\n"
// line endings are accepted.
func NewSource(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, bufferInitSize), maxLineSize)
	return scanner
}

type sliceSource struct {
	lines []string
	next  int
}

// Lines returns a Source that yields the given lines in order.
func Lines(lines []string) Source {
	return &sliceSource{lines: lines}
}

func (s *sliceSource) Scan() bool {
	if s.next >= len(s.lines) {
		return false
	}
	s.next++
	return true
}

func (s *sliceSource) Text() string {
	if s.next == 0 {
		return ""
	}
	return s.lines[s.next-1]
}

func (s *sliceSource) Err() error { return nil }
