package verify

import (
	"bufio"
	"fmt"
	"io"

	"github.com/grailbio/base/errors"
)

// BinaryBlockSize is the number of bytes examined by GuessBinary.
const BinaryBlockSize = 512

// binaryThreshold is the fraction of non-text bytes above which a block is
// considered binary.
const binaryThreshold = 0.30

func isText(c byte) bool {
	return (c >= 32 && c < 127) || c == '\n' || c == '\r' || c == '\t' || c == '\b'
}

// IsBinary reports whether more than 30% of block is outside printable
// ASCII and the \n\r\t\b control characters.  An empty block is not binary.
func IsBinary(block []byte) bool {
	if len(block) == 0 {
		return false
	}
	n := 0
	for _, c := range block {
		if !isText(c) {
			n++
		}
	}
	return float64(n)/float64(len(block)) > binaryThreshold
}

// GuessBinary peeks at the first BinaryBlockSize bytes of r without
// consuming them and reports whether they look binary.
func GuessBinary(r *bufio.Reader) (bool, error) {
	block, err := r.Peek(BinaryBlockSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return false, err
	}
	return IsBinary(block), nil
}

// Binary returns an error unless r is probably a binary file.  name is used
// in the message.
func Binary(name string, r *bufio.Reader) error {
	binary, err := GuessBinary(r)
	if err != nil {
		return errors.E(err, fmt.Sprintf("reading %s", name))
	}
	if !binary {
		return errors.E(errors.Invalid, fmt.Sprintf("%s is probably not a binary file", name))
	}
	return nil
}
