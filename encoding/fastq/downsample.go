package fastq

import (
	"io"
	"math/rand"

	"github.com/grailbio/bioflat/encoding/flatfile"
	"github.com/pkg/errors"
)

// Downsample writes read pairs from r1In and r2In to r1Out and r2Out. Read pairs will be randomly
// selected for inclusion in the output at the given sampling rate.  Records
// are normalized on output: one sequence line, one quality line, and a bare
// "+" separator.
func Downsample(rate float64, r1In, r2In io.Reader, r1Out, r2Out io.Writer) error {
	if rate < 0.0 || rate > 1.0 {
		return errors.New("rate must be between 0 and 1 (inclusive)")
	}
	random := rand.New(rand.NewSource(0))
	var (
		scanner = NewPairScanner(flatfile.NewSource(r1In), flatfile.NewSource(r2In))
		w1      = NewWriter(r1Out)
		w2      = NewWriter(r2Out)
		r1, r2  Record
	)
	for scanner.Scan(&r1, &r2) {
		if random.Float64() < rate {
			if err := w1.Write(&r1); err != nil {
				return errors.Wrap(err, "error writing R1 output")
			}
			if err := w2.Write(&r2); err != nil {
				return errors.Wrap(err, "error writing R2 output")
			}
		}
	}
	if err := scanner.r1.Err(); err != nil {
		return errors.Wrap(err, "error reading R1 input")
	}
	if err := scanner.r2.Err(); err != nil {
		return errors.Wrap(err, "error reading R2 input")
	}
	if scanner.err == ErrDiscordant {
		return errors.New("R1 and R2 inputs have different numbers of reads")
	}
	return nil
}
