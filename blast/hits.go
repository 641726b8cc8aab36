package blast

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bioflat/encoding/b6"
	"github.com/grailbio/bioflat/encoding/fasta"
	"github.com/grailbio/bioflat/encoding/fastq"
)

// Side selects which sequence of an alignment a hit refers to.
type Side int

const (
	// Query selects the query ID and the query start/end columns.
	Query Side = iota
	// Subject selects the subject ID and the subject start/end columns.
	Subject
)

func (s Side) String() string {
	if s == Subject {
		return "subject"
	}
	return "query"
}

// Hit is the aligned region of one sequence.  Start and End are 1-based and
// inclusive; Start > End means the alignment is on the reverse strand.
type Hit struct {
	Start, End int64
	// EValue is the E-value as written by BLAST.
	EValue string
}

// Hits collects the hits of rows whose E-value is at most maxEValue, keyed
// by the query or subject ID.  Rows without the ID or coordinates of side
// are skipped.  Hits for one ID are kept in input order.
func Hits(recs []*b6.Record, side Side, maxEValue float64) map[string][]Hit {
	hits := map[string][]Hit{}
	for _, r := range recs {
		if !r.EValueAtMost(maxEValue) {
			continue
		}
		id, start, end := r.Query, r.QueryStart, r.QueryEnd
		if side == Subject {
			id, start, end = r.Subject, r.SubjectStart, r.SubjectEnd
		}
		if !id.Valid || !start.Valid || !end.Valid {
			log.Printf("blast: skipping row without %s coordinates: %s", side, r.Canonical())
			continue
		}
		hits[id.Value] = append(hits[id.Value], Hit{Start: start.Value, End: end.Value, EValue: r.EValue.Format(b6.Missing)})
	}
	return hits
}

// region returns the half-open byte range of h in a sequence of length n,
// and whether the region must be reverse-complemented.
func (h Hit) region(id string, n int) (lo, hi int, reverse bool, err error) {
	first, last := h.Start, h.End
	if first > last {
		first, last, reverse = last, first, true
	}
	if first < 1 || last > int64(n) {
		return 0, 0, false, errors.E(errors.Invalid,
			fmt.Sprintf("blast: hit %d-%d is outside %s (length %d)", h.Start, h.End, id, n))
	}
	return int(first - 1), int(last), reverse, nil
}

func annotate(desc, evalue string) string {
	if desc == "" {
		return "E-value: " + evalue
	}
	return desc + " E-value: " + evalue
}

// ExtractFASTA returns one record per hit on the records in recs, in the
// order of recs and then of hits.  Each record holds the aligned region,
// reverse-complemented when the hit is on the reverse strand, and the hit's
// E-value appended to its description.  It is an error for a hit to extend
// past the sequence.
func ExtractFASTA(recs []fasta.Record, hits map[string][]Hit) ([]fasta.Record, error) {
	var out []fasta.Record
	for _, r := range recs {
		for _, h := range hits[r.ID] {
			lo, hi, rev, err := h.region(r.ID, len(r.Sequence))
			if err != nil {
				return out, err
			}
			seq := r.Sequence[lo:hi]
			if rev {
				seq = ReverseComplement(seq)
			}
			out = append(out, fasta.Record{ID: r.ID, Description: annotate(r.Description, h.EValue), Sequence: seq})
		}
	}
	return out, nil
}

// ExtractFASTQ is ExtractFASTA for FASTQ records.  Quality scores are
// reversed along with the sequence.
func ExtractFASTQ(recs []fastq.Record, hits map[string][]Hit) ([]fastq.Record, error) {
	var out []fastq.Record
	for _, r := range recs {
		if len(hits[r.ID]) > 0 && len(r.Quality) != len(r.Sequence) {
			return out, errors.E(errors.Invalid, fmt.Sprintf("blast: %s has %d bases but %d quality scores",
				r.ID, len(r.Sequence), len(r.Quality)))
		}
		for _, h := range hits[r.ID] {
			lo, hi, rev, err := h.region(r.ID, len(r.Sequence))
			if err != nil {
				return out, err
			}
			seq, qual := r.Sequence[lo:hi], r.Quality[lo:hi]
			if rev {
				seq, qual = ReverseComplement(seq), reverse(qual)
			}
			out = append(out, fastq.Record{
				ID:          r.ID,
				Description: annotate(r.Description, h.EValue),
				Sequence:    seq,
				Quality:     qual,
			})
		}
	}
	return out, nil
}
