package blast

import (
	"fmt"

	"github.com/grailbio/hts/sam"
)

// Cigar converts a pairwise BLAST alignment into a CIGAR.  query and
// subject are the gapped aligned sequences and match is the middle line
// ('|' or a residue letter for identities, '+' for positive substitutions,
// ' ' for mismatches).  A '-' in query is a deletion from the reference
// (subject) and a '-' in subject is an insertion.
//
// If extended is false, identities and mismatches are both written as M.
// Otherwise they are written as = and X.
func Cigar(query, match, subject string, extended bool) (sam.Cigar, error) {
	if len(query) != len(match) || len(query) != len(subject) {
		return nil, fmt.Errorf("blast: alignment rows have different lengths: query %d, match %d, subject %d",
			len(query), len(match), len(subject))
	}
	var (
		cigar sam.Cigar
		op    sam.CigarOpType
		n     int
	)
	for i := 0; i < len(query); i++ {
		t := alignmentOp(query[i], match[i], subject[i], extended)
		if n > 0 && t != op {
			cigar = append(cigar, sam.NewCigarOp(op, n))
			n = 0
		}
		op = t
		n++
	}
	if n > 0 {
		cigar = append(cigar, sam.NewCigarOp(op, n))
	}
	return cigar, nil
}

func alignmentOp(q, m, s byte, extended bool) sam.CigarOpType {
	switch {
	case q == '-':
		return sam.CigarDeletion
	case s == '-':
		return sam.CigarInsertion
	case !extended:
		return sam.CigarMatch
	case m == '|' || isLetter(m):
		return sam.CigarEqual
	default:
		return sam.CigarMismatch
	}
}

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
