package blast

// complement maps IUPAC nucleotide codes to their complements, preserving
// case.  Other bytes map to 'N'.
var complement [256]byte

func init() {
	for i := range complement {
		complement[i] = 'N'
	}
	for _, pair := range []string{"AT", "CG", "UA", "RY", "KM", "SS", "WW", "BV", "DH", "NN"} {
		a, b := pair[0], pair[1]
		complement[a], complement[a+'a'-'A'] = b, b+'a'-'A'
		if a != b && pair != "UA" {
			complement[b], complement[b+'a'-'A'] = a, a+'a'-'A'
		}
	}
	complement['-'] = '-'
	complement['.'] = '.'
}

// ReverseComplement returns the reverse complement of a nucleotide
// sequence.
func ReverseComplement(seq string) string {
	buf := make([]byte, len(seq))
	for i, j := 0, len(seq)-1; j >= 0; i, j = i+1, j-1 {
		buf[i] = complement[seq[j]]
	}
	return string(buf)
}

func reverse(s string) string {
	buf := make([]byte, len(s))
	for i, j := 0, len(s)-1; j >= 0; i, j = i+1, j-1 {
		buf[i] = s[j]
	}
	return string(buf)
}
