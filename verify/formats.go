package verify

import (
	"fmt"
	"strings"

	"github.com/grailbio/bioflat/encoding/b6"
	"github.com/grailbio/bioflat/encoding/fasta"
	"github.com/grailbio/bioflat/encoding/fastq"
	"github.com/grailbio/bioflat/encoding/gff3"
	"github.com/grailbio/bioflat/encoding/sam"
)

const (
	bases          = `[ACGTU]+`
	ambiguousBases = `[ACGTURYKMSWBDHVNX]+`
	qualities      = `[!-~]+`
)

var (
	fastaGrammar          = MustGrammar("\n", `>.+`, bases)
	fastaAmbiguousGrammar = MustGrammar("\n", `>.+`, ambiguousBases)
	fastqGrammar          = MustGrammar("\n", `@.+`, bases, `\+.*`, qualities)
	fastqAmbiguousGrammar = MustGrammar("\n", `@.+`, ambiguousBases, `\+.*`, qualities)
)

func alphabet(ambiguous bool) string {
	if ambiguous {
		return ambiguousBases[:len(ambiguousBases)-1]
	}
	return bases[:len(bases)-1]
}

// FASTA verifies that each record has a header and a sequence drawn from
// [ACGTU], or from the IUPAC alphabet if opts.Ambiguous is set.
func FASTA(recs []fasta.Record, opts Opts) error {
	g := fastaGrammar
	if opts.Ambiguous {
		g = fastaAmbiguousGrammar
	}
	for i := range recs {
		rec := &recs[i]
		ferr := g.Check(strings.TrimSuffix(rec.String(), "\n"))
		if ferr == nil {
			continue
		}
		e := &RecordError{Format: "FASTA", Part: ferr.Part, ID: rec.ID, Cause: ferr}
		switch ferr.Part {
		case 0:
			e.Field = "header"
			e.Msg = fmt.Sprintf("Unknown Header Error with %s", rec.ID)
		default:
			e.Field = "sequence"
			e.Msg = fmt.Sprintf("%s contains a base not in %s", rec.ID, alphabet(opts.Ambiguous))
		}
		return e
	}
	return nil
}

// FASTQ verifies FASTQ records like FASTA, and additionally that each
// record has as many quality scores as bases, all in [!-~].
func FASTQ(recs []fastq.Record, opts Opts) error {
	g := fastqGrammar
	if opts.Ambiguous {
		g = fastqAmbiguousGrammar
	}
	for i := range recs {
		rec := &recs[i]
		if len(rec.Sequence) != len(rec.Quality) {
			return &RecordError{
				Format: "FASTQ",
				Part:   -1,
				Field:  "quality",
				ID:     rec.ID,
				Msg:    fmt.Sprintf("The number of bases in %s does not match the number of quality scores", rec.ID),
			}
		}
		ferr := g.Check(strings.TrimSuffix(rec.String(), "\n"))
		if ferr == nil {
			continue
		}
		e := &RecordError{Format: "FASTQ", Part: ferr.Part, ID: rec.ID, Cause: ferr}
		switch ferr.Part {
		case 0:
			e.Field = "header"
			e.Msg = fmt.Sprintf("Unknown Header Error with %s", rec.ID)
		case 1:
			e.Field = "sequence"
			e.Msg = fmt.Sprintf("%s contains a base not in %s", rec.ID, alphabet(opts.Ambiguous))
		case 2:
			e.Field = "separator"
			e.Msg = fmt.Sprintf("Unknown error with line 3 of %s", rec.ID)
		default:
			e.Field = "quality"
			e.Msg = fmt.Sprintf("%s contains a quality score not in [!-~]", rec.ID)
		}
		return e
	}
	return nil
}

const (
	gffSeqIDChars = `[a-zA-Z0-9.:^*$@!+_?|%-]`
	number        = `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`
)

var gffFields = []field{
	{"sequence ID", gffSeqIDChars + `+`, "has no Sequence ID"},
	{"source", `[^\t]+`, "has no source"},
	{"type", `[^\t]+`, "has no type"},
	{"start position", `\d+`, "has non-numerical characters in start position"},
	{"end position", `\d+`, "has non-numerical characters in end position"},
	{"score", `\.|` + number, "has non-numerical characters in score"},
	{"strand", `[+.-]`, "strand not in [+-.]"},
	{"phase", `[.0-2]`, "phase not in [.0-2]"},
	{"attributes", `[^\t]+`, "has no attributes"},
}

var gffVerifier = newTabular("GFF3", gffFields)

// GFF3 verifies GFF3 features.  start <= end is not checked.
func GFF3(recs []*gff3.Record, opts Opts) error {
	line := opts.Line
	for _, rec := range recs {
		t := *gffVerifier
		t.intro = func(part int) (string, string) {
			if part == 0 {
				return "Entry with source", rec.Source
			}
			return "Entry with Sequence ID", rec.SeqID
		}
		t.override = func(part int) string {
			if part == 0 && rec.SeqID != "" {
				return "Sequence ID has characters not in " + gffSeqIDChars
			}
			return ""
		}
		if err := t.check(rec.String(), line); err != nil {
			return err
		}
		if line > 0 {
			line++
		}
	}
	return nil
}

// b6ID matches any non-empty value other than the "-" sentinel.
const b6ID = `[^\t-][^\t]*|-[^\t]+`

var b6Fields = []field{
	{"query ID", b6ID, "has no query ID"},
	{"subject ID", b6ID, "has no subject ID"},
	{"percent identity", `\d+\.?\d*`, ""},
	{"alignment length", `\d+`, ""},
	{"mismatches", `\d+`, ""},
	{"gaps", `\d+`, ""},
	{"query start", `\d+`, ""},
	{"query end", `\d+`, ""},
	{"subject start", `\d+`, ""},
	{"subject end", `\d+`, ""},
	{"E-value", `\d+\.?\d*(?:[eE][-+]?\d+)?`, ""},
	{"bit score", `\d+\.?\d*`, ""},
}

func init() {
	for i := range b6Fields {
		if b6Fields[i].msg == "" {
			b6Fields[i].msg = "has non-numerical characters in " + b6Fields[i].name
		}
	}
	b6Verifier = newTabular("B6", b6Fields)
}

var b6Verifier *tabular

// B6 verifies that each row has all twelve canonical columns, with numeric
// values where BLAST+ writes numbers.  Extra columns are not checked.
func B6(recs []*b6.Record, opts Opts) error {
	line := opts.Line
	for _, rec := range recs {
		t := *b6Verifier
		t.intro = func(part int) (string, string) {
			if part == 0 {
				return "Entry with subject ID", rec.Subject.Format(b6.Missing)
			}
			return "Entry with query ID", rec.Query.Format(b6.Missing)
		}
		if err := t.check(rec.Canonical(), line); err != nil {
			return err
		}
		if line > 0 {
			line++
		}
	}
	return nil
}

const (
	// int31Range matches decimal integers in [0, 2^31-1].
	int31Range = `(?:[0-9]{1,9}|1[0-9]{9}|20[0-9]{8}|21[0-3][0-9]{7}|214[0-6][0-9]{6}|` +
		`2147[0-3][0-9]{5}|21474[0-7][0-9]{4}|214748[0-2][0-9]{3}|` +
		`2147483[0-5][0-9]{2}|21474836[0-3][0-9]|214748364[0-7])`
	// uint8Range matches decimal integers in [0, 2^8-1].
	uint8Range   = `(?:[0-9]{1,2}|1[0-9]{2}|2[0-4][0-9]|25[0-5])`
	samNameChars = `[!-()+-<>-~][!-~]`
	qnameChars   = `[!-?A-~]`
)

var samFields = []field{
	{"query name", qnameChars + `{1,255}`, ""},
	{"flag", int31Range, "flag not in range [0-(2^31-1)]"},
	{"reference name", `\*|` + samNameChars + `*`, ""},
	{"leftmost position", int31Range, "leftmost position not in range [0-(2^31-1)]"},
	{"mapping quality", uint8Range, "mapping quality not in range [0-(2^8-1)]"},
	{"CIGAR string", `\*|(?:[0-9]+[MIDNSHPX=])+`, "CIGAR string has characters not in [0-9MIDNSHPX=]"},
	{"mate read name", `\*|=|` + samNameChars + `*`, "mate read name has characters not in " + samNameChars},
	{"mate read position", int31Range, "mate read position not in range [0-(2^31-1)]"},
	{"template length", `-?` + int31Range, "template length not in range [(-2^31+1)-(2^31-1)]"},
	{"sequence", `\*|[A-Za-z=.]+`, "sequence has characters not in [A-Za-z=.]"},
	{"quality scores", qualities, "quality scores has characters not in [!-~]"},
}

var samVerifier = newTabular("SAM", samFields)

// SAM verifies the eleven mandatory columns of each alignment against the
// ranges and alphabets of the SAM format definition.  Optional columns are not
// checked.
func SAM(recs []*sam.Record, opts Opts) error {
	line := opts.Line
	for _, rec := range recs {
		t := *samVerifier
		t.intro = func(part int) (string, string) {
			if part == 0 {
				return "An entry with reference", rec.RName
			}
			return "An entry with query", rec.QName
		}
		t.override = func(part int) string {
			switch part {
			case 0:
				switch {
				case len(rec.QName) == 0:
					return "has no query name"
				case len(rec.QName) > 255:
					return "query name must be less than 255 characters"
				}
				return "query name contains characters not in " + qnameChars
			case 2:
				if len(rec.RName) == 0 {
					return "has no reference name"
				}
				return "reference name has characters not in " + samNameChars
			}
			return ""
		}
		if err := t.check(rec.Mandatory(), line); err != nil {
			return err
		}
		if line > 0 {
			line++
		}
	}
	return nil
}
