package verify_test

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/grailbio/bioflat/encoding/b6"
	"github.com/grailbio/bioflat/encoding/fasta"
	"github.com/grailbio/bioflat/encoding/fastq"
	"github.com/grailbio/bioflat/encoding/flatfile"
	"github.com/grailbio/bioflat/encoding/gff3"
	"github.com/grailbio/bioflat/encoding/sam"
	"github.com/grailbio/bioflat/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func source(data string) flatfile.Source {
	return flatfile.NewSource(strings.NewReader(data))
}

func recordError(t *testing.T, err error) *verify.RecordError {
	t.Helper()
	require.Error(t, err)
	e, ok := err.(*verify.RecordError)
	require.True(t, ok, "%T is not a *RecordError", err)
	return e
}

func TestGrammar(t *testing.T) {
	g, err := verify.NewGrammar("\t", `[a-z]+`, `\d+`, `^x?$`)
	require.NoError(t, err)
	assert.Nil(t, g.Check("abc\t12\tx"))
	assert.Nil(t, g.Check("abc\t12\t"))

	ferr := g.Check("abc\t1a\tx")
	require.NotNil(t, ferr)
	assert.Equal(t, 1, ferr.Part)
	assert.Equal(t, "1a", ferr.Subject)
	assert.Equal(t, `^(?:\d+)$`, ferr.Template)

	// Fields are anchored individually: "12" alone must match \d+ entirely.
	ferr = g.Check("abc1\t12\tx")
	require.NotNil(t, ferr)
	assert.Equal(t, 0, ferr.Part)

	for _, entry := range []string{"abc\t12", "abc\t12\tx\ty"} {
		ferr = g.Check(entry)
		require.NotNil(t, ferr, entry)
		assert.Equal(t, 0, ferr.Part, entry)
	}

	_, err = verify.NewGrammar("\t", `[a-`)
	assert.Error(t, err)
	assert.Panics(t, func() { verify.MustGrammar("\t", `(`) })
}

func TestEntries(t *testing.T) {
	entries := []string{"chr1\t100", "chr2\t200", "chr3\tx"}
	err := verify.Entries(entries[:2], `chr\d+\t\d+`, `\t`)
	assert.NoError(t, err)

	err = verify.Entries(entries, `chr\d+\t\d+`, `\t`)
	require.Error(t, err)
	ferr, ok := err.(*verify.FormatError)
	require.True(t, ok)
	assert.Equal(t, 1, ferr.Part)
	assert.Equal(t, "x", ferr.Subject)
	assert.Contains(t, ferr.Error(), `field 1 "x"`)

	err = verify.Entries([]string{"a,b"}, `a,b,c`, ",")
	require.Error(t, err)
	assert.Equal(t, 0, err.(*verify.FormatError).Part)

	assert.Error(t, verify.Entries(nil, `(`, `\t`))
}

func TestEntriesGroupedPattern(t *testing.T) {
	assert.NoError(t, verify.Entries([]string{"a\tb"}, `^(a\tb)$`, `\t`))
	assert.NoError(t, verify.Entries([]string{"a\tb", "c\td"}, `^(?:a\tb|c\td)$`, `\t`))
	assert.NoError(t, verify.Entries([]string{">s\nACGU\n"}, `^>.+\n[ACGTU]+\n$`, `\n`))

	// The field patterns of a grouped pattern do not compile on their own.
	err := verify.Entries([]string{"a\tb", "a\tc"}, `^(a\tb)$`, `\t`)
	require.Error(t, err)
	ferr, ok := err.(*verify.FormatError)
	require.True(t, ok, "%T is not a *FormatError", err)
	assert.Equal(t, 0, ferr.Part)
	assert.Equal(t, "a", ferr.Subject)

	err = verify.Entries([]string{">s\nACGX\n"}, `^>.+\n[ACGTU]+\n$`, `\n`)
	require.Error(t, err)
	assert.Equal(t, 1, err.(*verify.FormatError).Part)
}

func TestFASTA(t *testing.T) {
	recs, err := fasta.ReadAll(source(">seq1 desc\nACGT\nTTGG\n>seq2\nAAAA\n"), fasta.Opts{})
	require.NoError(t, err)
	assert.NoError(t, verify.FASTA(recs, verify.Opts{}))

	recs = append(recs, fasta.Record{ID: "seq3", Sequence: "ACGN"})
	e := recordError(t, verify.FASTA(recs, verify.Opts{}))
	assert.Equal(t, "seq3 contains a base not in [ACGTU]", e.Msg)
	assert.Equal(t, 1, e.Part)
	assert.Equal(t, "seq3", e.ID)

	assert.NoError(t, verify.FASTA(recs, verify.Opts{Ambiguous: true}))
	recs[2].Sequence = "ACGZ"
	e = recordError(t, verify.FASTA(recs, verify.Opts{Ambiguous: true}))
	assert.Equal(t, "seq3 contains a base not in [ACGTURYKMSWBDHVNX]", e.Msg)

	e = recordError(t, verify.FASTA([]fasta.Record{{ID: "", Sequence: "ACGT"}}, verify.Opts{}))
	assert.Equal(t, 0, e.Part)
	assert.Contains(t, e.Msg, "Unknown Header Error")
}

func TestFASTQ(t *testing.T) {
	recs, err := fastq.ReadAll(source("@r1 x\nACGT\n+\nIIII\n@r2\nGGCC\n+r2\n@@@@\n"), fastq.Opts{})
	require.NoError(t, err)
	assert.NoError(t, verify.FASTQ(recs, verify.Opts{}))

	tests := []struct {
		rec  fastq.Record
		part int
		msg  string
	}{
		{fastq.Record{ID: "a", Sequence: "ACGT", Quality: "III"}, -1,
			"The number of bases in a does not match the number of quality scores"},
		{fastq.Record{ID: "b", Sequence: "ACXT", Quality: "IIII"}, 1,
			"b contains a base not in [ACGTU]"},
		{fastq.Record{ID: "c", Sequence: "ACGT", Quality: "II I"}, 3,
			"c contains a quality score not in [!-~]"},
	}
	for _, test := range tests {
		e := recordError(t, verify.FASTQ([]fastq.Record{test.rec}, verify.Opts{}))
		assert.Equal(t, test.part, e.Part, test.rec.ID)
		assert.Equal(t, test.msg, e.Msg)
	}
}

const gffData = `##gff-version 3
ctg123	.	gene	1000	9000	.	+	.	ID=gene00001;Name=EDEN
ctg123	.	CDS	1201	1500	1.5e-3	+	0	ID=cds00001;Parent=gene00001
`

func TestGFF3(t *testing.T) {
	recs, err := gff3.ReadAll(source(gffData), gff3.DefaultOpts)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.NoError(t, verify.GFF3(recs, verify.Opts{}))

	tests := []struct {
		line string
		msg  string
	}{
		{"ctg123\t.\tgene\t1x\t90\t.\t+\t.\tID=a", "Entry with Sequence ID ctg123 has non-numerical characters in start position"},
		{"ctg123\t.\tgene\t1\t90\tabc\t+\t.\tID=a", "Entry with Sequence ID ctg123 has non-numerical characters in score"},
		{"ctg123\t.\tgene\t1\t90\t.\t*\t.\tID=a", "Entry with Sequence ID ctg123 strand not in [+-.]"},
		{"ctg123\t.\tgene\t1\t90\t.\t+\t3\tID=a", "Entry with Sequence ID ctg123 phase not in [.0-2]"},
		{"ctg 1\tsrc\tgene\t1\t90\t.\t+\t.\tID=a", "Entry with source src Sequence ID has characters not in [a-zA-Z0-9.:^*$@!+_?|%-]"},
	}
	for _, test := range tests {
		bad, err := gff3.ReadAll(source(test.line+"\n"), gff3.Opts{})
		require.NoError(t, err, test.line)
		assert.EqualError(t, verify.GFF3(bad, verify.Opts{}), test.msg)
	}

	bad, err := gff3.ReadAll(source("ctg123\t.\tgene\t1\t90\t.\t+\t.\tID=a\nctg123\t.\tgene\t1\t90\t.\t?\t.\tID=a\n"), gff3.Opts{})
	require.NoError(t, err)
	e := recordError(t, verify.GFF3(bad, verify.Opts{Line: 5}))
	assert.Equal(t, "Line 6 strand not in [+-.]", e.Msg)
	assert.Equal(t, 6, e.Line)
	assert.Equal(t, "strand", e.Field)
}

const b6Data = `query1	subject1	98.50	200	3	0	1	200	1000	801	1.0E-30	370
query2	subject2	100.000	50	0	0	10	59	5	54	2e-20	93.5
query3	subject3	87.1	33	4	1	1	33	33	1	0.0	9x1
`

func TestB6(t *testing.T) {
	recs, err := b6.ReadAll(source(b6Data), b6.Opts{})
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.NoError(t, verify.B6(recs[:2], verify.Opts{}))

	e := recordError(t, verify.B6(recs, verify.Opts{}))
	assert.Equal(t, "Entry with query ID query3 has non-numerical characters in bit score", e.Msg)
	assert.Equal(t, "bit score", e.Field)
	assert.Equal(t, 11, e.Part)
	assert.Equal(t, "query3", e.ID)

	e = recordError(t, verify.B6(recs, verify.Opts{Line: 1}))
	assert.Equal(t, "Line 3 has non-numerical characters in bit score", e.Msg)
	assert.Equal(t, 3, e.Line)

	recs[0].Subject = flatfile.String{}
	e = recordError(t, verify.B6(recs, verify.Opts{}))
	assert.Equal(t, "Entry with query ID query1 has no subject ID", e.Msg)
	recs[0].Query = flatfile.String{}
	e = recordError(t, verify.B6(recs, verify.Opts{}))
	assert.Equal(t, "Entry with subject ID - has no query ID", e.Msg)
}

func TestB6CustomHeader(t *testing.T) {
	data := "q1\ts1\t1e-5\tkeep\n"
	recs, err := b6.ReadAll(source(data), b6.Opts{Columns: []string{"qseqid", "sseqid", "evalue", "staxids"}})
	require.NoError(t, err)
	e := recordError(t, verify.B6(recs, verify.Opts{}))
	// Absent canonical columns are written as "-".
	assert.Equal(t, "Entry with query ID q1 has non-numerical characters in percent identity", e.Msg)
}

const samData = `@HD	VN:1.6
r001	99	ref	7	30	8M2I4M1D3M	=	37	39	TTAGATAAAGGATACTG	*	NM:i:1
r004	4	*	0	0	*	*	0	0	CAGCGGCAT	!!!!!!!!!
`

func TestSAM(t *testing.T) {
	recs, err := sam.ReadAll(source(samData), sam.Opts{})
	require.NoError(t, err)
	assert.NoError(t, verify.SAM(recs, verify.Opts{}))

	const good = "r1\t0\tref\t1\t30\t4M\t*\t0\t0\tACGT\tIIII"
	tests := []struct {
		field int
		value string
		msg   string
	}{
		{0, strings.Repeat("q", 256), "An entry with reference ref query name must be less than 255 characters"},
		{0, "r@1 x", "An entry with reference ref query name contains characters not in [!-?A-~]"},
		{1, "0x10", "An entry with query r1 flag not in range [0-(2^31-1)]"},
		{1, "2147483648", "An entry with query r1 flag not in range [0-(2^31-1)]"},
		{3, "-1", "An entry with query r1 leftmost position not in range [0-(2^31-1)]"},
		{4, "256", "An entry with query r1 mapping quality not in range [0-(2^8-1)]"},
		{5, "4Q", "An entry with query r1 CIGAR string has characters not in [0-9MIDNSHPX=]"},
		{6, "*x", "An entry with query r1 mate read name has characters not in [!-()+-<>-~][!-~]"},
		{8, "-1099511627776", "An entry with query r1 template length not in range [(-2^31+1)-(2^31-1)]"},
		{9, "AC GT", "An entry with query r1 sequence has characters not in [A-Za-z=.]"},
	}
	for _, test := range tests {
		cols := strings.Split(good, "\t")
		cols[test.field] = test.value
		bad, err := sam.ReadAll(source(strings.Join(cols, "\t")+"\n"), sam.Opts{})
		require.NoError(t, err, test.value)
		e := recordError(t, verify.SAM(bad, verify.Opts{}))
		assert.Equal(t, test.msg, e.Msg)
		assert.Equal(t, test.field, e.Part)
	}

	for _, ok := range []string{"2147483647", "-2147483647"} {
		cols := strings.Split(good, "\t")
		cols[8] = ok
		recs, err := sam.ReadAll(source(strings.Join(cols, "\t")+"\n"), sam.Opts{})
		require.NoError(t, err)
		assert.NoError(t, verify.SAM(recs, verify.Opts{}), ok)
	}

	cols := strings.Split(good, "\t")
	cols[8] = "-1099511627776"
	bad, err := sam.ReadAll(source(strings.Join(cols, "\t")+"\n"), sam.Opts{FirstLine: 40})
	require.NoError(t, err)
	assert.EqualError(t, verify.SAM(bad, verify.Opts{Line: 40}),
		"Line 40 template length not in range [(-2^31+1)-(2^31-1)]")
}

func TestBinary(t *testing.T) {
	assert.False(t, verify.IsBinary(nil))
	assert.False(t, verify.IsBinary([]byte(">seq1\nACGT\n")))
	assert.True(t, verify.IsBinary([]byte{0x1f, 0x8b, 0x08, 0, 0, 0, 0, 0, 0, 0xff, 'a'}))

	text := bufio.NewReader(strings.NewReader(strings.Repeat("ACGT\n", 200)))
	err := verify.Binary("reads.fa", text)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reads.fa is probably not a binary file")
	// The peeked block is not consumed.
	line, _ := text.ReadString('\n')
	assert.Equal(t, "ACGT\n", line)

	bin := bufio.NewReader(bytes.NewReader(bytes.Repeat([]byte{0, 1, 2, 200}, 300)))
	assert.NoError(t, verify.Binary("reads.bam", bin))
}
