package fasta_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grailbio/bioflat/encoding/fasta"
	"github.com/grailbio/bioflat/encoding/flatfile"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

const wrapped = ">seq1 desc\nACGT\nTTGG\n>seq2\nAAAA"

func read(t *testing.T, data string) []fasta.Record {
	recs, err := fasta.ReadAll(flatfile.NewSource(strings.NewReader(data)), fasta.Opts{})
	assert.NoError(t, err)
	return recs
}

func TestScan(t *testing.T) {
	expect.EQ(t, read(t, wrapped), []fasta.Record{
		{ID: "seq1", Description: "desc", Sequence: "ACGTTTGG"},
		{ID: "seq2", Description: "", Sequence: "AAAA"},
	})
	// Windows line endings and trailing whitespace on sequence lines.
	expect.EQ(t, read(t, ">a b c\r\nAC \r\nGT\r\n"), []fasta.Record{
		{ID: "a", Description: "b c", Sequence: "ACGT"},
	})
	expect.EQ(t, len(read(t, "")), 0)
	expect.EQ(t, len(read(t, "\n\n")), 0)
}

func TestRoundTrip(t *testing.T) {
	for _, data := range []string{
		">seq1 desc\nACGT\n",
		">seq1 desc\nACGT\n>seq2\nAAAA\n>seq3 a  longer description\nNNNNACGU\n",
	} {
		var buf bytes.Buffer
		w := fasta.NewWriter(&buf)
		for _, rec := range read(t, data) {
			assert.NoError(t, w.Write(&rec))
		}
		expect.EQ(t, buf.String(), data)
	}
	// Wrapping is not preserved.
	var out strings.Builder
	for _, rec := range read(t, wrapped) {
		out.WriteString(rec.String())
	}
	expect.EQ(t, out.String(), ">seq1 desc\nACGTTTGG\n>seq2\nAAAA\n")
}

func TestResume(t *testing.T) {
	const data = ">r1\nAC\nGT\n>r2 two\nGG\n>r3\nT\nT\nT\n>r4\nA\n"
	all := read(t, data)
	lines := strings.Split(strings.TrimSuffix(data, "\n"), "\n")
	for n := range all {
		src := flatfile.Lines(lines)
		var (
			header  string
			headers int
			lineNum int
		)
		for src.Scan() {
			lineNum++
			if strings.HasPrefix(src.Text(), ">") {
				if headers == n {
					header = src.Text()
					break
				}
				headers++
			}
		}
		s := fasta.NewScanner(src, fasta.Opts{ResumeLine: &header, FirstLine: lineNum})
		var got fasta.Record
		assert.True(t, s.Scan(&got), "record %d", n)
		expect.EQ(t, got, all[n])
		expect.EQ(t, s.Line(), lineNum)
		var rest []fasta.Record
		for s.Scan(&got) {
			rest = append(rest, got)
		}
		assert.NoError(t, s.Err())
		expect.EQ(t, len(rest), len(all)-n-1)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		data string
		want string
	}{
		{"ACGT\n>seq1\nACGT\n", "line 1: header line does not begin with '>'"},
		{">seq1\nACGT\n> desc\nAA\n", "line 3: empty sequence ID"},
	}
	for _, test := range tests {
		s := fasta.NewScanner(flatfile.NewSource(strings.NewReader(test.data)), fasta.Opts{})
		var rec fasta.Record
		for s.Scan(&rec) {
		}
		assert.NotNil(t, s.Err())
		assert.Regexp(t, s.Err().Error(), test.want)
		_, ok := s.Err().(*flatfile.ParseError)
		expect.True(t, ok)
		expect.False(t, s.Scan(&rec))
	}
}

func TestSplitHeader(t *testing.T) {
	id, desc := fasta.SplitHeader(">chr1 A viral sequence ")
	expect.EQ(t, id, "chr1")
	expect.EQ(t, desc, "A viral sequence")
	id, desc = fasta.SplitHeader("chr2\tx")
	expect.EQ(t, id, "chr2\tx")
	expect.EQ(t, desc, "")
}

func TestTabInHeader(t *testing.T) {
	const data = ">id\tsome desc\nACGT\n"
	recs := read(t, data)
	assert.EQ(t, len(recs), 1)
	expect.EQ(t, recs[0].ID, "id\tsome")
	expect.EQ(t, recs[0].Description, "desc")
	expect.EQ(t, recs[0].String(), data)
}
