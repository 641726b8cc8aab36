package gff3_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/biogo/biogo/feat"
	"github.com/grailbio/bioflat/encoding/flatfile"
	"github.com/grailbio/bioflat/encoding/gff3"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

const gffData = `##gff-version 3
##sequence-region ctg123 1 1497228
# a comment
ctg123	.	gene	1000	9000	.	+	.	ID=gene00001;Name=EDEN
ctg123	.	mRNA	1050	9000	.	+	.	ID=mRNA00001;Parent=gene00001;Name=EDEN.1
ctg123	.	CDS	1201	1500	1.5e-3	+	0	ID=cds00001;Parent=mRNA00001,mRNA00002;
ctg123	prodigal	CDS	3000	3902	87.2	-	2	note
`

const fastaTail = `##FASTA
>ctg123
ACGTACGT
ctg123	.	gene	1	10	.	+	.	ID=fake
`

func scanAll(t *testing.T, data string, opts gff3.Opts) (recs []*gff3.Record, raw []string) {
	s := gff3.NewScanner(flatfile.NewSource(strings.NewReader(data)), opts)
	for s.Scan() {
		if rec := s.Record(); rec != nil {
			recs = append(recs, rec)
		} else {
			raw = append(raw, s.Raw())
		}
	}
	assert.NoError(t, s.Err())
	return
}

func TestScan(t *testing.T) {
	recs, raw := scanAll(t, gffData, gff3.DefaultOpts)
	assert.EQ(t, len(recs), 4)
	expect.EQ(t, len(raw), 0)

	r := recs[0]
	expect.EQ(t, r.SeqID, "ctg123")
	expect.EQ(t, r.Type, "gene")
	expect.EQ(t, r.Start.Value, int64(1000))
	expect.EQ(t, r.End.Value, int64(9000))
	expect.True(t, r.Score.Missing())
	expect.True(t, r.Phase.Missing())
	expect.EQ(t, r.Attributes.Keys(), []string{"ID", "Name"})
	expect.EQ(t, r.Attributes.Get("Name"), "EDEN")

	r = recs[2]
	expect.EQ(t, r.Score.Value, 1.5e-3)
	expect.EQ(t, r.Score.Text, "1.5e-3")
	expect.EQ(t, r.Phase.Value, int64(0))
	parents, ok := r.Attributes.Values("Parent")
	expect.True(t, ok)
	expect.EQ(t, parents, []string{"mRNA00001", "mRNA00002"})
	expect.EQ(t, r.Attributes.Len(), 2)

	r = recs[3]
	expect.EQ(t, r.Source, "prodigal")
	expect.EQ(t, r.Strand, "-")
	expect.EQ(t, r.Attributes.Keys(), []string{"note"})
}

func TestPassthrough(t *testing.T) {
	_, raw := scanAll(t, gffData, gff3.Opts{Directives: true})
	expect.EQ(t, raw, []string{"##gff-version 3", "##sequence-region ctg123 1 1497228"})
	_, raw = scanAll(t, gffData, gff3.Opts{Comments: true})
	expect.EQ(t, raw, []string{"# a comment"})
	recs, raw := scanAll(t, gffData, gff3.Opts{Directives: true, Comments: true})
	expect.EQ(t, len(raw), 3)
	expect.EQ(t, recs[0].RawAttributes, "ID=gene00001;Name=EDEN")
	expect.True(t, recs[0].Attributes == nil)
}

func TestFASTASectionStops(t *testing.T) {
	recs, raw := scanAll(t, gffData+fastaTail, gff3.Opts{Directives: true, ParseAttributes: true})
	expect.EQ(t, len(recs), 4)
	for _, r := range recs {
		expect.False(t, r.Attributes.Get("ID") == "fake")
	}
	for _, line := range raw {
		expect.False(t, strings.HasPrefix(line, "##FASTA"))
	}
	recs, _ = scanAll(t, fastaTail, gff3.DefaultOpts)
	expect.EQ(t, len(recs), 0)
}

func TestFASTADirectiveExact(t *testing.T) {
	data := "##FASTAfoo\nctg1\t.\tgene\t1\t10\t.\t+\t.\tID=a\n"
	recs, raw := scanAll(t, data, gff3.Opts{Directives: true})
	expect.EQ(t, len(recs), 1)
	expect.EQ(t, raw, []string{"##FASTAfoo"})

	recs, _ = scanAll(t, "##FASTA \n"+data, gff3.Opts{Directives: true})
	expect.EQ(t, len(recs), 0)
}

func TestRoundTrip(t *testing.T) {
	for _, opts := range []gff3.Opts{gff3.DefaultOpts, {Directives: true, Comments: true}} {
		var buf bytes.Buffer
		w := gff3.NewWriter(&buf)
		s := gff3.NewScanner(flatfile.NewSource(strings.NewReader(gffData)), opts)
		for s.Scan() {
			if rec := s.Record(); rec != nil {
				assert.NoError(t, w.Write(rec))
			} else {
				assert.NoError(t, w.WriteLine(s.Raw()))
			}
		}
		assert.NoError(t, s.Err())
		assert.NoError(t, w.Flush())
		want := gffData
		if opts.ParseAttributes {
			want = want[strings.Index(want, "ctg123\t"):]
		}
		expect.EQ(t, buf.String(), want)
	}
	line := "chr1\tsrc\texon\t5\t1\tNaNish\t.\tx\t\n"
	recs, _ := scanAll(t, line, gff3.DefaultOpts)
	assert.EQ(t, len(recs), 1)
	expect.EQ(t, recs[0].String(), line)
	expect.False(t, recs[0].Score.Valid)
	expect.EQ(t, recs[0].Phase.Text, "x")
}

func TestResume(t *testing.T) {
	all, err := gff3.ReadAll(flatfile.NewSource(strings.NewReader(gffData)), gff3.DefaultOpts)
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(gffData, "\n"), "\n")
	const skip = 3 // directives and comment
	for n := range all {
		src := flatfile.Lines(lines)
		for i := 0; i <= skip+n; i++ {
			src.Scan()
		}
		resume := src.Text()
		opts := gff3.DefaultOpts
		opts.ResumeLine = &resume
		opts.FirstLine = skip + n + 1
		s := gff3.NewScanner(src, opts)
		assert.True(t, s.Scan())
		expect.EQ(t, s.Record().String(), all[n].String())
		expect.EQ(t, s.Line(), skip+n+1)
	}
}

func TestShortLine(t *testing.T) {
	s := gff3.NewScanner(flatfile.NewSource(strings.NewReader(gffData+"ctg123\t.\tgene\t1\t2\n")), gff3.DefaultOpts)
	n := 0
	for s.Scan() {
		n++
	}
	expect.EQ(t, n, 4)
	assert.NotNil(t, s.Err())
	expect.EQ(t, s.Err().Error(), "malformed GFF3 data at line 8: expected 9 tab-separated columns, found 5")
}

func parse(t *testing.T, line string) *gff3.Record {
	recs, err := gff3.ReadAll(flatfile.Lines([]string{line}), gff3.DefaultOpts)
	assert.NoError(t, err)
	assert.EQ(t, len(recs), 1)
	return recs[0]
}

func TestOverlaps(t *testing.T) {
	a := parse(t, "chr1\t.\tgene\t100\t200\t.\t+\t.\tID=a")
	tests := []struct {
		line                 string
		overlaps, ifStranded bool
	}{
		{"chr1\t.\tgene\t150\t250\t.\t+\t.\tID=b", true, true},
		{"chr1\t.\tgene\t150\t250\t.\t-\t.\tID=b", true, false},
		{"chr1\t.\tgene\t150\t250\t.\t.\t.\tID=b", true, true},
		{"chr1\t.\tgene\t200\t300\t.\t+\t.\tID=b", false, false},
		{"chr1\t.\tgene\t199\t300\t.\t+\t.\tID=b", true, true},
		{"chr1\t.\tgene\t50\t100\t.\t+\t.\tID=b", false, false},
		{"chr1\t.\tgene\t120\t130\t.\t-\t.\tID=b", true, false},
		{"chr2\t.\tgene\t100\t200\t.\t+\t.\tID=b", false, false},
	}
	for _, tt := range tests {
		b := parse(t, tt.line)
		expect.EQ(t, a.Overlaps(b, false), tt.overlaps, tt.line)
		expect.EQ(t, b.Overlaps(a, false), tt.overlaps, tt.line)
		expect.EQ(t, a.Overlaps(b, true), tt.ifStranded, tt.line)
		expect.EQ(t, b.Overlaps(a, true), tt.ifStranded, tt.line)
	}
	dot := parse(t, "chr1\t.\tgene\t100\t200\t.\t.\t.\tID=c")
	expect.True(t, dot.Overlaps(a, true))
}

func TestFeature(t *testing.T) {
	r := parse(t, "chr1\t.\tgene\t100\t200\t.\t-\t.\tID=g1;Name=x")
	f := r.Feature(nil)
	var ff feat.Feature = f
	expect.EQ(t, ff.Start(), 99)
	expect.EQ(t, ff.End(), 200)
	expect.EQ(t, ff.Len(), 101)
	expect.EQ(t, ff.Name(), "g1")
	expect.EQ(t, f.Orientation(), feat.Reverse)
	expect.True(t, ff.Location() == nil)
}

func TestAttributes(t *testing.T) {
	for _, s := range []string{"", "a=1", "a=1;b=2,3;", "flag;a=", "a=1;;b=2", "ID=a;=x", "ID=a;ID=b"} {
		expect.EQ(t, gff3.ParseAttributes(s).String(), s)
	}

	a := gff3.ParseAttributes("ID=a;;Name=b;=x;ID=c")
	expect.EQ(t, a.Keys(), []string{"ID", "Name"})
	ids, _ := a.Values("ID")
	expect.EQ(t, ids, []string{"a", "c"})
	a.Set("Name", "n")
	expect.EQ(t, a.String(), "ID=a,c;Name=n")

	a = gff3.NewAttributes()
	a.Set("ID", "x")
	a.Set("Parent", "p1", "p2")
	expect.EQ(t, a.String(), "ID=x;Parent=p1,p2")
	expect.EQ(t, a.Get("missing"), "")
}
