package cmd

import (
	"context"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/bioflat/encoding/flatfile"
	"github.com/grailbio/bioflat/encoding/gff3"
	"github.com/grailbio/bioflat/interval"
)

// overlap copies the GFF3 features that intersect region, which is parsed
// by interval.ParseRegionString.  If strand is non-empty, features on the
// other strand are dropped; '.' features are always kept.  Directives are
// kept.
//
// The region is 0-based half-open, while a feature's 1-based closed
// [Start, End] is compared as [Start-1, End) by gff3.Record.Overlaps.
func overlap(ctx context.Context, inPath, outPath, region, strand string) (err error) {
	entry, err := interval.ParseRegionString(region)
	if err != nil {
		return err
	}
	target := &gff3.Record{
		SeqID:  entry.SeqID,
		Start:  flatfile.NewInt(int64(entry.Start0)),
		End:    flatfile.NewInt(int64(entry.End)),
		Strand: strand,
	}
	in, err := openInput(ctx, inPath)
	if err != nil {
		return err
	}
	defer in.Close(ctx) // nolint: errcheck
	out, err := createOutput(ctx, outPath)
	if err != nil {
		return err
	}
	var e errors.Once
	defer func() {
		e.Set(out.Close(ctx))
		err = e.Err()
	}()

	opts := gff3.Opts{Directives: true}
	s := gff3.NewScanner(flatfile.NewSource(in), opts)
	w := gff3.NewWriter(out)
	for s.Scan() {
		rec := s.Record()
		if rec == nil {
			e.Set(w.WriteLine(s.Raw()))
			continue
		}
		if !rec.Start.Valid || !rec.End.Valid {
			continue
		}
		feature := *rec
		feature.Start.Value--
		if feature.Overlaps(target, strand != "") {
			e.Set(w.Write(rec))
		}
	}
	e.Set(s.Err())
	e.Set(w.Flush())
	return
}
