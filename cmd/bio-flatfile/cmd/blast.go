package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bioflat/blast"
	"github.com/grailbio/bioflat/encoding/b6"
	"github.com/grailbio/bioflat/encoding/fasta"
	"github.com/grailbio/bioflat/encoding/fastq"
	"github.com/grailbio/bioflat/encoding/flatfile"
)

// filterEValue copies the rows of a B6 file whose E-value is at most maxEValue.
// Comment lines are kept.
func filterEValue(ctx context.Context, inPath, outPath string, maxEValue float64, columns string) (err error) {
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
	s, err := b6.NewScanner(flatfile.NewSource(in), b6.Opts{Columns: splitColumns(columns), Comments: true})
	if err != nil {
		e.Set(err)
		return
	}
	w := b6.NewWriter(out, false)
	for s.Scan() {
		rec := s.Record()
		if rec == nil {
			e.Set(w.WriteLine(s.Raw()))
			continue
		}
		if rec.EValueAtMost(maxEValue) {
			e.Set(w.Write(rec))
		}
	}
	e.Set(s.Err())
	e.Set(w.Flush())
	return
}

type extractOpts struct {
	side      blast.Side
	format    string
	maxEValue float64
	columns   string
}

func readB6(ctx context.Context, path, columns string) ([]*b6.Record, error) {
	in, err := openInput(ctx, path)
	if err != nil {
		return nil, err
	}
	defer in.Close(ctx) // nolint: errcheck
	recs, err := b6.ReadAll(flatfile.NewSource(in), b6.Opts{Columns: splitColumns(columns)})
	if err != nil {
		return nil, errors.E(err, path)
	}
	return recs, nil
}

// extract writes the regions of the sequences in seqPath hit by the
// alignments in b6Path.
func extract(ctx context.Context, seqPath, b6Path, outPath string, opts extractOpts) (err error) {
	rows, err := readB6(ctx, b6Path, opts.columns)
	if err != nil {
		return err
	}
	hits := blast.Hits(rows, opts.side, opts.maxEValue)
	log.Printf("%s: %d %s sequences have hits with E-value <= %g", b6Path, len(hits), opts.side, opts.maxEValue)

	in, err := openInput(ctx, seqPath)
	if err != nil {
		return err
	}
	defer in.Close(ctx) // nolint: errcheck
	out, err := createOutput(ctx, outPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	switch opts.format {
	case "fasta":
		return extractFASTA(flatfile.NewSource(in), hits, out)
	case "fastq":
		return extractFASTQ(flatfile.NewSource(in), hits, out)
	}
	return errors.E(errors.Invalid, fmt.Sprintf("extract: unknown sequence format %q", opts.format))
}

func extractFASTA(src flatfile.Source, hits map[string][]blast.Hit, out io.Writer) error {
	s := fasta.NewScanner(src, fasta.Opts{})
	w := fasta.NewWriter(out)
	var rec fasta.Record
	for s.Scan(&rec) {
		regions, err := blast.ExtractFASTA([]fasta.Record{rec}, hits)
		if err != nil {
			return err
		}
		for i := range regions {
			if err := w.Write(&regions[i]); err != nil {
				return err
			}
		}
	}
	return s.Err()
}

func extractFASTQ(src flatfile.Source, hits map[string][]blast.Hit, out io.Writer) error {
	s := fastq.NewScanner(src, fastq.Opts{})
	w := fastq.NewWriter(out)
	var rec fastq.Record
	for s.Scan(&rec) {
		regions, err := blast.ExtractFASTQ([]fastq.Record{rec}, hits)
		if err != nil {
			return err
		}
		for i := range regions {
			if err := w.Write(&regions[i]); err != nil {
				return err
			}
		}
	}
	return s.Err()
}
