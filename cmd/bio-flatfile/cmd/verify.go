package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/bioflat/encoding/b6"
	"github.com/grailbio/bioflat/encoding/fasta"
	"github.com/grailbio/bioflat/encoding/fastq"
	"github.com/grailbio/bioflat/encoding/flatfile"
	"github.com/grailbio/bioflat/encoding/gff3"
	"github.com/grailbio/bioflat/encoding/sam"
	"github.com/grailbio/bioflat/verify"
)

type verifyOpts struct {
	// format is one of "fasta", "fastq", "gff3", "b6", "m8", "sam".
	format string
	// quiet suppresses the success message.
	quiet bool
	// ambiguous permits IUPAC ambiguity codes in FASTA/FASTQ sequences.
	ambiguous bool
	// columns is the B6 column layout, space- or comma-separated.
	columns string
}

func splitColumns(s string) []string {
	if s == "" {
		return nil
	}
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}

// verifySource checks every record of src.  Tabular records are verified
// one at a time so that messages cite their source line.  It returns the
// number of records read.
func verifySource(src flatfile.Source, opts verifyOpts) (int, error) {
	vopts := verify.Opts{Ambiguous: opts.ambiguous}
	n := 0
	switch opts.format {
	case "fasta":
		s := fasta.NewScanner(src, fasta.Opts{})
		var rec fasta.Record
		for s.Scan(&rec) {
			n++
			if err := verify.FASTA([]fasta.Record{rec}, vopts); err != nil {
				return n, err
			}
		}
		return n, s.Err()
	case "fastq":
		s := fastq.NewScanner(src, fastq.Opts{})
		var rec fastq.Record
		for s.Scan(&rec) {
			n++
			if err := verify.FASTQ([]fastq.Record{rec}, vopts); err != nil {
				return n, err
			}
		}
		return n, s.Err()
	case "gff3":
		// Attributes are checked as written.
		s := gff3.NewScanner(src, gff3.Opts{})
		for s.Scan() {
			n++
			vopts.Line = s.Line()
			if err := verify.GFF3([]*gff3.Record{s.Record()}, vopts); err != nil {
				return n, err
			}
		}
		return n, s.Err()
	case "b6", "m8":
		s, err := b6.NewScanner(src, b6.Opts{Columns: splitColumns(opts.columns)})
		if err != nil {
			return 0, err
		}
		for s.Scan() {
			n++
			vopts.Line = s.Line()
			if err := verify.B6([]*b6.Record{s.Record()}, vopts); err != nil {
				return n, err
			}
		}
		return n, s.Err()
	case "sam":
		s := sam.NewScanner(src, sam.Opts{})
		for s.Scan() {
			n++
			vopts.Line = s.Line()
			if err := verify.SAM([]*sam.Record{s.Record()}, vopts); err != nil {
				return n, err
			}
		}
		return n, s.Err()
	}
	return 0, errors.E(errors.Invalid, fmt.Sprintf("unknown format %q", opts.format))
}

func verifyFile(ctx context.Context, path string, opts verifyOpts, stdout io.Writer) (err error) {
	in, err := openInput(ctx, path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	n, err := verifySource(flatfile.NewSource(in), opts)
	if err != nil {
		return errors.E(err, path)
	}
	if !opts.quiet {
		fmt.Fprintf(stdout, "%s: %d %s records verified\n", path, n, strings.ToUpper(opts.format))
	}
	return nil
}

// verifyBinary checks the raw bytes of path; compressed files are not
// decompressed.
func verifyBinary(ctx context.Context, path string, opts verifyOpts, stdout io.Writer) (err error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return errors.E(err, "open", path)
	}
	defer f.Close(ctx) // nolint: errcheck
	if err = verify.Binary(path, bufio.NewReader(f.Reader(ctx))); err != nil {
		return err
	}
	if !opts.quiet {
		fmt.Fprintf(stdout, "%s is probably binary\n", path)
	}
	return nil
}
