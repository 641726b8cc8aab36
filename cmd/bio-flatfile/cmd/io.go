package cmd

import (
	"context"
	"io"
	"os"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/klauspost/compress/gzip"
)

// input is an open input file, decompressed if its name ends in ".gz".
type input struct {
	f file.File
	io.Reader
	gz *gzip.Reader
}

func openInput(ctx context.Context, path string) (*input, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open", path)
	}
	in := &input{f: f, Reader: f.Reader(ctx)}
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if in.gz, err = gzip.NewReader(in.Reader); err != nil {
			f.Close(ctx) // nolint: errcheck
			return nil, errors.E(err, "gunzip", path)
		}
		in.Reader = in.gz
	}
	return in, nil
}

func (in *input) Close(ctx context.Context) error {
	var err errors.Once
	if in.gz != nil {
		err.Set(in.gz.Close())
	}
	err.Set(in.f.Close(ctx))
	return err.Err()
}

// output is an output file, or the process's standard output if the path is
// empty or "-".
type output struct {
	f file.File
	io.Writer
}

func createOutput(ctx context.Context, path string) (*output, error) {
	if path == "" || path == "-" {
		return &output{Writer: os.Stdout}, nil
	}
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, errors.E(err, "create", path)
	}
	return &output{f: f, Writer: f.Writer(ctx)}, nil
}

func (out *output) Close(ctx context.Context) error {
	if out.f == nil {
		return nil
	}
	return out.f.Close(ctx)
}
