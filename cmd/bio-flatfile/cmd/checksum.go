package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"hash"
	"io"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/unsafe"
	"github.com/grailbio/bioflat/encoding/b6"
	"github.com/grailbio/bioflat/encoding/fasta"
	"github.com/grailbio/bioflat/encoding/fastq"
	"github.com/grailbio/bioflat/encoding/flatfile"
	"github.com/grailbio/bioflat/encoding/gff3"
	"github.com/grailbio/bioflat/encoding/sam"
)

// fileChecksum summarizes the records of a file.  Sums of per-record hashes
// are commutative, so the checksum does not depend on record order, and
// records are hashed in their normalized serialization, so a file and its
// round-tripped copy have the same checksum.
type fileChecksum struct {
	// Format is the file format.
	Format string
	// NRecs is the number of records.
	NRecs int64
	// SumRecords is the sum of the seahash of each serialized record.
	SumRecords uint64
	// SumIDs is the sum of the seahash of each record's identifying field.
	SumIDs uint64
}

func (c *fileChecksum) add(h hash.Hash64, id, record string) {
	c.NRecs++
	h.Reset()
	h.Write(unsafe.StringToBytes(id)) // nolint: errcheck
	c.SumIDs += h.Sum64()
	h.Reset()
	h.Write(unsafe.StringToBytes(record)) // nolint: errcheck
	c.SumRecords += h.Sum64()
}

func checksumSource(src flatfile.Source, format, columns string) (fileChecksum, error) {
	csum := fileChecksum{Format: format}
	h := seahash.New()
	switch format {
	case "fasta":
		s := fasta.NewScanner(src, fasta.Opts{})
		var rec fasta.Record
		for s.Scan(&rec) {
			csum.add(h, rec.ID, rec.String())
		}
		return csum, s.Err()
	case "fastq":
		s := fastq.NewScanner(src, fastq.Opts{})
		var rec fastq.Record
		for s.Scan(&rec) {
			csum.add(h, rec.ID, rec.String())
		}
		return csum, s.Err()
	case "gff3":
		s := gff3.NewScanner(src, gff3.Opts{})
		for s.Scan() {
			rec := s.Record()
			csum.add(h, rec.SeqID, rec.String())
		}
		return csum, s.Err()
	case "b6", "m8":
		s, err := b6.NewScanner(src, b6.Opts{Columns: splitColumns(columns)})
		if err != nil {
			return csum, err
		}
		for s.Scan() {
			rec := s.Record()
			csum.add(h, rec.Query.Format(b6.Missing), rec.String())
		}
		return csum, s.Err()
	case "sam":
		s := sam.NewScanner(src, sam.Opts{})
		for s.Scan() {
			rec := s.Record()
			csum.add(h, rec.QName, rec.String())
		}
		return csum, s.Err()
	}
	return csum, errors.E(errors.Invalid, fmt.Sprintf("unknown format %q", format))
}

func checksum(ctx context.Context, path, format, columns string, stdout io.Writer) error {
	in, err := openInput(ctx, path)
	if err != nil {
		return err
	}
	defer in.Close(ctx) // nolint: errcheck
	csum, err := checksumSource(flatfile.NewSource(in), format, columns)
	if err != nil {
		return errors.E(err, path)
	}
	js, err := json.MarshalIndent(csum, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(js))
	return err
}
