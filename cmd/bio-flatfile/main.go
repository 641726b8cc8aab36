package main

/*
bio-flatfile reads, verifies and post-processes bioinformatics flat files:
FASTA, FASTQ, GFF3, BLAST+ tabular (B6/M8) and SAM text.
*/

import (
	"github.com/grailbio/bioflat/cmd/bio-flatfile/cmd"
)

func main() {
	cmd.Run()
}
