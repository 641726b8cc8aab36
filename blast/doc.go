// Package blast post-processes BLAST+ tabular (B6/M8) output: it collects
// hits by query or subject, extracts the aligned regions from the
// corresponding FASTA or FASTQ records, and converts pairwise BLAST
// alignments into SAM CIGARs.
package blast
