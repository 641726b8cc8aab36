/*
Package flatfile holds the plumbing shared by the line-oriented format

	readers in this module (fasta, fastq, gff3, b6, sam): a Source of lines,
	a Cursor that supports the single-line resume mechanism, structural
	ParseErrors, and missing-aware column values.

	A Source may already have been partly consumed by the caller.  When the
	caller has read a record's first line in order to decide which reader to
	use, it hands that line back through the reader's ResumeLine option, and
	the reader treats it exactly as if it had read the line itself.
*/
package flatfile
