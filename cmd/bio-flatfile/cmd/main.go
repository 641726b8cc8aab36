package cmd

import (
	"fmt"
	"strings"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bioflat/blast"
	"github.com/grailbio/bioflat/encoding/fastq"
	"v.io/x/lib/cmdline"
)

const formatsHelp = `fasta, fastq, gff3, b6 (or m8), or sam`

const columnsHelp = `B6 column layout, as BLAST+ -outfmt specifiers separated by spaces or commas,
e.g. "qseqid sseqid evalue staxids". By default the twelve standard columns.`

func newCmdVerify() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "verify",
		Short:    "Check that files are well-formed",
		ArgsName: "format path...",
		ArgsLong: `format is ` + formatsHelp + `, or binary to check that a file is
probably not text. Each path is read in full; the first violation is reported
with its record ID or line number.`,
	}
	opts := verifyOpts{}
	cmd.Flags.BoolVar(&opts.quiet, "quiet", false, "Print nothing for files that verify")
	cmd.Flags.BoolVar(&opts.ambiguous, "ambiguous", false, "Permit IUPAC ambiguity codes in FASTA and FASTQ sequences")
	cmd.Flags.StringVar(&opts.columns, "columns", "", columnsHelp)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) < 2 {
			return fmt.Errorf("verify takes a format and one or more paths, but got %v", argv)
		}
		ctx := vcontext.Background()
		opts.format = strings.ToLower(argv[0])
		for _, path := range argv[1:] {
			var err error
			if opts.format == "binary" {
				err = verifyBinary(ctx, path, opts, env.Stdout)
			} else {
				err = verifyFile(ctx, path, opts, env.Stdout)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	return cmd
}

func newCmdFilterEValue() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "filter-evalue",
		Short:    "Keep the B6/M8 rows whose E-value is at most a cutoff",
		ArgsName: "b6path [outpath]",
	}
	maxEValue := cmd.Flags.Float64("max", 1e-5, "Largest E-value kept")
	columns := cmd.Flags.String("columns", "", columnsHelp)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) < 1 || len(argv) > 2 {
			return fmt.Errorf("filter-evalue takes b6path [outpath], but got %v", argv)
		}
		outPath := ""
		if len(argv) == 2 {
			outPath = argv[1]
		}
		return filterEValue(vcontext.Background(), argv[0], outPath, *maxEValue, *columns)
	})
	return cmd
}

func newCmdExtract() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "extract",
		Short:    "Extract the aligned regions of BLAST query or subject sequences",
		ArgsName: "seqpath b6path [outpath]",
		ArgsLong: `seqpath is the FASTA or FASTQ file of query or subject sequences. For each
B6/M8 row whose E-value is at most -max-evalue, the aligned region of the
matching sequence is written with its E-value appended to the description.`,
	}
	side := cmd.Flags.String("side", "query", "Which sequences seqpath holds: query or subject")
	format := cmd.Flags.String("format", "fasta", "Format of seqpath: fasta or fastq")
	maxEValue := cmd.Flags.Float64("max-evalue", 1e-5, "Largest E-value of the alignments used")
	columns := cmd.Flags.String("columns", "", columnsHelp)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) < 2 || len(argv) > 3 {
			return fmt.Errorf("extract takes seqpath b6path [outpath], but got %v", argv)
		}
		opts := extractOpts{format: *format, maxEValue: *maxEValue, columns: *columns}
		switch *side {
		case "query":
			opts.side = blast.Query
		case "subject":
			opts.side = blast.Subject
		default:
			return fmt.Errorf("extract: -side must be query or subject, but got %q", *side)
		}
		outPath := ""
		if len(argv) == 3 {
			outPath = argv[2]
		}
		return extract(vcontext.Background(), argv[0], argv[1], outPath, opts)
	})
	return cmd
}

func newCmdOverlap() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "overlap",
		Short:    "Keep the GFF3 features that overlap a region",
		ArgsName: "gffpath region [outpath]",
		ArgsLong: `region is <seq ID>:<1-based first pos>-<last pos>, <seq ID>:<1-based pos>,
or just <seq ID>.`,
	}
	strand := cmd.Flags.String("strand", "", "If set to + or -, drop features on the other strand")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) < 2 || len(argv) > 3 {
			return fmt.Errorf("overlap takes gffpath region [outpath], but got %v", argv)
		}
		outPath := ""
		if len(argv) == 3 {
			outPath = argv[2]
		}
		return overlap(vcontext.Background(), argv[0], outPath, argv[1], *strand)
	})
	return cmd
}

func newCmdDownsample() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "downsample",
		Short:    "Randomly sample read pairs from paired FASTQ files",
		ArgsName: "r1path r2path r1out r2out",
	}
	rate := cmd.Flags.Float64("rate", 0.1, "Fraction of read pairs kept, in [0, 1]")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 4 {
			return fmt.Errorf("downsample takes r1path r2path r1out r2out, but got %v", argv)
		}
		ctx := vcontext.Background()
		var e errors.Once
		r1In, err := openInput(ctx, argv[0])
		if err != nil {
			return err
		}
		defer r1In.Close(ctx) // nolint: errcheck
		r2In, err := openInput(ctx, argv[1])
		if err != nil {
			return err
		}
		defer r2In.Close(ctx) // nolint: errcheck
		r1Out, err := createOutput(ctx, argv[2])
		if err != nil {
			return err
		}
		r2Out, err := createOutput(ctx, argv[3])
		if err != nil {
			e.Set(r1Out.Close(ctx))
			return err
		}
		e.Set(fastq.Downsample(*rate, r1In, r2In, r1Out, r2Out))
		e.Set(r1Out.Close(ctx))
		e.Set(r2Out.Close(ctx))
		return e.Err()
	})
	return cmd
}

func newCmdChecksum() *cmdline.Command {
	cmd := &cmdline.Command{
		Name: "checksum",
		Short: `Compute an order-independent checksum of the records of a file.
The checksum is a JSON string; a file and its normalized copy have the same checksum`,
		ArgsName: "format path",
	}
	columns := cmd.Flags.String("columns", "", columnsHelp)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("checksum takes a format and a path, but found %v", argv)
		}
		return checksum(vcontext.Background(), argv[1], strings.ToLower(argv[0]), *columns, env.Stdout)
	})
	return cmd
}

// Run runs the bio-flatfile command line.
func Run() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-flatfile",
			Short:    "Tools for FASTA, FASTQ, GFF3, B6/M8 and SAM text files",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdVerify(),
				newCmdFilterEValue(),
				newCmdExtract(),
				newCmdOverlap(),
				newCmdDownsample(),
				newCmdChecksum(),
			},
		})
}
