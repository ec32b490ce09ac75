package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// convertCmd holds the flags for the 'convert' subcommand.
type convertCmd struct{}

func (*convertCmd) Name() string { return "convert" }
func (*convertCmd) Synopsis() string {
	return "convert a transaction master file between text and workbook formats"
}
func (*convertCmd) Usage() string {
	return `clm convert <input> <output>

  Re-encodes a transaction master file without touching its content. The
  formats are picked from the file extensions: .xlsx/.xls is the workbook
  format, everything else the pipe-delimited text format.
`
}

func (*convertCmd) SetFlags(f *flag.FlagSet) {}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: convert takes an input and an output file")
		return subcommands.ExitUsageError
	}

	records, err := readRecords(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := writeRecords(f.Arg(1), records); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Wrote %d rows to %s\n", len(records), f.Arg(1))
	return subcommands.ExitSuccess
}
