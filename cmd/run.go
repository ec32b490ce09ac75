package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/aifis/claimledger"
	"github.com/aifis/claimledger/logger"
	"github.com/aifis/claimledger/renderer"
	"github.com/google/subcommands"
)

// runCmd holds the flags for the 'run' subcommand.
type runCmd struct {
	output  string
	config  string
	workers int
	verbose bool
}

func (*runCmd) Name() string { return "run" }
func (*runCmd) Synopsis() string {
	return "reconcile a transaction master file and expand it to a daily series"
}
func (*runCmd) Usage() string {
	return `clm run [-o <output>] [-w <workers>] [-v] <input>

  Reads a transaction master file (pipe-delimited .txt or .xlsx workbook),
  reconstructs the running and principal balances per account, corrects
  reported values that disagree with the transaction history, and writes the
  calendar-expanded, forward-filled result. The correction report is printed
  to stdout.

  The output format follows the output file extension. Without -o, the result
  is written next to the current directory as transaction_data_<timestamp>.txt.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to transaction_data_<timestamp>.txt")
	f.StringVar(&c.config, "config", "clm.toml", "Path to the config file")
	f.IntVar(&c.workers, "w", 0, "Concurrent account workers. Defaults to the config value.")
	f.BoolVar(&c.verbose, "v", false, "Log per-account progress to stderr")
}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: run takes exactly one input file")
		return subcommands.ExitUsageError
	}

	cfg, err := LoadConfig(c.config)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	renderer.Currency = cfg.Currency

	records, err := readRecords(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	log := logger.Nop()
	if c.verbose {
		log = logger.New()
	}
	workers := cfg.Workers
	if c.workers > 0 {
		workers = c.workers
	}

	result, runErr := claimledger.Run(records, claimledger.Options{
		Workers: workers,
		Logger:  log,
	})
	if result == nil {
		fmt.Fprintln(os.Stderr, "Error:", runErr)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Report(result.Report))

	output := c.output
	if output == "" {
		output = fmt.Sprintf("transaction_data_%s.txt", time.Now().Format("20060102_150405"))
	}
	if err := writeRecords(output, result.Records); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Wrote %d rows to %s\n", len(result.Records), output)

	// Some accounts may have been rejected; the output above still holds
	// every healthy one.
	if runErr != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
