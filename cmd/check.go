package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/aifis/claimledger"
	"github.com/aifis/claimledger/logger"
	"github.com/aifis/claimledger/renderer"
	"github.com/google/subcommands"
)

// checkCmd holds the flags for the 'check' subcommand.
type checkCmd struct {
	config  string
	strict  bool
	verbose bool
}

func (*checkCmd) Name() string { return "check" }
func (*checkCmd) Synopsis() string {
	return "report balance discrepancies in a transaction master file without writing anything"
}
func (*checkCmd) Usage() string {
	return `clm check [-strict] [-v] <input>

  Replays every account's transaction history and reports the rows whose
  reported outstanding or principal balance disagrees with the reconstructed
  value. Nothing is written; with -strict the exit status is non-zero when
  any discrepancy is found.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "config", "clm.toml", "Path to the config file")
	f.BoolVar(&c.strict, "strict", false, "Exit with a failure status when discrepancies are found")
	f.BoolVar(&c.verbose, "v", false, "Log per-account progress to stderr")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: check takes exactly one input file")
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

	result, runErr := claimledger.Run(records, claimledger.Options{
		Workers: cfg.Workers,
		Logger:  log,
	})
	if result == nil {
		fmt.Fprintln(os.Stderr, "Error:", runErr)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Report(result.Report))

	if runErr != nil {
		return subcommands.ExitFailure
	}
	if c.strict && result.Report.Corrected() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
