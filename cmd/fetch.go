package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/aifis/claimledger"
	"github.com/google/subcommands"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	config string
	url    string
}

func (*fetchCmd) Name() string { return "fetch" }
func (*fetchCmd) Synopsis() string {
	return "cross-check a ledger file against the balances currently reported by the source system"
}
func (*fetchCmd) Usage() string {
	return `clm fetch [-url <endpoint>] <input>

  For every account in the input file, fetches the balance snapshot the
  source system currently reports and compares it with the last reported
  values of the ledger. The endpoint and the jsonpath expressions locating
  the two balances in the response come from the config file; "{account}" in
  the endpoint is replaced by the account number.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "config", "clm.toml", "Path to the config file")
	f.StringVar(&c.url, "url", "", "Snapshot endpoint. Overrides the config value.")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: fetch takes exactly one input file")
		return subcommands.ExitUsageError
	}

	cfg, err := LoadConfig(c.config)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	url := cfg.Feed.URL
	if c.url != "" {
		url = c.url
	}
	if url == "" {
		fmt.Fprintln(os.Stderr, "Error: no snapshot endpoint configured, set feed.url or pass -url")
		return subcommands.ExitUsageError
	}

	records, err := readRecords(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	feed := claimledger.NewFeed(url, cfg.Feed.OutstandingPath, cfg.Feed.PrincipalPath)

	status := subcommands.ExitSuccess
	for account, last := range lastByAccount(records) {
		snapshot, err := feed.Fetch(account)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			status = subcommands.ExitFailure
			continue
		}
		mismatches := snapshot.Verify(last)
		if len(mismatches) == 0 {
			fmt.Printf("%s: in sync\n", account)
			continue
		}
		for _, m := range mismatches {
			delta, _ := m.Delta()
			fmt.Printf("%s: %s balance drifted by %s\n", account, m.Kind, delta)
		}
	}
	return status
}

// lastByAccount returns the last row of each account in the file, the one
// carrying the account's final reported state.
func lastByAccount(records []claimledger.Record) map[string]claimledger.Record {
	last := make(map[string]claimledger.Record)
	for _, r := range records {
		prev, ok := last[r.Account]
		if !ok || !r.Date.Before(prev.Date) {
			last[r.Account] = r
		}
	}
	return last
}
