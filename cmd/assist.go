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
	"google.golang.org/genai"
)

const assistModel = "gemini-2.5-flash"

const assistInstruction = `You are assisting an operator of a claim ledger
reconciliation tool. You are given a run report in markdown: corrections are
rows where the balance reported by the source system disagreed with the value
reconstructed from the transaction history and was overwritten. Explain in a
few short paragraphs what happened in this run, which accounts deserve a
closer look, and any pattern you notice in the deltas. Do not restate the
whole table.`

// assistCmd holds the flags for the 'assist' subcommand.
type assistCmd struct {
	config string
}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "explain a run report with the help of the AI assistant"
}
func (*assistCmd) Usage() string {
	return `clm assist <input>

  Runs the reconciliation on the input file and asks Gemini for a
  plain-language reading of the correction report. Requires the GEMINI_API_KEY
  environment variable.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "config", "clm.toml", "Path to the config file")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: assist takes exactly one input file")
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

	result, _ := claimledger.Run(records, claimledger.Options{
		Workers: cfg.Workers,
		Logger:  logger.Nop(),
	})
	if result == nil {
		fmt.Fprintln(os.Stderr, "Error: nothing to explain")
		return subcommands.ExitFailure
	}
	report := renderer.Report(result.Report)

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(assistInstruction, genai.RoleUser),
	}
	chat, err := client.Chats.Create(ctx, assistModel, config, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error starting assistant session:", err)
		return subcommands.ExitFailure
	}

	resp, err := chat.Send(ctx, &genai.Part{Text: report})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error asking assistant:", err)
		return subcommands.ExitFailure
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no response from assistant")
		return subcommands.ExitFailure
	}

	printMarkdown(report)
	printMarkdown(resp.Candidates[0].Content.Parts[0].Text)
	return subcommands.ExitSuccess
}
