// Command clm reconciles transaction master files and expands them into
// gap-free daily series.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/aifis/claimledger/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion: a no-op unless invoked by the shell completion hook.
	completion().Complete("clm")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the CLI for the shell completion library.
func completion() *complete.Command {
	files := predict.Files("*")
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"run": {
				Flags: map[string]complete.Predictor{"o": files, "config": files, "w": predict.Nothing, "v": predict.Nothing},
				Args:  files,
			},
			"check": {
				Flags: map[string]complete.Predictor{"config": files, "strict": predict.Nothing, "v": predict.Nothing},
				Args:  files,
			},
			"convert": {Args: files},
			"fetch": {
				Flags: map[string]complete.Predictor{"config": files, "url": predict.Nothing},
				Args:  files,
			},
			"assist": {
				Flags: map[string]complete.Predictor{"config": files},
				Args:  files,
			},
			"topic": {},
		},
	}
}
