// Command pca is the portfolio chat assistant: a webhook server for voice platforms and a CLI to
// question the trade history.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	portfolio "github.com/etnz/portfolio-assistant"
	"github.com/etnz/portfolio-assistant/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var (
	symbols = predict.Set(portfolio.KnownTickers())
	periods = predict.Set{"today", "yesterday", "last week", "this week", "last month", "this month"}
)

// completion describes the command line for shell completion.
var completion = &complete.Command{
	Sub: map[string]*complete.Command{
		"serve": {Flags: map[string]complete.Predictor{"port": predict.Nothing}},
		"when":  {Flags: map[string]complete.Predictor{"rules": predict.Nothing}, Args: periods},
		"trades": {
			Flags: map[string]complete.Predictor{"s": symbols, "t": predict.Set{"buy", "sell"}, "speak": predict.Nothing},
			Args:  periods,
		},
		"gains": {
			Flags: map[string]complete.Predictor{"s": symbols, "top": predict.Nothing, "speak": predict.Nothing},
			Args:  periods,
		},
		"assist": {Flags: map[string]complete.Predictor{"model": predict.Nothing}},
		"topic":  {Args: predict.Set{"periods", "webhooks", "configuration", "*"}},
		"help":   {},
	},
	Flags: map[string]complete.Predictor{"plain": predict.Nothing},
}

func main() {
	name := path.Base(os.Args[0])
	// exits when called by the shell to complete a command line.
	completion.Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
