package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	portfolio "github.com/etnz/portfolio-assistant"
	"github.com/etnz/portfolio-assistant/renderer"
	"github.com/etnz/portfolio-assistant/store"
	"github.com/etnz/portfolio-assistant/timeexpr"
	"github.com/google/subcommands"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	symbol string
	top    int
	speak  bool
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized profit and loss, matching sells to buys first in first out" }
func (*gainsCmd) Usage() string {
	return `pca gains [-s <symbol>] [-top <n>] [-speak] [<time period>]

  Calculates the profit and loss realized by closed positions.
  With a time period, only the sells made over the period are reported.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "symbol or company name to restrict the report to")
	f.IntVar(&c.top, "top", 3, "number of most profitable trades detailed")
	f.BoolVar(&c.speak, "speak", false, "print the spoken answer instead of the tables")
}

func (c *gainsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, _, err := setup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	clock := cfg.Clock()

	q, err := parsePeriod(timeexpr.New(clock), f.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	filter := store.Filter{Account: cfg.Account}
	if c.symbol != "" {
		symbol, ok := portfolio.NormalizeSymbol(c.symbol)
		if !ok {
			fmt.Fprintf(os.Stderr, "invalid symbol %q\n", c.symbol)
			return subcommands.ExitUsageError
		}
		filter.Symbol = symbol
	}

	db, err := openTrades(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	trades, err := db.List(ctx, filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing trades: %v\n", err)
		return subcommands.ExitFailure
	}

	pairs := portfolio.MatchBySymbol(trades)
	var dr *timeexpr.DateRange
	if q != nil {
		dr = &q.DateRange
		pairs = portfolio.SoldIn(pairs, dr.Range())
	}

	view := renderer.NewGains(clock, filter.Symbol, dr, portfolio.Summarize(pairs), c.top)
	if c.speak {
		fmt.Println(view.Speech())
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderGains(view))
	return subcommands.ExitSuccess
}
