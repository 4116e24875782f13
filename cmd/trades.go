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

// tradesCmd holds the flags for the 'trades' subcommand.
type tradesCmd struct {
	symbol    string
	tradeType string
	speak     bool
}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "list the trades made over a time period" }
func (*tradesCmd) Usage() string {
	return `pca trades [-s <symbol>] [-t buy|sell] [-speak] <time period>

  Lists the trades made over a time period like "last week" or "the past 5 trading days".
`
}

func (c *tradesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "symbol or company name to restrict the list to")
	f.StringVar(&c.tradeType, "t", "", "trade type to restrict the list to (buy, sell)")
	f.BoolVar(&c.speak, "speak", false, "print the spoken answer instead of the table")
}

func (c *tradesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if q == nil {
		fmt.Fprintln(os.Stderr, "missing time period")
		return subcommands.ExitUsageError
	}
	filter, err := c.filter(cfg.Account)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	db, err := openTrades(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	trades, err := db.List(ctx, filter.InRange(q.DateRange.Range()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing trades: %v\n", err)
		return subcommands.ExitFailure
	}

	view := renderer.NewTradeList(clock, filter.Symbol, &q.DateRange, trades)
	if c.speak {
		fmt.Println(view.Speech())
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderTrades(view))
	return subcommands.ExitSuccess
}

func (c *tradesCmd) filter(account string) (store.Filter, error) {
	f := store.Filter{Account: account}
	if c.symbol != "" {
		symbol, ok := portfolio.NormalizeSymbol(c.symbol)
		if !ok {
			return f, fmt.Errorf("invalid symbol %q", c.symbol)
		}
		f.Symbol = symbol
	}
	if c.tradeType != "" {
		tt, err := portfolio.ParseTradeType(c.tradeType)
		if err != nil {
			return f, err
		}
		f.TradeType = tt
	}
	return f, nil
}
