// Package cmd implements the CLI application of the portfolio chat assistant.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/portfolio-assistant/config"
	"github.com/etnz/portfolio-assistant/logger"
	"github.com/etnz/portfolio-assistant/store"
	"github.com/etnz/portfolio-assistant/timeexpr"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&serveCmd{}, "server")

	c.Register(&whenCmd{}, "trades")
	c.Register(&tradesCmd{}, "trades")
	c.Register(&gainsCmd{}, "trades")
	c.Register(&assistCmd{}, "trades")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var plain = flag.Bool("plain", false, "print raw markdown instead of rendering it for the terminal")

// setup loads the configuration and the logger shared by all commands.
func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("invalid configuration: %w", err)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)
	return cfg, log, nil
}

// openTrades opens the configured trade store.
func openTrades(ctx context.Context, cfg *config.Config) (store.Trades, error) {
	trades, err := store.Open(ctx, cfg.Store())
	if err != nil {
		return nil, fmt.Errorf("cannot open %s store: %w", cfg.StoreDriver, err)
	}
	return trades, nil
}

// parsePeriod reads a time period from the command arguments, nil if there is none.
func parsePeriod(p *timeexpr.Parser, args []string) (*timeexpr.Query, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return nil, nil
	}
	q, ok := p.Parse(text)
	if !ok {
		phrase, found := p.Extract(text)
		if found {
			q, ok = p.Parse(phrase)
		}
	}
	if !ok {
		return nil, fmt.Errorf("time period %q not understood", text)
	}
	return &q, nil
}

// printMarkdown renders md for the terminal.
func printMarkdown(md string) {
	if *plain {
		fmt.Println(md)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Println(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error rendering markdown:", err)
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
