package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/portfolio-assistant/timeexpr"
	"github.com/google/subcommands"
)

type whenCmd struct {
	rules bool
}

func (*whenCmd) Name() string     { return "when" }
func (*whenCmd) Synopsis() string { return "show the dates covered by a time period" }
func (*whenCmd) Usage() string {
	return `pca when [-rules] <time period>

  Shows the dates covered by a time period, or a sentence containing one, in the demo calendar.
`
}

func (c *whenCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.rules, "rules", false, "list the supported time phrases")
}

func (c *whenCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, _, err := setup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	clock := cfg.Clock()
	p := timeexpr.New(clock)

	if c.rules {
		var b strings.Builder
		b.WriteString("### Supported time periods\n\n")
		for _, r := range p.Rules() {
			fmt.Fprintf(&b, "- %s\n", r)
		}
		printMarkdown(b.String())
		return subcommands.ExitSuccess
	}
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "missing time period")
		return subcommands.ExitUsageError
	}

	q, err := parsePeriod(p, f.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(describe(clock.FormatRange, q))
	return subcommands.ExitSuccess
}

// describe formats q as a markdown list, actual dates are formatted by span.
func describe(span func(start, end string) (string, error), q *timeexpr.Query) string {
	dr := q.DateRange
	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n\n", dr.Description)
	fmt.Fprintf(&b, "- Kind: %s\n", q.Kind)
	fmt.Fprintf(&b, "- Demo dates: %s to %s (%d days)\n", dr.StartDate, dr.EndDate, dr.DayCount)
	if s, err := span(dr.StartDate.String(), dr.EndDate.String()); err == nil {
		fmt.Fprintf(&b, "- Spoken as: %s\n", s)
	}
	if q.DayOfWeek != "" {
		fmt.Fprintf(&b, "- Day of week: %s\n", q.DayOfWeek)
	}
	return b.String()
}
