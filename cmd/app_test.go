package cmd

import (
	"strings"
	"testing"
	"time"

	portfolio "github.com/etnz/portfolio-assistant"
	"github.com/etnz/portfolio-assistant/date"
	"github.com/etnz/portfolio-assistant/timeexpr"
)

func newParser() (*date.Clock, *timeexpr.Parser) {
	today := date.New(2025, time.November, 20)
	clock := date.FixedClock(today, today)
	return clock, timeexpr.New(clock)
}

func TestParsePeriod(t *testing.T) {
	_, p := newParser()

	tests := []struct {
		args    []string
		want    string // start date, empty for no period
		wantErr bool
	}{
		{args: nil},
		{args: []string{"  "}},
		{args: []string{"yesterday"}, want: "2025-11-19"},
		{args: []string{"last", "week"}, want: "2025-11-09"},
		{args: []string{"what did I sell last month"}, want: "2025-10-01"},
		{args: []string{"the", "blue", "moon"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			q, err := parsePeriod(p, tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePeriod(%q) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			got := ""
			if q != nil {
				got = q.DateRange.StartDate.String()
			}
			if got != tt.want {
				t.Errorf("parsePeriod(%q) starts %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	clock, p := newParser()
	q, _ := p.Parse("last week")

	got := describe(clock.FormatRange, &q)
	want := `### last week

- Kind: range
- Demo dates: 2025-11-09 to 2025-11-15 (7 days)
- Spoken as: Nov 9 - Nov 15
`
	if got != want {
		t.Errorf("describe() =\n%s\nwant\n%s", got, want)
	}
}

func TestTradesFilter(t *testing.T) {
	c := &tradesCmd{symbol: "Nvidia", tradeType: "sold"}
	f, err := c.filter("DEMO-001")
	if err != nil {
		t.Fatalf("filter() error = %v", err)
	}
	if f.Account != "DEMO-001" || f.Symbol != "NVDA" || f.TradeType != portfolio.Sell {
		t.Errorf("filter() = %+v", f)
	}

	c = &tradesCmd{tradeType: "hold"}
	if _, err := c.filter("DEMO-001"); err == nil {
		t.Error("filter() with an unknown trade type succeeded")
	}
}
