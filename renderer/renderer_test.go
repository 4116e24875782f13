package renderer

import (
	"strings"
	"testing"
	"time"

	portfolio "github.com/etnz/portfolio-assistant"
	"github.com/etnz/portfolio-assistant/date"
	"github.com/etnz/portfolio-assistant/timeexpr"
)

// clock returns a clock where the demo and actual coordinates coincide, on Nov 20, 2025.
func clock() *date.Clock {
	anchor := date.New(2025, time.November, 20)
	return date.FixedClock(anchor, anchor)
}

func trade(id int64, on date.Date, tt portfolio.TradeType, qty, price float64) portfolio.Trade {
	net := portfolio.USD(price).Mul(portfolio.Q(qty))
	if tt == portfolio.Buy {
		net = net.Neg()
	}
	return portfolio.Trade{
		ID: id, Account: "DEMO-001", Symbol: "AAPL", Date: on, SecurityType: portfolio.Stock, TradeType: tt,
		Quantity: portfolio.Q(qty), Price: portfolio.USD(price), NetAmount: net,
	}
}

// aapl returns the AAPL trades of the demo account.
func aapl() []portfolio.Trade {
	return []portfolio.Trade{
		trade(1, date.New(2025, time.August, 4), portfolio.Buy, 50, 203.35),
		trade(4, date.New(2025, time.September, 2), portfolio.Sell, 50, 229.72),
		trade(7, date.New(2025, time.September, 30), portfolio.Buy, 100, 171.20),
		trade(12, date.New(2025, time.October, 28), portfolio.Sell, 100, 189.70),
		trade(17, date.New(2025, time.November, 10), portfolio.Buy, 25, 269.43),
		trade(22, date.New(2025, time.November, 19), portfolio.Sell, 25, 268.56),
	}
}

func TestRenderTrades(t *testing.T) {
	q := &timeexpr.DateRange{
		StartDate:   date.New(2025, time.November, 10),
		EndDate:     date.New(2025, time.November, 19),
		Description: "last 10 days",
		DayCount:    10,
	}
	l := NewTradeList(clock(), "AAPL", q, aapl()[4:])

	want := "### AAPL trades in the last 10 days\n\n" +
		"_Nov 10 - Nov 19_\n\n" +
		"| Date | Action | Symbol | Quantity | Price | Net Amount |\n" +
		"|:---|:---|:---|---:|---:|---:|\n" +
		"| Nov 10 | Bought | AAPL | 25 shares | $269.43 | -$6,735.75 |\n" +
		"| Yesterday | Sold | AAPL | 25 shares | $268.56 | +$6,714.00 |\n"
	if got := RenderTrades(l); got != want {
		t.Errorf("RenderTrades() =\n%s\nwant\n%s", got, want)
	}

	speech := "You made 2 AAPL trades in the last 10 days: you bought 25 shares of AAPL at $269.43 on Nov 10 " +
		"and you sold 25 shares of AAPL at $268.56 yesterday."
	if got := l.Speech(); got != speech {
		t.Errorf("Speech() = %q, want %q", got, speech)
	}
}

func TestRenderTrades_None(t *testing.T) {
	q := &timeexpr.DateRange{
		StartDate:   date.New(2025, time.November, 9),
		EndDate:     date.New(2025, time.November, 15),
		Description: "last week",
		DayCount:    7,
	}
	l := NewTradeList(clock(), "", q, nil)

	want := "### Trades last week\n\n_Nov 9 - Nov 15_\n\nNo trades.\n"
	if got := RenderTrades(l); got != want {
		t.Errorf("RenderTrades() = %q, want %q", got, want)
	}
	if got, want := l.Speech(), "You made no trades last week."; got != want {
		t.Errorf("Speech() = %q, want %q", got, want)
	}
}

func TestSpeech_ListsAtMostThreeTrades(t *testing.T) {
	l := NewTradeList(clock(), "AAPL", nil, aapl())
	got := l.Speech()
	if !strings.HasPrefix(got, "You made 6 AAPL trades: ") || !strings.HasSuffix(got, ", and 3 more.") {
		t.Errorf("Speech() = %q", got)
	}
	if n := strings.Count(got, "you "); n != 3 {
		t.Errorf("Speech() reads %d trades, want 3: %q", n, got)
	}
}

func TestRenderGains(t *testing.T) {
	r := portfolio.Summarize(portfolio.MatchFIFO(portfolio.Split(aapl())))
	g := NewGains(clock(), "AAPL", nil, r, 3)

	want := "### Realized gains on AAPL\n\n" +
		"| Closed positions | Profitable | Losing | Realized P/L |\n" +
		"|---:|---:|---:|---:|\n" +
		"| 3 | 2 | 1 | +$3,146.75 |\n" +
		"\n" +
		"#### Top 2 profitable trades\n\n" +
		"| Symbol | Quantity | Bought | Sold | Buy Price | Sell Price | P/L |\n" +
		"|:---|---:|:---|:---|---:|---:|---:|\n" +
		"| AAPL | 100 shares | Sep 30 | Oct 28 | $171.20 | $189.70 | +$1,850.00 |\n" +
		"| AAPL | 50 shares | Aug 4 | Sep 2 | $203.35 | $229.72 | +$1,318.50 |\n"
	if got := RenderGains(g); got != want {
		t.Errorf("RenderGains() =\n%s\nwant\n%s", got, want)
	}

	speech := "You closed 3 AAPL positions, for a total realized profit of $3,146.75. 2 of them were profitable. " +
		"Your best trade: you bought 100 AAPL shares on Sep 30 at $171.20 and sold them on Oct 28 at $189.70, a gain of $1,850.00."
	if got := g.Speech(); got != speech {
		t.Errorf("Speech() = %q, want %q", got, speech)
	}
}

func TestGainsSpeech(t *testing.T) {
	lastWeek := &timeexpr.DateRange{Description: "last week"}
	loss := []portfolio.Trade{
		trade(17, date.New(2025, time.November, 10), portfolio.Buy, 25, 269.43),
		trade(22, date.New(2025, time.November, 19), portfolio.Sell, 25, 268.56),
	}
	tests := []struct {
		name   string
		trades []portfolio.Trade
		q      *timeexpr.DateRange
		want   string
	}{
		{
			name: "nothing closed",
			q:    lastWeek,
			want: "You have no closed AAPL positions last week.",
		},
		{
			name:   "a single loss",
			trades: loss,
			want:   "You closed 1 AAPL position, for a total realized loss of $21.75. None of them was profitable.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := portfolio.Summarize(portfolio.MatchFIFO(portfolio.Split(tt.trades)))
			if got := NewGains(clock(), "AAPL", tt.q, r, 3).Speech(); got != tt.want {
				t.Errorf("Speech() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderClarification(t *testing.T) {
	c := &Clarification{Message: "Which period?", Examples: []string{"last week", "yesterday"}}
	want := "Which period?\n\nTry for example:\n\n- \"last week\"\n- \"yesterday\"\n"
	if got := RenderClarification(c); got != want {
		t.Errorf("RenderClarification() = %q, want %q", got, want)
	}
	if got := NewClarification().Speech(); !strings.Contains(got, `"last week"`) {
		t.Errorf("Speech() = %q, want examples", got)
	}
}

func TestWhen(t *testing.T) {
	tests := map[string]string{
		"":                    "",
		"today":               "today",
		"last week":           "last week",
		"this month":          "this month",
		"last 7 days":         "in the last 7 days",
		"last 1 day":          "in the last 1 day",
		"last 5 trading days": "in the last 5 trading days",
		"Monday":              "on Monday",
		"November 18th":       "on November 18th",
	}
	for in, want := range tests {
		if got := When(in); got != want {
			t.Errorf("When(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHTML(t *testing.T) {
	got, err := HTML("### Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	for _, want := range []string{"<h3>Title</h3>", "<table>", "<td>1</td>"} {
		if !strings.Contains(got, want) {
			t.Errorf("HTML() = %q, want it to contain %q", got, want)
		}
	}
}
