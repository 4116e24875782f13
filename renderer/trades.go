package renderer

import (
	"fmt"
	"strings"

	portfolio "github.com/etnz/portfolio-assistant"
	"github.com/etnz/portfolio-assistant/date"
	"github.com/etnz/portfolio-assistant/timeexpr"
)

// spokenTrades is the number of trades read out loud, the others are only counted.
const spokenTrades = 3

// TradeList is the view model of a list of trades.
type TradeList struct {
	Title  string
	Period string
	When   string
	Symbol string
	Rows   []TradeRow
}

// TradeRow is a single trade, formatted for display.
type TradeRow struct {
	Date     string // relative to today, e.g. "Yesterday" or "Nov 3"
	Action   string // Bought or Sold
	Symbol   string
	Quantity string
	Unit     string // shares or contracts
	Price    string
	Amount   string
}

// NewTradeList builds the view model of trades made over q, optionally restricted to a symbol.
// Trades must be in demo coordinates.
func NewTradeList(clock *date.Clock, symbol string, q *timeexpr.DateRange, trades []portfolio.Trade) *TradeList {
	l := &TradeList{
		Period: period(clock, q),
		Symbol: symbol,
	}
	if q != nil {
		l.When = When(q.Description)
	}
	l.Title = capitalize(strings.TrimSpace(strings.Join([]string{symbol, "trades", l.When}, " ")))

	for _, t := range trades {
		l.Rows = append(l.Rows, TradeRow{
			Date:     relative(clock, t.Date),
			Action:   capitalize(t.TradeType.Past()),
			Symbol:   t.Symbol,
			Quantity: t.Quantity.String(),
			Unit:     t.SecurityType.Unit(t.Quantity),
			Price:    t.Price.String(),
			Amount:   t.NetAmount.SignedString(),
		})
	}
	return l
}

// Speech returns the answer as it is said to the user.
func (l *TradeList) Speech() string {
	var b strings.Builder
	subject := "trade"
	if l.Symbol != "" {
		subject = l.Symbol + " trade"
	}
	if len(l.Rows) == 0 {
		fmt.Fprintf(&b, "You made no %ss", subject)
	} else {
		fmt.Fprintf(&b, "You made %s", plural(len(l.Rows), subject))
	}
	if l.When != "" {
		fmt.Fprintf(&b, " %s", l.When)
	}
	if len(l.Rows) == 0 {
		b.WriteString(".")
		return b.String()
	}

	var said []string
	for i, r := range l.Rows {
		if i == spokenTrades {
			break
		}
		said = append(said, fmt.Sprintf("you %s %s %s of %s at %s %s",
			strings.ToLower(r.Action), r.Quantity, r.Unit, r.Symbol, r.Price, spokenOn(r.Date)))
	}
	fmt.Fprintf(&b, ": %s", join(said))
	if more := len(l.Rows) - len(said); more > 0 {
		fmt.Fprintf(&b, ", and %d more", more)
	}
	b.WriteString(".")
	return b.String()
}
