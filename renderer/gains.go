package renderer

import (
	"fmt"
	"strings"

	portfolio "github.com/etnz/portfolio-assistant"
	"github.com/etnz/portfolio-assistant/date"
	"github.com/etnz/portfolio-assistant/timeexpr"
)

// Gains is the view model of a realized profit and loss report.
type Gains struct {
	Title      string
	Period     string
	When       string
	Symbol     string
	Closed     int
	Profitable int
	Losing     int
	Total      string
	Top        []GainRow

	total portfolio.Money
	best  *GainRow
}

// GainRow is a matched buy/sell pair, formatted for display.
type GainRow struct {
	Symbol     string
	Quantity   string
	Unit       string
	Bought     string
	Sold       string
	BuyPrice   string
	SellPrice  string
	ProfitLoss string

	profitLoss portfolio.Money
}

// NewGains builds the view model of the realized gains r, listing at most top profitable pairs.
// q is the period the sells were restricted to, nil for all time.
func NewGains(clock *date.Clock, symbol string, q *timeexpr.DateRange, r portfolio.Realized, top int) *Gains {
	g := &Gains{
		Period:     period(clock, q),
		Symbol:     symbol,
		Closed:     len(r.Pairs),
		Profitable: r.ProfitableCount(),
		Losing:     r.LosingCount,
		Total:      r.Total.SignedString(),
		total:      r.Total,
	}
	if q != nil {
		g.When = When(q.Description)
	}
	title := []string{"Realized gains"}
	if symbol != "" {
		title = append(title, "on", symbol)
	}
	if g.When != "" {
		title = append(title, g.When)
	}
	g.Title = strings.Join(title, " ")

	for _, p := range r.Top(top) {
		g.Top = append(g.Top, GainRow{
			Symbol:     p.Symbol,
			Quantity:   p.Quantity.String(),
			Unit:       p.SecurityType.Unit(p.Quantity),
			Bought:     relative(clock, p.BuyDate),
			Sold:       relative(clock, p.SellDate),
			BuyPrice:   p.BuyPrice.String(),
			SellPrice:  p.SellPrice.String(),
			ProfitLoss: p.ProfitLoss.SignedString(),
			profitLoss: p.ProfitLoss,
		})
	}
	if len(g.Top) > 0 {
		g.best = &g.Top[0]
	}
	return g
}

// Speech returns the answer as it is said to the user.
func (g *Gains) Speech() string {
	var b strings.Builder
	subject := "position"
	if g.Symbol != "" {
		subject = g.Symbol + " position"
	}
	if g.Closed == 0 {
		b.WriteString("You have no closed " + subject + "s")
		if g.When != "" {
			b.WriteString(" " + g.When)
		}
		b.WriteString(".")
		return b.String()
	}

	fmt.Fprintf(&b, "You closed %s", plural(g.Closed, subject))
	if g.When != "" {
		b.WriteString(" " + g.When)
	}
	switch g.total.Sign() {
	case 1:
		fmt.Fprintf(&b, ", for a total realized profit of %s.", g.total.Spoken())
	case -1:
		fmt.Fprintf(&b, ", for a total realized loss of %s.", g.total.Neg().Spoken())
	default:
		b.WriteString(", and broke even.")
	}

	switch {
	case g.Profitable == 0:
		b.WriteString(" None of them was profitable.")
	case g.Profitable == g.Closed && g.Closed > 1:
		b.WriteString(" All of them were profitable.")
	case g.Closed > 1:
		verb := "were"
		if g.Profitable == 1 {
			verb = "was"
		}
		fmt.Fprintf(&b, " %d of them %s profitable.", g.Profitable, verb)
	}

	if p := g.best; p != nil {
		fmt.Fprintf(&b, " Your best trade: you bought %s %s %s %s at %s and sold them %s at %s, a gain of %s.",
			p.Quantity, p.Symbol, p.Unit, spokenOn(p.Bought), p.BuyPrice, spokenOn(p.Sold), p.SellPrice, p.profitLoss.Spoken())
	}
	return b.String()
}
