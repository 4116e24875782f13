package portfolio

import (
	"cmp"
	"slices"
)

// Realized summarizes the profit and loss realized by a list of matched pairs.
type Realized struct {
	Pairs           []MatchedPair `json:"pairs"`
	Profitable      []MatchedPair `json:"profitable"` // ProfitLoss > 0, best first
	LosingCount     int           `json:"losingCount"`
	Total           Money         `json:"total"`
	ProfitableTotal Money         `json:"profitableTotal"`
	// Uncounted is the number of pairs left out of the totals, because their currency is not
	// the one of the first pair.
	Uncounted int `json:"uncounted,omitempty"`
}

// Summarize computes the realized profit and loss of pairs.
//
// Totals are in the currency of the first pair, DefaultCurrency if there is none.
func Summarize(pairs []MatchedPair) Realized {
	currency := DefaultCurrency
	if len(pairs) > 0 {
		currency = pairs[0].ProfitLoss.Currency()
	}
	r := Realized{
		Pairs:           pairs,
		Total:           M(0, currency),
		ProfitableTotal: M(0, currency),
	}
	for _, p := range pairs {
		if c := p.ProfitLoss.Currency(); c != "" && c != currency {
			r.Uncounted++
			continue
		}
		r.Total = r.Total.Add(p.ProfitLoss)
		switch {
		case p.ProfitLoss.IsPositive():
			r.Profitable = append(r.Profitable, p)
			r.ProfitableTotal = r.ProfitableTotal.Add(p.ProfitLoss)
		case p.ProfitLoss.IsNegative():
			r.LosingCount++
		}
	}
	slices.SortStableFunc(r.Profitable, func(a, b MatchedPair) int {
		if c := b.ProfitLoss.value.Cmp(a.ProfitLoss.value); c != 0 {
			return c
		}
		if c := a.SellDate.Compare(b.SellDate); c != 0 {
			return c
		}
		return cmp.Compare(a.BuyID, b.BuyID)
	})
	return r
}

// Top returns at most n of the most profitable pairs. Counts and totals of r are unaffected.
func (r Realized) Top(n int) []MatchedPair {
	if n < 0 || n >= len(r.Profitable) {
		return r.Profitable
	}
	return r.Profitable[:n]
}

// ProfitableCount returns the number of pairs that realized a profit.
func (r Realized) ProfitableCount() int { return len(r.Profitable) }
