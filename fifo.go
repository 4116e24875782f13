package portfolio

import (
	"maps"
	"slices"

	"github.com/etnz/portfolio-assistant/date"
)

// MatchedPair is a buy matched with a later sell, and the profit or loss it realized.
type MatchedPair struct {
	SecurityType  SecurityType `json:"securityType"`
	Symbol        string       `json:"symbol"`
	BuyID         int64        `json:"buyId"`
	SellID        int64        `json:"sellId"`
	BuyDate       date.Date    `json:"buyDate"`
	SellDate      date.Date    `json:"sellDate"`
	Quantity      Quantity     `json:"quantity"` // lot size, from the buy
	BuyPrice      Money        `json:"buyPrice"`
	SellPrice     Money        `json:"sellPrice"`
	ProfitLoss    Money        `json:"profitLoss"`    // (sell price - buy price) × quantity
	NetProfitLoss Money        `json:"netProfitLoss"` // sell net amount + buy net amount
}

// securityTypes is the order in which partitions are matched.
var securityTypes = []SecurityType{Stock, Option}

// MatchFIFO pairs buys and sells first-in-first-out, independently for each security type.
//
// Each sell, in chronological order, is matched with the earliest unmatched buy dated on or
// before it, in the same currency. A buy dated after a sell can never be matched with it. A sell without an eligible
// buy (open short position or missing data) is left unmatched.
//
// Inputs are expected to be for a single symbol and account. They are ordered by (date, id) on
// copies, so the result only depends on their content.
func MatchFIFO(buys, sells []Trade) []MatchedPair {
	buys = sorted(buys)
	sells = sorted(sells)

	var pairs []MatchedPair
	for _, st := range partitions(buys, sells) {
		pairs = append(pairs, matchFIFO(filter(buys, st), filter(sells, st))...)
	}
	return pairs
}

// matchFIFO matches trades of a single security type, sorted by (date, id).
func matchFIFO(buys, sells []Trade) []MatchedPair {
	matched := make([]bool, len(buys))
	var pairs []MatchedPair
	for _, sell := range sells {
		for i, buy := range buys {
			if matched[i] {
				continue
			}
			if buy.Date.After(sell.Date) {
				// buys are sorted, none of the next ones is eligible.
				break
			}
			if buy.Price.Currency() != sell.Price.Currency() {
				continue
			}
			matched[i] = true
			pairs = append(pairs, newPair(buy, sell))
			break
		}
	}
	return pairs
}

func newPair(buy, sell Trade) MatchedPair {
	return MatchedPair{
		SecurityType:  buy.SecurityType,
		Symbol:        buy.Symbol,
		BuyID:         buy.ID,
		SellID:        sell.ID,
		BuyDate:       buy.Date,
		SellDate:      sell.Date,
		Quantity:      buy.Quantity,
		BuyPrice:      buy.Price,
		SellPrice:     sell.Price,
		ProfitLoss:    sell.Price.Sub(buy.Price).Mul(buy.Quantity),
		NetProfitLoss: sell.NetAmount.Add(buy.NetAmount),
	}
}

// partitions returns the security types present, the known ones first, then any other in
// lexical order.
func partitions(trades ...[]Trade) []SecurityType {
	var others []SecurityType
	for _, ts := range trades {
		for _, t := range ts {
			if !slices.Contains(securityTypes, t.SecurityType) && !slices.Contains(others, t.SecurityType) {
				others = append(others, t.SecurityType)
			}
		}
	}
	slices.Sort(others)
	return append(slices.Clone(securityTypes), others...)
}

func filter(trades []Trade, st SecurityType) []Trade {
	var res []Trade
	for _, t := range trades {
		if t.SecurityType == st {
			res = append(res, t)
		}
	}
	return res
}

func sorted(trades []Trade) []Trade {
	trades = slices.Clone(trades)
	slices.SortStableFunc(trades, CompareTrades)
	return trades
}

// MatchBySymbol matches the buys and sells of trades FIFO, symbol by symbol in alphabetical order.
func MatchBySymbol(trades []Trade) []MatchedPair {
	bySymbol := make(map[string][]Trade)
	for _, t := range trades {
		bySymbol[t.Symbol] = append(bySymbol[t.Symbol], t)
	}
	symbols := slices.Sorted(maps.Keys(bySymbol))

	var pairs []MatchedPair
	for _, s := range symbols {
		pairs = append(pairs, MatchFIFO(Split(bySymbol[s]))...)
	}
	return pairs
}

// SoldIn keeps the pairs whose sell is in r.
func SoldIn(pairs []MatchedPair, r date.Range) []MatchedPair {
	var res []MatchedPair
	for _, p := range pairs {
		if r.Contains(p.SellDate) {
			res = append(res, p)
		}
	}
	return res
}
