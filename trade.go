package portfolio

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/etnz/portfolio-assistant/date"
)

// SecurityType classifies a traded instrument.
type SecurityType string

const (
	Stock  SecurityType = "stock"
	Option SecurityType = "option"
)

// ParseSecurityType parses a security type, case-insensitive, allowing a few synonyms.
func ParseSecurityType(s string) (SecurityType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stock", "stocks", "equity", "equities", "share", "shares":
		return Stock, nil
	case "option", "options", "contract", "contracts":
		return Option, nil
	default:
		return "", fmt.Errorf("unknown security type %q", s)
	}
}

// Unit returns the name of one unit of quantity, for sentences.
func (s SecurityType) Unit(q Quantity) string {
	unit := "share"
	if s == Option {
		unit = "contract"
	}
	if q.Equal(Q(1)) {
		return unit
	}
	return unit + "s"
}

// TradeType tells whether a trade is a purchase or a sale.
type TradeType string

const (
	Buy  TradeType = "buy"
	Sell TradeType = "sell"
)

// ParseTradeType parses a trade type, case-insensitive, allowing a few synonyms.
func ParseTradeType(s string) (TradeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "buys", "bought", "purchase", "purchases", "purchased":
		return Buy, nil
	case "sell", "sells", "sold", "sale", "sales":
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown trade type %q", s)
	}
}

// Past returns the verb in the past tense: "bought" or "sold".
func (t TradeType) Past() string {
	if t == Sell {
		return "sold"
	}
	return "bought"
}

// Trade is an executed trade of the account, as read from the row store.
type Trade struct {
	ID           int64        `json:"id"`
	Account      string       `json:"account"`
	Symbol       string       `json:"symbol"`
	Date         date.Date    `json:"date"`
	SecurityType SecurityType `json:"securityType"`
	TradeType    TradeType    `json:"tradeType"`
	Quantity     Quantity     `json:"quantity"`  // shares or contracts
	Price        Money        `json:"price"`     // per share, or premium per contract
	NetAmount    Money        `json:"netAmount"` // negative for purchases, net of fees
	Description  string       `json:"description,omitempty"`
}

// CompareTrades orders trades by date, then by id.
func CompareTrades(a, b Trade) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Gross returns price × quantity.
func (t Trade) Gross() Money { return t.Price.Mul(t.Quantity) }

// Validate checks the internal consistency of the trade.
func (t Trade) Validate() error {
	switch {
	case t.Symbol == "":
		return fmt.Errorf("trade %d: missing symbol", t.ID)
	case t.Date.IsZero():
		return fmt.Errorf("trade %d: missing date", t.ID)
	case t.SecurityType != Stock && t.SecurityType != Option:
		return fmt.Errorf("trade %d: invalid security type %q", t.ID, t.SecurityType)
	case t.TradeType != Buy && t.TradeType != Sell:
		return fmt.Errorf("trade %d: invalid trade type %q", t.ID, t.TradeType)
	case !t.Quantity.IsPositive():
		return fmt.Errorf("trade %d: quantity must be positive, got %v", t.ID, t.Quantity)
	case t.Price.IsNegative():
		return fmt.Errorf("trade %d: price must not be negative, got %v", t.ID, t.Price)
	}
	return nil
}

// Split separates buys and sells, preserving the order.
func Split(trades []Trade) (buys, sells []Trade) {
	for _, t := range trades {
		switch t.TradeType {
		case Buy:
			buys = append(buys, t)
		case Sell:
			sells = append(sells, t)
		}
	}
	return buys, sells
}
