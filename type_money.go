package portfolio

import (
	"encoding/json"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency of the demo account.
const DefaultCurrency = "USD"

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// USD is a helper to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// ParseMoney parses a decimal amount like "171.20" in the given currency.
func ParseMoney(s, currency string) (Money, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{value: v, cur: currency}, nil
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, like "$1,850.00".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// Spoken returns the amount the way it reads out loud: "$1,850.00" or "minus $12.50".
func (m Money) Spoken() string {
	if m.value.IsNegative() {
		return "minus " + m.Neg().String()
	}
	return m.String()
}

// SignedString returns the string representation of the money value with a sign.
func (m Money) SignedString() string {
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// Simple wrapper around money.Money

func (m Money) Currency() string     { return m.cur }
func (m Money) Equal(n Money) bool   { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool         { return m.value.IsZero() }
func (m Money) IsPositive() bool     { return m.value.IsPositive() }
func (m Money) IsNegative() bool     { return m.value.IsNegative() }
func (m Money) Sign() int            { return m.value.Sign() }
func (m Money) Neg() Money           { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(n Quantity) Money { return Money{value: m.value.Mul(n.value), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// Amount returns the value in major units.
func (m Money) Amount() decimal.Decimal { return m.value }

// AsFloat returns an approximation, for display purposes only.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// MarshalJSON writes {"amount": 1850.00, "currency": "USD"}, rounded to the currency fraction.
func (m Money) MarshalJSON() ([]byte, error) {
	type jmoney struct {
		Amount   json.Number `json:"amount"`
		Currency string      `json:"currency,omitempty"`
	}
	rounded := m.value.StringFixed(int32(m.currency().Fraction))
	return json.Marshal(jmoney{Amount: json.Number(rounded), Currency: m.cur})
}
