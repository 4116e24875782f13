package store

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	portfolio "github.com/etnz/portfolio-assistant"
	"github.com/etnz/portfolio-assistant/date"
	"github.com/shopspring/decimal"
)

//go:embed demo_trades.jsonl
var demoTrades []byte

// DemoTrades returns the trades of the demo account shipped with the binary.
func DemoTrades() ([]portfolio.Trade, error) {
	return decodeTrades("demo_trades.jsonl", bytes.NewReader(demoTrades))
}

// DecodeFile reads a JSONL file of trades.
func DecodeFile(filename string) ([]portfolio.Trade, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open trades file: %w", err)
	}
	defer f.Close()
	return decodeTrades(filename, f)
}

// DecodeTrades reads trades from r, one json object per line.
//
// Amounts are json numbers or decimal strings. Type names accept the same synonyms as
// portfolio.ParseSecurityType and portfolio.ParseTradeType.
func DecodeTrades(r io.Reader) ([]portfolio.Trade, error) {
	return decodeTrades("input", r)
}

// decodeTrades decodes r, filename is for error messages only.
func decodeTrades(filename string, r io.Reader) ([]portfolio.Trade, error) {
	// jtrade is the object read from the file using json parser.
	type jtrade struct {
		ID           int64           `json:"id"`
		Account      string          `json:"account"`
		Symbol       string          `json:"symbol"`
		Date         date.Date       `json:"date"`
		SecurityType string          `json:"securityType"`
		TradeType    string          `json:"tradeType"`
		Quantity     decimal.Decimal `json:"quantity"`
		Price        decimal.Decimal `json:"price"`
		NetAmount    decimal.Decimal `json:"netAmount"`
		Currency     string          `json:"currency"`
		Description  string          `json:"description"`
	}

	var trades []portfolio.Trade
	scanner := bufio.NewScanner(r)
	for i := 1; scanner.Scan(); i++ {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var jt jtrade
		if err := json.Unmarshal(line, &jt); err != nil {
			return nil, fmt.Errorf("format error in %q line %d: %w", filename, i, err)
		}
		st, err := portfolio.ParseSecurityType(jt.SecurityType)
		if err != nil {
			return nil, fmt.Errorf("format error in %q line %d: %w", filename, i, err)
		}
		tt, err := portfolio.ParseTradeType(jt.TradeType)
		if err != nil {
			return nil, fmt.Errorf("format error in %q line %d: %w", filename, i, err)
		}
		cur := jt.Currency
		if cur == "" {
			cur = portfolio.DefaultCurrency
		}
		t := portfolio.Trade{
			ID:           jt.ID,
			Account:      jt.Account,
			Symbol:       strings.ToUpper(jt.Symbol),
			Date:         jt.Date,
			SecurityType: st,
			TradeType:    tt,
			Quantity:     portfolio.Q(jt.Quantity),
			Price:        portfolio.M(jt.Price, cur),
			NetAmount:    portfolio.M(jt.NetAmount, cur),
			Description:  jt.Description,
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("invalid trade in %q line %d: %w", filename, i, err)
		}
		trades = append(trades, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", filename, err)
	}
	if err := checkCurrencies(trades); err != nil {
		return nil, fmt.Errorf("invalid trades in %q: %w", filename, err)
	}
	return trades, nil
}
