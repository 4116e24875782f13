// Package store reads the trades of the demo account from a row store.
//
// The row store is queried by equality and range predicates over named columns, ordered by
// (date, id). Three implementations share that contract: an in-memory one, SQLite and Postgres.
package store

import (
	"context"
	"errors"
	"fmt"

	portfolio "github.com/etnz/portfolio-assistant"
	"github.com/etnz/portfolio-assistant/date"
)

// Filter selects trades. Zero values do not filter.
type Filter struct {
	Account      string
	Symbol       string
	TradeType    portfolio.TradeType
	SecurityType portfolio.SecurityType
	From, To     date.Date // inclusive bounds, in demo coordinates
	Desc         bool      // most recent first
	Limit        int
}

// InRange restricts the filter to the range r.
func (f Filter) InRange(r date.Range) Filter {
	f.From, f.To = r.From, r.To
	return f
}

// Match reports whether t is selected by the filter.
func (f Filter) Match(t portfolio.Trade) bool {
	switch {
	case f.Account != "" && t.Account != f.Account:
		return false
	case f.Symbol != "" && t.Symbol != f.Symbol:
		return false
	case f.TradeType != "" && t.TradeType != f.TradeType:
		return false
	case f.SecurityType != "" && t.SecurityType != f.SecurityType:
		return false
	case !f.From.IsZero() && t.Date.Before(f.From):
		return false
	case !f.To.IsZero() && t.Date.After(f.To):
		return false
	}
	return true
}

// Trades is the read access to the trades table.
type Trades interface {
	// List returns the trades selected by f, ordered by (date, id).
	List(ctx context.Context, f Filter) ([]portfolio.Trade, error)
	// Symbols returns the symbols traded by account, in alphabetical order.
	Symbols(ctx context.Context, account string) ([]string, error)
	Close() error
}

// ErrUnknownDriver is returned by Open for unsupported drivers.
var ErrUnknownDriver = errors.New("unknown store driver")

// Config selects and configures the row store.
type Config struct {
	Driver      string // memory, sqlite or postgres
	SQLitePath  string
	PostgresURL string
	SeedFile    string // JSONL trades loaded in memory and sqlite stores, the embedded demo set if empty.
}

// Open opens the row store described by cfg.
func Open(ctx context.Context, cfg Config) (Trades, error) {
	switch cfg.Driver {
	case "", "memory":
		trades, err := seed(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		return NewMemory(trades...)
	case "sqlite":
		s, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		trades, err := seed(cfg.SeedFile)
		if err != nil {
			s.Close()
			return nil, err
		}
		if err := s.Seed(ctx, trades); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	case "postgres":
		return OpenPostgres(ctx, cfg.PostgresURL)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownDriver, cfg.Driver)
	}
}

// checkCurrencies returns an error if an account of trades has trades in more than one currency.
func checkCurrencies(trades []portfolio.Trade) error {
	currencies := make(map[string]string)
	for _, t := range trades {
		c := t.Price.Currency()
		if first, ok := currencies[t.Account]; !ok {
			currencies[t.Account] = c
		} else if first != c {
			return fmt.Errorf("account %q mixes %s and %s trades (trade %d)", t.Account, first, c, t.ID)
		}
	}
	return nil
}

func seed(file string) ([]portfolio.Trade, error) {
	if file == "" {
		return DemoTrades()
	}
	return DecodeFile(file)
}
