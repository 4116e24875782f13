package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	portfolio "github.com/etnz/portfolio-assistant"
)

// Memory is an in-memory trades table.
type Memory struct {
	mu     sync.RWMutex
	trades []portfolio.Trade // sorted by (date, id)
}

// NewMemory returns a Memory store holding trades.
func NewMemory(trades ...portfolio.Trade) (*Memory, error) {
	m := new(Memory)
	if err := m.Insert(trades...); err != nil {
		return nil, err
	}
	return m, nil
}

// Insert adds trades to the table. Ids must be unique.
func (m *Memory) Insert(trades ...portfolio.Trade) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range trades {
		if err := t.Validate(); err != nil {
			return err
		}
		if slices.ContainsFunc(m.trades, func(x portfolio.Trade) bool { return x.ID == t.ID }) {
			return fmt.Errorf("duplicate trade id %d", t.ID)
		}
		if err := checkCurrencies(append(m.trades, t)); err != nil {
			return err
		}
		m.trades = append(m.trades, t)
	}
	slices.SortStableFunc(m.trades, portfolio.CompareTrades)
	return nil
}

func (m *Memory) List(ctx context.Context, f Filter) ([]portfolio.Trade, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var res []portfolio.Trade
	for _, t := range m.trades {
		if f.Match(t) {
			res = append(res, t)
		}
	}
	if f.Desc {
		slices.Reverse(res)
	}
	if f.Limit > 0 && len(res) > f.Limit {
		res = res[:f.Limit]
	}
	return res, nil
}

func (m *Memory) Symbols(ctx context.Context, account string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var res []string
	for _, t := range m.trades {
		if account != "" && t.Account != account {
			continue
		}
		if !slices.Contains(res, t.Symbol) {
			res = append(res, t.Symbol)
		}
	}
	slices.Sort(res)
	return res, nil
}

func (m *Memory) Close() error { return nil }
