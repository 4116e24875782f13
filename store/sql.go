package store

import (
	"fmt"
	"strings"

	portfolio "github.com/etnz/portfolio-assistant"
	"github.com/etnz/portfolio-assistant/date"
)

// dialect captures what differs between the SQL row stores.
type dialect struct {
	// placeholder returns the i-th (1-based) bind parameter.
	placeholder func(i int) string
	// text casts a non text column so that it scans into a string.
	text func(col string) string
}

var (
	sqliteDialect = dialect{
		placeholder: func(int) string { return "?" },
		text:        func(col string) string { return col },
	}
	postgresDialect = dialect{
		placeholder: func(i int) string { return fmt.Sprintf("$%d", i) },
		text:        func(col string) string { return col + "::text" },
	}
)

// selectTrades builds the query listing the trades selected by f.
func (d dialect) selectTrades(f Filter) (string, []any) {
	var q strings.Builder
	fmt.Fprintf(&q, "SELECT id, account, symbol, %s, security_type, trade_type, %s, %s, %s, COALESCE(currency, 'USD'), COALESCE(description, '') FROM trades WHERE 1=1",
		d.text("trade_date"), d.text("quantity"), d.text("price"), d.text("net_amount"))

	var args []any
	where := func(cond string, arg any) {
		args = append(args, arg)
		fmt.Fprintf(&q, " AND "+cond, d.placeholder(len(args)))
	}
	if f.Account != "" {
		where("account = %s", f.Account)
	}
	if f.Symbol != "" {
		where("symbol = %s", f.Symbol)
	}
	if f.TradeType != "" {
		where("lower(trade_type) = %s", string(f.TradeType))
	}
	if f.SecurityType != "" {
		where("lower(security_type) = %s", string(f.SecurityType))
	}
	if !f.From.IsZero() {
		where(d.text("trade_date")+" >= %s", f.From.String())
	}
	if !f.To.IsZero() {
		where(d.text("trade_date")+" <= %s", f.To.String())
	}

	if f.Desc {
		q.WriteString(" ORDER BY trade_date DESC, id DESC")
	} else {
		q.WriteString(" ORDER BY trade_date ASC, id ASC")
	}
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&q, " LIMIT %s", d.placeholder(len(args)))
	}
	return q.String(), args
}

// selectSymbols builds the query listing the symbols traded by account.
func (d dialect) selectSymbols(account string) (string, []any) {
	if account == "" {
		return "SELECT DISTINCT symbol FROM trades ORDER BY symbol", nil
	}
	return "SELECT DISTINCT symbol FROM trades WHERE account = " + d.placeholder(1) + " ORDER BY symbol", []any{account}
}

// scanner is implemented by both database/sql and pgx rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrade reads a row produced by selectTrades.
func scanTrade(row scanner) (portfolio.Trade, error) {
	var (
		t                          portfolio.Trade
		day, st, tt, cur           string
		quantity, price, netAmount string
	)
	if err := row.Scan(&t.ID, &t.Account, &t.Symbol, &day, &st, &tt, &quantity, &price, &netAmount, &cur, &t.Description); err != nil {
		return t, fmt.Errorf("cannot scan trade: %w", err)
	}
	var err error
	if t.Date, err = date.Parse(day); err != nil {
		return t, fmt.Errorf("trade %d: %w", t.ID, err)
	}
	if t.SecurityType, err = portfolio.ParseSecurityType(st); err != nil {
		return t, fmt.Errorf("trade %d: %w", t.ID, err)
	}
	if t.TradeType, err = portfolio.ParseTradeType(tt); err != nil {
		return t, fmt.Errorf("trade %d: %w", t.ID, err)
	}
	if t.Quantity, err = portfolio.ParseQuantity(quantity); err != nil {
		return t, fmt.Errorf("trade %d: invalid quantity %q: %w", t.ID, quantity, err)
	}
	if t.Price, err = portfolio.ParseMoney(price, cur); err != nil {
		return t, fmt.Errorf("trade %d: invalid price %q: %w", t.ID, price, err)
	}
	if t.NetAmount, err = portfolio.ParseMoney(netAmount, cur); err != nil {
		return t, fmt.Errorf("trade %d: invalid net amount %q: %w", t.ID, netAmount, err)
	}
	return t, nil
}
