package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	portfolio "github.com/etnz/portfolio-assistant"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS trades (
	id            INTEGER PRIMARY KEY,
	account       TEXT NOT NULL,
	symbol        TEXT NOT NULL,
	trade_date    TEXT NOT NULL,
	security_type TEXT NOT NULL,
	trade_type    TEXT NOT NULL,
	quantity      TEXT NOT NULL,
	price         TEXT NOT NULL,
	net_amount    TEXT NOT NULL,
	currency      TEXT NOT NULL DEFAULT 'USD',
	description   TEXT NOT NULL DEFAULT ''
)`

// SQLite is a trades table in a SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens the database at path, creating the trades table if needed.
// An empty path opens a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	dsn := ":memory:"
	if path != "" && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dsn == ":memory:" {
		// every connection would see its own database.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create trades table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Seed inserts trades, ignoring ids already present.
func (s *SQLite) Seed(ctx context.Context, trades []portfolio.Trade) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO trades
		(id, account, symbol, trade_date, security_type, trade_type, quantity, price, net_amount, currency, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range trades {
		if err := t.Validate(); err != nil {
			return err
		}
		_, err := stmt.ExecContext(ctx, t.ID, t.Account, t.Symbol, t.Date.String(), string(t.SecurityType), string(t.TradeType),
			t.Quantity.String(), t.Price.Amount().String(), t.NetAmount.Amount().String(), t.Price.Currency(), t.Description)
		if err != nil {
			return fmt.Errorf("cannot insert trade %d: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLite) List(ctx context.Context, f Filter) ([]portfolio.Trade, error) {
	query, args := sqliteDialect.selectTrades(f)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []portfolio.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := checkCurrencies(trades); err != nil {
		return nil, err
	}
	return trades, nil
}

func (s *SQLite) Symbols(ctx context.Context, account string) ([]string, error) {
	query, args := sqliteDialect.selectSymbols(account)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		symbols = append(symbols, s)
	}
	return symbols, rows.Err()
}

func (s *SQLite) Close() error { return s.db.Close() }
