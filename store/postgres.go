package store

import (
	"context"
	"fmt"
	"time"

	portfolio "github.com/etnz/portfolio-assistant"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres reads an existing trades table in a Postgres database.
//
// The table has the columns of the SQLite schema, with trade_date a DATE and the amounts NUMERIC.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to the database at url.
func OpenPostgres(ctx context.Context, url string) (*Postgres, error) {
	if url == "" {
		return nil, fmt.Errorf("missing postgres connection url")
	}
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) List(ctx context.Context, f Filter) ([]portfolio.Trade, error) {
	query, args := postgresDialect.selectTrades(f)
	rows, err := p.pool.Query(ctx, query, args...)
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

func (p *Postgres) Symbols(ctx context.Context, account string) ([]string, error) {
	query, args := postgresDialect.selectSymbols(account)
	rows, err := p.pool.Query(ctx, query, args...)
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

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
