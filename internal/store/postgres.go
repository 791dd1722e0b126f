package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresStore backs the store with a pgx connection pool, selected when
// database.postgres_url (or DATABASE_URL) is configured.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects, pings and migrates.
func NewPostgresStore(ctx context.Context, url string) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Println("[INFO] postgres store connected")
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS watchlist (
			id       BIGSERIAL PRIMARY KEY,
			symbol   TEXT NOT NULL UNIQUE,
			name     TEXT NOT NULL DEFAULT '',
			notes    TEXT NOT NULL DEFAULT '',
			added_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS holdings (
			id             BIGSERIAL PRIMARY KEY,
			symbol         TEXT NOT NULL,
			shares         NUMERIC NOT NULL,
			purchase_price NUMERIC NOT NULL,
			purchase_date  TIMESTAMPTZ NOT NULL,
			current_price  NUMERIC,
			updated_at     TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_holdings_symbol ON holdings(symbol)`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			id     BIGSERIAL PRIMARY KEY,
			symbol TEXT NOT NULL,
			price  DOUBLE PRECISION NOT NULL,
			at     TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_symbol_at ON snapshots(symbol, at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *PostgresStore) AddWatch(ctx context.Context, symbol, name, notes string) error {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO watchlist (symbol, name, notes, added_at) VALUES ($1,$2,$3,$4)
		 ON CONFLICT (symbol) DO NOTHING`,
		symbol, name, notes, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("watch %s: %w", symbol, ErrDuplicate)
	}
	return nil
}

func (s *PostgresStore) RemoveWatch(ctx context.Context, symbol string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM watchlist WHERE symbol = $1`, symbol)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("unwatch %s: %w", symbol, ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) Watchlist(ctx context.Context) ([]WatchItem, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, symbol, name, notes, added_at FROM watchlist ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []WatchItem
	for rows.Next() {
		var it WatchItem
		if err := rows.Scan(&it.ID, &it.Symbol, &it.Name, &it.Notes, &it.AddedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *PostgresStore) AddHolding(ctx context.Context, h Holding) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO holdings (symbol, shares, purchase_price, purchase_date, current_price, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		h.Symbol, h.Shares.String(), h.PurchasePrice.String(),
		h.PurchaseDate, h.CurrentPrice.String(), time.Now())
	return err
}

func (s *PostgresStore) Holdings(ctx context.Context) ([]Holding, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, symbol, shares::TEXT, purchase_price::TEXT, purchase_date,
		        COALESCE(current_price::TEXT, '0'), updated_at
		 FROM holdings ORDER BY symbol, purchase_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Holding
	for rows.Next() {
		var h Holding
		var shares, purchase, current string
		if err := rows.Scan(&h.ID, &h.Symbol, &shares, &purchase, &h.PurchaseDate, &current, &h.UpdatedAt); err != nil {
			return nil, err
		}
		if h.Shares, err = decimal.NewFromString(shares); err != nil {
			return nil, fmt.Errorf("holding %d shares: %w", h.ID, err)
		}
		if h.PurchasePrice, err = decimal.NewFromString(purchase); err != nil {
			return nil, fmt.Errorf("holding %d purchase price: %w", h.ID, err)
		}
		if h.CurrentPrice, err = decimal.NewFromString(current); err != nil {
			return nil, fmt.Errorf("holding %d current price: %w", h.ID, err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateHoldingPrice(ctx context.Context, symbol string, price decimal.Decimal) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE holdings SET current_price = $1, updated_at = $2 WHERE symbol = $3`,
		price.String(), time.Now(), symbol)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update price %s: %w", symbol, ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) RecordSnapshot(ctx context.Context, symbol string, price float64, at time.Time) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO snapshots (symbol, price, at) VALUES ($1,$2,$3)`, symbol, price, at)
	return err
}

func (s *PostgresStore) SnapshotHistory(ctx context.Context, symbol string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, symbol, price, at FROM snapshots
		 WHERE symbol = $1 ORDER BY at DESC LIMIT $2`, symbol, limit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var sn Snapshot
		if err := rows.Scan(&sn.ID, &sn.Symbol, &sn.Price, &sn.At); err != nil {
			return nil, err
		}
		out = append(out, sn)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Close() error {
	log.Println("[INFO] closing postgres store")
	s.pool.Close()
	return nil
}
