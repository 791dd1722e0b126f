package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SQLiteStore is the default on-disk backend.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for concurrent reads while the tracker writes snapshots.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS watchlist (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol   TEXT NOT NULL UNIQUE,
			name     TEXT,
			notes    TEXT,
			added_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS holdings (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol         TEXT NOT NULL,
			shares         TEXT NOT NULL,
			purchase_price TEXT NOT NULL,
			purchase_date  INTEGER NOT NULL,
			current_price  TEXT,
			updated_at     INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_holdings_symbol ON holdings(symbol)`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol    TEXT NOT NULL,
			price     REAL NOT NULL,
			timestamp INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_symbol_ts ON snapshots(symbol, timestamp)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) AddWatch(ctx context.Context, symbol, name, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM watchlist WHERE symbol = ?`, symbol).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("watch %s: %w", symbol, ErrDuplicate)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO watchlist (symbol, name, notes, added_at) VALUES (?,?,?,?)`,
		symbol, name, notes, time.Now().Unix())
	return err
}

func (s *SQLiteStore) RemoveWatch(ctx context.Context, symbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM watchlist WHERE symbol = ?`, symbol)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("unwatch %s: %w", symbol, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) Watchlist(ctx context.Context) ([]WatchItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, symbol, name, notes, added_at FROM watchlist ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []WatchItem
	for rows.Next() {
		var it WatchItem
		var added int64
		if err := rows.Scan(&it.ID, &it.Symbol, &it.Name, &it.Notes, &added); err != nil {
			return nil, err
		}
		it.AddedAt = time.Unix(added, 0)
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) AddHolding(ctx context.Context, h Holding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO holdings (symbol, shares, purchase_price, purchase_date, current_price, updated_at)
		 VALUES (?,?,?,?,?,?)`,
		h.Symbol, h.Shares.String(), h.PurchasePrice.String(),
		h.PurchaseDate.Unix(), h.CurrentPrice.String(), time.Now().Unix())
	return err
}

func (s *SQLiteStore) Holdings(ctx context.Context) ([]Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, symbol, shares, purchase_price, purchase_date, current_price, updated_at
		 FROM holdings ORDER BY symbol, purchase_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Holding
	for rows.Next() {
		var h Holding
		var shares, purchase, current string
		var bought, updated int64
		if err := rows.Scan(&h.ID, &h.Symbol, &shares, &purchase, &bought, &current, &updated); err != nil {
			return nil, err
		}
		if h.Shares, err = decimal.NewFromString(shares); err != nil {
			return nil, fmt.Errorf("holding %d shares: %w", h.ID, err)
		}
		if h.PurchasePrice, err = decimal.NewFromString(purchase); err != nil {
			return nil, fmt.Errorf("holding %d purchase price: %w", h.ID, err)
		}
		if current != "" {
			if h.CurrentPrice, err = decimal.NewFromString(current); err != nil {
				return nil, fmt.Errorf("holding %d current price: %w", h.ID, err)
			}
		}
		h.PurchaseDate = time.Unix(bought, 0)
		h.UpdatedAt = time.Unix(updated, 0)
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpdateHoldingPrice(ctx context.Context, symbol string, price decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE holdings SET current_price = ?, updated_at = ? WHERE symbol = ?`,
		price.String(), time.Now().Unix(), symbol)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update price %s: %w", symbol, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) RecordSnapshot(ctx context.Context, symbol string, price float64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (symbol, price, timestamp) VALUES (?,?,?)`,
		symbol, price, at.Unix())
	return err
}

func (s *SQLiteStore) SnapshotHistory(ctx context.Context, symbol string, limit int) ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, symbol, price, timestamp FROM snapshots
		 WHERE symbol = ? ORDER BY timestamp DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var sn Snapshot
		var ts int64
		if err := rows.Scan(&sn.ID, &sn.Symbol, &sn.Price, &ts); err != nil {
			return nil, err
		}
		sn.At = time.Unix(ts, 0)
		out = append(out, sn)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
