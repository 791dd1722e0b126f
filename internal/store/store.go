// Package store persists the watchlist, portfolio holdings and price
// snapshot history. Three backends: SQLite (default), Postgres (when a URL is
// configured) and an in-memory one for tests and --no-db runs.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound reports a missing watchlist entry or holding.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicate reports an already-watched symbol.
	ErrDuplicate = errors.New("store: duplicate")
)

// WatchItem is one watchlist row.
type WatchItem struct {
	ID      int64
	Symbol  string
	Name    string
	Notes   string
	AddedAt time.Time
}

// Holding is one portfolio position. Share and price math uses decimals so
// position values do not drift.
type Holding struct {
	ID            int64
	Symbol        string
	Shares        decimal.Decimal
	PurchasePrice decimal.Decimal
	PurchaseDate  time.Time
	CurrentPrice  decimal.Decimal
	UpdatedAt     time.Time
}

// Value is shares times the current price, falling back to the purchase
// price when no current price has been recorded yet.
func (h Holding) Value() decimal.Decimal {
	price := h.CurrentPrice
	if price.IsZero() {
		price = h.PurchasePrice
	}
	return h.Shares.Mul(price)
}

// CostBasis is shares times the purchase price.
func (h Holding) CostBasis() decimal.Decimal {
	return h.Shares.Mul(h.PurchasePrice)
}

// Snapshot is one recorded point-in-time price.
type Snapshot struct {
	ID     int64
	Symbol string
	Price  float64
	At     time.Time
}

// Store persists watchlist, holdings and snapshot history.
type Store interface {
	AddWatch(ctx context.Context, symbol, name, notes string) error
	RemoveWatch(ctx context.Context, symbol string) error
	Watchlist(ctx context.Context) ([]WatchItem, error)

	AddHolding(ctx context.Context, h Holding) error
	Holdings(ctx context.Context) ([]Holding, error)
	UpdateHoldingPrice(ctx context.Context, symbol string, price decimal.Decimal) error

	RecordSnapshot(ctx context.Context, symbol string, price float64, at time.Time) error
	SnapshotHistory(ctx context.Context, symbol string, limit int) ([]Snapshot, error)

	Close() error
}
