package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// MemoryStore keeps everything in process memory. Used by tests and --no-db runs.
type MemoryStore struct {
	mu        sync.Mutex
	nextID    int64
	watch     map[string]WatchItem
	holdings  []Holding
	snapshots []Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{watch: make(map[string]WatchItem), nextID: 1}
}

func (s *MemoryStore) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *MemoryStore) AddWatch(_ context.Context, symbol, name, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.watch[symbol]; ok {
		return fmt.Errorf("watch %s: %w", symbol, ErrDuplicate)
	}
	s.watch[symbol] = WatchItem{ID: s.id(), Symbol: symbol, Name: name, Notes: notes, AddedAt: time.Now()}
	return nil
}

func (s *MemoryStore) RemoveWatch(_ context.Context, symbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.watch[symbol]; !ok {
		return fmt.Errorf("unwatch %s: %w", symbol, ErrNotFound)
	}
	delete(s.watch, symbol)
	return nil
}

func (s *MemoryStore) Watchlist(_ context.Context) ([]WatchItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]WatchItem, 0, len(s.watch))
	for _, it := range s.watch {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Symbol < items[j].Symbol })
	return items, nil
}

func (s *MemoryStore) AddHolding(_ context.Context, h Holding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h.ID = s.id()
	h.UpdatedAt = time.Now()
	s.holdings = append(s.holdings, h)
	return nil
}

func (s *MemoryStore) Holdings(_ context.Context) ([]Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Holding, len(s.holdings))
	copy(out, s.holdings)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Symbol != out[j].Symbol {
			return out[i].Symbol < out[j].Symbol
		}
		return out[i].PurchaseDate.Before(out[j].PurchaseDate)
	})
	return out, nil
}

func (s *MemoryStore) UpdateHoldingPrice(_ context.Context, symbol string, price decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := false
	for i := range s.holdings {
		if s.holdings[i].Symbol == symbol {
			s.holdings[i].CurrentPrice = price
			s.holdings[i].UpdatedAt = time.Now()
			updated = true
		}
	}
	if !updated {
		return fmt.Errorf("update price %s: %w", symbol, ErrNotFound)
	}
	return nil
}

func (s *MemoryStore) RecordSnapshot(_ context.Context, symbol string, price float64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, Snapshot{ID: s.id(), Symbol: symbol, Price: price, At: at})
	return nil
}

func (s *MemoryStore) SnapshotHistory(_ context.Context, symbol string, limit int) ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 {
		limit = 100
	}
	var out []Snapshot
	for _, sn := range s.snapshots {
		if sn.Symbol == symbol {
			out = append(out, sn)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].At.After(out[j].At) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
