package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"TickerDesk/internal/model"
	"TickerDesk/internal/store"
)

type fakeQuotes struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]bool
}

func (f *fakeQuotes) Info(_ context.Context, symbol string) (model.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[symbol]++
	if f.fail[symbol] {
		return model.Quote{}, errors.New("scripted failure")
	}
	return model.Quote{Symbol: symbol, Name: symbol + " Inc.", LastPrice: 123.45, AsOf: time.Now()}, nil
}

type fakePurger struct{ purged int }

func (p *fakePurger) PurgeExpired() int {
	p.purged++
	return 3
}

func TestRegister_BadCronSpec(t *testing.T) {
	tr := New(context.Background(), store.NewMemoryStore(), &fakeQuotes{}, &fakePurger{}, 2)
	if err := tr.Register("not a cron spec", "0 0 * * * *"); err == nil {
		t.Fatal("want error for bad refresh spec")
	}
	if err := tr.Register("0 */15 * * * 1-5", "nope"); err == nil {
		t.Fatal("want error for bad purge spec")
	}
	if err := tr.Register("0 */15 * * * 1-5", "0 0 * * * *"); err != nil {
		t.Fatalf("valid specs rejected: %v", err)
	}
}

func TestRefreshNow(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	if err := st.AddWatch(ctx, "AAPL", "Apple Inc.", ""); err != nil {
		t.Fatal(err)
	}
	if err := st.AddWatch(ctx, "DOWN", "Always Failing Corp.", ""); err != nil {
		t.Fatal(err)
	}
	if err := st.AddHolding(ctx, store.Holding{
		Symbol:        "MSFT",
		Shares:        decimal.RequireFromString("2"),
		PurchasePrice: decimal.RequireFromString("100"),
		PurchaseDate:  time.Now(),
	}); err != nil {
		t.Fatal(err)
	}

	q := &fakeQuotes{fail: map[string]bool{"DOWN": true}}
	tr := New(ctx, st, q, &fakePurger{}, 2)

	if err := tr.RefreshNow(); err != nil {
		t.Fatalf("RefreshNow: %v", err)
	}

	// Each tracked symbol fetched exactly once, failures skipped.
	for _, sym := range []string{"AAPL", "MSFT", "DOWN"} {
		if q.calls[sym] != 1 {
			t.Errorf("Info(%s) called %d times, want 1", sym, q.calls[sym])
		}
	}

	// Snapshots recorded for the healthy symbols only.
	for _, sym := range []string{"AAPL", "MSFT"} {
		snaps, err := st.SnapshotHistory(ctx, sym, 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(snaps) != 1 || snaps[0].Price != 123.45 {
			t.Errorf("snapshots for %s = %+v", sym, snaps)
		}
	}
	if snaps, _ := st.SnapshotHistory(ctx, "DOWN", 10); len(snaps) != 0 {
		t.Errorf("failing symbol got %d snapshots, want 0", len(snaps))
	}

	// The held symbol's price was pushed into the holding.
	hs, err := st.Holdings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := decimal.NewFromFloat(123.45); !hs[0].CurrentPrice.Equal(want) {
		t.Errorf("holding current price = %s, want %s", hs[0].CurrentPrice, want)
	}
}

// flakyHoldingsStore fails Holdings calls after the first, mimicking a store
// that drops out mid-refresh.
type flakyHoldingsStore struct {
	store.Store
	calls int
}

func (s *flakyHoldingsStore) Holdings(ctx context.Context) ([]store.Holding, error) {
	s.calls++
	if s.calls > 1 {
		return nil, errors.New("scripted store outage")
	}
	return s.Store.Holdings(ctx)
}

func TestRefreshNow_HoldingsOutage(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	if err := mem.AddHolding(ctx, store.Holding{
		Symbol:        "MSFT",
		Shares:        decimal.RequireFromString("1"),
		PurchasePrice: decimal.RequireFromString("100"),
		PurchaseDate:  time.Now(),
	}); err != nil {
		t.Fatal(err)
	}
	st := &flakyHoldingsStore{Store: mem}

	q := &fakeQuotes{}
	tr := New(ctx, st, q, &fakePurger{}, 2)
	if err := tr.RefreshNow(); err != nil {
		t.Fatalf("RefreshNow: %v", err)
	}

	// Snapshots still record even though the held-symbol lookup failed.
	snaps, err := mem.SnapshotHistory(ctx, "MSFT", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 {
		t.Errorf("got %d snapshots, want 1", len(snaps))
	}

	// Holding prices are left alone for the cycle.
	hs, err := mem.Holdings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !hs[0].CurrentPrice.IsZero() {
		t.Errorf("holding current price = %s, want untouched zero", hs[0].CurrentPrice)
	}
}

func TestPurgeTask(t *testing.T) {
	p := &fakePurger{}
	tr := New(context.Background(), store.NewMemoryStore(), &fakeQuotes{}, p, 1)
	tr.purgeTask()
	if p.purged != 1 {
		t.Errorf("purger invoked %d times, want 1", p.purged)
	}
}
