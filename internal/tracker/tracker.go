// Package tracker runs the scheduled background work: refreshing quotes for
// every watched and held symbol, and sweeping expired cache entries.
package tracker

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"TickerDesk/internal/model"
	"TickerDesk/internal/store"
)

// QuoteSource serves instrument metadata; satisfied by sampler.Engine.
type QuoteSource interface {
	Info(ctx context.Context, symbol string) (model.Quote, error)
}

// Purger sweeps expired cache entries; satisfied by sampler.Engine.
type Purger interface {
	PurgeExpired() int
}

// Tracker manages the cron tasks.
type Tracker struct {
	Cron    *cron.Cron
	Store   store.Store
	Quotes  QuoteSource
	Purger  Purger
	Ctx     context.Context
	Workers int // bounded concurrency for the refresh fan-out
}

// New creates a tracker. workers <= 0 defaults to 4.
func New(ctx context.Context, st store.Store, quotes QuoteSource, purger Purger, workers int) *Tracker {
	if workers <= 0 {
		workers = 4
	}
	return &Tracker{
		Cron:    cron.New(cron.WithSeconds()),
		Store:   st,
		Quotes:  quotes,
		Purger:  purger,
		Ctx:     ctx,
		Workers: workers,
	}
}

// Register registers the refresh and purge tasks.
func (t *Tracker) Register(refreshCron, purgeCron string) error {
	if _, err := t.Cron.AddFunc(refreshCron, t.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := t.Cron.AddFunc(purgeCron, t.purgeTask); err != nil {
		return fmt.Errorf("register purge task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (t *Tracker) Start() {
	t.Cron.Start()
	log.Println("[INFO] tracker started")
}

// Stop stops the cron scheduler gracefully.
func (t *Tracker) Stop() {
	t.Cron.Stop()
	log.Println("[INFO] tracker stopped")
}

// RefreshNow executes the refresh task immediately (manual trigger).
func (t *Tracker) RefreshNow() error {
	return t.refresh(t.Ctx)
}

func (t *Tracker) refreshTask() {
	if err := t.refresh(t.Ctx); err != nil {
		log.Printf("[ERROR] refresh task: %v", err)
	}
}

func (t *Tracker) purgeTask() {
	if n := t.Purger.PurgeExpired(); n > 0 {
		log.Printf("[INFO] purged %d expired cache entries", n)
	}
}

// refresh fetches a fresh quote for every tracked symbol, records a price
// snapshot, and pushes the price into any holdings of that symbol. A symbol
// failing upstream is logged and skipped so one outage does not starve the
// rest.
func (t *Tracker) refresh(ctx context.Context) error {
	symbols, err := t.trackedSymbols(ctx)
	if err != nil {
		return fmt.Errorf("gather symbols: %w", err)
	}
	if len(symbols) == 0 {
		return nil
	}
	log.Printf("[INFO] refreshing %d symbols", len(symbols))

	held := make(map[string]bool)
	if hs, err := t.Store.Holdings(ctx); err == nil {
		for _, h := range hs {
			held[h.Symbol] = true
		}
	} else {
		log.Printf("[WARN] list holdings: %v (holding prices not updated this cycle)", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.Workers)
	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			q, err := t.Quotes.Info(gctx, symbol)
			if err != nil {
				log.Printf("[WARN] refresh %s: %v", symbol, err)
				return nil
			}
			if err := t.Store.RecordSnapshot(gctx, symbol, q.LastPrice, q.AsOf); err != nil {
				log.Printf("[ERROR] record snapshot %s: %v", symbol, err)
			}
			if held[symbol] {
				price := decimal.NewFromFloat(q.LastPrice)
				if err := t.Store.UpdateHoldingPrice(gctx, symbol, price); err != nil {
					log.Printf("[ERROR] update holding price %s: %v", symbol, err)
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// trackedSymbols is the deduplicated union of watchlist and holdings.
func (t *Tracker) trackedSymbols(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)

	items, err := t.Store.Watchlist(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		seen[it.Symbol] = true
	}
	hs, err := t.Store.Holdings(ctx)
	if err != nil {
		return nil, err
	}
	for _, h := range hs {
		seen[h.Symbol] = true
	}

	symbols := make([]string, 0, len(seen))
	for s := range seen {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols, nil
}
