// Package cli implements the desk subcommands on top of the resolver, the
// sampling engine and the store.
package cli

import (
	"context"
	"fmt"
	"log"
	"sync"

	"TickerDesk/internal/catalog"
	"TickerDesk/internal/collector"
	"TickerDesk/internal/config"
	"TickerDesk/internal/resolve"
	"TickerDesk/internal/sampler"
	"TickerDesk/internal/store"
)

// App wires the core components together for the subcommands. The store is
// opened lazily: read-only commands like search never touch the database.
type App struct {
	Config   *config.Config
	Catalog  *catalog.Index
	Engine   *sampler.Engine
	Resolver *resolve.Resolver

	storeOnce sync.Once
	store     store.Store
	storeErr  error
}

// NewApp builds the component graph from config.
func NewApp(cfg *config.Config) (*App, error) {
	idx, err := catalog.LoadOrInit(cfg.Catalog.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("init catalog: %w", err)
	}
	log.Printf("[INFO] catalog loaded: %d instruments", idx.Len())

	fetcher := newFetcher(cfg)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	engine := sampler.New(fetcher, cfg.SamplerOptions())
	resolver := resolve.New(idx, engine, cfg.ResolverOptions())

	return &App{
		Config:   cfg,
		Catalog:  idx,
		Engine:   engine,
		Resolver: resolver,
	}, nil
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	switch cfg.DataSource.Provider {
	case "mock":
		return collector.NewMockFetcher()
	case "rest":
		return collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	case "yahoo":
		return collector.NewYahooFetcher(cfg.Proxy)
	default:
		if cfg.DataSource.BaseURL != "" {
			return collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
		}
		return collector.NewYahooFetcher(cfg.Proxy)
	}
}

// Store opens the configured persistence backend on first use.
func (a *App) Store(ctx context.Context) (store.Store, error) {
	a.storeOnce.Do(func() {
		switch {
		case a.Config.Database.PostgresURL != "":
			a.store, a.storeErr = store.NewPostgresStore(ctx, a.Config.Database.PostgresURL)
		case a.Config.Database.SQLitePath != "":
			a.store, a.storeErr = store.NewSQLiteStore(a.Config.Database.SQLitePath)
		default:
			a.store = store.NewMemoryStore()
		}
	})
	return a.store, a.storeErr
}

// Close releases the store if one was opened.
func (a *App) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.Printf("[ERROR] close store: %v", err)
		}
	}
}
