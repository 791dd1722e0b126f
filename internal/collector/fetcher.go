// Package collector talks to the upstream market-data provider. Raw payloads
// are validated at this boundary and converted into model types; malformed
// rows are rejected rather than passed inward.
package collector

import (
	"context"

	"TickerDesk/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchSeries returns the historical bars for symbol over period, in
	// chronological order.
	FetchSeries(ctx context.Context, symbol string, period model.Period) ([]model.OHLCV, error)
	// FetchInfo returns instrument metadata with the most recent price.
	FetchInfo(ctx context.Context, symbol string) (model.Quote, error)
	Name() string
}
