package collector

import (
	"context"
	"fmt"
	"math"
	"time"

	"TickerDesk/internal/model"
)

// MockFetcher serves deterministic synthetic bars for offline use and tests.
type MockFetcher struct {
	// Known lists the symbols the mock recognizes; empty means any symbol.
	Known map[string]string // symbol -> display name
}

// NewMockFetcher creates a mock recognizing any symbol.
func NewMockFetcher() *MockFetcher { return &MockFetcher{} }

func (f *MockFetcher) Name() string { return "mock" }

var mockPeriodDays = map[model.Period]int{
	model.Period1D: 1, model.Period5D: 5, model.Period1M: 21, model.Period3M: 63,
	model.Period6M: 126, model.Period1Y: 252, model.Period2Y: 504, model.Period5Y: 1260,
	model.Period10Y: 2520, model.PeriodYTD: 160, model.PeriodMax: 10500,
}

func (f *MockFetcher) check(symbol string) (string, error) {
	if f.Known == nil {
		return symbol + " (simulated)", nil
	}
	name, ok := f.Known[symbol]
	if !ok {
		return "", fmt.Errorf("mock: unknown symbol %s", symbol)
	}
	return name, nil
}

// FetchSeries generates a deterministic daily walk ending today.
func (f *MockFetcher) FetchSeries(ctx context.Context, symbol string, period model.Period) ([]model.OHLCV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := f.check(symbol); err != nil {
		return nil, err
	}
	days := mockPeriodDays[period]
	if days == 0 {
		return nil, fmt.Errorf("mock: invalid period %q", period)
	}

	// Seed off the symbol so different symbols get different but stable shapes.
	var seed float64
	for _, r := range symbol {
		seed += float64(r)
	}

	end := time.Now().Truncate(24 * time.Hour)
	bars := make([]model.OHLCV, 0, days)
	for i := 0; i < days; i++ {
		t := end.AddDate(0, 0, i-days+1)
		base := 100 + 40*math.Sin(seed+float64(i)/40) + float64(i)*0.01
		bars = append(bars, model.OHLCV{
			Time:   t,
			Open:   base,
			High:   base * 1.01,
			Low:    base * 0.99,
			Close:  base * (1 + 0.002*math.Sin(seed+float64(i))),
			Volume: 1e6 + 1e5*math.Abs(math.Sin(float64(i))),
		})
	}
	return bars, nil
}

// FetchInfo generates metadata with the latest synthetic close.
func (f *MockFetcher) FetchInfo(ctx context.Context, symbol string) (model.Quote, error) {
	name, err := f.check(symbol)
	if err != nil {
		return model.Quote{}, err
	}
	bars, err := f.FetchSeries(ctx, symbol, model.Period5D)
	if err != nil {
		return model.Quote{}, err
	}
	last := bars[len(bars)-1]
	return model.Quote{
		Symbol:    symbol,
		Name:      name,
		Category:  model.CategoryOther,
		LastPrice: last.Close,
		AsOf:      last.Time,
	}, nil
}
