// Package sampler serves bounded historical series. It owns the two TTL
// caches (raw series and instrument metadata), converges concurrent misses on
// a single upstream fetch, and thins oversized series with density-weighted
// sampling: the recent window keeps full resolution, the older window is
// strided.
package sampler

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"TickerDesk/internal/cache"
	"TickerDesk/internal/collector"
	"TickerDesk/internal/model"
)

// UpstreamError reports a fetch or probe failure after retry exhaustion,
// timeouts included. Cached state is never touched by a failed fetch.
type UpstreamError struct {
	Symbol string
	Op     string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s %s: %v", e.Op, e.Symbol, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Options tune the engine. Zero fields fall back to the defaults below.
type Options struct {
	Cap            int           // max points per response
	RecentFraction float64       // share of elapsed time kept at full density
	TailSize       int           // default size of the Tail fast path
	SeriesTTL      time.Duration // raw series cache TTL
	MetaTTL        time.Duration // metadata cache TTL
	FetchTimeout   time.Duration // per-attempt upstream timeout
	RetryBackoff   time.Duration // pause before the single retry
}

const (
	DefaultCap            = 2000
	DefaultRecentFraction = 0.2
	DefaultTailSize       = 1000
	DefaultSeriesTTL      = 60 * time.Minute
	DefaultMetaTTL        = 10 * time.Minute
	DefaultFetchTimeout   = 15 * time.Second
	DefaultRetryBackoff   = 500 * time.Millisecond
)

func (o Options) withDefaults() Options {
	if o.Cap <= 0 {
		o.Cap = DefaultCap
	}
	if o.RecentFraction <= 0 || o.RecentFraction >= 1 {
		o.RecentFraction = DefaultRecentFraction
	}
	if o.TailSize <= 0 {
		o.TailSize = DefaultTailSize
	}
	if o.SeriesTTL <= 0 {
		o.SeriesTTL = DefaultSeriesTTL
	}
	if o.MetaTTL <= 0 {
		o.MetaTTL = DefaultMetaTTL
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = DefaultFetchTimeout
	}
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = DefaultRetryBackoff
	}
	return o
}

type seriesKey struct {
	Symbol string
	Period model.Period
}

// Engine fetches, caches and downsamples series and metadata.
type Engine struct {
	fetcher collector.Fetcher
	opts    Options

	series *cache.Store[seriesKey, []model.OHLCV]
	meta   *cache.Store[string, model.Quote]
	group  singleflight.Group

	sleep func(time.Duration) // swapped out in tests
}

// New creates an engine around the given upstream fetcher.
func New(fetcher collector.Fetcher, opts Options) *Engine {
	return &Engine{
		fetcher: fetcher,
		opts:    opts.withDefaults(),
		series:  cache.New[seriesKey, []model.OHLCV](),
		meta:    cache.New[string, model.Quote](),
		sleep:   time.Sleep,
	}
}

// GetSeries returns the series for (symbol, period), capped and
// density-weighted when the raw series exceeds the point cap.
func (e *Engine) GetSeries(ctx context.Context, symbol string, period model.Period) (*model.Series, error) {
	raw, err := e.rawSeries(ctx, symbol, period)
	if err != nil {
		return nil, err
	}
	points, sampled := sample(raw, e.opts.Cap, e.opts.RecentFraction)
	return &model.Series{
		Symbol:        symbol,
		Period:        period,
		Points:        points,
		TotalRawCount: len(raw),
		Sampled:       sampled,
	}, nil
}

// Tail returns the most recent n raw points without sampling, the pagination
// fast path. n <= 0 uses the configured tail size; n is clamped to the cap.
func (e *Engine) Tail(ctx context.Context, symbol string, period model.Period, n int) (*model.Series, error) {
	if n <= 0 {
		n = e.opts.TailSize
	}
	if n > e.opts.Cap {
		n = e.opts.Cap
	}
	raw, err := e.rawSeries(ctx, symbol, period)
	if err != nil {
		return nil, err
	}
	points := raw
	if len(points) > n {
		points = points[len(points)-n:]
	}
	out := make([]model.OHLCV, len(points))
	copy(out, points)
	return &model.Series{
		Symbol:        symbol,
		Period:        period,
		Points:        out,
		TotalRawCount: len(raw),
		Sampled:       false,
	}, nil
}

// Info returns cached instrument metadata, fetching on a miss with the same
// retry discipline as series fetches.
func (e *Engine) Info(ctx context.Context, symbol string) (model.Quote, error) {
	if q, ok := e.meta.Get(symbol); ok {
		return q, nil
	}
	v, err, _ := e.group.Do("info|"+symbol, func() (interface{}, error) {
		if q, ok := e.meta.Get(symbol); ok {
			return q, nil
		}
		q, err := e.fetchInfoRetry(ctx, symbol)
		if err != nil {
			return model.Quote{}, err
		}
		e.meta.Put(symbol, q, e.opts.MetaTTL)
		return q, nil
	})
	if err != nil {
		return model.Quote{}, err
	}
	return v.(model.Quote), nil
}

// Probe reports whether symbol exists upstream. Positive results come from
// Info and are therefore cached; failures are not cached, so a transient
// upstream outage does not blacklist a real symbol.
func (e *Engine) Probe(ctx context.Context, symbol string) (model.Quote, bool) {
	q, err := e.Info(ctx, symbol)
	if err != nil {
		log.Printf("[WARN] existence probe %s: %v", symbol, err)
		return model.Quote{}, false
	}
	return q, true
}

// Invalidate drops the cached series for (symbol, period) and the cached
// metadata for symbol, forcing the next request upstream.
func (e *Engine) Invalidate(symbol string, period model.Period) {
	e.series.Invalidate(seriesKey{Symbol: symbol, Period: period})
	e.meta.Invalidate(symbol)
}

// PurgeExpired sweeps both caches and reports how many entries were dropped.
func (e *Engine) PurgeExpired() int {
	return e.series.PurgeExpired() + e.meta.PurgeExpired()
}

func (e *Engine) rawSeries(ctx context.Context, symbol string, period model.Period) ([]model.OHLCV, error) {
	key := seriesKey{Symbol: symbol, Period: period}
	if raw, ok := e.series.Get(key); ok {
		return raw, nil
	}
	v, err, _ := e.group.Do(fmt.Sprintf("series|%s|%s", symbol, period), func() (interface{}, error) {
		// Re-check under the flight: a concurrent miss may have filled it.
		if raw, ok := e.series.Get(key); ok {
			return raw, nil
		}
		raw, err := e.fetchSeriesRetry(ctx, symbol, period)
		if err != nil {
			return nil, err
		}
		e.series.Put(key, raw, e.opts.SeriesTTL)
		return raw, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.OHLCV), nil
}

func (e *Engine) fetchSeriesRetry(ctx context.Context, symbol string, period model.Period) ([]model.OHLCV, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			log.Printf("[WARN] fetch series %s %s failed, retrying: %v", symbol, period, lastErr)
			e.sleep(e.opts.RetryBackoff)
		}
		fctx, cancel := context.WithTimeout(ctx, e.opts.FetchTimeout)
		raw, err := e.fetcher.FetchSeries(fctx, symbol, period)
		cancel()
		if err == nil {
			return raw, nil
		}
		lastErr = err
	}
	return nil, &UpstreamError{Symbol: symbol, Op: "series", Err: lastErr}
}

func (e *Engine) fetchInfoRetry(ctx context.Context, symbol string) (model.Quote, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			log.Printf("[WARN] fetch info %s failed, retrying: %v", symbol, lastErr)
			e.sleep(e.opts.RetryBackoff)
		}
		fctx, cancel := context.WithTimeout(ctx, e.opts.FetchTimeout)
		q, err := e.fetcher.FetchInfo(fctx, symbol)
		cancel()
		if err == nil {
			return q, nil
		}
		lastErr = err
	}
	return model.Quote{}, &UpstreamError{Symbol: symbol, Op: "info", Err: lastErr}
}
