package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"TickerDesk/internal/model"
)

// RESTFetcher implements Fetcher against a self-hosted market-data REST API,
// used when data_source.base_url is configured.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string) *RESTFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape for one bar.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (f *RESTFetcher) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("rest fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("rest fetch: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("rest decode: %w", err)
	}
	return nil
}

// FetchSeries fetches daily bars for symbol over period.
func (f *RESTFetcher) FetchSeries(ctx context.Context, symbol string, period model.Period) ([]model.OHLCV, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars?symbol=%s&period=%s",
		f.BaseURL, url.QueryEscape(symbol), period)

	var rows []restBar
	if err := f.get(ctx, endpoint, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("rest: no data for %s period %s", symbol, period)
	}

	bars := make([]model.OHLCV, 0, len(rows))
	for i, rb := range rows {
		if rb.Timestamp <= 0 {
			return nil, fmt.Errorf("rest: malformed bar %d for %s: timestamp %d", i, symbol, rb.Timestamp)
		}
		if rb.Open == 0 && rb.High == 0 && rb.Low == 0 && rb.Close == 0 {
			continue
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(rb.Timestamp, 0),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: rb.Volume,
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// FetchInfo fetches instrument metadata.
func (f *RESTFetcher) FetchInfo(ctx context.Context, symbol string) (model.Quote, error) {
	endpoint := fmt.Sprintf("%s/api/v1/info?symbol=%s", f.BaseURL, url.QueryEscape(symbol))

	var info struct {
		Symbol    string  `json:"symbol"`
		Name      string  `json:"name"`
		Category  string  `json:"category"`
		LastPrice float64 `json:"last_price"`
		AsOf      int64   `json:"as_of"`
	}
	if err := f.get(ctx, endpoint, &info); err != nil {
		return model.Quote{}, err
	}
	if info.Symbol == "" || info.LastPrice == 0 {
		return model.Quote{}, fmt.Errorf("rest: no metadata for %s", symbol)
	}
	asOf := time.Now()
	if info.AsOf > 0 {
		asOf = time.Unix(info.AsOf, 0)
	}
	return model.Quote{
		Symbol:    info.Symbol,
		Name:      info.Name,
		Category:  model.ParseCategory(info.Category),
		LastPrice: info.LastPrice,
		AsOf:      asOf,
	}, nil
}
