package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"TickerDesk/internal/model"
)

const chartOK = `{"chart":{"result":[{
	"meta":{"symbol":"AAPL","longName":"Apple Inc.","instrumentType":"EQUITY",
		"regularMarketPrice":189.5,"regularMarketTime":1717422600},
	"timestamp":[1717027200,1717113600,1717200000],
	"indicators":{"quote":[{
		"open":[100.0,null,102.0],
		"high":[101.0,null,103.0],
		"low":[99.0,null,101.5],
		"close":[100.5,null,102.5],
		"volume":[1000,null,1200]
	}]}}],"error":null}}`

const chartNotFound = `{"chart":{"result":null,
	"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

func yahooTestServer(t *testing.T, body string) (*YahooFetcher, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v8/finance/chart/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	return f, srv
}

func TestYahooFetchSeries(t *testing.T) {
	t.Run("skips null bars and keeps order", func(t *testing.T) {
		f, _ := yahooTestServer(t, chartOK)
		bars, err := f.FetchSeries(context.Background(), "AAPL", model.Period1M)
		if err != nil {
			t.Fatalf("FetchSeries: %v", err)
		}
		if len(bars) != 2 {
			t.Fatalf("got %d bars, want 2 (null bar must be dropped)", len(bars))
		}
		if !bars[0].Time.Before(bars[1].Time) {
			t.Error("bars not in chronological order")
		}
		if bars[1].Close != 102.5 {
			t.Errorf("last close = %v, want 102.5", bars[1].Close)
		}
	})

	t.Run("api error surfaces", func(t *testing.T) {
		f, _ := yahooTestServer(t, chartNotFound)
		_, err := f.FetchSeries(context.Background(), "NOPE", model.Period1M)
		if err == nil || !strings.Contains(err.Error(), "delisted") {
			t.Fatalf("want api error, got %v", err)
		}
	})

	t.Run("malformed payload rejected", func(t *testing.T) {
		cases := map[string]string{
			"all quote arrays short": `{"chart":{"result":[{"timestamp":[1,2,3],
				"indicators":{"quote":[{"open":[1.0],"high":[1.0],"low":[1.0],"close":[1.0],"volume":[1]}]}}]}}`,
			"short high array": `{"chart":{"result":[{"timestamp":[1,2,3],
				"indicators":{"quote":[{"open":[1.0,2.0,3.0],"high":[1.0],"low":[1.0,2.0,3.0],"close":[1.0,2.0,3.0],"volume":[1,2,3]}]}}]}}`,
			"short volume array": `{"chart":{"result":[{"timestamp":[1,2,3],
				"indicators":{"quote":[{"open":[1.0,2.0,3.0],"high":[1.0,2.0,3.0],"low":[1.0,2.0,3.0],"close":[1.0,2.0,3.0],"volume":[1]}]}}]}}`,
		}
		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				f, _ := yahooTestServer(t, body)
				_, err := f.FetchSeries(context.Background(), "AAPL", model.Period1M)
				if err == nil || !strings.Contains(err.Error(), "malformed") {
					t.Fatalf("want malformed payload error, got %v", err)
				}
			})
		}
	})
}

func TestYahooFetchInfo(t *testing.T) {
	f, _ := yahooTestServer(t, chartOK)
	q, err := f.FetchInfo(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("FetchInfo: %v", err)
	}
	if q.Symbol != "AAPL" || q.Name != "Apple Inc." {
		t.Errorf("quote = %+v", q)
	}
	if q.Category != model.CategoryEquity {
		t.Errorf("category = %s, want EQUITY", q.Category)
	}
	if q.LastPrice != 189.5 {
		t.Errorf("last price = %v, want 189.5", q.LastPrice)
	}
}

func TestRESTFetchSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sekrit" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`[
			{"timestamp":1717113600,"open":2,"high":3,"low":1,"close":2.5,"volume":10},
			{"timestamp":1717027200,"open":1,"high":2,"low":0.5,"close":1.5,"volume":20}
		]`))
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "sekrit", "")
	bars, err := f.FetchSeries(context.Background(), "AAPL", model.Period1M)
	if err != nil {
		t.Fatalf("FetchSeries: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(bars))
	}
	if !bars[0].Time.Before(bars[1].Time) {
		t.Error("bars not sorted chronologically")
	}
}

func TestMockFetcher(t *testing.T) {
	f := NewMockFetcher()
	bars, err := f.FetchSeries(context.Background(), "AAPL", model.PeriodMax)
	if err != nil {
		t.Fatalf("FetchSeries: %v", err)
	}
	if len(bars) <= 2000 {
		t.Errorf("max period should exceed the point cap, got %d bars", len(bars))
	}
	for i := 1; i < len(bars); i++ {
		if !bars[i-1].Time.Before(bars[i].Time) {
			t.Fatalf("bars out of order at %d", i)
		}
	}

	q, err := f.FetchInfo(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("FetchInfo: %v", err)
	}
	if q.LastPrice == 0 {
		t.Error("mock quote has zero price")
	}
}
